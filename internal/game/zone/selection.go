package zone

import "github.com/udisondev/riskzones/internal/model"

// Selection is the two-corner buffer used to define a new region.
// There is one shared selection; the last writer wins.
type Selection struct {
	pos1, pos2       model.Point
	hasPos1, hasPos2 bool
}

// Pos1 returns corner 1 if set.
func (s Selection) Pos1() (model.Point, bool) { return s.pos1, s.hasPos1 }

// Pos2 returns corner 2 if set.
func (s Selection) Pos2() (model.Point, bool) { return s.pos2, s.hasPos2 }

// IsComplete reports whether both corners are set.
func (s Selection) IsComplete() bool { return s.hasPos1 && s.hasPos2 }

// String describes the selection state for admin replies.
func (s Selection) String() string {
	switch {
	case s.hasPos1 && s.hasPos2:
		return s.pos1.String() + " to " + s.pos2.String() + " [READY]"
	case s.hasPos1:
		return "pos1=" + s.pos1.String() + ", pos2=NOT SET"
	case s.hasPos2:
		return "pos1=NOT SET, pos2=" + s.pos2.String()
	default:
		return "NONE"
	}
}

func (s *Selection) setPos1(p model.Point) {
	s.pos1, s.hasPos1 = p, true
}

func (s *Selection) setPos2(p model.Point) {
	s.pos2, s.hasPos2 = p, true
}
