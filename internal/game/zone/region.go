package zone

import "github.com/udisondev/riskzones/internal/model"

// Region is an admin-defined axis-aligned box with its zone policy.
// Min is component-wise <= Max; NewRegion guarantees it.
// Regions are not edited in place: replace by delete + create.
type Region struct {
	Name               string
	Risk               Risk
	PvPEnabled         bool
	DeathRule          DeathRule
	PartialDropPercent uint8
	Min                model.Point
	Max                model.Point
}

// NewRegion builds a region from two arbitrary opposite corners.
// Corner order does not matter; partialDrop is capped at 100.
func NewRegion(name string, risk Risk, pvpEnabled bool, rule DeathRule, partialDrop uint8, a, b model.Point) Region {
	return Region{
		Name:               name,
		Risk:               risk,
		PvPEnabled:         pvpEnabled,
		DeathRule:          rule,
		PartialDropPercent: min(partialDrop, 100),
		Min:                a.Min(b),
		Max:                a.Max(b),
	}
}

// Contains reports whether p lies inside the box, faces included.
func (r Region) Contains(p model.Point) bool {
	return p.X >= r.Min.X && p.X <= r.Max.X &&
		p.Y >= r.Min.Y && p.Y <= r.Max.Y &&
		p.Z >= r.Min.Z && p.Z <= r.Max.Z
}

// Lookup returns the resolved policy of this region.
func (r Region) Lookup() Lookup {
	return Lookup{
		Name:               r.Name,
		Risk:               r.Risk,
		PvPEnabled:         r.PvPEnabled,
		DeathRule:          r.DeathRule,
		PartialDropPercent: r.PartialDropPercent,
	}
}
