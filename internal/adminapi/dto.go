package adminapi

import (
	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/game/crossing"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/model"
)

type pointJSON struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func toPointJSON(p model.Point) pointJSON { return pointJSON{X: p.X, Y: p.Y, Z: p.Z} }

func (p pointJSON) point() model.Point { return model.NewPoint(p.X, p.Y, p.Z) }

type regionJSON struct {
	Name               string         `json:"name"`
	Risk               zone.Risk      `json:"risk"`
	PvPEnabled         bool           `json:"pvp_enabled"`
	DeathRule          zone.DeathRule `json:"death_rule"`
	PartialDropPercent uint8          `json:"partial_drop_percent"`
	Min                pointJSON      `json:"min"`
	Max                pointJSON      `json:"max"`
}

func toRegionJSON(r zone.Region) regionJSON {
	return regionJSON{
		Name:               r.Name,
		Risk:               r.Risk,
		PvPEnabled:         r.PvPEnabled,
		DeathRule:          r.DeathRule,
		PartialDropPercent: r.PartialDropPercent,
		Min:                toPointJSON(r.Min),
		Max:                toPointJSON(r.Max),
	}
}

type zoneJSON struct {
	regionJSON
	Label     string     `json:"label"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty"`
}

func toZoneJSON(r zone.Region, owner uuid.UUID) zoneJSON {
	out := zoneJSON{regionJSON: toRegionJSON(r), Label: r.Risk.Label()}
	if owner != uuid.Nil {
		out.CreatedBy = &owner
	}
	return out
}

type lookupJSON struct {
	Name               string         `json:"name"`
	Risk               zone.Risk      `json:"risk"`
	Label              string         `json:"label"`
	PvPEnabled         bool           `json:"pvp_enabled"`
	DeathRule          zone.DeathRule `json:"death_rule"`
	PartialDropPercent uint8          `json:"partial_drop_percent"`
	Wilderness         bool           `json:"wilderness"`
}

func toLookupJSON(l zone.Lookup) lookupJSON {
	return lookupJSON{
		Name:               l.Name,
		Risk:               l.Risk,
		Label:              l.Risk.Label(),
		PvPEnabled:         l.PvPEnabled,
		DeathRule:          l.DeathRule,
		PartialDropPercent: l.PartialDropPercent,
		Wilderness:         l.IsWilderness(),
	}
}

type lootJSON struct {
	Zone         string         `json:"zone"`
	Risk         zone.Risk      `json:"risk"`
	Rule         zone.DeathRule `json:"rule"`
	DropPercent  uint8          `json:"drop_percent"`
	TrashPercent uint8          `json:"trash_percent"`
	Summary      string         `json:"summary"`
}

func toLootJSON(d zone.DeathLoot) lootJSON {
	return lootJSON{
		Zone:         d.Zone,
		Risk:         d.Risk,
		Rule:         d.Rule,
		DropPercent:  d.DropPercent,
		TrashPercent: d.TrashPercent,
		Summary:      d.Summary(),
	}
}

type selectionJSON struct {
	Pos1     *pointJSON `json:"pos1,omitempty"`
	Pos2     *pointJSON `json:"pos2,omitempty"`
	Complete bool       `json:"complete"`
}

func toSelectionJSON(s zone.Selection) selectionJSON {
	out := selectionJSON{Complete: s.IsComplete()}
	if p, ok := s.Pos1(); ok {
		pj := toPointJSON(p)
		out.Pos1 = &pj
	}
	if p, ok := s.Pos2(); ok {
		pj := toPointJSON(p)
		out.Pos2 = &pj
	}
	return out
}

type createZoneRequest struct {
	Name string `json:"name"`
	Risk string `json:"risk"`
}

type joinRequest struct {
	Name        string  `json:"name"`
	AccessLevel int32   `json:"access_level"`
	X           float64 `json:"x"`
	Y           float64 `json:"y"`
	Z           float64 `json:"z"`
}

type chatRequest struct {
	Text string `json:"text"`
}

type chatResponse struct {
	Replies []string `json:"replies"`
}

type moveJSON struct {
	From      lookupJSON `json:"from"`
	To        lookupJSON `json:"to"`
	Crossed   bool       `json:"crossed"`
	Cancelled bool       `json:"cancelled"`
	// Gate is the access decision reason, set only when the target was dangerous.
	Gate string `json:"gate,omitempty"`
}

func toMoveJSON(res crossing.MoveResult) moveJSON {
	out := moveJSON{
		From:      toLookupJSON(res.From),
		To:        toLookupJSON(res.To),
		Crossed:   res.Crossed,
		Cancelled: res.Cancelled,
	}
	if res.From.Name != res.To.Name && res.To.Risk.IsDangerous() {
		out.Gate = res.Decision.Reason.String()
	}
	return out
}

type attackJSON struct {
	Allowed      bool   `json:"allowed"`
	AttackerZone string `json:"attacker_zone"`
	VictimZone   string `json:"victim_zone"`
}

type playerJSON struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	AccessLevel     int32     `json:"access_level"`
	Position        pointJSON `json:"position"`
	Zone            string    `json:"zone"`
	Risk            zone.Risk `json:"risk"`
	DangerConfirmed bool      `json:"danger_confirmed"`
}

type statusJSON struct {
	Zones               int            `json:"zones"`
	TrackedPlayers      int            `json:"tracked_players"`
	OnlinePlayers       int            `json:"online_players"`
	NewbieRequiredHours uint64         `json:"newbie_required_hours"`
	TrashChancePercent  uint8          `json:"trash_chance_percent"`
	Wilderness          lookupJSON     `json:"wilderness"`
	Selection           selectionJSON  `json:"selection"`
	PlayersPerZone      map[string]int `json:"players_per_zone"`
}

type errorJSON struct {
	Error string `json:"error"`
}
