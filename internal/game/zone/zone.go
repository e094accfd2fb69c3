// Package zone implements risk zones: admin-defined axis-aligned regions with
// PvP, death-loot and access policy, a spatial index answering "which zone is
// this point in", per-player zone tracking and the region-authoring workflow.
package zone

// WildernessName is the zone name reported for points outside every region.
const WildernessName = "Wilderness"

// Lookup is the resolved policy at a point. Value type, produced fresh on
// every query. Two lookups describe the same zone iff their names are equal.
type Lookup struct {
	Name               string
	Risk               Risk
	PvPEnabled         bool
	DeathRule          DeathRule
	PartialDropPercent uint8
}

// IsWilderness reports whether the lookup fell through to the wilderness policy.
func (l Lookup) IsWilderness() bool {
	return l.Name == WildernessName
}

// Wilderness is the policy applied outside every region.
type Wilderness struct {
	Risk       Risk
	PvPEnabled bool
	DeathRule  DeathRule
}

// Settings holds the index-wide scalars loaded from config.
type Settings struct {
	Wilderness          Wilderness
	TrashChancePercent  uint8
	NewbieRequiredHours uint64
	// DefaultPartialDrop applies to wilderness lookups and to newly created zones.
	DefaultPartialDrop uint8
}
