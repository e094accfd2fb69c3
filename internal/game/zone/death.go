package zone

import (
	"fmt"

	"github.com/udisondev/riskzones/internal/model"
)

// DeathLoot is what happens to a player's items when they die at a point.
type DeathLoot struct {
	Zone string
	Risk Risk
	Rule DeathRule
	// DropPercent is the share of inventory slots that drop.
	DropPercent uint8
	// TrashPercent is the share of dropped items that are destroyed.
	TrashPercent uint8
}

// ComputeDeathLoot resolves the loot rules at p. Not cached: regions may
// change between calls.
func ComputeDeathLoot(idx *Index, p model.Point) DeathLoot {
	return LootFor(idx.ZoneAt(p), idx.TrashChancePercent())
}

// LootFor maps a resolved zone policy and the global trash chance to loot percentages.
func LootFor(l Lookup, trashChancePercent uint8) DeathLoot {
	loot := DeathLoot{
		Zone: l.Name,
		Risk: l.Risk,
		Rule: l.DeathRule,
	}

	switch l.DeathRule {
	case DeathPartial:
		loot.DropPercent = l.PartialDropPercent
	case DeathFullLoot:
		loot.DropPercent = 100
		loot.TrashPercent = trashChancePercent
	}

	return loot
}

// Summary is the message shown to the player after death.
func (d DeathLoot) Summary() string {
	switch d.Rule {
	case DeathPartial:
		return fmt.Sprintf("You died in %s (%s). %d%% of your items dropped.", d.Zone, d.Risk, d.DropPercent)
	case DeathFullLoot:
		return fmt.Sprintf("You died in %s (%s). ALL items dropped! %d%% were destroyed.", d.Zone, d.Risk, d.TrashPercent)
	default:
		return fmt.Sprintf("You died in %s (%s). Your items are safe.", d.Zone, d.Risk)
	}
}

// Describe is the one-line death rule shown by zone info.
func (d DeathLoot) Describe() string {
	switch d.Rule {
	case DeathPartial:
		return fmt.Sprintf("Partial (%d%% inventory drop)", d.DropPercent)
	case DeathFullLoot:
		return fmt.Sprintf("Full Loot (100%% drop, %d%% trashed)", d.TrashPercent)
	default:
		return "Safe (no item loss)"
	}
}
