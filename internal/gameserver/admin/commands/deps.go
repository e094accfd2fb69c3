package commands

import (
	"github.com/udisondev/riskzones/internal/game/crossing"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/model"
)

// PlayerDirectory provides online player lookup for zone commands.
// Interface to avoid import cycle with gameserver package.
type PlayerDirectory interface {
	// FindPlayerByName finds an online player by name (case-insensitive).
	FindPlayerByName(name string) *model.Player
	// ForEachPlayer iterates over all online players.
	ForEachPlayer(fn func(*model.Player) bool)
	// PlayerCount returns number of online players.
	PlayerCount() int
}

// Deps is everything the zone commands work with.
type Deps struct {
	Editor       *zone.Editor
	Orchestrator *crossing.Orchestrator
	Players      PlayerDirectory
}
