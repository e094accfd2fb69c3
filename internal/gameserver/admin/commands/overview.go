package commands

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/udisondev/riskzones/internal/game/crossing"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver/admin"
)

// Overview handles //zones: prints the zone admin overview.
type Overview struct {
	editor  *zone.Editor
	orch    *crossing.Orchestrator
	players PlayerDirectory
}

// NewOverview creates the overview command handler.
func NewOverview(deps Deps) *Overview {
	return &Overview{
		editor:  deps.Editor,
		orch:    deps.Orchestrator,
		players: deps.Players,
	}
}

func (c *Overview) Names() []string            { return []string{"zones", "zoneadmin"} }
func (c *Overview) RequiredAccessLevel() int32 { return 1 }

func (c *Overview) Handle(_ context.Context, sender admin.Sender, _ []string) error {
	idx := c.orch.Index()
	tracker := c.orch.Tracker()
	settings := idx.Settings()
	regions := c.editor.List()

	var b strings.Builder
	b.WriteString("--- Risk Zones Admin ---\n")
	fmt.Fprintf(&b, "Defined zones: %d\n", len(regions))
	fmt.Fprintf(&b, "Tracked players: %d/%d\n", tracker.Len(), c.players.PlayerCount())
	fmt.Fprintf(&b, "Newbie protection: %dh required\n", settings.NewbieRequiredHours)
	fmt.Fprintf(&b, "Trash chance: %d%%\n", settings.TrashChancePercent)
	fmt.Fprintf(&b, "Wilderness: %s — PvP: %s\n", settings.Wilderness.Risk, onOff(settings.Wilderness.PvPEnabled))
	fmt.Fprintf(&b, "Selection: %s\n", c.editor.Selection())

	if len(regions) > 0 {
		b.WriteString("Zones:\n")
		writeRegions(&b, regions)
	}

	counts := tracker.CountByZone()
	if len(counts) > 0 {
		b.WriteString("Players per zone:\n")
		for _, name := range slices.Sorted(maps.Keys(counts)) {
			fmt.Fprintf(&b, "  %s: %d\n", name, counts[name])
		}
	}

	sender.Reply(strings.TrimSuffix(b.String(), "\n"))
	return nil
}
