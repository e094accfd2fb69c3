package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/udisondev/riskzones/internal/game/crossing"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver/admin"
	"github.com/udisondev/riskzones/internal/model"
)

const zoneUsage = "Usage: /zone [info [player]|confirm]"

// Zone handles /zone: "info" shows the zone rules at the sender's
// position (GMs may name another player), "confirm" grants access to
// dangerous zones for the rest of the session.
type Zone struct {
	orch    *crossing.Orchestrator
	players PlayerDirectory
}

// NewZone creates the zone user command handler.
func NewZone(orch *crossing.Orchestrator, players PlayerDirectory) *Zone {
	return &Zone{orch: orch, players: players}
}

func (c *Zone) Names() []string { return []string{"zone"} }

func (c *Zone) Handle(_ context.Context, sender admin.Sender, params string) error {
	sub, rest, _ := strings.Cut(params, " ")
	rest = strings.TrimSpace(rest)

	switch strings.ToLower(sub) {
	case "", "info":
		return c.info(sender, rest)
	case "confirm":
		return c.confirm(sender)
	default:
		return errors.New(zoneUsage)
	}
}

func (c *Zone) info(sender admin.Sender, target string) error {
	name, pos := sender.Name(), sender.Position()

	if target != "" && !strings.EqualFold(target, name) {
		if al := admin.GetAccessLevel(sender.AccessLevel()); al == nil || !al.IsGM {
			return errors.New("Only GMs can inspect other players.")
		}
		p := c.players.FindPlayerByName(target)
		if p == nil {
			return fmt.Errorf("player %q not found", target)
		}
		name, pos = p.Name(), p.Position()
	}

	sender.Reply(formatZoneInfo(c.orch.Index(), name, pos))
	return nil
}

func (c *Zone) confirm(sender admin.Sender) error {
	if !c.orch.Confirm(sender.ID()) {
		return errors.New("You are not in the zone tracker yet. Rejoin and try again.")
	}
	return nil
}

func formatZoneInfo(idx *zone.Index, name string, pos model.Point) string {
	l := idx.ZoneAt(pos)
	loot := zone.LootFor(l, idx.TrashChancePercent())

	var b strings.Builder
	b.WriteString("--- Zone Info ---\n")
	fmt.Fprintf(&b, "Player: %s\n", name)
	fmt.Fprintf(&b, "Zone: %s\n", l.Name)
	fmt.Fprintf(&b, "Risk: %s — %s\n", l.Risk, l.Risk.Label())
	fmt.Fprintf(&b, "PvP: %s\n", onOff(l.PvPEnabled))
	fmt.Fprintf(&b, "Death: %s\n", loot.Describe())
	fmt.Fprintf(&b, "Position: (%.1f, %.1f, %.1f)", pos.X, pos.Y, pos.Z)
	return b.String()
}
