package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver/admin"
)

const createUsage = "Usage: //create <name> <green|yellow|red|black>"

// Create handles //create <name> <risk>: defines a zone from the selection.
type Create struct {
	editor *zone.Editor
}

// NewCreate creates the create command handler.
func NewCreate(editor *zone.Editor) *Create {
	return &Create{editor: editor}
}

func (c *Create) Names() []string            { return []string{"create", "zcreate"} }
func (c *Create) RequiredAccessLevel() int32 { return 2 }

func (c *Create) Handle(ctx context.Context, sender admin.Sender, args []string) error {
	if len(args) < 3 {
		return errors.New(createUsage)
	}
	name, risk := args[1], args[2]

	r, err := c.editor.Create(ctx, name, risk, sender.ID())
	switch {
	case err == nil:
	case errors.Is(err, zone.ErrEmptyName):
		return errors.New(createUsage)
	case errors.Is(err, zone.ErrReservedName):
		return fmt.Errorf("'%s' is reserved for the wilderness. Pick another name.", name)
	case errors.Is(err, zone.ErrUnknownRisk):
		return fmt.Errorf("Unknown risk level '%s'. Use: green, yellow, red, black", risk)
	case errors.Is(err, zone.ErrIncompleteSelection):
		return errors.New("Set both positions first! //pos1 then //pos2")
	case errors.Is(err, zone.ErrZoneExists):
		return fmt.Errorf("Zone '%s' already exists!", name)
	default:
		return fmt.Errorf("Failed to save zone: %w", err)
	}

	sender.Reply(fmt.Sprintf("Zone '%s' created! [%s] %s-%s — PvP: %s — Death: %s",
		r.Name, r.Risk, r.Min, r.Max, onOff(r.PvPEnabled), r.DeathRule))
	return nil
}

func onOff(b bool) string {
	if b {
		return "ON"
	}
	return "OFF"
}
