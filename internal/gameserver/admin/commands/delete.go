package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver/admin"
)

// Delete handles //delete <name>: removes a zone from the store and the index.
type Delete struct {
	editor *zone.Editor
}

// NewDelete creates the delete command handler.
func NewDelete(editor *zone.Editor) *Delete {
	return &Delete{editor: editor}
}

func (c *Delete) Names() []string            { return []string{"delete", "zdelete"} }
func (c *Delete) RequiredAccessLevel() int32 { return 2 }

func (c *Delete) Handle(ctx context.Context, sender admin.Sender, args []string) error {
	if len(args) < 2 {
		return errors.New("Usage: //delete <name>")
	}
	name := args[1]

	if err := c.editor.Delete(ctx, name); err != nil {
		if errors.Is(err, zone.ErrZoneNotFound) {
			return fmt.Errorf("Zone '%s' not found.", name)
		}
		return fmt.Errorf("Failed to delete zone: %w", err)
	}

	sender.Reply(fmt.Sprintf("Zone '%s' deleted.", name))
	return nil
}
