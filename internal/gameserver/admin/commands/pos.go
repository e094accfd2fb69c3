package commands

import (
	"context"
	"fmt"

	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver/admin"
)

// Pos1 handles //pos1: sets the first selection corner to the sender's position.
type Pos1 struct {
	editor *zone.Editor
}

// NewPos1 creates the pos1 command handler.
func NewPos1(editor *zone.Editor) *Pos1 {
	return &Pos1{editor: editor}
}

func (c *Pos1) Names() []string            { return []string{"pos1"} }
func (c *Pos1) RequiredAccessLevel() int32 { return 2 }

func (c *Pos1) Handle(_ context.Context, sender admin.Sender, _ []string) error {
	pos := sender.Position()
	sel := c.editor.SetPos1(pos)

	sender.Reply(fmt.Sprintf("Pos1 set to (%.1f, %.1f, %.1f)", pos.X, pos.Y, pos.Z))
	replySelectionHint(sender, sel, "Now set pos2 with //pos2")
	return nil
}

// Pos2 handles //pos2: sets the second selection corner to the sender's position.
type Pos2 struct {
	editor *zone.Editor
}

// NewPos2 creates the pos2 command handler.
func NewPos2(editor *zone.Editor) *Pos2 {
	return &Pos2{editor: editor}
}

func (c *Pos2) Names() []string            { return []string{"pos2"} }
func (c *Pos2) RequiredAccessLevel() int32 { return 2 }

func (c *Pos2) Handle(_ context.Context, sender admin.Sender, _ []string) error {
	pos := sender.Position()
	sel := c.editor.SetPos2(pos)

	sender.Reply(fmt.Sprintf("Pos2 set to (%.1f, %.1f, %.1f)", pos.X, pos.Y, pos.Z))
	replySelectionHint(sender, sel, "Now set pos1 with //pos1")
	return nil
}

func replySelectionHint(sender admin.Sender, sel zone.Selection, missing string) {
	if sel.IsComplete() {
		sender.Reply("Selection complete! Use //create <name> <green|yellow|red|black>")
		return
	}
	sender.Reply(missing)
}
