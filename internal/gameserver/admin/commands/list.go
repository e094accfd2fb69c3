package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver/admin"
)

// List handles //list: prints every zone in lookup priority order.
type List struct {
	editor *zone.Editor
}

// NewList creates the list command handler.
func NewList(editor *zone.Editor) *List {
	return &List{editor: editor}
}

func (c *List) Names() []string            { return []string{"list", "zlist"} }
func (c *List) RequiredAccessLevel() int32 { return 1 }

func (c *List) Handle(_ context.Context, sender admin.Sender, _ []string) error {
	regions := c.editor.List()
	if len(regions) == 0 {
		sender.Reply("No zones defined. Use //pos1, //pos2, //create.")
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "--- Zones (%d) ---\n", len(regions))
	writeRegions(&b, regions)
	sender.Reply(strings.TrimSuffix(b.String(), "\n"))
	return nil
}

func writeRegions(b *strings.Builder, regions []zone.Region) {
	for _, r := range regions {
		fmt.Fprintf(b, "  %s [%s] %s-%s PvP:%s Death:%s\n",
			r.Name, r.Risk, r.Min, r.Max, onOff(r.PvPEnabled), r.DeathRule)
	}
}
