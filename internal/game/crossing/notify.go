package crossing

import (
	"fmt"

	"github.com/udisondev/riskzones/internal/game/zone"
)

// Color is a chat/title text color.
type Color string

const (
	ColorGreen      Color = "green"
	ColorYellow     Color = "yellow"
	ColorRed        Color = "red"
	ColorDarkPurple Color = "dark_purple"
	ColorGold       Color = "gold"
)

// BarColor is a status bar color.
type BarColor string

const (
	BarGreen  BarColor = "green"
	BarYellow BarColor = "yellow"
	BarRed    BarColor = "red"
	BarPurple BarColor = "purple"
)

// TextColor returns the text color of a risk tier.
func TextColor(r zone.Risk) Color {
	switch r {
	case zone.RiskGreen:
		return ColorGreen
	case zone.RiskYellow:
		return ColorYellow
	case zone.RiskRed:
		return ColorRed
	default:
		return ColorDarkPurple
	}
}

// BarColorOf returns the status bar color of a risk tier.
func BarColorOf(r zone.Risk) BarColor {
	switch r {
	case zone.RiskGreen:
		return BarGreen
	case zone.RiskYellow:
		return BarYellow
	case zone.RiskRed:
		return BarRed
	default:
		return BarPurple
	}
}

// Bar is what the zone status bar shows.
type Bar struct {
	Zone       string
	Risk       zone.Risk
	PvPEnabled bool
}

// BarFor builds the bar for a resolved zone.
func BarFor(l zone.Lookup) Bar {
	return Bar{Zone: l.Name, Risk: l.Risk, PvPEnabled: l.PvPEnabled}
}

// Title renders "Zone — LABEL [PvP ON]". Green zones are tagged PvP OFF.
func (b Bar) Title() string {
	tag := " [PvP ON]"
	if b.Risk == zone.RiskGreen {
		tag = " [PvP OFF]"
	}
	return fmt.Sprintf("%s — %s%s", b.Zone, b.Risk.Label(), tag)
}

// Color returns the bar color.
func (b Bar) Color() BarColor { return BarColorOf(b.Risk) }

// Kind is where a notification is shown.
type Kind uint8

const (
	KindChat Kind = iota
	KindActionBar
	KindTitle
)

func (k Kind) String() string {
	switch k {
	case KindActionBar:
		return "action_bar"
	case KindTitle:
		return "title"
	default:
		return "chat"
	}
}

// Notification is a message for one player. Subtitle is only used by titles.
type Notification struct {
	Kind     Kind
	Text     string
	Subtitle string
	Color    Color
}

// Title timings in ticks.
const (
	TitleFadeIn  = 10
	TitleStay    = 60
	TitleFadeOut = 20
)

// Subtitle is the one-line risk warning under the entering title.
func Subtitle(r zone.Risk) string {
	switch r {
	case zone.RiskGreen:
		return "Safe Zone — No PvP, No Item Loss"
	case zone.RiskYellow:
		return "Caution — PvP Enabled, Partial Loot on Death"
	case zone.RiskRed:
		return "DANGER — Full Loot PvP! Items WILL be lost!"
	default:
		return "LETHAL — Full Loot PvP! Maximum Risk!"
	}
}

func joinNotification(l zone.Lookup) Notification {
	return Notification{
		Kind:  KindActionBar,
		Text:  fmt.Sprintf("Entered %s — %s", l.Name, l.Risk.Label()),
		Color: TextColor(l.Risk),
	}
}

func enteringNotification(l zone.Lookup) Notification {
	return Notification{
		Kind:     KindTitle,
		Text:     "Entering: " + l.Name,
		Subtitle: Subtitle(l.Risk),
		Color:    TextColor(l.Risk),
	}
}

func blockedNotification(r zone.Risk) Notification {
	return Notification{
		Kind:  KindChat,
		Text:  fmt.Sprintf("You cannot enter %s zones yet!", r),
		Color: ColorRed,
	}
}

func deathNotification(loot zone.DeathLoot) Notification {
	return Notification{
		Kind:  KindChat,
		Text:  loot.Summary(),
		Color: TextColor(loot.Risk),
	}
}

// ConfirmWarning is sent when a player confirms dangerous-zone entry.
const ConfirmWarning = "WARNING: You have confirmed entry to dangerous zones!\n" +
	"You WILL lose items on death in Red/Black zones.\n" +
	"This confirmation lasts until you disconnect."

// ConfirmGranted follows ConfirmWarning.
const ConfirmGranted = "Dangerous zone access granted for this session."
