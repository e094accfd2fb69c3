package zone

import (
	"fmt"
	"strings"
)

// Risk is the danger tier of a zone. Tiers are ordered from Green (safe)
// to Black (lethal).
type Risk uint8

const (
	RiskGreen Risk = iota
	RiskYellow
	RiskRed
	RiskBlack
)

// ParseRisk matches a risk token case-insensitively ("green", "RED", ...).
// Unknown tokens return false; there is no default guess.
func ParseRisk(s string) (Risk, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "green":
		return RiskGreen, true
	case "yellow":
		return RiskYellow, true
	case "red":
		return RiskRed, true
	case "black":
		return RiskBlack, true
	default:
		return 0, false
	}
}

// String returns the display name ("Green", "Yellow", "Red", "Black").
func (r Risk) String() string {
	switch r {
	case RiskGreen:
		return "Green"
	case RiskYellow:
		return "Yellow"
	case RiskRed:
		return "Red"
	case RiskBlack:
		return "Black"
	default:
		return fmt.Sprintf("Risk(%d)", uint8(r))
	}
}

// Token returns the lowercase storage token.
func (r Risk) Token() string {
	return strings.ToLower(r.String())
}

// Label is the short caption used in bars and messages.
func (r Risk) Label() string {
	switch r {
	case RiskGreen:
		return "SAFE"
	case RiskYellow:
		return "CAUTION"
	case RiskRed:
		return "DANGER"
	case RiskBlack:
		return "LETHAL"
	default:
		return "UNKNOWN"
	}
}

// IsDangerous reports whether entering this tier goes through newbie protection.
func (r Risk) IsDangerous() bool {
	return r == RiskRed || r == RiskBlack
}

// DefaultRules returns the PvP flag and death rule a freshly created zone
// of this tier gets.
func (r Risk) DefaultRules() (pvpEnabled bool, rule DeathRule) {
	switch r {
	case RiskGreen:
		return false, DeathSafe
	case RiskYellow:
		return true, DeathPartial
	default:
		return true, DeathFullLoot
	}
}

// MarshalText implements encoding.TextMarshaler (JSON and YAML).
func (r Risk) MarshalText() ([]byte, error) {
	if r > RiskBlack {
		return nil, fmt.Errorf("invalid risk %d", uint8(r))
	}
	return []byte(r.Token()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler (JSON and YAML).
func (r *Risk) UnmarshalText(text []byte) error {
	v, ok := ParseRisk(string(text))
	if !ok {
		return fmt.Errorf("unknown risk %q (want green, yellow, red or black)", text)
	}
	*r = v
	return nil
}

// DeathRule decides what happens to a player's items on death.
type DeathRule uint8

const (
	// DeathSafe: no item loss.
	DeathSafe DeathRule = iota
	// DeathPartial: a percentage of the inventory drops.
	DeathPartial
	// DeathFullLoot: everything drops, trash chance applies.
	DeathFullLoot
)

// ParseDeathRule matches "safe", "partial" or "full_loot" case-insensitively.
func ParseDeathRule(s string) (DeathRule, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "safe":
		return DeathSafe, true
	case "partial":
		return DeathPartial, true
	case "full_loot":
		return DeathFullLoot, true
	default:
		return 0, false
	}
}

func (d DeathRule) String() string {
	switch d {
	case DeathSafe:
		return "Safe"
	case DeathPartial:
		return "Partial"
	case DeathFullLoot:
		return "FullLoot"
	default:
		return fmt.Sprintf("DeathRule(%d)", uint8(d))
	}
}

// Token returns the snake_case storage token.
func (d DeathRule) Token() string {
	switch d {
	case DeathSafe:
		return "safe"
	case DeathPartial:
		return "partial"
	case DeathFullLoot:
		return "full_loot"
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (d DeathRule) MarshalText() ([]byte, error) {
	tok := d.Token()
	if tok == "" {
		return nil, fmt.Errorf("invalid death rule %d", uint8(d))
	}
	return []byte(tok), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *DeathRule) UnmarshalText(text []byte) error {
	v, ok := ParseDeathRule(string(text))
	if !ok {
		return fmt.Errorf("unknown death rule %q (want safe, partial or full_loot)", text)
	}
	*d = v
	return nil
}
