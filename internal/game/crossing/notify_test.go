package crossing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/riskzones/internal/game/zone"
)

func TestRiskPresentation(t *testing.T) {
	tests := []struct {
		risk     zone.Risk
		text     Color
		bar      BarColor
		title    string
		subtitle string
	}{
		{zone.RiskGreen, ColorGreen, BarGreen, "Keep — SAFE [PvP OFF]", "Safe Zone — No PvP, No Item Loss"},
		{zone.RiskYellow, ColorYellow, BarYellow, "Keep — CAUTION [PvP ON]", "Caution — PvP Enabled, Partial Loot on Death"},
		{zone.RiskRed, ColorRed, BarRed, "Keep — DANGER [PvP ON]", "DANGER — Full Loot PvP! Items WILL be lost!"},
		{zone.RiskBlack, ColorDarkPurple, BarPurple, "Keep — LETHAL [PvP ON]", "LETHAL — Full Loot PvP! Maximum Risk!"},
	}

	for _, tt := range tests {
		t.Run(tt.risk.String(), func(t *testing.T) {
			bar := Bar{Zone: "Keep", Risk: tt.risk}
			assert.Equal(t, tt.text, TextColor(tt.risk))
			assert.Equal(t, tt.bar, bar.Color())
			assert.Equal(t, tt.title, bar.Title())
			assert.Equal(t, tt.subtitle, Subtitle(tt.risk))
		})
	}
}
