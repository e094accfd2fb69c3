package zone

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseRisk(t *testing.T) {
	tests := []struct {
		in   string
		want Risk
		ok   bool
	}{
		{"green", RiskGreen, true},
		{"YELLOW", RiskYellow, true},
		{"Red", RiskRed, true},
		{" black ", RiskBlack, true},
		{"purple", 0, false},
		{"", 0, false},
		{"redd", 0, false},
	}

	for _, tt := range tests {
		got, ok := ParseRisk(tt.in)
		assert.Equal(t, tt.ok, ok, "ParseRisk(%q)", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "ParseRisk(%q)", tt.in)
		}
	}
}

func TestRiskProperties(t *testing.T) {
	assert.False(t, RiskGreen.IsDangerous())
	assert.False(t, RiskYellow.IsDangerous())
	assert.True(t, RiskRed.IsDangerous())
	assert.True(t, RiskBlack.IsDangerous())

	assert.Equal(t, "SAFE", RiskGreen.Label())
	assert.Equal(t, "CAUTION", RiskYellow.Label())
	assert.Equal(t, "DANGER", RiskRed.Label())
	assert.Equal(t, "LETHAL", RiskBlack.Label())

	assert.Equal(t, "Black", RiskBlack.String())
	assert.Equal(t, "black", RiskBlack.Token())
}

func TestRiskDefaultRules(t *testing.T) {
	tests := []struct {
		risk Risk
		pvp  bool
		rule DeathRule
	}{
		{RiskGreen, false, DeathSafe},
		{RiskYellow, true, DeathPartial},
		{RiskRed, true, DeathFullLoot},
		{RiskBlack, true, DeathFullLoot},
	}

	for _, tt := range tests {
		pvp, rule := tt.risk.DefaultRules()
		assert.Equal(t, tt.pvp, pvp, tt.risk.String())
		assert.Equal(t, tt.rule, rule, tt.risk.String())
	}
}

func TestParseDeathRule(t *testing.T) {
	for _, rule := range []DeathRule{DeathSafe, DeathPartial, DeathFullLoot} {
		got, ok := ParseDeathRule(rule.Token())
		require.True(t, ok, rule.Token())
		assert.Equal(t, rule, got)
	}

	_, ok := ParseDeathRule("fullloot")
	assert.False(t, ok)
}

func TestRiskTextEncoding(t *testing.T) {
	var cfg struct {
		Risk  Risk      `yaml:"risk" json:"risk"`
		Death DeathRule `yaml:"death_rule" json:"death_rule"`
	}

	require.NoError(t, yaml.Unmarshal([]byte("risk: Yellow\ndeath_rule: full_loot\n"), &cfg))
	assert.Equal(t, RiskYellow, cfg.Risk)
	assert.Equal(t, DeathFullLoot, cfg.Death)

	data, err := json.Marshal(cfg)
	require.NoError(t, err)
	assert.JSONEq(t, `{"risk":"yellow","death_rule":"full_loot"}`, string(data))

	err = yaml.Unmarshal([]byte("risk: orange\n"), &cfg)
	assert.Error(t, err)
}
