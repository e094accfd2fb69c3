package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLootFor(t *testing.T) {
	tests := []struct {
		name      string
		lookup    Lookup
		trash     uint8
		wantDrop  uint8
		wantTrash uint8
	}{
		{
			name:   "safe drops nothing",
			lookup: Lookup{Name: "Keep", Risk: RiskGreen, DeathRule: DeathSafe, PartialDropPercent: 40},
			trash:  50,
		},
		{
			name:     "partial uses zone percent",
			lookup:   Lookup{Name: "Marsh", Risk: RiskYellow, DeathRule: DeathPartial, PartialDropPercent: 40},
			trash:    50,
			wantDrop: 40,
		},
		{
			name:   "partial at zero",
			lookup: Lookup{Name: "Marsh", Risk: RiskYellow, DeathRule: DeathPartial},
			trash:  50,
		},
		{
			name:      "full loot drops everything",
			lookup:    Lookup{Name: "Pit", Risk: RiskBlack, DeathRule: DeathFullLoot, PartialDropPercent: 40},
			trash:     50,
			wantDrop:  100,
			wantTrash: 50,
		},
		{
			name:      "full loot with total trash",
			lookup:    Lookup{Name: "Pit", Risk: RiskRed, DeathRule: DeathFullLoot},
			trash:     100,
			wantDrop:  100,
			wantTrash: 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LootFor(tt.lookup, tt.trash)
			assert.Equal(t, tt.lookup.Name, got.Zone)
			assert.Equal(t, tt.lookup.Risk, got.Risk)
			assert.Equal(t, tt.lookup.DeathRule, got.Rule)
			assert.Equal(t, tt.wantDrop, got.DropPercent)
			assert.Equal(t, tt.wantTrash, got.TrashPercent)
		})
	}
}

func TestComputeDeathLoot(t *testing.T) {
	keep := NewRegion("Keep", RiskGreen, false, DeathSafe, 0, pt(0, 0, 0), pt(100, 100, 100))
	idx := NewIndex(testSettings(), []Region{keep})

	inside := ComputeDeathLoot(idx, pt(50, 50, 50))
	assert.Equal(t, DeathLoot{Zone: "Keep", Risk: RiskGreen, Rule: DeathSafe}, inside)

	// За пределами регионов действует политика wilderness.
	outside := ComputeDeathLoot(idx, pt(150, 50, 50))
	assert.Equal(t, DeathLoot{Zone: WildernessName, Risk: RiskYellow, Rule: DeathPartial, DropPercent: 30}, outside)
}

func TestDeathLootFollowsIndexChanges(t *testing.T) {
	idx := NewIndex(testSettings(), nil)
	p := pt(5, 5, 5)

	assert.Equal(t, uint8(30), ComputeDeathLoot(idx, p).DropPercent)

	idx.AddRegion(NewRegion("Pit", RiskBlack, true, DeathFullLoot, 0, pt(0, 0, 0), pt(10, 10, 10)))

	loot := ComputeDeathLoot(idx, p)
	assert.Equal(t, uint8(100), loot.DropPercent)
	assert.Equal(t, uint8(50), loot.TrashPercent)
}

func TestDeathLootText(t *testing.T) {
	safe := DeathLoot{Zone: "Keep", Risk: RiskGreen, Rule: DeathSafe}
	partial := DeathLoot{Zone: "Marsh", Risk: RiskYellow, Rule: DeathPartial, DropPercent: 30}
	full := DeathLoot{Zone: "Pit", Risk: RiskBlack, Rule: DeathFullLoot, DropPercent: 100, TrashPercent: 50}

	assert.Equal(t, "You died in Keep (Green). Your items are safe.", safe.Summary())
	assert.Equal(t, "You died in Marsh (Yellow). 30% of your items dropped.", partial.Summary())
	assert.Equal(t, "You died in Pit (Black). ALL items dropped! 50% were destroyed.", full.Summary())

	assert.Equal(t, "Safe (no item loss)", safe.Describe())
	assert.Equal(t, "Partial (30% inventory drop)", partial.Describe())
	assert.Equal(t, "Full Loot (100% drop, 50% trashed)", full.Describe())
}
