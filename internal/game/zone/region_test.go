package zone

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/udisondev/riskzones/internal/model"
)

func pt(x, y, z float64) model.Point { return model.NewPoint(x, y, z) }

func TestNewRegionNormalizesCorners(t *testing.T) {
	a := pt(10, -5, 30)
	b := pt(-10, 64, 0)

	r1 := NewRegion("Keep", RiskGreen, false, DeathSafe, 0, a, b)
	r2 := NewRegion("Keep", RiskGreen, false, DeathSafe, 0, b, a)

	assert.Equal(t, r1, r2, "corner order must not matter")
	assert.Equal(t, pt(-10, -5, 0), r1.Min)
	assert.Equal(t, pt(10, 64, 30), r1.Max)
}

func TestNewRegionCapsPartialDrop(t *testing.T) {
	r := NewRegion("Marsh", RiskYellow, true, DeathPartial, 250, pt(0, 0, 0), pt(1, 1, 1))
	assert.Equal(t, uint8(100), r.PartialDropPercent)
}

func TestRegionContains(t *testing.T) {
	r := NewRegion("Keep", RiskGreen, false, DeathSafe, 0, pt(10, 10, 10), pt(0, 0, 0))

	tests := []struct {
		name string
		p    model.Point
		want bool
	}{
		{"center", pt(5, 5, 5), true},
		{"min corner", pt(0, 0, 0), true},
		{"max corner", pt(10, 10, 10), true},
		{"on face", pt(10, 5, 5), true},
		{"outside x", pt(10.001, 5, 5), false},
		{"outside y below", pt(5, -0.5, 5), false},
		{"outside z", pt(5, 5, 11), false},
		{"far away", pt(20, 0, 0), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, r.Contains(tt.p))
		})
	}
}

func TestRegionContainsDegenerateBox(t *testing.T) {
	// Плоский регион (одинаковые углы по Y) всё ещё содержит свою плоскость.
	r := NewRegion("Floor", RiskRed, true, DeathFullLoot, 0, pt(0, 64, 0), pt(16, 64, 16))

	assert.True(t, r.Contains(pt(8, 64, 8)))
	assert.False(t, r.Contains(pt(8, 65, 8)))
}
