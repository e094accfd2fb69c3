package zone

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/udisondev/riskzones/internal/model"
)

func testSettings() Settings {
	return Settings{
		Wilderness: Wilderness{
			Risk:       RiskYellow,
			PvPEnabled: true,
			DeathRule:  DeathPartial,
		},
		TrashChancePercent:  50,
		NewbieRequiredHours: 24,
		DefaultPartialDrop:  30,
	}
}

// linearFirstMatch is the reference lookup the grid must agree with.
func linearFirstMatch(regions []Region, p model.Point) (string, bool) {
	for _, r := range regions {
		if r.Contains(p) {
			return r.Name, true
		}
	}
	return "", false
}

func TestIndexWildernessWhenEmpty(t *testing.T) {
	idx := NewIndex(testSettings(), nil)

	got := idx.ZoneAt(pt(0, 64, 0))

	assert.True(t, got.IsWilderness())
	assert.Equal(t, WildernessName, got.Name)
	assert.Equal(t, RiskYellow, got.Risk)
	assert.True(t, got.PvPEnabled)
	assert.Equal(t, DeathPartial, got.DeathRule)
	assert.Equal(t, uint8(30), got.PartialDropPercent)
}

func TestIndexFirstMatchWins(t *testing.T) {
	r1 := NewRegion("Inner", RiskGreen, false, DeathSafe, 0, pt(0, 0, 0), pt(10, 10, 10))
	r2 := NewRegion("Outer", RiskRed, true, DeathFullLoot, 0, pt(-100, -100, -100), pt(100, 100, 100))
	idx := NewIndex(testSettings(), []Region{r1, r2})

	assert.Equal(t, "Inner", idx.ZoneNameAt(pt(5, 5, 5)), "overlap resolves to the earlier region")
	assert.Equal(t, "Outer", idx.ZoneNameAt(pt(50, 5, 5)))
	assert.Equal(t, WildernessName, idx.ZoneNameAt(pt(500, 5, 5)))

	// Обратный порядок вставки меняет победителя.
	idx = NewIndex(testSettings(), []Region{r2, r1})
	assert.Equal(t, "Outer", idx.ZoneNameAt(pt(5, 5, 5)))
}

func TestIndexQueriesAgree(t *testing.T) {
	keep := NewRegion("Keep", RiskGreen, false, DeathSafe, 0, pt(0, 0, 0), pt(100, 100, 100))
	idx := NewIndex(testSettings(), []Region{keep})

	p := pt(50, 50, 50)
	assert.Equal(t, "Keep", idx.ZoneNameAt(p))
	assert.Equal(t, RiskGreen, idx.RiskAt(p))
	assert.False(t, idx.PvPAt(p))

	outside := pt(150, 50, 50)
	assert.Equal(t, RiskYellow, idx.RiskAt(outside))
	assert.True(t, idx.PvPAt(outside))
}

func TestIndexAddRemove(t *testing.T) {
	idx := NewIndex(testSettings(), nil)
	a := NewRegion("A", RiskRed, true, DeathFullLoot, 0, pt(0, 0, 0), pt(10, 10, 10))
	b := NewRegion("B", RiskGreen, false, DeathSafe, 0, pt(0, 0, 0), pt(10, 10, 10))

	idx.AddRegion(a)
	idx.AddRegion(b)
	require.Equal(t, 2, idx.ZoneCount())
	assert.Equal(t, "A", idx.ZoneNameAt(pt(1, 1, 1)))

	assert.True(t, idx.RemoveRegion("A"))
	assert.False(t, idx.RemoveRegion("A"), "second remove finds nothing")
	assert.False(t, idx.ZoneExists("A"))
	assert.Equal(t, "B", idx.ZoneNameAt(pt(1, 1, 1)), "next region takes over after removal")

	got, ok := idx.Region("B")
	require.True(t, ok)
	assert.Equal(t, b, got)

	_, ok = idx.Region("A")
	assert.False(t, ok)
}

func TestIndexAllRegionsIsSnapshot(t *testing.T) {
	a := NewRegion("A", RiskRed, true, DeathFullLoot, 0, pt(0, 0, 0), pt(1, 1, 1))
	idx := NewIndex(testSettings(), []Region{a})

	all := idx.AllRegions()
	all[0].Name = "mutated"

	assert.True(t, idx.ZoneExists("A"))
	assert.False(t, idx.ZoneExists("mutated"))
}

func TestIndexCapsSettings(t *testing.T) {
	s := testSettings()
	s.TrashChancePercent = 200
	s.DefaultPartialDrop = 255

	idx := NewIndex(s, nil)

	assert.Equal(t, uint8(100), idx.TrashChancePercent())
	assert.Equal(t, uint8(100), idx.DefaultPartialDrop())
	assert.Equal(t, uint64(24), idx.NewbieRequiredHours())
}

func TestIndexNegativeCoordinates(t *testing.T) {
	// Регион пересекает границы ячеек в отрицательной области.
	r := NewRegion("Crypt", RiskBlack, true, DeathFullLoot, 0, pt(-300, -64, -300), pt(-1, 0, -1))
	idx := NewIndex(testSettings(), []Region{r})

	assert.Equal(t, "Crypt", idx.ZoneNameAt(pt(-300, -64, -300)))
	assert.Equal(t, "Crypt", idx.ZoneNameAt(pt(-256.5, -10, -1)))
	assert.Equal(t, "Crypt", idx.ZoneNameAt(pt(-1, 0, -1)))
	assert.Equal(t, WildernessName, idx.ZoneNameAt(pt(-0.5, 0, -0.5)))
	assert.Equal(t, WildernessName, idx.ZoneNameAt(pt(-301, 0, -10)))
}

func TestIndexWideRegionPriority(t *testing.T) {
	// Огромный регион уходит в wide-список, но порядок вставки соблюдается.
	world := NewRegion("World", RiskRed, true, DeathFullLoot, 0, pt(-1e6, -1e6, -1e6), pt(1e6, 1e6, 1e6))
	town := NewRegion("Town", RiskGreen, false, DeathSafe, 0, pt(0, 0, 0), pt(50, 50, 50))

	idx := NewIndex(testSettings(), []Region{world, town})
	require.NotEmpty(t, idx.wide)
	assert.Equal(t, "World", idx.ZoneNameAt(pt(10, 10, 10)))

	idx = NewIndex(testSettings(), []Region{town, world})
	assert.Equal(t, "Town", idx.ZoneNameAt(pt(10, 10, 10)))
	assert.Equal(t, "World", idx.ZoneNameAt(pt(100, 10, 10)))
}

func TestIndexUngriddablePoints(t *testing.T) {
	infinite := NewRegion("Everything", RiskBlack, true, DeathFullLoot, 0,
		pt(math.Inf(-1), math.Inf(-1), math.Inf(-1)), pt(math.Inf(1), math.Inf(1), math.Inf(1)))
	small := NewRegion("Small", RiskGreen, false, DeathSafe, 0, pt(0, 0, 0), pt(1, 1, 1))
	idx := NewIndex(testSettings(), []Region{small, infinite})

	assert.Equal(t, "Small", idx.ZoneNameAt(pt(0.5, 0.5, 0.5)))
	assert.Equal(t, "Everything", idx.ZoneNameAt(pt(1e300, 0, -1e300)))
	assert.Equal(t, WildernessName, idx.ZoneNameAt(pt(math.NaN(), 0, 0)), "NaN is inside nothing")
}

func TestIndexMatchesLinearScan(t *testing.T) {
	rng := rand.New(rand.NewPCG(1, 2))
	coord := func(span float64) float64 { return (rng.Float64()*2 - 1) * span }

	var regions []Region
	for i := range 200 {
		span := 600.0
		if i%25 == 0 {
			span = 40000 // часть регионов попадает в wide
		}
		a := pt(coord(2000), coord(128), coord(2000))
		b := pt(a.X+coord(span), a.Y+coord(64), a.Z+coord(span))
		risk := Risk(rng.IntN(4))
		pvp, rule := risk.DefaultRules()
		regions = append(regions, NewRegion(regionName(i), risk, pvp, rule, 25, a, b))
	}

	idx := NewIndex(testSettings(), regions)

	for range 5000 {
		p := pt(coord(3000), coord(200), coord(3000))
		want, ok := linearFirstMatch(regions, p)
		if !ok {
			want = WildernessName
		}
		require.Equal(t, want, idx.ZoneNameAt(p), "point %v", p)
	}

	// После удаления сетка перестраивается и по-прежнему совпадает с линейным проходом.
	for i := 0; i < len(regions); i += 3 {
		idx.RemoveRegion(regions[i].Name)
	}
	var kept []Region
	for i, r := range regions {
		if i%3 != 0 {
			kept = append(kept, r)
		}
	}
	for range 2000 {
		p := pt(coord(3000), coord(200), coord(3000))
		want, ok := linearFirstMatch(kept, p)
		if !ok {
			want = WildernessName
		}
		require.Equal(t, want, idx.ZoneNameAt(p), "point %v after removal", p)
	}
}

func TestIndexConcurrentAccess(t *testing.T) {
	idx := NewIndex(testSettings(), nil)

	var wg sync.WaitGroup
	for w := range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				name := regionName(w*1000 + i)
				idx.AddRegion(NewRegion(name, RiskRed, true, DeathFullLoot, 0, pt(0, 0, 0), pt(10, 10, 10)))
				_ = idx.ZoneAt(pt(5, 5, 5))
				if i%2 == 0 {
					idx.RemoveRegion(name)
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 200, idx.ZoneCount())
}

func regionName(i int) string {
	return fmt.Sprintf("zone-%d", i)
}
