package zone

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"sync"

	"github.com/udisondev/riskzones/internal/model"
)

const (
	// cellSize is the grid cell edge in world units (XZ plane, Y is height).
	cellSize = 256.0
	// maxCellsPerRegion: regions spanning more cells go to the wide list
	// instead of being registered in every cell.
	maxCellsPerRegion = 4096
	// maxCellCoord bounds cell coordinates so float->int64 conversion is exact.
	maxCellCoord = 1 << 40
)

type cellKey struct {
	cx, cz int64
}

// Index is the mutable set of regions queried on every movement.
//
// Regions are kept in insertion order; ZoneAt returns the first region that
// contains the point. The grid only narrows the candidates: every cell list
// holds positions into regions in ascending order, so the smallest matching
// position is the first match of a plain linear scan.
type Index struct {
	settings Settings

	mu      sync.RWMutex
	regions []Region
	grid    map[cellKey][]int
	wide    []int
}

// NewIndex creates an index over regions (in the given order).
func NewIndex(settings Settings, regions []Region) *Index {
	settings.TrashChancePercent = min(settings.TrashChancePercent, 100)
	settings.DefaultPartialDrop = min(settings.DefaultPartialDrop, 100)

	idx := &Index{
		settings: settings,
		regions:  make([]Region, 0, len(regions)),
	}
	idx.regions = append(idx.regions, regions...)
	idx.rebuildGrid()

	return idx
}

// LoadIndex reads all regions from the store and builds the index.
// Called once at startup.
func LoadIndex(ctx context.Context, store Store, settings Settings) (*Index, error) {
	regions, err := store.LoadRegions(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading zone regions: %w", err)
	}

	usable := regions[:0:0]
	for _, r := range regions {
		if IsReservedName(r.Name) {
			slog.Warn("skipping zone region with reserved name", "zone", r.Name)
			continue
		}
		usable = append(usable, r)
	}

	idx := NewIndex(settings, usable)

	slog.Info("zone index initialized",
		"regions", idx.ZoneCount(),
		"grid_cells", idx.cellCount(),
		"wilderness", settings.Wilderness.Risk)

	return idx, nil
}

// Settings returns the index-wide settings.
func (x *Index) Settings() Settings { return x.settings }

// TrashChancePercent returns the share of full-loot drops that get destroyed.
func (x *Index) TrashChancePercent() uint8 { return x.settings.TrashChancePercent }

// NewbieRequiredHours returns the account age needed to enter Red/Black zones.
func (x *Index) NewbieRequiredHours() uint64 { return x.settings.NewbieRequiredHours }

// DefaultPartialDrop returns the partial-drop percent for new zones and wilderness.
func (x *Index) DefaultPartialDrop() uint8 { return x.settings.DefaultPartialDrop }

// ZoneAt resolves the zone policy at p: the first region containing p in
// insertion order, or the wilderness policy.
func (x *Index) ZoneAt(p model.Point) Lookup {
	x.mu.RLock()
	defer x.mu.RUnlock()

	if pos, ok := x.firstMatch(p); ok {
		return x.regions[pos].Lookup()
	}

	return x.wildernessLookup()
}

// ZoneNameAt returns the zone name at p.
func (x *Index) ZoneNameAt(p model.Point) string {
	return x.ZoneAt(p).Name
}

// RiskAt returns the risk tier at p.
func (x *Index) RiskAt(p model.Point) Risk {
	return x.ZoneAt(p).Risk
}

// PvPAt reports whether PvP is allowed at p.
func (x *Index) PvPAt(p model.Point) bool {
	return x.ZoneAt(p).PvPEnabled
}

// AddRegion appends a region. Name uniqueness is the caller's job.
func (x *Index) AddRegion(r Region) {
	x.mu.Lock()
	defer x.mu.Unlock()

	x.regions = append(x.regions, r)
	x.register(len(x.regions)-1, r)
}

// RemoveRegion removes every region named name.
// Returns true if something was removed.
func (x *Index) RemoveRegion(name string) bool {
	x.mu.Lock()
	defer x.mu.Unlock()

	kept := make([]Region, 0, len(x.regions))
	for _, r := range x.regions {
		if r.Name != name {
			kept = append(kept, r)
		}
	}
	if len(kept) == len(x.regions) {
		return false
	}

	x.regions = kept
	x.rebuildGrid()

	return true
}

// ZoneExists reports whether a region with this exact name is defined.
func (x *Index) ZoneExists(name string) bool {
	x.mu.RLock()
	defer x.mu.RUnlock()

	for _, r := range x.regions {
		if r.Name == name {
			return true
		}
	}

	return false
}

// Region returns the region with this name.
func (x *Index) Region(name string) (Region, bool) {
	x.mu.RLock()
	defer x.mu.RUnlock()

	for _, r := range x.regions {
		if r.Name == name {
			return r, true
		}
	}

	return Region{}, false
}

// ZoneCount returns the number of defined regions.
func (x *Index) ZoneCount() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.regions)
}

// AllRegions returns a snapshot of all regions in insertion order.
func (x *Index) AllRegions() []Region {
	x.mu.RLock()
	defer x.mu.RUnlock()

	out := make([]Region, len(x.regions))
	copy(out, x.regions)

	return out
}

func (x *Index) wildernessLookup() Lookup {
	w := x.settings.Wilderness
	return Lookup{
		Name:               WildernessName,
		Risk:               w.Risk,
		PvPEnabled:         w.PvPEnabled,
		DeathRule:          w.DeathRule,
		PartialDropPercent: x.settings.DefaultPartialDrop,
	}
}

// firstMatch returns the smallest region position containing p.
// Caller holds x.mu.
// A point that cannot be gridded (NaN, Inf, far out) can only be inside a
// wide region, so skipping the grid lookup for it loses nothing.
func (x *Index) firstMatch(p model.Point) (int, bool) {
	best := -1
	if key, ok := cellOf(p.X, p.Z); ok {
		for _, pos := range x.grid[key] {
			if x.regions[pos].Contains(p) {
				best = pos
				break
			}
		}
	}
	for _, pos := range x.wide {
		if best >= 0 && pos > best {
			break
		}
		if x.regions[pos].Contains(p) {
			best = pos
			break
		}
	}

	return best, best >= 0
}

// register adds region position pos to every cell its XZ footprint covers.
// Caller holds x.mu for writing.
func (x *Index) register(pos int, r Region) {
	lo, okLo := cellOf(r.Min.X, r.Min.Z)
	hi, okHi := cellOf(r.Max.X, r.Max.Z)
	if !okLo || !okHi {
		x.wide = append(x.wide, pos)
		return
	}

	spanX := float64(hi.cx-lo.cx) + 1
	spanZ := float64(hi.cz-lo.cz) + 1
	if spanX*spanZ > maxCellsPerRegion {
		x.wide = append(x.wide, pos)
		return
	}

	for cx := lo.cx; cx <= hi.cx; cx++ {
		for cz := lo.cz; cz <= hi.cz; cz++ {
			key := cellKey{cx: cx, cz: cz}
			x.grid[key] = append(x.grid[key], pos)
		}
	}
}

// rebuildGrid re-registers all regions. Caller holds x.mu for writing.
func (x *Index) rebuildGrid() {
	x.grid = make(map[cellKey][]int)
	x.wide = nil

	for i, r := range x.regions {
		x.register(i, r)
	}
}

func (x *Index) cellCount() int {
	x.mu.RLock()
	defer x.mu.RUnlock()
	return len(x.grid)
}

// cellOf maps XZ coordinates to a grid cell, flooring toward -inf so
// negative coordinates land in the right cell. Returns false for NaN, Inf
// and coordinates too far out to grid.
func cellOf(xc, zc float64) (cellKey, bool) {
	fx := math.Floor(xc / cellSize)
	fz := math.Floor(zc / cellSize)
	if !(math.Abs(fx) <= maxCellCoord && math.Abs(fz) <= maxCellCoord) {
		return cellKey{}, false
	}

	return cellKey{cx: int64(fx), cz: int64(fz)}, true
}
