package zone

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/model"
)

var (
	// ErrIncompleteSelection: create called before both corners were set.
	ErrIncompleteSelection = errors.New("both selection corners must be set")
	// ErrZoneExists: a zone with this name is already defined.
	ErrZoneExists = errors.New("zone already exists")
	// ErrZoneNotFound: no zone with this name.
	ErrZoneNotFound = errors.New("zone not found")
	// ErrUnknownRisk: the risk token is not green, yellow, red or black.
	ErrUnknownRisk = errors.New("unknown risk level")
	// ErrEmptyName: zone names must not be blank.
	ErrEmptyName = errors.New("zone name is empty")
	// ErrReservedName: the name belongs to the wilderness fallback.
	ErrReservedName = errors.New("zone name is reserved")
)

// IsReservedName reports whether name would be mistaken for the wilderness
// zone. Crossings compare names, so such a region would be invisible to them.
func IsReservedName(name string) bool {
	return strings.EqualFold(strings.TrimSpace(name), WildernessName)
}

// Store is the durable home of regions.
// SaveRegion must fail with ErrZoneExists (wrapped) on a duplicate name.
// DeleteRegion of an absent name is not an error.
// CreatedBy returns false when the region or its author is unknown.
type Store interface {
	SaveRegion(ctx context.Context, r Region, createdBy uuid.UUID) error
	DeleteRegion(ctx context.Context, name string) error
	LoadRegions(ctx context.Context) ([]Region, error)
	CreatedBy(ctx context.Context, name string) (uuid.UUID, bool, error)
}

// Editor runs the admin region-authoring workflow: corner selection,
// create and delete. The store is written first; the index only changes
// after a successful write, so memory never holds what the store rejected.
type Editor struct {
	index *Index
	store Store

	// opMu serializes create/delete so check-then-write is atomic.
	opMu sync.Mutex

	selMu sync.RWMutex
	sel   Selection
}

// NewEditor creates an editor over index and store.
func NewEditor(index *Index, store Store) *Editor {
	return &Editor{index: index, store: store}
}

// SetPos1 sets corner 1 of the shared selection.
func (e *Editor) SetPos1(p model.Point) Selection {
	e.selMu.Lock()
	defer e.selMu.Unlock()

	e.sel.setPos1(p)
	return e.sel
}

// SetPos2 sets corner 2 of the shared selection.
func (e *Editor) SetPos2(p model.Point) Selection {
	e.selMu.Lock()
	defer e.selMu.Unlock()

	e.sel.setPos2(p)
	return e.sel
}

// Selection returns the current selection.
func (e *Editor) Selection() Selection {
	e.selMu.RLock()
	defer e.selMu.RUnlock()
	return e.sel
}

// ClearSelection resets both corners.
func (e *Editor) ClearSelection() {
	e.selMu.Lock()
	defer e.selMu.Unlock()
	e.sel = Selection{}
}

// Create defines a zone from the current selection. PvP and death rule
// follow the risk tier; the partial-drop percent is the index default.
// Validation errors leave everything untouched.
func (e *Editor) Create(ctx context.Context, name, riskToken string, createdBy uuid.UUID) (Region, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Region{}, ErrEmptyName
	}
	if IsReservedName(name) {
		return Region{}, fmt.Errorf("%w: %q", ErrReservedName, name)
	}

	risk, ok := ParseRisk(riskToken)
	if !ok {
		return Region{}, fmt.Errorf("%w %q: use green, yellow, red or black", ErrUnknownRisk, riskToken)
	}

	e.opMu.Lock()
	defer e.opMu.Unlock()

	sel := e.Selection()
	if !sel.IsComplete() {
		return Region{}, ErrIncompleteSelection
	}

	if e.index.ZoneExists(name) {
		return Region{}, fmt.Errorf("%w: %q", ErrZoneExists, name)
	}

	pvp, rule := risk.DefaultRules()
	region := NewRegion(name, risk, pvp, rule, e.index.DefaultPartialDrop(), sel.pos1, sel.pos2)

	if err := e.store.SaveRegion(ctx, region, createdBy); err != nil {
		return Region{}, fmt.Errorf("saving zone %q: %w", name, err)
	}

	e.index.AddRegion(region)
	e.ClearSelection()

	slog.Info("zone created",
		"zone", region.Name,
		"risk", region.Risk,
		"min", region.Min,
		"max", region.Max,
		"pvp", region.PvPEnabled,
		"death_rule", region.DeathRule)

	return region, nil
}

// Delete removes a zone from the store, then from the index.
func (e *Editor) Delete(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)

	e.opMu.Lock()
	defer e.opMu.Unlock()

	if !e.index.ZoneExists(name) {
		return fmt.Errorf("%w: %q", ErrZoneNotFound, name)
	}

	if err := e.store.DeleteRegion(ctx, name); err != nil {
		return fmt.Errorf("deleting zone %q: %w", name, err)
	}

	e.index.RemoveRegion(name)

	slog.Info("zone deleted", "zone", name)

	return nil
}

// Zone returns a defined zone together with its author.
// The author is uuid.Nil when none was recorded.
func (e *Editor) Zone(ctx context.Context, name string) (Region, uuid.UUID, error) {
	name = strings.TrimSpace(name)

	region, ok := e.index.Region(name)
	if !ok {
		return Region{}, uuid.Nil, fmt.Errorf("%w: %q", ErrZoneNotFound, name)
	}

	owner, _, err := e.store.CreatedBy(ctx, name)
	if err != nil {
		return Region{}, uuid.Nil, fmt.Errorf("reading author of zone %q: %w", name, err)
	}

	return region, owner, nil
}

// List returns all zones in lookup priority order.
func (e *Editor) List() []Region {
	return e.index.AllRegions()
}
