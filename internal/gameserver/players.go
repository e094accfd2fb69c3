package gameserver

import (
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/model"
)

// Registry holds online players.
// Thread-safe for concurrent access.
type Registry struct {
	mu   sync.RWMutex
	byID map[uuid.UUID]*model.Player
	// byName is keyed by lowercased name for case-insensitive lookup.
	byName map[string]*model.Player
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:   make(map[uuid.UUID]*model.Player, 256),
		byName: make(map[string]*model.Player, 256),
	}
}

// Add registers a player. A player with the same id is replaced (rejoin
// without leave). Returns ErrNameTaken if another online player has the name.
func (r *Registry) Add(p *model.Player) error {
	key := strings.ToLower(p.Name())

	r.mu.Lock()
	defer r.mu.Unlock()

	if other, ok := r.byName[key]; ok && other.ID() != p.ID() {
		return ErrNameTaken
	}

	if prev, ok := r.byID[p.ID()]; ok {
		delete(r.byName, strings.ToLower(prev.Name()))
	}

	r.byID[p.ID()] = p
	r.byName[key] = p

	return nil
}

// Remove unregisters a player. Returns nil if the player was not online.
func (r *Registry) Remove(id uuid.UUID) *model.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok {
		return nil
	}

	delete(r.byID, id)
	delete(r.byName, strings.ToLower(p.Name()))

	return p
}

// Get returns the online player with this id, or nil.
func (r *Registry) Get(id uuid.UUID) *model.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byID[id]
}

// FindPlayerByName finds an online player by name (case-insensitive).
func (r *Registry) FindPlayerByName(name string) *model.Player {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.byName[strings.ToLower(name)]
}

// ForEachPlayer iterates over all online players.
// If fn returns false, iteration stops.
func (r *Registry) ForEachPlayer(fn func(*model.Player) bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if !fn(p) {
			return
		}
	}
}

// PlayerCount returns number of online players.
func (r *Registry) PlayerCount() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// Clear removes every player.
func (r *Registry) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	clear(r.byID)
	clear(r.byName)
}
