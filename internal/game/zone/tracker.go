package zone

import (
	"sync"

	"github.com/google/uuid"
)

// PlayerZoneState is the tracked zone of one online player.
type PlayerZoneState struct {
	Zone string
	Risk Risk
	// BarID is the handle of the zone status bar shown to the player.
	BarID uuid.UUID
	// DangerConfirmed lasts for the session: it survives zone crossings and
	// dies with the record on leave.
	DangerConfirmed bool
}

// Tracker maps online players to their current zone.
// Thread-safe; readers get copies.
type Tracker struct {
	mu      sync.RWMutex
	players map[uuid.UUID]PlayerZoneState
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{players: make(map[uuid.UUID]PlayerZoneState)}
}

// Get returns a copy of the player's state.
func (t *Tracker) Get(id uuid.UUID) (PlayerZoneState, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	st, ok := t.players[id]
	return st, ok
}

// Set inserts or overwrites the player's state.
func (t *Tracker) Set(id uuid.UUID, st PlayerZoneState) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.players[id] = st
}

// Remove drops the player's state and returns it. The caller releases the bar.
func (t *Tracker) Remove(id uuid.UUID) (PlayerZoneState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.players[id]
	if ok {
		delete(t.players, id)
	}

	return st, ok
}

// ConfirmDanger marks the player as having confirmed dangerous-zone entry.
// Returns false (and does nothing) if the player is not tracked.
func (t *Tracker) ConfirmDanger(id uuid.UUID) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.players[id]
	if !ok {
		return false
	}
	st.DangerConfirmed = true
	t.players[id] = st

	return true
}

// DangerConfirmed reports whether the tracked player confirmed dangerous entry.
func (t *Tracker) DangerConfirmed(id uuid.UUID) bool {
	st, ok := t.Get(id)
	return ok && st.DangerConfirmed
}

// Commit moves a tracked player into zoneName, keeping BarID and
// DangerConfirmed. Read-modify-write happens under one lock so a
// confirmation written concurrently is never lost.
// Returns false if the player is not tracked (e.g. left meanwhile).
func (t *Tracker) Commit(id uuid.UUID, zoneName string, risk Risk) (PlayerZoneState, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.players[id]
	if !ok {
		return PlayerZoneState{}, false
	}
	st.Zone = zoneName
	st.Risk = risk
	t.players[id] = st

	return st, true
}

// Len returns the number of tracked players.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.players)
}

// IDs returns the ids of all tracked players.
func (t *Tracker) IDs() []uuid.UUID {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]uuid.UUID, 0, len(t.players))
	for id := range t.players {
		ids = append(ids, id)
	}

	return ids
}

// CountByZone returns how many tracked players are in each zone.
func (t *Tracker) CountByZone() map[string]int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	counts := make(map[string]int)
	for _, st := range t.players {
		counts[st.Zone]++
	}

	return counts
}

// Clear drops every record (shutdown).
func (t *Tracker) Clear() {
	t.mu.Lock()
	defer t.mu.Unlock()
	clear(t.players)
}
