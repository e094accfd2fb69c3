package testutil

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/game/crossing"
	"github.com/udisondev/riskzones/internal/game/zone"
)

// MockRegionStore — in-memory имплементация zone.Store для unit тестов.
// Не требует реального PostgreSQL.
type MockRegionStore struct {
	mu      sync.RWMutex
	regions []zone.Region
	owners  map[string]uuid.UUID

	// SaveErr/DeleteErr/LoadErr заставляют соответствующий метод упасть.
	SaveErr   error
	DeleteErr error
	LoadErr   error

	saves   atomic.Int32
	deletes atomic.Int32
}

// NewMockRegionStore создаёт store с начальными регионами (в порядке вставки).
func NewMockRegionStore(regions ...zone.Region) *MockRegionStore {
	return &MockRegionStore{
		regions: append([]zone.Region(nil), regions...),
		owners:  make(map[string]uuid.UUID),
	}
}

// SaveRegion добавляет регион; дубликат имени — zone.ErrZoneExists.
func (m *MockRegionStore) SaveRegion(ctx context.Context, r zone.Region, createdBy uuid.UUID) error {
	m.saves.Add(1)
	if m.SaveErr != nil {
		return m.SaveErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.regions {
		if existing.Name == r.Name {
			return fmt.Errorf("%w: %q", zone.ErrZoneExists, r.Name)
		}
	}

	m.regions = append(m.regions, r)
	m.owners[r.Name] = createdBy

	return nil
}

// DeleteRegion удаляет регион. Отсутствующее имя — не ошибка.
func (m *MockRegionStore) DeleteRegion(ctx context.Context, name string) error {
	m.deletes.Add(1)
	if m.DeleteErr != nil {
		return m.DeleteErr
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.regions[:0]
	for _, r := range m.regions {
		if r.Name != name {
			kept = append(kept, r)
		}
	}
	m.regions = kept
	delete(m.owners, name)

	return nil
}

// LoadRegions возвращает копию всех регионов.
func (m *MockRegionStore) LoadRegions(ctx context.Context) ([]zone.Region, error) {
	if m.LoadErr != nil {
		return nil, m.LoadErr
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return append([]zone.Region(nil), m.regions...), nil
}

// Regions возвращает снимок сохранённых регионов.
func (m *MockRegionStore) Regions() []zone.Region {
	regions, _ := m.LoadRegions(context.Background())
	return regions
}

// Owner возвращает автора региона.
func (m *MockRegionStore) Owner(name string) (uuid.UUID, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.owners[name]
	return id, ok
}

// CreatedBy реализует zone.Store. uuid.Nil считается «автор не записан».
func (m *MockRegionStore) CreatedBy(ctx context.Context, name string) (uuid.UUID, bool, error) {
	if m.LoadErr != nil {
		return uuid.Nil, false, m.LoadErr
	}
	id, ok := m.Owner(name)
	if !ok || id == uuid.Nil {
		return uuid.Nil, false, nil
	}
	return id, true, nil
}

// Saves возвращает число вызовов SaveRegion.
func (m *MockRegionStore) Saves() int { return int(m.saves.Load()) }

// Deletes возвращает число вызовов DeleteRegion.
func (m *MockRegionStore) Deletes() int { return int(m.deletes.Load()) }

// MockAgeSource — in-memory newbie.AgeSource. Возраст задаётся в часах.
type MockAgeSource struct {
	mu    sync.RWMutex
	hours map[uuid.UUID]float64
	err   error
	calls atomic.Int32
}

// NewMockAgeSource создаёт пустой источник (ни у кого нет профиля).
func NewMockAgeSource() *MockAgeSource {
	return &MockAgeSource{hours: make(map[uuid.UUID]float64)}
}

// SetAge задаёт возраст аккаунта игрока.
func (m *MockAgeSource) SetAge(id uuid.UUID, hours float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hours[id] = hours
}

// SetErr заставляет все запросы падать с err (nil — вернуть в норму).
func (m *MockAgeSource) SetErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// AccountAgeHours реализует newbie.AgeSource.
func (m *MockAgeSource) AccountAgeHours(ctx context.Context, id uuid.UUID) (float64, bool, error) {
	m.calls.Add(1)

	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.err != nil {
		return 0, false, m.err
	}
	hours, ok := m.hours[id]
	return hours, ok, nil
}

// Calls возвращает число запросов.
func (m *MockAgeSource) Calls() int { return int(m.calls.Load()) }

// BarCall — одно обращение к бару.
type BarCall struct {
	Op       string
	PlayerID uuid.UUID
	BarID    uuid.UUID
	Bar      crossing.Bar
}

// SentNotification — одно уведомление игроку.
type SentNotification struct {
	PlayerID     uuid.UUID
	Notification crossing.Notification
}

// RecordingEffects — crossing.Effects, запоминающий все вызовы.
type RecordingEffects struct {
	mu            sync.Mutex
	bars          []BarCall
	notifications []SentNotification
	live          map[uuid.UUID]crossing.Bar
}

// NewRecordingEffects создаёт пустой recorder.
func NewRecordingEffects() *RecordingEffects {
	return &RecordingEffects{live: make(map[uuid.UUID]crossing.Bar)}
}

func (r *RecordingEffects) ShowBar(playerID uuid.UUID, bar crossing.Bar) uuid.UUID {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.New()
	r.live[id] = bar
	r.bars = append(r.bars, BarCall{Op: "show", PlayerID: playerID, BarID: id, Bar: bar})
	return id
}

func (r *RecordingEffects) UpdateBar(barID uuid.UUID, bar crossing.Bar) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.live[barID] = bar
	r.bars = append(r.bars, BarCall{Op: "update", BarID: barID, Bar: bar})
}

func (r *RecordingEffects) RemoveBar(barID uuid.UUID) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.live, barID)
	r.bars = append(r.bars, BarCall{Op: "remove", BarID: barID})
}

func (r *RecordingEffects) Notify(playerID uuid.UUID, n crossing.Notification) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notifications = append(r.notifications, SentNotification{PlayerID: playerID, Notification: n})
}

// BarCalls возвращает копию истории баров.
func (r *RecordingEffects) BarCalls() []BarCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]BarCall(nil), r.bars...)
}

// LiveBar возвращает текущее состояние бара.
func (r *RecordingEffects) LiveBar(barID uuid.UUID) (crossing.Bar, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	bar, ok := r.live[barID]
	return bar, ok
}

// LiveBars возвращает число неснятых баров.
func (r *RecordingEffects) LiveBars() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.live)
}

// Notifications возвращает копию отправленных уведомлений.
func (r *RecordingEffects) Notifications() []SentNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]SentNotification(nil), r.notifications...)
}

// RecordingPublisher — crossing.Publisher, запоминающий события.
type RecordingPublisher struct {
	mu     sync.Mutex
	events []crossing.Event
	Err    error
}

func (p *RecordingPublisher) Publish(ctx context.Context, ev crossing.Event) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.Err != nil {
		return p.Err
	}
	p.events = append(p.events, ev)
	return nil
}

// Events возвращает копию опубликованных событий.
func (p *RecordingPublisher) Events() []crossing.Event {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]crossing.Event(nil), p.events...)
}
