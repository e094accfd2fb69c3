package model

import (
	"sync"

	"github.com/google/uuid"
)

// Player — онлайн-игрок с точки зрения зон: идентичность, уровень доступа,
// последняя известная позиция и очередь ответов на команды.
// Полная сущность игрока живёт в движке.
type Player struct {
	id   uuid.UUID
	name string

	mu          sync.RWMutex
	accessLevel int32
	position    Point
	messages    []string
}

// NewPlayer создаёт игрока с уровнем доступа 0 (обычный игрок).
func NewPlayer(id uuid.UUID, name string) *Player {
	return &Player{id: id, name: name}
}

// ID возвращает UUID игрока.
func (p *Player) ID() uuid.UUID { return p.id }

// Name возвращает имя игрока.
func (p *Player) Name() string { return p.name }

// AccessLevel возвращает уровень доступа (0 — игрок, 1+ — GM).
func (p *Player) AccessLevel() int32 {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.accessLevel
}

// SetAccessLevel задаёт уровень доступа.
func (p *Player) SetAccessLevel(level int32) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accessLevel = level
}

// Position возвращает последнюю известную позицию.
func (p *Player) Position() Point {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.position
}

// SetPosition обновляет позицию.
func (p *Player) SetPosition(pos Point) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.position = pos
}

// Reply ставит сообщение в очередь на отправку игроку.
func (p *Player) Reply(msg string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.messages = append(p.messages, msg)
}

// LastMessage возвращает последнее сообщение в очереди.
func (p *Player) LastMessage() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if len(p.messages) == 0 {
		return ""
	}
	return p.messages[len(p.messages)-1]
}

// TakeMessages забирает и очищает очередь сообщений.
func (p *Player) TakeMessages() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := p.messages
	p.messages = nil
	return msgs
}
