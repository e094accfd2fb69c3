package crossing

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/game/zone"
)

// EventType names a published zone event.
type EventType string

const (
	EventZoneEntered EventType = "zone.entered"
	EventZoneBlocked EventType = "zone.blocked"
	EventPlayerDied  EventType = "player.died"
)

// Event is a zone transition or death, published for downstream consumers.
type Event struct {
	ID           uuid.UUID `json:"id"`
	Type         EventType `json:"type"`
	PlayerID     uuid.UUID `json:"player_id"`
	Zone         string    `json:"zone"`
	PrevZone     string    `json:"prev_zone,omitempty"`
	Risk         zone.Risk `json:"risk"`
	DropPercent  uint8     `json:"drop_percent,omitempty"`
	TrashPercent uint8     `json:"trash_percent,omitempty"`
	At           time.Time `json:"at"`
}

// Publisher delivers events. Failures are logged by the caller and never
// change a decision.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

type nopPublisher struct{}

func (nopPublisher) Publish(context.Context, Event) error { return nil }
