// Package eventbus publishes zone events to Kafka.
package eventbus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/udisondev/riskzones/internal/game/crossing"
)

// messageWriter is the subset of *kafka.Writer the bus uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Bus implements crossing.Publisher over a single Kafka topic.
// Messages are keyed by player id so one player's events stay ordered.
type Bus struct {
	writer messageWriter
	topic  string
}

// NewBus creates an async writer: Publish never waits for the broker,
// delivery failures are logged from the completion callback.
func NewBus(brokers []string, topic string) *Bus {
	w := &kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		Async:        true,
		BatchTimeout: 50 * time.Millisecond,
		RequiredAcks: kafka.RequireOne,
		Completion: func(msgs []kafka.Message, err error) {
			if err != nil {
				slog.Error("delivering zone events", "topic", topic, "count", len(msgs), "error", err)
			}
		},
	}
	return newBus(w, topic)
}

func newBus(w messageWriter, topic string) *Bus {
	return &Bus{writer: w, topic: topic}
}

// Publish implements crossing.Publisher.
func (b *Bus) Publish(ctx context.Context, ev crossing.Event) error {
	if ev.ID == uuid.Nil || ev.Type == "" || ev.PlayerID == uuid.Nil {
		return fmt.Errorf("event missing required fields: id=%s, type=%q, player_id=%s",
			ev.ID, ev.Type, ev.PlayerID)
	}

	msg, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	err = b.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(ev.PlayerID.String()),
		Value: msg,
		Headers: []kafka.Header{
			{Key: "event_type", Value: []byte(ev.Type)},
		},
	})
	if err != nil {
		return fmt.Errorf("writing event to %s: %w", b.topic, err)
	}

	return nil
}

// Close flushes pending messages and closes the writer.
func (b *Bus) Close() error {
	if err := b.writer.Close(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("close writer for topic %s: %w", b.topic, err)
	}
	return nil
}
