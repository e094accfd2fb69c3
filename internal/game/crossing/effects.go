package crossing

import (
	"log/slog"

	"github.com/google/uuid"
)

// Effects renders zone state to the player. Implementations must not block.
type Effects interface {
	// ShowBar creates the player's zone status bar and returns its handle.
	ShowBar(playerID uuid.UUID, bar Bar) uuid.UUID
	UpdateBar(barID uuid.UUID, bar Bar)
	RemoveBar(barID uuid.UUID)
	Notify(playerID uuid.UUID, n Notification)
}

// LogEffects writes every effect to the log. Used when no client
// transport is attached.
type LogEffects struct {
	Logger *slog.Logger
}

func (e LogEffects) logger() *slog.Logger {
	if e.Logger != nil {
		return e.Logger
	}
	return slog.Default()
}

func (e LogEffects) ShowBar(playerID uuid.UUID, bar Bar) uuid.UUID {
	id := uuid.New()
	e.logger().Debug("bar shown",
		"player", playerID,
		"bar", id,
		"title", bar.Title(),
		"color", bar.Color())
	return id
}

func (e LogEffects) UpdateBar(barID uuid.UUID, bar Bar) {
	e.logger().Debug("bar updated",
		"bar", barID,
		"title", bar.Title(),
		"color", bar.Color())
}

func (e LogEffects) RemoveBar(barID uuid.UUID) {
	e.logger().Debug("bar removed", "bar", barID)
}

func (e LogEffects) Notify(playerID uuid.UUID, n Notification) {
	e.logger().Debug("notify",
		"player", playerID,
		"kind", n.Kind,
		"text", n.Text,
		"subtitle", n.Subtitle,
		"color", n.Color)
}
