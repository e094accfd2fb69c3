// Package crossing drives player-facing zone transitions: join, movement
// across zone borders, leave, PvP legality and death loot.
package crossing

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/udisondev/riskzones/internal/game/newbie"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/model"
)

// AccessGate decides dangerous-zone entry. *newbie.Gate implements it.
type AccessGate interface {
	Check(ctx context.Context, playerID uuid.UUID, target zone.Risk) newbie.Decision
}

// MoveResult is the outcome of one movement.
type MoveResult struct {
	From zone.Lookup
	To   zone.Lookup
	// Crossed is true when the player entered a different zone.
	Crossed bool
	// Cancelled is true when entry was refused; the caller must reject the movement.
	Cancelled bool
	Decision  newbie.Decision
}

// AttackDecision is the outcome of one PvP attack check.
type AttackDecision struct {
	Allowed      bool
	AttackerZone zone.Lookup
	VictimZone   zone.Lookup
}

// Orchestrator owns the index and tracker for the event pipeline.
// Safe for concurrent use; the tracker lock is never held across a gate check.
type Orchestrator struct {
	index     *zone.Index
	tracker   *zone.Tracker
	gate      AccessGate
	effects   Effects
	publisher Publisher
	now       func() time.Time
}

// New creates an orchestrator. A nil effects logs effects; a nil publisher drops events.
func New(index *zone.Index, tracker *zone.Tracker, gate AccessGate, effects Effects, publisher Publisher) *Orchestrator {
	if effects == nil {
		effects = LogEffects{}
	}
	if publisher == nil {
		publisher = nopPublisher{}
	}

	return &Orchestrator{
		index:     index,
		tracker:   tracker,
		gate:      gate,
		effects:   effects,
		publisher: publisher,
		now:       time.Now,
	}
}

// Index returns the zone index.
func (o *Orchestrator) Index() *zone.Index { return o.index }

// Tracker returns the player tracker.
func (o *Orchestrator) Tracker() *zone.Tracker { return o.tracker }

// OnJoin starts tracking a player at pos with a fresh, unconfirmed session.
func (o *Orchestrator) OnJoin(ctx context.Context, playerID uuid.UUID, pos model.Point) zone.Lookup {
	l := o.index.ZoneAt(pos)

	// Повторный join без leave: старый бар больше никому не нужен.
	if old, ok := o.tracker.Remove(playerID); ok {
		o.effects.RemoveBar(old.BarID)
	}

	barID := o.effects.ShowBar(playerID, BarFor(l))
	o.tracker.Set(playerID, zone.PlayerZoneState{
		Zone:  l.Name,
		Risk:  l.Risk,
		BarID: barID,
	})
	o.effects.Notify(playerID, joinNotification(l))

	slog.Debug("player joined zone tracking",
		"player", playerID,
		"zone", l.Name,
		"risk", l.Risk)

	return l
}

// OnMove handles a movement from one position to another. Moves within
// one zone are no-ops and never reach the gate.
func (o *Orchestrator) OnMove(ctx context.Context, playerID uuid.UUID, from, to model.Point) MoveResult {
	res := MoveResult{
		From: o.index.ZoneAt(from),
		To:   o.index.ZoneAt(to),
	}
	if res.From.Name == res.To.Name {
		return res
	}

	_, tracked := o.tracker.Get(playerID)

	if res.To.Risk.IsDangerous() {
		res.Decision = o.gate.Check(ctx, playerID, res.To.Risk)
		if res.Decision.Blocked {
			res.Cancelled = true
			o.effects.Notify(playerID, blockedNotification(res.To.Risk))
			o.publish(ctx, Event{
				Type:     EventZoneBlocked,
				PlayerID: playerID,
				Zone:     res.To.Name,
				PrevZone: res.From.Name,
				Risk:     res.To.Risk,
			})

			slog.Info("zone entry blocked",
				"player", playerID,
				"zone", res.To.Name,
				"risk", res.To.Risk,
				"reason", res.Decision.Reason)

			return res
		}
	}

	if tracked {
		st, ok := o.tracker.Commit(playerID, res.To.Name, res.To.Risk)
		if !ok {
			// Игрок вышел, пока шла проверка доступа.
			return res
		}
		o.effects.UpdateBar(st.BarID, BarFor(res.To))
	} else {
		barID := o.effects.ShowBar(playerID, BarFor(res.To))
		// Нет записи, которую ConfirmDanger мог бы отметить: переносим решение гейта сюда.
		o.tracker.Set(playerID, zone.PlayerZoneState{
			Zone:            res.To.Name,
			Risk:            res.To.Risk,
			BarID:           barID,
			DangerConfirmed: res.Decision.Reason == newbie.ReasonOldEnough,
		})
	}

	res.Crossed = true
	o.effects.Notify(playerID, enteringNotification(res.To))
	o.publish(ctx, Event{
		Type:     EventZoneEntered,
		PlayerID: playerID,
		Zone:     res.To.Name,
		PrevZone: res.From.Name,
		Risk:     res.To.Risk,
	})

	return res
}

// OnLeave stops tracking a player and releases the bar.
// Returns false if the player was not tracked.
func (o *Orchestrator) OnLeave(ctx context.Context, playerID uuid.UUID) bool {
	st, ok := o.tracker.Remove(playerID)
	if !ok {
		return false
	}

	o.effects.RemoveBar(st.BarID)

	slog.Debug("player left zone tracking", "player", playerID, "zone", st.Zone)

	return true
}

// OnAttack allows PvP only when both sides stand in PvP-enabled zones.
func (o *Orchestrator) OnAttack(attackerPos, victimPos model.Point) AttackDecision {
	d := AttackDecision{
		AttackerZone: o.index.ZoneAt(attackerPos),
		VictimZone:   o.index.ZoneAt(victimPos),
	}
	d.Allowed = d.AttackerZone.PvPEnabled && d.VictimZone.PvPEnabled

	if !d.Allowed {
		slog.Debug("pvp blocked",
			"attacker_zone", d.AttackerZone.Name,
			"victim_zone", d.VictimZone.Name)
	}

	return d
}

// OnDeath resolves the loot rules where the player died and tells them.
func (o *Orchestrator) OnDeath(ctx context.Context, playerID uuid.UUID, pos model.Point) zone.DeathLoot {
	loot := zone.ComputeDeathLoot(o.index, pos)

	o.effects.Notify(playerID, deathNotification(loot))
	o.publish(ctx, Event{
		Type:         EventPlayerDied,
		PlayerID:     playerID,
		Zone:         loot.Zone,
		Risk:         loot.Risk,
		DropPercent:  loot.DropPercent,
		TrashPercent: loot.TrashPercent,
	})

	slog.Info("player died",
		"player", playerID,
		"zone", loot.Zone,
		"drop_percent", loot.DropPercent,
		"trash_percent", loot.TrashPercent)

	return loot
}

// Confirm records the player's explicit dangerous-zone confirmation for
// the session. Returns false if the player is not tracked.
func (o *Orchestrator) Confirm(playerID uuid.UUID) bool {
	if !o.tracker.ConfirmDanger(playerID) {
		return false
	}

	o.effects.Notify(playerID, Notification{Kind: KindChat, Text: ConfirmWarning, Color: ColorRed})
	o.effects.Notify(playerID, Notification{Kind: KindChat, Text: ConfirmGranted, Color: ColorGold})

	slog.Info("dangerous zone access confirmed", "player", playerID)

	return true
}

// Shutdown releases every tracked player's bar and clears the tracker.
func (o *Orchestrator) Shutdown() {
	// Снимок под локом трекера, эффекты вне лока.
	for _, id := range o.tracker.IDs() {
		o.OnLeave(context.Background(), id)
	}
	o.tracker.Clear()
}

func (o *Orchestrator) publish(ctx context.Context, ev Event) {
	ev.ID = uuid.New()
	ev.At = o.now()

	if err := o.publisher.Publish(ctx, ev); err != nil {
		slog.Warn("publishing zone event",
			"type", ev.Type,
			"player", ev.PlayerID,
			"error", err)
	}
}
