// Package newbie implements newbie protection: accounts younger than a
// configured age may not enter Red or Black zones.
package newbie

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/udisondev/riskzones/internal/game/zone"
)

// ErrUnavailable is returned (wrapped) by an AgeSource that cannot be reached.
// The gate fails open on it.
var ErrUnavailable = errors.New("account age source unavailable")

// AgeSource reports how many hours ago a player's profile was created.
// found is false when the player has no profile yet.
type AgeSource interface {
	AccountAgeHours(ctx context.Context, playerID uuid.UUID) (hours float64, found bool, err error)
}

// Sessions holds the session-scoped danger confirmation. *zone.Tracker implements it.
type Sessions interface {
	DangerConfirmed(playerID uuid.UUID) bool
	ConfirmDanger(playerID uuid.UUID) bool
}

// Reason explains a gate decision.
type Reason uint8

const (
	ReasonNotDangerous Reason = iota
	ReasonDisabled
	ReasonConfirmed
	ReasonOldEnough
	ReasonUnavailable
	ReasonSourceError
	ReasonNoProfile
	ReasonTooNew
)

func (r Reason) String() string {
	switch r {
	case ReasonNotDangerous:
		return "not_dangerous"
	case ReasonDisabled:
		return "disabled"
	case ReasonConfirmed:
		return "confirmed"
	case ReasonOldEnough:
		return "old_enough"
	case ReasonUnavailable:
		return "unavailable"
	case ReasonSourceError:
		return "source_error"
	case ReasonNoProfile:
		return "no_profile"
	case ReasonTooNew:
		return "too_new"
	default:
		return fmt.Sprintf("Reason(%d)", uint8(r))
	}
}

// Decision is the outcome of one gate check.
type Decision struct {
	Blocked bool
	Reason  Reason
	// AgeHours is set when the source answered with a profile.
	AgeHours float64
	// Err is the source error behind ReasonUnavailable and ReasonSourceError.
	Err error
}

type ageResult struct {
	hours float64
	found bool
}

// Gate decides whether a player may enter a dangerous zone.
type Gate struct {
	requiredHours uint64
	timeout       time.Duration
	source        AgeSource
	sessions      Sessions

	inflight singleflight.Group
}

// NewGate creates a gate. requiredHours == 0 disables protection.
// timeout bounds one age query; 0 means the source bounds its own latency.
func NewGate(requiredHours uint64, timeout time.Duration, source AgeSource, sessions Sessions) *Gate {
	return &Gate{
		requiredHours: requiredHours,
		timeout:       timeout,
		source:        source,
		sessions:      sessions,
	}
}

// RequiredHours returns the configured account age threshold.
func (g *Gate) RequiredHours() uint64 { return g.requiredHours }

// CheckBlock reports whether the player must be kept out of a zone of the
// target risk. Must not be called while holding the tracker lock: it may
// wait on I/O.
func (g *Gate) CheckBlock(ctx context.Context, playerID uuid.UUID, target zone.Risk) bool {
	return g.Check(ctx, playerID, target).Blocked
}

// Check runs the full decision and returns why it was made.
func (g *Gate) Check(ctx context.Context, playerID uuid.UUID, target zone.Risk) Decision {
	if !target.IsDangerous() {
		return Decision{Reason: ReasonNotDangerous}
	}

	if g.requiredHours == 0 {
		return Decision{Reason: ReasonDisabled}
	}

	if g.sessions.DangerConfirmed(playerID) {
		return Decision{Reason: ReasonConfirmed}
	}

	res, err := g.queryAge(ctx, playerID)
	if err != nil {
		if errors.Is(err, ErrUnavailable) || errors.Is(err, context.DeadlineExceeded) {
			slog.Warn("newbie protection degraded, allowing entry",
				"player", playerID,
				"error", err)
			return Decision{Reason: ReasonUnavailable, Err: err}
		}

		slog.Error("account age query failed, allowing entry",
			"player", playerID,
			"error", err)
		return Decision{Reason: ReasonSourceError, Err: err}
	}

	if !res.found {
		return Decision{Blocked: true, Reason: ReasonNoProfile}
	}

	if res.hours >= float64(g.requiredHours) {
		g.sessions.ConfirmDanger(playerID)
		return Decision{Reason: ReasonOldEnough, AgeHours: res.hours}
	}

	return Decision{Blocked: true, Reason: ReasonTooNew, AgeHours: res.hours}
}

// queryAge asks the source once per player at a time; concurrent callers
// for the same player share the answer.
func (g *Gate) queryAge(ctx context.Context, playerID uuid.UUID) (ageResult, error) {
	v, err, _ := g.inflight.Do(playerID.String(), func() (any, error) {
		qctx := ctx
		if g.timeout > 0 {
			var cancel context.CancelFunc
			qctx, cancel = context.WithTimeout(ctx, g.timeout)
			defer cancel()
		}

		hours, found, err := g.source.AccountAgeHours(qctx, playerID)
		if err != nil {
			return ageResult{}, fmt.Errorf("querying account age: %w", err)
		}
		return ageResult{hours: hours, found: found}, nil
	})
	if err != nil {
		return ageResult{}, err
	}

	return v.(ageResult), nil
}
