package gameserver

import (
	"fmt"

	"github.com/udisondev/riskzones/internal/model"
)

// Position limits. Anything outside is a client bug or a forged event.
const (
	// WorldBorder bounds |X| and |Z|.
	WorldBorder = 30_000_000
	MinY        = -2048
	MaxY        = 4096
)

// ValidatePosition rejects positions that cannot exist in the world:
// NaN/Inf components, X/Z past the world border, Y outside MinY..MaxY.
func ValidatePosition(p model.Point) error {
	if !p.IsFinite() {
		return fmt.Errorf("%w: non-finite coordinates %v", ErrInvalidPosition, p)
	}

	if p.X < -WorldBorder || p.X > WorldBorder || p.Z < -WorldBorder || p.Z > WorldBorder {
		return fmt.Errorf("%w: (%.1f, %.1f) is outside the world border ±%d",
			ErrInvalidPosition, p.X, p.Z, WorldBorder)
	}

	if p.Y < MinY || p.Y > MaxY {
		return fmt.Errorf("%w: Y=%.1f (allowed range: %d..%d)", ErrInvalidPosition, p.Y, MinY, MaxY)
	}

	return nil
}
