package db

import (
	"context"
	"errors"
	"fmt"
	"net"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/riskzones/internal/game/newbie"
)

// ProfileRepository отвечает на вопрос "сколько часов аккаунту".
// Реализует newbie.AgeSource.
type ProfileRepository struct {
	pool *pgxpool.Pool
}

// NewProfileRepository создаёт новый ProfileRepository.
func NewProfileRepository(pool *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{pool: pool}
}

// AccountAgeHours возвращает возраст профиля в часах.
// found=false если профиля нет. Недоступность БД оборачивается в newbie.ErrUnavailable.
func (r *ProfileRepository) AccountAgeHours(ctx context.Context, playerID uuid.UUID) (float64, bool, error) {
	var hours float64
	err := r.pool.QueryRow(ctx,
		`SELECT EXTRACT(EPOCH FROM NOW() - created_at) / 3600.0
		 FROM player_profiles WHERE uuid = $1`, playerID,
	).Scan(&hours)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, false, nil
		}
		return 0, false, classify(fmt.Errorf("querying account age for %s: %w", playerID, err))
	}
	return hours, true, nil
}

// CreateProfile создаёт профиль игрока, если его ещё нет. Возвращает true
// если профиль создан этим вызовом.
func (r *ProfileRepository) CreateProfile(ctx context.Context, playerID uuid.UUID, name string) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`INSERT INTO player_profiles (uuid, name) VALUES ($1, $2)
		 ON CONFLICT (uuid) DO NOTHING`,
		playerID, name,
	)
	if err != nil {
		return false, fmt.Errorf("creating profile %s: %w", playerID, err)
	}
	return tag.RowsAffected() > 0, nil
}

// classify помечает ошибки связи с БД как newbie.ErrUnavailable,
// остальные (SQL, данные) возвращает как есть.
func classify(err error) error {
	if isUnavailable(err) {
		return fmt.Errorf("%w: %w", newbie.ErrUnavailable, err)
	}
	return err
}

func isUnavailable(err error) bool {
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	if pgconn.Timeout(err) {
		return true
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, net.ErrClosed) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
