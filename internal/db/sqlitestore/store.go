// Package sqlitestore is the single-node alternative to the PostgreSQL
// repositories: regions and player profiles in one local SQLite file.
package sqlitestore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/udisondev/riskzones/internal/db"
	"github.com/udisondev/riskzones/internal/db/migrations"
	"github.com/udisondev/riskzones/internal/game/newbie"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/model"
)

// Store implements zone.Store and newbie.AgeSource over SQLite.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens (or creates) the database file at path and applies the
// sqlite migration set.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("empty sqlite path")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating sqlite dir: %w", err)
	}

	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite %q: %w", path, err)
	}
	// Один writer: SQLite сериализует записи сам, лишние соединения дают SQLITE_BUSY.
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(0)

	if err := initPragmas(sqlDB); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}
	if err := migrations.Up(ctx, sqlDB, migrations.SQLite); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &Store{db: sqlDB, now: time.Now}, nil
}

func initPragmas(sqlDB *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := sqlDB.Exec(p); err != nil {
			return fmt.Errorf("sqlite pragma %q: %w", p, err)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// SaveRegion inserts a region; a taken name is zone.ErrZoneExists.
func (s *Store) SaveRegion(ctx context.Context, r zone.Region, createdBy uuid.UUID) error {
	owner := ""
	if createdBy != uuid.Nil {
		owner = createdBy.String()
	}

	res, err := s.db.ExecContext(ctx, `
		INSERT INTO zone_regions (name, risk, pvp_enabled, death_rule, partial_drop_percent,
		                          min_x, min_y, min_z, max_x, max_y, max_z, created_by, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (name) DO NOTHING`,
		r.Name, r.Risk.Token(), r.PvPEnabled, r.DeathRule.Token(), int64(r.PartialDropPercent),
		r.Min.X, r.Min.Y, r.Min.Z, r.Max.X, r.Max.Y, r.Max.Z,
		owner, s.now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("inserting zone region %q: %w", r.Name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("inserting zone region %q: %w", r.Name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", zone.ErrZoneExists, r.Name)
	}

	return nil
}

// DeleteRegion removes a region by name. Absent names are not an error.
func (s *Store) DeleteRegion(ctx context.Context, name string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM zone_regions WHERE name = ?`, name); err != nil {
		return fmt.Errorf("deleting zone region %q: %w", name, err)
	}
	return nil
}

// LoadRegions returns all regions in insertion order. Rows with unknown
// tokens are skipped with a warning.
func (s *Store) LoadRegions(ctx context.Context) ([]zone.Region, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, risk, pvp_enabled, death_rule, partial_drop_percent,
		       min_x, min_y, min_z, max_x, max_y, max_z
		FROM zone_regions
		ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("querying zone regions: %w", err)
	}
	defer rows.Close()

	var regions []zone.Region
	for rows.Next() {
		var (
			name, riskTok, ruleTok string
			pvp                    bool
			partial                int16
			minP, maxP             model.Point
		)
		if err := rows.Scan(&name, &riskTok, &pvp, &ruleTok, &partial,
			&minP.X, &minP.Y, &minP.Z, &maxP.X, &maxP.Y, &maxP.Z); err != nil {
			return nil, fmt.Errorf("scanning zone region: %w", err)
		}

		if r, ok := db.RegionFromRow(name, riskTok, pvp, ruleTok, partial, minP, maxP); ok {
			regions = append(regions, r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone regions: %w", err)
	}

	return regions, nil
}

// CreatedBy returns the author recorded for a region.
func (s *Store) CreatedBy(ctx context.Context, name string) (uuid.UUID, bool, error) {
	var owner string
	err := s.db.QueryRowContext(ctx,
		`SELECT created_by FROM zone_regions WHERE name = ?`, name,
	).Scan(&owner)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("querying zone region owner %q: %w", name, err)
	}
	if owner == "" {
		return uuid.Nil, false, nil
	}

	id, err := uuid.Parse(owner)
	if err != nil {
		return uuid.Nil, false, fmt.Errorf("parsing zone region owner %q: %w", name, err)
	}
	return id, true, nil
}

// AccountAgeHours implements newbie.AgeSource.
func (s *Store) AccountAgeHours(ctx context.Context, playerID uuid.UUID) (float64, bool, error) {
	var createdAt int64
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM player_profiles WHERE uuid = ?`, playerID.String(),
	).Scan(&createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, false, nil
		}
		if errors.Is(err, sql.ErrConnDone) || errors.Is(err, context.DeadlineExceeded) {
			return 0, false, fmt.Errorf("%w: %w", newbie.ErrUnavailable, err)
		}
		return 0, false, fmt.Errorf("querying account age for %s: %w", playerID, err)
	}

	age := s.now().Sub(time.Unix(createdAt, 0))
	return age.Hours(), true, nil
}

// CreateProfile records a player profile if absent. Returns true if created.
func (s *Store) CreateProfile(ctx context.Context, playerID uuid.UUID, name string) (bool, error) {
	return s.createProfileAt(ctx, playerID, name, s.now())
}

func (s *Store) createProfileAt(ctx context.Context, playerID uuid.UUID, name string, at time.Time) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO player_profiles (uuid, name, created_at) VALUES (?, ?, ?)
		 ON CONFLICT (uuid) DO NOTHING`,
		playerID.String(), name, at.Unix(),
	)
	if err != nil {
		return false, fmt.Errorf("creating profile %s: %w", playerID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("creating profile %s: %w", playerID, err)
	}
	return n > 0, nil
}
