package db

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/model"
)

// RegionRepository хранит регионы зон в PostgreSQL. Реализует zone.Store.
type RegionRepository struct {
	pool *pgxpool.Pool
}

// NewRegionRepository создаёт новый RegionRepository.
func NewRegionRepository(pool *pgxpool.Pool) *RegionRepository {
	return &RegionRepository{pool: pool}
}

// SaveRegion вставляет регион. Имя уже занято — zone.ErrZoneExists.
// Thread-safe: INSERT ... ON CONFLICT DO NOTHING вместо check-then-insert.
func (r *RegionRepository) SaveRegion(ctx context.Context, region zone.Region, createdBy uuid.UUID) error {
	var owner *uuid.UUID
	if createdBy != uuid.Nil {
		owner = &createdBy
	}

	tag, err := r.pool.Exec(ctx, `
		INSERT INTO zone_regions (name, risk, pvp_enabled, death_rule, partial_drop_percent,
		                          min_x, min_y, min_z, max_x, max_y, max_z, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (name) DO NOTHING`,
		region.Name, region.Risk.Token(), region.PvPEnabled, region.DeathRule.Token(),
		int16(region.PartialDropPercent),
		region.Min.X, region.Min.Y, region.Min.Z,
		region.Max.X, region.Max.Y, region.Max.Z,
		owner,
	)
	if err != nil {
		return fmt.Errorf("inserting zone region %q: %w", region.Name, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: %q", zone.ErrZoneExists, region.Name)
	}

	return nil
}

// DeleteRegion удаляет регион по имени. Отсутствие строки — не ошибка.
func (r *RegionRepository) DeleteRegion(ctx context.Context, name string) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM zone_regions WHERE name = $1`, name)
	if err != nil {
		return fmt.Errorf("deleting zone region %q: %w", name, err)
	}
	return nil
}

// LoadRegions загружает все регионы в порядке создания.
// Строки с неизвестным risk/death_rule пропускаются с предупреждением.
func (r *RegionRepository) LoadRegions(ctx context.Context) ([]zone.Region, error) {
	rows, err := r.pool.Query(ctx, `
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

		region, ok := RegionFromRow(name, riskTok, pvp, ruleTok, partial, minP, maxP)
		if !ok {
			continue
		}
		regions = append(regions, region)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating zone regions: %w", err)
	}

	return regions, nil
}

// CreatedBy реализует zone.Store: автор региона. uuid.Nil, false если регион
// не найден или автор не записан.
func (r *RegionRepository) CreatedBy(ctx context.Context, name string) (uuid.UUID, bool, error) {
	var owner *uuid.UUID
	err := r.pool.QueryRow(ctx,
		`SELECT created_by FROM zone_regions WHERE name = $1`, name,
	).Scan(&owner)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return uuid.Nil, false, nil
		}
		return uuid.Nil, false, fmt.Errorf("querying zone region owner %q: %w", name, err)
	}
	if owner == nil {
		return uuid.Nil, false, nil
	}
	return *owner, true, nil
}

// RegionFromRow собирает регион из токенов хранилища. Используется и sqlite-хранилищем.
func RegionFromRow(name, riskTok string, pvp bool, ruleTok string, partial int16, minP, maxP model.Point) (zone.Region, bool) {
	if zone.IsReservedName(name) {
		slog.Warn("skipping zone region with reserved name", "zone", name)
		return zone.Region{}, false
	}
	risk, ok := zone.ParseRisk(riskTok)
	if !ok {
		slog.Warn("skipping zone region with unknown risk", "zone", name, "risk", riskTok)
		return zone.Region{}, false
	}
	rule, ok := zone.ParseDeathRule(ruleTok)
	if !ok {
		slog.Warn("skipping zone region with unknown death rule", "zone", name, "death_rule", ruleTok)
		return zone.Region{}, false
	}

	return zone.NewRegion(name, risk, pvp, rule, uint8(max(0, min(partial, 100))), minP, maxP), true
}
