// Package migrations embeds the goose SQL migrations, one directory per
// dialect, and applies them.
package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedded embed.FS

// Dialect selects a migration set. The value is its directory name.
type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

func (d Dialect) gooseDialect() (goose.Dialect, bool) {
	switch d {
	case Postgres:
		return goose.DialectPostgres, true
	case SQLite:
		return goose.DialectSQLite3, true
	default:
		return "", false
	}
}

// Up applies every pending migration of the dialect to sqlDB.
func Up(ctx context.Context, sqlDB *sql.DB, dialect Dialect) error {
	gd, ok := dialect.gooseDialect()
	if !ok {
		return fmt.Errorf("unknown migration dialect %q", dialect)
	}

	fsys, err := fs.Sub(embedded, string(dialect))
	if err != nil {
		return fmt.Errorf("opening %s migrations: %w", dialect, err)
	}

	// Provider вместо глобальных goose.SetBaseFS/SetDialect: два диалекта в одном процессе.
	provider, err := goose.NewProvider(gd, sqlDB, fsys)
	if err != nil {
		return fmt.Errorf("creating goose provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("running %s migrations: %w", dialect, err)
	}
	if len(results) > 0 {
		slog.Info("migrations applied", "dialect", dialect, "count", len(results))
	}

	return nil
}
