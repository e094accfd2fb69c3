package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/riskzones/internal/adminapi"
	"github.com/udisondev/riskzones/internal/config"
	"github.com/udisondev/riskzones/internal/db"
	"github.com/udisondev/riskzones/internal/db/sqlitestore"
	"github.com/udisondev/riskzones/internal/eventbus"
	"github.com/udisondev/riskzones/internal/game/crossing"
	"github.com/udisondev/riskzones/internal/game/newbie"
	"github.com/udisondev/riskzones/internal/game/zone"
	"github.com/udisondev/riskzones/internal/gameserver"
	"github.com/udisondev/riskzones/internal/gameserver/admin"
	"github.com/udisondev/riskzones/internal/gameserver/admin/commands"
)

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

// backend is the persistence side: regions, account ages and profiles.
type backend interface {
	zone.Store
	newbie.AgeSource
	gameserver.ProfileRecorder
}

// stores joins the two postgres repositories into one backend.
type stores struct {
	*db.RegionRepository
	*db.ProfileRepository
}

func run(ctx context.Context) error {
	cfgPath := config.DefaultConfigPath
	if p := os.Getenv(config.EnvConfigPath); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadZoneServer(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel, _ := config.ParseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("riskzones server starting",
		"config", cfgPath,
		"store", cfg.Store.Driver,
		"log_level", cfg.LogLevel)

	var store backend
	switch cfg.Store.Driver {
	case config.StoreSQLite:
		s, err := sqlitestore.Open(ctx, cfg.Store.SQLitePath)
		if err != nil {
			return fmt.Errorf("opening sqlite store: %w", err)
		}
		defer s.Close()
		store = s
		slog.Info("sqlite store opened", "path", cfg.Store.SQLitePath)
	default:
		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		if err := db.RunMigrations(ctx, cfg.Database.DSN()); err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied")

		store = stores{database.Regions(), database.Profiles()}
	}

	index, err := zone.LoadIndex(ctx, store, cfg.ZoneSettings())
	if err != nil {
		return err
	}

	var publisher crossing.Publisher
	if cfg.Kafka.Enabled() {
		bus := eventbus.NewBus(cfg.Kafka.Brokers, cfg.Kafka.Topic)
		defer func() {
			if err := bus.Close(); err != nil {
				slog.Warn("closing event bus", "error", err)
			}
		}()
		publisher = bus
		slog.Info("zone events enabled", "brokers", cfg.Kafka.Brokers, "topic", cfg.Kafka.Topic)
	}

	tracker := zone.NewTracker()
	gate := newbie.NewGate(cfg.NewbieProtection.RequiredHours, cfg.NewbieProtection.CheckTimeout, store, tracker)
	orch := crossing.New(index, tracker, gate, crossing.LogEffects{Logger: slog.Default()}, publisher)
	editor := zone.NewEditor(index, store)

	handler := admin.NewHandler()
	game := gameserver.NewServer(orch, handler, gameserver.WithProfiles(store))
	commands.RegisterAll(handler, commands.Deps{
		Editor:       editor,
		Orchestrator: orch,
		Players:      game.Players(),
	})
	slog.Info("commands registered",
		"admin", handler.AdminCommandCount(),
		"user", handler.UserCommandCount())

	g, gctx := errgroup.WithContext(ctx)

	if cfg.AdminAPI.Port > 0 {
		api, err := adminapi.New(editor, orch, game, cfg.AdminAPI.TokenHash)
		if err != nil {
			return fmt.Errorf("creating admin api: %w", err)
		}
		if cfg.AdminAPI.TokenHash == "" {
			slog.Warn("admin api has no token_hash, requests are not authenticated")
		}

		g.Go(func() error {
			slog.Info("starting admin api", "addr", cfg.AdminAPI.Addr())
			if err := api.Run(gctx, cfg.AdminAPI.Addr()); err != nil {
				return fmt.Errorf("admin api: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		game.Shutdown()
		return nil
	})

	slog.Info("riskzones server ready",
		"zones", index.ZoneCount(),
		"newbie_required_hours", cfg.NewbieProtection.RequiredHours)

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	return nil
}
