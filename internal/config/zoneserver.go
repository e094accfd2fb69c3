package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/udisondev/riskzones/internal/game/zone"
)

// EnvConfigPath overrides the config file path.
const EnvConfigPath = "RISKZONES_CONFIG"

// DefaultConfigPath is used when EnvConfigPath is unset.
const DefaultConfigPath = "config/zoneserver.yaml"

// Store drivers.
const (
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// StoreConfig selects where regions and profiles live.
type StoreConfig struct {
	Driver     string `yaml:"driver"`      // postgres | sqlite
	SQLitePath string `yaml:"sqlite_path"` // for driver=sqlite
}

// WildernessConfig is the policy outside every region.
type WildernessConfig struct {
	Risk       zone.Risk      `yaml:"risk"`
	PvPEnabled bool           `yaml:"pvp_enabled"`
	DeathRule  zone.DeathRule `yaml:"death_rule"`
}

// DeathConfig holds the loot percentages.
type DeathConfig struct {
	TrashChancePercent uint8 `yaml:"trash_chance_percent"` // share of full-loot drops destroyed
	PartialDropPercent uint8 `yaml:"partial_drop_percent"` // new zones and wilderness
}

// NewbieProtectionConfig gates Red/Black zones for young accounts.
type NewbieProtectionConfig struct {
	RequiredHours uint64        `yaml:"required_hours"` // 0 disables protection
	CheckTimeout  time.Duration `yaml:"check_timeout"`  // 0: no gate-side timeout
}

// KafkaConfig enables zone event publishing when Brokers is non-empty.
type KafkaConfig struct {
	Brokers []string `yaml:"brokers"`
	Topic   string   `yaml:"topic"`
}

// Enabled reports whether events are published.
func (k KafkaConfig) Enabled() bool { return len(k.Brokers) > 0 }

// AdminAPIConfig is the admin HTTP surface. Port 0 disables it.
type AdminAPIConfig struct {
	BindAddress string `yaml:"bind_address"`
	Port        int    `yaml:"port"`
	// TokenHash is a bcrypt hash of the bearer token; empty disables auth.
	TokenHash string `yaml:"token_hash"`
}

// Addr returns host:port.
func (a AdminAPIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", a.BindAddress, a.Port)
}

// ZoneServer holds all configuration for the zone server.
type ZoneServer struct {
	Database         DatabaseConfig         `yaml:"database"`
	Store            StoreConfig            `yaml:"store"`
	Wilderness       WildernessConfig       `yaml:"wilderness"`
	Death            DeathConfig            `yaml:"death"`
	NewbieProtection NewbieProtectionConfig `yaml:"newbie_protection"`
	Kafka            KafkaConfig            `yaml:"kafka"`
	AdminAPI         AdminAPIConfig         `yaml:"admin_api"`
	LogLevel         string                 `yaml:"log_level"`
}

// DefaultZoneServer returns ZoneServer config with sensible defaults.
func DefaultZoneServer() ZoneServer {
	return ZoneServer{
		Database: DatabaseConfig{
			Host:     "127.0.0.1",
			Port:     5432,
			User:     "riskzones",
			Password: "riskzones",
			DBName:   "riskzones",
			SSLMode:  "disable",
		},
		Store: StoreConfig{
			Driver:     StorePostgres,
			SQLitePath: "data/riskzones.db",
		},
		Wilderness: WildernessConfig{
			Risk:       zone.RiskYellow,
			PvPEnabled: true,
			DeathRule:  zone.DeathPartial,
		},
		Death: DeathConfig{
			TrashChancePercent: 25,
			PartialDropPercent: 30,
		},
		NewbieProtection: NewbieProtectionConfig{
			RequiredHours: 24,
		},
		Kafka: KafkaConfig{
			Topic: "riskzones.events",
		},
		AdminAPI: AdminAPIConfig{
			BindAddress: "127.0.0.1",
			Port:        8088,
		},
		LogLevel: "info",
	}
}

// LoadZoneServer loads zone server config from a YAML file.
// If the file doesn't exist, returns defaults.
func LoadZoneServer(path string) (ZoneServer, error) {
	cfg := DefaultZoneServer()

	if err := loadYAML(path, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validating config %s: %w", path, err)
	}

	return cfg, nil
}

// Validate checks ranges and enum values.
func (c ZoneServer) Validate() error {
	var errs []error

	if c.Death.TrashChancePercent > 100 {
		errs = append(errs, fmt.Errorf("death.trash_chance_percent %d > 100", c.Death.TrashChancePercent))
	}
	if c.Death.PartialDropPercent > 100 {
		errs = append(errs, fmt.Errorf("death.partial_drop_percent %d > 100", c.Death.PartialDropPercent))
	}
	if c.NewbieProtection.CheckTimeout < 0 {
		errs = append(errs, errors.New("newbie_protection.check_timeout is negative"))
	}

	switch c.Store.Driver {
	case StorePostgres:
	case StoreSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("store.sqlite_path is required for sqlite"))
		}
	default:
		errs = append(errs, fmt.Errorf("store.driver %q: want postgres or sqlite", c.Store.Driver))
	}

	if c.Kafka.Enabled() && c.Kafka.Topic == "" {
		errs = append(errs, errors.New("kafka.topic is required when brokers are set"))
	}
	if c.AdminAPI.Port < 0 || c.AdminAPI.Port > 65535 {
		errs = append(errs, fmt.Errorf("admin_api.port %d out of range", c.AdminAPI.Port))
	}
	if _, ok := ParseLogLevel(c.LogLevel); !ok {
		errs = append(errs, fmt.Errorf("log_level %q: want debug, info, warn or error", c.LogLevel))
	}

	return errors.Join(errs...)
}

// ZoneSettings converts the config to index settings.
func (c ZoneServer) ZoneSettings() zone.Settings {
	return zone.Settings{
		Wilderness: zone.Wilderness{
			Risk:       c.Wilderness.Risk,
			PvPEnabled: c.Wilderness.PvPEnabled,
			DeathRule:  c.Wilderness.DeathRule,
		},
		TrashChancePercent:  c.Death.TrashChancePercent,
		NewbieRequiredHours: c.NewbieProtection.RequiredHours,
		DefaultPartialDrop:  c.Death.PartialDropPercent,
	}
}

// ParseLogLevel maps debug|info|warn|error to a slog level.
func ParseLogLevel(s string) (slog.Level, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, true
	case "info", "":
		return slog.LevelInfo, true
	case "warn", "warning":
		return slog.LevelWarn, true
	case "error":
		return slog.LevelError, true
	default:
		return slog.LevelInfo, false
	}
}
