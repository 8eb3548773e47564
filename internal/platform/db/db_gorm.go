// Package db opens the relational store and migrates its schema.
package db

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	advisoryadapters "etf_advisor/internal/feature/advisory/adapters"
	fundentity "etf_advisor/internal/feature/fund/domain/entity"
	marketadapters "etf_advisor/internal/feature/marketdata/adapters"
	strategyadapters "etf_advisor/internal/feature/strategy/adapters"
	"etf_advisor/internal/platform/config"
	"etf_advisor/internal/platform/retry"
)

// ConnectPolicy retries the initial connection for about a minute, which
// covers a database container that starts alongside the service.
var ConnectPolicy = retry.Policy{Attempts: 20, Delay: 3 * time.Second}

// Dialector returns the gorm dialector for cfg.
func Dialector(cfg config.DBConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres":
		return postgres.Open(cfg.DSN), nil
	case "sqlite", "":
		if err := ensureDir(cfg.DSN); err != nil {
			return nil, err
		}
		return sqlite.Open(cfg.DSN), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", cfg.Driver)
	}
}

// Open connects to the database described by cfg, retrying per policy.
func Open(ctx context.Context, cfg config.DBConfig, policy retry.Policy) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	gcfg := &gorm.Config{Logger: newGormLogger()}
	return retry.Do(ctx, policy, func(ctx context.Context) (*gorm.DB, error) {
		db, err := gorm.Open(dialector, gcfg)
		if err != nil {
			return nil, err
		}
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		if err := sqlDB.PingContext(ctx); err != nil {
			_ = sqlDB.Close()
			return nil, err
		}
		if cfg.Driver != "postgres" {
			// sqlite serializes writers; one connection avoids SQLITE_BUSY.
			sqlDB.SetMaxOpenConns(1)
		}
		return db, nil
	}, func(err error, attempt int, wait time.Duration) {
		log.Warn().Err(err).Int("attempt", attempt).Dur("wait", wait).Msg("db connect failed, retrying")
	})
}

// Migrate creates or updates every table the service uses.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&fundentity.Fund{},
		&marketadapters.PriceModel{},
		&strategyadapters.DecisionModel{},
		&advisoryadapters.CacheEntryModel{},
	)
}

func ensureDir(dsn string) error {
	if dsn == "" || strings.HasPrefix(dsn, ":memory:") || strings.HasPrefix(dsn, "file:") {
		return nil
	}
	dir := filepath.Dir(dsn)
	if dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create sqlite dir %q: %w", dir, err)
	}
	return nil
}

// zerologWriter routes gorm's log lines through zerolog.
type zerologWriter struct{}

func (zerologWriter) Printf(format string, args ...any) {
	log.Warn().Str("component", "gorm").Msgf(format, args...)
}

func newGormLogger() gormlogger.Interface {
	return gormlogger.New(zerologWriter{}, gormlogger.Config{
		SlowThreshold:             time.Second,
		LogLevel:                  gormlogger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}
