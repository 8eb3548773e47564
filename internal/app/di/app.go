package di

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	advisoryadapters "etf_advisor/internal/feature/advisory/adapters"
	advisoryusecase "etf_advisor/internal/feature/advisory/usecase"
	fundadapters "etf_advisor/internal/feature/fund/adapters"
	fundusecase "etf_advisor/internal/feature/fund/usecase"
	marketadapters "etf_advisor/internal/feature/marketdata/adapters"
	marketusecase "etf_advisor/internal/feature/marketdata/usecase"
	strategyadapters "etf_advisor/internal/feature/strategy/adapters"
	strategyusecase "etf_advisor/internal/feature/strategy/usecase"
	"etf_advisor/internal/platform/config"
	infradb "etf_advisor/internal/platform/db"
	infrahttp "etf_advisor/internal/platform/http"
	healthhandler "etf_advisor/internal/platform/http/handler"
	"etf_advisor/internal/platform/metrics"
	infraredis "etf_advisor/internal/platform/redis"
	"etf_advisor/internal/platform/workerpool"
	"etf_advisor/internal/shared/ratelimiter"
)

// syncRate matches the Twelve Data free tier of 8 requests per minute.
const syncRate = 8

// App holds the wired application graph.
type App struct {
	Config   *config.Config
	DB       *gorm.DB
	Redis    *redis.Client
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder

	Funds      *fundusecase.FundUsecase
	MarketData *marketusecase.MarketDataUsecase
	Sync       *marketusecase.SyncUsecase
	Advisory   *advisoryusecase.AdvisoryUsecase
	Strategy   *strategyusecase.StrategyUsecase

	// Market data and provider calls have separate slots so slow advice
	// cannot starve price requests.
	AcquisitionPool *workerpool.Pool
	AdvisoryPool    *workerpool.Pool

	Checks map[string]healthhandler.Check
}

// Build connects the backing services and wires every usecase. A missing
// Redis or language model provider only degrades the app; a database failure
// is fatal.
func Build(ctx context.Context, cfg *config.Config) (*App, error) {
	db, err := infradb.Open(ctx, cfg.DB, infradb.ConnectPolicy)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	if cfg.RunMigrations {
		if err := infradb.Migrate(db); err != nil {
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	var rdb *redis.Client
	if cfg.Redis.Enabled() {
		if c, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			log.Warn().Err(err).Msg("redis unavailable, running without price cache")
		} else {
			rdb = c
		}
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	acqPool := workerpool.New(workerpool.DefaultSize)
	llmPool := workerpool.New(workerpool.DefaultSize)
	sources := NewMarket(cfg.Market, rdb)

	fundRepo := fundadapters.NewFundRepository(db)
	priceRepo := marketadapters.NewPriceHistoryRepository(db)
	funds := fundusecase.NewFundUsecase(fundRepo, sources.Directory)

	acq := marketusecase.NewAcquirer(sources.History, sources.Quotes, sources.Intraday, rec)
	market := marketusecase.NewMarketDataUsecase(acq, acqPool, priceRepo, rec)
	sync := marketusecase.NewSyncUsecase(funds, acq, priceRepo, ratelimiter.NewRateLimiter(syncRate, time.Minute))

	llmClient := infrahttp.NewHTTPClient(infrahttp.ClientOptions{Timeout: advisoryusecase.ProviderTimeout})
	provider, err := NewProvider(ctx, cfg.LLM, llmClient)
	if err != nil {
		log.Warn().Err(err).Str("provider", cfg.LLM.Provider).Msg("advice provider unavailable, using rule-based advice")
		provider = nil
	}
	advisory := advisoryusecase.NewAdvisoryUsecase(provider, advisoryadapters.NewCacheRepository(db), rec,
		advisoryusecase.WithPool(llmPool, advisoryusecase.ProviderTimeout))

	strategy := strategyusecase.NewStrategyUsecase(market, advisory, strategyadapters.NewDecisionRepository(db), rec, cfg.BaseCapital)

	checks := map[string]healthhandler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	return &App{
		Config:     cfg,
		DB:         db,
		Redis:      rdb,
		Registry:   reg,
		Metrics:    rec,
		Funds:      funds,
		MarketData: market,
		Sync:       sync,
		Advisory:   advisory,
		Strategy:   strategy,

		AcquisitionPool: acqPool,
		AdvisoryPool:    llmPool,

		Checks: checks,
	}, nil
}

// Close releases the database and Redis connections.
func (a *App) Close() error {
	var errs []error
	if a.Redis != nil {
		errs = append(errs, a.Redis.Close())
	}
	if sqlDB, err := a.DB.DB(); err == nil {
		errs = append(errs, sqlDB.Close())
	}
	return errors.Join(errs...)
}
