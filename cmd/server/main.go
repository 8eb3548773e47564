package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"etf_advisor/internal/app/di"
	"etf_advisor/internal/app/router"
	fundhandler "etf_advisor/internal/feature/fund/transport/handler"
	markethandler "etf_advisor/internal/feature/marketdata/transport/handler"
	strategyhandler "etf_advisor/internal/feature/strategy/transport/handler"
	"etf_advisor/internal/platform/config"
	healthhandler "etf_advisor/internal/platform/http/handler"
	"etf_advisor/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if _, err := logger.Setup(logger.Options{Level: cfg.Log.Level, Format: cfg.Log.Format}); err != nil {
		return err
	}
	if cfg.Log.Level != "debug" && cfg.Log.Level != "trace" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := di.Build(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close connections")
		}
	}()

	r := router.NewRouter(router.Handlers{
		Health:   healthhandler.NewHealthHandler(app.Checks),
		Fund:     fundhandler.NewFundHandler(app.Funds),
		Market:   markethandler.NewMarketDataHandler(app.MarketData, app.Sync),
		Strategy: strategyhandler.NewStrategyHandler(app.Strategy),
	}, router.Options{
		StaticDir: cfg.StaticDir,
		Gatherer:  app.Registry,
		Observer:  app.Metrics,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.HTTPAddr).Str("llm", cfg.LLM.Provider).Msg("etf advisor listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
