package router

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	fundhandler "etf_advisor/internal/feature/fund/transport/handler"
	markethandler "etf_advisor/internal/feature/marketdata/transport/handler"
	strategyhandler "etf_advisor/internal/feature/strategy/transport/handler"
	healthhandler "etf_advisor/internal/platform/http/handler"
	"etf_advisor/internal/platform/http/middleware"
)

// Handlers groups every HTTP handler the router mounts.
type Handlers struct {
	Health   *healthhandler.HealthHandler
	Fund     *fundhandler.FundHandler
	Market   *markethandler.MarketDataHandler
	Strategy *strategyhandler.StrategyHandler
}

// Options configures the non-API parts of the router.
type Options struct {
	// StaticDir is served under /static, and its index.html at /. Skipped
	// when the directory does not exist.
	StaticDir string
	// Gatherer backs /metrics. nil skips the endpoint.
	Gatherer prometheus.Gatherer
	// Observer receives request latencies. May be nil.
	Observer middleware.DurationObserver
}

func NewRouter(h Handlers, opts Options) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.AccessLog(opts.Observer))

	// The dashboard may be served from another origin during development.
	r.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Origin", "Content-Type", middleware.RequestIDHeader},
		ExposeHeaders:   []string{middleware.RequestIDHeader},
	}))

	r.GET("/healthz", h.Health.Health)
	r.HEAD("/healthz", h.Health.Health)
	r.OPTIONS("/healthz", h.Health.Health)

	if opts.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(opts.Gatherer, promhttp.HandlerOpts{})))
	}
	mountStatic(r, opts.StaticDir)

	api := r.Group("/api")

	etf := api.Group("/etf")
	{
		etf.GET("/list", h.Fund.List)
		etf.POST("/add", h.Fund.Add)
		etf.GET("/search", h.Fund.Search)
		etf.GET("/:code/info", h.Fund.Info)
		etf.GET("/:code/realtime", h.Market.Realtime)
		etf.DELETE("/:code", h.Fund.Remove)
	}

	strategy := api.Group("/strategy")
	{
		strategy.GET("/:code", h.Strategy.Analyze)
		strategy.GET("/:code/history", h.Strategy.History)
		strategy.GET("/:code/performance", h.Strategy.Performance)
		strategy.POST("/:code/record", h.Strategy.Record)
		strategy.PUT("/:code/history/:id", h.Strategy.Update)
	}

	data := api.Group("/data")
	{
		data.GET("/:code/price", h.Market.Price)
		data.GET("/:code/intraday", h.Market.Intraday)
		data.GET("/:code/realtime", h.Market.Realtime)
		data.GET("/:code/indicators", h.Market.Indicators)
		data.GET("/:code/stored", h.Market.Stored)
		data.POST("/sync", h.Market.Sync)
	}

	return r
}

func mountStatic(r *gin.Engine, dir string) {
	if dir == "" {
		return
	}
	if fi, err := os.Stat(dir); err != nil || !fi.IsDir() {
		log.Info().Str("dir", dir).Msg("static directory not found, dashboard disabled")
		return
	}
	r.Static("/static", dir)
	index := filepath.Join(dir, "index.html")
	r.GET("/", func(c *gin.Context) {
		c.File(index)
	})
}
