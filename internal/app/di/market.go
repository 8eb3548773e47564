// Package di provides dependency injection factories for creating application components.
package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	fundusecase "etf_advisor/internal/feature/fund/usecase"
	marketusecase "etf_advisor/internal/feature/marketdata/usecase"
	"etf_advisor/internal/platform/cache"
	"etf_advisor/internal/platform/config"
	"etf_advisor/internal/platform/externalapi/twelvedata"
	infrahttp "etf_advisor/internal/platform/http"
)

// MarketSources are the upstream market data ports. Every field is nil when
// no API key is configured, so callers fall back to synthetic data.
type MarketSources struct {
	History   marketusecase.HistorySource
	Quotes    marketusecase.QuoteSource
	Intraday  marketusecase.IntradaySource
	Directory fundusecase.FundDirectory
}

// NewMarket creates the Twelve Data client with its HTTP client. History
// reads go through the Redis cache when rdb is not nil.
func NewMarket(cfg config.MarketConfig, rdb *redis.Client) MarketSources {
	tdCfg := twelvedata.FromMarketConfig(cfg)
	if !tdCfg.Enabled() {
		log.Warn().Msg("TWELVE_DATA_API_KEY is not set; market data will be synthetic")
		return MarketSources{}
	}

	httpClient := infrahttp.NewHTTPClient(infrahttp.ClientOptions{Timeout: tdCfg.Timeout})
	market := twelvedata.NewTwelveDataMarket(tdCfg, httpClient)
	ttl := func() time.Duration { return cache.TimeUntilNextRefresh(time.Now()) }

	return MarketSources{
		History:   cache.NewCachingPriceSource(rdb, ttl, market, "prices"),
		Quotes:    market,
		Intraday:  market,
		Directory: market,
	}
}
