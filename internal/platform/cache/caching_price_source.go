// Package cache provides caching decorators for market data sources.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/feature/marketdata/usecase"
)

const (
	defaultTTL       = 5 * time.Minute
	defaultNamespace = "prices"
)

// CachingPriceSource decorates a HistorySource with Redis caching. Only
// successful, non-empty upstream results are cached, so synthetic fallbacks
// never reach Redis.
type CachingPriceSource struct {
	inner     usecase.HistorySource
	rdb       *redis.Client
	ttl       func() time.Duration
	namespace string
}

var _ usecase.HistorySource = (*CachingPriceSource)(nil)

// NewCachingPriceSource wraps inner. ttl is evaluated on every write; a nil
// ttl or a non-positive result uses five minutes. An empty namespace uses
// "prices". A nil rdb disables caching.
func NewCachingPriceSource(rdb *redis.Client, ttl func() time.Duration, inner usecase.HistorySource, namespace string) *CachingPriceSource {
	if namespace == "" {
		namespace = defaultNamespace
	}
	return &CachingPriceSource{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// FetchHistory checks Redis first and falls back to the wrapped source.
func (c *CachingPriceSource) FetchHistory(ctx context.Context, code string, period entity.Period) (entity.PriceSeries, error) {
	if c.rdb == nil {
		return c.inner.FetchHistory(ctx, code, period)
	}

	key := c.cacheKey(code, period)

	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.PriceSeries
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		log.Warn().Str("key", key).Msg("dropping corrupted price cache entry")
		_ = c.rdb.Del(ctx, key).Err()
	}

	out, err := c.inner.FetchHistory(ctx, code, period)
	if err != nil {
		return out, err
	}
	if out.Empty() {
		return out, nil
	}

	if b, err := json.Marshal(out); err == nil {
		if err := c.rdb.Set(ctx, key, b, c.expiry()).Err(); err != nil {
			log.Debug().Err(err).Str("key", key).Msg("price cache write failed")
		}
	}
	return out, nil
}

func (c *CachingPriceSource) expiry() time.Duration {
	if c.ttl == nil {
		return defaultTTL
	}
	if d := c.ttl(); d > 0 {
		return d
	}
	return defaultTTL
}

func (c *CachingPriceSource) cacheKey(code string, period entity.Period) string {
	return fmt.Sprintf("%s:%s:%s", c.namespace, safe(code), safe(string(period)))
}

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
