// Package usecase implements the advisory cache around the natural-language
// provider.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"etf_advisor/internal/feature/advisory/domain/entity"
	strategyentity "etf_advisor/internal/feature/strategy/domain/entity"
	"etf_advisor/internal/platform/metrics"
	"etf_advisor/internal/platform/workerpool"
)

const (
	// DefaultTTL is how long a generated response is served from the cache.
	DefaultTTL = 24 * time.Hour
	// ProviderTimeout bounds a single provider call.
	ProviderTimeout = 30 * time.Second
)

// ErrProviderUnavailable is returned by providers that cannot serve a request,
// for example because no API key is configured.
var ErrProviderUnavailable = errors.New("advisory provider unavailable")

// Provider generates text for a prompt.
// Following Go convention, interfaces are defined by the consumer.
type Provider interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// CacheStore persists provider responses.
type CacheStore interface {
	// Get returns nil, nil when no entry exists for key.
	Get(ctx context.Context, key string) (*entity.CacheEntry, error)
	// Put inserts or replaces the entry with the same key.
	Put(ctx context.Context, e entity.CacheEntry) error
}

// Metrics records advisory outcomes.
type Metrics interface {
	RecordAdvisory(outcome string)
}

// Option customizes an AdvisoryUsecase.
type Option func(*AdvisoryUsecase)

// WithTTL overrides DefaultTTL.
func WithTTL(ttl time.Duration) Option {
	return func(u *AdvisoryUsecase) { u.ttl = ttl }
}

// WithClock replaces time.Now, mainly for tests.
func WithClock(now func() time.Time) Option {
	return func(u *AdvisoryUsecase) { u.now = now }
}

// WithPool runs provider calls on pool with the given timeout.
func WithPool(pool *workerpool.Pool, timeout time.Duration) Option {
	return func(u *AdvisoryUsecase) {
		u.pool = pool
		u.timeout = timeout
	}
}

// AdvisoryUsecase turns strategy results into advice text.
type AdvisoryUsecase struct {
	provider Provider
	store    CacheStore
	metrics  Metrics

	ttl     time.Duration
	now     func() time.Time
	pool    *workerpool.Pool
	timeout time.Duration
}

// NewAdvisoryUsecase builds the usecase. provider may be nil, in which case
// every request is answered by RuleBasedAdvice.
func NewAdvisoryUsecase(provider Provider, store CacheStore, m Metrics, opts ...Option) *AdvisoryUsecase {
	u := &AdvisoryUsecase{
		provider: provider,
		store:    store,
		metrics:  m,
		ttl:      DefaultTTL,
		now:      time.Now,
		timeout:  ProviderTimeout,
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// GenerateAdvice always returns text. Cache and provider failures degrade to
// the rule-based advice.
func (u *AdvisoryUsecase) GenerateAdvice(ctx context.Context, r strategyentity.StrategyResult) string {
	prompt := BuildPrompt(r)
	key := CacheKey(prompt)

	if text, ok := u.lookup(ctx, key); ok {
		u.metrics.RecordAdvisory(metrics.AdviceCacheHit)
		return text
	}

	text, err := u.generate(ctx, prompt)
	if err == nil && strings.TrimSpace(text) == "" {
		err = errors.New("empty response")
	}
	if err != nil {
		log.Warn().Err(err).Str("action", string(r.FinalAction)).Msg("advisory provider failed, using rule-based advice")
		u.metrics.RecordAdvisory(metrics.AdviceFallback)
		return RuleBasedAdvice(r)
	}

	if u.store != nil {
		e := entity.CacheEntry{Key: key, Prompt: prompt, Response: text, ExpiresAt: u.now().Add(u.ttl)}
		if err := u.store.Put(ctx, e); err != nil {
			log.Warn().Err(err).Str("key", key).Msg("failed to store advisory response")
		}
	}
	u.metrics.RecordAdvisory(metrics.AdviceGenerated)
	return text
}

func (u *AdvisoryUsecase) lookup(ctx context.Context, key string) (string, bool) {
	if u.store == nil {
		return "", false
	}
	e, err := u.store.Get(ctx, key)
	if err != nil {
		log.Warn().Err(err).Str("key", key).Msg("advisory cache lookup failed")
		return "", false
	}
	if e == nil || !e.Fresh(u.now()) {
		return "", false
	}
	log.Debug().Str("key", key).Msg("advisory cache hit")
	return e.Response, true
}

func (u *AdvisoryUsecase) generate(ctx context.Context, prompt string) (string, error) {
	if u.provider == nil {
		return "", ErrProviderUnavailable
	}
	if u.pool == nil {
		return u.provider.Generate(ctx, prompt)
	}
	return workerpool.Run(ctx, u.pool, u.timeout, func(ctx context.Context) (string, error) {
		return u.provider.Generate(ctx, prompt)
	})
}
