// Package breaker guards a provider with a circuit breaker so a failing
// upstream is skipped quickly instead of timing out on every request.
package breaker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/sony/gobreaker"

	"etf_advisor/internal/feature/advisory/usecase"
)

// Settings tunes the breaker.
type Settings struct {
	// ConsecutiveFailures trips the breaker.
	ConsecutiveFailures uint32
	// OpenTimeout is how long the breaker stays open before probing.
	OpenTimeout time.Duration
	// Interval clears the closed-state counts; zero never clears them.
	Interval time.Duration
}

// ErrEmptyCompletion counts a blank reply as a provider failure.
var ErrEmptyCompletion = errors.New("provider returned an empty completion")

// DefaultSettings trips after 3 failures and probes again after a minute.
var DefaultSettings = Settings{ConsecutiveFailures: 3, OpenTimeout: time.Minute, Interval: time.Minute}

// Provider wraps another provider.
type Provider struct {
	inner usecase.Provider
	cb    *gobreaker.CircuitBreaker
}

var _ usecase.Provider = (*Provider)(nil)

func New(name string, inner usecase.Provider, s Settings) *Provider {
	st := gobreaker.Settings{
		Name:        name,
		MaxRequests: 1,
		Interval:    s.Interval,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("provider breaker state changed")
		},
	}
	return &Provider{inner: inner, cb: gobreaker.NewCircuitBreaker(st)}
}

// Generate returns usecase.ErrProviderUnavailable while the breaker is open.
// Unavailable results from the inner provider do not count as failures;
// blank completions do.
func (p *Provider) Generate(ctx context.Context, prompt string) (string, error) {
	var unavailable error
	out, err := p.cb.Execute(func() (interface{}, error) {
		text, err := p.inner.Generate(ctx, prompt)
		if errors.Is(err, usecase.ErrProviderUnavailable) {
			unavailable = err
			return "", nil
		}
		if err == nil && strings.TrimSpace(text) == "" {
			return "", ErrEmptyCompletion
		}
		return text, err
	})
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		return "", fmt.Errorf("%w: %v", usecase.ErrProviderUnavailable, err)
	case err != nil:
		return "", err
	case unavailable != nil:
		return "", unavailable
	}
	return out.(string), nil
}

// State exposes the breaker state for diagnostics.
func (p *Provider) State() string {
	return p.cb.State().String()
}
