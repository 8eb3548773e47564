// Package usecase implements market data acquisition and the operations built
// on top of it.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/platform/metrics"
	"etf_advisor/internal/platform/retry"
)

// ErrEmptyResult is returned by validation when an upstream answered with no
// bars.
var ErrEmptyResult = errors.New("marketdata: empty result")

// HistorySource fetches a daily close series for a fund.
// Following Go convention, interfaces are defined by the consumer.
type HistorySource interface {
	FetchHistory(ctx context.Context, code string, period entity.Period) (entity.PriceSeries, error)
}

// QuoteSource fetches the latest quote for a fund.
type QuoteSource interface {
	FetchQuote(ctx context.Context, code string) (entity.Quote, error)
}

// IntradaySource fetches today's 5-minute bars for a fund.
type IntradaySource interface {
	FetchIntraday(ctx context.Context, code string) (entity.Intraday, error)
}

// Metrics is the subset of the metrics recorder used here.
type Metrics interface {
	RecordAcquisition(kind, source string)
}

// Acquirer fetches market data with retries and falls back to synthetic data
// when every attempt fails. Its methods never return an error.
type Acquirer struct {
	history  HistorySource
	quotes   QuoteSource
	intraday IntradaySource
	policy   retry.Policy
	synth    *Synthesizer
	metrics  Metrics
}

// AcquirerOption customizes an Acquirer.
type AcquirerOption func(*Acquirer)

// WithRetryPolicy overrides retry.DefaultPolicy.
func WithRetryPolicy(p retry.Policy) AcquirerOption {
	return func(a *Acquirer) { a.policy = p }
}

// WithClock sets the clock used for synthetic data.
func WithClock(now func() time.Time) AcquirerOption {
	return func(a *Acquirer) { a.synth = NewSynthesizer(now) }
}

// NewAcquirer builds an Acquirer. Any source may be nil, in which case the
// corresponding data is always synthesized.
func NewAcquirer(history HistorySource, quotes QuoteSource, intraday IntradaySource, m Metrics, opts ...AcquirerOption) *Acquirer {
	a := &Acquirer{
		history:  history,
		quotes:   quotes,
		intraday: intraday,
		policy:   retry.DefaultPolicy,
		synth:    NewSynthesizer(time.Now),
		metrics:  m,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// History returns period's close series for code.
func (a *Acquirer) History(ctx context.Context, code string, period entity.Period) entity.PriceSeries {
	spec := period.Spec()
	if a.history != nil {
		s, err := fetch(ctx, a, "history", code, func(ctx context.Context) (entity.PriceSeries, error) {
			s, err := a.history.FetchHistory(ctx, code, period)
			if err != nil {
				return s, err
			}
			if s.Empty() {
				return s, ErrEmptyResult
			}
			if !s.Consistent() {
				return s, retry.Permanent(fmt.Errorf("marketdata: %s series arrays differ in length", code))
			}
			return trim(s, spec.Days), nil
		})
		if err == nil {
			s.Code, s.Period = code, period
			return s
		}
	}
	a.metrics.RecordAcquisition("history", metrics.SourceSynthetic)
	return a.synth.History(code, period, spec.Days)
}

// Quote returns the latest price for code.
func (a *Acquirer) Quote(ctx context.Context, code string) entity.Quote {
	if a.quotes != nil {
		q, err := fetch(ctx, a, "quote", code, func(ctx context.Context) (entity.Quote, error) {
			q, err := a.quotes.FetchQuote(ctx, code)
			if err == nil && q.Price <= 0 {
				err = ErrEmptyResult
			}
			return q, err
		})
		if err == nil {
			q.Code = code
			return q
		}
	}
	a.metrics.RecordAcquisition("quote", metrics.SourceSynthetic)
	return a.synth.Quote(code)
}

// Intraday returns today's 5-minute bars for code.
func (a *Acquirer) Intraday(ctx context.Context, code string) entity.Intraday {
	if a.intraday != nil {
		d, err := fetch(ctx, a, "intraday", code, func(ctx context.Context) (entity.Intraday, error) {
			d, err := a.intraday.FetchIntraday(ctx, code)
			if err == nil && len(d.Prices) == 0 {
				err = ErrEmptyResult
			}
			return d, err
		})
		if err == nil {
			d.Code = code
			return d
		}
	}
	a.metrics.RecordAcquisition("intraday", metrics.SourceSynthetic)
	return a.synth.Intraday(code)
}

func fetch[T any](ctx context.Context, a *Acquirer, kind, code string, op func(context.Context) (T, error)) (T, error) {
	v, err := retry.Do(ctx, a.policy, op, func(err error, attempt int, wait time.Duration) {
		log.Warn().Err(err).
			Str("kind", kind).
			Str("code", code).
			Int("attempt", attempt).
			Dur("wait", wait).
			Msg("market data fetch failed, retrying")
	})
	if err != nil {
		log.Warn().Err(err).Str("kind", kind).Str("code", code).Msg("market data unavailable, using synthetic data")
		return v, err
	}
	a.metrics.RecordAcquisition(kind, metrics.SourceRemote)
	return v, nil
}

// trim keeps the most recent n bars.
func trim(s entity.PriceSeries, n int) entity.PriceSeries {
	if n <= 0 || s.Len() <= n {
		return s
	}
	from := s.Len() - n
	s.Dates = s.Dates[from:]
	s.Prices = s.Prices[from:]
	s.Volumes = s.Volumes[from:]
	return s
}
