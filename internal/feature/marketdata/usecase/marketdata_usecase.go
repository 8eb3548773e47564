package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"

	"etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/feature/strategy/domain/indicator"
	"etf_advisor/internal/platform/metrics"
	"etf_advisor/internal/platform/workerpool"
)

// Per-request acquisition budgets.
const (
	HistoryTimeout  = 5 * time.Second
	QuoteTimeout    = 3 * time.Second
	IntradayTimeout = 5 * time.Second
)

const (
	defaultStoredDays = 180
	maxStoredDays     = 3650
)

// PriceRepository persists daily close series.
type PriceRepository interface {
	UpsertSeries(ctx context.Context, s entity.PriceSeries) error
	FindSince(ctx context.Context, code string, since time.Time) (entity.PriceSeries, error)
}

// MarketDataUsecase serves market data requests. Every acquisition runs on a
// bounded worker pool under a timeout, and a timed-out request yields an
// empty value tagged with entity.ReasonTimeout instead of an error.
type MarketDataUsecase struct {
	acq     *Acquirer
	pool    *workerpool.Pool
	prices  PriceRepository
	metrics Metrics
	now     func() time.Time
}

// NewMarketDataUsecase builds the usecase. prices may be nil when no database
// is configured.
func NewMarketDataUsecase(acq *Acquirer, pool *workerpool.Pool, prices PriceRepository, m Metrics) *MarketDataUsecase {
	return &MarketDataUsecase{acq: acq, pool: pool, prices: prices, metrics: m, now: time.Now}
}

// PriceHistory returns period's series for code.
func (u *MarketDataUsecase) PriceHistory(ctx context.Context, code string, period entity.Period) entity.PriceSeries {
	s, err := workerpool.Run(ctx, u.pool, HistoryTimeout, func(ctx context.Context) (entity.PriceSeries, error) {
		return u.acq.History(ctx, code, period), nil
	})
	if err != nil {
		u.degraded("history", code, err)
		return entity.DegradedSeries(code, period, reason(err))
	}
	return s
}

// Quote returns the latest quote for code.
func (u *MarketDataUsecase) Quote(ctx context.Context, code string) entity.Quote {
	q, err := workerpool.Run(ctx, u.pool, QuoteTimeout, func(ctx context.Context) (entity.Quote, error) {
		return u.acq.Quote(ctx, code), nil
	})
	if err != nil {
		u.degraded("quote", code, err)
		return entity.Quote{Code: code, Time: u.now(), Error: reason(err)}
	}
	return q
}

// Intraday returns today's 5-minute bars for code.
func (u *MarketDataUsecase) Intraday(ctx context.Context, code string) entity.Intraday {
	d, err := workerpool.Run(ctx, u.pool, IntradayTimeout, func(ctx context.Context) (entity.Intraday, error) {
		return u.acq.Intraday(ctx, code), nil
	})
	if err != nil {
		u.degraded("intraday", code, err)
		return entity.Intraday{Code: code, Times: []string{}, Prices: []float64{}, Volumes: []float64{}, Error: reason(err)}
	}
	return d
}

// Indicators computes chart overlays over period's series. On a degraded
// series the arrays are empty and the series Error is returned as a warning.
func (u *MarketDataUsecase) Indicators(ctx context.Context, code string, period entity.Period) (entity.Indicators, string) {
	s := u.PriceHistory(ctx, code, period)
	bands := indicator.BollingerBands(s.Prices, 20, 2)
	out := entity.Indicators{
		Code:       code,
		Period:     period,
		Dates:      s.Dates,
		Prices:     s.Prices,
		MA5:        indicator.MovingAverage(s.Prices, 5),
		MA20:       indicator.MovingAverage(s.Prices, 20),
		RSI:        indicator.RSI(s.Prices, 14),
		BollUpper:  bands.Upper,
		BollMiddle: bands.Middle,
		BollLower:  bands.Lower,
	}
	return out, s.Error
}

// StoredHistory reads the persisted series for the last days days.
func (u *MarketDataUsecase) StoredHistory(ctx context.Context, code string, days int) (entity.PriceSeries, error) {
	if u.prices == nil {
		return entity.PriceSeries{}, ErrStorageDisabled
	}
	if days <= 0 {
		days = defaultStoredDays
	}
	if days > maxStoredDays {
		days = maxStoredDays
	}
	return u.prices.FindSince(ctx, code, u.now().AddDate(0, 0, -days))
}

func (u *MarketDataUsecase) degraded(kind, code string, err error) {
	log.Warn().Err(err).Str("kind", kind).Str("code", code).Msg("market data request degraded")
	u.metrics.RecordAcquisition(kind, metrics.SourceTimeout)
}

func reason(err error) string {
	if errors.Is(err, workerpool.ErrTimeout) {
		return entity.ReasonTimeout
	}
	return err.Error()
}
