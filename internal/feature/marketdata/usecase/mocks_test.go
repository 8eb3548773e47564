package usecase

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/platform/metrics"
	"etf_advisor/internal/platform/retry"
)

var errUpstream = errors.New("upstream unavailable")

var noDelay = retry.Policy{Attempts: 3, Delay: time.Millisecond}

func newMetrics() *metrics.Recorder {
	return metrics.New(prometheus.NewRegistry())
}

type mockHistorySource struct {
	FetchHistoryFunc  func(ctx context.Context, code string, period entity.Period) (entity.PriceSeries, error)
	FetchHistoryCalls atomic.Int32
}

func (m *mockHistorySource) FetchHistory(ctx context.Context, code string, period entity.Period) (entity.PriceSeries, error) {
	m.FetchHistoryCalls.Add(1)
	if m.FetchHistoryFunc != nil {
		return m.FetchHistoryFunc(ctx, code, period)
	}
	return entity.PriceSeries{}, errors.New("FetchHistoryFunc is not implemented")
}

type mockQuoteSource struct {
	FetchQuoteFunc  func(ctx context.Context, code string) (entity.Quote, error)
	FetchQuoteCalls int
}

func (m *mockQuoteSource) FetchQuote(ctx context.Context, code string) (entity.Quote, error) {
	m.FetchQuoteCalls++
	if m.FetchQuoteFunc != nil {
		return m.FetchQuoteFunc(ctx, code)
	}
	return entity.Quote{}, errors.New("FetchQuoteFunc is not implemented")
}

type mockIntradaySource struct {
	FetchIntradayFunc  func(ctx context.Context, code string) (entity.Intraday, error)
	FetchIntradayCalls int
}

func (m *mockIntradaySource) FetchIntraday(ctx context.Context, code string) (entity.Intraday, error) {
	m.FetchIntradayCalls++
	if m.FetchIntradayFunc != nil {
		return m.FetchIntradayFunc(ctx, code)
	}
	return entity.Intraday{}, errors.New("FetchIntradayFunc is not implemented")
}

type mockPriceRepository struct {
	UpsertSeriesFunc func(ctx context.Context, s entity.PriceSeries) error
	FindSinceFunc    func(ctx context.Context, code string, since time.Time) (entity.PriceSeries, error)
	Upserted         []entity.PriceSeries
}

func (m *mockPriceRepository) UpsertSeries(ctx context.Context, s entity.PriceSeries) error {
	m.Upserted = append(m.Upserted, s)
	if m.UpsertSeriesFunc != nil {
		return m.UpsertSeriesFunc(ctx, s)
	}
	return nil
}

func (m *mockPriceRepository) FindSince(ctx context.Context, code string, since time.Time) (entity.PriceSeries, error) {
	if m.FindSinceFunc != nil {
		return m.FindSinceFunc(ctx, code, since)
	}
	return entity.PriceSeries{}, errors.New("FindSinceFunc is not implemented")
}

type mockFundLister struct {
	codes []string
	err   error
}

func (m *mockFundLister) ListActiveCodes(context.Context) ([]string, error) {
	return m.codes, m.err
}

type mockWaiter struct {
	WaitCalls int
	err       error
}

func (m *mockWaiter) Wait(context.Context) error {
	m.WaitCalls++
	return m.err
}

func realSeries(code string, n int) entity.PriceSeries {
	s := entity.PriceSeries{Code: code}
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		s.Dates = append(s.Dates, start.AddDate(0, 0, i))
		s.Prices = append(s.Prices, 3.5+float64(i)*0.01)
		s.Volumes = append(s.Volumes, 2e6)
	}
	return s
}
