package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etf_advisor/internal/feature/marketdata/domain/entity"
)

func TestAcquirer_History(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name          string
		fetch         func(calls int32) (entity.PriceSeries, error)
		wantCalls     int32
		wantSynthetic bool
		wantLen       int
	}{
		{
			name:      "first attempt succeeds",
			fetch:     func(int32) (entity.PriceSeries, error) { return realSeries("510300", 30), nil },
			wantCalls: 1,
			wantLen:   30,
		},
		{
			name: "succeeds on third attempt",
			fetch: func(calls int32) (entity.PriceSeries, error) {
				if calls < 3 {
					return entity.PriceSeries{}, errUpstream
				}
				return realSeries("510300", 30), nil
			},
			wantCalls: 3,
			wantLen:   30,
		},
		{
			name:          "all attempts fail falls back to synthetic",
			fetch:         func(int32) (entity.PriceSeries, error) { return entity.PriceSeries{}, errUpstream },
			wantCalls:     3,
			wantSynthetic: true,
			wantLen:       30,
		},
		{
			name:          "empty result is retried then synthesized",
			fetch:         func(int32) (entity.PriceSeries, error) { return entity.PriceSeries{}, nil },
			wantCalls:     3,
			wantSynthetic: true,
			wantLen:       30,
		},
		{
			name: "malformed result is not retried",
			fetch: func(int32) (entity.PriceSeries, error) {
				s := realSeries("510300", 10)
				s.Volumes = s.Volumes[:5]
				return s, nil
			},
			wantCalls:     1,
			wantSynthetic: true,
			wantLen:       30,
		},
		{
			name:      "longer result is trimmed to the most recent bars",
			fetch:     func(int32) (entity.PriceSeries, error) { return realSeries("510300", 60), nil },
			wantCalls: 1,
			wantLen:   30,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			src := &mockHistorySource{}
			src.FetchHistoryFunc = func(ctx context.Context, code string, period entity.Period) (entity.PriceSeries, error) {
				return tc.fetch(src.FetchHistoryCalls.Load())
			}
			a := NewAcquirer(src, nil, nil, newMetrics(), WithRetryPolicy(noDelay), WithClock(fixedClock(testNow)))

			got := a.History(context.Background(), "510300", entity.Period1M)

			assert.Equal(t, tc.wantCalls, src.FetchHistoryCalls.Load())
			assert.Equal(t, tc.wantSynthetic, got.Synthetic)
			assert.Equal(t, tc.wantLen, got.Len())
			assert.True(t, got.Consistent())
			assert.Equal(t, "510300", got.Code)
			assert.Equal(t, entity.Period1M, got.Period)
		})
	}
}

func TestAcquirer_TrimKeepsLatest(t *testing.T) {
	t.Parallel()
	full := realSeries("510300", 60)
	src := &mockHistorySource{FetchHistoryFunc: func(context.Context, string, entity.Period) (entity.PriceSeries, error) {
		return realSeries("510300", 60), nil
	}}
	a := NewAcquirer(src, nil, nil, newMetrics(), WithRetryPolicy(noDelay))

	got := a.History(context.Background(), "510300", entity.Period1M)

	require.Equal(t, 30, got.Len())
	assert.Equal(t, full.Prices[59], got.Prices[29])
	assert.Equal(t, full.Dates[30], got.Dates[0])
}

func TestAcquirer_NoSourcesSynthesizes(t *testing.T) {
	t.Parallel()
	a := NewAcquirer(nil, nil, nil, newMetrics(), WithClock(fixedClock(testNow)))
	ctx := context.Background()

	s := a.History(ctx, "512880", entity.Period1Y)
	assert.True(t, s.Synthetic)
	assert.Equal(t, 365, s.Len())

	q := a.Quote(ctx, "512880")
	assert.True(t, q.Synthetic)
	assert.Positive(t, q.Price)

	d := a.Intraday(ctx, "512880")
	assert.True(t, d.Synthetic)
	assert.Len(t, d.Prices, 66)
}

func TestAcquirer_Quote(t *testing.T) {
	t.Parallel()

	t.Run("remote quote", func(t *testing.T) {
		src := &mockQuoteSource{FetchQuoteFunc: func(context.Context, string) (entity.Quote, error) {
			return entity.Quote{Name: "沪深300ETF", Price: 3.912, Change: 0.45}, nil
		}}
		a := NewAcquirer(nil, src, nil, newMetrics(), WithRetryPolicy(noDelay))

		q := a.Quote(context.Background(), "510300")

		assert.False(t, q.Synthetic)
		assert.Equal(t, "510300", q.Code)
		assert.Equal(t, 3.912, q.Price)
		assert.Equal(t, 1, src.FetchQuoteCalls)
	})

	t.Run("zero price is retried then synthesized", func(t *testing.T) {
		src := &mockQuoteSource{FetchQuoteFunc: func(context.Context, string) (entity.Quote, error) {
			return entity.Quote{}, nil
		}}
		a := NewAcquirer(nil, src, nil, newMetrics(), WithRetryPolicy(noDelay))

		q := a.Quote(context.Background(), "510300")

		assert.True(t, q.Synthetic)
		assert.Equal(t, 3, src.FetchQuoteCalls)
	})
}

func TestAcquirer_IntradayFallback(t *testing.T) {
	t.Parallel()
	src := &mockIntradaySource{FetchIntradayFunc: func(context.Context, string) (entity.Intraday, error) {
		return entity.Intraday{}, errUpstream
	}}
	a := NewAcquirer(nil, nil, src, newMetrics(), WithRetryPolicy(noDelay))

	d := a.Intraday(context.Background(), "159915")

	assert.True(t, d.Synthetic)
	assert.Equal(t, 3, src.FetchIntradayCalls)
}
