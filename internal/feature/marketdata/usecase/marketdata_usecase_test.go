package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/platform/workerpool"
)

func newUsecase(history HistorySource, prices PriceRepository) *MarketDataUsecase {
	acq := NewAcquirer(history, nil, nil, newMetrics(), WithRetryPolicy(noDelay), WithClock(fixedClock(testNow)))
	u := NewMarketDataUsecase(acq, workerpool.New(workerpool.DefaultSize), prices, newMetrics())
	u.now = fixedClock(testNow)
	return u
}

func TestMarketDataUsecase_PriceHistory(t *testing.T) {
	t.Parallel()
	src := &mockHistorySource{FetchHistoryFunc: func(context.Context, string, entity.Period) (entity.PriceSeries, error) {
		return realSeries("510300", 200), nil
	}}
	u := newUsecase(src, nil)

	got := u.PriceHistory(context.Background(), "510300", entity.Period6M)

	assert.Equal(t, 180, got.Len())
	assert.Empty(t, got.Error)
	assert.False(t, got.Synthetic)
}

func TestMarketDataUsecase_PriceHistoryTimeout(t *testing.T) {
	if testing.Short() {
		t.Skip("waits for the history timeout")
	}
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	src := &mockHistorySource{FetchHistoryFunc: func(ctx context.Context, _ string, _ entity.Period) (entity.PriceSeries, error) {
		<-release
		return entity.PriceSeries{}, errUpstream
	}}
	u := newUsecase(src, nil)

	start := time.Now()
	got := u.PriceHistory(context.Background(), "510300", entity.Period6M)

	assert.Less(t, time.Since(start), HistoryTimeout+time.Second)
	assert.True(t, got.Empty())
	assert.True(t, got.Consistent())
	assert.Equal(t, entity.ReasonTimeout, got.Error)
}

func TestMarketDataUsecase_QuoteParentCancelled(t *testing.T) {
	t.Parallel()
	u := newUsecase(nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	q := u.Quote(ctx, "510300")

	assert.Equal(t, "510300", q.Code)
	assert.Equal(t, context.Canceled.Error(), q.Error)
	assert.Zero(t, q.Price)
}

func TestMarketDataUsecase_IntradaySynthetic(t *testing.T) {
	t.Parallel()
	u := newUsecase(nil, nil)

	d := u.Intraday(context.Background(), "510300")

	assert.True(t, d.Synthetic)
	assert.Empty(t, d.Error)
	assert.Len(t, d.Times, 66)
}

func TestMarketDataUsecase_Indicators(t *testing.T) {
	t.Parallel()
	u := newUsecase(nil, nil)

	got, warning := u.Indicators(context.Background(), "510300", entity.Period1M)

	assert.Empty(t, warning)
	require.Len(t, got.Prices, 30)
	for _, series := range [][]float64{got.MA5, got.MA20, got.RSI, got.BollUpper, got.BollMiddle, got.BollLower} {
		assert.Len(t, series, 30)
	}
	assert.Zero(t, got.MA20[18])
	assert.NotZero(t, got.MA20[19])
	assert.Equal(t, 50.0, got.RSI[0])
	assert.GreaterOrEqual(t, got.BollUpper[29], got.BollMiddle[29])
	assert.LessOrEqual(t, got.BollLower[29], got.BollMiddle[29])
}

func TestMarketDataUsecase_StoredHistory(t *testing.T) {
	t.Parallel()

	t.Run("storage disabled", func(t *testing.T) {
		u := newUsecase(nil, nil)
		_, err := u.StoredHistory(context.Background(), "510300", 30)
		assert.ErrorIs(t, err, ErrStorageDisabled)
	})

	t.Run("days are clamped", func(t *testing.T) {
		tests := []struct {
			days int
			want time.Time
		}{
			{30, testNow.AddDate(0, 0, -30)},
			{0, testNow.AddDate(0, 0, -defaultStoredDays)},
			{99999, testNow.AddDate(0, 0, -maxStoredDays)},
		}
		for _, tt := range tests {
			var gotSince time.Time
			repo := &mockPriceRepository{FindSinceFunc: func(_ context.Context, code string, since time.Time) (entity.PriceSeries, error) {
				gotSince = since
				return realSeries(code, 3), nil
			}}
			u := newUsecase(nil, repo)

			s, err := u.StoredHistory(context.Background(), "510300", tt.days)

			require.NoError(t, err)
			assert.Equal(t, 3, s.Len())
			assert.Equal(t, tt.want, gotSince)
		}
	})

	t.Run("repository error", func(t *testing.T) {
		boom := errors.New("db down")
		repo := &mockPriceRepository{FindSinceFunc: func(context.Context, string, time.Time) (entity.PriceSeries, error) {
			return entity.PriceSeries{}, boom
		}}
		u := newUsecase(nil, repo)

		_, err := u.StoredHistory(context.Background(), "510300", 10)
		assert.ErrorIs(t, err, boom)
	})
}
