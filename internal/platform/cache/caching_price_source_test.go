package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"etf_advisor/internal/feature/marketdata/domain/entity"
)

// mockHistorySource is a test HistorySource.
type mockHistorySource struct {
	fetchFn func(ctx context.Context, code string, period entity.Period) (entity.PriceSeries, error)
	calls   int
}

func (m *mockHistorySource) FetchHistory(ctx context.Context, code string, period entity.Period) (entity.PriceSeries, error) {
	m.calls++
	if m.fetchFn != nil {
		return m.fetchFn(ctx, code, period)
	}
	return entity.PriceSeries{}, nil
}

func sampleSeries() entity.PriceSeries {
	d := time.Date(2024, 3, 14, 0, 0, 0, 0, time.UTC)
	return entity.PriceSeries{
		Code:    "510300",
		Period:  entity.Period6M,
		Dates:   []time.Time{d.AddDate(0, 0, -1), d},
		Prices:  []float64{3.90, 3.912},
		Volumes: []float64{1.5e6, 2e6},
	}
}

func fixedTTL(d time.Duration) func() time.Duration {
	return func() time.Duration { return d }
}

func TestNewCachingPriceSource_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               func() time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"nil ttl and empty namespace", nil, "", 5 * time.Minute, "prices"},
		{"non-positive ttl uses default", fixedTTL(-time.Minute), "", 5 * time.Minute, "prices"},
		{"custom values preserved", fixedTTL(time.Hour), "custom", time.Hour, "custom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			c := NewCachingPriceSource(nil, tt.ttl, &mockHistorySource{}, tt.namespace)

			assert.Equal(t, tt.expectedTTL, c.expiry())
			assert.Equal(t, tt.expectedNamespace, c.namespace)
		})
	}
}

func TestCachingPriceSource_NilRedisBypasses(t *testing.T) {
	t.Parallel()
	inner := &mockHistorySource{fetchFn: func(context.Context, string, entity.Period) (entity.PriceSeries, error) {
		return sampleSeries(), nil
	}}
	c := NewCachingPriceSource(nil, nil, inner, "")

	for i := 0; i < 2; i++ {
		_, err := c.FetchHistory(context.Background(), "510300", entity.Period6M)
		require.NoError(t, err)
	}
	assert.Equal(t, 2, inner.calls)
}

func TestCachingPriceSource_Hit(t *testing.T) {
	t.Parallel()
	db, mock := redismock.NewClientMock()
	want := sampleSeries()
	b, err := json.Marshal(want)
	require.NoError(t, err)
	mock.ExpectGet("prices:510300:6m").SetVal(string(b))

	inner := &mockHistorySource{}
	c := NewCachingPriceSource(db, fixedTTL(time.Hour), inner, "")

	got, err := c.FetchHistory(context.Background(), "510300", entity.Period6M)

	require.NoError(t, err)
	assert.Equal(t, 0, inner.calls)
	assert.Equal(t, want.Prices, got.Prices)
	assert.True(t, want.Dates[1].Equal(got.Dates[1]))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceSource_MissStores(t *testing.T) {
	t.Parallel()
	db, mock := redismock.NewClientMock()
	series := sampleSeries()
	b, err := json.Marshal(series)
	require.NoError(t, err)
	mock.ExpectGet("prices:510300:6m").RedisNil()
	mock.ExpectSet("prices:510300:6m", b, 2*time.Hour).SetVal("OK")

	inner := &mockHistorySource{fetchFn: func(context.Context, string, entity.Period) (entity.PriceSeries, error) {
		return series, nil
	}}
	c := NewCachingPriceSource(db, fixedTTL(2*time.Hour), inner, "")

	got, err := c.FetchHistory(context.Background(), "510300", entity.Period6M)

	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.Equal(t, series.Prices, got.Prices)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceSource_CorruptedEntryIsDeleted(t *testing.T) {
	t.Parallel()
	db, mock := redismock.NewClientMock()
	series := sampleSeries()
	b, err := json.Marshal(series)
	require.NoError(t, err)
	mock.ExpectGet("prices:510300:6m").SetVal("{not json")
	mock.ExpectDel("prices:510300:6m").SetVal(1)
	mock.ExpectSet("prices:510300:6m", b, time.Hour).SetVal("OK")

	inner := &mockHistorySource{fetchFn: func(context.Context, string, entity.Period) (entity.PriceSeries, error) {
		return series, nil
	}}
	c := NewCachingPriceSource(db, fixedTTL(time.Hour), inner, "")

	_, err = c.FetchHistory(context.Background(), "510300", entity.Period6M)

	require.NoError(t, err)
	assert.Equal(t, 1, inner.calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCachingPriceSource_ErrorsAndEmptyAreNotCached(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		series  entity.PriceSeries
		err     error
		wantErr bool
	}{
		{"upstream error", entity.PriceSeries{}, errors.New("upstream down"), true},
		{"empty result", entity.PriceSeries{Code: "510300"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			db, mock := redismock.NewClientMock()
			mock.ExpectGet("prices:510300:1w").RedisNil()

			inner := &mockHistorySource{fetchFn: func(context.Context, string, entity.Period) (entity.PriceSeries, error) {
				return tt.series, tt.err
			}}
			c := NewCachingPriceSource(db, nil, inner, "")

			_, err := c.FetchHistory(context.Background(), "510300", entity.Period1W)

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCacheKey_EscapesSeparators(t *testing.T) {
	t.Parallel()
	c := NewCachingPriceSource(nil, nil, &mockHistorySource{}, "ns")

	assert.Equal(t, "ns:510_300:6m", c.cacheKey("510:300", entity.Period6M))
	assert.Equal(t, "ns:a_b:1y", c.cacheKey("a b", entity.Period1Y))
}
