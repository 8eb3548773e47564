package adapters

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"etf_advisor/internal/feature/strategy/domain/entity"
	"etf_advisor/internal/feature/strategy/usecase"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "failed to initialize test database")
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(&DecisionModel{}), "failed to migrate table")
	return db
}

var day1 = time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

func decision(code string, date time.Time, action entity.Action) *entity.Decision {
	return &entity.Decision{
		FundCode: code,
		Date:     date,
		Signals: []entity.Signal{
			{Name: "Dual MA", Action: entity.ActionBuy, Confidence: 0.7, Details: "uptrend"},
			{Name: "RSI", Action: entity.ActionHold, Confidence: 0.55, Details: "RSI=55.0"},
		},
		FinalAction:     action,
		SuggestedAmount: 2000,
		Advice:          "advice",
	}
}

func TestDecisionGorm_SaveDailyAndFind(t *testing.T) {
	t.Parallel()
	repo := NewDecisionRepository(setupTestDB(t))
	ctx := context.Background()

	d := decision("510300", day1, entity.ActionBuy)
	require.NoError(t, repo.SaveDaily(ctx, d))
	assert.NotZero(t, d.ID)

	got, err := repo.FindByDate(ctx, "510300", day1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, d.ID, got.ID)
	assert.Equal(t, entity.ActionBuy, got.FinalAction)
	assert.Equal(t, 2000.0, got.SuggestedAmount)
	assert.Equal(t, d.Signals, got.Signals)
	assert.False(t, got.Followed())
}

func TestDecisionGorm_FindByDateMissing(t *testing.T) {
	t.Parallel()
	repo := NewDecisionRepository(setupTestDB(t))

	got, err := repo.FindByDate(context.Background(), "510300", day1)

	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecisionGorm_SaveDailyRefreshesSameDayKeepingActual(t *testing.T) {
	t.Parallel()
	db := setupTestDB(t)
	repo := NewDecisionRepository(db)
	ctx := context.Background()

	first := decision("510300", day1, entity.ActionBuy)
	require.NoError(t, repo.SaveDaily(ctx, first))
	require.NoError(t, repo.UpdateActual(ctx, "510300", first.ID, entity.ActionBuy, 1500, "filled"))

	second := decision("510300", day1, entity.ActionHold)
	second.SuggestedAmount = 0
	second.Advice = "wait"
	require.NoError(t, repo.SaveDaily(ctx, second))
	assert.Equal(t, first.ID, second.ID)

	got, err := repo.FindByDate(ctx, "510300", day1)
	require.NoError(t, err)
	assert.Equal(t, entity.ActionHold, got.FinalAction)
	assert.Equal(t, 0.0, got.SuggestedAmount)
	assert.Equal(t, "wait", got.Advice)
	assert.Equal(t, entity.ActionBuy, got.ActualAction)
	assert.Equal(t, 1500.0, got.ActualAmount)
	assert.Equal(t, "filled", got.Remark)

	var count int64
	require.NoError(t, db.Model(&DecisionModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestDecisionGorm_ListRecent(t *testing.T) {
	t.Parallel()
	repo := NewDecisionRepository(setupTestDB(t))
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.SaveDaily(ctx, decision("510300", day1.AddDate(0, 0, i), entity.ActionHold)))
	}
	require.NoError(t, repo.SaveDaily(ctx, decision("512880", day1, entity.ActionSell)))

	got, err := repo.ListRecent(ctx, "510300", 3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.True(t, got[0].Date.Equal(day1.AddDate(0, 0, 4)))
	assert.True(t, got[2].Date.Equal(day1.AddDate(0, 0, 2)))
	for _, d := range got {
		assert.Equal(t, "510300", d.FundCode)
	}
}

func TestDecisionGorm_UpdateActualNotFound(t *testing.T) {
	t.Parallel()
	repo := NewDecisionRepository(setupTestDB(t))
	ctx := context.Background()

	d := decision("510300", day1, entity.ActionBuy)
	require.NoError(t, repo.SaveDaily(ctx, d))

	tests := []struct {
		name string
		code string
		id   uint
	}{
		{"unknown id", "510300", d.ID + 100},
		{"other fund", "512880", d.ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := repo.UpdateActual(ctx, tt.code, tt.id, entity.ActionSell, 1, "")
			assert.ErrorIs(t, err, usecase.ErrRecordNotFound)
		})
	}
}
