// Package adapters holds the persistence adapters of the advisory feature.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"etf_advisor/internal/feature/advisory/domain/entity"
	"etf_advisor/internal/feature/advisory/usecase"
)

type cacheEntryGorm struct {
	db *gorm.DB
}

var _ usecase.CacheStore = (*cacheEntryGorm)(nil)

func NewCacheRepository(db *gorm.DB) *cacheEntryGorm {
	return &cacheEntryGorm{db: db}
}

// CacheEntryModel is a cached provider response.
type CacheEntryModel struct {
	ID        uint      `gorm:"primaryKey"`
	SignalKey string    `gorm:"size:200;not null;uniqueIndex"`
	Prompt    string    `gorm:"type:text"`
	Response  string    `gorm:"type:text"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

func (CacheEntryModel) TableName() string {
	return "llm_cache"
}

func (r *cacheEntryGorm) Get(ctx context.Context, key string) (*entity.CacheEntry, error) {
	var m CacheEntryModel
	err := r.db.WithContext(ctx).Where("signal_key = ?", key).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entity.CacheEntry{
		Key:       m.SignalKey,
		Prompt:    m.Prompt,
		Response:  m.Response,
		ExpiresAt: m.ExpiresAt,
	}, nil
}

// Put upserts on the key so an expired entry is refreshed in place.
func (r *cacheEntryGorm) Put(ctx context.Context, e entity.CacheEntry) error {
	m := CacheEntryModel{
		SignalKey: e.Key,
		Prompt:    e.Prompt,
		Response:  e.Response,
		ExpiresAt: e.ExpiresAt.UTC(),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "signal_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"prompt", "response", "expires_at"}),
	}).Create(&m).Error
}
