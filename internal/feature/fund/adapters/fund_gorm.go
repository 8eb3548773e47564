// Package adapters provides the repository implementation for the fund
// feature.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"etf_advisor/internal/feature/fund/domain/entity"
	"etf_advisor/internal/feature/fund/usecase"
)

type fundGorm struct {
	db *gorm.DB
}

var _ usecase.FundRepository = (*fundGorm)(nil)

func NewFundRepository(db *gorm.DB) *fundGorm {
	return &fundGorm{db: db}
}

// ListActive returns active funds in the order they were added.
func (r *fundGorm) ListActive(ctx context.Context) ([]entity.Fund, error) {
	var funds []entity.Fund
	if err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Find(&funds).Error; err != nil {
		return nil, err
	}
	return funds, nil
}

func (r *fundGorm) ListActiveCodes(ctx context.Context) ([]string, error) {
	var codes []string
	if err := r.db.WithContext(ctx).
		Model(&entity.Fund{}).
		Where("is_active = ?", true).
		Order("created_at ASC, id ASC").
		Pluck("code", &codes).Error; err != nil {
		return nil, err
	}
	return codes, nil
}

// FindByCode returns the fund regardless of its active flag.
func (r *fundGorm) FindByCode(ctx context.Context, code string) (*entity.Fund, error) {
	var f entity.Fund
	err := r.db.WithContext(ctx).Where("code = ?", code).First(&f).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, usecase.ErrFundNotFound
	}
	if err != nil {
		return nil, err
	}
	return &f, nil
}

// Save inserts f, or updates it when f.ID is set.
func (r *fundGorm) Save(ctx context.Context, f *entity.Fund) error {
	return r.db.WithContext(ctx).Save(f).Error
}

func (r *fundGorm) Deactivate(ctx context.Context, code string) error {
	res := r.db.WithContext(ctx).
		Model(&entity.Fund{}).
		Where("code = ? AND is_active = ?", code, true).
		Update("is_active", false)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrFundNotFound
	}
	return nil
}
