package adapters

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/feature/marketdata/usecase"
)

type priceHistoryGorm struct {
	db *gorm.DB
}

var _ usecase.PriceRepository = (*priceHistoryGorm)(nil)

func NewPriceHistoryRepository(db *gorm.DB) *priceHistoryGorm {
	return &priceHistoryGorm{db: db}
}

// PriceModel is one daily bar of a fund.
type PriceModel struct {
	ID       uint      `gorm:"primaryKey"`
	FundCode string    `gorm:"size:16;not null;uniqueIndex:price_code_date,priority:1"`
	Date     time.Time `gorm:"not null;uniqueIndex:price_code_date,priority:2"`

	Close  float64 `gorm:"not null"`
	Volume float64 `gorm:"not null;default:0"`

	CreatedAt time.Time
}

func (PriceModel) TableName() string {
	return "price_history"
}

func (r *priceHistoryGorm) UpsertSeries(ctx context.Context, s entity.PriceSeries) error {
	if s.Empty() {
		return nil
	}
	ms := make([]PriceModel, 0, s.Len())
	for i := range s.Prices {
		ms = append(ms, PriceModel{
			FundCode: s.Code,
			Date:     s.Dates[i].UTC(),
			Close:    s.Prices[i],
			Volume:   s.Volumes[i],
		})
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fund_code"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"close", "volume"}),
	}).CreateInBatches(&ms, 500).Error
}

// FindSince returns bars on or after since in ascending date order.
func (r *priceHistoryGorm) FindSince(ctx context.Context, code string, since time.Time) (entity.PriceSeries, error) {
	var rows []PriceModel
	err := r.db.WithContext(ctx).
		Where("fund_code = ? AND date >= ?", code, since.UTC()).
		Order("date ASC").
		Find(&rows).Error
	if err != nil {
		return entity.PriceSeries{}, err
	}

	out := entity.PriceSeries{
		Code:    code,
		Dates:   make([]time.Time, 0, len(rows)),
		Prices:  make([]float64, 0, len(rows)),
		Volumes: make([]float64, 0, len(rows)),
	}
	for _, m := range rows {
		out.Dates = append(out.Dates, m.Date)
		out.Prices = append(out.Prices, m.Close)
		out.Volumes = append(out.Volumes, m.Volume)
	}
	return out, nil
}
