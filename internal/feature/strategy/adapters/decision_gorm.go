// Package adapters persists strategy decisions with gorm.
package adapters

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"etf_advisor/internal/feature/strategy/domain/entity"
	"etf_advisor/internal/feature/strategy/usecase"
)

type decisionGorm struct {
	db *gorm.DB
}

var _ usecase.DecisionRepository = (*decisionGorm)(nil)

func NewDecisionRepository(db *gorm.DB) *decisionGorm {
	return &decisionGorm{db: db}
}

// signalRecord is the stored JSON shape of a signal.
type signalRecord struct {
	Name       string  `json:"name"`
	Action     string  `json:"signal"`
	Confidence float64 `json:"confidence"`
	Details    string  `json:"details"`
}

// DecisionModel is one fund's strategy record for one day.
type DecisionModel struct {
	ID              uint           `gorm:"primaryKey"`
	FundCode        string         `gorm:"size:16;not null;uniqueIndex:decision_code_date,priority:1"`
	Date            time.Time      `gorm:"not null;uniqueIndex:decision_code_date,priority:2"`
	Signals         []signalRecord `gorm:"type:text;serializer:json"`
	FinalAction     string         `gorm:"size:8;not null"`
	SuggestedAmount float64
	Advice          string `gorm:"type:text"`

	ActualAction string `gorm:"size:8"`
	ActualAmount float64
	Remark       string `gorm:"type:text"`

	CreatedAt time.Time
}

func (DecisionModel) TableName() string {
	return "daily_strategies"
}

func toModel(d *entity.Decision) DecisionModel {
	signals := make([]signalRecord, 0, len(d.Signals))
	for _, s := range d.Signals {
		signals = append(signals, signalRecord{Name: s.Name, Action: string(s.Action), Confidence: s.Confidence, Details: s.Details})
	}
	return DecisionModel{
		FundCode:        d.FundCode,
		Date:            d.Date.UTC(),
		Signals:         signals,
		FinalAction:     string(d.FinalAction),
		SuggestedAmount: d.SuggestedAmount,
		Advice:          d.Advice,
		ActualAction:    string(d.ActualAction),
		ActualAmount:    d.ActualAmount,
		Remark:          d.Remark,
	}
}

func toEntity(m DecisionModel) entity.Decision {
	signals := make([]entity.Signal, 0, len(m.Signals))
	for _, s := range m.Signals {
		signals = append(signals, entity.Signal{Name: s.Name, Action: entity.Action(s.Action), Confidence: s.Confidence, Details: s.Details})
	}
	return entity.Decision{
		ID:              m.ID,
		FundCode:        m.FundCode,
		Date:            m.Date,
		Signals:         signals,
		FinalAction:     entity.Action(m.FinalAction),
		SuggestedAmount: m.SuggestedAmount,
		Advice:          m.Advice,
		ActualAction:    entity.Action(m.ActualAction),
		ActualAmount:    m.ActualAmount,
		Remark:          m.Remark,
		CreatedAt:       m.CreatedAt,
	}
}

// SaveDaily keeps any recorded actual action when refreshing an existing day.
func (r *decisionGorm) SaveDaily(ctx context.Context, d *entity.Decision) error {
	m := toModel(d)
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing DecisionModel
		err := tx.Where("fund_code = ? AND date = ?", m.FundCode, m.Date).First(&existing).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
			d.ID, d.CreatedAt = m.ID, m.CreatedAt
			return nil
		case err != nil:
			return err
		}

		err = tx.Model(&existing).
			Select("Signals", "FinalAction", "SuggestedAmount", "Advice").
			Updates(&m).Error
		if err != nil {
			return err
		}
		d.ID, d.CreatedAt = existing.ID, existing.CreatedAt
		return nil
	})
}

func (r *decisionGorm) FindByDate(ctx context.Context, code string, date time.Time) (*entity.Decision, error) {
	var m DecisionModel
	err := r.db.WithContext(ctx).Where("fund_code = ? AND date = ?", code, date.UTC()).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	d := toEntity(m)
	return &d, nil
}

func (r *decisionGorm) ListRecent(ctx context.Context, code string, limit int) ([]entity.Decision, error) {
	var rows []DecisionModel
	err := r.db.WithContext(ctx).
		Where("fund_code = ?", code).
		Order("date DESC").Order("id DESC").
		Limit(limit).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make([]entity.Decision, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

func (r *decisionGorm) UpdateActual(ctx context.Context, code string, id uint, action entity.Action, amount float64, remark string) error {
	res := r.db.WithContext(ctx).
		Model(&DecisionModel{}).
		Where("id = ? AND fund_code = ?", id, code).
		Updates(map[string]any{
			"actual_action": string(action),
			"actual_amount": amount,
			"remark":        remark,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return usecase.ErrRecordNotFound
	}
	return nil
}
