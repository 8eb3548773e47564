// Package usecase runs the fusion engine for a fund and keeps the decision
// journal.
package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	marketentity "etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/feature/strategy/domain/engine"
	"etf_advisor/internal/feature/strategy/domain/entity"
)

const (
	// AnalysisPeriod is the history window fed to the engine.
	AnalysisPeriod = marketentity.DefaultPeriod

	DefaultHistoryDays = 30
	MaxHistoryDays     = 365

	// PendingAdvice is returned while no price data is available.
	PendingAdvice = "Fetching the latest data; refresh shortly for the full analysis."
)

var (
	ErrInvalidAction  = errors.New("invalid action: must be buy, sell or hold")
	ErrInvalidAmount  = errors.New("invalid amount: must not be negative")
	ErrRecordNotFound = errors.New("strategy record not found")
)

// PriceProvider supplies price history. It never fails; degraded series are
// empty and carry an Error reason.
type PriceProvider interface {
	PriceHistory(ctx context.Context, code string, period marketentity.Period) marketentity.PriceSeries
}

// Advisor turns a result into advice text.
type Advisor interface {
	GenerateAdvice(ctx context.Context, r entity.StrategyResult) string
}

// DecisionRepository persists daily decisions.
// Following Go convention, interfaces are defined by the consumer.
type DecisionRepository interface {
	// SaveDaily inserts d, or refreshes the strategy fields of the record
	// already stored for the same fund and day. d.ID is set on return.
	SaveDaily(ctx context.Context, d *entity.Decision) error
	// FindByDate returns nil, nil when no record exists.
	FindByDate(ctx context.Context, code string, date time.Time) (*entity.Decision, error)
	// ListRecent returns at most limit records, newest first.
	ListRecent(ctx context.Context, code string, limit int) ([]entity.Decision, error)
	// UpdateActual returns ErrRecordNotFound when id does not belong to code.
	UpdateActual(ctx context.Context, code string, id uint, action entity.Action, amount float64, remark string) error
}

// Metrics records decision outcomes.
type Metrics interface {
	RecordDecision(action string)
	ObserveDuration(operation string, start time.Time)
}

// Analysis is the outcome of Analyze.
type Analysis struct {
	Code            string
	Date            time.Time
	Result          entity.StrategyResult
	SuggestedAmount float64
	Advice          string
	// Synthetic is set when the prices came from the fallback generator.
	Synthetic bool
	// Warning explains a degraded analysis; empty otherwise.
	Warning string
}

type StrategyUsecase struct {
	prices    PriceProvider
	advisor   Advisor
	decisions DecisionRepository
	metrics   Metrics
	engine    *engine.Engine
	capital   float64
	now       func() time.Time
}

// NewStrategyUsecase wires the usecase. capital is the base amount used for
// position sizing.
func NewStrategyUsecase(prices PriceProvider, advisor Advisor, decisions DecisionRepository, m Metrics, capital float64) *StrategyUsecase {
	return &StrategyUsecase{
		prices:    prices,
		advisor:   advisor,
		decisions: decisions,
		metrics:   m,
		engine:    engine.NewDefaultEngine(),
		capital:   capital,
		now:       time.Now,
	}
}

// Analyze never fails. Without price data it returns a Hold placeholder and
// a warning, and neither asks for advice nor persists anything.
func (u *StrategyUsecase) Analyze(ctx context.Context, code string) Analysis {
	defer u.metrics.ObserveDuration("analyze", time.Now())

	s := u.prices.PriceHistory(ctx, code, AnalysisPeriod)
	now := u.now()

	if s.Empty() {
		warning := s.Error
		if warning == "" {
			warning = "no data"
		}
		return Analysis{
			Code:    code,
			Date:    now,
			Result:  u.engine.Analyze(nil, nil),
			Advice:  PendingAdvice,
			Warning: warning,
		}
	}

	r := u.engine.Analyze(s.Prices, s.Dates)
	amount := engine.CalculatePosition(u.capital, r.Confidence, r.FinalAction)
	advice := u.advisor.GenerateAdvice(ctx, r)
	u.metrics.RecordDecision(string(r.FinalAction))

	d := entity.Decision{
		FundCode:        code,
		Date:            day(now),
		Signals:         r.Signals,
		FinalAction:     r.FinalAction,
		SuggestedAmount: amount,
		Advice:          advice,
	}
	if err := u.decisions.SaveDaily(ctx, &d); err != nil {
		log.Warn().Err(err).Str("code", code).Msg("failed to persist daily decision")
	}

	return Analysis{
		Code:            code,
		Date:            now,
		Result:          r,
		SuggestedAmount: amount,
		Advice:          advice,
		Synthetic:       s.Synthetic,
	}
}

// History returns the latest decisions for code, newest first.
func (u *StrategyUsecase) History(ctx context.Context, code string, days int) ([]entity.Decision, error) {
	ds, err := u.decisions.ListRecent(ctx, code, clampDays(days))
	if err != nil {
		return nil, fmt.Errorf("failed to list decisions: %w", err)
	}
	return ds, nil
}

// Performance summarises how many recent recommendations were acted on.
// Accuracy needs realised prices and is reported as zero.
func (u *StrategyUsecase) Performance(ctx context.Context, code string, days int) (entity.Performance, error) {
	ds, err := u.History(ctx, code, days)
	if err != nil {
		return entity.Performance{}, err
	}
	p := entity.Performance{Total: len(ds)}
	for _, d := range ds {
		if d.Followed() {
			p.Followed++
		}
	}
	p.NotFollowed = p.Total - p.Followed
	return p, nil
}

// RecordAction stores what the user actually did today. It attaches to
// today's decision when one exists, otherwise it creates a record whose
// recommendation mirrors the action.
func (u *StrategyUsecase) RecordAction(ctx context.Context, code, action string, amount float64, remark string) (entity.Decision, error) {
	a, err := validate(action, amount)
	if err != nil {
		return entity.Decision{}, err
	}

	today := day(u.now())
	existing, err := u.decisions.FindByDate(ctx, code, today)
	if err != nil {
		return entity.Decision{}, fmt.Errorf("failed to load today's decision: %w", err)
	}
	if existing != nil {
		if err := u.decisions.UpdateActual(ctx, code, existing.ID, a, amount, remark); err != nil {
			return entity.Decision{}, err
		}
		existing.ActualAction, existing.ActualAmount, existing.Remark = a, amount, remark
		return *existing, nil
	}

	d := entity.Decision{
		FundCode:        code,
		Date:            today,
		Signals:         []entity.Signal{},
		FinalAction:     a,
		SuggestedAmount: amount,
		ActualAction:    a,
		ActualAmount:    amount,
		Remark:          remark,
	}
	if err := u.decisions.SaveDaily(ctx, &d); err != nil {
		return entity.Decision{}, fmt.Errorf("failed to record action: %w", err)
	}
	return d, nil
}

// UpdateRecord overwrites the actual action of record id.
func (u *StrategyUsecase) UpdateRecord(ctx context.Context, code string, id uint, action string, amount float64, remark string) error {
	a, err := validate(action, amount)
	if err != nil {
		return err
	}
	return u.decisions.UpdateActual(ctx, code, id, a, amount, remark)
}

func validate(action string, amount float64) (entity.Action, error) {
	a, ok := entity.ParseAction(action)
	if !ok {
		return "", ErrInvalidAction
	}
	if amount < 0 {
		return "", ErrInvalidAmount
	}
	return a, nil
}

func clampDays(days int) int {
	if days <= 0 {
		return DefaultHistoryDays
	}
	return min(days, MaxHistoryDays)
}

// day truncates t to its calendar date, stored as UTC midnight.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
