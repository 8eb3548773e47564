package usecase

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"etf_advisor/internal/feature/marketdata/domain/entity"
)

// ErrStorageDisabled is returned when an operation needs the price store and
// none is configured.
var ErrStorageDisabled = errors.New("marketdata: price storage is not configured")

// FundLister yields the codes of the tracked funds.
type FundLister interface {
	ListActiveCodes(ctx context.Context) ([]string, error)
}

// Waiter paces outbound requests.
type Waiter interface {
	Wait(ctx context.Context) error
}

// SyncReport summarizes one sync run.
type SyncReport struct {
	Synced  []string `json:"synced"`
	Skipped []string `json:"skipped"`
	Failed  []string `json:"failed"`
}

// SyncUsecase copies remote history for every tracked fund into the price
// store.
type SyncUsecase struct {
	funds   FundLister
	acq     *Acquirer
	prices  PriceRepository
	limiter Waiter
}

func NewSyncUsecase(funds FundLister, acq *Acquirer, prices PriceRepository, limiter Waiter) *SyncUsecase {
	return &SyncUsecase{funds: funds, acq: acq, prices: prices, limiter: limiter}
}

// SyncAll syncs the default period for every tracked fund. Synthetic series
// are never persisted. One fund failing does not stop the run.
func (u *SyncUsecase) SyncAll(ctx context.Context) (SyncReport, error) {
	if u.prices == nil {
		return SyncReport{}, ErrStorageDisabled
	}
	codes, err := u.funds.ListActiveCodes(ctx)
	if err != nil {
		return SyncReport{}, err
	}

	report := SyncReport{Synced: []string{}, Skipped: []string{}, Failed: []string{}}
	for _, code := range codes {
		if err := u.limiter.Wait(ctx); err != nil {
			return report, err
		}
		s := u.acq.History(ctx, code, entity.DefaultPeriod)
		if s.Synthetic || s.Empty() {
			log.Info().Str("code", code).Msg("no remote data, skipping sync")
			report.Skipped = append(report.Skipped, code)
			continue
		}
		if err := u.prices.UpsertSeries(ctx, s); err != nil {
			log.Error().Err(err).Str("code", code).Msg("failed to store price history")
			report.Failed = append(report.Failed, code)
			continue
		}
		report.Synced = append(report.Synced, code)
	}
	return report, nil
}
