// Package usecase implements the business logic for the tracked fund list.
package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"etf_advisor/internal/feature/fund/domain/entity"
)

// LookupTimeout bounds a single metadata lookup.
const LookupTimeout = 3 * time.Second

const searchLimit = 10

var (
	ErrInvalidCode  = errors.New("fund code must be 6 digits")
	ErrFundExists   = errors.New("fund is already tracked")
	ErrFundNotFound = errors.New("fund not found")
)

// FundRepository abstracts persistence of tracked funds.
// Following Go convention: interfaces are defined by the consumer (usecase), not the provider (adapters).
type FundRepository interface {
	ListActive(ctx context.Context) ([]entity.Fund, error)
	ListActiveCodes(ctx context.Context) ([]string, error)
	FindByCode(ctx context.Context, code string) (*entity.Fund, error)
	Save(ctx context.Context, f *entity.Fund) error
	Deactivate(ctx context.Context, code string) error
}

// FundDirectory looks up fund metadata from a market data provider.
type FundDirectory interface {
	LookupFund(ctx context.Context, code string) (entity.Fund, error)
	SearchFunds(ctx context.Context, keyword string) ([]entity.Fund, error)
}

// FundUsecase provides business logic for fund operations.
type FundUsecase struct {
	repo FundRepository
	dir  FundDirectory
}

// NewFundUsecase creates a FundUsecase. dir may be nil, in which case only
// the preset tables are consulted.
func NewFundUsecase(r FundRepository, dir FundDirectory) *FundUsecase {
	return &FundUsecase{repo: r, dir: dir}
}

// ListFunds returns the tracked funds, or the default pair when none are
// tracked.
func (u *FundUsecase) ListFunds(ctx context.Context) ([]entity.Fund, error) {
	funds, err := u.repo.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	if len(funds) == 0 {
		return entity.DefaultFunds(), nil
	}
	return funds, nil
}

// ListActiveCodes returns the codes a sync run should cover.
func (u *FundUsecase) ListActiveCodes(ctx context.Context) ([]string, error) {
	codes, err := u.repo.ListActiveCodes(ctx)
	if err != nil {
		return nil, err
	}
	if len(codes) == 0 {
		return append([]string(nil), entity.DefaultCodes...), nil
	}
	return codes, nil
}

// AddFund starts tracking code. A previously removed fund is reactivated.
func (u *FundUsecase) AddFund(ctx context.Context, code string) (entity.Fund, error) {
	if !entity.ValidCode(code) {
		return entity.Fund{}, ErrInvalidCode
	}

	existing, err := u.repo.FindByCode(ctx, code)
	if err != nil && !errors.Is(err, ErrFundNotFound) {
		return entity.Fund{}, err
	}
	if existing != nil && existing.IsActive {
		return entity.Fund{}, ErrFundExists
	}

	f := u.FundInfo(ctx, code)
	f.IsActive = true
	if existing != nil {
		f.ID = existing.ID
		f.CreatedAt = existing.CreatedAt
	}
	if err := u.repo.Save(ctx, &f); err != nil {
		return entity.Fund{}, err
	}
	log.Info().Str("code", code).Str("name", f.Name).Msg("fund added")
	return f, nil
}

// RemoveFund stops tracking code. Decision history is kept.
func (u *FundUsecase) RemoveFund(ctx context.Context, code string) error {
	return u.repo.Deactivate(ctx, code)
}

// FundInfo returns metadata for code. It prefers the stored row, then the
// directory, then the preset table, and never fails.
func (u *FundUsecase) FundInfo(ctx context.Context, code string) entity.Fund {
	if f, err := u.repo.FindByCode(ctx, code); err == nil && f != nil && f.IsActive {
		return *f
	}
	if u.dir != nil {
		lctx, cancel := context.WithTimeout(ctx, LookupTimeout)
		defer cancel()
		f, err := u.dir.LookupFund(lctx, code)
		if err == nil && f.Name != "" {
			f.Code = code
			if f.Exchange == "" {
				f.Exchange = entity.ExchangeOf(code)
			}
			if f.Category == "" {
				f.Category = "ETF"
			}
			return f
		}
		log.Debug().Err(err).Str("code", code).Msg("fund lookup failed, using preset name")
	}
	return entity.PresetFund(code)
}

// SearchFunds matches keyword against codes and names. It falls back to the
// common fund catalogue when the directory is unavailable.
func (u *FundUsecase) SearchFunds(ctx context.Context, keyword string) []entity.Fund {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return []entity.Fund{}
	}
	if u.dir != nil {
		lctx, cancel := context.WithTimeout(ctx, LookupTimeout)
		defer cancel()
		funds, err := u.dir.SearchFunds(lctx, keyword)
		if err == nil && len(funds) > 0 {
			if len(funds) > searchLimit {
				funds = funds[:searchLimit]
			}
			return funds
		}
		log.Debug().Err(err).Str("keyword", keyword).Msg("fund search failed, using common list")
	}

	kw := strings.ToLower(keyword)
	out := []entity.Fund{}
	for _, f := range entity.CommonFunds() {
		if strings.Contains(strings.ToLower(f.Code), kw) || strings.Contains(strings.ToLower(f.Name), kw) {
			out = append(out, f)
		}
	}
	return out
}
