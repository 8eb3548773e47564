// Package handler provides HTTP handlers for the market data feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"etf_advisor/internal/api"
	"etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/feature/marketdata/transport/http/dto"
	"etf_advisor/internal/feature/marketdata/usecase"
)

// MarketDataUsecase is the read side of market data.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type MarketDataUsecase interface {
	PriceHistory(ctx context.Context, code string, period entity.Period) entity.PriceSeries
	Quote(ctx context.Context, code string) entity.Quote
	Intraday(ctx context.Context, code string) entity.Intraday
	Indicators(ctx context.Context, code string, period entity.Period) (entity.Indicators, string)
	StoredHistory(ctx context.Context, code string, days int) (entity.PriceSeries, error)
}

// SyncUsecase refreshes the stored price history.
type SyncUsecase interface {
	SyncAll(ctx context.Context) (usecase.SyncReport, error)
}

type MarketDataHandler struct {
	uc   MarketDataUsecase
	sync SyncUsecase
}

func NewMarketDataHandler(uc MarketDataUsecase, sync SyncUsecase) *MarketDataHandler {
	return &MarketDataHandler{uc: uc, sync: sync}
}

// Price handles GET /api/data/:code/price?period=6m.
func (h *MarketDataHandler) Price(c *gin.Context) {
	period := entity.ParsePeriod(c.Query("period"))
	s := h.uc.PriceHistory(c.Request.Context(), c.Param("code"), period)
	api.OKWithWarning(c, dto.FromSeries(s), dto.Warning(s.Error))
}

// Realtime handles GET /api/data/:code/realtime and GET /api/etf/:code/realtime.
func (h *MarketDataHandler) Realtime(c *gin.Context) {
	q := h.uc.Quote(c.Request.Context(), c.Param("code"))
	api.OKWithWarning(c, dto.FromQuote(q), dto.Warning(q.Error))
}

// Intraday handles GET /api/data/:code/intraday.
func (h *MarketDataHandler) Intraday(c *gin.Context) {
	d := h.uc.Intraday(c.Request.Context(), c.Param("code"))
	api.OKWithWarning(c, dto.FromIntraday(d), dto.Warning(d.Error))
}

// Indicators handles GET /api/data/:code/indicators?period=6m.
func (h *MarketDataHandler) Indicators(c *gin.Context) {
	period := entity.ParsePeriod(c.Query("period"))
	in, reason := h.uc.Indicators(c.Request.Context(), c.Param("code"), period)
	api.OKWithWarning(c, dto.FromIndicators(in), dto.Warning(reason))
}

// Stored handles GET /api/data/:code/stored?days=180.
func (h *MarketDataHandler) Stored(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	s, err := h.uc.StoredHistory(c.Request.Context(), c.Param("code"), days)
	switch {
	case errors.Is(err, usecase.ErrStorageDisabled):
		api.Fail(c, http.StatusServiceUnavailable, err)
	case err != nil:
		api.Fail(c, http.StatusInternalServerError, err)
	default:
		api.OK(c, dto.FromSeries(s))
	}
}

// Sync handles POST /api/data/sync.
func (h *MarketDataHandler) Sync(c *gin.Context) {
	report, err := h.sync.SyncAll(c.Request.Context())
	switch {
	case errors.Is(err, usecase.ErrStorageDisabled):
		api.Fail(c, http.StatusServiceUnavailable, err)
	case err != nil:
		api.Fail(c, http.StatusInternalServerError, err)
	default:
		api.OK(c, report)
	}
}
