// Package handler provides HTTP handlers for the strategy feature.
package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"etf_advisor/internal/api"
	"etf_advisor/internal/feature/strategy/domain/entity"
	"etf_advisor/internal/feature/strategy/transport/http/dto"
	"etf_advisor/internal/feature/strategy/usecase"
)

var errInvalidID = errors.New("invalid record id")

// StrategyUsecase is what the handler needs from the strategy usecase.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type StrategyUsecase interface {
	Analyze(ctx context.Context, code string) usecase.Analysis
	History(ctx context.Context, code string, days int) ([]entity.Decision, error)
	Performance(ctx context.Context, code string, days int) (entity.Performance, error)
	RecordAction(ctx context.Context, code, action string, amount float64, remark string) (entity.Decision, error)
	UpdateRecord(ctx context.Context, code string, id uint, action string, amount float64, remark string) error
}

type StrategyHandler struct {
	uc StrategyUsecase
}

func NewStrategyHandler(uc StrategyUsecase) *StrategyHandler {
	return &StrategyHandler{uc: uc}
}

// Analyze handles GET /api/strategy/:code.
func (h *StrategyHandler) Analyze(c *gin.Context) {
	a := h.uc.Analyze(c.Request.Context(), c.Param("code"))
	api.OKWithWarning(c, dto.FromAnalysis(a), dto.Warning(a.Warning))
}

// History handles GET /api/strategy/:code/history?days=30.
func (h *StrategyHandler) History(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	ds, err := h.uc.History(c.Request.Context(), c.Param("code"), days)
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, err)
		return
	}
	api.OK(c, dto.FromDecisions(ds))
}

// Performance handles GET /api/strategy/:code/performance?days=30.
func (h *StrategyHandler) Performance(c *gin.Context) {
	days, _ := strconv.Atoi(c.Query("days"))
	p, err := h.uc.Performance(c.Request.Context(), c.Param("code"), days)
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, err)
		return
	}
	api.OK(c, dto.FromPerformance(p))
}

// Record handles POST /api/strategy/:code/record.
func (h *StrategyHandler) Record(c *gin.Context) {
	var req dto.RecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, usecase.ErrInvalidAction)
		return
	}

	d, err := h.uc.RecordAction(c.Request.Context(), c.Param("code"), req.Action, req.Amount, req.Remark)
	if err != nil {
		failWith(c, err)
		return
	}
	api.OKWithMessage(c, dto.FromDecision(d), "action recorded")
}

// Update handles PUT /api/strategy/:code/history/:id.
func (h *StrategyHandler) Update(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		api.Fail(c, http.StatusBadRequest, errInvalidID)
		return
	}
	var req dto.UpdateRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, usecase.ErrInvalidAction)
		return
	}

	err = h.uc.UpdateRecord(c.Request.Context(), c.Param("code"), uint(id), req.ActualAction, req.ActualAmount, req.Remark)
	if err != nil {
		failWith(c, err)
		return
	}
	api.OKWithMessage(c, nil, "record updated")
}

func failWith(c *gin.Context, err error) {
	switch {
	case errors.Is(err, usecase.ErrInvalidAction), errors.Is(err, usecase.ErrInvalidAmount):
		api.Fail(c, http.StatusBadRequest, err)
	case errors.Is(err, usecase.ErrRecordNotFound):
		api.Fail(c, http.StatusNotFound, err)
	default:
		api.Fail(c, http.StatusInternalServerError, err)
	}
}
