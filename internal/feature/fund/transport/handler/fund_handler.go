// Package handler provides HTTP handlers for the fund feature.
package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"etf_advisor/internal/api"
	"etf_advisor/internal/feature/fund/domain/entity"
	"etf_advisor/internal/feature/fund/transport/http/dto"
	"etf_advisor/internal/feature/fund/usecase"
)

// FundUsecase is the subset of fund operations the handler needs.
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type FundUsecase interface {
	ListFunds(ctx context.Context) ([]entity.Fund, error)
	AddFund(ctx context.Context, code string) (entity.Fund, error)
	RemoveFund(ctx context.Context, code string) error
	FundInfo(ctx context.Context, code string) entity.Fund
	SearchFunds(ctx context.Context, keyword string) []entity.Fund
}

// FundHandler serves the tracked fund list.
type FundHandler struct {
	uc FundUsecase
}

func NewFundHandler(uc FundUsecase) *FundHandler {
	return &FundHandler{uc: uc}
}

// List handles GET /api/etf/list.
func (h *FundHandler) List(c *gin.Context) {
	funds, err := h.uc.ListFunds(c.Request.Context())
	if err != nil {
		api.Fail(c, http.StatusInternalServerError, err)
		return
	}
	api.OK(c, dto.FromEntities(funds))
}

// Add handles POST /api/etf/add.
func (h *FundHandler) Add(c *gin.Context) {
	var req dto.AddFundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		api.Fail(c, http.StatusBadRequest, usecase.ErrInvalidCode)
		return
	}

	f, err := h.uc.AddFund(c.Request.Context(), req.Code)
	switch {
	case errors.Is(err, usecase.ErrInvalidCode):
		api.Fail(c, http.StatusBadRequest, err)
	case errors.Is(err, usecase.ErrFundExists):
		api.Fail(c, http.StatusConflict, err)
	case err != nil:
		api.Fail(c, http.StatusInternalServerError, err)
	default:
		api.OKWithMessage(c, dto.FromEntity(f), "fund added")
	}
}

// Remove handles DELETE /api/etf/:code.
func (h *FundHandler) Remove(c *gin.Context) {
	err := h.uc.RemoveFund(c.Request.Context(), c.Param("code"))
	switch {
	case errors.Is(err, usecase.ErrFundNotFound):
		api.Fail(c, http.StatusNotFound, err)
	case err != nil:
		api.Fail(c, http.StatusInternalServerError, err)
	default:
		api.OKWithMessage(c, nil, "fund removed")
	}
}

// Info handles GET /api/etf/:code/info.
func (h *FundHandler) Info(c *gin.Context) {
	api.OK(c, dto.FromEntity(h.uc.FundInfo(c.Request.Context(), c.Param("code"))))
}

// Search handles GET /api/etf/search?keyword=.
func (h *FundHandler) Search(c *gin.Context) {
	api.OK(c, dto.FromEntities(h.uc.SearchFunds(c.Request.Context(), c.Query("keyword"))))
}
