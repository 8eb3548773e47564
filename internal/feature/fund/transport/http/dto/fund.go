// Package dto defines data transfer objects for the fund HTTP API.
package dto

import "etf_advisor/internal/feature/fund/domain/entity"

// FundItem is the public view of a fund.
type FundItem struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Exchange string `json:"exchange"`
	Category string `json:"category"`
}

// AddFundRequest is the body of POST /api/etf/add.
type AddFundRequest struct {
	Code string `json:"code" binding:"required"`
}

func FromEntity(f entity.Fund) FundItem {
	return FundItem{Code: f.Code, Name: f.Name, Exchange: f.Exchange, Category: f.Category}
}

func FromEntities(fs []entity.Fund) []FundItem {
	out := make([]FundItem, 0, len(fs))
	for _, f := range fs {
		out = append(out, FromEntity(f))
	}
	return out
}
