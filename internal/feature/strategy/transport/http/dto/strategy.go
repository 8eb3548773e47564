// Package dto defines data transfer objects for the strategy HTTP API.
package dto

import (
	"fmt"

	marketentity "etf_advisor/internal/feature/marketdata/domain/entity"
	"etf_advisor/internal/feature/strategy/domain/entity"
	"etf_advisor/internal/feature/strategy/usecase"
)

const dateLayout = "2006-01-02"

type SignalItem struct {
	Name       string  `json:"name"`
	Signal     string  `json:"signal"`
	Confidence float64 `json:"confidence"`
	Details    string  `json:"details"`
}

// AnalysisResponse is the body of GET /api/strategy/:code.
type AnalysisResponse struct {
	ETFCode     string         `json:"etf_code"`
	Date        string         `json:"date"`
	Signals     []SignalItem   `json:"signals"`
	FinalAction string         `json:"final_action"`
	Amount      float64        `json:"amount"`
	Confidence  float64        `json:"confidence"`
	Votes       map[string]int `json:"votes"`
	LLMAdvice   string         `json:"llm_advice"`
	Synthetic   bool           `json:"synthetic"`
}

// HistoryItem is one row of the decision journal. Action and Actual are
// display strings; the numeric fields carry the same data.
type HistoryItem struct {
	ID              uint    `json:"id"`
	Date            string  `json:"date"`
	Strategy        string  `json:"strategy"`
	Action          string  `json:"action"`
	Actual          string  `json:"actual"`
	Remark          string  `json:"remark"`
	SuggestedAmount float64 `json:"suggested_amount"`
	ActualAction    string  `json:"actual_action"`
	ActualAmount    float64 `json:"actual_amount"`
}

type PerformanceResponse struct {
	Total       int     `json:"total"`
	Followed    int     `json:"followed"`
	NotFollowed int     `json:"not_followed"`
	Accuracy    float64 `json:"accuracy"`
}

// RecordRequest is the body of POST /api/strategy/:code/record.
type RecordRequest struct {
	Action string  `json:"action" binding:"required"`
	Amount float64 `json:"amount"`
	Remark string  `json:"remark"`
}

// UpdateRecordRequest is the body of PUT /api/strategy/:code/history/:id.
type UpdateRecordRequest struct {
	ActualAction string  `json:"actual_action" binding:"required"`
	ActualAmount float64 `json:"actual_amount"`
	Remark       string  `json:"remark"`
}

func FromSignals(ss []entity.Signal) []SignalItem {
	out := make([]SignalItem, 0, len(ss))
	for _, s := range ss {
		out = append(out, SignalItem{Name: s.Name, Signal: string(s.Action), Confidence: s.Confidence, Details: s.Details})
	}
	return out
}

func FromAnalysis(a usecase.Analysis) AnalysisResponse {
	votes := make(map[string]int, len(a.Result.Votes))
	for k, v := range a.Result.Votes {
		votes[string(k)] = v
	}
	return AnalysisResponse{
		ETFCode:     a.Code,
		Date:        a.Date.Format(dateLayout),
		Signals:     FromSignals(a.Result.Signals),
		FinalAction: string(a.Result.FinalAction),
		Amount:      a.SuggestedAmount,
		Confidence:  a.Result.Confidence,
		Votes:       votes,
		LLMAdvice:   a.Advice,
		Synthetic:   a.Synthetic,
	}
}

func FromDecision(d entity.Decision) HistoryItem {
	item := HistoryItem{
		ID:              d.ID,
		Date:            d.Date.Format(dateLayout),
		Strategy:        string(d.FinalAction),
		Action:          withAmount(d.FinalAction, d.SuggestedAmount),
		Actual:          "-",
		Remark:          d.Remark,
		SuggestedAmount: d.SuggestedAmount,
		ActualAction:    string(d.ActualAction),
		ActualAmount:    d.ActualAmount,
	}
	if d.Followed() {
		item.Actual = withAmount(d.ActualAction, d.ActualAmount)
	}
	if item.Remark == "" {
		item.Remark = "-"
	}
	return item
}

func FromDecisions(ds []entity.Decision) []HistoryItem {
	out := make([]HistoryItem, 0, len(ds))
	for _, d := range ds {
		out = append(out, FromDecision(d))
	}
	return out
}

func FromPerformance(p entity.Performance) PerformanceResponse {
	return PerformanceResponse{Total: p.Total, Followed: p.Followed, NotFollowed: p.NotFollowed, Accuracy: p.Accuracy}
}

func withAmount(a entity.Action, amount float64) string {
	if amount == 0 {
		return string(a)
	}
	return fmt.Sprintf("%s ¥%.0f", a, amount)
}

// Warning turns an analysis warning into a user message.
func Warning(reason string) string {
	switch reason {
	case "":
		return ""
	case marketentity.ReasonTimeout:
		return "data load timed out, showing a placeholder decision"
	default:
		return "data unavailable: " + reason
	}
}
