// Package dto defines data transfer objects for the market data HTTP API.
package dto

import (
	"time"

	"etf_advisor/internal/feature/marketdata/domain/entity"
)

const dateLayout = "2006-01-02"

// PriceSeriesResponse is the body of the price history endpoint.
type PriceSeriesResponse struct {
	Code      string    `json:"code"`
	Period    string    `json:"period"`
	Dates     []string  `json:"dates"`
	Prices    []float64 `json:"prices"`
	Volumes   []float64 `json:"volumes"`
	Synthetic bool      `json:"synthetic"`
}

// QuoteResponse is the body of the realtime endpoints.
type QuoteResponse struct {
	Code      string  `json:"code"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price"`
	Change    float64 `json:"change"`
	Time      string  `json:"time"`
	Synthetic bool    `json:"synthetic"`
}

// IntradayResponse is the body of the intraday endpoint.
type IntradayResponse struct {
	Code      string    `json:"code"`
	Times     []string  `json:"times"`
	Prices    []float64 `json:"prices"`
	Volumes   []float64 `json:"volumes"`
	Synthetic bool      `json:"synthetic"`
}

// IndicatorsResponse is the body of the indicators endpoint.
type IndicatorsResponse struct {
	Code       string    `json:"code"`
	Period     string    `json:"period"`
	Dates      []string  `json:"dates"`
	Prices     []float64 `json:"prices"`
	MA5        []float64 `json:"ma5"`
	MA20       []float64 `json:"ma20"`
	RSI        []float64 `json:"rsi"`
	BollUpper  []float64 `json:"boll_upper"`
	BollMiddle []float64 `json:"boll_middle"`
	BollLower  []float64 `json:"boll_lower"`
}

// Warning turns a degradation reason into a client-facing warning.
func Warning(reason string) string {
	switch reason {
	case "":
		return ""
	case entity.ReasonTimeout:
		return "data load timed out, showing no data"
	default:
		return "data unavailable: " + reason
	}
}

func dates(ts []time.Time) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Format(dateLayout))
	}
	return out
}

func nonNil(v []float64) []float64 {
	if v == nil {
		return []float64{}
	}
	return v
}

func FromSeries(s entity.PriceSeries) PriceSeriesResponse {
	return PriceSeriesResponse{
		Code:      s.Code,
		Period:    string(s.Period),
		Dates:     dates(s.Dates),
		Prices:    nonNil(s.Prices),
		Volumes:   nonNil(s.Volumes),
		Synthetic: s.Synthetic,
	}
}

func FromQuote(q entity.Quote) QuoteResponse {
	return QuoteResponse{
		Code:      q.Code,
		Name:      q.Name,
		Price:     q.Price,
		Change:    q.Change,
		Time:      q.Time.Format("2006-01-02 15:04:05"),
		Synthetic: q.Synthetic,
	}
}

func FromIntraday(d entity.Intraday) IntradayResponse {
	times := d.Times
	if times == nil {
		times = []string{}
	}
	return IntradayResponse{
		Code:      d.Code,
		Times:     times,
		Prices:    nonNil(d.Prices),
		Volumes:   nonNil(d.Volumes),
		Synthetic: d.Synthetic,
	}
}

func FromIndicators(in entity.Indicators) IndicatorsResponse {
	return IndicatorsResponse{
		Code:       in.Code,
		Period:     string(in.Period),
		Dates:      dates(in.Dates),
		Prices:     nonNil(in.Prices),
		MA5:        nonNil(in.MA5),
		MA20:       nonNil(in.MA20),
		RSI:        nonNil(in.RSI),
		BollUpper:  nonNil(in.BollUpper),
		BollMiddle: nonNil(in.BollMiddle),
		BollLower:  nonNil(in.BollLower),
	}
}
