// Package entity holds market data value types.
package entity

import "time"

// Degradation reasons carried in the Error field of market data values.
const (
	ReasonTimeout = "timeout"
)

// PriceSeries is a chronologically ascending daily close series.
// Dates, Prices and Volumes always have equal length.
type PriceSeries struct {
	Code      string      `json:"code"`
	Period    Period      `json:"period"`
	Dates     []time.Time `json:"dates"`
	Prices    []float64   `json:"prices"`
	Volumes   []float64   `json:"volumes"`
	Synthetic bool        `json:"synthetic"`
	Error     string      `json:"error,omitempty"`
}

// Len returns the number of bars.
func (s PriceSeries) Len() int { return len(s.Prices) }

// Empty reports whether the series has no bars.
func (s PriceSeries) Empty() bool { return len(s.Prices) == 0 }

// Consistent reports whether the three arrays line up.
func (s PriceSeries) Consistent() bool {
	return len(s.Dates) == len(s.Prices) && len(s.Prices) == len(s.Volumes)
}

// DegradedSeries is an empty series tagged with reason.
func DegradedSeries(code string, period Period, reason string) PriceSeries {
	return PriceSeries{
		Code:    code,
		Period:  period,
		Dates:   []time.Time{},
		Prices:  []float64{},
		Volumes: []float64{},
		Error:   reason,
	}
}

// Quote is the latest traded price of a fund.
type Quote struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Change    float64   `json:"change"`
	Time      time.Time `json:"time"`
	Synthetic bool      `json:"synthetic"`
	Error     string    `json:"error,omitempty"`
}

// Intraday is today's 5-minute bar series. Times are "15:04" labels.
type Intraday struct {
	Code      string    `json:"code"`
	Times     []string  `json:"times"`
	Prices    []float64 `json:"prices"`
	Volumes   []float64 `json:"volumes"`
	Synthetic bool      `json:"synthetic"`
	Error     string    `json:"error,omitempty"`
}

// Indicators are the chart overlays computed over a PriceSeries.
type Indicators struct {
	Code       string      `json:"code"`
	Period     Period      `json:"period"`
	Dates      []time.Time `json:"dates"`
	Prices     []float64   `json:"prices"`
	MA5        []float64   `json:"ma5"`
	MA20       []float64   `json:"ma20"`
	RSI        []float64   `json:"rsi"`
	BollUpper  []float64   `json:"boll_upper"`
	BollMiddle []float64   `json:"boll_middle"`
	BollLower  []float64   `json:"boll_lower"`
}
