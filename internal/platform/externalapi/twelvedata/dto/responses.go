// Package dto defines data transfer objects for the Twelve Data API responses.
package dto

// Status is embedded in every Twelve Data response.
type Status struct {
	Status  string `json:"status"`
	Code    int    `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}

// TimeSeriesResponse represents the JSON response from the time_series
// endpoint. Values are newest first.
type TimeSeriesResponse struct {
	Status
	Meta struct {
		Symbol   string `json:"symbol"`
		Interval string `json:"interval"`
		Exchange string `json:"exchange"`
	} `json:"meta"`
	Values []struct {
		Datetime string `json:"datetime"`
		Open     string `json:"open"`
		High     string `json:"high"`
		Low      string `json:"low"`
		Close    string `json:"close"`
		Volume   string `json:"volume"`
	} `json:"values"`
}

// QuoteResponse represents the JSON response from the quote endpoint.
type QuoteResponse struct {
	Status
	Symbol        string `json:"symbol"`
	Name          string `json:"name"`
	Exchange      string `json:"exchange"`
	Datetime      string `json:"datetime"`
	Timestamp     int64  `json:"timestamp"`
	Close         string `json:"close"`
	PercentChange string `json:"percent_change"`
}

// SymbolSearchResponse represents the JSON response from the symbol_search
// endpoint.
type SymbolSearchResponse struct {
	Status
	Data []struct {
		Symbol         string `json:"symbol"`
		InstrumentName string `json:"instrument_name"`
		Exchange       string `json:"exchange"`
		InstrumentType string `json:"instrument_type"`
		Country        string `json:"country"`
	} `json:"data"`
}
