package engine

import (
	"fmt"
	"time"

	"etf_advisor/internal/feature/strategy/domain/entity"
	"etf_advisor/internal/feature/strategy/domain/indicator"
)

// NameRSI is the signal name of the RSI strategy.
const NameRSI = "RSI"

// RSIStrategy trades overbought/oversold levels and RSI turns.
type RSIStrategy struct {
	Period     int
	Overbought float64
	Oversold   float64
}

// NewRSIStrategy creates an RSI strategy.
func NewRSIStrategy(period int, overbought, oversold float64) RSIStrategy {
	return RSIStrategy{Period: period, Overbought: overbought, Oversold: oversold}
}

// Analyze evaluates the RSI rules in priority order; the first match wins.
func (s RSIStrategy) Analyze(prices []float64, _ []time.Time) entity.Signal {
	if len(prices) < s.Period+minExtraHistory {
		return insufficient(NameRSI)
	}

	rsi := indicator.RSI(prices, s.Period)
	n := len(rsi)
	cur := rsi[n-1]
	change := cur - rsi[n-5]

	signal := entity.Signal{Name: NameRSI}
	switch {
	case cur >= s.Overbought:
		signal.Action, signal.Confidence, signal.Details = entity.ActionSell, 0.85, fmt.Sprintf("RSI=%.1f, overbought", cur)
	case cur <= s.Oversold:
		signal.Action, signal.Confidence, signal.Details = entity.ActionBuy, 0.80, fmt.Sprintf("RSI=%.1f, oversold", cur)
	case cur > 60 && change < -5:
		signal.Action, signal.Confidence, signal.Details = entity.ActionSell, 0.65, "RSI turning down, pullback likely"
	case cur < 40 && change > 5:
		signal.Action, signal.Confidence, signal.Details = entity.ActionBuy, 0.65, "RSI turning up, rebound likely"
	case cur > 50:
		signal.Action, signal.Confidence, signal.Details = entity.ActionHold, 0.55, fmt.Sprintf("RSI=%.1f, strong zone", cur)
	default:
		signal.Action, signal.Confidence, signal.Details = entity.ActionHold, 0.55, fmt.Sprintf("RSI=%.1f, weak zone", cur)
	}
	return signal
}
