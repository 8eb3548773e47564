package engine

import (
	"time"

	"etf_advisor/internal/feature/strategy/domain/entity"
	"etf_advisor/internal/feature/strategy/domain/indicator"
)

// NameBollinger is the signal name of the Bollinger band strategy.
const NameBollinger = "Bollinger"

// BollingerStrategy trades the price position inside the bands and band expansion.
type BollingerStrategy struct {
	Window     int
	Multiplier float64
}

// NewBollingerStrategy creates a band-position strategy.
func NewBollingerStrategy(window int, multiplier float64) BollingerStrategy {
	return BollingerStrategy{Window: window, Multiplier: multiplier}
}

// Analyze evaluates the band rules in priority order; the first match wins.
func (s BollingerStrategy) Analyze(prices []float64, _ []time.Time) entity.Signal {
	if len(prices) < s.Window+minExtraHistory {
		return insufficient(NameBollinger)
	}

	b := indicator.BollingerBands(prices, s.Window, s.Multiplier)
	n := len(prices)
	price := prices[n-1]
	upper, lower := b.Upper[n-1], b.Lower[n-1]

	position := 0.5
	if upper != lower {
		position = (price - lower) / (upper - lower)
	}

	expansion := 1.0
	if prev := bandwidth(b, n-2); prev > 0 {
		expansion = bandwidth(b, n-1) / prev
	}

	signal := entity.Signal{Name: NameBollinger}
	switch {
	case price >= upper:
		signal.Action, signal.Confidence, signal.Details = entity.ActionSell, 0.85, "price touched the upper band, pullback risk"
	case price <= lower:
		signal.Action, signal.Confidence, signal.Details = entity.ActionBuy, 0.80, "price touched the lower band, rebound possible"
	case position > 0.8 && expansion > 1.1:
		signal.Action, signal.Confidence, signal.Details = entity.ActionSell, 0.70, "near the upper band with widening bands"
	case position < 0.2 && expansion > 1.1:
		signal.Action, signal.Confidence, signal.Details = entity.ActionBuy, 0.70, "near the lower band with widening bands"
	case position > 0.5:
		signal.Action, signal.Confidence, signal.Details = entity.ActionHold, 0.55, "trading above the middle band"
	default:
		signal.Action, signal.Confidence, signal.Details = entity.ActionHold, 0.55, "trading below the middle band"
	}
	return signal
}

// bandwidth is the band width relative to the middle band at i.
func bandwidth(b indicator.Bands, i int) float64 {
	if b.Middle[i] == 0 {
		return 0
	}
	return (b.Upper[i] - b.Lower[i]) / b.Middle[i]
}
