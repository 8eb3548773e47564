package engine

import (
	"time"

	"etf_advisor/internal/feature/strategy/domain/entity"
	"etf_advisor/internal/feature/strategy/domain/indicator"
)

// NameDualMA is the signal name of the dual moving-average strategy.
const NameDualMA = "Dual MA"

// DualMovingAverage trades short/long average crossovers and their trends.
type DualMovingAverage struct {
	Short int
	Long  int
}

// NewDualMovingAverage creates a crossover strategy with the given windows.
func NewDualMovingAverage(short, long int) DualMovingAverage {
	return DualMovingAverage{Short: short, Long: long}
}

// Analyze evaluates the crossover rules in priority order; the first match wins.
func (s DualMovingAverage) Analyze(prices []float64, _ []time.Time) entity.Signal {
	if len(prices) < s.Long+minExtraHistory {
		return insufficient(NameDualMA)
	}

	short := indicator.MovingAverage(prices, s.Short)
	long := indicator.MovingAverage(prices, s.Long)

	n := len(prices)
	price := prices[n-1]
	curShort, curLong := short[n-1], long[n-1]
	prevShort, prevLong := short[n-2], long[n-2]

	shortTrend := trend(short, n-1, n-5)
	longTrend := trend(long, n-1, n-10)

	goldenCross := prevShort <= prevLong && curShort > curLong
	deathCross := prevShort >= prevLong && curShort < curLong
	aboveShort := price > curShort

	signal := entity.Signal{Name: NameDualMA}
	switch {
	case goldenCross && aboveShort:
		signal.Action, signal.Confidence, signal.Details = entity.ActionBuy, 0.85, "golden cross with price above the short average"
	case deathCross:
		signal.Action, signal.Confidence, signal.Details = entity.ActionSell, 0.80, "death cross, watch the downside"
	case curShort > curLong && shortTrend > 0:
		signal.Action, signal.Confidence, signal.Details = entity.ActionBuy, 0.70, "short average leads and is rising"
	case curShort < curLong && longTrend < -0.02:
		signal.Action, signal.Confidence, signal.Details = entity.ActionSell, 0.70, "medium-term trend is falling"
	case aboveShort:
		signal.Action, signal.Confidence, signal.Details = entity.ActionHold, 0.60, "price steady while averages consolidate"
	default:
		signal.Action, signal.Confidence, signal.Details = entity.ActionHold, 0.55, "wait and see"
	}
	return signal
}

// trend is the fractional change of series between base and cur. A zero base
// is a warm-up position, so there is no trend to report.
func trend(series []float64, cur, base int) float64 {
	if base < 0 || series[base] == 0 {
		return 0
	}
	return series[cur]/series[base] - 1
}
