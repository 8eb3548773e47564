package engine

import (
	"math"

	"github.com/shopspring/decimal"

	"etf_advisor/internal/feature/strategy/domain/entity"
)

const (
	minAllocation = 0.1
	maxAllocation = 0.5
)

// CalculatePosition suggests how much of totalCapital to allocate. Only Buy
// decisions get an allocation: confidence 0.5..1.0 maps linearly onto 10%..50%
// of capital, clamped at both ends, rounded to cents.
func CalculatePosition(totalCapital, confidence float64, action entity.Action) float64 {
	if action != entity.ActionBuy {
		return 0
	}
	fraction := minAllocation + (confidence-0.5)*0.8
	fraction = math.Max(minAllocation, math.Min(maxAllocation, fraction))

	return decimal.NewFromFloat(totalCapital).
		Mul(decimal.NewFromFloat(fraction)).
		Round(2).
		InexactFloat64()
}
