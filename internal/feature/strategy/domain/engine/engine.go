// Package engine fuses independent technical strategies into one recommendation.
//
// Everything here is pure computation over in-memory slices: no I/O, no clocks,
// no shared state. The same prices always produce the same StrategyResult.
package engine

import (
	"time"

	"etf_advisor/internal/feature/strategy/domain/entity"
)

// minExtraHistory is the number of observations a strategy needs beyond its
// own window before it will express an opinion.
const minExtraHistory = 5

const (
	insufficientConfidence = 0.5
	insufficientDetails    = "insufficient data"
)

// Strategy turns a close-price history into a single Signal.
type Strategy interface {
	Analyze(prices []float64, dates []time.Time) entity.Signal
}

// Engine runs a fixed, ordered set of strategies and votes on their signals.
type Engine struct {
	strategies []Strategy
}

// NewEngine creates an Engine over the given strategies. Signal order in the
// result follows argument order.
func NewEngine(strategies ...Strategy) *Engine {
	return &Engine{strategies: strategies}
}

// NewDefaultEngine creates the standard dual-MA(5,20), RSI(14,70,30) and
// Bollinger(20,2) engine.
func NewDefaultEngine() *Engine {
	return NewEngine(
		NewDualMovingAverage(5, 20),
		NewRSIStrategy(14, 70, 30),
		NewBollingerStrategy(20, 2),
	)
}

// Analyze runs every strategy and returns the voted result.
func (e *Engine) Analyze(prices []float64, dates []time.Time) entity.StrategyResult {
	signals := make([]entity.Signal, 0, len(e.strategies))
	for _, s := range e.strategies {
		signals = append(signals, s.Analyze(prices, dates))
	}
	return Vote(signals)
}

func insufficient(name string) entity.Signal {
	return entity.Signal{
		Name:       name,
		Action:     entity.ActionHold,
		Confidence: insufficientConfidence,
		Details:    insufficientDetails,
	}
}
