package usecase

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/cespare/xxhash/v2"

	"etf_advisor/internal/feature/marketdata/domain/entity"
)

// Synthesizer produces deterministic stand-in market data. Output depends
// only on the fund code and the clock, so repeated calls on the same day
// agree with each other.
type Synthesizer struct {
	now func() time.Time
}

// NewSynthesizer returns a Synthesizer that reads the date from now.
func NewSynthesizer(now func() time.Time) *Synthesizer {
	if now == nil {
		now = time.Now
	}
	return &Synthesizer{now: now}
}

func seedOf(code string) uint64 {
	return xxhash.Sum64String(code)
}

func rngFor(code string) *rand.Rand {
	seed := seedOf(code)
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func basePrice(code string, floor float64) float64 {
	return floor + float64(seedOf(code)%100)/50
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

// History returns days daily bars ending yesterday.
func (s *Synthesizer) History(code string, period entity.Period, days int) entity.PriceSeries {
	rng := rngFor(code)
	price := basePrice(code, 3.0)

	now := s.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	out := entity.PriceSeries{
		Code:      code,
		Period:    period,
		Dates:     make([]time.Time, 0, days),
		Prices:    make([]float64, 0, days),
		Volumes:   make([]float64, 0, days),
		Synthetic: true,
	}
	for i := days; i >= 1; i-- {
		price *= 1 + rng.NormFloat64()*0.02
		out.Dates = append(out.Dates, today.AddDate(0, 0, -i))
		out.Prices = append(out.Prices, round(price, 3))
		out.Volumes = append(out.Volumes, math.Floor(1e6+rng.Float64()*9e6))
	}
	return out
}

// Quote returns a single price around a code-dependent base.
func (s *Synthesizer) Quote(code string) entity.Quote {
	rng := rngFor(code)
	change := rng.NormFloat64() * 2
	return entity.Quote{
		Code:      code,
		Price:     round(basePrice(code, 2.0)*(1+change/100), 3),
		Change:    round(change, 2),
		Time:      s.now(),
		Synthetic: true,
	}
}

// Intraday returns 5-minute bars from 09:30 through 14:55.
func (s *Synthesizer) Intraday(code string) entity.Intraday {
	rng := rngFor(code)
	price := basePrice(code, 3.0)

	out := entity.Intraday{Code: code, Synthetic: true}
	for hour := 9; hour < 15; hour++ {
		for minute := 0; minute < 60; minute += 5 {
			if hour == 9 && minute < 30 {
				continue
			}
			price *= 1 + rng.NormFloat64()*0.005
			out.Times = append(out.Times, time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC).Format("15:04"))
			out.Prices = append(out.Prices, round(price, 3))
			out.Volumes = append(out.Volumes, math.Floor(1e4+rng.Float64()*9e4))
		}
	}
	return out
}
