// Package indicator provides technical indicator calculations over close prices.
//
// Every function returns a slice aligned index-for-index with its input. Positions
// without enough history are filled with a neutral value instead of being omitted:
// 0 for averages and bands, 50 for RSI.
package indicator

import "math"

// NeutralRSI is the RSI value reported where the oscillator is undefined.
const NeutralRSI = 50.0

// Bands holds Bollinger band series of equal length.
type Bands struct {
	Upper  []float64
	Middle []float64
	Lower  []float64
}

// MovingAverage returns the simple trailing mean over window observations.
// Indices with fewer than window observations are 0, which callers must read
// as "insufficient history" and never as a price.
func MovingAverage(prices []float64, window int) []float64 {
	out := make([]float64, len(prices))
	if window <= 0 {
		return out
	}
	for i := window - 1; i < len(prices); i++ {
		out[i] = mean(prices[i-window+1 : i+1])
	}
	return out
}

// RSI returns the relative strength index using trailing-mean gains and losses.
// The first value is at index period, once period full deltas exist. Earlier
// positions, and positions where the average loss is exactly zero, are
// NeutralRSI.
func RSI(prices []float64, period int) []float64 {
	out := make([]float64, len(prices))
	for i := range out {
		out[i] = NeutralRSI
	}
	if period <= 0 {
		return out
	}
	for i := period; i < len(prices); i++ {
		var gain, loss float64
		for j := i - period + 1; j <= i; j++ {
			d := prices[j] - prices[j-1]
			if d > 0 {
				gain += d
			} else {
				loss -= d
			}
		}
		avgLoss := loss / float64(period)
		if avgLoss == 0 {
			continue
		}
		rs := (gain / float64(period)) / avgLoss
		out[i] = 100 - 100/(1+rs)
	}
	return out
}

// BollingerBands returns the moving average plus and minus k trailing sample
// standard deviations. Positions with insufficient history are 0 in all bands.
func BollingerBands(prices []float64, window int, k float64) Bands {
	n := len(prices)
	b := Bands{
		Upper:  make([]float64, n),
		Middle: MovingAverage(prices, window),
		Lower:  make([]float64, n),
	}
	if window <= 0 {
		return b
	}
	for i := window - 1; i < n; i++ {
		half := k * stdDev(prices[i-window+1:i+1], b.Middle[i])
		b.Upper[i] = b.Middle[i] + half
		b.Lower[i] = b.Middle[i] - half
	}
	return b
}

func mean(xs []float64) float64 {
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// stdDev is the sample (n-1) standard deviation; a single observation has none.
func stdDev(xs []float64, m float64) float64 {
	if len(xs) < 2 {
		return 0
	}
	var ss float64
	for _, x := range xs {
		ss += (x - m) * (x - m)
	}
	return math.Sqrt(ss / float64(len(xs)-1))
}
