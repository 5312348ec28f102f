package indicator

import "math"

// EMA computes the exponential moving average of prices with the
// given span. The recursion is seeded at the first price:
// ema[0] = p[0], ema[i] = p[i]*a + ema[i-1]*(1-a), a = 2/(span+1).
func EMA(prices []float64, span int) []float64 {
	if len(prices) == 0 || span <= 0 {
		return nil
	}
	alpha := 2.0 / float64(span+1)
	out := make([]float64, len(prices))
	out[0] = prices[0]
	for i := 1; i < len(prices); i++ {
		out[i] = prices[i]*alpha + out[i-1]*(1-alpha)
	}
	return out
}

// TrueRange returns the per-bar true range series (one value per bar
// after the first): max(high-low, |high-prevClose|, |low-prevClose|).
func TrueRange(highs, lows, closes []float64) []float64 {
	n := len(closes)
	if n < 2 || len(highs) != n || len(lows) != n {
		return nil
	}
	out := make([]float64, 0, n-1)
	for i := 1; i < n; i++ {
		highLow := highs[i] - lows[i]
		highPrevClose := math.Abs(highs[i] - closes[i-1])
		lowPrevClose := math.Abs(lows[i] - closes[i-1])
		out = append(out, math.Max(highLow, math.Max(highPrevClose, lowPrevClose)))
	}
	return out
}

// ATR computes the average true range as a rolling mean of the true
// range over the trailing period. Returns 0 when there is not enough
// history for even a partial window.
func ATR(highs, lows, closes []float64, period int) float64 {
	tr := TrueRange(highs, lows, closes)
	if len(tr) == 0 || period <= 0 {
		return 0
	}
	if len(tr) < period {
		period = len(tr)
	}
	var sum float64
	for i := len(tr) - period; i < len(tr); i++ {
		sum += tr[i]
	}
	return sum / float64(period)
}

// LinearSlope returns the least-squares slope of values against their
// index. Returns 0 for fewer than 2 points.
func LinearSlope(values []float64) float64 {
	n := len(values)
	if n < 2 {
		return 0
	}
	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}
	fn := float64(n)
	denom := fn*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}
	return (fn*sumXY - sumX*sumY) / denom
}
