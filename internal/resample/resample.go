// Package resample synthesizes a series at a timeframe the data
// source could not supply directly, by forward-filling an existing
// series onto a calendar at the target step. The result carries no
// genuine intrabar highs/lows and is tagged Synthetic so consumers
// can treat it as lower-confidence.
package resample

import (
	"time"

	"fxconfluence/internal/model"
)

// Step returns the bar duration for a timeframe interval name, or
// false if the interval has no fixed duration mapping.
func Step(interval string) (time.Duration, bool) {
	switch interval {
	case "1h":
		return time.Hour, true
	case "4h":
		return 4 * time.Hour, true
	case "1day":
		return 24 * time.Hour, true
	case "1week":
		return 7 * 24 * time.Hour, true
	default:
		return 0, false
	}
}

// Resample builds a synthetic calendar spanning the source series'
// range at the given step, filling each slot from the nearest prior
// source bar. Sources with fewer than 2 bars produce an empty series.
func Resample(src model.Series, step time.Duration) model.Series {
	if src.Len() < 2 || step <= 0 {
		return model.Series{}
	}

	first := src.Bars[0].Time
	last := src.Last().Time

	var bars []model.Bar
	idx := 0
	for t := first; !t.After(last); t = t.Add(step) {
		// Advance to the last source bar at or before t.
		for idx+1 < src.Len() && !src.Bars[idx+1].Time.After(t) {
			idx++
		}
		b := src.Bars[idx]
		bars = append(bars, model.Bar{
			Time:   t,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	return model.Series{Bars: bars, Synthetic: true}
}
