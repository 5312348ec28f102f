package model

import "time"

// Bar represents a single OHLC price bar
type Bar struct {
	Time   time.Time `json:"time"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume,omitempty"`
}

// Series is an ordered, timestamp-unique sequence of bars for one
// (instrument, timeframe). Synthetic marks series produced by the
// resampler rather than fetched natively.
type Series struct {
	Bars      []Bar `json:"bars"`
	Synthetic bool  `json:"synthetic,omitempty"`
}

// Empty reports whether the series has no bars.
func (s Series) Empty() bool {
	return len(s.Bars) == 0
}

// Len returns the number of bars.
func (s Series) Len() int {
	return len(s.Bars)
}

// Last returns the most recent bar. Callers must check Empty first.
func (s Series) Last() Bar {
	return s.Bars[len(s.Bars)-1]
}

// Closes returns the close prices oldest-first.
func (s Series) Closes() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Close
	}
	return out
}

// Highs returns the high prices oldest-first.
func (s Series) Highs() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.High
	}
	return out
}

// Lows returns the low prices oldest-first.
func (s Series) Lows() []float64 {
	out := make([]float64, len(s.Bars))
	for i, b := range s.Bars {
		out[i] = b.Low
	}
	return out
}

// Tail returns a series holding the last n bars (the whole series if
// it is shorter). The Synthetic flag is preserved.
func (s Series) Tail(n int) Series {
	if n >= len(s.Bars) {
		return s
	}
	return Series{Bars: s.Bars[len(s.Bars)-n:], Synthetic: s.Synthetic}
}
