// Package indicator computes the per-timeframe technical analysis:
// an EMA-based trend label, a swing-structure label and a
// break-of-structure signal. Everything here is a pure function of
// the series.
package indicator

import (
	"fxconfluence/internal/model"
)

// minStructureBars is the absolute floor below which no analysis is
// attempted at all.
const minStructureBars = 3

// Engine runs the per-series analysis with a pluggable trend
// classifier.
type Engine struct {
	Classifier TrendClassifier
}

// NewEngine returns an engine using the ATR-adaptive reference
// classifier.
func NewEngine() *Engine {
	return &Engine{Classifier: ATRAdaptive{}}
}

// Analyze classifies one series. Series shorter than half the trend
// window report "No Data" rather than a signal computed on too little
// history.
func (e *Engine) Analyze(s model.Series, trendWindow int) model.TimeframeAnalysis {
	minBars := trendWindow / 2
	if minBars < minStructureBars {
		minBars = minStructureBars
	}
	if s.Len() < minBars {
		return model.NoDataAnalysis()
	}

	closes := s.Closes()
	ema := EMA(closes, trendWindow)

	lastClose := closes[len(closes)-1]
	lastEMA := ema[len(ema)-1]

	var distancePct float64
	if lastEMA != 0 {
		distancePct = (lastClose - lastEMA) / lastEMA * 100
	}

	var slope float64
	if len(ema) >= 3 {
		slope = lastEMA - ema[len(ema)-3]
	}

	return model.TimeframeAnalysis{
		Trend:       e.Classifier.Classify(s, distancePct, slope),
		Structure:   Structure(s),
		BOS:         BreakOfStructure(s),
		DistancePct: distancePct,
		Synthetic:   s.Synthetic,
	}
}
