package confluence

import (
	"math"
	"strings"

	"fxconfluence/internal/model"
)

// summaryNone is returned whenever the timeframes do not agree
// enough to be actionable.
const summaryNone = "No Confluence"

// biasFraction is the share of valid timeframes the majority
// direction must hold before the summary recommends a bias.
const biasFraction = 0.75

// Aggregate combines per-timeframe analyses into a confluence percent
// and summary. Neutral timeframes count toward the denominator but
// toward neither direction; the percent quantifies strength while the
// summary is a stricter, discrete tier.
func Aggregate(analyses map[string]model.TimeframeAnalysis) (int, string) {
	var valid, bull, bear int
	for _, a := range analyses {
		if a.Trend == "" || a.Trend == model.TrendNoData {
			continue
		}
		valid++
		switch {
		case strings.Contains(a.Trend, "Bullish"):
			bull++
		case strings.Contains(a.Trend, "Bearish"):
			bear++
		}
	}

	if valid == 0 {
		return 0, summaryNone
	}

	top := bull
	direction := "Bullish"
	if bear > bull {
		top = bear
		direction = "Bearish"
	}

	percent := int(math.Round(float64(top) / float64(valid) * 100))

	switch {
	case top == valid:
		return percent, "Strong " + direction
	case float64(top)/float64(valid) >= biasFraction:
		return percent, direction + " Bias"
	default:
		return percent, summaryNone
	}
}
