package indicator

import (
	"fxconfluence/internal/model"
)

// TrendClassifier maps a series' EMA distance and slope to a trend
// label. Alternative formulas plug in here without touching the
// aggregation layer.
type TrendClassifier interface {
	Classify(s model.Series, distancePct, slope float64) string
}

const (
	defaultStrongThresholdPct = 1.0
	atrPeriod                 = 14
	// baselineVolPct is the ATR/price ratio treated as "normal"
	// volatility; the strong threshold scales against it.
	baselineVolPct = 0.5
	minVolScale    = 0.5
	maxVolScale    = 2.0
)

// classify applies the shared priority order: strong labels need both
// the magnitude threshold and slope agreement.
func classify(distancePct, slope, strongThresholdPct float64) string {
	switch {
	case distancePct > strongThresholdPct && slope > 0:
		return model.TrendStrongBullish
	case distancePct < -strongThresholdPct && slope < 0:
		return model.TrendStrongBearish
	case distancePct > 0 && slope >= 0:
		return model.TrendBullish
	case distancePct < 0 && slope <= 0:
		return model.TrendBearish
	default:
		return model.TrendNeutral
	}
}

// FixedThreshold classifies against a constant strong threshold, the
// original non-adaptive formula.
type FixedThreshold struct {
	StrongThresholdPct float64
}

func (c FixedThreshold) Classify(_ model.Series, distancePct, slope float64) string {
	thr := c.StrongThresholdPct
	if thr <= 0 {
		thr = defaultStrongThresholdPct
	}
	return classify(distancePct, slope, thr)
}

// ATRAdaptive scales the strong threshold by recent volatility: in a
// quiet regime "strong" is reached sooner, in a wild one later, so
// the label is relative to typical range rather than an absolute
// percentage. This is the reference classifier.
type ATRAdaptive struct {
	BaseThresholdPct float64
}

func (c ATRAdaptive) Classify(s model.Series, distancePct, slope float64) string {
	base := c.BaseThresholdPct
	if base <= 0 {
		base = defaultStrongThresholdPct
	}

	thr := base
	if !s.Empty() {
		lastClose := s.Last().Close
		atr := ATR(s.Highs(), s.Lows(), s.Closes(), atrPeriod)
		if atr > 0 && lastClose > 0 {
			volPct := atr / lastClose * 100
			scale := volPct / baselineVolPct
			if scale < minVolScale {
				scale = minVolScale
			}
			if scale > maxVolScale {
				scale = maxVolScale
			}
			thr = base * scale
		}
	}
	return classify(distancePct, slope, thr)
}
