package model

// FetchStatus distinguishes why a fetch produced no usable series.
type FetchStatus int

const (
	// StatusOK means the source returned a usable series.
	StatusOK FetchStatus = iota
	// StatusNoData means the source answered but nothing usable came
	// back (empty result, or no close-equivalent field after
	// normalization).
	StatusNoData
	// StatusError means the source could not be reached or failed
	// after the retry budget.
	StatusError
)

func (s FetchStatus) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoData:
		return "no_data"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// SeriesResult is the typed outcome of a provider fetch. Err is only
// set for StatusError.
type SeriesResult struct {
	Series Series
	Status FetchStatus
	Err    error
}

// OK reports whether the fetch produced a usable series.
func (r SeriesResult) OK() bool {
	return r.Status == StatusOK && !r.Series.Empty()
}

// Trend labels emitted by the indicator engine.
const (
	TrendStrongBullish = "Strong Bullish"
	TrendBullish       = "Bullish"
	TrendStrongBearish = "Strong Bearish"
	TrendBearish       = "Bearish"
	TrendNeutral       = "Neutral"
	TrendNoData        = "No Data"
)

// Structure labels.
const (
	StructureBullish = "HH/HL"
	StructureBearish = "LH/LL"
	StructureRange   = "range"
	StructureUnknown = "unknown"
)

// Break-of-structure labels.
const (
	BOSUp   = "BOS_up"
	BOSDown = "BOS_down"
)

// TimeframeAnalysis is the per-timeframe output of the indicator
// engine. The three classifications stay separate fields; Label is
// presentation only.
type TimeframeAnalysis struct {
	Trend       string  `json:"trend"`
	Structure   string  `json:"structure"`
	BOS         string  `json:"bos,omitempty"`
	DistancePct float64 `json:"distance_pct"`
	Synthetic   bool    `json:"synthetic,omitempty"`
}

// NoDataAnalysis returns the neutral analysis reported for series too
// short to classify.
func NoDataAnalysis() TimeframeAnalysis {
	return TimeframeAnalysis{Trend: TrendNoData, Structure: StructureUnknown}
}

// Label composes the human-readable per-timeframe string:
// trend, structure in parentheses, BOS suffix, resample marker.
func (a TimeframeAnalysis) Label() string {
	if a.Trend == "" || a.Trend == TrendNoData {
		return TrendNoData
	}
	label := a.Trend
	if a.Structure != "" && a.Structure != StructureUnknown {
		label += " (" + a.Structure + ")"
	}
	if a.BOS != "" {
		label += " " + a.BOS
	}
	if a.Synthetic {
		label += " (resampled)"
	}
	return label
}

// ConfluenceRecord is the per-instrument unit returned to callers.
type ConfluenceRecord struct {
	Pair       string                       `json:"pair"`
	Symbol     string                       `json:"symbol"`
	Timeframes map[string]TimeframeAnalysis `json:"-"`
	Percent    int                          `json:"confluence_percent"`
	Summary    string                       `json:"summary"`
}

// Flat is the wire form served over HTTP: per-timeframe analyses
// collapsed to their label strings.
type Flat struct {
	Pair       string            `json:"pair"`
	Symbol     string            `json:"symbol"`
	Timeframes map[string]string `json:"timeframes"`
	Percent    int               `json:"confluence_percent"`
	Summary    string            `json:"summary"`
}

// Flatten converts the record to its wire form.
func (r ConfluenceRecord) Flatten() Flat {
	tfs := make(map[string]string, len(r.Timeframes))
	for name, a := range r.Timeframes {
		tfs[name] = a.Label()
	}
	return Flat{
		Pair:       r.Pair,
		Symbol:     r.Symbol,
		Timeframes: tfs,
		Percent:    r.Percent,
		Summary:    r.Summary,
	}
}
