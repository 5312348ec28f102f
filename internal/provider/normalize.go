package provider

import (
	"sort"

	"fxconfluence/internal/model"
)

// normalize turns raw source rows into a clean series: a close price
// is resolved for every bar (adjusted close substitutes a missing
// true close, bars with neither are dropped), timestamps are sorted
// ascending and de-duplicated keeping the last row seen for a given
// timestamp.
func normalize(rows []RawBar) model.Series {
	bars := make([]model.Bar, 0, len(rows))
	for _, r := range rows {
		closePrice := r.Close
		if closePrice == nil {
			closePrice = r.AdjClose
		}
		if closePrice == nil {
			continue
		}
		bars = append(bars, model.Bar{
			Time:   r.Time,
			Open:   r.Open,
			High:   r.High,
			Low:    r.Low,
			Close:  *closePrice,
			Volume: r.Volume,
		})
	}
	if len(bars) == 0 {
		return model.Series{}
	}

	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Time.Before(bars[j].Time)
	})

	deduped := bars[:0]
	for _, b := range bars {
		if n := len(deduped); n > 0 && deduped[n-1].Time.Equal(b.Time) {
			deduped[n-1] = b
			continue
		}
		deduped = append(deduped, b)
	}

	return model.Series{Bars: deduped}
}
