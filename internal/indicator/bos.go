package indicator

import (
	"fxconfluence/internal/model"
)

// bosRecencyBars bounds how far back the breaking swing may sit; a
// break that happened long ago is stale.
const bosRecencyBars = 8

// BreakOfStructure detects whether the most recent swing high exceeds
// the prior one (BOS_up), or the most recent swing low undercuts the
// prior one (BOS_down). At most one direction is reported; up is
// checked first. A bar is a local extreme when it exceeds both
// neighbors strictly.
func BreakOfStructure(s model.Series) string {
	n := s.Len()
	if n < 3 {
		return ""
	}
	highs := s.Highs()
	lows := s.Lows()

	maxIdx := localExtrema(highs, func(a, b, c float64) bool { return b > a && b > c })
	if prev, last, ok := lastTwo(maxIdx); ok {
		if highs[last] > highs[prev] && n-1-last < bosRecencyBars {
			return model.BOSUp
		}
	}

	minIdx := localExtrema(lows, func(a, b, c float64) bool { return b < a && b < c })
	if prev, last, ok := lastTwo(minIdx); ok {
		if lows[last] < lows[prev] && n-1-last < bosRecencyBars {
			return model.BOSDown
		}
	}

	return ""
}

// localExtrema returns the indices where pick(prev, cur, next) holds.
func localExtrema(values []float64, pick func(a, b, c float64) bool) []int {
	var idx []int
	for i := 1; i < len(values)-1; i++ {
		if pick(values[i-1], values[i], values[i+1]) {
			idx = append(idx, i)
		}
	}
	return idx
}

func lastTwo(idx []int) (prev, last int, ok bool) {
	if len(idx) < 2 {
		return 0, 0, false
	}
	return idx[len(idx)-2], idx[len(idx)-1], true
}
