package indicator

import (
	"testing"

	"fxconfluence/internal/model"
)

// barsFromHighsLows builds a series with explicit high/low sequences;
// closes sit midway.
func barsFromHighsLows(highs, lows []float64) model.Series {
	return generateBars(len(highs), func(i int) model.Bar {
		return model.Bar{
			High:  highs[i],
			Low:   lows[i],
			Close: (highs[i] + lows[i]) / 2,
		}
	})
}

func flatValues(n int, v float64) []float64 {
	out := make([]float64, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func TestBreakOfStructure(t *testing.T) {
	tests := []struct {
		name     string
		highs    []float64
		lows     []float64
		expected string
	}{
		{
			name:     "rising swing highs break up",
			highs:    []float64{10, 12, 10, 10, 13, 10},
			lows:     flatValues(6, 5),
			expected: model.BOSUp,
		},
		{
			name:     "falling swing lows break down",
			highs:    flatValues(6, 20),
			lows:     []float64{10, 8, 10, 10, 7, 10},
			expected: model.BOSDown,
		},
		{
			name:     "second swing high lower, no break",
			highs:    []float64{10, 13, 10, 10, 12, 10},
			lows:     flatValues(6, 5),
			expected: "",
		},
		{
			name:     "single swing is not a break",
			highs:    []float64{10, 13, 10},
			lows:     flatValues(3, 5),
			expected: "",
		},
		{
			name:     "too short",
			highs:    []float64{10, 11},
			lows:     []float64{5, 5},
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := barsFromHighsLows(tt.highs, tt.lows)
			if got := BreakOfStructure(s); got != tt.expected {
				t.Errorf("BreakOfStructure() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestBreakOfStructureStaleness(t *testing.T) {
	// The break itself is valid, but ten flat bars later it is stale.
	highs := append([]float64{10, 12, 10, 10, 13, 10}, flatValues(10, 10)...)
	lows := flatValues(len(highs), 5)

	s := barsFromHighsLows(highs, lows)
	if got := BreakOfStructure(s); got != "" {
		t.Errorf("BreakOfStructure() = %q, want empty for stale break", got)
	}
}

func TestBreakOfStructureSingleDirection(t *testing.T) {
	// Both directions break; up is reported, never both.
	highs := []float64{10, 12, 10, 10, 13, 10}
	lows := []float64{10, 8, 10, 10, 7, 10}

	s := barsFromHighsLows(highs, lows)
	if got := BreakOfStructure(s); got != model.BOSUp {
		t.Errorf("BreakOfStructure() = %q, want %q", got, model.BOSUp)
	}
}
