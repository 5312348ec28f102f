package indicator

import (
	"testing"

	"fxconfluence/internal/model"
)

func TestStructure(t *testing.T) {
	tests := []struct {
		name     string
		series   model.Series
		expected string
	}{
		{
			name: "higher highs higher lows",
			series: generateBars(12, func(i int) model.Bar {
				return model.Bar{High: 100 + float64(i), Low: 95 + float64(i), Close: 98 + float64(i)}
			}),
			expected: model.StructureBullish,
		},
		{
			name: "lower highs lower lows",
			series: generateBars(12, func(i int) model.Bar {
				return model.Bar{High: 100 - float64(i), Low: 95 - float64(i), Close: 98 - float64(i)}
			}),
			expected: model.StructureBearish,
		},
		{
			name: "diverging range",
			series: generateBars(12, func(i int) model.Bar {
				return model.Bar{High: 100 + float64(i), Low: 95 - float64(i), Close: 98}
			}),
			expected: model.StructureRange,
		},
		{
			name: "too few bars",
			series: generateBars(2, func(i int) model.Bar {
				return model.Bar{High: 100, Low: 95, Close: 98}
			}),
			expected: model.StructureUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Structure(tt.series); got != tt.expected {
				t.Errorf("Structure() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStructureUsesRecentWindowOnly(t *testing.T) {
	// A long downtrend followed by 12 rising bars classifies on the
	// recent bars.
	s := generateBars(60, func(i int) model.Bar {
		if i < 48 {
			return model.Bar{High: 200 - float64(i), Low: 195 - float64(i), Close: 198 - float64(i)}
		}
		r := float64(i - 48)
		return model.Bar{High: 100 + r, Low: 95 + r, Close: 98 + r}
	})
	if got := Structure(s); got != model.StructureBullish {
		t.Errorf("Structure() = %q, want %q", got, model.StructureBullish)
	}
}

func TestLinearSlope(t *testing.T) {
	tests := []struct {
		name     string
		values   []float64
		expected float64
	}{
		{"rising", []float64{1, 2, 3, 4}, 1},
		{"falling", []float64{4, 3, 2, 1}, -1},
		{"flat", []float64{5, 5, 5}, 0},
		{"single point", []float64{5}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LinearSlope(tt.values); got != tt.expected {
				t.Errorf("LinearSlope() = %f, want %f", got, tt.expected)
			}
		})
	}
}
