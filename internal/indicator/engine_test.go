package indicator

import (
	"math"
	"strings"
	"testing"
	"time"

	"fxconfluence/internal/model"
)

func generateBars(n int, gen func(i int) model.Bar) model.Series {
	bars := make([]model.Bar, n)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		bars[i] = gen(i)
		bars[i].Time = base.Add(time.Duration(i) * 24 * time.Hour)
	}
	return model.Series{Bars: bars}
}

func risingSeries(n int) model.Series {
	return generateBars(n, func(i int) model.Bar {
		c := 100 + float64(i)*0.5
		return model.Bar{Open: c - 0.2, High: c + 0.3, Low: c - 0.4, Close: c}
	})
}

func flatSeries(n int) model.Series {
	return generateBars(n, func(i int) model.Bar {
		return model.Bar{Open: 100, High: 100, Low: 100, Close: 100}
	})
}

func TestAnalyzeInsufficientHistory(t *testing.T) {
	engine := NewEngine()

	tests := []struct {
		name        string
		series      model.Series
		trendWindow int
	}{
		{"empty series", model.Series{}, 20},
		{"single bar", risingSeries(1), 20},
		{"below half window", risingSeries(9), 20},
		{"below absolute floor", risingSeries(2), 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := engine.Analyze(tt.series, tt.trendWindow)
			if a.Trend != model.TrendNoData {
				t.Errorf("trend = %q, want %q", a.Trend, model.TrendNoData)
			}
			if a.Structure != model.StructureUnknown {
				t.Errorf("structure = %q, want %q", a.Structure, model.StructureUnknown)
			}
			if a.BOS != "" {
				t.Errorf("bos = %q, want empty", a.BOS)
			}
		})
	}
}

func TestAnalyzeRisingSeries(t *testing.T) {
	engine := NewEngine()
	a := engine.Analyze(risingSeries(250), 200)

	if !strings.Contains(a.Trend, "Bullish") {
		t.Errorf("trend = %q, want bullish", a.Trend)
	}
	if a.DistancePct <= 0 {
		t.Errorf("distance_pct = %f, want positive", a.DistancePct)
	}
	if a.Structure != model.StructureBullish {
		t.Errorf("structure = %q, want %q", a.Structure, model.StructureBullish)
	}
}

func TestAnalyzeFlatSeries(t *testing.T) {
	engine := NewEngine()
	a := engine.Analyze(flatSeries(60), 20)

	if a.Trend != model.TrendNeutral {
		t.Errorf("trend = %q, want %q", a.Trend, model.TrendNeutral)
	}
	if a.DistancePct != 0 {
		t.Errorf("distance_pct = %f, want 0", a.DistancePct)
	}
}

func TestAnalyzeKeepsSyntheticFlag(t *testing.T) {
	engine := NewEngine()
	s := risingSeries(60)
	s.Synthetic = true

	a := engine.Analyze(s, 20)
	if !a.Synthetic {
		t.Error("expected synthetic flag to survive analysis")
	}
}

func TestEMASeedAndBounds(t *testing.T) {
	prices := []float64{100, 102, 101, 105, 104, 103, 108}
	ema := EMA(prices, 5)

	if ema[0] != prices[0] {
		t.Errorf("ema[0] = %f, want %f", ema[0], prices[0])
	}
	// Whenever price and prior EMA sit on the same side, the new EMA
	// lies between them.
	for i := 1; i < len(prices); i++ {
		lo := math.Min(prices[i], ema[i-1])
		hi := math.Max(prices[i], ema[i-1])
		if ema[i] < lo || ema[i] > hi {
			t.Errorf("ema[%d] = %f outside [%f, %f]", i, ema[i], lo, hi)
		}
	}
}

func TestClassifyPriority(t *testing.T) {
	tests := []struct {
		name     string
		distance float64
		slope    float64
		expected string
	}{
		{"strong bullish", 2.0, 0.5, model.TrendStrongBullish},
		{"strong magnitude but falling ema", 2.0, -0.5, model.TrendNeutral},
		{"bullish", 0.5, 0.0, model.TrendBullish},
		{"bearish", -0.5, 0.0, model.TrendBearish},
		{"strong bearish", -2.0, -0.5, model.TrendStrongBearish},
		{"disagreeing signs", 0.5, -0.1, model.TrendNeutral},
		{"flat", 0.0, 0.0, model.TrendNeutral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classify(tt.distance, tt.slope, 1.0)
			if got != tt.expected {
				t.Errorf("classify(%f, %f) = %q, want %q", tt.distance, tt.slope, got, tt.expected)
			}
		})
	}
}

func TestClassificationMonotonicity(t *testing.T) {
	// Growing distance with slope held >= 0 never moves the label
	// toward bearish.
	rank := map[string]int{
		model.TrendStrongBearish: -2,
		model.TrendBearish:       -1,
		model.TrendNeutral:       0,
		model.TrendBullish:       1,
		model.TrendStrongBullish: 2,
	}
	prev := rank[classify(-3.0, 0.5, 1.0)]
	for _, dist := range []float64{-1.5, -0.2, 0.0, 0.2, 0.9, 1.5, 3.0} {
		cur := rank[classify(dist, 0.5, 1.0)]
		if cur < prev {
			t.Fatalf("classification moved bearward as distance grew: %d -> %d at dist=%f", prev, cur, dist)
		}
		prev = cur
	}
}

func TestATRAdaptiveThresholdScaling(t *testing.T) {
	// Low-volatility series: tiny true ranges tighten the strong
	// threshold, so a modest distance already counts as strong.
	quiet := generateBars(60, func(i int) model.Bar {
		c := 100 + float64(i)*0.01
		return model.Bar{Open: c, High: c + 0.05, Low: c - 0.05, Close: c}
	})
	c := ATRAdaptive{BaseThresholdPct: 1.0}
	if got := c.Classify(quiet, 0.7, 0.1); got != model.TrendStrongBullish {
		t.Errorf("quiet regime: got %q, want %q", got, model.TrendStrongBullish)
	}

	// High-volatility series: wide ranges widen the threshold, so the
	// same distance is just bullish.
	wild := generateBars(60, func(i int) model.Bar {
		c := 100 + float64(i)*0.01
		return model.Bar{Open: c, High: c + 3, Low: c - 3, Close: c}
	})
	if got := c.Classify(wild, 0.7, 0.1); got != model.TrendBullish {
		t.Errorf("wild regime: got %q, want %q", got, model.TrendBullish)
	}
}

func TestATR(t *testing.T) {
	highs := []float64{10, 12, 11, 13}
	lows := []float64{8, 9, 9, 10}
	closes := []float64{9, 11, 10, 12}

	// TR: max(12-9,|12-9|,|9-9|)=3; max(11-9,|11-11|,|9-11|)=2;
	// max(13-10,|13-10|,|10-10|)=3
	got := ATR(highs, lows, closes, 3)
	want := (3.0 + 2.0 + 3.0) / 3.0
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("ATR = %f, want %f", got, want)
	}
}
