// Package confluence evaluates whether multiple time-resolutions of
// price action agree on trend direction, producing one record per
// instrument in the configured universe.
package confluence

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"fxconfluence/internal/indicator"
	"fxconfluence/internal/model"
	"fxconfluence/internal/resample"
)

// Fetcher is the provider capability the orchestrator consumes.
type Fetcher interface {
	Fetch(ctx context.Context, symbol string, tf model.TimeframeSpec) model.SeriesResult
}

// dailyInterval identifies the timeframe used as the resample source
// when a direct fetch fails.
const dailyInterval = "1day"

// Orchestrator drives the whole scan: provider, resample fallback,
// indicator engine and aggregation per instrument.
type Orchestrator struct {
	fetcher     Fetcher
	engine      *indicator.Engine
	instruments []model.Instrument
	timeframes  []model.TimeframeSpec
	workers     int
	logger      zerolog.Logger
}

// NewOrchestrator builds an orchestrator over an immutable universe.
// workers below 1 is treated as sequential.
func NewOrchestrator(fetcher Fetcher, engine *indicator.Engine, instruments []model.Instrument, timeframes []model.TimeframeSpec, workers int) *Orchestrator {
	if workers < 1 {
		workers = 1
	}
	return &Orchestrator{
		fetcher:     fetcher,
		engine:      engine,
		instruments: instruments,
		timeframes:  timeframes,
		workers:     workers,
		logger:      log.With().Str("component", "confluence").Logger(),
	}
}

// Run processes the full universe. A failing instrument yields a
// degraded record instead of aborting the batch, and output order
// always matches the configured instrument order.
func (o *Orchestrator) Run(ctx context.Context) []model.ConfluenceRecord {
	records := make([]model.ConfluenceRecord, len(o.instruments))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, inst := range o.instruments {
		i, inst := i, inst
		g.Go(func() error {
			records[i] = o.scanInstrument(gctx, inst)
			return nil
		})
	}
	// Workers never return errors; degraded records stand in for
	// failures.
	_ = g.Wait()

	return records
}

// scanInstrument produces one record. Panics are contained here so a
// single bad instrument cannot take down the batch.
func (o *Orchestrator) scanInstrument(ctx context.Context, inst model.Instrument) (rec model.ConfluenceRecord) {
	defer func() {
		if r := recover(); r != nil {
			o.logger.Error().
				Str("symbol", inst.Symbol).
				Interface("panic", r).
				Msg("instrument scan panicked, degrading record")
			rec = degradedRecord(inst, o.timeframes)
		}
	}()

	analyses := make(map[string]model.TimeframeAnalysis, len(o.timeframes))
	var daily model.Series
	dailyFetched := false

	// fetchDaily lazily obtains the daily series used both for the
	// Daily timeframe itself and as the resample fallback source.
	fetchDaily := func() model.Series {
		if !dailyFetched {
			dailyFetched = true
			if res := o.fetcher.Fetch(ctx, inst.Symbol, o.dailySpec()); res.OK() {
				daily = res.Series
			}
		}
		return daily
	}

	for _, tf := range o.timeframes {
		series := o.seriesFor(ctx, inst, tf, fetchDaily)
		analyses[tf.Name] = o.engine.Analyze(series, tf.TrendWindow)
	}

	percent, summary := Aggregate(analyses)
	o.logger.Debug().
		Str("symbol", inst.Symbol).
		Int("percent", percent).
		Str("summary", summary).
		Msg("instrument scanned")

	return model.ConfluenceRecord{
		Pair:       inst.Name,
		Symbol:     inst.Symbol,
		Timeframes: analyses,
		Percent:    percent,
		Summary:    summary,
	}
}

// seriesFor fetches one timeframe, falling back to a resample of the
// daily series when the direct fetch yields nothing.
func (o *Orchestrator) seriesFor(ctx context.Context, inst model.Instrument, tf model.TimeframeSpec, fetchDaily func() model.Series) model.Series {
	if tf.Interval == dailyInterval {
		return fetchDaily()
	}

	if res := o.fetcher.Fetch(ctx, inst.Symbol, tf); res.OK() {
		return res.Series
	}

	step, ok := resample.Step(tf.Interval)
	if !ok {
		return model.Series{}
	}
	src := fetchDaily()
	if src.Empty() {
		return model.Series{}
	}
	o.logger.Info().
		Str("symbol", inst.Symbol).
		Str("interval", tf.Interval).
		Msg("no native data, resampling from daily")
	return resample.Resample(src, step)
}

func (o *Orchestrator) dailySpec() model.TimeframeSpec {
	for _, tf := range o.timeframes {
		if tf.Interval == dailyInterval {
			return tf
		}
	}
	// No daily timeframe configured; use a sensible request shape.
	return model.TimeframeSpec{Name: "Daily", Interval: dailyInterval, TrendWindow: 200, Lookback: 500}
}

func degradedRecord(inst model.Instrument, timeframes []model.TimeframeSpec) model.ConfluenceRecord {
	analyses := make(map[string]model.TimeframeAnalysis, len(timeframes))
	for _, tf := range timeframes {
		analyses[tf.Name] = model.NoDataAnalysis()
	}
	return model.ConfluenceRecord{
		Pair:       inst.Name,
		Symbol:     inst.Symbol,
		Timeframes: analyses,
		Percent:    0,
		Summary:    summaryNone,
	}
}
