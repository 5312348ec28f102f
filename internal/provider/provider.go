package provider

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"fxconfluence/internal/model"
	"fxconfluence/internal/store"
)

// Options tunes the provider's retry behavior.
type Options struct {
	MaxRetries int
	RetryPause time.Duration
}

// Provider acquires series for (symbol, timeframe) pairs: cache
// first, then the source with a bounded retry budget. Both successful
// and failed fetches are cached so a dead symbol cannot trigger a
// retry storm. Concurrent misses for the same key are collapsed into
// a single source call.
type Provider struct {
	source     Source
	cache      store.Store
	group      singleflight.Group
	maxRetries int
	retryPause time.Duration
	logger     zerolog.Logger
}

// New creates a provider over the given source and cache.
func New(source Source, cache store.Store, opts Options) *Provider {
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 2
	}
	if opts.RetryPause <= 0 {
		opts.RetryPause = 500 * time.Millisecond
	}
	return &Provider{
		source:     source,
		cache:      cache,
		maxRetries: opts.MaxRetries,
		retryPause: opts.RetryPause,
		logger:     log.With().Str("component", "series_provider").Logger(),
	}
}

// Fetch returns the series for (symbol, tf). Failures never surface
// as errors to the caller beyond the typed status: an exhausted retry
// budget or an unusable payload degrades to an empty result.
func (p *Provider) Fetch(ctx context.Context, symbol string, tf model.TimeframeSpec) model.SeriesResult {
	if entry, ok := p.cache.Get(ctx, symbol, tf.Interval); ok {
		if entry.Absent {
			return model.SeriesResult{Status: model.StatusNoData}
		}
		return model.SeriesResult{Series: entry.Series, Status: model.StatusOK}
	}

	key := store.Key(symbol, tf.Interval)
	v, _, _ := p.group.Do(key, func() (interface{}, error) {
		// Re-check under singleflight: the first flight may have
		// populated the cache while this call waited.
		if entry, ok := p.cache.Get(ctx, symbol, tf.Interval); ok {
			if entry.Absent {
				return model.SeriesResult{Status: model.StatusNoData}, nil
			}
			return model.SeriesResult{Series: entry.Series, Status: model.StatusOK}, nil
		}
		return p.fetchAndCache(ctx, symbol, tf), nil
	})
	return v.(model.SeriesResult)
}

func (p *Provider) fetchAndCache(ctx context.Context, symbol string, tf model.TimeframeSpec) model.SeriesResult {
	result := p.fetchWithRetries(ctx, symbol, tf)

	p.cache.Put(ctx, symbol, tf.Interval, store.Entry{
		Series:    result.Series,
		Absent:    result.Status != model.StatusOK,
		FetchedAt: time.Now(),
	})
	return result
}

// fetchWithRetries calls the source up to 1+maxRetries times with a
// fixed pause between attempts. Empty payloads, payloads without a
// close-equivalent field and transport errors are treated identically.
func (p *Provider) fetchWithRetries(ctx context.Context, symbol string, tf model.TimeframeSpec) model.SeriesResult {
	var lastErr error
	status := model.StatusNoData

	for attempt := 0; attempt <= p.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return model.SeriesResult{Status: model.StatusError, Err: ctx.Err()}
			case <-time.After(p.retryPause):
			}
		}

		rows, err := p.source.GetBars(ctx, symbol, tf.Interval, tf.Lookback)
		if err != nil {
			lastErr = err
			status = model.StatusError
			p.logger.Warn().Err(err).
				Str("symbol", symbol).
				Str("interval", tf.Interval).
				Int("attempt", attempt+1).
				Msg("source fetch failed")
			continue
		}

		series := normalize(rows)
		if series.Empty() {
			status = model.StatusNoData
			p.logger.Warn().
				Str("symbol", symbol).
				Str("interval", tf.Interval).
				Int("attempt", attempt+1).
				Msg("source returned no usable bars")
			continue
		}

		p.logger.Debug().
			Str("symbol", symbol).
			Str("interval", tf.Interval).
			Int("bars", series.Len()).
			Msg("series fetched")
		return model.SeriesResult{Series: series, Status: model.StatusOK}
	}

	return model.SeriesResult{Status: status, Err: lastErr}
}
