package provider

import (
	"context"
	"time"
)

// RawBar is one row as delivered by a data source, before
// normalization. Close and AdjClose are pointers because sources can
// omit either; bars with neither are dropped during normalization.
type RawBar struct {
	Time     time.Time
	Open     float64
	High     float64
	Low      float64
	Close    *float64
	AdjClose *float64
	Volume   int64
}

// Source is the capability the provider consumes: fetch bars for a
// (symbol, interval) pair. Implementations must return an empty slice
// rather than fail when asked for an unsupported pair.
type Source interface {
	GetBars(ctx context.Context, symbol, interval string, outputsize int) ([]RawBar, error)
}
