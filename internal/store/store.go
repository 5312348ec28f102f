package store

import (
	"context"
	"time"

	"fxconfluence/internal/model"
)

// Entry is one cached fetch outcome. Failures are cached too, as
// absent markers, so a flapping source is not hammered on every scan.
type Entry struct {
	Series    model.Series `json:"series"`
	Absent    bool         `json:"absent"`
	FetchedAt time.Time    `json:"fetched_at"`
}

// Store caches series keyed by (symbol, interval). Implementations
// must be safe for concurrent use and must treat expired entries as
// misses.
type Store interface {
	Get(ctx context.Context, symbol, interval string) (Entry, bool)
	Put(ctx context.Context, symbol, interval string, e Entry)
}

// Key builds the canonical cache key for a (symbol, interval) pair.
func Key(symbol, interval string) string {
	return symbol + "|" + interval
}
