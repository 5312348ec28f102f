package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const redisKeyPrefix = "series:"

// Redis is a Redis-backed store. Any Redis failure is logged and
// reported as a miss so cache plumbing can never fail a scan.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
	logger zerolog.Logger
}

// NewRedis connects to the given address and verifies connectivity.
// A failed ping is not fatal; the store simply starts degraded.
func NewRedis(addr string, ttl time.Duration) *Redis {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	logger := log.With().Str("component", "series_store").Logger()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn().Err(err).Str("addr", addr).Msg("Redis unreachable, store starts degraded")
	} else {
		logger.Info().Str("addr", addr).Msg("Redis connected")
	}

	return &Redis{client: client, ttl: ttl, logger: logger}
}

// Get returns the live entry for (symbol, interval), if any.
func (r *Redis) Get(ctx context.Context, symbol, interval string) (Entry, bool) {
	data, err := r.client.Get(ctx, redisKeyPrefix+Key(symbol, interval)).Bytes()
	if err != nil {
		if err != redis.Nil {
			r.logger.Warn().Err(err).Msg("Redis get failed, treating as miss")
		}
		return Entry{}, false
	}
	var e Entry
	if err := json.Unmarshal(data, &e); err != nil {
		r.logger.Warn().Err(err).Msg("corrupt cache entry, treating as miss")
		return Entry{}, false
	}
	return e, true
}

// Put stores the entry with the configured TTL. Expiry is delegated
// to Redis instead of checking FetchedAt on read.
func (r *Redis) Put(ctx context.Context, symbol, interval string, e Entry) {
	data, err := json.Marshal(e)
	if err != nil {
		r.logger.Warn().Err(err).Msg("marshal cache entry failed")
		return
	}
	if err := r.client.Set(ctx, redisKeyPrefix+Key(symbol, interval), data, r.ttl).Err(); err != nil {
		r.logger.Warn().Err(err).Msg("Redis set failed")
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error {
	return r.client.Close()
}
