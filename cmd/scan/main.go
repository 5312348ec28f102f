// One-shot scan: runs the full confluence batch once and prints the
// records, as text or JSON.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fxconfluence/config"
	"fxconfluence/internal/confluence"
	"fxconfluence/internal/indicator"
	"fxconfluence/internal/model"
	"fxconfluence/internal/provider"
	"fxconfluence/internal/provider/twelvedata"
	"fxconfluence/internal/store"
)

func main() {
	asJSON := flag.Bool("json", false, "print records as JSON")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config failed")
	}

	lvl, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr}).Level(lvl)

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("invalid config")
	}

	source := twelvedata.NewClient(twelvedata.ClientOptions{
		APIKey:         cfg.TwelveAPIKey,
		RequestTimeout: cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
		RetryPause:     cfg.RetryPause,
	})
	fetcher := provider.New(source, store.NewMemory(cfg.CacheTTL), provider.Options{
		MaxRetries: cfg.MaxRetries,
		RetryPause: cfg.RetryPause,
	})

	orch := confluence.NewOrchestrator(fetcher, indicator.NewEngine(), cfg.Instruments, cfg.Timeframes, cfg.ScanWorkers)
	records := orch.Run(context.Background())

	if *asJSON {
		flat := make([]model.Flat, len(records))
		for i, rec := range records {
			flat[i] = rec.Flatten()
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(flat); err != nil {
			log.Fatal().Err(err).Msg("encode failed")
		}
		return
	}

	for _, rec := range records {
		fmt.Printf("%-12s %3d%%  %s\n", rec.Pair, rec.Percent, rec.Summary)
		names := make([]string, 0, len(rec.Timeframes))
		for name := range rec.Timeframes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("    %-8s %s\n", name, rec.Timeframes[name].Label())
		}
	}
}
