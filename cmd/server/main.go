package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fxconfluence/config"
	"fxconfluence/internal/confluence"
	"fxconfluence/internal/indicator"
	"fxconfluence/internal/notifier"
	"fxconfluence/internal/provider"
	"fxconfluence/internal/provider/twelvedata"
	"fxconfluence/internal/scheduler"
	"fxconfluence/internal/server"
	"fxconfluence/internal/store"
)

func main() {
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var cache store.Store
	if cfg.RedisAddr != "" {
		cache = store.NewRedis(cfg.RedisAddr, cfg.CacheTTL)
	} else {
		cache = store.NewMemory(cfg.CacheTTL)
	}

	source := twelvedata.NewClient(twelvedata.ClientOptions{
		APIKey:         cfg.TwelveAPIKey,
		RequestTimeout: cfg.RequestTimeout,
		RequestsPerSec: cfg.RequestsPerSec,
		MaxRetries:     cfg.MaxRetries,
		RetryPause:     cfg.RetryPause,
	})
	fetcher := provider.New(source, cache, provider.Options{
		MaxRetries: cfg.MaxRetries,
		RetryPause: cfg.RetryPause,
	})

	orch := confluence.NewOrchestrator(fetcher, indicator.NewEngine(), cfg.Instruments, cfg.Timeframes, cfg.ScanWorkers)

	var telegram *notifier.Telegram
	if cfg.TelegramBotToken != "" && cfg.TelegramChatID != 0 {
		telegram, err = notifier.NewTelegram(cfg.TelegramBotToken, cfg.TelegramChatID, time.Hour)
		if err != nil {
			log.Fatal().Err(err).Msg("telegram setup failed")
		}
	} else {
		log.Info().Msg("telegram alerts disabled")
	}

	sched := scheduler.New(ctx, orch, telegram)
	if cfg.ScanInterval != "" {
		if err := sched.Register(cfg.ScanInterval); err != nil {
			log.Fatal().Err(err).Msg("register scan schedule failed")
		}
		sched.Start()
		defer sched.Stop()

		// Warm the snapshot so the first HTTP request does not pay
		// for a full scan.
		go sched.RunNow()
	}

	srv := server.New(cfg.ListenAddr, sched)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Run()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		log.Info().Str("signal", sig.String()).Msg("shutting down")
	case err := <-errCh:
		if err != nil {
			log.Error().Err(err).Msg("HTTP server failed")
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("shutdown failed")
	}
}
