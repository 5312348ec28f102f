// Package scheduler re-runs the confluence scan on a cron schedule,
// keeping the latest snapshot warm for the HTTP surface and feeding
// the alert notifier.
package scheduler

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"fxconfluence/internal/confluence"
	"fxconfluence/internal/model"
	"fxconfluence/internal/notifier"
)

// Snapshot is the result of one completed scan.
type Snapshot struct {
	Records []model.ConfluenceRecord
	At      time.Time
}

// Scheduler owns the cron loop and the latest snapshot.
type Scheduler struct {
	cron         *cron.Cron
	orchestrator *confluence.Orchestrator
	telegram     *notifier.Telegram // nil when alerts are not configured
	ctx          context.Context

	mu     sync.RWMutex
	latest *Snapshot
	logger zerolog.Logger
}

// New creates a scheduler; telegram may be nil.
func New(ctx context.Context, orch *confluence.Orchestrator, telegram *notifier.Telegram) *Scheduler {
	return &Scheduler{
		cron:         cron.New(cron.WithSeconds()),
		orchestrator: orch,
		telegram:     telegram,
		ctx:          ctx,
		logger:       log.With().Str("component", "scheduler").Logger(),
	}
}

// Register adds the scan job under the given cron spec.
func (s *Scheduler) Register(scanCron string) error {
	if _, err := s.cron.AddFunc(scanCron, s.scanTask); err != nil {
		return fmt.Errorf("register scan task: %w", err)
	}
	return nil
}

// Start starts the cron loop.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info().Msg("scheduler started")
}

// Stop stops the cron loop gracefully.
func (s *Scheduler) Stop() {
	s.cron.Stop()
	s.logger.Info().Msg("scheduler stopped")
}

// RunNow executes a scan immediately (startup warm-up / manual
// trigger) and returns the snapshot.
func (s *Scheduler) RunNow() *Snapshot {
	return s.scan()
}

// Latest returns the most recent snapshot, or nil before the first
// scan completes.
func (s *Scheduler) Latest() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest
}

func (s *Scheduler) scanTask() {
	s.scan()
}

func (s *Scheduler) scan() *Snapshot {
	started := time.Now()
	records := s.orchestrator.Run(s.ctx)
	snap := &Snapshot{Records: records, At: time.Now()}

	s.mu.Lock()
	s.latest = snap
	s.mu.Unlock()

	s.logger.Info().
		Int("instruments", len(records)).
		Dur("took", time.Since(started)).
		Msg("scan complete")

	if s.telegram != nil {
		s.telegram.NotifyStrong(s.ctx, records)
	}
	return snap
}
