// Package scheduler runs the periodic live score recompute.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/fieldgames/domination/internal/platform/logging"
	"github.com/fieldgames/domination/internal/usecase"
)

// DefaultRefreshInterval is how often live scores are recomputed while a game
// is active.
const DefaultRefreshInterval = 10 * time.Second

type refresher interface {
	RefreshActiveGames(ctx context.Context) (usecase.RefreshSummary, error)
}

// Scheduler fires the live recompute on a fixed interval. A failing pass is
// logged and the next one still fires on schedule.
type Scheduler struct {
	cron      *cron.Cron
	refresher refresher
	interval  time.Duration
	logger    *logging.Logger
}

func New(refresh *usecase.LiveRefreshService, interval time.Duration, logger *logging.Logger) *Scheduler {
	if interval <= 0 {
		interval = DefaultRefreshInterval
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		refresher: refresh,
		interval:  interval,
		logger:    logger,
	}
}

func (s *Scheduler) Start() error {
	spec := fmt.Sprintf("@every %s", s.interval)
	_, err := s.cron.AddFunc(spec, func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("live score refresh tick panicked", "panic", fmt.Sprint(r))
			}
		}()

		if _, err := s.refresher.RefreshActiveGames(context.Background()); err != nil {
			s.logger.Error("live score refresh tick failed", "error", err)
		}
	})
	if err != nil {
		return fmt.Errorf("register refresh job: %w", err)
	}

	s.cron.Start()
	s.logger.Info("live score scheduler started", "interval", s.interval.String())
	return nil
}

// Stop halts the timer and waits for an in-flight tick to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("live score scheduler stopped")
}

// RunNow triggers one recompute pass outside the timer.
func (s *Scheduler) RunNow(ctx context.Context) (usecase.RefreshSummary, error) {
	return s.refresher.RefreshActiveGames(ctx)
}
