// Package scheduler triggers scheduled scrape runs on a fixed interval.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/haberhub/scraper/internal/logger"
)

// Trigger is the scheduled run entry point.
type Trigger interface {
	RunScheduled(ctx context.Context) error
}

// Scheduler fires the scheduled scrape path on an interval via cron.
type Scheduler struct {
	cron     *cron.Cron
	trigger  Trigger
	interval time.Duration
	log      logger.Interface
	ctx      context.Context
}

// New creates a scheduler that fires every interval.
func New(ctx context.Context, trigger Trigger, interval time.Duration, log logger.Interface) *Scheduler {
	return &Scheduler{
		cron:     cron.New(),
		trigger:  trigger,
		interval: interval,
		log:      log.WithComponent("scheduler"),
		ctx:      ctx,
	}
}

// Start registers the interval entry and starts the cron loop. The entry
// runs in cron's own goroutine; a failed run is logged and the next tick
// tries again.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		return fmt.Errorf("invalid scheduler interval: %s", s.interval)
	}

	spec := fmt.Sprintf("@every %s", s.interval)

	_, err := s.cron.AddFunc(spec, func() {
		s.log.Info("Cron tick, starting scheduled run")
		if runErr := s.trigger.RunScheduled(s.ctx); runErr != nil {
			s.log.Error("Scheduled run failed", "error", runErr)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to register cron entry: %w", err)
	}

	s.cron.Start()
	s.log.Info("Scheduler started", "interval", s.interval)
	return nil
}

// Stop stops the cron loop and waits for a running entry to finish.
func (s *Scheduler) Stop() {
	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.log.Info("Scheduler stopped")
}
