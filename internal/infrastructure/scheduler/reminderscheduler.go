// Package scheduler drives the periodic reminder and escalation sweep.
package scheduler

import (
	"context"
	"time"

	"zelador/internal/application/reminder"
	"zelador/internal/shared/logger"
)

// ReminderProcessor is the sweep entry point. Run never fails as a whole;
// per-item failures are reported in the stats.
type ReminderProcessor interface {
	Run(ctx context.Context, now time.Time) reminder.RunStats
}

// ReminderScheduler runs the reminder sweep on a fixed interval.
type ReminderScheduler struct {
	processor ReminderProcessor
	logger    logger.Interface
	stopChan  chan struct{}
	interval  time.Duration
}

func NewReminderScheduler(
	processor ReminderProcessor,
	interval time.Duration,
	logger logger.Interface,
) *ReminderScheduler {
	return &ReminderScheduler{
		processor: processor,
		logger:    logger,
		stopChan:  make(chan struct{}),
		interval:  interval,
	}
}

// Start runs the sweep loop until the context is cancelled or Stop is called.
// The first sweep runs immediately.
func (s *ReminderScheduler) Start(ctx context.Context) {
	s.logger.Infow("starting reminder scheduler", "interval", s.interval)

	s.runSweep(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Infow("reminder scheduler stopped due to context cancellation")
			return
		case <-s.stopChan:
			s.logger.Infow("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.runSweep(ctx)
		}
	}
}

// Stop stops the scheduler.
func (s *ReminderScheduler) Stop() {
	close(s.stopChan)
}

func (s *ReminderScheduler) runSweep(ctx context.Context) {
	s.logger.Debugw("reminder sweep started")

	stats := s.processor.Run(ctx, time.Now().UTC())

	s.logger.Infow("reminder sweep finished",
		"same_day_reminders", stats.SameDayReminders,
		"follow_ups", stats.FollowUps,
		"escalations", stats.Escalations,
		"failures", stats.Failures,
	)
}
