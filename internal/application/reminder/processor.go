// Package reminder implements the periodic batch that walks open assistance
// requests through time: same-day reminders, follow-ups for overdue
// schedules and alert-level escalation. The processor is stateless; every
// run reads the store fresh, so it tolerates concurrent admin and supplier
// mutations happening mid-scan.
package reminder

import (
	"context"
	"fmt"
	"time"

	"zelador/internal/application/assistance/usecases"
	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/biztime"
	"zelador/internal/shared/logger"
)

// escalationThresholds maps open-age day thresholds to target alert levels.
// Crossing a threshold raises the level by exactly one per run, so a ticket
// that sat unprocessed for weeks still climbs one level at a time.
var escalationThresholds = []struct {
	age   time.Duration
	level int
}{
	{3 * 24 * time.Hour, 1},
	{7 * 24 * time.Hour, 2},
	{14 * 24 * time.Hour, 3},
}

// escalatableStatuses are the statuses the age escalation watches.
var escalatableStatuses = []vo.Status{vo.StatusPendingResponse, vo.StatusScheduled}

// RunStats summarizes one processor run.
type RunStats struct {
	SameDayReminders int
	FollowUps        int
	Escalations      int
	Failures         int
}

type Processor struct {
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	tokenGen       usecases.TokenGenerator
	txManager      usecases.TransactionManager
	notifier       usecases.Notifier
	logger         logger.Interface
}

func NewProcessor(
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	tokenGen usecases.TokenGenerator,
	txManager usecases.TransactionManager,
	notifier usecases.Notifier,
	logger logger.Interface,
) *Processor {
	return &Processor{
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		tokenGen:       tokenGen,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

// Run executes one batch pass. A failure on one ticket is logged and counted
// but never aborts the batch.
func (p *Processor) Run(ctx context.Context, now time.Time) RunStats {
	var stats RunStats

	p.runSameDayReminders(ctx, now, &stats)
	p.runFollowUpReminders(ctx, now, &stats)
	p.runEscalations(ctx, now, &stats)

	p.logger.Infow("reminder run finished",
		"same_day", stats.SameDayReminders,
		"follow_ups", stats.FollowUps,
		"escalations", stats.Escalations,
		"failures", stats.Failures,
	)
	return stats
}

// runSameDayReminders nudges suppliers whose intervention is scheduled for
// today. At most one reminder per ticket per business day: a ticket whose
// last reminder already falls on today's calendar date is skipped, so
// repeated runs within one day send nothing twice.
func (p *Processor) runSameDayReminders(ctx context.Context, now time.Time, stats *RunStats) {
	from := biztime.StartOfDayUTC(now)
	to := biztime.EndOfDayUTC(now)

	items, err := p.assistanceRepo.FindScheduledBetween(ctx, from, to)
	if err != nil {
		p.logger.Errorw("failed to scan today's scheduled requests", "error", err)
		stats.Failures++
		return
	}

	for _, item := range items {
		if !item.Status().IsScheduled() {
			continue
		}
		if sentAt := item.ValidationEmailSentAt(); sentAt != nil && biztime.SameBusinessDay(*sentAt, now) {
			continue
		}

		if err := p.sendSameDayReminder(ctx, item, now); err != nil {
			p.logger.Errorw("failed to send same-day reminder",
				"assistance_id", item.ID(),
				"error", err,
			)
			stats.Failures++
			continue
		}
		stats.SameDayReminders++
	}
}

func (p *Processor) sendSameDayReminder(ctx context.Context, item *assistance.Assistance, now time.Time) error {
	issued, err := p.ensureToken(item, vo.PurposeValidation, now)
	if err != nil {
		return err
	}

	if err := p.notifier.SameDayReminder(ctx, item); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	item.MarkValidationEmailSent(now)

	return p.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if issued != nil {
			if err := p.assistanceRepo.SaveToken(txCtx, issued); err != nil {
				return err
			}
		}
		if err := p.assistanceRepo.Update(txCtx, item); err != nil {
			return err
		}
		entry, err := assistance.NewActivityLogEntry(
			item.ID(), vo.ActorSystem, "same-day reminder sent to the supplier", now)
		if err != nil {
			return err
		}
		return p.activityRepo.Append(txCtx, entry)
	})
}

// runFollowUpReminders chases schedules that came and went without a
// completion. Shares the one-per-business-day guard with the same-day pass.
func (p *Processor) runFollowUpReminders(ctx context.Context, now time.Time, stats *RunStats) {
	items, err := p.assistanceRepo.FindScheduledBefore(ctx, biztime.StartOfDayUTC(now))
	if err != nil {
		p.logger.Errorw("failed to scan overdue scheduled requests", "error", err)
		stats.Failures++
		return
	}

	for _, item := range items {
		if !item.Status().IsScheduled() {
			continue
		}
		if sentAt := item.ValidationEmailSentAt(); sentAt != nil && biztime.SameBusinessDay(*sentAt, now) {
			continue
		}

		if err := p.sendFollowUpReminder(ctx, item, now); err != nil {
			p.logger.Errorw("failed to send follow-up reminder",
				"assistance_id", item.ID(),
				"error", err,
			)
			stats.Failures++
			continue
		}
		stats.FollowUps++
	}
}

func (p *Processor) sendFollowUpReminder(ctx context.Context, item *assistance.Assistance, now time.Time) error {
	issued, err := p.ensureToken(item, vo.PurposeValidation, now)
	if err != nil {
		return err
	}

	if err := p.notifier.FollowUpReminder(ctx, item); err != nil {
		return fmt.Errorf("send reminder: %w", err)
	}

	item.RecordFollowUpReminder(now)

	return p.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if issued != nil {
			if err := p.assistanceRepo.SaveToken(txCtx, issued); err != nil {
				return err
			}
		}
		if err := p.assistanceRepo.Update(txCtx, item); err != nil {
			return err
		}
		entry, err := assistance.NewActivityLogEntry(
			item.ID(), vo.ActorSystem,
			fmt.Sprintf("follow-up reminder %d sent for an overdue schedule", item.ValidationReminderCount()),
			now)
		if err != nil {
			return err
		}
		return p.activityRepo.Append(txCtx, entry)
	})
}

// runEscalations raises the alert level of requests that sit open past the
// age thresholds. The level moves by exactly one per run per ticket and
// never decreases; reaching the maximum fires the critical alert.
func (p *Processor) runEscalations(ctx context.Context, now time.Time, stats *RunStats) {
	items, err := p.assistanceRepo.FindOpenOlderThan(ctx, now.Add(-escalationThresholds[0].age), escalatableStatuses)
	if err != nil {
		p.logger.Errorw("failed to scan requests for escalation", "error", err)
		stats.Failures++
		return
	}

	for _, item := range items {
		target, ok := p.escalationTarget(item, now)
		if !ok {
			continue
		}

		if err := p.escalate(ctx, item, target, now); err != nil {
			p.logger.Errorw("failed to escalate request",
				"assistance_id", item.ID(),
				"target_level", target,
				"error", err,
			)
			stats.Failures++
			continue
		}
		stats.Escalations++
	}
}

// escalationTarget decides whether a request is due for an escalation and
// what the next level is.
func (p *Processor) escalationTarget(item *assistance.Assistance, now time.Time) (int, bool) {
	age := now.Sub(item.OpenedAt())

	crossed := 0
	for _, threshold := range escalationThresholds {
		if age >= threshold.age {
			crossed = threshold.level
		}
	}

	if crossed <= item.AlertLevel() {
		return 0, false
	}
	return item.AlertLevel() + 1, true
}

func (p *Processor) escalate(ctx context.Context, item *assistance.Assistance, target int, now time.Time) error {
	if err := item.EscalateAlert(target, now); err != nil {
		return err
	}

	err := p.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := p.assistanceRepo.Update(txCtx, item); err != nil {
			return err
		}
		entry, err := assistance.NewActivityLogEntry(
			item.ID(), vo.ActorSystem,
			fmt.Sprintf("alert level escalated to %d", target),
			now)
		if err != nil {
			return err
		}
		return p.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		return err
	}

	if err := p.notifier.EscalationAlert(ctx, item, target); err != nil {
		// The escalation itself is already persisted; the alert email is
		// best-effort like every other notification.
		p.logger.Warnw("failed to send escalation alert",
			"assistance_id", item.ID(),
			"level", target,
			"error", err,
		)
	}
	return nil
}

// ensureToken lazily regenerates a missing token needed for a reminder link.
// Returns the newly issued token, or nil when an active one already exists.
func (p *Processor) ensureToken(item *assistance.Assistance, purpose vo.TokenPurpose, now time.Time) (*assistance.Token, error) {
	if item.TokenFor(purpose) != nil {
		return nil, nil
	}

	value, err := p.tokenGen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate %s token: %w", purpose, err)
	}
	issued, _, err := item.IssueToken(purpose, value, now)
	if err != nil {
		return nil, err
	}

	p.logger.Debugw("token lazily regenerated",
		"assistance_id", item.ID(),
		"purpose", purpose.String(),
	)
	return issued, nil
}
