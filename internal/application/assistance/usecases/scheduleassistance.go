package usecases

import (
	"context"
	"fmt"
	"time"

	"zelador/internal/application/assistance/dto"
	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

type ScheduleAssistanceCommand struct {
	TokenValue string
	Datetime   time.Time
	// RescheduleReason is recorded when the request was already scheduled.
	RescheduleReason string
}

// ScheduleAssistanceUseCase handles the supplier setting or replacing the
// intervention datetime. The scheduling link stays active so the supplier
// can reschedule; a validation link is issued on the first schedule.
type ScheduleAssistanceUseCase struct {
	gate           *TokenGate
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	tokenGen       TokenGenerator
	txManager      TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewScheduleAssistanceUseCase(
	gate *TokenGate,
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	tokenGen TokenGenerator,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *ScheduleAssistanceUseCase {
	return &ScheduleAssistanceUseCase{
		gate:           gate,
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		tokenGen:       tokenGen,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *ScheduleAssistanceUseCase) Execute(ctx context.Context, cmd ScheduleAssistanceCommand) (*dto.SupplierViewDTO, error) {
	resolved, _, err := uc.gate.Resolve(ctx, cmd.TokenValue, vo.ActionSchedule)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	rescheduled := resolved.Status().IsScheduled()

	if err := resolved.Schedule(cmd.Datetime, cmd.RescheduleReason, now); err != nil {
		if assistance.IsInvalidTransition(err) {
			return nil, mapDomainError(err)
		}
		return nil, errors.NewValidationError(err.Error())
	}

	var issuedValidation *assistance.Token
	if resolved.TokenFor(vo.PurposeValidation) == nil {
		value, err := uc.tokenGen.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate validation token: %w", err)
		}
		issuedValidation, _, err = resolved.IssueToken(vo.PurposeValidation, value, now)
		if err != nil {
			return nil, err
		}
	}

	description := fmt.Sprintf("supplier scheduled the intervention for %s",
		cmd.Datetime.UTC().Format(time.RFC3339))
	if rescheduled {
		description = fmt.Sprintf("supplier rescheduled the intervention to %s",
			cmd.Datetime.UTC().Format(time.RFC3339))
		if len(cmd.RescheduleReason) > 0 {
			description += ": " + cmd.RescheduleReason
		}
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.assistanceRepo.Update(txCtx, resolved); err != nil {
			return err
		}
		if issuedValidation != nil {
			if err := uc.assistanceRepo.SaveToken(txCtx, issuedValidation); err != nil {
				return err
			}
		}

		entry, err := assistance.NewActivityLogEntry(resolved.ID(), vo.ActorSupplier, description, now)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist schedule",
			"assistance_id", resolved.ID(),
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	uc.logger.Infow("assistance scheduled",
		"assistance_id", resolved.ID(),
		"scheduled_at", cmd.Datetime.UTC(),
		"rescheduled", rescheduled,
	)

	if err := uc.notifier.RequestScheduled(ctx, resolved, rescheduled); err != nil {
		uc.logger.Warnw("failed to send schedule notification",
			"assistance_id", resolved.ID(),
			"error", err,
		)
	}

	return dto.ToSupplierViewDTO(resolved), nil
}
