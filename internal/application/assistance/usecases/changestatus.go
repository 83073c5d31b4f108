package usecases

import (
	"context"
	"fmt"
	"time"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

type ChangeStatusCommand struct {
	AssistanceID uint
	NewStatus    string
	Notes        string
	// ScheduledAt is required when moving into agendado without a datetime
	// already on the request.
	ScheduledAt *time.Time
}

type ChangeStatusResult struct {
	AssistanceID uint
	Status       string
	UpdatedAt    time.Time
}

// ChangeStatusUseCase is the generic admin status path. It routes through the
// same transition table as supplier actions; cancel and reassign are the only
// escape hatches and have their own use cases.
type ChangeStatusUseCase struct {
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	txManager      TransactionManager
	logger         logger.Interface
}

func NewChangeStatusUseCase(
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *ChangeStatusUseCase {
	return &ChangeStatusUseCase{
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *ChangeStatusUseCase) Execute(ctx context.Context, cmd ChangeStatusCommand) (*ChangeStatusResult, error) {
	newStatus, err := vo.NewStatus(cmd.NewStatus)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	resolved, err := uc.assistanceRepo.GetByID(ctx, cmd.AssistanceID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	now := time.Now()
	previous := resolved.Status()

	if newStatus.IsScheduled() && cmd.ScheduledAt != nil {
		err = resolved.Schedule(*cmd.ScheduledAt, cmd.Notes, now)
	} else {
		err = resolved.ChangeStatusTo(newStatus, now)
	}
	if err != nil {
		if assistance.IsInvalidTransition(err) {
			return nil, mapDomainError(err)
		}
		return nil, errors.NewValidationError(err.Error())
	}

	if previous == resolved.Status() && !newStatus.IsScheduled() {
		// Same-status change is a no-op; nothing to persist or log.
		return &ChangeStatusResult{
			AssistanceID: resolved.ID(),
			Status:       resolved.Status().String(),
			UpdatedAt:    resolved.UpdatedAt(),
		}, nil
	}

	description := fmt.Sprintf("administrator changed the status from %s to %s", previous, resolved.Status())
	if len(cmd.Notes) > 0 {
		description += ": " + cmd.Notes
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.assistanceRepo.Update(txCtx, resolved); err != nil {
			return err
		}

		entry, err := assistance.NewActivityLogEntry(resolved.ID(), vo.ActorAdmin, description, now)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to change status",
			"assistance_id", cmd.AssistanceID,
			"new_status", cmd.NewStatus,
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	uc.logger.Infow("assistance status changed",
		"assistance_id", resolved.ID(),
		"from", previous.String(),
		"to", resolved.Status().String(),
	)

	return &ChangeStatusResult{
		AssistanceID: resolved.ID(),
		Status:       resolved.Status().String(),
		UpdatedAt:    resolved.UpdatedAt(),
	}, nil
}
