package usecases

import (
	"context"
	"time"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

type UpdateAssistanceCommand struct {
	AssistanceID uint
	Description  string
	AdminNotes   string
	Urgency      string
}

type UpdateAssistanceResult struct {
	AssistanceID uint
	UpdatedAt    time.Time
}

// UpdateAssistanceUseCase edits the admin-owned fields. It never touches the
// status; that goes through ChangeStatus.
type UpdateAssistanceUseCase struct {
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	txManager      TransactionManager
	logger         logger.Interface
}

func NewUpdateAssistanceUseCase(
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	txManager TransactionManager,
	logger logger.Interface,
) *UpdateAssistanceUseCase {
	return &UpdateAssistanceUseCase{
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *UpdateAssistanceUseCase) Execute(ctx context.Context, cmd UpdateAssistanceCommand) (*UpdateAssistanceResult, error) {
	urgency, err := vo.NewUrgency(cmd.Urgency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	resolved, err := uc.assistanceRepo.GetByID(ctx, cmd.AssistanceID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	now := time.Now()
	if err := resolved.UpdateDetails(cmd.Description, cmd.AdminNotes, urgency, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.assistanceRepo.Update(txCtx, resolved); err != nil {
			return err
		}

		entry, err := assistance.NewActivityLogEntry(
			resolved.ID(),
			vo.ActorAdmin,
			"request details updated by the administrator",
			now,
		)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to update assistance",
			"assistance_id", cmd.AssistanceID,
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	return &UpdateAssistanceResult{
		AssistanceID: resolved.ID(),
		UpdatedAt:    resolved.UpdatedAt(),
	}, nil
}
