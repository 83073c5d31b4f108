package usecases

import (
	"context"
	stderrors "errors"

	"zelador/internal/domain/assistance"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

type DeleteAssistanceCommand struct {
	AssistanceID uint
}

type DeleteAssistanceResult struct {
	Deleted bool
}

// DeleteAssistanceUseCase removes a request and every dependent row (tokens,
// photos, activity log, email log) in one transaction. Deleting an id that
// no longer exists reports a clean not-found, never a crash, so the
// operation is safe to retry.
type DeleteAssistanceUseCase struct {
	assistanceRepo assistance.Repository
	logger         logger.Interface
}

func NewDeleteAssistanceUseCase(assistanceRepo assistance.Repository, logger logger.Interface) *DeleteAssistanceUseCase {
	return &DeleteAssistanceUseCase{
		assistanceRepo: assistanceRepo,
		logger:         logger,
	}
}

func (uc *DeleteAssistanceUseCase) Execute(ctx context.Context, cmd DeleteAssistanceCommand) (*DeleteAssistanceResult, error) {
	if cmd.AssistanceID == 0 {
		return nil, errors.NewValidationError("assistance ID is required")
	}

	if err := uc.assistanceRepo.DeleteCascade(ctx, cmd.AssistanceID); err != nil {
		if stderrors.Is(err, assistance.ErrNotFound) {
			return nil, errors.NewNotFoundError("assistance request not found")
		}
		uc.logger.Errorw("failed to delete assistance",
			"assistance_id", cmd.AssistanceID,
			"error", err,
		)
		return nil, err
	}

	uc.logger.Infow("assistance deleted", "assistance_id", cmd.AssistanceID)

	return &DeleteAssistanceResult{Deleted: true}, nil
}
