package usecases

import (
	"context"

	"zelador/internal/application/assistance/dto"
	"zelador/internal/domain/assistance"
	"zelador/internal/shared/logger"
)

type ListActivityLogQuery struct {
	AssistanceID uint
}

type ListActivityLogUseCase struct {
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	logger         logger.Interface
}

func NewListActivityLogUseCase(
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	logger logger.Interface,
) *ListActivityLogUseCase {
	return &ListActivityLogUseCase{
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		logger:         logger,
	}
}

func (uc *ListActivityLogUseCase) Execute(ctx context.Context, query ListActivityLogQuery) ([]dto.ActivityLogEntryDTO, error) {
	// Resolve the request first so a missing id reports not-found instead of
	// an empty log.
	if _, err := uc.assistanceRepo.GetByID(ctx, query.AssistanceID); err != nil {
		return nil, mapDomainError(err)
	}

	entries, err := uc.activityRepo.FindByAssistanceID(ctx, query.AssistanceID)
	if err != nil {
		uc.logger.Errorw("failed to load activity log", "assistance_id", query.AssistanceID, "error", err)
		return nil, err
	}

	return dto.ToActivityLogEntryDTOs(entries), nil
}
