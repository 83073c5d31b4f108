package usecases

import (
	"context"
	"time"

	"zelador/internal/application/assistance/dto"
	"zelador/internal/domain/assistance"
	"zelador/internal/shared/logger"
)

type GetAssistanceQuery struct {
	AssistanceID uint
}

type GetAssistanceUseCase struct {
	assistanceRepo assistance.Repository
	logger         logger.Interface
}

func NewGetAssistanceUseCase(assistanceRepo assistance.Repository, logger logger.Interface) *GetAssistanceUseCase {
	return &GetAssistanceUseCase{
		assistanceRepo: assistanceRepo,
		logger:         logger,
	}
}

func (uc *GetAssistanceUseCase) Execute(ctx context.Context, query GetAssistanceQuery) (*dto.AssistanceDTO, error) {
	resolved, err := uc.assistanceRepo.GetByID(ctx, query.AssistanceID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	photos, err := uc.assistanceRepo.FindPhotosByAssistanceID(ctx, query.AssistanceID)
	if err != nil {
		uc.logger.Errorw("failed to load photos", "assistance_id", query.AssistanceID, "error", err)
		return nil, err
	}

	result := dto.ToAssistanceDTO(resolved, time.Now())
	result.Photos = dto.ToPhotoDTOs(photos)
	return result, nil
}
