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

type RegenerateTokenCommand struct {
	AssistanceID uint
	Purpose      string
}

type RegenerateTokenResult struct {
	AssistanceID uint
	Purpose      string
	Value        string
	IssuedAt     time.Time
}

// RegenerateTokenUseCase invalidates and replaces one capability token. The
// old value stops resolving immediately; there is no grace period.
type RegenerateTokenUseCase struct {
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	tokenGen       TokenGenerator
	txManager      TransactionManager
	logger         logger.Interface
}

func NewRegenerateTokenUseCase(
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	tokenGen TokenGenerator,
	txManager TransactionManager,
	logger logger.Interface,
) *RegenerateTokenUseCase {
	return &RegenerateTokenUseCase{
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		tokenGen:       tokenGen,
		txManager:      txManager,
		logger:         logger,
	}
}

func (uc *RegenerateTokenUseCase) Execute(ctx context.Context, cmd RegenerateTokenCommand) (*RegenerateTokenResult, error) {
	purpose, err := vo.NewTokenPurpose(cmd.Purpose)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	resolved, err := uc.assistanceRepo.GetByID(ctx, cmd.AssistanceID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	if resolved.Status().IsTerminal() && purpose != vo.PurposeInteraction {
		return nil, errors.NewValidationError(
			fmt.Sprintf("cannot issue a %s token for a closed request", purpose))
	}

	value, err := uc.tokenGen.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate %s token: %w", purpose, err)
	}

	now := time.Now()
	issued, replaced, err := resolved.IssueToken(purpose, value, now)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if replaced != nil {
			if err := uc.assistanceRepo.UpdateToken(txCtx, replaced); err != nil {
				return err
			}
		}
		if err := uc.assistanceRepo.SaveToken(txCtx, issued); err != nil {
			return err
		}

		entry, err := assistance.NewActivityLogEntry(
			resolved.ID(),
			vo.ActorAdmin,
			fmt.Sprintf("administrator regenerated the %s token", purpose),
			now,
		)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to regenerate token",
			"assistance_id", cmd.AssistanceID,
			"purpose", cmd.Purpose,
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	uc.logger.Infow("token regenerated",
		"assistance_id", resolved.ID(),
		"purpose", purpose.String(),
	)

	return &RegenerateTokenResult{
		AssistanceID: resolved.ID(),
		Purpose:      purpose.String(),
		Value:        issued.Value(),
		IssuedAt:     issued.IssuedAt(),
	}, nil
}
