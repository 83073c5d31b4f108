package usecases

import (
	"context"
	"time"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/logger"
)

type CancelAssistanceCommand struct {
	AssistanceID uint
	Notes        string
}

type CancelAssistanceResult struct {
	AssistanceID uint
	Status       string
	ClosedAt     *time.Time
}

// CancelAssistanceUseCase is the admin cancel escape hatch: any open request
// can be closed regardless of the transition table. Supplier action links
// are revoked; the view link keeps resolving.
type CancelAssistanceUseCase struct {
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	txManager      TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewCancelAssistanceUseCase(
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *CancelAssistanceUseCase {
	return &CancelAssistanceUseCase{
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *CancelAssistanceUseCase) Execute(ctx context.Context, cmd CancelAssistanceCommand) (*CancelAssistanceResult, error) {
	resolved, err := uc.assistanceRepo.GetByID(ctx, cmd.AssistanceID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	now := time.Now()
	if err := resolved.CancelByAdmin(now); err != nil {
		return nil, mapDomainError(err)
	}

	revoked := make([]*assistance.Token, 0, 3)
	for _, purpose := range []vo.TokenPurpose{vo.PurposeAcceptance, vo.PurposeScheduling, vo.PurposeValidation} {
		if t := resolved.TokenFor(purpose); t != nil {
			t.Consume(now)
			revoked = append(revoked, t)
		}
	}

	description := "administrator cancelled the request"
	if len(cmd.Notes) > 0 {
		description += ": " + cmd.Notes
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.assistanceRepo.Update(txCtx, resolved); err != nil {
			return err
		}
		for _, t := range revoked {
			if err := uc.assistanceRepo.UpdateToken(txCtx, t); err != nil {
				return err
			}
		}

		entry, err := assistance.NewActivityLogEntry(resolved.ID(), vo.ActorAdmin, description, now)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to cancel assistance",
			"assistance_id", cmd.AssistanceID,
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	uc.logger.Infow("assistance cancelled", "assistance_id", resolved.ID())

	if err := uc.notifier.RequestCancelled(ctx, resolved); err != nil {
		uc.logger.Warnw("failed to send cancellation notification",
			"assistance_id", resolved.ID(),
			"error", err,
		)
	}

	return &CancelAssistanceResult{
		AssistanceID: resolved.ID(),
		Status:       resolved.Status().String(),
		ClosedAt:     resolved.ClosedAt(),
	}, nil
}
