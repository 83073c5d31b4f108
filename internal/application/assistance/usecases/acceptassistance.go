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

type AcceptAssistanceCommand struct {
	TokenValue string
	// ScheduleDatetime, when present, accepts and schedules in one step.
	ScheduleDatetime *time.Time
}

// AcceptAssistanceUseCase handles the supplier accepting a request through
// the acceptance link, optionally supplying the intervention datetime at the
// same time.
type AcceptAssistanceUseCase struct {
	gate           *TokenGate
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	tokenGen       TokenGenerator
	txManager      TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewAcceptAssistanceUseCase(
	gate *TokenGate,
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	tokenGen TokenGenerator,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *AcceptAssistanceUseCase {
	return &AcceptAssistanceUseCase{
		gate:           gate,
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		tokenGen:       tokenGen,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *AcceptAssistanceUseCase) Execute(ctx context.Context, cmd AcceptAssistanceCommand) (*dto.SupplierViewDTO, error) {
	resolved, token, err := uc.gate.Resolve(ctx, cmd.TokenValue, vo.ActionAccept)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	scheduled := false

	if err := resolved.Accept(now); err != nil {
		return nil, mapDomainError(err)
	}

	if cmd.ScheduleDatetime != nil {
		if err := resolved.Schedule(*cmd.ScheduleDatetime, "", now); err != nil {
			if assistance.IsInvalidTransition(err) {
				return nil, mapDomainError(err)
			}
			return nil, errors.NewValidationError(err.Error())
		}
		scheduled = true
	}

	// The acceptance link is single-use; the follow-up links are issued now.
	token.Consume(now)

	purposes := []vo.TokenPurpose{vo.PurposeScheduling}
	if scheduled {
		purposes = append(purposes, vo.PurposeValidation)
	}

	issuedTokens := make([]*assistance.Token, 0, len(purposes))
	for _, purpose := range purposes {
		value, err := uc.tokenGen.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate %s token: %w", purpose, err)
		}
		issued, _, err := resolved.IssueToken(purpose, value, now)
		if err != nil {
			return nil, err
		}
		issuedTokens = append(issuedTokens, issued)
	}

	description := "supplier accepted the request"
	if scheduled {
		description = fmt.Sprintf("supplier accepted the request and scheduled it for %s",
			cmd.ScheduleDatetime.UTC().Format(time.RFC3339))
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.assistanceRepo.Update(txCtx, resolved); err != nil {
			return err
		}
		if err := uc.assistanceRepo.UpdateToken(txCtx, token); err != nil {
			return err
		}
		for _, issued := range issuedTokens {
			if err := uc.assistanceRepo.SaveToken(txCtx, issued); err != nil {
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
		uc.logger.Errorw("failed to persist acceptance",
			"assistance_id", resolved.ID(),
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	uc.logger.Infow("assistance accepted",
		"assistance_id", resolved.ID(),
		"status", resolved.Status().String(),
	)

	var notifyErr error
	if scheduled {
		notifyErr = uc.notifier.RequestScheduled(ctx, resolved, false)
	} else {
		notifyErr = uc.notifier.RequestAccepted(ctx, resolved)
	}
	if notifyErr != nil {
		uc.logger.Warnw("failed to send acceptance notification",
			"assistance_id", resolved.ID(),
			"error", notifyErr,
		)
	}

	return dto.ToSupplierViewDTO(resolved), nil
}
