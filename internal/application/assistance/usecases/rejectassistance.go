package usecases

import (
	"context"
	"time"

	"zelador/internal/application/assistance/dto"
	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

type RejectAssistanceCommand struct {
	TokenValue string
	Reason     string
}

// RejectAssistanceUseCase handles the supplier declining a request. The
// reason is mandatory; it is what the administrators see when deciding how
// to reassign.
type RejectAssistanceUseCase struct {
	gate           *TokenGate
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	txManager      TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewRejectAssistanceUseCase(
	gate *TokenGate,
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *RejectAssistanceUseCase {
	return &RejectAssistanceUseCase{
		gate:           gate,
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *RejectAssistanceUseCase) Execute(ctx context.Context, cmd RejectAssistanceCommand) (*dto.SupplierViewDTO, error) {
	if len(cmd.Reason) == 0 {
		return nil, errors.NewValidationError("rejection reason is required")
	}

	resolved, token, err := uc.gate.Resolve(ctx, cmd.TokenValue, vo.ActionReject)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := resolved.Reject(cmd.Reason, now); err != nil {
		if assistance.IsInvalidTransition(err) {
			return nil, mapDomainError(err)
		}
		return nil, errors.NewValidationError(err.Error())
	}

	// The acceptance link is spent; the view link keeps working so the
	// supplier can still see the outcome.
	token.Consume(now)

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.assistanceRepo.Update(txCtx, resolved); err != nil {
			return err
		}
		if err := uc.assistanceRepo.UpdateToken(txCtx, token); err != nil {
			return err
		}

		entry, err := assistance.NewActivityLogEntry(
			resolved.ID(),
			vo.ActorSupplier,
			"supplier rejected the request: "+cmd.Reason,
			now,
		)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist rejection",
			"assistance_id", resolved.ID(),
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	uc.logger.Infow("assistance rejected",
		"assistance_id", resolved.ID(),
		"reason", cmd.Reason,
	)

	if err := uc.notifier.RequestRejected(ctx, resolved); err != nil {
		uc.logger.Warnw("failed to send rejection notification",
			"assistance_id", resolved.ID(),
			"error", err,
		)
	}

	return dto.ToSupplierViewDTO(resolved), nil
}
