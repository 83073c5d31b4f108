package usecases

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/domain/catalog"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
)

type ReassignAssistanceCommand struct {
	AssistanceID  uint
	NewSupplierID uint
}

type ReassignAssistanceResult struct {
	AssistanceID     uint
	Status           string
	SupplierID       uint
	InteractionToken string
}

// ReassignAssistanceUseCase is the reassign escape hatch: a rejected request
// goes back to pendente_resposta under a new supplier. Every old token is
// revoked so the previous supplier's links stop resolving at once, and a
// fresh token set is issued.
type ReassignAssistanceUseCase struct {
	assistanceRepo assistance.Repository
	supplierRepo   catalog.SupplierRepository
	activityRepo   assistance.ActivityLogRepository
	tokenGen       TokenGenerator
	txManager      TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewReassignAssistanceUseCase(
	assistanceRepo assistance.Repository,
	supplierRepo catalog.SupplierRepository,
	activityRepo assistance.ActivityLogRepository,
	tokenGen TokenGenerator,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *ReassignAssistanceUseCase {
	return &ReassignAssistanceUseCase{
		assistanceRepo: assistanceRepo,
		supplierRepo:   supplierRepo,
		activityRepo:   activityRepo,
		tokenGen:       tokenGen,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *ReassignAssistanceUseCase) Execute(ctx context.Context, cmd ReassignAssistanceCommand) (*ReassignAssistanceResult, error) {
	supplier, err := uc.supplierRepo.GetByID(ctx, cmd.NewSupplierID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewNotFoundError("supplier not found")
		}
		return nil, err
	}
	if !supplier.Active() {
		return nil, errors.NewValidationError("supplier is deactivated")
	}

	resolved, err := uc.assistanceRepo.GetByID(ctx, cmd.AssistanceID)
	if err != nil {
		return nil, mapDomainError(err)
	}

	now := time.Now()
	previousSupplierID := resolved.SupplierID()

	if err := resolved.ReassignTo(cmd.NewSupplierID, now); err != nil {
		if assistance.IsInvalidTransition(err) {
			return nil, mapDomainError(err)
		}
		return nil, errors.NewValidationError(err.Error())
	}

	revoked := resolved.RevokeAllTokens(now)

	var interactionToken *assistance.Token
	issued := make([]*assistance.Token, 0, 2)
	for _, purpose := range []vo.TokenPurpose{vo.PurposeInteraction, vo.PurposeAcceptance} {
		value, err := uc.tokenGen.Generate()
		if err != nil {
			return nil, fmt.Errorf("generate %s token: %w", purpose, err)
		}
		token, _, err := resolved.IssueToken(purpose, value, now)
		if err != nil {
			return nil, err
		}
		issued = append(issued, token)
		if purpose == vo.PurposeInteraction {
			interactionToken = token
		}
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
		for _, t := range issued {
			if err := uc.assistanceRepo.SaveToken(txCtx, t); err != nil {
				return err
			}
		}

		entry, err := assistance.NewActivityLogEntry(
			resolved.ID(),
			vo.ActorAdmin,
			fmt.Sprintf("request reassigned from supplier %d to supplier %d", previousSupplierID, cmd.NewSupplierID),
			now,
		)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to reassign assistance",
			"assistance_id", cmd.AssistanceID,
			"new_supplier_id", cmd.NewSupplierID,
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	uc.logger.Infow("assistance reassigned",
		"assistance_id", resolved.ID(),
		"previous_supplier_id", previousSupplierID,
		"new_supplier_id", cmd.NewSupplierID,
	)

	if err := uc.notifier.RequestReassigned(ctx, resolved); err != nil {
		uc.logger.Warnw("failed to notify the new supplier",
			"assistance_id", resolved.ID(),
			"error", err,
		)
	}

	return &ReassignAssistanceResult{
		AssistanceID:     resolved.ID(),
		Status:           resolved.Status().String(),
		SupplierID:       resolved.SupplierID(),
		InteractionToken: interactionToken.Value(),
	}, nil
}
