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

// TransactionManager runs a function inside one database transaction. The
// status, timestamp and token rows that change together are written through
// it so no partial transition is ever persisted.
type TransactionManager interface {
	RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}

type CreateAssistanceCommand struct {
	BuildingID         uint
	SupplierID         uint
	InterventionTypeID *uint
	Urgency            string
	Description        string
	AdminNotes         string
}

type CreateAssistanceResult struct {
	AssistanceID     uint
	Status           string
	InteractionToken string
	OpenedAt         time.Time
}

type CreateAssistanceUseCase struct {
	assistanceRepo assistance.Repository
	buildingRepo   catalog.BuildingRepository
	supplierRepo   catalog.SupplierRepository
	typeRepo       catalog.InterventionTypeRepository
	activityRepo   assistance.ActivityLogRepository
	tokenGen       TokenGenerator
	txManager      TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewCreateAssistanceUseCase(
	assistanceRepo assistance.Repository,
	buildingRepo catalog.BuildingRepository,
	supplierRepo catalog.SupplierRepository,
	typeRepo catalog.InterventionTypeRepository,
	activityRepo assistance.ActivityLogRepository,
	tokenGen TokenGenerator,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *CreateAssistanceUseCase {
	return &CreateAssistanceUseCase{
		assistanceRepo: assistanceRepo,
		buildingRepo:   buildingRepo,
		supplierRepo:   supplierRepo,
		typeRepo:       typeRepo,
		activityRepo:   activityRepo,
		tokenGen:       tokenGen,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *CreateAssistanceUseCase) Execute(ctx context.Context, cmd CreateAssistanceCommand) (*CreateAssistanceResult, error) {
	uc.logger.Infow("executing create assistance use case",
		"building_id", cmd.BuildingID,
		"supplier_id", cmd.SupplierID,
	)

	urgency, err := vo.NewUrgency(cmd.Urgency)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.validateReferences(ctx, cmd); err != nil {
		return nil, err
	}

	now := time.Now()
	newAssistance, err := assistance.NewAssistance(
		cmd.BuildingID,
		cmd.SupplierID,
		cmd.InterventionTypeID,
		urgency,
		cmd.Description,
		now,
	)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if len(cmd.AdminNotes) > 0 {
		if err := newAssistance.UpdateDetails(cmd.Description, cmd.AdminNotes, urgency, now); err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
	}

	var interactionToken *assistance.Token
	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.assistanceRepo.Save(txCtx, newAssistance); err != nil {
			return err
		}

		// The supplier email carries two links: a view link (interaction)
		// and an accept/reject link (acceptance).
		for _, purpose := range []vo.TokenPurpose{vo.PurposeInteraction, vo.PurposeAcceptance} {
			value, err := uc.tokenGen.Generate()
			if err != nil {
				return fmt.Errorf("generate %s token: %w", purpose, err)
			}
			issued, _, err := newAssistance.IssueToken(purpose, value, now)
			if err != nil {
				return err
			}
			if err := uc.assistanceRepo.SaveToken(txCtx, issued); err != nil {
				return err
			}
			if purpose == vo.PurposeInteraction {
				interactionToken = issued
			}
		}

		entry, err := assistance.NewActivityLogEntry(
			newAssistance.ID(),
			vo.ActorAdmin,
			"assistance request created and sent to the supplier",
			now,
		)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to create assistance", "error", err)
		var appErr *errors.AppError
		if stderrors.As(err, &appErr) {
			return nil, err
		}
		return nil, errors.NewInternalError("failed to create assistance request", err.Error())
	}

	if err := uc.notifier.RequestCreated(ctx, newAssistance); err != nil {
		uc.logger.Warnw("failed to send creation notification",
			"assistance_id", newAssistance.ID(),
			"error", err,
		)
	}

	uc.logger.Infow("assistance created",
		"assistance_id", newAssistance.ID(),
		"status", newAssistance.Status().String(),
	)

	return &CreateAssistanceResult{
		AssistanceID:     newAssistance.ID(),
		Status:           newAssistance.Status().String(),
		InteractionToken: interactionToken.Value(),
		OpenedAt:         newAssistance.OpenedAt(),
	}, nil
}

func (uc *CreateAssistanceUseCase) validateReferences(ctx context.Context, cmd CreateAssistanceCommand) error {
	building, err := uc.buildingRepo.GetByID(ctx, cmd.BuildingID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return errors.NewNotFoundError("building not found")
		}
		return err
	}
	if !building.Active() {
		return errors.NewValidationError("building is deactivated")
	}

	supplier, err := uc.supplierRepo.GetByID(ctx, cmd.SupplierID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return errors.NewNotFoundError("supplier not found")
		}
		return err
	}
	if !supplier.Active() {
		return errors.NewValidationError("supplier is deactivated")
	}

	if cmd.InterventionTypeID != nil {
		if _, err := uc.typeRepo.GetByID(ctx, *cmd.InterventionTypeID); err != nil {
			if stderrors.Is(err, catalog.ErrNotFound) {
				return errors.NewNotFoundError("intervention type not found")
			}
			return err
		}
	}

	return nil
}
