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

type PhotoUpload struct {
	Filename string
	Data     []byte
}

type CompleteAssistanceCommand struct {
	TokenValue string
	Photos     []PhotoUpload
}

// CompleteAssistanceUseCase handles the supplier marking the work done.
// Photo evidence is mandatory: uploads are validated and stored before the
// transition, and the aggregate itself refuses to complete without at least
// one photo attached.
type CompleteAssistanceUseCase struct {
	gate           *TokenGate
	assistanceRepo assistance.Repository
	activityRepo   assistance.ActivityLogRepository
	storage        PhotoStorage
	txManager      TransactionManager
	notifier       Notifier
	logger         logger.Interface
}

func NewCompleteAssistanceUseCase(
	gate *TokenGate,
	assistanceRepo assistance.Repository,
	activityRepo assistance.ActivityLogRepository,
	storage PhotoStorage,
	txManager TransactionManager,
	notifier Notifier,
	logger logger.Interface,
) *CompleteAssistanceUseCase {
	return &CompleteAssistanceUseCase{
		gate:           gate,
		assistanceRepo: assistanceRepo,
		activityRepo:   activityRepo,
		storage:        storage,
		txManager:      txManager,
		notifier:       notifier,
		logger:         logger,
	}
}

func (uc *CompleteAssistanceUseCase) Execute(ctx context.Context, cmd CompleteAssistanceCommand) (*dto.SupplierViewDTO, error) {
	if len(cmd.Photos) == 0 {
		return nil, errors.NewValidationError("photo evidence is required to complete the request")
	}

	resolved, token, err := uc.gate.Resolve(ctx, cmd.TokenValue, vo.ActionComplete)
	if err != nil {
		return nil, err
	}

	now := time.Now()

	photos := make([]*assistance.Photo, 0, len(cmd.Photos))
	for _, upload := range cmd.Photos {
		stored, err := uc.storage.Store(ctx, resolved.ID(), upload.Filename, upload.Data)
		if err != nil {
			if errors.IsAppError(err) {
				return nil, err
			}
			uc.logger.Errorw("failed to store photo",
				"assistance_id", resolved.ID(),
				"filename", upload.Filename,
				"error", err,
			)
			return nil, errors.NewExternalServiceError("failed to store photo evidence", err.Error())
		}

		photo, err := assistance.NewPhoto(resolved.ID(), stored.Path, stored.ContentType, stored.SizeBytes, now)
		if err != nil {
			return nil, errors.NewValidationError(err.Error())
		}
		photos = append(photos, photo)
		resolved.AttachPhoto()
	}

	if err := resolved.Complete(now); err != nil {
		if assistance.IsInvalidTransition(err) {
			return nil, mapDomainError(err)
		}
		return nil, errors.NewValidationError(err.Error())
	}

	// The validation link is spent; the scheduling link stops mattering on a
	// closed request.
	token.Consume(now)
	schedulingToken := resolved.TokenFor(vo.PurposeScheduling)
	if schedulingToken != nil {
		schedulingToken.Consume(now)
	}

	err = uc.txManager.RunInTransaction(ctx, func(txCtx context.Context) error {
		if err := uc.assistanceRepo.Update(txCtx, resolved); err != nil {
			return err
		}
		for _, photo := range photos {
			if err := uc.assistanceRepo.SavePhoto(txCtx, photo); err != nil {
				return err
			}
		}
		if err := uc.assistanceRepo.UpdateToken(txCtx, token); err != nil {
			return err
		}
		if schedulingToken != nil {
			if err := uc.assistanceRepo.UpdateToken(txCtx, schedulingToken); err != nil {
				return err
			}
		}

		entry, err := assistance.NewActivityLogEntry(
			resolved.ID(),
			vo.ActorSupplier,
			fmt.Sprintf("supplier completed the work with %d photo(s) of evidence", len(photos)),
			now,
		)
		if err != nil {
			return err
		}
		return uc.activityRepo.Append(txCtx, entry)
	})
	if err != nil {
		uc.logger.Errorw("failed to persist completion",
			"assistance_id", resolved.ID(),
			"error", err,
		)
		return nil, mapDomainError(err)
	}

	uc.logger.Infow("assistance completed",
		"assistance_id", resolved.ID(),
		"photos", len(photos),
	)

	if err := uc.notifier.RequestCompleted(ctx, resolved); err != nil {
		uc.logger.Warnw("failed to send completion notification",
			"assistance_id", resolved.ID(),
			"error", err,
		)
	}

	return dto.ToSupplierViewDTO(resolved), nil
}
