package usecases

import (
	"context"
	stderrors "errors"
	"time"

	"zelador/internal/domain/catalog"
	"zelador/internal/shared/errors"
	"zelador/internal/shared/logger"
	"zelador/internal/shared/mapper"
	"zelador/internal/shared/utils"
)

type CreateInterventionTypeCommand struct {
	Name        string
	Description string
}

type CreateInterventionTypeUseCase struct {
	repo   catalog.InterventionTypeRepository
	logger logger.Interface
}

func NewCreateInterventionTypeUseCase(repo catalog.InterventionTypeRepository, logger logger.Interface) *CreateInterventionTypeUseCase {
	return &CreateInterventionTypeUseCase{repo: repo, logger: logger}
}

func (uc *CreateInterventionTypeUseCase) Execute(ctx context.Context, cmd CreateInterventionTypeCommand) (*InterventionTypeDTO, error) {
	interventionType, err := catalog.NewInterventionType(cmd.Name, cmd.Description, time.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Save(ctx, interventionType); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("an intervention type with this name already exists")
		}
		uc.logger.Errorw("failed to save intervention type", "error", err)
		return nil, errors.NewInternalError("failed to create intervention type", err.Error())
	}

	uc.logger.Infow("intervention type created", "intervention_type_id", interventionType.ID())
	result := ToInterventionTypeDTO(interventionType)
	return &result, nil
}

type UpdateInterventionTypeCommand struct {
	InterventionTypeID uint
	Name               string
	Description        string
	Active             *bool
}

type UpdateInterventionTypeUseCase struct {
	repo   catalog.InterventionTypeRepository
	logger logger.Interface
}

func NewUpdateInterventionTypeUseCase(repo catalog.InterventionTypeRepository, logger logger.Interface) *UpdateInterventionTypeUseCase {
	return &UpdateInterventionTypeUseCase{repo: repo, logger: logger}
}

func (uc *UpdateInterventionTypeUseCase) Execute(ctx context.Context, cmd UpdateInterventionTypeCommand) (*InterventionTypeDTO, error) {
	interventionType, err := uc.repo.GetByID(ctx, cmd.InterventionTypeID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewNotFoundError("intervention type not found")
		}
		return nil, errors.NewInternalError("failed to load intervention type", err.Error())
	}

	now := time.Now()
	if err := interventionType.Update(cmd.Name, cmd.Description, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		if *cmd.Active {
			interventionType.Activate(now)
		} else {
			interventionType.Deactivate(now)
		}
	}

	if err := uc.repo.Update(ctx, interventionType); err != nil {
		uc.logger.Errorw("failed to update intervention type",
			"intervention_type_id", cmd.InterventionTypeID,
			"error", err,
		)
		return nil, errors.NewInternalError("failed to update intervention type", err.Error())
	}

	result := ToInterventionTypeDTO(interventionType)
	return &result, nil
}

type GetInterventionTypeQuery struct {
	InterventionTypeID uint
}

type GetInterventionTypeUseCase struct {
	repo   catalog.InterventionTypeRepository
	logger logger.Interface
}

func NewGetInterventionTypeUseCase(repo catalog.InterventionTypeRepository, logger logger.Interface) *GetInterventionTypeUseCase {
	return &GetInterventionTypeUseCase{repo: repo, logger: logger}
}

func (uc *GetInterventionTypeUseCase) Execute(ctx context.Context, query GetInterventionTypeQuery) (*InterventionTypeDTO, error) {
	interventionType, err := uc.repo.GetByID(ctx, query.InterventionTypeID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewNotFoundError("intervention type not found")
		}
		return nil, errors.NewInternalError("failed to load intervention type", err.Error())
	}

	result := ToInterventionTypeDTO(interventionType)
	return &result, nil
}

type ListInterventionTypesQuery struct {
	ActiveOnly bool
	Search     string
	Page       int
	PageSize   int
}

type ListInterventionTypesResult struct {
	Items    []InterventionTypeDTO
	Total    int64
	Page     int
	PageSize int
}

type ListInterventionTypesUseCase struct {
	repo   catalog.InterventionTypeRepository
	logger logger.Interface
}

func NewListInterventionTypesUseCase(repo catalog.InterventionTypeRepository, logger logger.Interface) *ListInterventionTypesUseCase {
	return &ListInterventionTypesUseCase{repo: repo, logger: logger}
}

func (uc *ListInterventionTypesUseCase) Execute(ctx context.Context, query ListInterventionTypesQuery) (*ListInterventionTypesResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	interventionTypes, total, err := uc.repo.List(ctx, catalog.ListFilter{
		ActiveOnly: query.ActiveOnly,
		Search:     query.Search,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list intervention types", "error", err)
		return nil, errors.NewInternalError("failed to list intervention types", err.Error())
	}

	return &ListInterventionTypesResult{
		Items:    mapper.MapSlice(interventionTypes, ToInterventionTypeDTO),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

type DeleteInterventionTypeCommand struct {
	InterventionTypeID uint
}

type DeleteInterventionTypeUseCase struct {
	repo   catalog.InterventionTypeRepository
	logger logger.Interface
}

func NewDeleteInterventionTypeUseCase(repo catalog.InterventionTypeRepository, logger logger.Interface) *DeleteInterventionTypeUseCase {
	return &DeleteInterventionTypeUseCase{repo: repo, logger: logger}
}

func (uc *DeleteInterventionTypeUseCase) Execute(ctx context.Context, cmd DeleteInterventionTypeCommand) error {
	if err := uc.repo.Delete(ctx, cmd.InterventionTypeID); err != nil {
		switch {
		case stderrors.Is(err, catalog.ErrNotFound):
			return errors.NewNotFoundError("intervention type not found")
		case stderrors.Is(err, catalog.ErrInUse):
			return errors.NewConstraintError(
				"intervention type is referenced by assistance requests",
				"deactivate the intervention type instead of deleting it",
			)
		default:
			uc.logger.Errorw("failed to delete intervention type",
				"intervention_type_id", cmd.InterventionTypeID,
				"error", err,
			)
			return errors.NewInternalError("failed to delete intervention type", err.Error())
		}
	}

	uc.logger.Infow("intervention type deleted", "intervention_type_id", cmd.InterventionTypeID)
	return nil
}
