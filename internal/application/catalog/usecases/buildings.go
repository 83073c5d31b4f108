// Package usecases implements the catalog CRUD operations behind the admin
// dashboard. Deletes blocked by existing assistance requests surface a
// constraint error so the caller can offer deactivation instead.
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

type CreateBuildingCommand struct {
	Name      string
	Address   string
	AdminName string
}

type CreateBuildingUseCase struct {
	repo   catalog.BuildingRepository
	logger logger.Interface
}

func NewCreateBuildingUseCase(repo catalog.BuildingRepository, logger logger.Interface) *CreateBuildingUseCase {
	return &CreateBuildingUseCase{repo: repo, logger: logger}
}

func (uc *CreateBuildingUseCase) Execute(ctx context.Context, cmd CreateBuildingCommand) (*BuildingDTO, error) {
	building, err := catalog.NewBuilding(cmd.Name, cmd.Address, cmd.AdminName, time.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Save(ctx, building); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a building with this name already exists")
		}
		uc.logger.Errorw("failed to save building", "error", err)
		return nil, errors.NewInternalError("failed to create building", err.Error())
	}

	uc.logger.Infow("building created", "building_id", building.ID(), "name", building.Name())
	result := ToBuildingDTO(building)
	return &result, nil
}

type UpdateBuildingCommand struct {
	BuildingID uint
	Name       string
	Address    string
	AdminName  string
	// Active toggles the flag when set; nil leaves it unchanged.
	Active *bool
}

type UpdateBuildingUseCase struct {
	repo   catalog.BuildingRepository
	logger logger.Interface
}

func NewUpdateBuildingUseCase(repo catalog.BuildingRepository, logger logger.Interface) *UpdateBuildingUseCase {
	return &UpdateBuildingUseCase{repo: repo, logger: logger}
}

func (uc *UpdateBuildingUseCase) Execute(ctx context.Context, cmd UpdateBuildingCommand) (*BuildingDTO, error) {
	building, err := uc.repo.GetByID(ctx, cmd.BuildingID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewNotFoundError("building not found")
		}
		return nil, errors.NewInternalError("failed to load building", err.Error())
	}

	now := time.Now()
	if err := building.Update(cmd.Name, cmd.Address, cmd.AdminName, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		if *cmd.Active {
			building.Activate(now)
		} else {
			building.Deactivate(now)
		}
	}

	if err := uc.repo.Update(ctx, building); err != nil {
		uc.logger.Errorw("failed to update building", "building_id", cmd.BuildingID, "error", err)
		return nil, errors.NewInternalError("failed to update building", err.Error())
	}

	result := ToBuildingDTO(building)
	return &result, nil
}

type GetBuildingQuery struct {
	BuildingID uint
}

type GetBuildingUseCase struct {
	repo   catalog.BuildingRepository
	logger logger.Interface
}

func NewGetBuildingUseCase(repo catalog.BuildingRepository, logger logger.Interface) *GetBuildingUseCase {
	return &GetBuildingUseCase{repo: repo, logger: logger}
}

func (uc *GetBuildingUseCase) Execute(ctx context.Context, query GetBuildingQuery) (*BuildingDTO, error) {
	building, err := uc.repo.GetByID(ctx, query.BuildingID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewNotFoundError("building not found")
		}
		return nil, errors.NewInternalError("failed to load building", err.Error())
	}

	result := ToBuildingDTO(building)
	return &result, nil
}

type ListBuildingsQuery struct {
	ActiveOnly bool
	Search     string
	Page       int
	PageSize   int
}

type ListBuildingsResult struct {
	Items    []BuildingDTO
	Total    int64
	Page     int
	PageSize int
}

type ListBuildingsUseCase struct {
	repo   catalog.BuildingRepository
	logger logger.Interface
}

func NewListBuildingsUseCase(repo catalog.BuildingRepository, logger logger.Interface) *ListBuildingsUseCase {
	return &ListBuildingsUseCase{repo: repo, logger: logger}
}

func (uc *ListBuildingsUseCase) Execute(ctx context.Context, query ListBuildingsQuery) (*ListBuildingsResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	buildings, total, err := uc.repo.List(ctx, catalog.ListFilter{
		ActiveOnly: query.ActiveOnly,
		Search:     query.Search,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list buildings", "error", err)
		return nil, errors.NewInternalError("failed to list buildings", err.Error())
	}

	return &ListBuildingsResult{
		Items:    mapper.MapSlice(buildings, ToBuildingDTO),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

type DeleteBuildingCommand struct {
	BuildingID uint
}

type DeleteBuildingUseCase struct {
	repo   catalog.BuildingRepository
	logger logger.Interface
}

func NewDeleteBuildingUseCase(repo catalog.BuildingRepository, logger logger.Interface) *DeleteBuildingUseCase {
	return &DeleteBuildingUseCase{repo: repo, logger: logger}
}

func (uc *DeleteBuildingUseCase) Execute(ctx context.Context, cmd DeleteBuildingCommand) error {
	if err := uc.repo.Delete(ctx, cmd.BuildingID); err != nil {
		switch {
		case stderrors.Is(err, catalog.ErrNotFound):
			return errors.NewNotFoundError("building not found")
		case stderrors.Is(err, catalog.ErrInUse):
			return errors.NewConstraintError(
				"building is referenced by assistance requests",
				"deactivate the building instead of deleting it",
			)
		default:
			uc.logger.Errorw("failed to delete building", "building_id", cmd.BuildingID, "error", err)
			return errors.NewInternalError("failed to delete building", err.Error())
		}
	}

	uc.logger.Infow("building deleted", "building_id", cmd.BuildingID)
	return nil
}
