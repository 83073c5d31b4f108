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

type CreateSupplierCommand struct {
	Name  string
	Email string
	Phone string
	Trade string
}

type CreateSupplierUseCase struct {
	repo   catalog.SupplierRepository
	logger logger.Interface
}

func NewCreateSupplierUseCase(repo catalog.SupplierRepository, logger logger.Interface) *CreateSupplierUseCase {
	return &CreateSupplierUseCase{repo: repo, logger: logger}
}

func (uc *CreateSupplierUseCase) Execute(ctx context.Context, cmd CreateSupplierCommand) (*SupplierDTO, error) {
	supplier, err := catalog.NewSupplier(cmd.Name, cmd.Email, cmd.Phone, cmd.Trade, time.Now())
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.repo.Save(ctx, supplier); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a supplier with this email already exists")
		}
		uc.logger.Errorw("failed to save supplier", "error", err)
		return nil, errors.NewInternalError("failed to create supplier", err.Error())
	}

	uc.logger.Infow("supplier created", "supplier_id", supplier.ID(), "name", supplier.Name())
	result := ToSupplierDTO(supplier)
	return &result, nil
}

type UpdateSupplierCommand struct {
	SupplierID uint
	Name       string
	Email      string
	Phone      string
	Trade      string
	Active     *bool
}

type UpdateSupplierUseCase struct {
	repo   catalog.SupplierRepository
	logger logger.Interface
}

func NewUpdateSupplierUseCase(repo catalog.SupplierRepository, logger logger.Interface) *UpdateSupplierUseCase {
	return &UpdateSupplierUseCase{repo: repo, logger: logger}
}

func (uc *UpdateSupplierUseCase) Execute(ctx context.Context, cmd UpdateSupplierCommand) (*SupplierDTO, error) {
	supplier, err := uc.repo.GetByID(ctx, cmd.SupplierID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewNotFoundError("supplier not found")
		}
		return nil, errors.NewInternalError("failed to load supplier", err.Error())
	}

	now := time.Now()
	if err := supplier.Update(cmd.Name, cmd.Email, cmd.Phone, cmd.Trade, now); err != nil {
		return nil, errors.NewValidationError(err.Error())
	}
	if cmd.Active != nil {
		if *cmd.Active {
			supplier.Activate(now)
		} else {
			supplier.Deactivate(now)
		}
	}

	if err := uc.repo.Update(ctx, supplier); err != nil {
		if errors.IsDuplicateError(err) {
			return nil, errors.NewConflictError("a supplier with this email already exists")
		}
		uc.logger.Errorw("failed to update supplier", "supplier_id", cmd.SupplierID, "error", err)
		return nil, errors.NewInternalError("failed to update supplier", err.Error())
	}

	result := ToSupplierDTO(supplier)
	return &result, nil
}

type GetSupplierQuery struct {
	SupplierID uint
}

type GetSupplierUseCase struct {
	repo   catalog.SupplierRepository
	logger logger.Interface
}

func NewGetSupplierUseCase(repo catalog.SupplierRepository, logger logger.Interface) *GetSupplierUseCase {
	return &GetSupplierUseCase{repo: repo, logger: logger}
}

func (uc *GetSupplierUseCase) Execute(ctx context.Context, query GetSupplierQuery) (*SupplierDTO, error) {
	supplier, err := uc.repo.GetByID(ctx, query.SupplierID)
	if err != nil {
		if stderrors.Is(err, catalog.ErrNotFound) {
			return nil, errors.NewNotFoundError("supplier not found")
		}
		return nil, errors.NewInternalError("failed to load supplier", err.Error())
	}

	result := ToSupplierDTO(supplier)
	return &result, nil
}

type ListSuppliersQuery struct {
	ActiveOnly bool
	Search     string
	Page       int
	PageSize   int
}

type ListSuppliersResult struct {
	Items    []SupplierDTO
	Total    int64
	Page     int
	PageSize int
}

type ListSuppliersUseCase struct {
	repo   catalog.SupplierRepository
	logger logger.Interface
}

func NewListSuppliersUseCase(repo catalog.SupplierRepository, logger logger.Interface) *ListSuppliersUseCase {
	return &ListSuppliersUseCase{repo: repo, logger: logger}
}

func (uc *ListSuppliersUseCase) Execute(ctx context.Context, query ListSuppliersQuery) (*ListSuppliersResult, error) {
	pagination := utils.ValidatePagination(query.Page, query.PageSize)

	suppliers, total, err := uc.repo.List(ctx, catalog.ListFilter{
		ActiveOnly: query.ActiveOnly,
		Search:     query.Search,
		Page:       pagination.Page,
		PageSize:   pagination.PageSize,
	})
	if err != nil {
		uc.logger.Errorw("failed to list suppliers", "error", err)
		return nil, errors.NewInternalError("failed to list suppliers", err.Error())
	}

	return &ListSuppliersResult{
		Items:    mapper.MapSlice(suppliers, ToSupplierDTO),
		Total:    total,
		Page:     pagination.Page,
		PageSize: pagination.PageSize,
	}, nil
}

type DeleteSupplierCommand struct {
	SupplierID uint
}

type DeleteSupplierUseCase struct {
	repo   catalog.SupplierRepository
	logger logger.Interface
}

func NewDeleteSupplierUseCase(repo catalog.SupplierRepository, logger logger.Interface) *DeleteSupplierUseCase {
	return &DeleteSupplierUseCase{repo: repo, logger: logger}
}

func (uc *DeleteSupplierUseCase) Execute(ctx context.Context, cmd DeleteSupplierCommand) error {
	if err := uc.repo.Delete(ctx, cmd.SupplierID); err != nil {
		switch {
		case stderrors.Is(err, catalog.ErrNotFound):
			return errors.NewNotFoundError("supplier not found")
		case stderrors.Is(err, catalog.ErrInUse):
			return errors.NewConstraintError(
				"supplier is referenced by assistance requests",
				"deactivate the supplier instead of deleting it",
			)
		default:
			uc.logger.Errorw("failed to delete supplier", "supplier_id", cmd.SupplierID, "error", err)
			return errors.NewInternalError("failed to delete supplier", err.Error())
		}
	}

	uc.logger.Infow("supplier deleted", "supplier_id", cmd.SupplierID)
	return nil
}
