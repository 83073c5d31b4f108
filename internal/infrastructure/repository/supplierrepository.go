package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"zelador/internal/domain/catalog"
	"zelador/internal/infrastructure/persistence/mappers"
	"zelador/internal/infrastructure/persistence/models"
	"zelador/internal/shared/db"
)

type SupplierRepository struct {
	db     *gorm.DB
	mapper mappers.SupplierMapper
}

func NewSupplierRepository(db *gorm.DB) *SupplierRepository {
	return &SupplierRepository{
		db:     db,
		mapper: mappers.NewSupplierMapper(),
	}
}

func (r *SupplierRepository) Save(ctx context.Context, s *catalog.Supplier) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save supplier: %w", err)
	}

	return s.SetID(model.ID)
}

func (r *SupplierRepository) Update(ctx context.Context, s *catalog.Supplier) error {
	model := r.mapper.ToModel(s)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.SupplierModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update supplier: %w", result.Error)
	}

	return nil
}

func (r *SupplierRepository) GetByID(ctx context.Context, id uint) (*catalog.Supplier, error) {
	var model models.SupplierModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find supplier: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *SupplierRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Supplier, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.SupplierModel{})

	if filter.ActiveOnly {
		query = query.Scopes(db.ActiveOnly())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR email LIKE ? OR trade LIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count suppliers: %w", err)
	}

	query = query.Order("name ASC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var supplierModels []models.SupplierModel
	if err := query.Find(&supplierModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list suppliers: %w", err)
	}

	suppliers := make([]*catalog.Supplier, len(supplierModels))
	for i := range supplierModels {
		suppliers[i] = r.mapper.ToDomain(&supplierModels[i])
	}
	return suppliers, total, nil
}

func (r *SupplierRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var referenced int64
	if err := tx.
		Model(&models.AssistanceModel{}).
		Where("supplier_id = ?", id).
		Count(&referenced).Error; err != nil {
		return fmt.Errorf("failed to check supplier references: %w", err)
	}
	if referenced > 0 {
		return catalog.ErrInUse
	}

	result := tx.Delete(&models.SupplierModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete supplier: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
