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

type InterventionTypeRepository struct {
	db     *gorm.DB
	mapper mappers.InterventionTypeMapper
}

func NewInterventionTypeRepository(db *gorm.DB) *InterventionTypeRepository {
	return &InterventionTypeRepository{
		db:     db,
		mapper: mappers.NewInterventionTypeMapper(),
	}
}

func (r *InterventionTypeRepository) Save(ctx context.Context, it *catalog.InterventionType) error {
	model := r.mapper.ToModel(it)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save intervention type: %w", err)
	}

	return it.SetID(model.ID)
}

func (r *InterventionTypeRepository) Update(ctx context.Context, it *catalog.InterventionType) error {
	model := r.mapper.ToModel(it)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.InterventionTypeModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update intervention type: %w", result.Error)
	}

	return nil
}

func (r *InterventionTypeRepository) GetByID(ctx context.Context, id uint) (*catalog.InterventionType, error) {
	var model models.InterventionTypeModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find intervention type: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *InterventionTypeRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.InterventionType, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.InterventionTypeModel{})

	if filter.ActiveOnly {
		query = query.Scopes(db.ActiveOnly())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ?", pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count intervention types: %w", err)
	}

	query = query.Order("name ASC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var typeModels []models.InterventionTypeModel
	if err := query.Find(&typeModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list intervention types: %w", err)
	}

	types := make([]*catalog.InterventionType, len(typeModels))
	for i := range typeModels {
		types[i] = r.mapper.ToDomain(&typeModels[i])
	}
	return types, total, nil
}

func (r *InterventionTypeRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var referenced int64
	if err := tx.
		Model(&models.AssistanceModel{}).
		Where("intervention_type_id = ?", id).
		Count(&referenced).Error; err != nil {
		return fmt.Errorf("failed to check intervention type references: %w", err)
	}
	if referenced > 0 {
		return catalog.ErrInUse
	}

	result := tx.Delete(&models.InterventionTypeModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete intervention type: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
