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

type BuildingRepository struct {
	db     *gorm.DB
	mapper mappers.BuildingMapper
}

func NewBuildingRepository(db *gorm.DB) *BuildingRepository {
	return &BuildingRepository{
		db:     db,
		mapper: mappers.NewBuildingMapper(),
	}
}

func (r *BuildingRepository) Save(ctx context.Context, b *catalog.Building) error {
	model := r.mapper.ToModel(b)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save building: %w", err)
	}

	return b.SetID(model.ID)
}

func (r *BuildingRepository) Update(ctx context.Context, b *catalog.Building) error {
	model := r.mapper.ToModel(b)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.BuildingModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update building: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *BuildingRepository) GetByID(ctx context.Context, id uint) (*catalog.Building, error) {
	var model models.BuildingModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, catalog.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find building: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *BuildingRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Building, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db)
	query := tx.Model(&models.BuildingModel{})

	if filter.ActiveOnly {
		query = query.Scopes(db.ActiveOnly())
	}
	if search := strings.TrimSpace(filter.Search); search != "" {
		pattern := "%" + search + "%"
		query = query.Where("name LIKE ? OR address LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count buildings: %w", err)
	}

	query = query.Order("name ASC")
	if filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Limit(filter.PageSize).Offset(offset)
	}

	var buildingModels []models.BuildingModel
	if err := query.Find(&buildingModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list buildings: %w", err)
	}

	buildings := make([]*catalog.Building, len(buildingModels))
	for i := range buildingModels {
		buildings[i] = r.mapper.ToDomain(&buildingModels[i])
	}
	return buildings, total, nil
}

// Delete refuses to remove a building that assistance requests still
// reference; deactivation is the recoverable alternative.
func (r *BuildingRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	var referenced int64
	if err := tx.
		Model(&models.AssistanceModel{}).
		Where("building_id = ?", id).
		Count(&referenced).Error; err != nil {
		return fmt.Errorf("failed to check building references: %w", err)
	}
	if referenced > 0 {
		return catalog.ErrInUse
	}

	result := tx.Delete(&models.BuildingModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete building: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
