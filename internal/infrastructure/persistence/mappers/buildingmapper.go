package mappers

import (
	"zelador/internal/domain/catalog"
	"zelador/internal/infrastructure/persistence/models"
)

type BuildingMapper interface {
	ToModel(b *catalog.Building) *models.BuildingModel
	ToDomain(model *models.BuildingModel) *catalog.Building
}

type BuildingMapperImpl struct{}

func NewBuildingMapper() BuildingMapper {
	return &BuildingMapperImpl{}
}

func (m *BuildingMapperImpl) ToModel(b *catalog.Building) *models.BuildingModel {
	return &models.BuildingModel{
		ID:        b.ID(),
		Name:      b.Name(),
		Address:   b.Address(),
		AdminName: b.AdminName(),
		Active:    b.Active(),
		CreatedAt: b.CreatedAt().UnixMilli(),
		UpdatedAt: b.UpdatedAt().UnixMilli(),
	}
}

func (m *BuildingMapperImpl) ToDomain(model *models.BuildingModel) *catalog.Building {
	return catalog.ReconstructBuilding(
		model.ID,
		model.Name,
		model.Address,
		model.AdminName,
		model.Active,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
