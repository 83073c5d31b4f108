package mappers

import (
	"zelador/internal/domain/catalog"
	"zelador/internal/infrastructure/persistence/models"
)

type InterventionTypeMapper interface {
	ToModel(it *catalog.InterventionType) *models.InterventionTypeModel
	ToDomain(model *models.InterventionTypeModel) *catalog.InterventionType
}

type InterventionTypeMapperImpl struct{}

func NewInterventionTypeMapper() InterventionTypeMapper {
	return &InterventionTypeMapperImpl{}
}

func (m *InterventionTypeMapperImpl) ToModel(it *catalog.InterventionType) *models.InterventionTypeModel {
	return &models.InterventionTypeModel{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Active:      it.Active(),
		CreatedAt:   it.CreatedAt().UnixMilli(),
		UpdatedAt:   it.UpdatedAt().UnixMilli(),
	}
}

func (m *InterventionTypeMapperImpl) ToDomain(model *models.InterventionTypeModel) *catalog.InterventionType {
	return catalog.ReconstructInterventionType(
		model.ID,
		model.Name,
		model.Description,
		model.Active,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
