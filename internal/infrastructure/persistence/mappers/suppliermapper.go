package mappers

import (
	"zelador/internal/domain/catalog"
	"zelador/internal/infrastructure/persistence/models"
)

type SupplierMapper interface {
	ToModel(s *catalog.Supplier) *models.SupplierModel
	ToDomain(model *models.SupplierModel) *catalog.Supplier
}

type SupplierMapperImpl struct{}

func NewSupplierMapper() SupplierMapper {
	return &SupplierMapperImpl{}
}

func (m *SupplierMapperImpl) ToModel(s *catalog.Supplier) *models.SupplierModel {
	return &models.SupplierModel{
		ID:        s.ID(),
		Name:      s.Name(),
		Email:     s.Email(),
		Phone:     s.Phone(),
		Trade:     s.Trade(),
		Active:    s.Active(),
		CreatedAt: s.CreatedAt().UnixMilli(),
		UpdatedAt: s.UpdatedAt().UnixMilli(),
	}
}

func (m *SupplierMapperImpl) ToDomain(model *models.SupplierModel) *catalog.Supplier {
	return catalog.ReconstructSupplier(
		model.ID,
		model.Name,
		model.Email,
		model.Phone,
		model.Trade,
		model.Active,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
