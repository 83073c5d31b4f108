package usecases

import (
	"time"

	"zelador/internal/domain/catalog"
)

type BuildingDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	AdminName string    `json:"admin_name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type SupplierDTO struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Trade     string    `json:"trade"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type InterventionTypeDTO struct {
	ID          uint      `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToBuildingDTO(b *catalog.Building) BuildingDTO {
	return BuildingDTO{
		ID:        b.ID(),
		Name:      b.Name(),
		Address:   b.Address(),
		AdminName: b.AdminName(),
		Active:    b.Active(),
		CreatedAt: b.CreatedAt(),
		UpdatedAt: b.UpdatedAt(),
	}
}

func ToSupplierDTO(s *catalog.Supplier) SupplierDTO {
	return SupplierDTO{
		ID:        s.ID(),
		Name:      s.Name(),
		Email:     s.Email(),
		Phone:     s.Phone(),
		Trade:     s.Trade(),
		Active:    s.Active(),
		CreatedAt: s.CreatedAt(),
		UpdatedAt: s.UpdatedAt(),
	}
}

func ToInterventionTypeDTO(it *catalog.InterventionType) InterventionTypeDTO {
	return InterventionTypeDTO{
		ID:          it.ID(),
		Name:        it.Name(),
		Description: it.Description(),
		Active:      it.Active(),
		CreatedAt:   it.CreatedAt(),
		UpdatedAt:   it.UpdatedAt(),
	}
}
