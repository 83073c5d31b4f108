package usecases

import (
	"context"
	"time"

	"zelador/internal/domain/catalog"
)

type mockBuildingRepository struct {
	SaveFunc    func(ctx context.Context, b *catalog.Building) error
	UpdateFunc  func(ctx context.Context, b *catalog.Building) error
	GetByIDFunc func(ctx context.Context, id uint) (*catalog.Building, error)
	ListFunc    func(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Building, int64, error)
	DeleteFunc  func(ctx context.Context, id uint) error
}

func (m *mockBuildingRepository) Save(ctx context.Context, b *catalog.Building) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, b)
	}
	if b.ID() == 0 {
		_ = b.SetID(1)
	}
	return nil
}

func (m *mockBuildingRepository) Update(ctx context.Context, b *catalog.Building) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, b)
	}
	return nil
}

func (m *mockBuildingRepository) GetByID(ctx context.Context, id uint) (*catalog.Building, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return catalog.ReconstructBuilding(id, "Edifício Aurora", "Rua das Flores 12", "Sr. Costa", true, time.Now(), time.Now()), nil
}

func (m *mockBuildingRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Building, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockBuildingRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockSupplierRepository struct {
	SaveFunc    func(ctx context.Context, s *catalog.Supplier) error
	UpdateFunc  func(ctx context.Context, s *catalog.Supplier) error
	GetByIDFunc func(ctx context.Context, id uint) (*catalog.Supplier, error)
	ListFunc    func(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Supplier, int64, error)
	DeleteFunc  func(ctx context.Context, id uint) error
}

func (m *mockSupplierRepository) Save(ctx context.Context, s *catalog.Supplier) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, s)
	}
	if s.ID() == 0 {
		_ = s.SetID(1)
	}
	return nil
}

func (m *mockSupplierRepository) Update(ctx context.Context, s *catalog.Supplier) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, s)
	}
	return nil
}

func (m *mockSupplierRepository) GetByID(ctx context.Context, id uint) (*catalog.Supplier, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return catalog.ReconstructSupplier(id, "Canalizações Silva", "silva@example.com", "910000000", "plumbing", true, time.Now(), time.Now()), nil
}

func (m *mockSupplierRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.Supplier, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockSupplierRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

type mockInterventionTypeRepository struct {
	SaveFunc    func(ctx context.Context, it *catalog.InterventionType) error
	UpdateFunc  func(ctx context.Context, it *catalog.InterventionType) error
	GetByIDFunc func(ctx context.Context, id uint) (*catalog.InterventionType, error)
	ListFunc    func(ctx context.Context, filter catalog.ListFilter) ([]*catalog.InterventionType, int64, error)
	DeleteFunc  func(ctx context.Context, id uint) error
}

func (m *mockInterventionTypeRepository) Save(ctx context.Context, it *catalog.InterventionType) error {
	if m.SaveFunc != nil {
		return m.SaveFunc(ctx, it)
	}
	if it.ID() == 0 {
		_ = it.SetID(1)
	}
	return nil
}

func (m *mockInterventionTypeRepository) Update(ctx context.Context, it *catalog.InterventionType) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, it)
	}
	return nil
}

func (m *mockInterventionTypeRepository) GetByID(ctx context.Context, id uint) (*catalog.InterventionType, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return catalog.ReconstructInterventionType(id, "Canalização", "", true, time.Now(), time.Now()), nil
}

func (m *mockInterventionTypeRepository) List(ctx context.Context, filter catalog.ListFilter) ([]*catalog.InterventionType, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockInterventionTypeRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}
