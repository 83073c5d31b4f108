package catalog

import (
	"context"
	"errors"
)

// ErrNotFound is returned by repositories when no row matches.
var ErrNotFound = errors.New("catalog entity not found")

// ErrInUse is returned when a delete is blocked because assistance requests
// still reference the entity. Callers should offer deactivation instead.
var ErrInUse = errors.New("catalog entity is referenced by assistance requests")

type ListFilter struct {
	ActiveOnly bool
	Search     string
	Page       int
	PageSize   int
}

type BuildingRepository interface {
	Save(ctx context.Context, b *Building) error
	Update(ctx context.Context, b *Building) error
	GetByID(ctx context.Context, id uint) (*Building, error)
	List(ctx context.Context, filter ListFilter) ([]*Building, int64, error)
	// Delete fails with ErrInUse when assistance rows reference the building.
	Delete(ctx context.Context, id uint) error
}

type SupplierRepository interface {
	Save(ctx context.Context, s *Supplier) error
	Update(ctx context.Context, s *Supplier) error
	GetByID(ctx context.Context, id uint) (*Supplier, error)
	List(ctx context.Context, filter ListFilter) ([]*Supplier, int64, error)
	Delete(ctx context.Context, id uint) error
}

type InterventionTypeRepository interface {
	Save(ctx context.Context, it *InterventionType) error
	Update(ctx context.Context, it *InterventionType) error
	GetByID(ctx context.Context, id uint) (*InterventionType, error)
	List(ctx context.Context, filter ListFilter) ([]*InterventionType, int64, error)
	Delete(ctx context.Context, id uint) error
}
