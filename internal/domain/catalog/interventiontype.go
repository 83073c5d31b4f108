package catalog

import (
	"fmt"
	"time"
)

type InterventionType struct {
	id          uint
	name        string
	description string
	active      bool
	createdAt   time.Time
	updatedAt   time.Time
}

func NewInterventionType(name, description string, now time.Time) (*InterventionType, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("intervention type name is required")
	}

	now = now.UTC()
	return &InterventionType{
		name:        name,
		description: description,
		active:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructInterventionType(id uint, name, description string, active bool, createdAt, updatedAt time.Time) *InterventionType {
	return &InterventionType{
		id:          id,
		name:        name,
		description: description,
		active:      active,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

func (it *InterventionType) ID() uint             { return it.id }
func (it *InterventionType) Name() string         { return it.name }
func (it *InterventionType) Description() string  { return it.description }
func (it *InterventionType) Active() bool         { return it.active }
func (it *InterventionType) CreatedAt() time.Time { return it.createdAt }
func (it *InterventionType) UpdatedAt() time.Time { return it.updatedAt }

func (it *InterventionType) SetID(id uint) error {
	if it.id != 0 {
		return fmt.Errorf("intervention type ID is already set")
	}
	it.id = id
	return nil
}

func (it *InterventionType) Update(name, description string, now time.Time) error {
	if len(name) == 0 {
		return fmt.Errorf("intervention type name is required")
	}
	it.name = name
	it.description = description
	it.updatedAt = now.UTC()
	return nil
}

func (it *InterventionType) Deactivate(now time.Time) {
	it.active = false
	it.updatedAt = now.UTC()
}

func (it *InterventionType) Activate(now time.Time) {
	it.active = true
	it.updatedAt = now.UTC()
}
