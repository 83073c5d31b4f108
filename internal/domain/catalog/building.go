// Package catalog holds the read-mostly reference entities an assistance
// request points at: buildings, suppliers and intervention types. They share
// the active-flag convention: deactivation is the safe alternative when a
// delete is blocked by existing requests.
package catalog

import (
	"fmt"
	"time"
)

type Building struct {
	id        uint
	name      string
	address   string
	adminName string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewBuilding(name, address, adminName string, now time.Time) (*Building, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("building name is required")
	}
	if len(name) > 200 {
		return nil, fmt.Errorf("building name exceeds maximum length of 200 characters")
	}

	now = now.UTC()
	return &Building{
		name:      name,
		address:   address,
		adminName: adminName,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructBuilding(id uint, name, address, adminName string, active bool, createdAt, updatedAt time.Time) *Building {
	return &Building{
		id:        id,
		name:      name,
		address:   address,
		adminName: adminName,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (b *Building) ID() uint             { return b.id }
func (b *Building) Name() string         { return b.name }
func (b *Building) Address() string      { return b.address }
func (b *Building) AdminName() string    { return b.adminName }
func (b *Building) Active() bool         { return b.active }
func (b *Building) CreatedAt() time.Time { return b.createdAt }
func (b *Building) UpdatedAt() time.Time { return b.updatedAt }

func (b *Building) SetID(id uint) error {
	if b.id != 0 {
		return fmt.Errorf("building ID is already set")
	}
	b.id = id
	return nil
}

func (b *Building) Update(name, address, adminName string, now time.Time) error {
	if len(name) == 0 {
		return fmt.Errorf("building name is required")
	}
	b.name = name
	b.address = address
	b.adminName = adminName
	b.updatedAt = now.UTC()
	return nil
}

func (b *Building) Deactivate(now time.Time) {
	b.active = false
	b.updatedAt = now.UTC()
}

func (b *Building) Activate(now time.Time) {
	b.active = true
	b.updatedAt = now.UTC()
}
