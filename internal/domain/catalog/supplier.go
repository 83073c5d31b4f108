package catalog

import (
	"fmt"
	"net/mail"
	"time"
)

type Supplier struct {
	id        uint
	name      string
	email     string
	phone     string
	trade     string
	active    bool
	createdAt time.Time
	updatedAt time.Time
}

func NewSupplier(name, email, phone, trade string, now time.Time) (*Supplier, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("supplier name is required")
	}
	if len(email) == 0 {
		return nil, fmt.Errorf("supplier email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return nil, fmt.Errorf("invalid supplier email: %w", err)
	}

	now = now.UTC()
	return &Supplier{
		name:      name,
		email:     email,
		phone:     phone,
		trade:     trade,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructSupplier(id uint, name, email, phone, trade string, active bool, createdAt, updatedAt time.Time) *Supplier {
	return &Supplier{
		id:        id,
		name:      name,
		email:     email,
		phone:     phone,
		trade:     trade,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (s *Supplier) ID() uint             { return s.id }
func (s *Supplier) Name() string         { return s.name }
func (s *Supplier) Email() string        { return s.email }
func (s *Supplier) Phone() string        { return s.phone }
func (s *Supplier) Trade() string        { return s.trade }
func (s *Supplier) Active() bool         { return s.active }
func (s *Supplier) CreatedAt() time.Time { return s.createdAt }
func (s *Supplier) UpdatedAt() time.Time { return s.updatedAt }

func (s *Supplier) SetID(id uint) error {
	if s.id != 0 {
		return fmt.Errorf("supplier ID is already set")
	}
	s.id = id
	return nil
}

func (s *Supplier) Update(name, email, phone, trade string, now time.Time) error {
	if len(name) == 0 {
		return fmt.Errorf("supplier name is required")
	}
	if len(email) == 0 {
		return fmt.Errorf("supplier email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("invalid supplier email: %w", err)
	}

	s.name = name
	s.email = email
	s.phone = phone
	s.trade = trade
	s.updatedAt = now.UTC()
	return nil
}

func (s *Supplier) Deactivate(now time.Time) {
	s.active = false
	s.updatedAt = now.UTC()
}

func (s *Supplier) Activate(now time.Time) {
	s.active = true
	s.updatedAt = now.UTC()
}
