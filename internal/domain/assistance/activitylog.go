package assistance

import (
	"fmt"
	"time"

	vo "zelador/internal/domain/assistance/valueobjects"
)

// ActivityLogEntry is one append-only audit record. Entries are never
// mutated or deleted except through the full cascade delete of their
// request.
type ActivityLogEntry struct {
	id           uint
	assistanceID uint
	actor        vo.Actor
	description  string
	createdAt    time.Time
}

func NewActivityLogEntry(assistanceID uint, actor vo.Actor, description string, now time.Time) (*ActivityLogEntry, error) {
	if assistanceID == 0 {
		return nil, fmt.Errorf("assistance ID is required")
	}
	if !actor.IsValid() {
		return nil, fmt.Errorf("invalid actor: %s", actor)
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}

	return &ActivityLogEntry{
		assistanceID: assistanceID,
		actor:        actor,
		description:  description,
		createdAt:    now.UTC(),
	}, nil
}

func ReconstructActivityLogEntry(id, assistanceID uint, actor vo.Actor, description string, createdAt time.Time) *ActivityLogEntry {
	return &ActivityLogEntry{
		id:           id,
		assistanceID: assistanceID,
		actor:        actor,
		description:  description,
		createdAt:    createdAt,
	}
}

func (e *ActivityLogEntry) ID() uint             { return e.id }
func (e *ActivityLogEntry) AssistanceID() uint   { return e.assistanceID }
func (e *ActivityLogEntry) Actor() vo.Actor      { return e.actor }
func (e *ActivityLogEntry) Description() string  { return e.description }
func (e *ActivityLogEntry) CreatedAt() time.Time { return e.createdAt }

func (e *ActivityLogEntry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("activity log entry ID is already set")
	}
	e.id = id
	return nil
}
