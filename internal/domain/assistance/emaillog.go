package assistance

import (
	"fmt"
	"time"
)

// EmailLogEntry records one notification attempt, successful or not.
// Append-only, like the activity log.
type EmailLogEntry struct {
	id           uint
	assistanceID uint
	template     string
	recipients   []string
	success      bool
	errorDetail  string
	createdAt    time.Time
}

func NewEmailLogEntry(assistanceID uint, template string, recipients []string, success bool, errorDetail string, now time.Time) (*EmailLogEntry, error) {
	if assistanceID == 0 {
		return nil, fmt.Errorf("assistance ID is required")
	}
	if len(template) == 0 {
		return nil, fmt.Errorf("template name is required")
	}
	if len(recipients) == 0 {
		return nil, fmt.Errorf("at least one recipient is required")
	}

	recipientsCopy := make([]string, len(recipients))
	copy(recipientsCopy, recipients)

	return &EmailLogEntry{
		assistanceID: assistanceID,
		template:     template,
		recipients:   recipientsCopy,
		success:      success,
		errorDetail:  errorDetail,
		createdAt:    now.UTC(),
	}, nil
}

func ReconstructEmailLogEntry(id, assistanceID uint, template string, recipients []string, success bool, errorDetail string, createdAt time.Time) *EmailLogEntry {
	return &EmailLogEntry{
		id:           id,
		assistanceID: assistanceID,
		template:     template,
		recipients:   recipients,
		success:      success,
		errorDetail:  errorDetail,
		createdAt:    createdAt,
	}
}

func (e *EmailLogEntry) ID() uint             { return e.id }
func (e *EmailLogEntry) AssistanceID() uint   { return e.assistanceID }
func (e *EmailLogEntry) Template() string     { return e.template }
func (e *EmailLogEntry) Success() bool        { return e.success }
func (e *EmailLogEntry) ErrorDetail() string  { return e.errorDetail }
func (e *EmailLogEntry) CreatedAt() time.Time { return e.createdAt }

func (e *EmailLogEntry) Recipients() []string {
	recipients := make([]string, len(e.recipients))
	copy(recipients, e.recipients)
	return recipients
}

func (e *EmailLogEntry) SetID(id uint) error {
	if e.id != 0 {
		return fmt.Errorf("email log entry ID is already set")
	}
	e.id = id
	return nil
}
