// Package assistance holds the Assistance aggregate: a condominium
// maintenance request walked through its lifecycle by admin actions, supplier
// token actions and the reminder worker. All status changes go through the
// transition table in valueobjects; callers never write the status field
// directly.
package assistance

import (
	"fmt"
	"time"

	vo "zelador/internal/domain/assistance/valueobjects"
)

const (
	// MaxAlertLevel is the highest escalation level; reaching it triggers a
	// critical notification to the administrators.
	MaxAlertLevel = 3

	// ScheduledLateAfter is how long past the agreed datetime a scheduled
	// request counts as late. Exported so read paths can prefilter scans
	// with the same cutoff IsLate decides with.
	ScheduledLateAfter = 24 * time.Hour

	// ValidationLateAfter is how long a request may sit in aguarda_validacao
	// before it counts as late.
	ValidationLateAfter = 48 * time.Hour

	maxDescriptionLength = 5000
	maxNotesLength       = 5000
)

type Assistance struct {
	id                      uint
	buildingID              uint
	supplierID              uint
	interventionTypeID      *uint
	status                  vo.Status
	urgency                 vo.Urgency
	description             string
	adminNotes              string
	scheduledAt             *time.Time
	rejectionReason         string
	rescheduleReason        string
	alertLevel              int
	validationReminderCount int
	validationEmailSentAt   *time.Time
	tokens                  map[vo.TokenPurpose]*Token
	photoCount              int
	version                 int
	persistedVersion        int
	openedAt                time.Time
	updatedAt               time.Time
	closedAt                *time.Time
}

// NewAssistance creates a request in pendente_resposta. The interaction token
// is issued separately by the caller because token values come from the
// infrastructure generator.
func NewAssistance(
	buildingID uint,
	supplierID uint,
	interventionTypeID *uint,
	urgency vo.Urgency,
	description string,
	now time.Time,
) (*Assistance, error) {
	if buildingID == 0 {
		return nil, fmt.Errorf("building ID is required")
	}
	if supplierID == 0 {
		return nil, fmt.Errorf("supplier ID is required")
	}
	if interventionTypeID != nil && *interventionTypeID == 0 {
		return nil, fmt.Errorf("intervention type ID cannot be zero")
	}
	if !urgency.IsValid() {
		return nil, fmt.Errorf("invalid urgency")
	}
	if len(description) == 0 {
		return nil, fmt.Errorf("description is required")
	}
	if len(description) > maxDescriptionLength {
		return nil, fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}

	now = now.UTC()

	return &Assistance{
		buildingID:         buildingID,
		supplierID:         supplierID,
		interventionTypeID: interventionTypeID,
		status:             vo.StatusPendingResponse,
		urgency:            urgency,
		description:        description,
		tokens:             make(map[vo.TokenPurpose]*Token),
		version:            1,
		openedAt:           now,
		updatedAt:          now,
	}, nil
}

// ReconstructAssistance rebuilds an aggregate from persistence. Tokens and
// photo count are attached separately by the repository.
func ReconstructAssistance(
	id uint,
	buildingID uint,
	supplierID uint,
	interventionTypeID *uint,
	status vo.Status,
	urgency vo.Urgency,
	description string,
	adminNotes string,
	scheduledAt *time.Time,
	rejectionReason string,
	rescheduleReason string,
	alertLevel int,
	validationReminderCount int,
	validationEmailSentAt *time.Time,
	version int,
	openedAt, updatedAt time.Time,
	closedAt *time.Time,
) (*Assistance, error) {
	if id == 0 {
		return nil, fmt.Errorf("assistance ID cannot be zero")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid status: %s", status)
	}
	if !urgency.IsValid() {
		return nil, fmt.Errorf("invalid urgency: %s", urgency)
	}
	if alertLevel < 0 || alertLevel > MaxAlertLevel {
		return nil, fmt.Errorf("alert level %d out of range", alertLevel)
	}

	return &Assistance{
		id:                      id,
		buildingID:              buildingID,
		supplierID:              supplierID,
		interventionTypeID:      interventionTypeID,
		status:                  status,
		urgency:                 urgency,
		description:             description,
		adminNotes:              adminNotes,
		scheduledAt:             scheduledAt,
		rejectionReason:         rejectionReason,
		rescheduleReason:        rescheduleReason,
		alertLevel:              alertLevel,
		validationReminderCount: validationReminderCount,
		validationEmailSentAt:   validationEmailSentAt,
		tokens:                  make(map[vo.TokenPurpose]*Token),
		version:                 version,
		persistedVersion:        version,
		openedAt:                openedAt,
		updatedAt:               updatedAt,
		closedAt:                closedAt,
	}, nil
}

func (a *Assistance) ID() uint                          { return a.id }
func (a *Assistance) BuildingID() uint                  { return a.buildingID }
func (a *Assistance) SupplierID() uint                  { return a.supplierID }
func (a *Assistance) InterventionTypeID() *uint         { return a.interventionTypeID }
func (a *Assistance) Status() vo.Status                 { return a.status }
func (a *Assistance) Urgency() vo.Urgency               { return a.urgency }
func (a *Assistance) Description() string               { return a.description }
func (a *Assistance) AdminNotes() string                { return a.adminNotes }
func (a *Assistance) ScheduledAt() *time.Time           { return a.scheduledAt }
func (a *Assistance) RejectionReason() string           { return a.rejectionReason }
func (a *Assistance) RescheduleReason() string          { return a.rescheduleReason }
func (a *Assistance) AlertLevel() int                   { return a.alertLevel }
func (a *Assistance) ValidationReminderCount() int      { return a.validationReminderCount }
func (a *Assistance) ValidationEmailSentAt() *time.Time { return a.validationEmailSentAt }
func (a *Assistance) PhotoCount() int                   { return a.photoCount }
func (a *Assistance) Version() int                      { return a.version }
func (a *Assistance) OpenedAt() time.Time               { return a.openedAt }
func (a *Assistance) UpdatedAt() time.Time              { return a.updatedAt }
func (a *Assistance) ClosedAt() *time.Time              { return a.closedAt }

// PersistedVersion is the version this aggregate was loaded with. The
// repository compares against it when writing, since a single action may
// touch the aggregate more than once before the write.
func (a *Assistance) PersistedVersion() int { return a.persistedVersion }

// SyncPersistedVersion is called by the repository after a successful write.
func (a *Assistance) SyncPersistedVersion() { a.persistedVersion = a.version }

func (a *Assistance) SetID(id uint) error {
	if a.id != 0 {
		return fmt.Errorf("assistance ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("assistance ID cannot be zero")
	}
	a.id = id
	return nil
}

// touch records a mutation: bumps updatedAt and the optimistic lock version.
func (a *Assistance) touch(now time.Time) {
	a.updatedAt = now.UTC()
	a.version++
}

func (a *Assistance) close(now time.Time) {
	closed := now.UTC()
	a.closedAt = &closed
}

// transitionTo moves the status through the transition table.
func (a *Assistance) transitionTo(newStatus vo.Status, now time.Time) error {
	if !newStatus.IsValid() {
		return fmt.Errorf("invalid status: %s", newStatus)
	}
	if !a.status.CanTransitionTo(newStatus) {
		return &InvalidTransitionError{From: a.status, To: newStatus}
	}

	a.status = newStatus
	a.touch(now)

	if newStatus.IsTerminal() {
		if a.closedAt == nil {
			a.close(now)
		}
	}

	return nil
}

// Accept records the supplier accepting the request without a schedule yet.
func (a *Assistance) Accept(now time.Time) error {
	return a.transitionTo(vo.StatusAccepted, now)
}

// Reject records the supplier declining the request. A reason is required:
// it drives the notification to the administrators and the later
// reassignment.
func (a *Assistance) Reject(reason string, now time.Time) error {
	if len(reason) == 0 {
		return fmt.Errorf("rejection reason is required")
	}

	if err := a.transitionTo(vo.StatusRejected, now); err != nil {
		return err
	}

	a.rejectionReason = reason
	return nil
}

// Schedule sets or replaces the agreed intervention datetime. From aceite it
// moves to agendado; from agendado it is a reschedule and keeps the status.
// The datetime must lie in the future.
func (a *Assistance) Schedule(datetime time.Time, rescheduleReason string, now time.Time) error {
	if !datetime.After(now) {
		return fmt.Errorf("scheduled datetime must be in the future")
	}

	wasScheduled := a.status.IsScheduled()

	if err := a.transitionTo(vo.StatusScheduled, now); err != nil {
		return err
	}

	scheduled := datetime.UTC()
	a.scheduledAt = &scheduled

	if wasScheduled {
		a.rescheduleReason = rescheduleReason
	}

	// A new date restarts the reminder cycle.
	a.validationEmailSentAt = nil
	a.validationReminderCount = 0

	return nil
}

// Start records the supplier beginning work on site.
func (a *Assistance) Start(now time.Time) error {
	return a.transitionTo(vo.StatusInProgress, now)
}

// RequestValidation parks the request until the admin confirms completion.
func (a *Assistance) RequestValidation(now time.Time) error {
	return a.transitionTo(vo.StatusPendingValidation, now)
}

// AttachPhoto records one stored photo evidence row.
func (a *Assistance) AttachPhoto() {
	a.photoCount++
}

// SetPhotoCount is used by the repository when reconstructing.
func (a *Assistance) SetPhotoCount(n int) {
	a.photoCount = n
}

// Complete closes the request as done. Photo evidence is mandatory: the
// aggregate refuses to complete without at least one attached photo, which
// makes "completed without evidence" unrepresentable.
func (a *Assistance) Complete(now time.Time) error {
	if a.photoCount == 0 {
		return fmt.Errorf("photo evidence is required to complete")
	}

	if err := a.transitionTo(vo.StatusCompleted, now); err != nil {
		return err
	}

	a.alertLevel = 0
	return nil
}

// CancelByAdmin closes the request from any open status.
func (a *Assistance) CancelByAdmin(now time.Time) error {
	if a.status.IsTerminal() {
		return &InvalidTransitionError{From: a.status, To: vo.StatusCancelled}
	}

	a.status = vo.StatusCancelled
	a.touch(now)
	a.close(now)
	a.alertLevel = 0
	return nil
}

// ReassignTo hands a rejected request to a new supplier and restarts the
// lifecycle: status back to pendente_resposta, rejection reason cleared,
// alert level reset. The caller revokes the old token set and issues a fresh
// interaction token.
func (a *Assistance) ReassignTo(newSupplierID uint, now time.Time) error {
	if newSupplierID == 0 {
		return fmt.Errorf("supplier ID is required")
	}

	if err := a.transitionTo(vo.StatusPendingResponse, now); err != nil {
		return err
	}

	a.supplierID = newSupplierID
	a.rejectionReason = ""
	a.rescheduleReason = ""
	a.scheduledAt = nil
	a.alertLevel = 0
	a.validationReminderCount = 0
	a.validationEmailSentAt = nil
	a.closedAt = nil
	return nil
}

// ChangeStatusTo is the generic admin path. It routes through the same
// transition table as supplier actions; cancel and reassign are the only
// escape hatches and live in their own methods.
func (a *Assistance) ChangeStatusTo(newStatus vo.Status, now time.Time) error {
	if newStatus == a.status {
		return nil
	}
	if newStatus == vo.StatusCancelled || newStatus == vo.StatusPendingResponse {
		return &InvalidTransitionError{From: a.status, To: newStatus}
	}
	if newStatus.IsScheduled() && a.scheduledAt == nil {
		return fmt.Errorf("cannot move to %s without a scheduled datetime", vo.StatusScheduled)
	}
	if newStatus.IsCompleted() {
		return a.Complete(now)
	}
	return a.transitionTo(newStatus, now)
}

// UpdateDetails edits the admin-editable fields.
func (a *Assistance) UpdateDetails(description, adminNotes string, urgency vo.Urgency, now time.Time) error {
	if len(description) == 0 {
		return fmt.Errorf("description is required")
	}
	if len(description) > maxDescriptionLength {
		return fmt.Errorf("description exceeds maximum length of %d characters", maxDescriptionLength)
	}
	if len(adminNotes) > maxNotesLength {
		return fmt.Errorf("admin notes exceed maximum length of %d characters", maxNotesLength)
	}
	if !urgency.IsValid() {
		return fmt.Errorf("invalid urgency")
	}

	a.description = description
	a.adminNotes = adminNotes
	a.urgency = urgency
	a.touch(now)
	return nil
}

// EscalateAlert raises the alert level to target. The level only ever moves
// by exactly one step per call and never decreases while the request is open.
func (a *Assistance) EscalateAlert(target int, now time.Time) error {
	if !a.status.IsOpen() {
		return fmt.Errorf("cannot escalate a closed request")
	}
	if target != a.alertLevel+1 {
		return fmt.Errorf("alert level must move from %d to %d, got %d", a.alertLevel, a.alertLevel+1, target)
	}
	if target > MaxAlertLevel {
		return fmt.Errorf("alert level cannot exceed %d", MaxAlertLevel)
	}

	a.alertLevel = target
	a.touch(now)
	return nil
}

// MarkValidationEmailSent records a same-day reminder send, so repeated
// worker runs within one business day skip the ticket.
func (a *Assistance) MarkValidationEmailSent(now time.Time) {
	sent := now.UTC()
	a.validationEmailSentAt = &sent
	a.touch(now)
}

// RecordFollowUpReminder counts a follow-up reminder for an overdue schedule.
func (a *Assistance) RecordFollowUpReminder(now time.Time) {
	a.validationReminderCount++
	sent := now.UTC()
	a.validationEmailSentAt = &sent
	a.touch(now)
}

// IsLate is the single shared late predicate. Scheduled requests are late
// 24h past the agreed datetime; requests awaiting validation are late 48h
// after their last update. Closed requests are never late.
func (a *Assistance) IsLate(now time.Time) bool {
	switch {
	case a.status.IsScheduled():
		return a.scheduledAt != nil && now.Sub(*a.scheduledAt) > ScheduledLateAfter
	case a.status.IsPendingValidation():
		return now.Sub(a.updatedAt) > ValidationLateAfter
	default:
		return false
	}
}
