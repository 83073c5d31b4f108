package dto

import (
	"time"

	"zelador/internal/domain/assistance"
	vo "zelador/internal/domain/assistance/valueobjects"
	"zelador/internal/shared/mapper"
)

type AssistanceDTO struct {
	ID                      uint       `json:"id"`
	BuildingID              uint       `json:"building_id"`
	SupplierID              uint       `json:"supplier_id"`
	InterventionTypeID      *uint      `json:"intervention_type_id"`
	Status                  string     `json:"status"`
	Urgency                 string     `json:"urgency"`
	Description             string     `json:"description"`
	AdminNotes              string     `json:"admin_notes"`
	ScheduledAt             *time.Time `json:"scheduled_at"`
	RejectionReason         string     `json:"rejection_reason,omitempty"`
	RescheduleReason        string     `json:"reschedule_reason,omitempty"`
	AlertLevel              int        `json:"alert_level"`
	ValidationReminderCount int        `json:"validation_reminder_count"`
	PhotoCount              int        `json:"photo_count"`
	IsLate                  bool       `json:"is_late"`
	Version                 int        `json:"version"`
	OpenedAt                time.Time  `json:"opened_at"`
	UpdatedAt               time.Time  `json:"updated_at"`
	ClosedAt                *time.Time `json:"closed_at"`
	Tokens                  []TokenDTO `json:"tokens,omitempty"`
	Photos                  []PhotoDTO `json:"photos,omitempty"`
}

type AssistanceListItemDTO struct {
	ID          uint       `json:"id"`
	BuildingID  uint       `json:"building_id"`
	SupplierID  uint       `json:"supplier_id"`
	Status      string     `json:"status"`
	Urgency     string     `json:"urgency"`
	Description string     `json:"description"`
	ScheduledAt *time.Time `json:"scheduled_at"`
	AlertLevel  int        `json:"alert_level"`
	IsLate      bool       `json:"is_late"`
	OpenedAt    time.Time  `json:"opened_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// TokenDTO is the admin-facing view of a capability token. Values are shown
// to the admin so links can be copied into messages; suppliers only ever see
// their own links.
type TokenDTO struct {
	Purpose    string     `json:"purpose"`
	Value      string     `json:"value"`
	IssuedAt   time.Time  `json:"issued_at"`
	ConsumedAt *time.Time `json:"consumed_at"`
}

type PhotoDTO struct {
	ID          uint      `json:"id"`
	ContentType string    `json:"content_type"`
	SizeBytes   int64     `json:"size_bytes"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

type ActivityLogEntryDTO struct {
	ID          uint      `json:"id"`
	Actor       string    `json:"actor"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type EmailLogEntryDTO struct {
	ID         uint      `json:"id"`
	Template   string    `json:"template"`
	Recipients []string  `json:"recipients"`
	Success    bool      `json:"success"`
	Error      string    `json:"error,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// SupplierViewDTO is the limited projection returned to a token holder. It
// carries no token values other than the one the supplier already presented,
// and no admin notes.
type SupplierViewDTO struct {
	AssistanceID    uint       `json:"assistance_id"`
	Status          string     `json:"status"`
	Urgency         string     `json:"urgency"`
	Description     string     `json:"description"`
	ScheduledAt     *time.Time `json:"scheduled_at"`
	RejectionReason string     `json:"rejection_reason,omitempty"`
	AllowedActions  []string   `json:"allowed_actions"`
	OpenedAt        time.Time  `json:"opened_at"`
}

func ToAssistanceDTO(a *assistance.Assistance, now time.Time) *AssistanceDTO {
	if a == nil {
		return nil
	}

	return &AssistanceDTO{
		ID:                      a.ID(),
		BuildingID:              a.BuildingID(),
		SupplierID:              a.SupplierID(),
		InterventionTypeID:      a.InterventionTypeID(),
		Status:                  a.Status().String(),
		Urgency:                 a.Urgency().String(),
		Description:             a.Description(),
		AdminNotes:              a.AdminNotes(),
		ScheduledAt:             a.ScheduledAt(),
		RejectionReason:         a.RejectionReason(),
		RescheduleReason:        a.RescheduleReason(),
		AlertLevel:              a.AlertLevel(),
		ValidationReminderCount: a.ValidationReminderCount(),
		PhotoCount:              a.PhotoCount(),
		IsLate:                  a.IsLate(now),
		Version:                 a.Version(),
		OpenedAt:                a.OpenedAt(),
		UpdatedAt:               a.UpdatedAt(),
		ClosedAt:                a.ClosedAt(),
		Tokens:                  mapper.MapSlice(a.Tokens(), ToTokenDTO),
	}
}

func ToAssistanceListItemDTO(a *assistance.Assistance, now time.Time) AssistanceListItemDTO {
	return AssistanceListItemDTO{
		ID:          a.ID(),
		BuildingID:  a.BuildingID(),
		SupplierID:  a.SupplierID(),
		Status:      a.Status().String(),
		Urgency:     a.Urgency().String(),
		Description: a.Description(),
		ScheduledAt: a.ScheduledAt(),
		AlertLevel:  a.AlertLevel(),
		IsLate:      a.IsLate(now),
		OpenedAt:    a.OpenedAt(),
		UpdatedAt:   a.UpdatedAt(),
	}
}

func ToAssistanceListItemDTOs(items []*assistance.Assistance, now time.Time) []AssistanceListItemDTO {
	return mapper.MapSlice(items, func(a *assistance.Assistance) AssistanceListItemDTO {
		return ToAssistanceListItemDTO(a, now)
	})
}

func ToTokenDTO(t *assistance.Token) TokenDTO {
	return TokenDTO{
		Purpose:    t.Purpose().String(),
		Value:      t.Value(),
		IssuedAt:   t.IssuedAt(),
		ConsumedAt: t.ConsumedAt(),
	}
}

func ToPhotoDTO(p *assistance.Photo) PhotoDTO {
	return PhotoDTO{
		ID:          p.ID(),
		ContentType: p.ContentType(),
		SizeBytes:   p.SizeBytes(),
		UploadedAt:  p.UploadedAt(),
	}
}

func ToPhotoDTOs(photos []*assistance.Photo) []PhotoDTO {
	return mapper.MapSlice(photos, ToPhotoDTO)
}

func ToActivityLogEntryDTO(e *assistance.ActivityLogEntry) ActivityLogEntryDTO {
	return ActivityLogEntryDTO{
		ID:          e.ID(),
		Actor:       e.Actor().String(),
		Description: e.Description(),
		CreatedAt:   e.CreatedAt(),
	}
}

func ToActivityLogEntryDTOs(entries []*assistance.ActivityLogEntry) []ActivityLogEntryDTO {
	return mapper.MapSlice(entries, ToActivityLogEntryDTO)
}

func ToEmailLogEntryDTO(e *assistance.EmailLogEntry) EmailLogEntryDTO {
	return EmailLogEntryDTO{
		ID:         e.ID(),
		Template:   e.Template(),
		Recipients: e.Recipients(),
		Success:    e.Success(),
		Error:      e.ErrorDetail(),
		CreatedAt:  e.CreatedAt(),
	}
}

func ToEmailLogEntryDTOs(entries []*assistance.EmailLogEntry) []EmailLogEntryDTO {
	return mapper.MapSlice(entries, ToEmailLogEntryDTO)
}

// ToSupplierViewDTO projects the request for a token holder. allowedActions
// is computed from the current status so a stale link renders with its
// buttons disabled.
func ToSupplierViewDTO(a *assistance.Assistance) *SupplierViewDTO {
	if a == nil {
		return nil
	}

	actions := make([]string, 0, 4)
	for _, action := range []vo.TokenAction{vo.ActionAccept, vo.ActionReject, vo.ActionSchedule, vo.ActionComplete} {
		if action.AllowedFrom(a.Status()) {
			actions = append(actions, action.String())
		}
	}

	return &SupplierViewDTO{
		AssistanceID:    a.ID(),
		Status:          a.Status().String(),
		Urgency:         a.Urgency().String(),
		Description:     a.Description(),
		ScheduledAt:     a.ScheduledAt(),
		RejectionReason: a.RejectionReason(),
		AllowedActions:  actions,
		OpenedAt:        a.OpenedAt(),
	}
}
