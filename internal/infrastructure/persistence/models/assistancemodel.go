package models

// AssistanceModel is the persistence shape of the assistance aggregate root.
// Timestamps are stored as Unix milliseconds; the version column backs the
// optimistic compare-and-swap in the repository.
type AssistanceModel struct {
	ID                      uint   `gorm:"primaryKey"`
	BuildingID              uint   `gorm:"not null;index"`
	SupplierID              uint   `gorm:"not null;index"`
	InterventionTypeID      *uint  `gorm:"index"`
	Status                  string `gorm:"size:32;not null;index"`
	Urgency                 string `gorm:"size:16;not null;index"`
	Description             string `gorm:"type:text;not null"`
	AdminNotes              string `gorm:"type:text"`
	ScheduledAt             *int64 `gorm:"index"`
	RejectionReason         string `gorm:"type:text"`
	RescheduleReason        string `gorm:"type:text"`
	AlertLevel              int    `gorm:"not null;default:0;index"`
	ValidationReminderCount int    `gorm:"not null;default:0"`
	ValidationEmailSentAt   *int64
	Version                 int   `gorm:"not null;default:1"`
	OpenedAt                int64 `gorm:"not null;index"`
	UpdatedAt               int64 `gorm:"not null"`
	ClosedAt                *int64

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (AssistanceModel) TableName() string {
	return "assistances"
}
