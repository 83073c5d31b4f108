package models

import "gorm.io/datatypes"

// EmailLogEntryModel records every notification attempt. Recipients are a
// JSON array column since their count varies per template.
type EmailLogEntryModel struct {
	ID           uint           `gorm:"primaryKey"`
	AssistanceID uint           `gorm:"not null;index"`
	Template     string         `gorm:"size:50;not null"`
	Recipients   datatypes.JSON `gorm:"not null"`
	Success      bool           `gorm:"not null"`
	ErrorDetail  string         `gorm:"type:text"`
	CreatedAt    int64          `gorm:"not null;index"`
}

func (EmailLogEntryModel) TableName() string {
	return "email_log_entries"
}
