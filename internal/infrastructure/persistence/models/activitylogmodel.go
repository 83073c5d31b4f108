package models

type ActivityLogEntryModel struct {
	ID           uint   `gorm:"primaryKey"`
	AssistanceID uint   `gorm:"not null;index"`
	Actor        string `gorm:"size:20;not null"`
	Description  string `gorm:"type:text;not null"`
	CreatedAt    int64  `gorm:"not null;index"`
}

func (ActivityLogEntryModel) TableName() string {
	return "activity_log_entries"
}
