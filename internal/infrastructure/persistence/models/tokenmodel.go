package models

// AssistanceTokenModel stores capability tokens. The value column carries a
// unique index: token resolution is a single indexed lookup on the
// unauthenticated path.
type AssistanceTokenModel struct {
	ID           uint   `gorm:"primaryKey"`
	AssistanceID uint   `gorm:"not null;index"`
	Purpose      string `gorm:"size:20;not null"`
	Value        string `gorm:"uniqueIndex;size:64;not null"`
	IssuedAt     int64  `gorm:"not null"`
	ConsumedAt   *int64 `gorm:"index"`
}

func (AssistanceTokenModel) TableName() string {
	return "assistance_tokens"
}
