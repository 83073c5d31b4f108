package models

type AssistancePhotoModel struct {
	ID           uint   `gorm:"primaryKey"`
	AssistanceID uint   `gorm:"not null;index"`
	StoragePath  string `gorm:"size:512;not null"`
	ContentType  string `gorm:"size:64;not null"`
	SizeBytes    int64  `gorm:"not null"`
	UploadedAt   int64  `gorm:"not null"`
}

func (AssistancePhotoModel) TableName() string {
	return "assistance_photos"
}
