package models

type InterventionTypeModel struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"size:200;not null"`
	Description string `gorm:"type:text"`
	Active      bool   `gorm:"not null;default:true;index"`
	CreatedAt   int64  `gorm:"not null"`
	UpdatedAt   int64  `gorm:"not null"`
}

func (InterventionTypeModel) TableName() string {
	return "intervention_types"
}
