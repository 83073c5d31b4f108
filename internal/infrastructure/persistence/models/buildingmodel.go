package models

type BuildingModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null"`
	Address   string `gorm:"size:500"`
	AdminName string `gorm:"size:200"`
	Active    bool   `gorm:"not null;default:true;index"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`
}

func (BuildingModel) TableName() string {
	return "buildings"
}
