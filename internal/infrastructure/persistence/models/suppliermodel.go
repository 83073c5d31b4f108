package models

type SupplierModel struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"size:200;not null"`
	Email     string `gorm:"uniqueIndex;size:255;not null"`
	Phone     string `gorm:"size:50"`
	Trade     string `gorm:"size:100"`
	Active    bool   `gorm:"not null;default:true;index"`
	CreatedAt int64  `gorm:"not null"`
	UpdatedAt int64  `gorm:"not null"`
}

func (SupplierModel) TableName() string {
	return "suppliers"
}
