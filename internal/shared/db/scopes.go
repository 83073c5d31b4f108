package db

import (
	"gorm.io/gorm"
)

// ActiveOnly is a GORM scope that filters reference entities (buildings,
// suppliers, intervention types) down to active rows.
//
// Example usage:
//
//	db.Model(&SupplierModel{}).Scopes(db.ActiveOnly()).Find(&results)
func ActiveOnly() func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("active = ?", true)
	}
}
