package models

import "gorm.io/gorm"

// AutoMigrate creates or updates every table the application owns
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Customer{},
		&IncomeEntry{},
		&ExpenseEntry{},
		&Employee{},
		&Receivable{},
		&Activity{},
	)
}
