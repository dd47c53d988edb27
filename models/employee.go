package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name     string          `gorm:"not null" json:"name"`
	Position string          `json:"position"`
	Phone    string          `json:"phone"`
	Salary   decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"salary"`
	HireDate *time.Time      `gorm:"type:date" json:"hireDate"`
	Notes    string          `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
