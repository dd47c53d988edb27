package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseEntry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Reason     string          `gorm:"not null" json:"reason"`
	Amount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"amount"`
	Notes      string          `gorm:"type:text" json:"notes"`
	ReceiptURL *string         `json:"receiptUrl"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *ExpenseEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
