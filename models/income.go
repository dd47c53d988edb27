package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	IncomeTypePrints       = "prints"
	IncomeTypeSubscription = "subscription"
)

type IncomeEntry struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Type          string           `gorm:"type:varchar(20);not null;index" json:"type"`
	PrintType     *string          `json:"printType"`
	Amount        decimal.Decimal  `gorm:"type:numeric(14,2);not null" json:"amount"`
	TotalAmount   *decimal.Decimal `gorm:"type:numeric(14,2)" json:"totalAmount"`
	IsDownPayment bool             `gorm:"not null;default:false" json:"isDownPayment"`
	CustomerID    *uuid.UUID       `gorm:"type:uuid;index" json:"customerId"`
	ReceiptURL    *string          `json:"receiptUrl"`
	Description   string           `gorm:"type:text" json:"description"`

	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *IncomeEntry) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}

// TypeLabel is the Arabic label used in activity descriptions
func (e *IncomeEntry) TypeLabel() string {
	if e.Type == IncomeTypePrints {
		return "مطبوعات"
	}
	return "اشتراك"
}
