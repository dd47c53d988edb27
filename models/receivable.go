package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Receivable is the balance still owed after a down payment.
// RemainingAmount is fixed at creation; paying only flips IsPaid and stamps PaidAt.
type Receivable struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	IncomeEntryID   *uuid.UUID      `gorm:"type:uuid;index" json:"incomeEntryId"`
	CustomerID      *uuid.UUID      `gorm:"type:uuid;index" json:"customerId"`
	CustomerName    string          `gorm:"not null" json:"customerName"`
	TotalAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"totalAmount"`
	PaidAmount      decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"paidAmount"`
	RemainingAmount decimal.Decimal `gorm:"type:numeric(14,2);not null" json:"remainingAmount"`
	IsPaid          bool            `gorm:"not null;default:false;index" json:"isPaid"`
	PaidAt          *time.Time      `json:"paidAt"`
	Description     string          `gorm:"type:text" json:"description"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (r *Receivable) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
