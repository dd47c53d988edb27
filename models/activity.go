package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Activity type tags
const (
	ActivityCustomerAdded       = "customer_added"
	ActivityCustomerUpdated     = "customer_updated"
	ActivityCustomerDeleted     = "customer_deleted"
	ActivitySubscriptionRenewed = "subscription_renewed"
	ActivitySubscriptionExpired = "subscription_expired"
	ActivityReminderSent        = "reminder_sent"
	ActivityIncomeAdded         = "income_added"
	ActivityIncomeUpdated       = "income_updated"
	ActivityIncomeDeleted       = "income_deleted"
	ActivityExpenseAdded        = "expense_added"
	ActivityExpenseUpdated      = "expense_updated"
	ActivityExpenseDeleted      = "expense_deleted"
	ActivityEmployeeAdded       = "employee_added"
	ActivityEmployeeUpdated     = "employee_updated"
	ActivityEmployeeDeleted     = "employee_deleted"
	ActivityReceivableAdded     = "receivable_added"
	ActivityReceivablePaid      = "receivable_paid"
	ActivityReceivableDeleted   = "receivable_deleted"
	ActivityUserCreated         = "user_created"
	ActivityProfileUpdated      = "profile_updated"
)

// Activity is an append-only audit record
type Activity struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Type        string     `gorm:"type:varchar(40);not null;index" json:"type"`
	Description string     `gorm:"type:text;not null" json:"description"`
	RelatedID   *uuid.UUID `gorm:"type:uuid" json:"relatedId"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
}

func (a *Activity) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
