package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Customer struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name             string    `gorm:"not null" json:"name"`
	Phone            string    `json:"phone"`
	SubscriptionType string    `json:"subscriptionType"`
	ExpiryDate       time.Time `gorm:"type:date;not null;index" json:"expiryDate"`
	IsActive         bool      `gorm:"not null" json:"isActive"`
	Notes            string    `gorm:"type:text" json:"notes"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (c *Customer) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// Renew extends the subscription by one calendar year and reactivates it
func (c *Customer) Renew() {
	c.ExpiryDate = c.ExpiryDate.AddDate(1, 0, 0)
	c.IsActive = true
}
