package services

import (
	"context"
	"testing"
	"time"

	"iqr-control-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCustomerService(t *testing.T, now time.Time) *CustomerService {
	t.Helper()
	s := NewCustomerService(newTestDB(t), nil, zap.NewNop())
	s.now = fixedClock(now)
	return s
}

func TestRenew_AdvancesOneCalendarYear(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		expiry time.Time
		active bool
		want   time.Time
	}{
		{"active", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), true, time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)},
		{"inactive and expired", time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC), false, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC)},
		{"leap day", time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), false, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newCustomerService(t, now)
			customer := createCustomer(t, s.db, "زبون", tt.expiry, tt.active)

			var before models.Customer
			require.NoError(t, s.db.First(&before, "id = ?", customer.ID).Error)
			require.Equal(t, tt.active, before.IsActive)

			renewed, err := s.Renew(context.Background(), customer.ID)
			require.NoError(t, err)
			assert.True(t, renewed.IsActive)
			assert.True(t, renewed.ExpiryDate.Equal(tt.want), "got %s", renewed.ExpiryDate)

			var stored models.Customer
			require.NoError(t, s.db.First(&stored, "id = ?", customer.ID).Error)
			assert.True(t, stored.IsActive)
			assert.True(t, stored.ExpiryDate.Equal(tt.want), "stored %s", stored.ExpiryDate)

			assert.Equal(t, int64(1), countRows(t, s.db, &models.Activity{}, "type = ?", models.ActivitySubscriptionRenewed))
		})
	}
}

func TestRenew_NotFound(t *testing.T) {
	s := newCustomerService(t, time.Now().UTC())
	_, err := s.Renew(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCustomerCreate_ExplicitInactive(t *testing.T) {
	s := newCustomerService(t, time.Now().UTC())
	inactive := false

	customer, err := s.Create(context.Background(), CustomerInput{
		Name:       "سارة",
		ExpiryDate: time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
		IsActive:   &inactive,
	})
	require.NoError(t, err)

	var stored models.Customer
	require.NoError(t, s.db.First(&stored, "id = ?", customer.ID).Error)
	assert.False(t, stored.IsActive)
}

func TestCustomerCreate_RequiresName(t *testing.T) {
	s := newCustomerService(t, time.Now().UTC())
	_, err := s.Create(context.Background(), CustomerInput{Name: "  ", ExpiryDate: time.Now()})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCustomerDelete(t *testing.T) {
	s := newCustomerService(t, time.Now().UTC())
	customer := createCustomer(t, s.db, "حذف", time.Now().UTC(), true)

	require.NoError(t, s.Delete(context.Background(), customer.ID))
	assert.ErrorIs(t, s.Delete(context.Background(), customer.ID), ErrNotFound)
}

func TestExpiring(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	s := newCustomerService(t, now)

	createCustomer(t, s.db, "today", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true)
	createCustomer(t, s.db, "in five days", time.Date(2025, 5, 6, 0, 0, 0, 0, time.UTC), true)
	createCustomer(t, s.db, "yesterday", time.Date(2025, 4, 30, 0, 0, 0, 0, time.UTC), true)
	createCustomer(t, s.db, "next month", time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), true)

	customers, err := s.Expiring(context.Background(), 7)
	require.NoError(t, err)
	require.Len(t, customers, 2)
	assert.Equal(t, "today", customers[0].Name)
	assert.Equal(t, "in five days", customers[1].Name)

	_, err = s.Expiring(context.Background(), -1)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestDeactivateExpired(t *testing.T) {
	now := time.Date(2025, 5, 1, 9, 0, 0, 0, time.UTC)
	s := newCustomerService(t, now)

	expired := createCustomer(t, s.db, "expired", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), true)
	createCustomer(t, s.db, "current", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), true)

	changed, err := s.DeactivateExpired(context.Background())
	require.NoError(t, err)
	require.Len(t, changed, 1)
	assert.Equal(t, expired.ID, changed[0].ID)

	var stored models.Customer
	require.NoError(t, s.db.First(&stored, "id = ?", expired.ID).Error)
	assert.False(t, stored.IsActive)
	assert.Equal(t, int64(1), countRows(t, s.db, &models.Activity{}, "type = ?", models.ActivitySubscriptionExpired))
}
