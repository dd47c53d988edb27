package services

import (
	"testing"
	"time"

	"iqr-control-backend/config"
	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func init() {
	utils.PasswordCost = 4
}

// newTestDB opens a private in-memory SQLite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), config.GormConfig(zap.NewNop()))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, models.AutoMigrate(db))
	return db
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func countRows(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	q := db.Model(model)
	if query != "" {
		q = q.Where(query, args...)
	}
	require.NoError(t, q.Count(&n).Error)
	return n
}

func createCustomer(t *testing.T, db *gorm.DB, name string, expiry time.Time, active bool) models.Customer {
	t.Helper()
	customer := models.Customer{
		ID:         uuid.New(),
		Name:       name,
		Phone:      "07701234567",
		ExpiryDate: expiry,
		IsActive:   active,
	}
	require.NoError(t, db.Create(&customer).Error)
	return customer
}
