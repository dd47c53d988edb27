package services

import (
	"context"
	"testing"

	"iqr-control-backend/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExpenseUpdate(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewExpenseService(db, nil)

	receipt := "/uploads/bill.pdf"
	expense, err := s.Create(ctx, ExpenseInput{Reason: "ورق A4", Amount: dec("25000"), ReceiptURL: &receipt})
	require.NoError(t, err)

	updated, err := s.Update(ctx, expense.ID, ExpenseInput{Reason: "ورق A3", Amount: dec("40000"), Notes: "مورد جديد"})
	require.NoError(t, err)
	require.NotNil(t, updated.ReceiptURL)
	assert.Equal(t, receipt, *updated.ReceiptURL)

	var stored models.ExpenseEntry
	require.NoError(t, db.First(&stored, "id = ?", expense.ID).Error)
	assert.Equal(t, "ورق A3", stored.Reason)
	assert.True(t, stored.Amount.Equal(dec("40000")))
	assert.Equal(t, "مورد جديد", stored.Notes)
	assert.Equal(t, int64(1), countRows(t, db, &models.Activity{}, "type = ?", models.ActivityExpenseUpdated))

	_, err = s.Update(ctx, expense.ID, ExpenseInput{Reason: "صفر", Amount: dec("0")})
	assert.ErrorIs(t, err, ErrValidation)
	_, err = s.Update(ctx, uuid.New(), ExpenseInput{Reason: "مفقود", Amount: dec("1")})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, int64(1), countRows(t, db, &models.Activity{}, "type = ?", models.ActivityExpenseUpdated))
}

func TestExpenseDelete(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	s := NewExpenseService(db, nil)

	expense, err := s.Create(ctx, ExpenseInput{Reason: "صيانة طابعة", Amount: dec("75000")})
	require.NoError(t, err)

	require.NoError(t, s.Delete(ctx, expense.ID))
	assert.Zero(t, countRows(t, db, &models.ExpenseEntry{}, ""))
	assert.Equal(t, int64(1), countRows(t, db, &models.Activity{}, "type = ?", models.ActivityExpenseDeleted))

	assert.ErrorIs(t, s.Delete(ctx, expense.ID), ErrNotFound)
	assert.Equal(t, int64(1), countRows(t, db, &models.Activity{}, "type = ?", models.ActivityExpenseDeleted))
}
