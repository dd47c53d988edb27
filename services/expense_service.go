package services

import (
	"context"
	"fmt"
	"strings"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ExpenseInput struct {
	Reason     string
	Amount     decimal.Decimal
	Notes      string
	ReceiptURL *string
}

func (in *ExpenseInput) normalize() error {
	in.Reason = strings.TrimSpace(in.Reason)
	if in.Reason == "" {
		return invalid(utils.MsgExpenseInvalid)
	}
	if !in.Amount.IsPositive() {
		return invalid(utils.MsgAmountPositive)
	}
	return nil
}

type ExpenseService struct {
	db    *gorm.DB
	cache *StatsCache
}

func NewExpenseService(db *gorm.DB, cache *StatsCache) *ExpenseService {
	return &ExpenseService{db: db, cache: cache}
}

func (s *ExpenseService) List(ctx context.Context, window utils.DateRange) ([]models.ExpenseEntry, error) {
	var expenses []models.ExpenseEntry
	err := withinRange(s.db.WithContext(ctx), window).
		Order("created_at DESC").
		Find(&expenses).Error
	return expenses, err
}

func (s *ExpenseService) Get(ctx context.Context, id uuid.UUID) (*models.ExpenseEntry, error) {
	var expense models.ExpenseEntry
	if err := s.db.WithContext(ctx).First(&expense, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &expense, nil
}

func (s *ExpenseService) Create(ctx context.Context, in ExpenseInput) (*models.ExpenseEntry, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	expense := models.ExpenseEntry{
		Reason:     in.Reason,
		Amount:     in.Amount,
		Notes:      in.Notes,
		ReceiptURL: in.ReceiptURL,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&expense).Error; err != nil {
			return fmt.Errorf("create expense: %w", err)
		}
		return RecordActivity(tx, models.ActivityExpenseAdded,
			fmt.Sprintf("تم تسجيل إخراج: %s بقيمة %s د.ع", expense.Reason, expense.Amount.String()), ptr(expense.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &expense, nil
}

func (s *ExpenseService) Update(ctx context.Context, id uuid.UUID, in ExpenseInput) (*models.ExpenseEntry, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var expense models.ExpenseEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&expense, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		expense.Reason = in.Reason
		expense.Amount = in.Amount
		expense.Notes = in.Notes
		if in.ReceiptURL != nil {
			expense.ReceiptURL = in.ReceiptURL
		}

		if err := tx.Save(&expense).Error; err != nil {
			return fmt.Errorf("update expense: %w", err)
		}
		return RecordActivity(tx, models.ActivityExpenseUpdated,
			fmt.Sprintf("تم تعديل إخراج: %s بقيمة %s د.ع", expense.Reason, expense.Amount.String()), ptr(expense.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &expense, nil
}

func (s *ExpenseService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var expense models.ExpenseEntry
		if err := tx.First(&expense, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&expense).Error; err != nil {
			return fmt.Errorf("delete expense: %w", err)
		}
		return RecordActivity(tx, models.ActivityExpenseDeleted,
			fmt.Sprintf("تم حذف إخراج: %s", expense.Reason), ptr(expense.ID))
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}
