package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// IncomeInput is the validated shape of a create or update income request
type IncomeInput struct {
	Type          string
	PrintType     *string
	Amount        decimal.Decimal
	TotalAmount   *decimal.Decimal
	IsDownPayment bool
	CustomerID    *uuid.UUID
	ReceiptURL    *string
	Description   string
}

func (in *IncomeInput) normalize() error {
	if in.Type != models.IncomeTypePrints && in.Type != models.IncomeTypeSubscription {
		return invalid(utils.MsgIncomeInvalid)
	}
	if !in.Amount.IsPositive() {
		return invalid(utils.MsgAmountPositive)
	}
	if in.Type != models.IncomeTypePrints || (in.PrintType != nil && strings.TrimSpace(*in.PrintType) == "") {
		in.PrintType = nil
	}
	if in.IsDownPayment {
		if in.TotalAmount == nil || !in.TotalAmount.IsPositive() {
			return invalid(utils.MsgTotalAmountRequired)
		}
		if in.TotalAmount.LessThan(in.Amount) {
			return invalid(utils.MsgTotalBelowPaid)
		}
	}
	return nil
}

// ReceivableInput is used when a receivable is recorded by hand
type ReceivableInput struct {
	IncomeEntryID *uuid.UUID
	CustomerID    *uuid.UUID
	CustomerName  string
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	Description   string
}

// LedgerService owns income entries and the receivables derived from down payments
type LedgerService struct {
	db     *gorm.DB
	cache  *StatsCache
	logger *zap.Logger
	now    func() time.Time
}

func NewLedgerService(db *gorm.DB, cache *StatsCache, logger *zap.Logger) *LedgerService {
	return &LedgerService{
		db:     db,
		cache:  cache,
		logger: logger.Named("ledger"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *LedgerService) ListIncome(ctx context.Context, window utils.DateRange) ([]models.IncomeEntry, error) {
	var entries []models.IncomeEntry
	err := withinRange(s.db.WithContext(ctx), window).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (s *LedgerService) ListPrintIncome(ctx context.Context) ([]models.IncomeEntry, error) {
	var entries []models.IncomeEntry
	err := s.db.WithContext(ctx).
		Where("type = ?", models.IncomeTypePrints).
		Order("created_at DESC").
		Find(&entries).Error
	return entries, err
}

func (s *LedgerService) GetIncome(ctx context.Context, id uuid.UUID) (*models.IncomeEntry, error) {
	var entry models.IncomeEntry
	if err := s.db.WithContext(ctx).First(&entry, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &entry, nil
}

// CreateIncome stores an income entry. A down payment whose total exceeds the
// paid amount also creates one unpaid receivable for the difference, in the
// same transaction.
func (s *LedgerService) CreateIncome(ctx context.Context, in IncomeInput) (*models.IncomeEntry, *models.Receivable, error) {
	if err := in.normalize(); err != nil {
		return nil, nil, err
	}

	entry := models.IncomeEntry{
		Type:          in.Type,
		PrintType:     in.PrintType,
		Amount:        in.Amount,
		TotalAmount:   in.TotalAmount,
		IsDownPayment: in.IsDownPayment,
		CustomerID:    in.CustomerID,
		ReceiptURL:    in.ReceiptURL,
		Description:   in.Description,
	}
	var receivable *models.Receivable

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("create income entry: %w", err)
		}

		if entry.IsDownPayment {
			remaining := entry.TotalAmount.Sub(entry.Amount)
			if remaining.IsPositive() {
				receivable = &models.Receivable{
					IncomeEntryID:   ptr(entry.ID),
					CustomerID:      entry.CustomerID,
					CustomerName:    customerName(tx, entry.CustomerID),
					TotalAmount:     *entry.TotalAmount,
					PaidAmount:      entry.Amount,
					RemainingAmount: remaining,
					Description:     entry.Description,
				}
				if err := tx.Create(receivable).Error; err != nil {
					return fmt.Errorf("create receivable: %w", err)
				}
			}
		}

		description := fmt.Sprintf("تم تسجيل إدخال %s بقيمة %s د.ع", entry.TypeLabel(), entry.Amount.String())
		if entry.IsDownPayment {
			description += " (عربون)"
		}
		return RecordActivity(tx, models.ActivityIncomeAdded, description, ptr(entry.ID))
	})
	if err != nil {
		return nil, nil, err
	}

	s.cache.Invalidate(ctx)
	if receivable != nil {
		s.logger.Info("receivable opened from down payment",
			zap.String("income_id", entry.ID.String()),
			zap.String("receivable_id", receivable.ID.String()),
			zap.String("remaining", receivable.RemainingAmount.String()))
	}
	return &entry, receivable, nil
}

// UpdateIncome rewrites an entry. Receivables already opened for it are left untouched.
func (s *LedgerService) UpdateIncome(ctx context.Context, id uuid.UUID, in IncomeInput) (*models.IncomeEntry, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var entry models.IncomeEntry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&entry, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		entry.Type = in.Type
		entry.PrintType = in.PrintType
		entry.Amount = in.Amount
		entry.TotalAmount = in.TotalAmount
		entry.IsDownPayment = in.IsDownPayment
		entry.CustomerID = in.CustomerID
		entry.Description = in.Description
		if in.ReceiptURL != nil {
			entry.ReceiptURL = in.ReceiptURL
		}

		if err := tx.Save(&entry).Error; err != nil {
			return fmt.Errorf("update income entry: %w", err)
		}
		return RecordActivity(tx, models.ActivityIncomeUpdated,
			fmt.Sprintf("تم تعديل إدخال بقيمة %s د.ع", entry.Amount.String()), ptr(entry.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &entry, nil
}

func (s *LedgerService) DeleteIncome(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var entry models.IncomeEntry
		if err := tx.First(&entry, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&entry).Error; err != nil {
			return fmt.Errorf("delete income entry: %w", err)
		}
		return RecordActivity(tx, models.ActivityIncomeDeleted,
			fmt.Sprintf("تم حذف إدخال بقيمة %s د.ع", entry.Amount.String()), ptr(entry.ID))
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// ListReceivables returns open balances first, newest first within each group
func (s *LedgerService) ListReceivables(ctx context.Context) ([]models.Receivable, error) {
	var receivables []models.Receivable
	err := s.db.WithContext(ctx).
		Order("is_paid ASC").
		Order("created_at DESC").
		Find(&receivables).Error
	return receivables, err
}

func (s *LedgerService) CreateReceivable(ctx context.Context, in ReceivableInput) (*models.Receivable, error) {
	if !in.TotalAmount.IsPositive() || in.PaidAmount.IsNegative() {
		return nil, invalid(utils.MsgReceivableInvalid)
	}
	if in.TotalAmount.LessThan(in.PaidAmount) {
		return nil, invalid(utils.MsgTotalBelowPaid)
	}

	receivable := models.Receivable{
		IncomeEntryID:   in.IncomeEntryID,
		CustomerID:      in.CustomerID,
		CustomerName:    strings.TrimSpace(in.CustomerName),
		TotalAmount:     in.TotalAmount,
		PaidAmount:      in.PaidAmount,
		RemainingAmount: in.TotalAmount.Sub(in.PaidAmount),
		Description:     in.Description,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if receivable.CustomerName == "" {
			receivable.CustomerName = customerName(tx, receivable.CustomerID)
		}
		if err := tx.Create(&receivable).Error; err != nil {
			return fmt.Errorf("create receivable: %w", err)
		}
		return RecordActivity(tx, models.ActivityReceivableAdded,
			fmt.Sprintf("تم تسجيل مستحق بقيمة %s د.ع للعميل %s", receivable.RemainingAmount.String(), receivable.CustomerName),
			ptr(receivable.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &receivable, nil
}

// PayReceivable settles an open receivable and books its remaining amount as a
// new prints income entry. Both writes and the activity row share one
// transaction; the paid flag is flipped with a conditional update so two
// concurrent payments cannot both succeed.
func (s *LedgerService) PayReceivable(ctx context.Context, id uuid.UUID) (*models.Receivable, error) {
	var receivable models.Receivable

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&receivable, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if receivable.IsPaid {
			return ErrAlreadyPaid
		}

		paidAt := s.now()
		result := tx.Model(&models.Receivable{}).
			Where("id = ? AND is_paid = ?", receivable.ID, false).
			Updates(map[string]any{"is_paid": true, "paid_at": paidAt})
		if result.Error != nil {
			return fmt.Errorf("mark receivable paid: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return ErrAlreadyPaid
		}
		receivable.IsPaid = true
		receivable.PaidAt = &paidAt

		settlement := models.IncomeEntry{
			Type:        models.IncomeTypePrints,
			Amount:      receivable.RemainingAmount,
			CustomerID:  receivable.CustomerID,
			Description: fmt.Sprintf("تسديد المبلغ المتبقي من العربون - %s", receivable.CustomerName),
		}
		if err := tx.Create(&settlement).Error; err != nil {
			return fmt.Errorf("create settlement income: %w", err)
		}

		return RecordActivity(tx, models.ActivityReceivablePaid,
			fmt.Sprintf("تم تسديد المستحق بقيمة %s د.ع للعميل %s", receivable.RemainingAmount.String(), receivable.CustomerName),
			ptr(receivable.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("receivable paid",
		zap.String("receivable_id", receivable.ID.String()),
		zap.String("amount", receivable.RemainingAmount.String()))
	return &receivable, nil
}

func (s *LedgerService) DeleteReceivable(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var receivable models.Receivable
		if err := tx.First(&receivable, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&receivable).Error; err != nil {
			return fmt.Errorf("delete receivable: %w", err)
		}
		return RecordActivity(tx, models.ActivityReceivableDeleted,
			fmt.Sprintf("تم حذف مستحق العميل %s بقيمة %s د.ع", receivable.CustomerName, receivable.RemainingAmount.String()),
			ptr(receivable.ID))
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// customerName resolves the display name stored on a receivable
func customerName(tx *gorm.DB, customerID *uuid.UUID) string {
	if customerID == nil {
		return utils.UnknownCustomerName
	}
	var customer models.Customer
	if err := tx.Select("name").First(&customer, "id = ?", *customerID).Error; err != nil {
		return utils.UnknownCustomerName
	}
	return customer.Name
}

func withinRange(db *gorm.DB, window utils.DateRange) *gorm.DB {
	if !window.From.IsZero() {
		db = db.Where("created_at >= ?", window.From)
	}
	if !window.To.IsZero() {
		db = db.Where("created_at < ?", window.To)
	}
	return db
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}
