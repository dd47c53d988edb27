package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CustomerInput struct {
	Name             string
	Phone            string
	SubscriptionType string
	ExpiryDate       time.Time
	IsActive         *bool
	Notes            string
}

func (in *CustomerInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	in.Phone = strings.TrimSpace(in.Phone)
	if in.Name == "" || in.ExpiryDate.IsZero() {
		return invalid(utils.MsgCustomerInvalid)
	}
	in.ExpiryDate = utils.BeginningOfDay(in.ExpiryDate.UTC())
	return nil
}

type CustomerService struct {
	db     *gorm.DB
	cache  *StatsCache
	logger *zap.Logger
	now    func() time.Time
}

func NewCustomerService(db *gorm.DB, cache *StatsCache, logger *zap.Logger) *CustomerService {
	return &CustomerService{
		db:     db,
		cache:  cache,
		logger: logger.Named("customers"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

func (s *CustomerService) List(ctx context.Context) ([]models.Customer, error) {
	var customers []models.Customer
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&customers).Error
	return customers, err
}

func (s *CustomerService) Get(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	if err := s.db.WithContext(ctx).First(&customer, "id = ?", id).Error; err != nil {
		return nil, notFound(err)
	}
	return &customer, nil
}

func (s *CustomerService) Create(ctx context.Context, in CustomerInput) (*models.Customer, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	customer := models.Customer{
		Name:             in.Name,
		Phone:            in.Phone,
		SubscriptionType: in.SubscriptionType,
		ExpiryDate:       in.ExpiryDate,
		IsActive:         true,
		Notes:            in.Notes,
	}
	if in.IsActive != nil {
		customer.IsActive = *in.IsActive
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&customer).Error; err != nil {
			return fmt.Errorf("create customer: %w", err)
		}
		return RecordActivity(tx, models.ActivityCustomerAdded,
			fmt.Sprintf("تم إضافة عميل جديد: %s", customer.Name), ptr(customer.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &customer, nil
}

func (s *CustomerService) Update(ctx context.Context, id uuid.UUID, in CustomerInput) (*models.Customer, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var customer models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		customer.Name = in.Name
		customer.Phone = in.Phone
		customer.SubscriptionType = in.SubscriptionType
		customer.ExpiryDate = in.ExpiryDate
		customer.Notes = in.Notes
		if in.IsActive != nil {
			customer.IsActive = *in.IsActive
		}

		if err := tx.Save(&customer).Error; err != nil {
			return fmt.Errorf("update customer: %w", err)
		}
		return RecordActivity(tx, models.ActivityCustomerUpdated,
			fmt.Sprintf("تم تعديل بيانات العميل: %s", customer.Name), ptr(customer.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &customer, nil
}

func (s *CustomerService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var customer models.Customer
		if err := tx.First(&customer, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&customer).Error; err != nil {
			return fmt.Errorf("delete customer: %w", err)
		}
		return RecordActivity(tx, models.ActivityCustomerDeleted,
			fmt.Sprintf("تم حذف العميل: %s", customer.Name), ptr(customer.ID))
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}

// Renew extends the subscription by exactly one calendar year and reactivates
// the customer whatever its previous state.
func (s *CustomerService) Renew(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&customer, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		customer.Renew()
		if err := tx.Model(&customer).Updates(map[string]any{
			"expiry_date": customer.ExpiryDate,
			"is_active":   true,
		}).Error; err != nil {
			return fmt.Errorf("renew customer: %w", err)
		}
		return RecordActivity(tx, models.ActivitySubscriptionRenewed,
			fmt.Sprintf("تم تجديد اشتراك العميل: %s", customer.Name), ptr(customer.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	s.logger.Info("subscription renewed",
		zap.String("customer_id", customer.ID.String()),
		zap.String("expiry_date", customer.ExpiryDate.Format(utils.DateLayout)))
	return &customer, nil
}

// Expiring returns customers whose subscription ends between today and today+days, soonest first
func (s *CustomerService) Expiring(ctx context.Context, days int) ([]models.Customer, error) {
	if days < 0 {
		return nil, invalid(utils.MsgCustomerInvalid)
	}
	today := utils.BeginningOfDay(s.now())
	until := today.AddDate(0, 0, days)

	var customers []models.Customer
	err := s.db.WithContext(ctx).
		Where("expiry_date >= ? AND expiry_date <= ?", today, until).
		Order("expiry_date ASC").
		Find(&customers).Error
	return customers, err
}

// DeactivateExpired flips isActive off for customers whose expiry date has passed.
// It returns the customers it changed.
func (s *CustomerService) DeactivateExpired(ctx context.Context) ([]models.Customer, error) {
	today := utils.BeginningOfDay(s.now())

	var expired []models.Customer
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("is_active = ? AND expiry_date < ?", true, today).Find(&expired).Error; err != nil {
			return fmt.Errorf("find expired customers: %w", err)
		}
		for i := range expired {
			customer := &expired[i]
			if err := tx.Model(customer).Update("is_active", false).Error; err != nil {
				return fmt.Errorf("deactivate customer %s: %w", customer.ID, err)
			}
			customer.IsActive = false
			if err := RecordActivity(tx, models.ActivitySubscriptionExpired,
				fmt.Sprintf("انتهى اشتراك العميل: %s", customer.Name), ptr(customer.ID)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if len(expired) > 0 {
		s.cache.Invalidate(ctx)
	}
	return expired, nil
}
