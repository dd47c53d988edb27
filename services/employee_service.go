package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type EmployeeInput struct {
	Name     string
	Position string
	Phone    string
	Salary   decimal.Decimal
	HireDate *time.Time
	Notes    string
}

func (in *EmployeeInput) normalize() error {
	in.Name = strings.TrimSpace(in.Name)
	if in.Name == "" || in.Salary.IsNegative() {
		return invalid(utils.MsgEmployeeInvalid)
	}
	if in.HireDate != nil {
		d := utils.BeginningOfDay(in.HireDate.UTC())
		in.HireDate = &d
	}
	return nil
}

type EmployeeService struct {
	db    *gorm.DB
	cache *StatsCache
}

func NewEmployeeService(db *gorm.DB, cache *StatsCache) *EmployeeService {
	return &EmployeeService{db: db, cache: cache}
}

func (s *EmployeeService) List(ctx context.Context) ([]models.Employee, error) {
	var employees []models.Employee
	err := s.db.WithContext(ctx).Order("created_at DESC").Find(&employees).Error
	return employees, err
}

func (s *EmployeeService) Create(ctx context.Context, in EmployeeInput) (*models.Employee, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	employee := models.Employee{
		Name:     in.Name,
		Position: in.Position,
		Phone:    in.Phone,
		Salary:   in.Salary,
		HireDate: in.HireDate,
		Notes:    in.Notes,
	}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&employee).Error; err != nil {
			return fmt.Errorf("create employee: %w", err)
		}
		return RecordActivity(tx, models.ActivityEmployeeAdded,
			fmt.Sprintf("تم إضافة موظف جديد: %s", employee.Name), ptr(employee.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &employee, nil
}

func (s *EmployeeService) Update(ctx context.Context, id uuid.UUID, in EmployeeInput) (*models.Employee, error) {
	if err := in.normalize(); err != nil {
		return nil, err
	}

	var employee models.Employee
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&employee, "id = ?", id).Error; err != nil {
			return notFound(err)
		}

		employee.Name = in.Name
		employee.Position = in.Position
		employee.Phone = in.Phone
		employee.Salary = in.Salary
		employee.HireDate = in.HireDate
		employee.Notes = in.Notes

		if err := tx.Save(&employee).Error; err != nil {
			return fmt.Errorf("update employee: %w", err)
		}
		return RecordActivity(tx, models.ActivityEmployeeUpdated,
			fmt.Sprintf("تم تعديل بيانات الموظف: %s", employee.Name), ptr(employee.ID))
	})
	if err != nil {
		return nil, err
	}

	s.cache.Invalidate(ctx)
	return &employee, nil
}

func (s *EmployeeService) Delete(ctx context.Context, id uuid.UUID) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var employee models.Employee
		if err := tx.First(&employee, "id = ?", id).Error; err != nil {
			return notFound(err)
		}
		if err := tx.Delete(&employee).Error; err != nil {
			return fmt.Errorf("delete employee: %w", err)
		}
		return RecordActivity(tx, models.ActivityEmployeeDeleted,
			fmt.Sprintf("تم حذف الموظف: %s", employee.Name), ptr(employee.ID))
	})
	if err != nil {
		return err
	}

	s.cache.Invalidate(ctx)
	return nil
}
