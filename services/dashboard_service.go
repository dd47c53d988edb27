package services

import (
	"context"
	"fmt"
	"time"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type DashboardStats struct {
	PeriodStart time.Time `json:"periodStart"`
	PeriodEnd   time.Time `json:"periodEnd"`

	TotalIncome        decimal.Decimal `json:"totalIncome"`
	TotalExpenses      decimal.Decimal `json:"totalExpenses"`
	NetProfit          decimal.Decimal `json:"netProfit"`
	PrintIncome        decimal.Decimal `json:"printIncome"`
	SubscriptionIncome decimal.Decimal `json:"subscriptionIncome"`

	TotalCustomers   int `json:"totalCustomers"`
	ActiveCustomers  int `json:"activeCustomers"`
	ExpiredCustomers int `json:"expiredCustomers"`
	ExpiringSoon     int `json:"expiringSoon"`
	TotalEmployees   int `json:"totalEmployees"`

	TotalSalaries decimal.Decimal `json:"totalSalaries"`

	PendingReceivables      int             `json:"pendingReceivables"`
	PendingReceivableAmount decimal.Decimal `json:"pendingReceivableAmount"`
}

// DashboardService recomputes statistics from full table scans and caches the
// result per window when Redis is available.
type DashboardService struct {
	db     *gorm.DB
	cache  *StatsCache
	logger *zap.Logger
	now    func() time.Time
}

func NewDashboardService(db *gorm.DB, cache *StatsCache, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		db:     db,
		cache:  cache,
		logger: logger.Named("dashboard"),
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// Stats computes the dashboard for window; a window with no bounds means the current month
func (s *DashboardService) Stats(ctx context.Context, window utils.DateRange) (*DashboardStats, error) {
	now := s.now()
	if window.From.IsZero() && window.To.IsZero() {
		window = utils.MonthRange(now)
	}

	key := cacheKey(window, now)
	var cached DashboardStats
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	db := s.db.WithContext(ctx)

	var income []models.IncomeEntry
	if err := withinRange(db, window).Find(&income).Error; err != nil {
		return nil, fmt.Errorf("load income: %w", err)
	}
	var expenses []models.ExpenseEntry
	if err := withinRange(db, window).Find(&expenses).Error; err != nil {
		return nil, fmt.Errorf("load expenses: %w", err)
	}
	var customers []models.Customer
	if err := db.Find(&customers).Error; err != nil {
		return nil, fmt.Errorf("load customers: %w", err)
	}
	var employees []models.Employee
	if err := db.Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("load employees: %w", err)
	}
	var receivables []models.Receivable
	if err := db.Where("is_paid = ?", false).Find(&receivables).Error; err != nil {
		return nil, fmt.Errorf("load receivables: %w", err)
	}

	segments := SegmentCustomers(customers, now)
	pendingCount, pendingAmount := PendingReceivables(receivables)

	stats := &DashboardStats{
		PeriodStart:             window.From,
		PeriodEnd:               window.To,
		TotalIncome:             SumIncome(income),
		TotalExpenses:           SumExpenses(expenses),
		NetProfit:               NetProfit(income, expenses),
		PrintIncome:             SumIncome(FilterIncomeByType(income, models.IncomeTypePrints)),
		SubscriptionIncome:      SumIncome(FilterIncomeByType(income, models.IncomeTypeSubscription)),
		TotalCustomers:          len(customers),
		ActiveCustomers:         len(segments.Active),
		ExpiredCustomers:        len(segments.Expired),
		ExpiringSoon:            len(segments.ExpiringSoon),
		TotalEmployees:          len(employees),
		TotalSalaries:           TotalSalaries(employees),
		PendingReceivables:      pendingCount,
		PendingReceivableAmount: pendingAmount,
	}

	s.cache.Set(ctx, key, stats)
	return stats, nil
}

// cacheKey includes today because customer segments move with the date
func cacheKey(window utils.DateRange, now time.Time) string {
	format := func(t time.Time) string {
		if t.IsZero() {
			return "open"
		}
		return t.Format(utils.DateLayout)
	}
	return format(window.From) + ":" + format(window.To) + "@" + now.UTC().Format(utils.DateLayout)
}
