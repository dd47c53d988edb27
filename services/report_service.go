package services

import (
	"context"
	"fmt"
	"time"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	ReportFinancial     = "financial"
	ReportCustomers     = "customers"
	ReportEmployees     = "employees"
	ReportPrints        = "prints"
	ReportComprehensive = "comprehensive"

	reportGeneratedBy = "IQR Control System"
)

// Report is the generated payload. Sections not requested by the report type
// are omitted, as are empty lists; totals of requested sections are always present.
type Report struct {
	Period      string    `json:"period"`
	Type        string    `json:"type"`
	GeneratedAt time.Time `json:"generatedAt"`
	GeneratedBy string    `json:"generatedBy"`

	Income        []models.IncomeEntry  `json:"income,omitempty"`
	Expenses      []models.ExpenseEntry `json:"expenses,omitempty"`
	TotalIncome   *decimal.Decimal      `json:"totalIncome,omitempty"`
	TotalExpenses *decimal.Decimal      `json:"totalExpenses,omitempty"`
	NetProfit     *decimal.Decimal      `json:"netProfit,omitempty"`

	Customers        []models.Customer `json:"customers,omitempty"`
	TotalCustomers   *int              `json:"totalCustomers,omitempty"`
	ExpiredCustomers []models.Customer `json:"expiredCustomers,omitempty"`
	ActiveCustomers  []models.Customer `json:"activeCustomers,omitempty"`
	ExpiringSoon     []models.Customer `json:"expiringSoon,omitempty"`

	Employees      []models.Employee `json:"employees,omitempty"`
	TotalEmployees *int              `json:"totalEmployees,omitempty"`
	TotalSalaries  *decimal.Decimal  `json:"totalSalaries,omitempty"`

	PrintIncome      []models.IncomeEntry `json:"printIncome,omitempty"`
	TotalPrintIncome *decimal.Decimal     `json:"totalPrintIncome,omitempty"`

	Summary *DashboardStats `json:"summary"`
}

type ReportService struct {
	db        *gorm.DB
	dashboard *DashboardService
	now       func() time.Time
}

func NewReportService(db *gorm.DB, dashboard *DashboardService) *ReportService {
	return &ReportService{
		db:        db,
		dashboard: dashboard,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

func ValidReportType(reportType string) bool {
	switch reportType {
	case ReportFinancial, ReportCustomers, ReportEmployees, ReportPrints, ReportComprehensive:
		return true
	}
	return false
}

func needsPeriod(reportType string) bool {
	return reportType == ReportFinancial || reportType == ReportPrints || reportType == ReportComprehensive
}

// Generate builds the report for the given type. startDate and endDate are
// YYYY-MM-DD and bound the income and expense sections, end day included.
func (s *ReportService) Generate(ctx context.Context, startDate, endDate, reportType string) (*Report, error) {
	if !ValidReportType(reportType) {
		return nil, invalid(utils.MsgReportInvalid)
	}
	if needsPeriod(reportType) && (startDate == "" || endDate == "") {
		return nil, invalid(utils.MsgReportInvalid)
	}
	window, err := utils.ParseDateRange(startDate, endDate)
	if err != nil {
		return nil, invalid(utils.MsgInvalidDate)
	}

	now := s.now()
	report := &Report{
		Period:      fmt.Sprintf("%s إلى %s", startDate, endDate),
		Type:        reportType,
		GeneratedAt: now,
		GeneratedBy: reportGeneratedBy,
	}
	db := s.db.WithContext(ctx)

	var income []models.IncomeEntry
	if needsPeriod(reportType) {
		if err := withinRange(db, window).Order("created_at DESC").Find(&income).Error; err != nil {
			return nil, fmt.Errorf("load income: %w", err)
		}
	}

	if reportType == ReportFinancial || reportType == ReportComprehensive {
		var expenses []models.ExpenseEntry
		if err := withinRange(db, window).Order("created_at DESC").Find(&expenses).Error; err != nil {
			return nil, fmt.Errorf("load expenses: %w", err)
		}
		report.Income = income
		report.Expenses = expenses
		report.TotalIncome = ptr(SumIncome(income))
		report.TotalExpenses = ptr(SumExpenses(expenses))
		report.NetProfit = ptr(NetProfit(income, expenses))
	}

	if reportType == ReportCustomers || reportType == ReportComprehensive {
		var customers []models.Customer
		if err := db.Order("created_at DESC").Find(&customers).Error; err != nil {
			return nil, fmt.Errorf("load customers: %w", err)
		}
		segments := SegmentCustomers(customers, now)
		report.Customers = customers
		report.TotalCustomers = ptr(len(customers))
		report.ExpiredCustomers = segments.Expired
		report.ActiveCustomers = segments.Active
		report.ExpiringSoon = segments.ExpiringSoon
	}

	if reportType == ReportEmployees || reportType == ReportComprehensive {
		var employees []models.Employee
		if err := db.Order("created_at DESC").Find(&employees).Error; err != nil {
			return nil, fmt.Errorf("load employees: %w", err)
		}
		report.Employees = employees
		report.TotalEmployees = ptr(len(employees))
		report.TotalSalaries = ptr(TotalSalaries(employees))
	}

	if reportType == ReportPrints || reportType == ReportComprehensive {
		prints := FilterIncomeByType(income, models.IncomeTypePrints)
		report.PrintIncome = prints
		report.TotalPrintIncome = ptr(SumIncome(prints))
	}

	summary, err := s.dashboard.Stats(ctx, utils.DateRange{})
	if err != nil {
		return nil, err
	}
	report.Summary = summary
	return report, nil
}
