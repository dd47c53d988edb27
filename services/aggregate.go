package services

import (
	"time"

	"iqr-control-backend/models"
	"iqr-control-backend/utils"

	"github.com/shopspring/decimal"
)

const expiringSoonDays = 30

// CustomerSegments splits customers by subscription state. A customer can be
// both active and expiring soon; expired customers are never active.
type CustomerSegments struct {
	Active       []models.Customer `json:"activeCustomers"`
	Expired      []models.Customer `json:"expiredCustomers"`
	ExpiringSoon []models.Customer `json:"expiringSoon"`
}

func SumIncome(entries []models.IncomeEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

func SumExpenses(entries []models.ExpenseEntry) decimal.Decimal {
	total := decimal.Zero
	for _, e := range entries {
		total = total.Add(e.Amount)
	}
	return total
}

// NetProfit is income minus expenses over the same window
func NetProfit(income []models.IncomeEntry, expenses []models.ExpenseEntry) decimal.Decimal {
	return SumIncome(income).Sub(SumExpenses(expenses))
}

func FilterIncomeByType(entries []models.IncomeEntry, incomeType string) []models.IncomeEntry {
	filtered := make([]models.IncomeEntry, 0, len(entries))
	for _, e := range entries {
		if e.Type == incomeType {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

func TotalSalaries(employees []models.Employee) decimal.Decimal {
	total := decimal.Zero
	for _, e := range employees {
		total = total.Add(e.Salary)
	}
	return total
}

// SegmentCustomers classifies customers relative to now:
// expired means the expiry date is before today, active means flagged active
// with an expiry of today or later, and expiring soon means the expiry falls
// within the next 30 days counting partial days as whole ones.
func SegmentCustomers(customers []models.Customer, now time.Time) CustomerSegments {
	today := utils.BeginningOfDay(now.UTC())
	segments := CustomerSegments{
		Active:       []models.Customer{},
		Expired:      []models.Customer{},
		ExpiringSoon: []models.Customer{},
	}

	for _, c := range customers {
		expiry := c.ExpiryDate.UTC()
		if expiry.Before(today) {
			segments.Expired = append(segments.Expired, c)
		} else if c.IsActive {
			segments.Active = append(segments.Active, c)
		}

		if days := utils.DaysUntil(now, expiry); days > 0 && days <= expiringSoonDays {
			segments.ExpiringSoon = append(segments.ExpiringSoon, c)
		}
	}
	return segments
}

// PendingReceivables counts unpaid receivables and sums what is still owed
func PendingReceivables(receivables []models.Receivable) (int, decimal.Decimal) {
	count := 0
	total := decimal.Zero
	for _, r := range receivables {
		if r.IsPaid {
			continue
		}
		count++
		total = total.Add(r.RemainingAmount)
	}
	return count, total
}
