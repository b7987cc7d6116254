package analytics

import (
	"time"

	"greenery/internal/models"
)

const spendingHistoryMonths = 6

// MonthSpending is one calendar month of raw-product purchase spending.
type MonthSpending struct {
	MonthStart time.Time `json:"month_start"`
	Spending   float64   `json:"spending"`
}

// BudgetOverview reports how far into the monthly budget the current month's
// spending has gone. PercentageUsed is capped at 100 for display.
type BudgetOverview struct {
	CurrentSpending float64 `json:"current_spending"`
	MonthlyBudget   float64 `json:"monthly_budget"`
	PercentageUsed  float64 `json:"percentage_used"`
	Remaining       float64 `json:"remaining"`
}

// MonthlySpending rolls raw-product purchase costs up into the trailing six
// calendar months, oldest first.
func MonthlySpending(products []models.RawProduct, asOf time.Time) []MonthSpending {
	loc := asOf.Location()
	start := startOfMonth(asOf).AddDate(0, -(spendingHistoryMonths - 1), 0)

	months := make([]MonthSpending, spendingHistoryMonths)
	index := make(map[time.Time]int, spendingHistoryMonths)
	for i := 0; i < spendingHistoryMonths; i++ {
		month := start.AddDate(0, i, 0)
		months[i] = MonthSpending{MonthStart: month}
		index[month] = i
	}

	for _, product := range products {
		if product.Cost == nil {
			continue
		}
		month := startOfMonth(product.PurchaseDate.In(loc))
		if i, ok := index[month]; ok {
			months[i].Spending += *product.Cost
		}
	}

	return months
}

// CurrentMonthSpending sums raw-product purchase costs since the start of
// the month of asOf.
func CurrentMonthSpending(products []models.RawProduct, asOf time.Time) float64 {
	monthStart := startOfMonth(asOf)

	var total float64
	for _, product := range products {
		if product.Cost == nil || product.PurchaseDate.Before(monthStart) {
			continue
		}
		total += *product.Cost
	}
	return total
}

// BudgetStatus relates current-month spending to the configured monthly
// budget. A nil or zero-budget configuration yields a zeroed overview rather
// than a division by zero.
func BudgetStatus(settings *models.BudgetSettings, currentSpending float64) BudgetOverview {
	overview := BudgetOverview{CurrentSpending: currentSpending}
	if settings == nil || settings.MonthlyBudget <= 0 {
		return overview
	}

	overview.MonthlyBudget = settings.MonthlyBudget
	overview.PercentageUsed = currentSpending / settings.MonthlyBudget * 100
	if overview.PercentageUsed > 100 {
		overview.PercentageUsed = 100
	}
	overview.Remaining = settings.MonthlyBudget - currentSpending
	if overview.Remaining < 0 {
		overview.Remaining = 0
	}
	return overview
}
