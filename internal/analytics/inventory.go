package analytics

import (
	"math"
	"time"

	"greenery/internal/catalog"
	"greenery/internal/models"
)

const (
	// velocityWindowDays is the trailing interval consumption velocity is
	// measured over.
	velocityWindowDays = 28

	// depletionSentinelDays is reported instead of an unbounded projection
	// when inventory exists but nothing is being consumed.
	depletionSentinelDays = 999

	// weeksPerMonth converts a weekly cost into a monthly projection.
	weeksPerMonth = 4.3
)

// PredictiveMetrics projects inventory depletion and spending from the
// trailing consumption velocity. All values are finite and non-negative for
// any input.
type PredictiveMetrics struct {
	WeeklyConsumption      float64 `json:"weekly_consumption"`
	DailyConsumption       float64 `json:"daily_consumption"`
	WeeklyCost             float64 `json:"weekly_cost"`
	MonthlyProjection      float64 `json:"monthly_projection"`
	TotalInventory         float64 `json:"total_inventory"`
	InventoryDaysRemaining int     `json:"inventory_days_remaining"`
}

// ProjectInventory computes remaining stock and days-until-depletion from
// entries in the trailing 28 days before asOf. Weekly velocity is divided by
// the number of elapsed weeks actually covered by data, floored at one week,
// so sparse history does not understate consumption.
func ProjectInventory(entries []models.ConsumptionEntry, products []models.RawProduct, consumables []models.Consumable, asOf time.Time) PredictiveMetrics {
	windowStart := asOf.AddDate(0, 0, -velocityWindowDays)

	var recent []models.ConsumptionEntry
	oldest := asOf
	for _, entry := range entries {
		if entry.ConsumedAt.Before(windowStart) {
			continue
		}
		recent = append(recent, entry)
		if entry.ConsumedAt.Before(oldest) {
			oldest = entry.ConsumedAt
		}
	}

	weeks := coveredWeeks(oldest, asOf)

	var totalGrams float64
	for _, entry := range recent {
		totalGrams += entry.Amount
	}
	weeklyConsumption := totalGrams / weeks
	dailyConsumption := weeklyConsumption / 7

	totalInventory := TotalInventory(products, consumables)

	var daysRemaining int
	switch {
	case dailyConsumption > 0:
		daysRemaining = int(math.Round(totalInventory / dailyConsumption))
	case totalInventory > 0:
		daysRemaining = depletionSentinelDays
	default:
		daysRemaining = 0
	}

	weeklyCost := weeklyCost(recent, consumables, weeks)

	return PredictiveMetrics{
		WeeklyConsumption:      weeklyConsumption,
		DailyConsumption:       dailyConsumption,
		WeeklyCost:             weeklyCost,
		MonthlyProjection:      weeklyCost * weeksPerMonth,
		TotalInventory:         totalInventory,
		InventoryDaysRemaining: daysRemaining,
	}
}

// TotalInventory sums raw-product stock with consumable stock expressed in
// grams. A consumable without a recorded per-unit weight falls back to the
// catalog default rather than failing.
func TotalInventory(products []models.RawProduct, consumables []models.Consumable) float64 {
	var total float64
	for _, product := range products {
		if product.CurrentAmount > 0 {
			total += product.CurrentAmount
		}
	}
	for _, consumable := range consumables {
		weight := consumable.GramsPerUnit
		if weight <= 0 {
			weight = catalog.DefaultGramsPerUnit
		}
		if consumable.Quantity > 0 {
			total += float64(consumable.Quantity) * weight
		}
	}
	return total
}

// LowStockProducts flags raw products whose remaining amount would not cover
// one week at the current consumption velocity.
func LowStockProducts(products []models.RawProduct, weeklyConsumption float64) []models.RawProduct {
	var low []models.RawProduct
	for _, product := range products {
		if product.CurrentAmount < weeklyConsumption {
			low = append(low, product)
		}
	}
	return low
}

// coveredWeeks counts the elapsed weeks between the oldest in-window entry
// and asOf, ceiling-rounded, floored at 1 and capped at the window length.
func coveredWeeks(oldest, asOf time.Time) float64 {
	elapsed := asOf.Sub(oldest)
	weeks := math.Ceil(elapsed.Hours() / (24 * 7))
	if weeks < 1 {
		weeks = 1
	}
	if weeks > velocityWindowDays/7 {
		weeks = velocityWindowDays / 7
	}
	return weeks
}

// weeklyCost maps recent entries to their consumable's per-unit cost.
// Entries without a consumable reference contribute nothing: bulk costs are
// covered by the strain economics aggregation instead.
func weeklyCost(recent []models.ConsumptionEntry, consumables []models.Consumable, weeks float64) float64 {
	costPerUnit := make(map[string]float64, len(consumables))
	for _, consumable := range consumables {
		if consumable.CostPerUnit != nil {
			costPerUnit[consumable.ID] = *consumable.CostPerUnit
		}
	}

	var total float64
	for _, entry := range recent {
		if entry.ConsumableID == nil {
			continue
		}
		total += entry.Amount * costPerUnit[*entry.ConsumableID]
	}
	return total / weeks
}
