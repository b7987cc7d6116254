package analytics

import (
	"math"
	"testing"

	"greenery/internal/models"
)

func TestProjectInventoryZeroConsumptionWithStock(t *testing.T) {
	products := []models.RawProduct{{StrainName: "Stash", CurrentAmount: 5}}

	metrics := ProjectInventory(nil, products, nil, testAsOf)

	if metrics.InventoryDaysRemaining != 999 {
		t.Errorf("Expected sentinel 999 days, got %d", metrics.InventoryDaysRemaining)
	}
	if metrics.WeeklyConsumption != 0 {
		t.Errorf("Expected zero weekly consumption, got %v", metrics.WeeklyConsumption)
	}
}

func TestProjectInventoryAllZero(t *testing.T) {
	metrics := ProjectInventory(nil, nil, nil, testAsOf)

	if metrics.InventoryDaysRemaining != 0 {
		t.Errorf("Expected 0 days for empty system, got %d", metrics.InventoryDaysRemaining)
	}
	if metrics.TotalInventory != 0 {
		t.Errorf("Expected zero inventory, got %v", metrics.TotalInventory)
	}
}

func TestProjectInventoryFiniteForAnyInput(t *testing.T) {
	// Dirty data: negative stock, zero per-unit weight, zero amounts.
	products := []models.RawProduct{{CurrentAmount: -3}}
	consumables := []models.Consumable{{Quantity: 4, GramsPerUnit: 0}}
	entries := []models.ConsumptionEntry{entryAt("X", 0, testAsOf)}

	metrics := ProjectInventory(entries, products, consumables, testAsOf)

	for name, v := range map[string]float64{
		"weekly_consumption": metrics.WeeklyConsumption,
		"daily_consumption":  metrics.DailyConsumption,
		"weekly_cost":        metrics.WeeklyCost,
		"monthly_projection": metrics.MonthlyProjection,
		"total_inventory":    metrics.TotalInventory,
	} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			t.Errorf("%s is not finite: %v", name, v)
		}
	}
	if metrics.InventoryDaysRemaining < 0 {
		t.Errorf("Days remaining must be non-negative, got %d", metrics.InventoryDaysRemaining)
	}
}

func TestProjectInventoryVelocityUsesCoveredWeeks(t *testing.T) {
	// 7g consumed across the last 2 weeks of data: velocity should divide by
	// 2 elapsed weeks, not a hardcoded 4.
	entries := []models.ConsumptionEntry{
		entryAt("A", 3.5, testAsOf.AddDate(0, 0, -1)),
		entryAt("A", 3.5, testAsOf.AddDate(0, 0, -13)),
	}

	metrics := ProjectInventory(entries, nil, nil, testAsOf)

	if !almostEqual(metrics.WeeklyConsumption, 3.5) {
		t.Errorf("Expected 3.5g/week over 2 covered weeks, got %v", metrics.WeeklyConsumption)
	}
}

func TestProjectInventoryDaysRemaining(t *testing.T) {
	// 7g/week = 1g/day against 14g of stock.
	entries := []models.ConsumptionEntry{
		entryAt("A", 7, testAsOf.AddDate(0, 0, -2)),
	}
	products := []models.RawProduct{{CurrentAmount: 10}}
	consumables := []models.Consumable{{Quantity: 8, GramsPerUnit: 0.5}}

	metrics := ProjectInventory(entries, products, consumables, testAsOf)

	if !almostEqual(metrics.TotalInventory, 14) {
		t.Fatalf("Expected 14g total inventory, got %v", metrics.TotalInventory)
	}
	if metrics.InventoryDaysRemaining != 14 {
		t.Errorf("Expected 14 days remaining, got %d", metrics.InventoryDaysRemaining)
	}
}

func TestTotalInventoryFallbackWeight(t *testing.T) {
	consumables := []models.Consumable{{Quantity: 2, GramsPerUnit: 0}}

	if total := TotalInventory(nil, consumables); !almostEqual(total, 1.0) {
		t.Errorf("Expected 0.5g fallback per unit, got %v", total)
	}
}

func TestProjectInventoryWeeklyCost(t *testing.T) {
	consumableID := "cons-1"
	consumables := []models.Consumable{
		{ID: consumableID, Quantity: 10, GramsPerUnit: 0.5, CostPerUnit: floatPtr(4)},
	}
	entry := entryAt("Joints", 1.0, testAsOf.AddDate(0, 0, -1))
	entry.ConsumableID = &consumableID

	metrics := ProjectInventory([]models.ConsumptionEntry{entry}, nil, consumables, testAsOf)

	if !almostEqual(metrics.WeeklyCost, 4) {
		t.Errorf("Expected weekly cost 4, got %v", metrics.WeeklyCost)
	}
	if !almostEqual(metrics.MonthlyProjection, 4*4.3) {
		t.Errorf("Expected monthly projection %v, got %v", 4*4.3, metrics.MonthlyProjection)
	}
}

func TestLowStockProducts(t *testing.T) {
	products := []models.RawProduct{
		{StrainName: "Plenty", CurrentAmount: 10},
		{StrainName: "Scarce", CurrentAmount: 1},
	}

	low := LowStockProducts(products, 3.5)

	if len(low) != 1 {
		t.Fatalf("Expected 1 low-stock product, got %d", len(low))
	}
	if low[0].StrainName != "Scarce" {
		t.Errorf("Expected Scarce flagged, got %s", low[0].StrainName)
	}
}
