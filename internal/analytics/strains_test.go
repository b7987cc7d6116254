package analytics

import (
	"math"
	"testing"
	"time"

	"greenery/internal/models"
)

func floatPtr(v float64) *float64 { return &v }
func intPtr(v int) *int           { return &v }

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestAggregateStrainsEconomics(t *testing.T) {
	entry := entryAt("Blue Dream", 1.0, testAsOf)
	entry.ConsumptionMethod = "Smoked"

	products := []models.RawProduct{
		{
			StrainName:   "Blue Dream",
			Cost:         floatPtr(10),
			THCContent:   floatPtr(20),
			PurchaseDate: testAsOf.AddDate(0, 0, -10),
		},
	}

	results := AggregateStrains([]models.ConsumptionEntry{entry}, products)

	if len(results) != 1 {
		t.Fatalf("Expected 1 strain, got %d", len(results))
	}

	s := results[0]
	if !almostEqual(s.AvgEfficiency, 0.2) {
		t.Errorf("Expected efficiency 0.2 for Smoked, got %v", s.AvgEfficiency)
	}
	if !almostEqual(s.EffectiveTHCMg, 40) {
		t.Errorf("Expected 40mg effective THC, got %v", s.EffectiveTHCMg)
	}
	if !almostEqual(s.CostPerMgTHC, 0.25) {
		t.Errorf("Expected 0.25 cost per mg THC, got %v", s.CostPerMgTHC)
	}
	if !almostEqual(s.PricePerGram, 10) {
		t.Errorf("Expected 10 per gram, got %v", s.PricePerGram)
	}
}

func TestAggregateStrainsDefaults(t *testing.T) {
	// No method, no matching raw product: defaults kick in, nothing throws.
	entry := entryAt("Mystery Strain", 2.0, testAsOf)

	results := AggregateStrains([]models.ConsumptionEntry{entry}, nil)

	if len(results) != 1 {
		t.Fatalf("Expected 1 strain, got %d", len(results))
	}

	s := results[0]
	if !almostEqual(s.AvgTHCContent, 20) {
		t.Errorf("Expected default 20%% THC, got %v", s.AvgTHCContent)
	}
	if !almostEqual(s.AvgEfficiency, 0.3) {
		t.Errorf("Expected default 0.3 efficiency, got %v", s.AvgEfficiency)
	}
	if s.TotalCost != 0 {
		t.Errorf("Expected zero cost with no products, got %v", s.TotalCost)
	}
	if s.CostPerMgTHC < 0 {
		t.Errorf("Cost per mg THC must never be negative, got %v", s.CostPerMgTHC)
	}
}

func TestAggregateStrainsZeroTHCIsGuarded(t *testing.T) {
	entry := entryAt("Freebie", 0, testAsOf)
	products := []models.RawProduct{
		{StrainName: "Freebie", Cost: floatPtr(5), THCContent: floatPtr(15)},
	}

	results := AggregateStrains([]models.ConsumptionEntry{entry}, products)

	s := results[0]
	if s.EffectiveTHCMg != 0 {
		t.Fatalf("Expected zero effective THC for zero grams, got %v", s.EffectiveTHCMg)
	}
	if s.CostPerMgTHC != 0 {
		t.Errorf("Cost per mg THC must be 0 when effective THC is 0, got %v", s.CostPerMgTHC)
	}
	if s.PricePerGram != 0 {
		t.Errorf("Price per gram must be 0 when grams are 0, got %v", s.PricePerGram)
	}
}

func TestAggregateStrainsSortingAndRatings(t *testing.T) {
	heavy := entryAt("Heavy", 3.0, testAsOf.Add(-time.Hour))
	heavy.Rating = intPtr(4)
	light1 := entryAt("Light", 0.5, testAsOf)
	light1.Rating = intPtr(3)
	light2 := entryAt("Light", 0.5, testAsOf.Add(-2*time.Hour))
	light2.Rating = intPtr(5)

	results := AggregateStrains([]models.ConsumptionEntry{light1, heavy, light2}, nil)

	if len(results) != 2 {
		t.Fatalf("Expected 2 strains, got %d", len(results))
	}
	if results[0].Strain != "Heavy" {
		t.Errorf("Expected Heavy first by total grams, got %s", results[0].Strain)
	}
	if !almostEqual(results[1].AvgRating, 4) {
		t.Errorf("Expected avg rating 4 for Light, got %v", results[1].AvgRating)
	}
	if !results[1].LastUsed.Equal(testAsOf) {
		t.Errorf("Expected last used to be the newest session, got %v", results[1].LastUsed)
	}
}

func TestAggregateStrainsAdditiveCost(t *testing.T) {
	entry := entryAt("Repeat Buy", 1.0, testAsOf)

	products := []models.RawProduct{
		{StrainName: "Repeat Buy", Cost: floatPtr(10), THCContent: floatPtr(18)},
		{StrainName: "Repeat Buy", Cost: floatPtr(12), THCContent: floatPtr(22)},
	}

	results := AggregateStrains([]models.ConsumptionEntry{entry}, products)

	s := results[0]
	if !almostEqual(s.TotalCost, 22) {
		t.Errorf("Expected summed cost 22 across purchases, got %v", s.TotalCost)
	}
	if !almostEqual(s.AvgTHCContent, 20) {
		t.Errorf("Expected averaged THC 20, got %v", s.AvgTHCContent)
	}
}

func TestAggregateStrainsIdempotent(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("A", 1.0, testAsOf),
		entryAt("B", 2.0, testAsOf.Add(-time.Hour)),
	}
	products := []models.RawProduct{
		{StrainName: "A", Cost: floatPtr(10), THCContent: floatPtr(20)},
	}

	first := AggregateStrains(entries, products)
	second := AggregateStrains(entries, products)

	if len(first) != len(second) {
		t.Fatal("Aggregation is not idempotent")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Result %d differs between runs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
