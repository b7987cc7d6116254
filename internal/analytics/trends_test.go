package analytics

import (
	"testing"

	"greenery/internal/models"
)

func TestSummarizeConsumptionSparseHistory(t *testing.T) {
	// Data only in the last 3 days: the average must use days with data,
	// never divide by a fixed 30.
	entries := []models.ConsumptionEntry{
		entryAt("A", 1.0, testAsOf),
		entryAt("A", 2.0, testAsOf.AddDate(0, 0, -1)),
		entryAt("A", 3.0, testAsOf.AddDate(0, 0, -2)),
	}

	summary := SummarizeConsumption(entries, testAsOf)

	if summary.AverageWindowDays != 7 {
		t.Errorf("Expected the 7-day window to be preferred, got %d", summary.AverageWindowDays)
	}
	if !almostEqual(summary.DailyAverage, 2.0) {
		t.Errorf("Expected 2.0 average over 3 days with data, got %v", summary.DailyAverage)
	}
	if summary.TotalEntries != 3 {
		t.Errorf("Expected 3 entries, got %d", summary.TotalEntries)
	}
}

func TestSummarizeConsumptionFallsBackToFullWindow(t *testing.T) {
	// All data older than 7 days: fall back to the 30-day days-with-data
	// average.
	entries := []models.ConsumptionEntry{
		entryAt("A", 4.0, testAsOf.AddDate(0, 0, -10)),
		entryAt("A", 2.0, testAsOf.AddDate(0, 0, -20)),
	}

	summary := SummarizeConsumption(entries, testAsOf)

	if summary.AverageWindowDays != 30 {
		t.Errorf("Expected fallback to the 30-day window, got %d", summary.AverageWindowDays)
	}
	if !almostEqual(summary.DailyAverage, 3.0) {
		t.Errorf("Expected 3.0 average over 2 days with data, got %v", summary.DailyAverage)
	}
}

func TestSummarizeConsumptionEmpty(t *testing.T) {
	summary := SummarizeConsumption(nil, testAsOf)

	if summary.DailyAverage != 0 || summary.TotalAmount != 0 || summary.TotalEntries != 0 {
		t.Errorf("Empty log should yield zeroed summary, got %+v", summary)
	}
	if len(summary.Days) != 30 {
		t.Errorf("Expected 30 chart days even with no data, got %d", len(summary.Days))
	}
}

func TestTopProducts(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("Gamma", 1.0, testAsOf),
		entryAt("Alpha", 5.0, testAsOf),
		entryAt("Beta", 3.0, testAsOf),
		entryAt("Alpha", 1.0, testAsOf),
		entryAt("Delta", 0.5, testAsOf),
		entryAt("Epsilon", 0.4, testAsOf),
		entryAt("Zeta", 0.3, testAsOf),
	}

	top := TopProducts(entries, 5)

	if len(top) != 5 {
		t.Fatalf("Expected top 5, got %d", len(top))
	}
	if top[0].Product != "Alpha" || !almostEqual(top[0].Amount, 6.0) {
		t.Errorf("Expected Alpha with 6.0 first, got %+v", top[0])
	}
	if top[1].Product != "Beta" {
		t.Errorf("Expected Beta second, got %s", top[1].Product)
	}
	if top[0].Count != 2 {
		t.Errorf("Expected 2 sessions for Alpha, got %d", top[0].Count)
	}
}

func TestCompareMethodsDropsUnused(t *testing.T) {
	smoked := entryAt("A", 2.0, testAsOf)
	smoked.ConsumptionMethod = "Smoked"
	eaten := entryAt("B", 1.0, testAsOf)
	eaten.ConsumptionMethod = "Eaten"

	breakdowns := CompareMethods([]models.ConsumptionEntry{smoked, eaten})

	if len(breakdowns) != 2 {
		t.Fatalf("Expected 2 methods with sessions, got %d", len(breakdowns))
	}

	for _, b := range breakdowns {
		switch b.Method {
		case "Smoked":
			if !almostEqual(b.EffectiveGrams, 0.4) {
				t.Errorf("Expected 0.4 effective grams for Smoked, got %v", b.EffectiveGrams)
			}
		case "Eaten":
			if !almostEqual(b.EffectiveGrams, 0.6) {
				t.Errorf("Expected 0.6 effective grams for Eaten, got %v", b.EffectiveGrams)
			}
		default:
			t.Errorf("Unexpected method in breakdown: %s", b.Method)
		}
	}
}

func TestWeeklyTrendRatings(t *testing.T) {
	rated := entryAt("A", 1.0, testAsOf)
	rated.Rating = intPtr(4)
	unrated := entryAt("A", 1.0, testAsOf)

	trend := WeeklyTrend([]models.ConsumptionEntry{rated, unrated}, testAsOf)

	if len(trend) != 12 {
		t.Fatalf("Expected 12 weeks, got %d", len(trend))
	}

	current := trend[11]
	if current.Sessions != 2 {
		t.Errorf("Expected 2 sessions in the current week, got %d", current.Sessions)
	}
	if !almostEqual(current.AvgRating, 4.0) {
		t.Errorf("Unrated sessions should not dilute the average: got %v, want 4.0", current.AvgRating)
	}
}

func TestWeeklyTrendNoRatings(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("A", 1.0, testAsOf),
		entryAt("B", 0.5, testAsOf),
	}

	trend := WeeklyTrend(entries, testAsOf)

	if got := trend[11].AvgRating; got != 0 {
		t.Errorf("Expected zero avg rating for an unrated week, got %v", got)
	}
}
