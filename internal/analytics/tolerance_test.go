package analytics

import (
	"testing"
	"time"

	"greenery/internal/models"
)

func toleranceRecords(baselines []float64, effectiveness []int) []models.ToleranceTracking {
	records := make([]models.ToleranceTracking, len(baselines))
	for i := range baselines {
		records[i] = models.ToleranceTracking{
			TrackingDate:        testAsOf.AddDate(0, 0, -i),
			BaselineAmount:      baselines[i],
			EffectivenessRating: effectiveness[i],
		}
	}
	return records
}

func TestAnalyzeToleranceTooFewRecords(t *testing.T) {
	records := toleranceRecords([]float64{0.5}, []int{7})

	if insights := AnalyzeTolerance(records, testAsOf); insights != nil {
		t.Errorf("Expected nil insights for a single record, got %+v", insights)
	}
}

func TestAnalyzeToleranceSparseDataNoFalseSignal(t *testing.T) {
	// Only 3 records: no older group exists, so both change percentages are
	// zero and no break is recommended.
	records := toleranceRecords([]float64{0.8, 0.6, 0.5}, []int{6, 7, 8})

	insights := AnalyzeTolerance(records, testAsOf)
	if insights == nil {
		t.Fatal("Expected insights for 3 records")
	}

	if insights.ToleranceIncreasePercent != 0 {
		t.Errorf("Expected 0%% tolerance increase, got %v", insights.ToleranceIncreasePercent)
	}
	if insights.EffectivenessChangePercent != 0 {
		t.Errorf("Expected 0%% effectiveness change, got %v", insights.EffectivenessChangePercent)
	}
	if insights.NeedsBreak {
		t.Error("Sparse data must not recommend a break")
	}
}

func TestAnalyzeToleranceRisingBaseline(t *testing.T) {
	// Recent baselines doubled vs the older window: > 50% increase.
	records := toleranceRecords(
		[]float64{1.0, 1.0, 1.0, 1.0, 1.0, 0.5, 0.5, 0.5, 0.5, 0.5},
		[]int{7, 7, 7, 7, 7, 7, 7, 7, 7, 7},
	)

	insights := AnalyzeTolerance(records, testAsOf)
	if insights == nil {
		t.Fatal("Expected insights")
	}

	if !almostEqual(insights.ToleranceIncreasePercent, 100) {
		t.Errorf("Expected 100%% increase, got %v", insights.ToleranceIncreasePercent)
	}
	if !insights.NeedsBreak {
		t.Error("Doubled baseline should recommend a break")
	}
}

func TestAnalyzeToleranceFallingEffectiveness(t *testing.T) {
	// Effectiveness dropped from 8 to 6: -25%, below the -20% threshold.
	records := toleranceRecords(
		[]float64{0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5, 0.5},
		[]int{6, 6, 6, 6, 6, 8, 8, 8, 8, 8},
	)

	insights := AnalyzeTolerance(records, testAsOf)
	if insights == nil {
		t.Fatal("Expected insights")
	}

	if !almostEqual(insights.EffectivenessChangePercent, -25) {
		t.Errorf("Expected -25%% effectiveness change, got %v", insights.EffectivenessChangePercent)
	}
	if !insights.NeedsBreak {
		t.Error("Falling effectiveness should recommend a break")
	}
}

func TestAnalyzeToleranceActiveBreak(t *testing.T) {
	start := testAsOf.AddDate(0, 0, -3)
	futureEnd := testAsOf.AddDate(0, 0, 4)
	pastStart := testAsOf.AddDate(0, 0, -30)
	pastEnd := testAsOf.AddDate(0, 0, -20)

	records := toleranceRecords([]float64{0.5, 0.5, 0.5}, []int{7, 7, 7})
	records[0].ToleranceBreakStart = &start
	records[0].ToleranceBreakEnd = &futureEnd
	records[2].ToleranceBreakStart = &pastStart
	records[2].ToleranceBreakEnd = &pastEnd

	insights := AnalyzeTolerance(records, testAsOf)
	if insights == nil {
		t.Fatal("Expected insights")
	}
	if insights.ActiveBreak == nil {
		t.Fatal("Expected an active break")
	}
	if !insights.ActiveBreak.ToleranceBreakStart.Equal(start) {
		t.Errorf("Expected the newest active break surfaced, got start %v", insights.ActiveBreak.ToleranceBreakStart)
	}
}

func TestAnalyzeToleranceOpenEndedBreak(t *testing.T) {
	start := testAsOf.Add(-48 * time.Hour)

	records := toleranceRecords([]float64{0.5, 0.5}, []int{7, 7})
	records[1].ToleranceBreakStart = &start

	insights := AnalyzeTolerance(records, testAsOf)
	if insights == nil {
		t.Fatal("Expected insights")
	}
	if insights.ActiveBreak == nil {
		t.Error("A break without an end date should count as active")
	}
}
