package analytics

import (
	"testing"
	"time"

	"greenery/internal/models"
)

func moodRecord(entryID string, pre, post models.MoodScores) models.MoodTracking {
	return models.MoodTracking{
		ID:                 "mood-" + entryID,
		ConsumptionEntryID: entryID,
		Pre:                pre,
		Post:               &post,
		CreatedAt:          testAsOf.Add(-2 * time.Hour),
	}
}

func TestDeltasSignConvention(t *testing.T) {
	mood := moodRecord("e1",
		models.MoodScores{Energy: 5, Happiness: 5, Stress: 8, Focus: 5, Anxiety: 7, Pain: 6},
		models.MoodScores{Energy: 7, Happiness: 8, Stress: 3, Focus: 6, Anxiety: 4, Pain: 2},
	)

	delta, ok := Deltas(mood)
	if !ok {
		t.Fatal("Expected a complete record")
	}

	if delta.Energy != 2 {
		t.Errorf("Expected energy +2, got %v", delta.Energy)
	}
	if delta.Happiness != 3 {
		t.Errorf("Expected happiness +3, got %v", delta.Happiness)
	}
	// Lower post stress/anxiety/pain is an improvement, so deltas are
	// inverted to stay positive.
	if delta.Stress != 5 {
		t.Errorf("Expected stress +5 (inverted), got %v", delta.Stress)
	}
	if delta.Anxiety != 3 {
		t.Errorf("Expected anxiety +3 (inverted), got %v", delta.Anxiety)
	}
	if delta.Pain != 4 {
		t.Errorf("Expected pain +4 (inverted), got %v", delta.Pain)
	}
}

func TestDeltasPendingRecord(t *testing.T) {
	pending := models.MoodTracking{
		ConsumptionEntryID: "e1",
		Pre:                models.MoodScores{Energy: 5},
	}

	if _, ok := Deltas(pending); ok {
		t.Error("Pending record must not produce deltas")
	}
}

func TestSummarizeMoodCorrelationsGrouping(t *testing.T) {
	blueDream := entryAt("Blue Dream", 0.5, testAsOf.Add(-3*time.Hour))
	blueDream.ID = "e1"
	blueDream.ConsumptionMethod = "Vaporised"
	blueDream2 := entryAt("Blue Dream", 0.4, testAsOf.Add(-30*time.Hour))
	blueDream2.ID = "e2"
	blueDream2.ConsumptionMethod = "Vaporised"
	ogKush := entryAt("OG Kush", 0.5, testAsOf.Add(-5*time.Hour))
	ogKush.ID = "e3"
	ogKush.ConsumptionMethod = "Smoked"

	moods := []models.MoodTracking{
		moodRecord("e1", models.MoodScores{Happiness: 5}, models.MoodScores{Happiness: 9}),
		moodRecord("e2", models.MoodScores{Happiness: 5}, models.MoodScores{Happiness: 7}),
		moodRecord("e3", models.MoodScores{Happiness: 5}, models.MoodScores{Happiness: 6}),
	}

	correlations := SummarizeMoodCorrelations(moods, []models.ConsumptionEntry{blueDream, blueDream2, ogKush}, testAsOf)

	if len(correlations) != 2 {
		t.Fatalf("Expected 2 groups, got %d", len(correlations))
	}

	best := correlations[0]
	if best.StrainName != "Blue Dream" || best.ConsumptionMethod != "Vaporised" {
		t.Errorf("Expected Blue Dream/Vaporised ranked first, got %s/%s", best.StrainName, best.ConsumptionMethod)
	}
	if !almostEqual(best.AvgHappinessChange, 3) {
		t.Errorf("Expected avg happiness +3, got %v", best.AvgHappinessChange)
	}
	if best.SessionsCount != 2 {
		t.Errorf("Expected 2 sessions in the group, got %d", best.SessionsCount)
	}

	if got := BestStrain(correlations); got != "Blue Dream" {
		t.Errorf("Expected Blue Dream as best strain, got %s", got)
	}
}

func TestSummarizeMoodCorrelationsUnknownEntry(t *testing.T) {
	moods := []models.MoodTracking{
		moodRecord("missing", models.MoodScores{Happiness: 5}, models.MoodScores{Happiness: 6}),
	}

	correlations := SummarizeMoodCorrelations(moods, nil, testAsOf)

	if len(correlations) != 1 {
		t.Fatalf("Expected 1 group, got %d", len(correlations))
	}
	if correlations[0].StrainName != "Unknown" {
		t.Errorf("Expected Unknown strain for an orphan record, got %s", correlations[0].StrainName)
	}
}

func TestSummarizeMoodCorrelationsSkipsPending(t *testing.T) {
	pending := models.MoodTracking{
		ConsumptionEntryID: "e1",
		Pre:                models.MoodScores{Happiness: 5},
	}

	if got := SummarizeMoodCorrelations([]models.MoodTracking{pending}, nil, testAsOf); len(got) != 0 {
		t.Errorf("Pending records must not contribute correlations, got %d", len(got))
	}
}

func TestPendingPreMood(t *testing.T) {
	recent := entryAt("Fresh", 0.5, testAsOf.Add(-2*time.Hour))
	recent.ID = "fresh"
	old := entryAt("Stale", 0.5, testAsOf.Add(-48*time.Hour))
	old.ID = "stale"
	tracked := entryAt("Tracked", 0.5, testAsOf.Add(-1*time.Hour))
	tracked.ID = "tracked"

	moods := []models.MoodTracking{
		{ConsumptionEntryID: "tracked", Pre: models.MoodScores{Energy: 5}},
	}

	pending := PendingPreMood([]models.ConsumptionEntry{recent, old, tracked}, moods, testAsOf)

	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending entry, got %d", len(pending))
	}
	if pending[0].ID != "fresh" {
		t.Errorf("Expected the recent untracked entry, got %s", pending[0].ID)
	}
}

func TestPendingPostMoodElapsedHours(t *testing.T) {
	entry := entryAt("Blue Dream", 0.5, testAsOf.Add(-6*time.Hour))
	entry.ID = "e1"

	moods := []models.MoodTracking{
		{
			ID:                 "m1",
			ConsumptionEntryID: "e1",
			Pre:                models.MoodScores{Energy: 5},
			CreatedAt:          testAsOf.Add(-6 * time.Hour),
		},
	}

	pending := PendingPostMood(moods, []models.ConsumptionEntry{entry}, testAsOf)

	if len(pending) != 1 {
		t.Fatalf("Expected 1 pending post-mood, got %d", len(pending))
	}
	if !almostEqual(pending[0].HoursElapsed, 6) {
		t.Errorf("Expected 6 hours elapsed, got %v", pending[0].HoursElapsed)
	}
	if pending[0].Entry == nil || pending[0].Entry.ID != "e1" {
		t.Error("Expected the linked entry attached")
	}
}
