package analytics

import (
	"testing"
	"time"

	"greenery/internal/models"
)

var testAsOf = time.Date(2024, 6, 15, 18, 30, 0, 0, time.UTC)

func entryAt(product string, amount float64, consumedAt time.Time) models.ConsumptionEntry {
	return models.ConsumptionEntry{
		ID:          product + consumedAt.Format(time.RFC3339),
		ProductName: product,
		Amount:      amount,
		Unit:        "g",
		ConsumedAt:  consumedAt,
		CreatedAt:   consumedAt,
	}
}

func TestDailyBucketsCoverage(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("Blue Dream", 0.5, testAsOf),
		entryAt("Blue Dream", 0.3, testAsOf.AddDate(0, 0, -3)),
		entryAt("OG Kush", 1.0, testAsOf.AddDate(0, 0, -29)),
	}

	buckets := DailyBuckets(entries, 30, testAsOf)

	if len(buckets) != 30 {
		t.Fatalf("Expected 30 buckets, got %d", len(buckets))
	}

	if !buckets[0].Date.Before(buckets[29].Date) {
		t.Error("Buckets should be ordered oldest first")
	}

	if buckets[29].Amount != 0.5 {
		t.Errorf("Expected 0.5 in the asOf bucket, got %v", buckets[29].Amount)
	}

	if buckets[0].Amount != 1.0 {
		t.Errorf("Expected oldest in-window entry in the first bucket, got %v", buckets[0].Amount)
	}
}

func TestDailyBucketsLosslessPartition(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("A", 0.4, testAsOf),
		entryAt("B", 0.6, testAsOf.AddDate(0, 0, -1)),
		entryAt("C", 1.2, testAsOf.AddDate(0, 0, -10)),
		entryAt("D", 0.8, testAsOf.AddDate(0, 0, -29)),
	}

	var want float64
	for _, e := range entries {
		want += e.Amount
	}

	var got float64
	var count int
	for _, bucket := range DailyBuckets(entries, 30, testAsOf) {
		got += bucket.Amount
		count += bucket.Count
	}

	if got != want {
		t.Errorf("Bucketing lost amount: got %v, want %v", got, want)
	}
	if count != len(entries) {
		t.Errorf("Bucketing lost entries: got %d, want %d", count, len(entries))
	}
}

func TestBucketsMixedLocations(t *testing.T) {
	// The sqlite driver hands timestamps back in UTC while asOf usually
	// carries the server's local zone. Bucketing must not depend on the two
	// sharing a Location.
	asOf := testAsOf.In(time.FixedZone("server", 0))
	entries := []models.ConsumptionEntry{
		entryAt("A", 0.5, testAsOf),
		entryAt("B", 1.5, testAsOf.AddDate(0, 0, -2)),
	}

	var daily, weekly, monthly float64
	for _, bucket := range DailyBuckets(entries, 30, asOf) {
		daily += bucket.Amount
	}
	for _, bucket := range WeeklyBuckets(entries, 12, asOf) {
		weekly += bucket.Amount
	}
	for _, bucket := range MonthlyBuckets(entries, 6, asOf) {
		monthly += bucket.Amount
	}

	if daily != 2.0 {
		t.Errorf("Daily buckets dropped UTC entries: got %v, want 2.0", daily)
	}
	if weekly != 2.0 {
		t.Errorf("Weekly buckets dropped UTC entries: got %v, want 2.0", weekly)
	}
	if monthly != 2.0 {
		t.Errorf("Monthly buckets dropped UTC entries: got %v, want 2.0", monthly)
	}
}

func TestDailyBucketsEmptyInput(t *testing.T) {
	buckets := DailyBuckets(nil, 7, testAsOf)

	if len(buckets) != 7 {
		t.Fatalf("Expected 7 buckets, got %d", len(buckets))
	}
	for _, bucket := range buckets {
		if bucket.Amount != 0 || bucket.Count != 0 {
			t.Errorf("Empty input should yield zeroed buckets, got %+v", bucket)
		}
	}
}

func TestDailyBucketsDropsOutOfWindowEntries(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("Old", 2.0, testAsOf.AddDate(0, 0, -31)),
		entryAt("Future", 1.0, testAsOf.AddDate(0, 0, 1)),
	}

	for _, bucket := range DailyBuckets(entries, 30, testAsOf) {
		if bucket.Count != 0 {
			t.Errorf("Out-of-window entry landed in bucket %v", bucket.Date)
		}
	}
}

func TestWeeklyBucketsCalendarAnchored(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("A", 1.0, testAsOf),
		entryAt("B", 0.5, testAsOf.AddDate(0, 0, -7)),
	}

	buckets := WeeklyBuckets(entries, 12, testAsOf)

	if len(buckets) != 12 {
		t.Fatalf("Expected 12 buckets, got %d", len(buckets))
	}

	for _, bucket := range buckets {
		if bucket.WeekStart.Weekday() != time.Sunday {
			t.Errorf("Week bucket should start on Sunday, got %v", bucket.WeekStart.Weekday())
		}
	}

	if buckets[11].Amount != 1.0 {
		t.Errorf("Expected current week amount 1.0, got %v", buckets[11].Amount)
	}
	if buckets[10].Amount != 0.5 {
		t.Errorf("Expected previous week amount 0.5, got %v", buckets[10].Amount)
	}
}

func TestMonthlyBucketsCalendarAnchored(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("A", 1.0, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)),
		entryAt("B", 2.0, time.Date(2024, 5, 31, 23, 59, 0, 0, time.UTC)),
	}

	buckets := MonthlyBuckets(entries, 2, testAsOf)

	if len(buckets) != 2 {
		t.Fatalf("Expected 2 buckets, got %d", len(buckets))
	}
	if buckets[0].Amount != 2.0 {
		t.Errorf("Expected May amount 2.0, got %v", buckets[0].Amount)
	}
	if buckets[1].Amount != 1.0 {
		t.Errorf("Expected June amount 1.0, got %v", buckets[1].Amount)
	}
}

func TestBucketsDoNotMutateInput(t *testing.T) {
	entries := []models.ConsumptionEntry{
		entryAt("A", 1.0, testAsOf),
		entryAt("B", 2.0, testAsOf.AddDate(0, 0, -1)),
	}
	before := make([]models.ConsumptionEntry, len(entries))
	copy(before, entries)

	DailyBuckets(entries, 30, testAsOf)
	WeeklyBuckets(entries, 12, testAsOf)
	MonthlyBuckets(entries, 6, testAsOf)

	for i := range entries {
		if entries[i] != before[i] {
			t.Fatal("Bucketing mutated its input")
		}
	}
}
