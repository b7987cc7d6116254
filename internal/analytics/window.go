// Package analytics is the consumption and inventory analytics engine: pure
// data-transformation functions turning raw event logs into the derived
// metrics shown on the dashboard. Every time-windowed function takes an
// explicit asOf timestamp, never wall-clock time; no function here touches
// storage, mutates its inputs, or returns NaN/Infinity.
package analytics

import (
	"time"

	"greenery/internal/models"
)

// DayBucket is one calendar day of a trailing window. Days without data are
// present with Amount 0 and Count 0.
type DayBucket struct {
	Date    time.Time                 `json:"date"`
	Entries []models.ConsumptionEntry `json:"-"`
	Amount  float64                   `json:"amount"`
	Count   int                       `json:"count"`
}

// WeekBucket is one calendar week (Sunday through Saturday).
type WeekBucket struct {
	WeekStart time.Time                 `json:"week_start"`
	Entries   []models.ConsumptionEntry `json:"-"`
	Amount    float64                   `json:"amount"`
	Count     int                       `json:"count"`
}

// MonthBucket is one calendar month.
type MonthBucket struct {
	MonthStart time.Time                 `json:"month_start"`
	Entries    []models.ConsumptionEntry `json:"-"`
	Amount     float64                   `json:"amount"`
	Count      int                       `json:"count"`
}

// DailyBuckets slices entries into one bucket per calendar day over the
// trailing window [asOf-windowDays+1, asOf], oldest first. Entries outside
// the window are dropped; days without entries yield empty buckets.
func DailyBuckets(entries []models.ConsumptionEntry, windowDays int, asOf time.Time) []DayBucket {
	if windowDays <= 0 {
		return nil
	}

	loc := asOf.Location()
	start := startOfDay(asOf).AddDate(0, 0, -(windowDays - 1))
	buckets := make([]DayBucket, windowDays)
	index := make(map[time.Time]int, windowDays)
	for i := 0; i < windowDays; i++ {
		day := start.AddDate(0, 0, i)
		buckets[i] = DayBucket{Date: day}
		index[day] = i
	}

	for _, entry := range entries {
		// Entry timestamps come back from the database in UTC; bucket them
		// in asOf's zone so the calendar lines up and the keys compare equal.
		day := startOfDay(entry.ConsumedAt.In(loc))
		i, ok := index[day]
		if !ok {
			continue
		}
		buckets[i].Entries = append(buckets[i].Entries, entry)
		buckets[i].Amount += entry.Amount
		buckets[i].Count++
	}

	return buckets
}

// WeeklyBuckets slices entries into calendar-week buckets covering the
// numWeeks weeks up to and including the week of asOf, oldest first. Weeks
// are anchored to their Sunday start, not rolling 7-day windows.
func WeeklyBuckets(entries []models.ConsumptionEntry, numWeeks int, asOf time.Time) []WeekBucket {
	if numWeeks <= 0 {
		return nil
	}

	loc := asOf.Location()
	start := startOfWeek(asOf).AddDate(0, 0, -7*(numWeeks-1))
	buckets := make([]WeekBucket, numWeeks)
	index := make(map[time.Time]int, numWeeks)
	for i := 0; i < numWeeks; i++ {
		week := start.AddDate(0, 0, 7*i)
		buckets[i] = WeekBucket{WeekStart: week}
		index[week] = i
	}

	for _, entry := range entries {
		week := startOfWeek(entry.ConsumedAt.In(loc))
		i, ok := index[week]
		if !ok {
			continue
		}
		buckets[i].Entries = append(buckets[i].Entries, entry)
		buckets[i].Amount += entry.Amount
		buckets[i].Count++
	}

	return buckets
}

// MonthlyBuckets slices entries into calendar-month buckets covering the
// numMonths months up to and including the month of asOf, oldest first.
func MonthlyBuckets(entries []models.ConsumptionEntry, numMonths int, asOf time.Time) []MonthBucket {
	if numMonths <= 0 {
		return nil
	}

	loc := asOf.Location()
	start := startOfMonth(asOf).AddDate(0, -(numMonths - 1), 0)
	buckets := make([]MonthBucket, numMonths)
	index := make(map[time.Time]int, numMonths)
	for i := 0; i < numMonths; i++ {
		month := start.AddDate(0, i, 0)
		buckets[i] = MonthBucket{MonthStart: month}
		index[month] = i
	}

	for _, entry := range entries {
		month := startOfMonth(entry.ConsumedAt.In(loc))
		i, ok := index[month]
		if !ok {
			continue
		}
		buckets[i].Entries = append(buckets[i].Entries, entry)
		buckets[i].Amount += entry.Amount
		buckets[i].Count++
	}

	return buckets
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// startOfWeek anchors to Sunday, matching the charting convention the
// dashboard uses.
func startOfWeek(t time.Time) time.Time {
	day := startOfDay(t)
	return day.AddDate(0, 0, -int(day.Weekday()))
}

func startOfMonth(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}
