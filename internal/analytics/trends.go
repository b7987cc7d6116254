package analytics

import (
	"sort"
	"time"

	"greenery/internal/catalog"
	"greenery/internal/models"
)

const (
	dailyChartDays   = 30
	recentWindowDays = 7
	topProductsLimit = 5
	weeklyTrendWeeks = 12
)

// ConsumptionSummary is the daily-chart rollup plus its headline KPIs. The
// daily average is computed over days that actually have data, preferring
// the most recent 7-day window when it has any.
type ConsumptionSummary struct {
	Days              []DayBucket `json:"days"`
	TotalEntries      int         `json:"total_entries"`
	TotalAmount       float64     `json:"total_amount"`
	DailyAverage      float64     `json:"daily_average"`
	AverageWindowDays int         `json:"average_window_days"`
}

// ProductTotal ranks one product by amount consumed.
type ProductTotal struct {
	Product string  `json:"product"`
	Amount  float64 `json:"amount"`
	Count   int     `json:"count"`
}

// MethodBreakdown compares delivery methods by raw and efficiency-adjusted
// grams.
type MethodBreakdown struct {
	Method            string  `json:"method"`
	EfficiencyPercent int     `json:"efficiency_percent"`
	TotalGrams        float64 `json:"total_grams"`
	EffectiveGrams    float64 `json:"effective_grams"`
	Sessions          int     `json:"sessions"`
}

// WeekSummary is one calendar week of the trailing trend chart.
type WeekSummary struct {
	WeekStart time.Time `json:"week_start"`
	Grams     float64   `json:"grams"`
	Sessions  int       `json:"sessions"`
	AvgRating float64   `json:"avg_rating"`
}

// SummarizeConsumption buckets the trailing 30 days and derives the daily
// average KPI. When the last 7 days hold any data the average uses that
// window; otherwise it falls back to the full 30-day days-with-data average.
// An empty log yields zeros, never NaN.
func SummarizeConsumption(entries []models.ConsumptionEntry, asOf time.Time) ConsumptionSummary {
	days := DailyBuckets(entries, dailyChartDays, asOf)

	summary := ConsumptionSummary{Days: days, AverageWindowDays: dailyChartDays}

	var totalAmount float64
	var daysWithData int
	for _, day := range days {
		totalAmount += day.Amount
		summary.TotalEntries += day.Count
		if day.Amount > 0 {
			daysWithData++
		}
	}
	summary.TotalAmount = totalAmount

	var recentTotal float64
	var recentDaysWithData int
	for _, day := range days[len(days)-recentWindowDays:] {
		recentTotal += day.Amount
		if day.Amount > 0 {
			recentDaysWithData++
		}
	}

	switch {
	case recentDaysWithData > 0:
		summary.DailyAverage = recentTotal / float64(recentDaysWithData)
		summary.AverageWindowDays = recentWindowDays
	case daysWithData > 0:
		summary.DailyAverage = totalAmount / float64(daysWithData)
	}

	return summary
}

// TopProducts groups entries by product name and returns the top n by total
// amount, descending, preserving encounter order on ties.
func TopProducts(entries []models.ConsumptionEntry, n int) []ProductTotal {
	totals := make(map[string]*ProductTotal)
	var order []string

	for _, entry := range entries {
		t, ok := totals[entry.ProductName]
		if !ok {
			t = &ProductTotal{Product: entry.ProductName}
			totals[entry.ProductName] = t
			order = append(order, entry.ProductName)
		}
		t.Amount += entry.Amount
		t.Count++
	}

	ranked := make([]ProductTotal, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, *totals[name])
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Amount > ranked[j].Amount
	})

	if n <= 0 {
		n = topProductsLimit
	}
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// CompareMethods computes total and efficiency-adjusted grams per catalog
// method. Methods with zero sessions are dropped.
func CompareMethods(entries []models.ConsumptionEntry) []MethodBreakdown {
	var breakdowns []MethodBreakdown
	for _, method := range catalog.ConsumptionMethods {
		var totalGrams float64
		var sessions int
		for _, entry := range entries {
			if entry.ConsumptionMethod != method.Name {
				continue
			}
			totalGrams += entry.Amount
			sessions++
		}
		if sessions == 0 {
			continue
		}
		breakdowns = append(breakdowns, MethodBreakdown{
			Method:            method.Name,
			EfficiencyPercent: int(method.Efficiency*100 + 0.5),
			TotalGrams:        totalGrams,
			EffectiveGrams:    totalGrams * method.Efficiency,
			Sessions:          sessions,
		})
	}
	return breakdowns
}

// WeeklyTrend rolls the trailing 12 calendar weeks up into grams, session
// counts, and average ratings per week.
func WeeklyTrend(entries []models.ConsumptionEntry, asOf time.Time) []WeekSummary {
	buckets := WeeklyBuckets(entries, weeklyTrendWeeks, asOf)

	trend := make([]WeekSummary, 0, len(buckets))
	for _, bucket := range buckets {
		week := WeekSummary{
			WeekStart: bucket.WeekStart,
			Grams:     bucket.Amount,
			Sessions:  bucket.Count,
		}
		var ratingSum float64
		var rated int
		for _, entry := range bucket.Entries {
			if entry.Rating != nil {
				ratingSum += float64(*entry.Rating)
				rated++
			}
		}
		if rated > 0 {
			week.AvgRating = ratingSum / float64(rated)
		}
		trend = append(trend, week)
	}
	return trend
}
