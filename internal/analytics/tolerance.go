package analytics

import (
	"time"

	"greenery/internal/models"
)

// Tunable policy thresholds for the break recommendation, not hard
// physiology.
const (
	toleranceWindowSize        = 5
	toleranceIncreaseThreshold = 50.0
	effectivenessDropThreshold = -20.0
)

// ToleranceInsights classifies the tolerance trajectory by comparing the
// five most recent check-ins against the five before them.
type ToleranceInsights struct {
	RecentAvgBaseline          float64                   `json:"recent_avg_baseline"`
	RecentAvgEffectiveness     float64                   `json:"recent_avg_effectiveness"`
	ToleranceIncreasePercent   float64                   `json:"tolerance_increase_percent"`
	EffectivenessChangePercent float64                   `json:"effectiveness_change_percent"`
	NeedsBreak                 bool                      `json:"needs_break"`
	ActiveBreak                *models.ToleranceTracking `json:"active_break,omitempty"`
}

// AnalyzeTolerance expects records ordered newest-first, as the store returns
// them. It returns nil when fewer than two check-ins exist. When the older
// comparison window is empty its averages are treated as equal to the recent
// ones, yielding 0% change instead of a false trend signal.
func AnalyzeTolerance(records []models.ToleranceTracking, asOf time.Time) *ToleranceInsights {
	if len(records) < 2 {
		return nil
	}

	recent := records[:min(toleranceWindowSize, len(records))]
	var older []models.ToleranceTracking
	if len(records) > toleranceWindowSize {
		older = records[toleranceWindowSize:min(2*toleranceWindowSize, len(records))]
	}

	recentAvgBaseline, recentAvgEffectiveness := toleranceAverages(recent)
	olderAvgBaseline, olderAvgEffectiveness := recentAvgBaseline, recentAvgEffectiveness
	if len(older) > 0 {
		olderAvgBaseline, olderAvgEffectiveness = toleranceAverages(older)
	}

	insights := &ToleranceInsights{
		RecentAvgBaseline:      recentAvgBaseline,
		RecentAvgEffectiveness: recentAvgEffectiveness,
		ActiveBreak:            activeBreak(records, asOf),
	}

	if olderAvgBaseline > 0 {
		insights.ToleranceIncreasePercent = (recentAvgBaseline - olderAvgBaseline) / olderAvgBaseline * 100
	}
	if olderAvgEffectiveness > 0 {
		insights.EffectivenessChangePercent = (recentAvgEffectiveness - olderAvgEffectiveness) / olderAvgEffectiveness * 100
	}

	insights.NeedsBreak = insights.ToleranceIncreasePercent > toleranceIncreaseThreshold ||
		insights.EffectivenessChangePercent < effectivenessDropThreshold

	return insights
}

// activeBreak surfaces the first record, in newest-first order, whose break
// interval has started and not yet ended relative to asOf.
func activeBreak(records []models.ToleranceTracking, asOf time.Time) *models.ToleranceTracking {
	for i := range records {
		record := records[i]
		if record.ToleranceBreakStart == nil {
			continue
		}
		if record.ToleranceBreakEnd == nil || record.ToleranceBreakEnd.After(asOf) {
			return &records[i]
		}
	}
	return nil
}

func toleranceAverages(records []models.ToleranceTracking) (avgBaseline, avgEffectiveness float64) {
	if len(records) == 0 {
		return 0, 0
	}
	for _, record := range records {
		avgBaseline += record.BaselineAmount
		avgEffectiveness += float64(record.EffectivenessRating)
	}
	n := float64(len(records))
	return avgBaseline / n, avgEffectiveness / n
}
