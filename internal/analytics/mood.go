package analytics

import (
	"sort"
	"time"

	"greenery/internal/models"
)

// pendingPreMoodWindow bounds how far back an entry without a mood record is
// still worth prompting for.
const pendingPreMoodWindow = 24 * time.Hour

// MoodDelta is the sign-normalized change across the six tracked scales:
// positive always means improvement. Energy, happiness, and focus report
// post minus pre; stress, anxiety, and pain are inverted because a lower
// post-session score is the improvement.
type MoodDelta struct {
	Energy    float64 `json:"energy"`
	Happiness float64 `json:"happiness"`
	Stress    float64 `json:"stress"`
	Focus     float64 `json:"focus"`
	Anxiety   float64 `json:"anxiety"`
	Pain      float64 `json:"pain"`
}

// PendingPostMoodItem is a mood record still waiting for its post-session
// half, annotated with hours elapsed since the linked session.
type PendingPostMoodItem struct {
	Mood         models.MoodTracking      `json:"mood"`
	Entry        *models.ConsumptionEntry `json:"entry,omitempty"`
	HoursElapsed float64                  `json:"hours_elapsed"`
}

// Deltas computes the sign-normalized mood change for one record. The second
// return is false for records whose post-session scores are still pending.
func Deltas(m models.MoodTracking) (MoodDelta, bool) {
	if !m.Complete() {
		return MoodDelta{}, false
	}
	post := *m.Post
	return MoodDelta{
		Energy:    float64(post.Energy - m.Pre.Energy),
		Happiness: float64(post.Happiness - m.Pre.Happiness),
		Stress:    float64(m.Pre.Stress - post.Stress),
		Focus:     float64(post.Focus - m.Pre.Focus),
		Anxiety:   float64(m.Pre.Anxiety - post.Anxiety),
		Pain:      float64(m.Pre.Pain - post.Pain),
	}, true
}

type moodAccumulator struct {
	strain string
	method string
	sum    MoodDelta
	count  int
}

// SummarizeMoodCorrelations aggregates complete mood records by the strain
// and method of their linked consumption entry and ranks the groups by
// average happiness change, best first. Records whose entry cannot be found
// are grouped under "Unknown".
func SummarizeMoodCorrelations(moods []models.MoodTracking, entries []models.ConsumptionEntry, asOf time.Time) []models.MoodCorrelation {
	entryByID := make(map[string]models.ConsumptionEntry, len(entries))
	for _, entry := range entries {
		entryByID[entry.ID] = entry
	}

	groups := make(map[[2]string]*moodAccumulator)
	var order [][2]string

	for _, mood := range moods {
		delta, ok := Deltas(mood)
		if !ok {
			continue
		}

		strain, method := "Unknown", "Unknown"
		if entry, found := entryByID[mood.ConsumptionEntryID]; found {
			strain = entry.ProductName
			if entry.ConsumptionMethod != "" {
				method = entry.ConsumptionMethod
			}
		}

		key := [2]string{strain, method}
		group, found := groups[key]
		if !found {
			group = &moodAccumulator{strain: strain, method: method}
			groups[key] = group
			order = append(order, key)
		}

		group.sum.Energy += delta.Energy
		group.sum.Happiness += delta.Happiness
		group.sum.Stress += delta.Stress
		group.sum.Focus += delta.Focus
		group.sum.Anxiety += delta.Anxiety
		group.sum.Pain += delta.Pain
		group.count++
	}

	correlations := make([]models.MoodCorrelation, 0, len(order))
	for _, key := range order {
		group := groups[key]
		n := float64(group.count)
		correlations = append(correlations, models.MoodCorrelation{
			StrainName:         group.strain,
			ConsumptionMethod:  group.method,
			AvgEnergyChange:    group.sum.Energy / n,
			AvgHappinessChange: group.sum.Happiness / n,
			AvgStressChange:    group.sum.Stress / n,
			AvgFocusChange:     group.sum.Focus / n,
			AvgAnxietyChange:   group.sum.Anxiety / n,
			AvgPainChange:      group.sum.Pain / n,
			SessionsCount:      group.count,
			LastUpdated:        asOf,
		})
	}

	sort.SliceStable(correlations, func(i, j int) bool {
		return correlations[i].AvgHappinessChange > correlations[j].AvgHappinessChange
	})

	return correlations
}

// BestStrain returns the strain with the highest average happiness change,
// or "" when no correlations exist.
func BestStrain(correlations []models.MoodCorrelation) string {
	best := ""
	bestChange := 0.0
	for i, c := range correlations {
		if i == 0 || c.AvgHappinessChange > bestChange {
			best = c.StrainName
			bestChange = c.AvgHappinessChange
		}
	}
	return best
}

// PendingPreMood surfaces recent entries that have no mood record at all:
// the user logged a session but never captured a pre-mood snapshot.
func PendingPreMood(entries []models.ConsumptionEntry, moods []models.MoodTracking, asOf time.Time) []models.ConsumptionEntry {
	tracked := make(map[string]bool, len(moods))
	for _, mood := range moods {
		tracked[mood.ConsumptionEntryID] = true
	}

	var pending []models.ConsumptionEntry
	for _, entry := range entries {
		if tracked[entry.ID] {
			continue
		}
		age := asOf.Sub(entry.ConsumedAt)
		if age < 0 || age > pendingPreMoodWindow {
			continue
		}
		pending = append(pending, entry)
	}
	return pending
}

// PendingPostMood surfaces mood records whose post-session scores are still
// null, annotated with hours elapsed since the linked consumption.
func PendingPostMood(moods []models.MoodTracking, entries []models.ConsumptionEntry, asOf time.Time) []PendingPostMoodItem {
	entryByID := make(map[string]models.ConsumptionEntry, len(entries))
	for _, entry := range entries {
		entryByID[entry.ID] = entry
	}

	var pending []PendingPostMoodItem
	for _, mood := range moods {
		if mood.Complete() {
			continue
		}

		item := PendingPostMoodItem{Mood: mood}
		since := mood.CreatedAt
		if entry, found := entryByID[mood.ConsumptionEntryID]; found {
			e := entry
			item.Entry = &e
			since = entry.ConsumedAt
		}
		if hours := asOf.Sub(since).Hours(); hours > 0 {
			item.HoursElapsed = hours
		}
		pending = append(pending, item)
	}
	return pending
}
