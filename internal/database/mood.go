package database

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"greenery/internal/models"

	"github.com/google/uuid"
)

func CreateMoodTracking(db *sql.DB, userID int, mood models.MoodTracking) (*models.MoodTracking, error) {
	mood.ID = uuid.New().String()
	mood.UserID = userID
	mood.Post = nil

	query := `
		INSERT INTO mood_tracking (id, user_id, consumption_entry_id, pre_mood_energy, pre_mood_happiness, pre_mood_stress, pre_mood_focus, pre_mood_anxiety, pre_mood_pain, environment, activity, mood_notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, mood.ID, mood.UserID, mood.ConsumptionEntryID,
		mood.Pre.Energy, mood.Pre.Happiness, mood.Pre.Stress, mood.Pre.Focus, mood.Pre.Anxiety, mood.Pre.Pain,
		mood.Environment, mood.Activity, mood.MoodNotes)
	if err != nil {
		return nil, fmt.Errorf("failed to create mood tracking: %w", err)
	}

	mood.CreatedAt = time.Now()
	mood.UpdatedAt = mood.CreatedAt
	return &mood, nil
}

// CompleteMoodTracking fills the post-session half of a pending record. A
// record can only be completed once.
func CompleteMoodTracking(db *sql.DB, userID int, moodID string, post models.MoodScores, onset, duration, intensity, rating *int, sideEffects []string) error {
	query := `
		UPDATE mood_tracking
		SET post_mood_energy = ?, post_mood_happiness = ?, post_mood_stress = ?, post_mood_focus = ?, post_mood_anxiety = ?, post_mood_pain = ?,
			effects_onset_minutes = ?, effects_duration_minutes = ?, effects_intensity = ?, experience_rating = ?, side_effects = ?, updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ? AND post_mood_energy IS NULL
	`

	result, err := db.Exec(query, post.Energy, post.Happiness, post.Stress, post.Focus, post.Anxiety, post.Pain,
		onset, duration, intensity, rating, strings.Join(sideEffects, ","), moodID, userID)
	if err != nil {
		return fmt.Errorf("failed to complete mood tracking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no pending mood record to complete")
	}

	return nil
}

func GetMoodTrackingRecords(db *sql.DB, userID int) ([]models.MoodTracking, error) {
	query := `
		SELECT id, user_id, consumption_entry_id,
			pre_mood_energy, pre_mood_happiness, pre_mood_stress, pre_mood_focus, pre_mood_anxiety, pre_mood_pain,
			post_mood_energy, post_mood_happiness, post_mood_stress, post_mood_focus, post_mood_anxiety, post_mood_pain,
			effects_onset_minutes, effects_duration_minutes, effects_intensity, experience_rating,
			COALESCE(side_effects, ''), COALESCE(environment, ''), COALESCE(activity, ''), COALESCE(mood_notes, ''),
			created_at, updated_at
		FROM mood_tracking
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mood tracking: %w", err)
	}
	defer rows.Close()

	var records []models.MoodTracking
	for rows.Next() {
		record, err := scanMoodTracking(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mood tracking: %w", err)
	}

	return records, nil
}

func GetMoodTrackingByID(db *sql.DB, userID int, moodID string) (*models.MoodTracking, error) {
	query := `
		SELECT id, user_id, consumption_entry_id,
			pre_mood_energy, pre_mood_happiness, pre_mood_stress, pre_mood_focus, pre_mood_anxiety, pre_mood_pain,
			post_mood_energy, post_mood_happiness, post_mood_stress, post_mood_focus, post_mood_anxiety, post_mood_pain,
			effects_onset_minutes, effects_duration_minutes, effects_intensity, experience_rating,
			COALESCE(side_effects, ''), COALESCE(environment, ''), COALESCE(activity, ''), COALESCE(mood_notes, ''),
			created_at, updated_at
		FROM mood_tracking
		WHERE id = ? AND user_id = ?
	`

	record, err := scanMoodTracking(db.QueryRow(query, moodID, userID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("mood record not found")
		}
		return nil, err
	}

	return record, nil
}

func scanMoodTracking(row rowScanner) (*models.MoodTracking, error) {
	var record models.MoodTracking
	var postEnergy, postHappiness, postStress, postFocus, postAnxiety, postPain sql.NullInt64
	var onset, duration, intensity, rating sql.NullInt64
	var sideEffects string

	err := row.Scan(
		&record.ID,
		&record.UserID,
		&record.ConsumptionEntryID,
		&record.Pre.Energy,
		&record.Pre.Happiness,
		&record.Pre.Stress,
		&record.Pre.Focus,
		&record.Pre.Anxiety,
		&record.Pre.Pain,
		&postEnergy,
		&postHappiness,
		&postStress,
		&postFocus,
		&postAnxiety,
		&postPain,
		&onset,
		&duration,
		&intensity,
		&rating,
		&sideEffects,
		&record.Environment,
		&record.Activity,
		&record.MoodNotes,
		&record.CreatedAt,
		&record.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan mood tracking: %w", err)
	}

	if postEnergy.Valid {
		record.Post = &models.MoodScores{
			Energy:    int(postEnergy.Int64),
			Happiness: int(postHappiness.Int64),
			Stress:    int(postStress.Int64),
			Focus:     int(postFocus.Int64),
			Anxiety:   int(postAnxiety.Int64),
			Pain:      int(postPain.Int64),
		}
	}
	if onset.Valid {
		v := int(onset.Int64)
		record.EffectsOnsetMinutes = &v
	}
	if duration.Valid {
		v := int(duration.Int64)
		record.EffectsDurationMinutes = &v
	}
	if intensity.Valid {
		v := int(intensity.Int64)
		record.EffectsIntensity = &v
	}
	if rating.Valid {
		v := int(rating.Int64)
		record.ExperienceRating = &v
	}
	if sideEffects != "" {
		record.SideEffects = strings.Split(sideEffects, ",")
	}

	return &record, nil
}

func DeleteMoodTracking(db *sql.DB, userID int, moodID string) error {
	result, err := db.Exec(`DELETE FROM mood_tracking WHERE id = ? AND user_id = ?`, moodID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete mood tracking: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("mood record not found")
	}

	return nil
}
