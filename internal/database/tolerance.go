package database

import (
	"database/sql"
	"fmt"
	"time"

	"greenery/internal/models"

	"github.com/google/uuid"
)

func CreateToleranceRecord(db *sql.DB, userID int, record models.ToleranceTracking) (*models.ToleranceTracking, error) {
	record.ID = uuid.New().String()
	record.UserID = userID
	if record.TrackingDate.IsZero() {
		record.TrackingDate = time.Now()
	}

	query := `
		INSERT INTO tolerance_tracking (id, user_id, tracking_date, baseline_amount, effectiveness_rating, tolerance_break_start, tolerance_break_end, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, record.ID, record.UserID, record.TrackingDate, record.BaselineAmount,
		record.EffectivenessRating, record.ToleranceBreakStart, record.ToleranceBreakEnd, record.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to create tolerance record: %w", err)
	}

	record.CreatedAt = time.Now()
	return &record, nil
}

// GetToleranceRecords returns the user's check-ins newest first, the order
// the trend analysis expects.
func GetToleranceRecords(db *sql.DB, userID int) ([]models.ToleranceTracking, error) {
	query := `
		SELECT id, user_id, tracking_date, baseline_amount, effectiveness_rating, tolerance_break_start, tolerance_break_end, COALESCE(notes, ''), created_at
		FROM tolerance_tracking
		WHERE user_id = ?
		ORDER BY tracking_date DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tolerance records: %w", err)
	}
	defer rows.Close()

	var records []models.ToleranceTracking
	for rows.Next() {
		var record models.ToleranceTracking
		var breakStart, breakEnd sql.NullTime

		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.TrackingDate,
			&record.BaselineAmount,
			&record.EffectivenessRating,
			&breakStart,
			&breakEnd,
			&record.Notes,
			&record.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tolerance record: %w", err)
		}

		if breakStart.Valid {
			record.ToleranceBreakStart = &breakStart.Time
		}
		if breakEnd.Valid {
			record.ToleranceBreakEnd = &breakEnd.Time
		}

		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tolerance records: %w", err)
	}

	return records, nil
}

// EndToleranceBreak closes the given record's open break. It fails if the
// break was never started or is already closed.
func EndToleranceBreak(db *sql.DB, userID int, recordID string, endDate time.Time) error {
	query := `
		UPDATE tolerance_tracking
		SET tolerance_break_end = ?
		WHERE id = ? AND user_id = ? AND tolerance_break_start IS NOT NULL AND tolerance_break_end IS NULL
	`

	result, err := db.Exec(query, endDate, recordID, userID)
	if err != nil {
		return fmt.Errorf("failed to end tolerance break: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("no open tolerance break on this record")
	}

	return nil
}

func DeleteToleranceRecord(db *sql.DB, userID int, recordID string) error {
	result, err := db.Exec(`DELETE FROM tolerance_tracking WHERE id = ? AND user_id = ?`, recordID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete tolerance record: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("tolerance record not found")
	}

	return nil
}
