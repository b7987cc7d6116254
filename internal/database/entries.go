package database

import (
	"database/sql"
	"fmt"
	"time"

	"greenery/internal/models"

	"github.com/google/uuid"
)

func CreateConsumptionEntry(db *sql.DB, userID int, entry models.ConsumptionEntry) (*models.ConsumptionEntry, error) {
	entry.ID = uuid.New().String()
	entry.UserID = userID
	if entry.Unit == "" {
		entry.Unit = "g"
	}
	if entry.ConsumedAt.IsZero() {
		entry.ConsumedAt = time.Now()
	}

	query := `
		INSERT INTO consumption_entries (id, user_id, product_name, amount, unit, consumption_method, consumable_id, units_consumed, rating, notes, consumed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, entry.ID, entry.UserID, entry.ProductName, entry.Amount, entry.Unit,
		entry.ConsumptionMethod, entry.ConsumableID, entry.UnitsConsumed, entry.Rating, entry.Notes, entry.ConsumedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumption entry: %w", err)
	}

	entry.CreatedAt = time.Now()
	return &entry, nil
}

// CreateEntryFromConsumable logs a session of unitsConsumed units of a
// consumable and decrements its quantity in the same transaction. The grams
// recorded on the entry are unitsConsumed * grams_per_unit.
func CreateEntryFromConsumable(db *sql.DB, userID int, consumableID string, unitsConsumed float64, method string, rating *int, notes string, consumedAt time.Time) (*models.ConsumptionEntry, error) {
	if unitsConsumed <= 0 {
		return nil, fmt.Errorf("units consumed must be positive")
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var name string
	var quantity int
	var gramsPerUnit float64
	query := `SELECT name, quantity, grams_per_unit FROM consumables WHERE id = ? AND user_id = ?`
	err = tx.QueryRow(query, consumableID, userID).Scan(&name, &quantity, &gramsPerUnit)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("consumable not found")
		}
		return nil, fmt.Errorf("failed to query consumable: %w", err)
	}

	units := int(unitsConsumed + 0.5)
	if units > quantity {
		return nil, fmt.Errorf("only %d units remaining", quantity)
	}

	_, err = tx.Exec(`UPDATE consumables SET quantity = quantity - ? WHERE id = ?`, units, consumableID)
	if err != nil {
		return nil, fmt.Errorf("failed to deplete consumable: %w", err)
	}

	if consumedAt.IsZero() {
		consumedAt = time.Now()
	}

	entry := models.ConsumptionEntry{
		ID:                uuid.New().String(),
		UserID:            userID,
		ProductName:       name,
		Amount:            unitsConsumed * gramsPerUnit,
		Unit:              "g",
		ConsumptionMethod: method,
		ConsumableID:      &consumableID,
		UnitsConsumed:     &unitsConsumed,
		Rating:            rating,
		Notes:             notes,
		ConsumedAt:        consumedAt,
		CreatedAt:         time.Now(),
	}

	insert := `
		INSERT INTO consumption_entries (id, user_id, product_name, amount, unit, consumption_method, consumable_id, units_consumed, rating, notes, consumed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(insert, entry.ID, entry.UserID, entry.ProductName, entry.Amount, entry.Unit,
		entry.ConsumptionMethod, entry.ConsumableID, entry.UnitsConsumed, entry.Rating, entry.Notes, entry.ConsumedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumption entry: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit entry: %w", err)
	}

	return &entry, nil
}

func GetConsumptionEntries(db *sql.DB, userID int) ([]models.ConsumptionEntry, error) {
	query := `
		SELECT id, user_id, product_name, amount, unit, COALESCE(consumption_method, ''), consumable_id, units_consumed, rating, COALESCE(notes, ''), consumed_at, created_at
		FROM consumption_entries
		WHERE user_id = ?
		ORDER BY consumed_at DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query consumption entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func GetConsumptionEntriesSince(db *sql.DB, userID int, since time.Time) ([]models.ConsumptionEntry, error) {
	query := `
		SELECT id, user_id, product_name, amount, unit, COALESCE(consumption_method, ''), consumable_id, units_consumed, rating, COALESCE(notes, ''), consumed_at, created_at
		FROM consumption_entries
		WHERE user_id = ? AND consumed_at >= ?
		ORDER BY consumed_at DESC
	`

	rows, err := db.Query(query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query consumption entries: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func scanEntries(rows *sql.Rows) ([]models.ConsumptionEntry, error) {
	var entries []models.ConsumptionEntry
	for rows.Next() {
		var entry models.ConsumptionEntry
		var consumableID sql.NullString
		var unitsConsumed sql.NullFloat64
		var rating sql.NullInt64

		err := rows.Scan(
			&entry.ID,
			&entry.UserID,
			&entry.ProductName,
			&entry.Amount,
			&entry.Unit,
			&entry.ConsumptionMethod,
			&consumableID,
			&unitsConsumed,
			&rating,
			&entry.Notes,
			&entry.ConsumedAt,
			&entry.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan consumption entry: %w", err)
		}

		if consumableID.Valid {
			entry.ConsumableID = &consumableID.String
		}
		if unitsConsumed.Valid {
			entry.UnitsConsumed = &unitsConsumed.Float64
		}
		if rating.Valid {
			r := int(rating.Int64)
			entry.Rating = &r
		}

		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consumption entries: %w", err)
	}

	return entries, nil
}

func UpdateConsumptionEntry(db *sql.DB, userID int, entry models.ConsumptionEntry) error {
	query := `
		UPDATE consumption_entries
		SET product_name = ?, amount = ?, unit = ?, consumption_method = ?, rating = ?, notes = ?, consumed_at = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := db.Exec(query, entry.ProductName, entry.Amount, entry.Unit, entry.ConsumptionMethod,
		entry.Rating, entry.Notes, entry.ConsumedAt, entry.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update consumption entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("consumption entry not found")
	}

	return nil
}

func DeleteConsumptionEntry(db *sql.DB, userID int, entryID string) error {
	result, err := db.Exec(`DELETE FROM consumption_entries WHERE id = ? AND user_id = ?`, entryID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete consumption entry: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("consumption entry not found")
	}

	return nil
}
