package database

import (
	"database/sql"
	"fmt"
	"time"

	"greenery/internal/models"

	"github.com/google/uuid"
)

func CreateConsumable(db *sql.DB, userID int, consumable models.Consumable) (*models.Consumable, error) {
	consumable.ID = uuid.New().String()
	consumable.UserID = userID

	query := `
		INSERT INTO consumables (id, user_id, consumable_type, name, quantity, grams_per_unit, cost_per_unit, source_strain, thc_content, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, consumable.ID, consumable.UserID, consumable.ConsumableType,
		consumable.Name, consumable.Quantity, consumable.GramsPerUnit, consumable.CostPerUnit,
		consumable.SourceStrain, consumable.THCContent, consumable.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumable: %w", err)
	}

	consumable.CreatedAt = time.Now()
	return &consumable, nil
}

func GetConsumables(db *sql.DB, userID int) ([]models.Consumable, error) {
	query := `
		SELECT id, user_id, consumable_type, name, quantity, grams_per_unit, cost_per_unit, source_strain, thc_content, COALESCE(notes, ''), created_at
		FROM consumables
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query consumables: %w", err)
	}
	defer rows.Close()

	var consumables []models.Consumable
	for rows.Next() {
		consumable, err := scanConsumable(rows)
		if err != nil {
			return nil, err
		}
		consumables = append(consumables, *consumable)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating consumables: %w", err)
	}

	return consumables, nil
}

func GetConsumableByID(db *sql.DB, userID int, consumableID string) (*models.Consumable, error) {
	query := `
		SELECT id, user_id, consumable_type, name, quantity, grams_per_unit, cost_per_unit, source_strain, thc_content, COALESCE(notes, ''), created_at
		FROM consumables
		WHERE id = ? AND user_id = ?
	`

	row := db.QueryRow(query, consumableID, userID)
	consumable, err := scanConsumable(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("consumable not found")
		}
		return nil, err
	}

	return consumable, nil
}

func scanConsumable(row rowScanner) (*models.Consumable, error) {
	var consumable models.Consumable
	var costPerUnit, thc sql.NullFloat64
	var sourceStrain sql.NullString

	err := row.Scan(
		&consumable.ID,
		&consumable.UserID,
		&consumable.ConsumableType,
		&consumable.Name,
		&consumable.Quantity,
		&consumable.GramsPerUnit,
		&costPerUnit,
		&sourceStrain,
		&thc,
		&consumable.Notes,
		&consumable.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan consumable: %w", err)
	}

	if costPerUnit.Valid {
		consumable.CostPerUnit = &costPerUnit.Float64
	}
	if sourceStrain.Valid {
		consumable.SourceStrain = &sourceStrain.String
	}
	if thc.Valid {
		consumable.THCContent = &thc.Float64
	}

	return &consumable, nil
}

func UpdateConsumable(db *sql.DB, userID int, consumable models.Consumable) error {
	query := `
		UPDATE consumables
		SET consumable_type = ?, name = ?, quantity = ?, grams_per_unit = ?, cost_per_unit = ?, notes = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := db.Exec(query, consumable.ConsumableType, consumable.Name, consumable.Quantity,
		consumable.GramsPerUnit, consumable.CostPerUnit, consumable.Notes, consumable.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update consumable: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("consumable not found")
	}

	return nil
}

func DeleteConsumable(db *sql.DB, userID int, consumableID string) error {
	result, err := db.Exec(`DELETE FROM consumables WHERE id = ? AND user_id = ?`, consumableID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete consumable: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("consumable not found")
	}

	return nil
}
