package database

import (
	"database/sql"
	"fmt"
	"math"
	"time"

	"greenery/internal/models"

	"github.com/google/uuid"
)

func CreateRawProduct(db *sql.DB, userID int, product models.RawProduct) (*models.RawProduct, error) {
	product.ID = uuid.New().String()
	product.UserID = userID
	if product.OriginalAmount == 0 {
		product.OriginalAmount = product.CurrentAmount
	}
	if product.PurchaseDate.IsZero() {
		product.PurchaseDate = time.Now()
	}

	query := `
		INSERT INTO raw_products (id, user_id, product_type, strain_name, source, quality_notes, thc_content, cbd_content, current_amount, original_amount, cost, purchase_date)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, product.ID, product.UserID, product.ProductType, product.StrainName,
		product.Source, product.QualityNotes, product.THCContent, product.CBDContent,
		product.CurrentAmount, product.OriginalAmount, product.Cost, product.PurchaseDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create raw product: %w", err)
	}

	product.CreatedAt = time.Now()
	return &product, nil
}

func GetRawProducts(db *sql.DB, userID int) ([]models.RawProduct, error) {
	query := `
		SELECT id, user_id, product_type, strain_name, source, COALESCE(quality_notes, ''), thc_content, cbd_content, current_amount, original_amount, cost, purchase_date, created_at
		FROM raw_products
		WHERE user_id = ?
		ORDER BY purchase_date DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query raw products: %w", err)
	}
	defer rows.Close()

	var products []models.RawProduct
	for rows.Next() {
		product, err := scanRawProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, *product)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating raw products: %w", err)
	}

	return products, nil
}

func GetRawProductByID(db *sql.DB, userID int, productID string) (*models.RawProduct, error) {
	query := `
		SELECT id, user_id, product_type, strain_name, source, COALESCE(quality_notes, ''), thc_content, cbd_content, current_amount, original_amount, cost, purchase_date, created_at
		FROM raw_products
		WHERE id = ? AND user_id = ?
	`

	row := db.QueryRow(query, productID, userID)
	product, err := scanRawProduct(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("raw product not found")
		}
		return nil, err
	}

	return product, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRawProduct(row rowScanner) (*models.RawProduct, error) {
	var product models.RawProduct
	var source sql.NullString
	var thc, cbd, cost sql.NullFloat64

	err := row.Scan(
		&product.ID,
		&product.UserID,
		&product.ProductType,
		&product.StrainName,
		&source,
		&product.QualityNotes,
		&thc,
		&cbd,
		&product.CurrentAmount,
		&product.OriginalAmount,
		&cost,
		&product.PurchaseDate,
		&product.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan raw product: %w", err)
	}

	if source.Valid {
		product.Source = &source.String
	}
	if thc.Valid {
		product.THCContent = &thc.Float64
	}
	if cbd.Valid {
		product.CBDContent = &cbd.Float64
	}
	if cost.Valid {
		product.Cost = &cost.Float64
	}

	return &product, nil
}

func UpdateRawProduct(db *sql.DB, userID int, product models.RawProduct) error {
	query := `
		UPDATE raw_products
		SET product_type = ?, strain_name = ?, source = ?, quality_notes = ?, thc_content = ?, cbd_content = ?, current_amount = ?, cost = ?, purchase_date = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := db.Exec(query, product.ProductType, product.StrainName, product.Source,
		product.QualityNotes, product.THCContent, product.CBDContent, product.CurrentAmount,
		product.Cost, product.PurchaseDate, product.ID, userID)
	if err != nil {
		return fmt.Errorf("failed to update raw product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("raw product not found")
	}

	return nil
}

func DeleteRawProduct(db *sql.DB, userID int, productID string) error {
	result, err := db.Exec(`DELETE FROM raw_products WHERE id = ? AND user_id = ?`, productID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete raw product: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("raw product not found")
	}

	return nil
}

// ConvertToConsumable moves grams out of a raw product into a new batch of
// discrete consumable units. The depletion and the consumable insert commit
// together or not at all, and a conversion can never take more grams than
// the product has left.
func ConvertToConsumable(db *sql.DB, userID int, productID string, consumable models.Consumable, gramsUsed float64) (*models.Consumable, error) {
	if gramsUsed <= 0 {
		return nil, fmt.Errorf("grams used must be positive")
	}
	if consumable.Quantity <= 0 {
		return nil, fmt.Errorf("quantity must be positive")
	}
	if consumable.GramsPerUnit <= 0 {
		consumable.GramsPerUnit = gramsUsed / float64(consumable.Quantity)
	}

	tx, err := db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var strainName string
	var currentAmount float64
	var thc sql.NullFloat64
	var cost sql.NullFloat64
	var originalAmount float64
	query := `SELECT strain_name, current_amount, original_amount, thc_content, cost FROM raw_products WHERE id = ? AND user_id = ?`
	err = tx.QueryRow(query, productID, userID).Scan(&strainName, &currentAmount, &originalAmount, &thc, &cost)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("raw product not found")
		}
		return nil, fmt.Errorf("failed to query raw product: %w", err)
	}

	if gramsUsed > currentAmount {
		return nil, fmt.Errorf("only %.2fg remaining, cannot convert %.2fg", currentAmount, gramsUsed)
	}

	_, err = tx.Exec(`UPDATE raw_products SET current_amount = current_amount - ? WHERE id = ?`, gramsUsed, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to deplete raw product: %w", err)
	}

	consumable.ID = uuid.New().String()
	consumable.UserID = userID
	if consumable.SourceStrain == nil {
		consumable.SourceStrain = &strainName
	}
	if consumable.THCContent == nil && thc.Valid {
		consumable.THCContent = &thc.Float64
	}
	if consumable.CostPerUnit == nil && cost.Valid && originalAmount > 0 {
		perUnit := cost.Float64 / originalAmount * gramsUsed / float64(consumable.Quantity)
		perUnit = math.Round(perUnit*100) / 100
		consumable.CostPerUnit = &perUnit
	}

	insert := `
		INSERT INTO consumables (id, user_id, consumable_type, name, quantity, grams_per_unit, cost_per_unit, source_strain, thc_content, notes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.Exec(insert, consumable.ID, consumable.UserID, consumable.ConsumableType,
		consumable.Name, consumable.Quantity, consumable.GramsPerUnit, consumable.CostPerUnit,
		consumable.SourceStrain, consumable.THCContent, consumable.Notes)
	if err != nil {
		return nil, fmt.Errorf("failed to create consumable: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit conversion: %w", err)
	}

	consumable.CreatedAt = time.Now()
	return &consumable, nil
}
