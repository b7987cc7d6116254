package database

import (
	"database/sql"
	"fmt"
	"time"

	"greenery/internal/models"

	"github.com/google/uuid"
)

// UpsertBudgetSettings creates or replaces the user's single budget
// configuration row.
func UpsertBudgetSettings(db *sql.DB, userID int, settings models.BudgetSettings) (*models.BudgetSettings, error) {
	settings.UserID = userID
	if settings.AlertThreshold <= 0 {
		settings.AlertThreshold = 80
	}

	query := `
		INSERT INTO budget_settings (id, user_id, monthly_budget, weekly_budget, alert_threshold, email_alerts, push_alerts)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			monthly_budget = excluded.monthly_budget,
			weekly_budget = excluded.weekly_budget,
			alert_threshold = excluded.alert_threshold,
			email_alerts = excluded.email_alerts,
			push_alerts = excluded.push_alerts,
			updated_at = CURRENT_TIMESTAMP
	`

	_, err := db.Exec(query, uuid.New().String(), settings.UserID, settings.MonthlyBudget,
		settings.WeeklyBudget, settings.AlertThreshold, settings.EmailAlerts, settings.PushAlerts)
	if err != nil {
		return nil, fmt.Errorf("failed to save budget settings: %w", err)
	}

	return GetBudgetSettings(db, userID)
}

func GetBudgetSettings(db *sql.DB, userID int) (*models.BudgetSettings, error) {
	query := `
		SELECT id, user_id, monthly_budget, weekly_budget, alert_threshold, email_alerts, push_alerts, created_at, updated_at
		FROM budget_settings
		WHERE user_id = ?
	`

	var settings models.BudgetSettings
	var weeklyBudget sql.NullFloat64

	err := db.QueryRow(query, userID).Scan(
		&settings.ID,
		&settings.UserID,
		&settings.MonthlyBudget,
		&weeklyBudget,
		&settings.AlertThreshold,
		&settings.EmailAlerts,
		&settings.PushAlerts,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query budget settings: %w", err)
	}

	if weeklyBudget.Valid {
		settings.WeeklyBudget = &weeklyBudget.Float64
	}

	return &settings, nil
}

func CreateBudgetAlert(db *sql.DB, userID int, alert models.BudgetAlert) (*models.BudgetAlert, error) {
	alert.ID = uuid.New().String()
	alert.UserID = userID
	if alert.AlertDate.IsZero() {
		alert.AlertDate = time.Now()
	}

	query := `
		INSERT INTO budget_alerts (id, user_id, alert_type, current_spending, budget_limit, percentage_used, alert_date)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := db.Exec(query, alert.ID, alert.UserID, alert.AlertType, alert.CurrentSpending,
		alert.BudgetLimit, alert.PercentageUsed, alert.AlertDate)
	if err != nil {
		return nil, fmt.Errorf("failed to create budget alert: %w", err)
	}

	return &alert, nil
}

func GetBudgetAlerts(db *sql.DB, userID int) ([]models.BudgetAlert, error) {
	query := `
		SELECT id, user_id, alert_type, current_spending, budget_limit, percentage_used, alert_date, acknowledged, acknowledged_at
		FROM budget_alerts
		WHERE user_id = ?
		ORDER BY alert_date DESC
	`

	rows, err := db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query budget alerts: %w", err)
	}
	defer rows.Close()

	var alerts []models.BudgetAlert
	for rows.Next() {
		var alert models.BudgetAlert
		var acknowledgedAt sql.NullTime

		err := rows.Scan(
			&alert.ID,
			&alert.UserID,
			&alert.AlertType,
			&alert.CurrentSpending,
			&alert.BudgetLimit,
			&alert.PercentageUsed,
			&alert.AlertDate,
			&alert.Acknowledged,
			&acknowledgedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget alert: %w", err)
		}

		if acknowledgedAt.Valid {
			alert.AcknowledgedAt = &acknowledgedAt.Time
		}

		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating budget alerts: %w", err)
	}

	return alerts, nil
}

// HasRecentAlert reports whether an alert of this type was already raised
// for the user in the current calendar month, so threshold crossings only
// notify once.
func HasRecentAlert(db *sql.DB, userID int, alertType string, since time.Time) (bool, error) {
	var count int
	query := `SELECT COUNT(*) FROM budget_alerts WHERE user_id = ? AND alert_type = ? AND alert_date >= ?`
	err := db.QueryRow(query, userID, alertType, since).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("failed to check recent alerts: %w", err)
	}
	return count > 0, nil
}

func AcknowledgeBudgetAlert(db *sql.DB, userID int, alertID string) error {
	query := `
		UPDATE budget_alerts
		SET acknowledged = TRUE, acknowledged_at = CURRENT_TIMESTAMP
		WHERE id = ? AND user_id = ? AND acknowledged = FALSE
	`

	result, err := db.Exec(query, alertID, userID)
	if err != nil {
		return fmt.Errorf("failed to acknowledge budget alert: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("budget alert not found or already acknowledged")
	}

	return nil
}
