package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"greenery/internal/analytics"
	"greenery/internal/database"
	emailService "greenery/internal/email"
	"greenery/internal/logger"
	"greenery/internal/models"

	"github.com/gin-gonic/gin"
)

func handleBudgetOverview(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	settings, err := database.GetBudgetSettings(db, userID)
	if err != nil {
		logger.Error("Failed to load budget settings", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budget settings"})
		return
	}

	products, err := database.GetRawProducts(db, userID)
	if err != nil {
		logger.Error("Failed to load products", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load products"})
		return
	}

	now := time.Now()
	currentSpending := analytics.CurrentMonthSpending(products, now)

	c.JSON(http.StatusOK, gin.H{
		"settings":         settings,
		"overview":         analytics.BudgetStatus(settings, currentSpending),
		"monthly_spending": analytics.MonthlySpending(products, now),
	})
}

type budgetSettingsRequest struct {
	MonthlyBudget  float64  `json:"monthly_budget"`
	WeeklyBudget   *float64 `json:"weekly_budget"`
	AlertThreshold float64  `json:"alert_threshold"`
	EmailAlerts    bool     `json:"email_alerts"`
	PushAlerts     bool     `json:"push_alerts"`
}

func handleSaveBudgetSettings(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req budgetSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.MonthlyBudget <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Monthly budget must be positive"})
		return
	}
	if req.AlertThreshold < 0 || req.AlertThreshold > 100 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Alert threshold must be between 0 and 100"})
		return
	}

	settings, err := database.UpsertBudgetSettings(db, userID, models.BudgetSettings{
		MonthlyBudget:  req.MonthlyBudget,
		WeeklyBudget:   req.WeeklyBudget,
		AlertThreshold: req.AlertThreshold,
		EmailAlerts:    req.EmailAlerts,
		PushAlerts:     req.PushAlerts,
	})
	if err != nil {
		logger.Error("Failed to save budget settings", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save budget settings"})
		return
	}

	c.JSON(http.StatusOK, settings)
}

func handleListBudgetAlerts(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	alerts, err := database.GetBudgetAlerts(db, userID)
	if err != nil {
		logger.Error("Failed to list budget alerts", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load budget alerts"})
		return
	}

	c.JSON(http.StatusOK, alerts)
}

func handleAcknowledgeBudgetAlert(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	alertID := c.Param("id")

	if err := database.AcknowledgeBudgetAlert(db, userID, alertID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Budget alert not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Alert acknowledged"})
}

// checkBudgetAlerts raises at most one alert per type per calendar month
// when the user's spending crosses their configured threshold or exceeds the
// budget outright. Called after purchases, never on reads.
func checkBudgetAlerts(c *gin.Context, db *sql.DB, userID int) {
	settings, err := database.GetBudgetSettings(db, userID)
	if err != nil || settings == nil || settings.MonthlyBudget <= 0 {
		return
	}

	products, err := database.GetRawProducts(db, userID)
	if err != nil {
		logger.Warn("Failed to load products for budget check", "user_id", userID, "error", err)
		return
	}

	now := time.Now()
	currentSpending := analytics.CurrentMonthSpending(products, now)
	overview := analytics.BudgetStatus(settings, currentSpending)

	var alertType string
	switch {
	case overview.PercentageUsed >= 100:
		alertType = models.AlertTypeBudgetExceeded
	case overview.PercentageUsed >= settings.AlertThreshold:
		alertType = models.AlertTypeMonthlyThreshold
	default:
		return
	}

	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	already, err := database.HasRecentAlert(db, userID, alertType, monthStart)
	if err != nil {
		logger.Warn("Failed to check recent alerts", "user_id", userID, "error", err)
		return
	}
	if already {
		return
	}

	alert, err := database.CreateBudgetAlert(db, userID, models.BudgetAlert{
		AlertType:       alertType,
		CurrentSpending: currentSpending,
		BudgetLimit:     settings.MonthlyBudget,
		PercentageUsed:  overview.PercentageUsed,
	})
	if err != nil {
		logger.Error("Failed to create budget alert", "user_id", userID, "error", err)
		return
	}

	logger.Info("Budget alert raised", "user_id", userID, "alert_type", alertType)

	if !settings.EmailAlerts {
		return
	}

	user, err := database.GetUserByID(db, userID)
	if err != nil {
		logger.Warn("Failed to load user for alert email", "user_id", userID, "error", err)
		return
	}

	emailSvc, _ := c.Get("email_service")
	if service, ok := emailSvc.(*emailService.Service); ok && service.IsEnabled() {
		go func(u models.User, a models.BudgetAlert) {
			if err := service.SendBudgetAlertEmail(&u, &a); err != nil {
				logger.Warn("Failed to send budget alert email", "user_id", u.ID, "error", err)
			}
		}(*user, *alert)
	}
}
