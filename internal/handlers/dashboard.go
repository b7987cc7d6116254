package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"greenery/internal/analytics"
	"greenery/internal/database"
	"greenery/internal/logger"

	"github.com/gin-gonic/gin"
)

// handleDashboard assembles the full analytics bundle in one response. All
// derived numbers are computed from the user's records at request time,
// nothing is cached or stored.
func handleDashboard(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	entries, err := database.GetConsumptionEntries(db, userID)
	if err != nil {
		logger.Error("Failed to load entries", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	products, err := database.GetRawProducts(db, userID)
	if err != nil {
		logger.Error("Failed to load products", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	consumables, err := database.GetConsumables(db, userID)
	if err != nil {
		logger.Error("Failed to load consumables", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	toleranceRecords, err := database.GetToleranceRecords(db, userID)
	if err != nil {
		logger.Error("Failed to load tolerance records", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	moods, err := database.GetMoodTrackingRecords(db, userID)
	if err != nil {
		logger.Error("Failed to load mood records", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	settings, err := database.GetBudgetSettings(db, userID)
	if err != nil {
		logger.Error("Failed to load budget settings", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load dashboard"})
		return
	}

	now := time.Now()

	summary := analytics.SummarizeConsumption(entries, now)
	projection := analytics.ProjectInventory(entries, products, consumables, now)
	strains := analytics.AggregateStrains(entries, products)
	correlations := analytics.SummarizeMoodCorrelations(moods, entries, now)

	c.JSON(http.StatusOK, gin.H{
		"summary":           summary,
		"weekly_trend":      analytics.WeeklyTrend(entries, now),
		"top_products":      analytics.TopProducts(entries, 5),
		"method_breakdown":  analytics.CompareMethods(entries),
		"strains":           strains,
		"avg_cost_per_mg":   analytics.AverageCostPerMgTHC(strains),
		"projection":        projection,
		"low_stock":         analytics.LowStockProducts(products, projection.WeeklyConsumption),
		"tolerance":         analytics.AnalyzeTolerance(toleranceRecords, now),
		"mood_correlations": correlations,
		"best_strain":       analytics.BestStrain(correlations),
		"budget":            analytics.BudgetStatus(settings, analytics.CurrentMonthSpending(products, now)),
		"monthly_spending":  analytics.MonthlySpending(products, now),
		"pending_post_mood": analytics.PendingPostMood(moods, entries, now),
	})
}
