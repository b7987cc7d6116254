package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"greenery/internal/analytics"
	"greenery/internal/database"
	"greenery/internal/logger"
	"greenery/internal/models"

	"github.com/gin-gonic/gin"
)

func handleListToleranceRecords(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	records, err := database.GetToleranceRecords(db, userID)
	if err != nil {
		logger.Error("Failed to list tolerance records", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tolerance records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

type toleranceRequest struct {
	TrackingDate        time.Time  `json:"tracking_date"`
	BaselineAmount      float64    `json:"baseline_amount"`
	EffectivenessRating int        `json:"effectiveness_rating"`
	ToleranceBreakStart *time.Time `json:"tolerance_break_start"`
	Notes               string     `json:"notes"`
}

func handleCreateToleranceRecord(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req toleranceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.BaselineAmount <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Baseline amount must be positive"})
		return
	}
	if req.EffectivenessRating < 1 || req.EffectivenessRating > 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Effectiveness rating must be between 1 and 10"})
		return
	}

	record, err := database.CreateToleranceRecord(db, userID, models.ToleranceTracking{
		TrackingDate:        req.TrackingDate,
		BaselineAmount:      req.BaselineAmount,
		EffectivenessRating: req.EffectivenessRating,
		ToleranceBreakStart: req.ToleranceBreakStart,
		Notes:               req.Notes,
	})
	if err != nil {
		logger.Error("Failed to create tolerance record", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tolerance record"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

func handleToleranceInsights(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	records, err := database.GetToleranceRecords(db, userID)
	if err != nil {
		logger.Error("Failed to load tolerance records", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load tolerance records"})
		return
	}

	insights := analytics.AnalyzeTolerance(records, time.Now())
	if insights == nil {
		c.JSON(http.StatusOK, gin.H{"message": "Not enough data for tolerance analysis"})
		return
	}

	c.JSON(http.StatusOK, insights)
}

func handleEndToleranceBreak(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	recordID := c.Param("id")

	if err := database.EndToleranceBreak(db, userID, recordID, time.Now()); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tolerance break ended"})
}

func handleDeleteToleranceRecord(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	recordID := c.Param("id")

	if err := database.DeleteToleranceRecord(db, userID, recordID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tolerance record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tolerance record deleted"})
}
