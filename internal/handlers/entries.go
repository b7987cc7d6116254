package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"greenery/internal/catalog"
	"greenery/internal/database"
	"greenery/internal/logger"
	"greenery/internal/models"

	"github.com/gin-gonic/gin"
)

func handleListEntries(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var entries []models.ConsumptionEntry
	var err error

	if sinceParam := c.Query("since"); sinceParam != "" {
		since, parseErr := time.Parse(time.RFC3339, sinceParam)
		if parseErr != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid since parameter, expected RFC 3339"})
			return
		}
		entries, err = database.GetConsumptionEntriesSince(db, userID, since)
	} else {
		entries, err = database.GetConsumptionEntries(db, userID)
	}
	if err != nil {
		logger.Error("Failed to list entries", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load entries"})
		return
	}

	c.JSON(http.StatusOK, entries)
}

type entryRequest struct {
	ProductName       string    `json:"product_name"`
	Amount            float64   `json:"amount"`
	ConsumptionMethod string    `json:"consumption_method"`
	Rating            *int      `json:"rating"`
	Notes             string    `json:"notes"`
	ConsumedAt        time.Time `json:"consumed_at"`
}

func (r *entryRequest) validate() (string, bool) {
	if r.ProductName == "" {
		return "Product name is required", false
	}
	if r.Amount <= 0 {
		return "Amount must be positive", false
	}
	if r.ConsumptionMethod != "" && !catalog.KnownMethod(r.ConsumptionMethod) {
		return "Unknown consumption method", false
	}
	if r.Rating != nil && (*r.Rating < 1 || *r.Rating > 5) {
		return "Rating must be between 1 and 5", false
	}
	return "", true
}

func handleCreateEntry(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	entry, err := database.CreateConsumptionEntry(db, userID, models.ConsumptionEntry{
		ProductName:       req.ProductName,
		Amount:            req.Amount,
		ConsumptionMethod: req.ConsumptionMethod,
		Rating:            req.Rating,
		Notes:             req.Notes,
		ConsumedAt:        req.ConsumedAt,
	})
	if err != nil {
		logger.Error("Failed to create entry", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create entry"})
		return
	}

	c.JSON(http.StatusCreated, entry)
}

type quickTrackRequest struct {
	ConsumableID      string    `json:"consumable_id"`
	UnitsConsumed     float64   `json:"units_consumed"`
	ConsumptionMethod string    `json:"consumption_method"`
	Rating            *int      `json:"rating"`
	Notes             string    `json:"notes"`
	ConsumedAt        time.Time `json:"consumed_at"`
}

// handleQuickTrack logs a session directly from a consumable, depleting its
// unit count in the same transaction.
func handleQuickTrack(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req quickTrackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.ConsumableID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Consumable ID is required"})
		return
	}
	if req.UnitsConsumed <= 0 {
		req.UnitsConsumed = 1
	}
	if req.ConsumptionMethod != "" && !catalog.KnownMethod(req.ConsumptionMethod) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown consumption method"})
		return
	}

	entry, err := database.CreateEntryFromConsumable(db, userID, req.ConsumableID,
		req.UnitsConsumed, req.ConsumptionMethod, req.Rating, req.Notes, req.ConsumedAt)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.Info("Quick-tracked session", "user_id", userID, "consumable_id", req.ConsumableID)
	c.JSON(http.StatusCreated, entry)
}

func handleUpdateEntry(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	entryID := c.Param("id")

	var req entryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if msg, ok := req.validate(); !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": msg})
		return
	}

	entry := models.ConsumptionEntry{
		ID:                entryID,
		ProductName:       req.ProductName,
		Amount:            req.Amount,
		Unit:              "g",
		ConsumptionMethod: req.ConsumptionMethod,
		Rating:            req.Rating,
		Notes:             req.Notes,
		ConsumedAt:        req.ConsumedAt,
	}
	if entry.ConsumedAt.IsZero() {
		entry.ConsumedAt = time.Now()
	}

	if err := database.UpdateConsumptionEntry(db, userID, entry); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry updated"})
}

func handleDeleteEntry(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	entryID := c.Param("id")

	if err := database.DeleteConsumptionEntry(db, userID, entryID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Entry not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Entry deleted"})
}
