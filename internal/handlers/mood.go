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

func handleListMoodRecords(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	records, err := database.GetMoodTrackingRecords(db, userID)
	if err != nil {
		logger.Error("Failed to list mood records", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mood records"})
		return
	}

	c.JSON(http.StatusOK, records)
}

type createMoodRequest struct {
	ConsumptionEntryID string            `json:"consumption_entry_id"`
	PreMood            models.MoodScores `json:"pre_mood"`
	Environment        string            `json:"environment"`
	Activity           string            `json:"activity"`
	MoodNotes          string            `json:"mood_notes"`
}

func validMoodScores(s models.MoodScores) bool {
	for _, v := range []int{s.Energy, s.Happiness, s.Stress, s.Focus, s.Anxiety, s.Pain} {
		if v < 1 || v > 10 {
			return false
		}
	}
	return true
}

func handleCreateMoodRecord(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	var req createMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if req.ConsumptionEntryID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Consumption entry ID is required"})
		return
	}
	if !validMoodScores(req.PreMood) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mood scores must be between 1 and 10"})
		return
	}

	record, err := database.CreateMoodTracking(db, userID, models.MoodTracking{
		ConsumptionEntryID: req.ConsumptionEntryID,
		Pre:                req.PreMood,
		Environment:        req.Environment,
		Activity:           req.Activity,
		MoodNotes:          req.MoodNotes,
	})
	if err != nil {
		logger.Error("Failed to create mood record", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create mood record"})
		return
	}

	c.JSON(http.StatusCreated, record)
}

type completeMoodRequest struct {
	PostMood               models.MoodScores `json:"post_mood"`
	EffectsOnsetMinutes    *int              `json:"effects_onset_minutes"`
	EffectsDurationMinutes *int              `json:"effects_duration_minutes"`
	EffectsIntensity       *int              `json:"effects_intensity"`
	ExperienceRating       *int              `json:"experience_rating"`
	SideEffects            []string          `json:"side_effects"`
}

func handleCompleteMoodRecord(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	moodID := c.Param("id")

	var req completeMoodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if !validMoodScores(req.PostMood) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Mood scores must be between 1 and 10"})
		return
	}
	if req.ExperienceRating != nil && (*req.ExperienceRating < 1 || *req.ExperienceRating > 5) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Experience rating must be between 1 and 5"})
		return
	}

	err := database.CompleteMoodTracking(db, userID, moodID, req.PostMood,
		req.EffectsOnsetMinutes, req.EffectsDurationMinutes, req.EffectsIntensity,
		req.ExperienceRating, req.SideEffects)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record, err := database.GetMoodTrackingByID(db, userID, moodID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mood record"})
		return
	}

	c.JSON(http.StatusOK, record)
}

func handleMoodCorrelations(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	moods, err := database.GetMoodTrackingRecords(db, userID)
	if err != nil {
		logger.Error("Failed to load mood records", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mood records"})
		return
	}

	entries, err := database.GetConsumptionEntries(db, userID)
	if err != nil {
		logger.Error("Failed to load entries", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load entries"})
		return
	}

	correlations := analytics.SummarizeMoodCorrelations(moods, entries, time.Now())
	c.JSON(http.StatusOK, gin.H{
		"correlations": correlations,
		"best_strain":  analytics.BestStrain(correlations),
	})
}

// handlePendingMood lists recent entries with no mood record yet and mood
// records still waiting for their post-session half.
func handlePendingMood(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	moods, err := database.GetMoodTrackingRecords(db, userID)
	if err != nil {
		logger.Error("Failed to load mood records", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load mood records"})
		return
	}

	entries, err := database.GetConsumptionEntries(db, userID)
	if err != nil {
		logger.Error("Failed to load entries", "user_id", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load entries"})
		return
	}

	now := time.Now()
	c.JSON(http.StatusOK, gin.H{
		"missing_pre_mood":  analytics.PendingPreMood(entries, moods, now),
		"pending_post_mood": analytics.PendingPostMood(moods, entries, now),
	})
}

func handleDeleteMoodRecord(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)
	moodID := c.Param("id")

	if err := database.DeleteMoodTracking(db, userID, moodID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Mood record not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mood record deleted"})
}
