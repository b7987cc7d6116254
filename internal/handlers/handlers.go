package handlers

import (
	"database/sql"
	"net/http"

	"greenery/internal/catalog"
	"greenery/internal/config"
	"greenery/internal/database"
	"greenery/internal/email"
	"greenery/internal/middleware"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, db *sql.DB, cfg *config.Config, emailService *email.Service) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders(cfg))
	r.Use(middleware.CORS(cfg))
	r.Use(middleware.RateLimit(cfg))
	r.Use(middleware.AddDBContext(db))
	r.Use(addConfigContext(cfg))
	r.Use(addEmailServiceContext(emailService))
	r.Use(middleware.TrimSpaces())

	r.GET("/health", handleHealth)
	r.GET("/api/catalog", handleCatalog)
	r.POST("/api/register", middleware.AuthRateLimit(cfg), handleRegister)
	r.POST("/api/login", middleware.AuthRateLimit(cfg), handleLogin)

	api := r.Group("/api")
	api.Use(middleware.AuthRequired(db, cfg))
	api.Use(middleware.CSRF(cfg))
	{
		api.POST("/logout", handleLogout)
		api.GET("/me", handleCurrentUser)
		api.POST("/account/password", handleChangePassword)
		api.GET("/csrf-token", handleCSRFToken)

		api.GET("/dashboard", handleDashboard)

		api.GET("/entries", handleListEntries)
		api.POST("/entries", handleCreateEntry)
		api.POST("/entries/quick", handleQuickTrack)
		api.PUT("/entries/:id", handleUpdateEntry)
		api.DELETE("/entries/:id", handleDeleteEntry)

		api.GET("/products", handleListRawProducts)
		api.POST("/products", handleCreateRawProduct)
		api.PUT("/products/:id", handleUpdateRawProduct)
		api.DELETE("/products/:id", handleDeleteRawProduct)
		api.POST("/products/:id/convert", handleConvertToConsumable)

		api.GET("/consumables", handleListConsumables)
		api.POST("/consumables", handleCreateConsumable)
		api.PUT("/consumables/:id", handleUpdateConsumable)
		api.DELETE("/consumables/:id", handleDeleteConsumable)

		api.GET("/tolerance", handleListToleranceRecords)
		api.POST("/tolerance", handleCreateToleranceRecord)
		api.GET("/tolerance/insights", handleToleranceInsights)
		api.POST("/tolerance/:id/end-break", handleEndToleranceBreak)
		api.DELETE("/tolerance/:id", handleDeleteToleranceRecord)

		api.GET("/mood", handleListMoodRecords)
		api.POST("/mood", handleCreateMoodRecord)
		api.POST("/mood/:id/complete", handleCompleteMoodRecord)
		api.GET("/mood/correlations", handleMoodCorrelations)
		api.GET("/mood/pending", handlePendingMood)
		api.DELETE("/mood/:id", handleDeleteMoodRecord)

		api.GET("/budget", handleBudgetOverview)
		api.PUT("/budget", handleSaveBudgetSettings)
		api.GET("/budget/alerts", handleListBudgetAlerts)
		api.POST("/budget/alerts/:id/acknowledge", handleAcknowledgeBudgetAlert)
	}
}

func addEmailServiceContext(emailService *email.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("email_service", emailService)
		c.Next()
	}
}

func addConfigContext(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("config", cfg)
		c.Next()
	}
}

func handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// handleCatalog exposes the fixed vocabularies client forms are built from.
func handleCatalog(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"consumption_methods": catalog.ConsumptionMethods,
		"consumable_types":    catalog.ConsumableTypes,
		"raw_product_types":   catalog.RawProductTypes,
		"mood_categories":     catalog.MoodCategories,
		"side_effects":        catalog.SideEffects,
		"environments":        catalog.Environments,
		"activities":          catalog.Activities,
	})
}

func handleCSRFToken(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	userID := c.MustGet("user_id").(int)

	token, err := database.CreateCSRFToken(db, userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create CSRF token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"csrf_token": token.Token})
}
