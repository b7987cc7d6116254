package main

import (
	"log"
	"time"

	"greenery/internal/config"
	"greenery/internal/database"
	"greenery/internal/email"
	"greenery/internal/handlers"
	"greenery/internal/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	logLevel := logger.INFO
	if cfg.IsDevelopment() {
		logLevel = logger.DEBUG
	}
	logger.Initialize(logLevel, cfg.IsDevelopment())

	db, err := database.Initialize(cfg.DatabasePath)
	if err != nil {
		log.Fatal("Failed to initialize database:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	emailService := email.NewService(cfg)
	if emailService.IsEnabled() {
		logger.Info("Email service enabled with Mailgun")
	} else {
		logger.Info("Email service disabled, Mailgun not configured")
	}

	// Expired sessions and CSRF tokens pile up otherwise.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			if err := database.CleanupExpiredSessions(db); err != nil {
				logger.Warn("Session cleanup failed", "error", err)
			}
			if err := database.CleanupExpiredCSRFTokens(db); err != nil {
				logger.Warn("CSRF token cleanup failed", "error", err)
			}
		}
	}()

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())

	handlers.SetupRoutes(r, db, cfg, emailService)

	logger.Info("Server starting", "port", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
