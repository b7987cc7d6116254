package handlers

import (
	"database/sql"
	"net/http"
	"regexp"
	"strings"

	"greenery/internal/config"
	"greenery/internal/database"
	emailService "greenery/internal/email"
	"greenery/internal/logger"
	"greenery/internal/models"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleRegister(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)

	errors := make(map[string]string)

	if len(req.Username) < 3 || len(req.Username) > 30 {
		errors["username"] = "Username must be between 3 and 30 characters"
	}

	if !emailRegex.MatchString(req.Email) {
		errors["email"] = "Please enter a valid email address"
	}

	if len(req.Password) < 8 {
		errors["password"] = "Password must be at least 8 characters"
	}

	if len(errors) > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"errors": errors})
		return
	}

	user, err := database.CreateUser(db, req.Username, req.Email, req.Password)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			c.JSON(http.StatusConflict, gin.H{"error": "An account with those credentials already exists"})
			return
		}
		logger.Error("Failed to create user", "email", req.Email, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create account"})
		return
	}

	emailSvc, _ := c.Get("email_service")
	if service, ok := emailSvc.(*emailService.Service); ok && service.IsEnabled() {
		go func(u models.User) {
			if err := service.SendWelcomeEmail(&u); err != nil {
				logger.Warn("Failed to send welcome email", "email", u.Email, "error", err)
			}
		}(*user)
	}

	logger.Info("User registered", "user_id", user.ID, "email", user.Email)
	c.JSON(http.StatusCreated, user)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func handleLogin(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	cfg := c.MustGet("config").(*config.Config)

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	user, err := database.AuthenticateUser(db, strings.TrimSpace(req.Email), req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid email or password"})
		return
	}

	session, err := database.CreateSession(db, user.ID, cfg.SessionDuration)
	if err != nil {
		logger.Error("Failed to create session", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create session"})
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("session_id", session.ID, int(cfg.SessionDuration.Seconds()), "/", "", !cfg.IsDevelopment(), true)

	logger.Info("User logged in", "user_id", user.ID)
	c.JSON(http.StatusOK, user)
}

func handleLogout(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)

	if sessionID, err := c.Cookie("session_id"); err == nil {
		if err := database.DeleteSession(db, sessionID); err != nil {
			logger.Warn("Failed to delete session", "session_id", sessionID, "error", err)
		}
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie("session_id", "", -1, "/", "", true, true)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

func handleCurrentUser(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	c.JSON(http.StatusOK, user)
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

func handleChangePassword(c *gin.Context) {
	db := c.MustGet("db").(*sql.DB)
	user := c.MustGet("user").(*models.User)

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	if len(req.NewPassword) < 8 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Password must be at least 8 characters"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Current password is incorrect"})
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	_, err = db.Exec(`UPDATE users SET password_hash = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?`, string(hash), user.ID)
	if err != nil {
		logger.Error("Failed to update password", "user_id", user.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update password"})
		return
	}

	logger.Info("Password changed", "user_id", user.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
