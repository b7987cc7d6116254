package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath    string
	Port            string
	Environment     string
	AllowedOrigins  []string
	SessionDuration time.Duration

	MailgunDomain string
	MailgunAPIKey string
	MailgunSender string
	BaseURL       string
}

func Load() *Config {
	// Missing .env is fine, real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := &Config{
		DatabasePath:    getEnv("DATABASE_PATH", "greenery.db"),
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		AllowedOrigins:  splitEnv("ALLOWED_ORIGINS", "http://localhost:8080"),
		SessionDuration: getDurationEnv("SESSION_DURATION_HOURS", 168) * time.Hour,
		MailgunDomain:   getEnv("MAILGUN_DOMAIN", ""),
		MailgunAPIKey:   getEnv("MAILGUN_API_KEY", ""),
		MailgunSender:   getEnv("MAILGUN_SENDER", "Greenery <noreply@greenery.app>"),
		BaseURL:         getEnv("BASE_URL", "http://localhost:8080"),
	}
	return cfg
}

func (c *Config) IsDevelopment() bool {
	return c.Environment != "production"
}

func (c *Config) EmailEnabled() bool {
	return c.MailgunDomain != "" && c.MailgunAPIKey != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultHours int) time.Duration {
	if value := os.Getenv(key); value != "" {
		if hours, err := strconv.Atoi(value); err == nil && hours > 0 {
			return time.Duration(hours)
		}
	}
	return time.Duration(defaultHours)
}

func splitEnv(key, defaultValue string) []string {
	value := getEnv(key, defaultValue)
	parts := strings.Split(value, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
