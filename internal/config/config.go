package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server
	Port        string
	Environment string

	// Database; empty selects the in-memory store
	DatabaseURL string
	SeedData    bool

	// Attribution
	CurrentUserID string

	// Ledger
	TopCustomersDefault int
	DuplicateNameCheck  bool
	ReminderOffsetDays  int
	Location            *time.Location

	// Reports; a TrueType font for non-Latin names in PDFs
	PDFFontPath string

	// Background Workers
	WorkerCount int

	// CORS
	AllowedOrigins []string

	// Sentry
	SentryDSN string
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:                getEnv("PORT", "8080"),
		Environment:         getEnv("ENVIRONMENT", "development"),
		DatabaseURL:         getEnv("DATABASE_URL", ""),
		SeedData:            getEnvAsBool("SEED_DATA", true),
		CurrentUserID:       strings.TrimSpace(getEnv("CURRENT_USER_ID", "1")),
		TopCustomersDefault: getEnvAsInt("TOP_CUSTOMERS_DEFAULT", 3),
		DuplicateNameCheck:  getEnvAsBool("DUPLICATE_NAME_CHECK", true),
		ReminderOffsetDays:  getEnvAsInt("REMINDER_OFFSET_DAYS", 1),
		PDFFontPath:         getEnv("PDF_FONT_PATH", ""),
		WorkerCount:         getEnvAsInt("WORKER_COUNT", 2),
		AllowedOrigins:      getEnvAsSlice("ALLOWED_ORIGINS", []string{"*"}),
		SentryDSN:           getEnv("SENTRY_DSN", ""),
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if cfg.CurrentUserID == "" {
		return nil, fmt.Errorf("CURRENT_USER_ID is required")
	}
	if cfg.WorkerCount < 1 {
		cfg.WorkerCount = 1
	}

	return cfg, nil
}

// UsesDatabase reports whether a PostgreSQL store is configured
func (c *Config) UsesDatabase() bool {
	return c.DatabaseURL != ""
}

// getEnv reads an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// getEnvAsInt reads an environment variable as integer
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsBool reads an environment variable as boolean
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsSlice reads an environment variable as comma-separated slice
func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parts
}
