package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATABASE_URL", "CURRENT_USER_ID", "TOP_CUSTOMERS_DEFAULT", "DUPLICATE_NAME_CHECK", "SEED_DATA", "WORKER_COUNT", "REMINDER_OFFSET_DAYS", "ALLOWED_ORIGINS", "TIMEZONE", "PDF_FONT_PATH"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "1", cfg.CurrentUserID)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.False(t, cfg.UsesDatabase())
	assert.Equal(t, 3, cfg.TopCustomersDefault)
	assert.True(t, cfg.DuplicateNameCheck)
	assert.True(t, cfg.SeedData)
	assert.Equal(t, 2, cfg.WorkerCount)
	assert.Equal(t, 1, cfg.ReminderOffsetDays)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.Empty(t, cfg.PDFFontPath)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("CURRENT_USER_ID", " 7 ")
	t.Setenv("TOP_CUSTOMERS_DEFAULT", "5")
	t.Setenv("DUPLICATE_NAME_CHECK", "false")
	t.Setenv("WORKER_COUNT", "0")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TIMEZONE", "Africa/Cairo")
	t.Setenv("DATABASE_URL", "postgres://localhost/debtbook")
	t.Setenv("PDF_FONT_PATH", "/fonts/NotoNaskhArabic.ttf")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "7", cfg.CurrentUserID)
	assert.Equal(t, 5, cfg.TopCustomersDefault)
	assert.False(t, cfg.DuplicateNameCheck)
	assert.Equal(t, 1, cfg.WorkerCount)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, "Africa/Cairo", cfg.Location.String())
	assert.True(t, cfg.UsesDatabase())
	assert.Equal(t, "/fonts/NotoNaskhArabic.ttf", cfg.PDFFontPath)
}

func TestLoadRejectsUnknownTimezone(t *testing.T) {
	t.Setenv("TIMEZONE", "Nowhere/Land")
	_, err := Load()
	assert.Error(t, err)
}
