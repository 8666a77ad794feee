package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"higher-pleasures/internal/config"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("SPREADSHEET_ID", "sheet-id")
	t.Setenv("GOOGLE_CREDENTIALS", `{"type":"service_account"}`)
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("DATABASE_URL", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("REPORT_INTERVAL_HOURS", "")
	t.Setenv("TRACKING_YEAR", "")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "higher_pleasures.db", cfg.DatabaseURL)
	assert.Equal(t, time.Duration(0), cfg.ReportInterval)
	assert.Equal(t, 0, cfg.TrackingYear)
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("SPREADSHEET_ID", "  ")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SPREADSHEET_ID")
	assert.Contains(t, err.Error(), "OPENAI_API_KEY")
}

func TestLoad_ParsesOptionalValues(t *testing.T) {
	setRequired(t)
	t.Setenv("REPORT_INTERVAL_HOURS", "5")
	t.Setenv("TRACKING_YEAR", "2024")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Hour, cfg.ReportInterval)
	assert.Equal(t, 2024, cfg.TrackingYear)
}

func TestLoad_IgnoresInvalidOptionalValues(t *testing.T) {
	setRequired(t)
	t.Setenv("REPORT_INTERVAL_HOURS", "soon")
	t.Setenv("TRACKING_YEAR", "not-a-year")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, time.Duration(0), cfg.ReportInterval)
	assert.Equal(t, 0, cfg.TrackingYear)
}
