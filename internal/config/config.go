package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	TelegramToken     string
	DatabaseURL       string
	SpreadsheetID     string
	GoogleCredentials string // service-account JSON
	OpenAIKey         string
	OpenAIModel       string
	ReportInterval    time.Duration
	TrackingYear      int // 0 means the current year
}

// Load reads configuration from environment variables with sane defaults.
func Load() (Config, error) {
	cfg := Config{
		TelegramToken:     strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SpreadsheetID:     strings.TrimSpace(os.Getenv("SPREADSHEET_ID")),
		GoogleCredentials: strings.TrimSpace(os.Getenv("GOOGLE_CREDENTIALS")),
		OpenAIKey:         strings.TrimSpace(os.Getenv("OPENAI_API_KEY")),
		OpenAIModel:       strings.TrimSpace(os.Getenv("OPENAI_MODEL")),
		ReportInterval:    parseInterval(strings.TrimSpace(os.Getenv("REPORT_INTERVAL_HOURS"))),
		TrackingYear:      parseYear(strings.TrimSpace(os.Getenv("TRACKING_YEAR"))),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "higher_pleasures.db"
	}

	var missing []string
	for _, v := range []struct {
		name  string
		value string
	}{
		{"TELEGRAM_TOKEN", cfg.TelegramToken},
		{"SPREADSHEET_ID", cfg.SpreadsheetID},
		{"GOOGLE_CREDENTIALS", cfg.GoogleCredentials},
		{"OPENAI_API_KEY", cfg.OpenAIKey},
	} {
		if v.value == "" {
			missing = append(missing, v.name)
		}
	}
	if len(missing) > 0 {
		return cfg, fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

func parseInterval(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	hours, err := time.ParseDuration(raw + "h")
	if err != nil || hours <= 0 {
		return 0
	}
	return hours
}

func parseYear(raw string) int {
	if raw == "" {
		return 0
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year < 2000 || year > 2200 {
		return 0
	}
	return year
}
