package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"higher-pleasures/internal/parser"
	"higher-pleasures/internal/service"
)

func TestDailySummary_Empty(t *testing.T) {
	f := newTrackerFixture(t, nil)
	reports := service.NewReportService(f.entries)

	text, err := reports.DailySummary(context.Background(), *f.user, time.Date(2024, time.January, 15, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, text, "Monday, January 15")
	assert.Contains(t, text, "Nothing tracked yet")
}

func TestDailySummary_TotalsAndFormatting(t *testing.T) {
	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, []parser.Activity{
		activity("Running", 0.75, jan15),
		activity("Reading", 1.5, jan15),
	})
	ctx := context.Background()

	_, err := f.tracker.TrackMessage(ctx, f.user, "ran 45 min, read 90 min")
	require.NoError(t, err)

	reports := service.NewReportService(f.entries)
	text, err := reports.DailySummary(ctx, *f.user, jan15.Add(20*time.Hour))
	require.NoError(t, err)

	assert.Contains(t, text, "Reading — 1h 30m")
	assert.Contains(t, text, "Running — 45m")
	assert.Contains(t, text, "Total: 2h 15m")
}

func TestDailySummary_IgnoresOtherDays(t *testing.T) {
	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	jan14 := time.Date(2024, time.January, 14, 0, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, []parser.Activity{
		activity("Running", 1, jan15),
		activity("Reading", 1, jan14),
	})
	ctx := context.Background()

	_, err := f.tracker.TrackMessage(ctx, f.user, "ran today, read yesterday")
	require.NoError(t, err)

	reports := service.NewReportService(f.entries)
	text, err := reports.DailySummary(ctx, *f.user, jan15)
	require.NoError(t, err)

	assert.Contains(t, text, "Running")
	assert.NotContains(t, text, "Reading")
}

func TestDailySummary_EscapesActivityNames(t *testing.T) {
	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	f := newTrackerFixture(t, []parser.Activity{
		activity("D&D <campaign>", 2, jan15),
	})
	ctx := context.Background()

	_, err := f.tracker.TrackMessage(ctx, f.user, "played D&D for two hours")
	require.NoError(t, err)

	reports := service.NewReportService(f.entries)
	text, err := reports.DailySummary(ctx, *f.user, jan15)
	require.NoError(t, err)

	assert.Contains(t, text, "D&amp;D &lt;campaign&gt;")
}
