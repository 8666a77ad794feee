package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"higher-pleasures/internal/grid"
	"higher-pleasures/internal/model"
	"higher-pleasures/internal/repository"
)

// ReportService builds human-readable daily summaries from the ledger.
type ReportService struct {
	entryRepo *repository.EntryRepository
}

func NewReportService(entryRepo *repository.EntryRepository) *ReportService {
	return &ReportService{entryRepo: entryRepo}
}

// DailySummary renders the user's tracked activities for one day as an
// HTML-formatted message.
func (s *ReportService) DailySummary(ctx context.Context, user model.User, now time.Time) (string, error) {
	day := dateOnly(now)
	totals, err := s.entryRepo.TotalsForDate(ctx, user.ID, day)
	if err != nil {
		return "", err
	}

	var builder strings.Builder
	builder.WriteString("📊 <b>Today's activities</b>\n")
	builder.WriteString(fmt.Sprintf("🗓 %s\n\n", grid.DateLabel(day)))

	if len(totals) == 0 {
		builder.WriteString("Nothing tracked yet. Tell me what you did!")
		return builder.String(), nil
	}

	var totalMinutes int
	for _, t := range totals {
		builder.WriteString(fmt.Sprintf("• %s — %s\n", html.EscapeString(t.Activity), formatMinutes(t.Minutes)))
		totalMinutes += t.Minutes
	}
	builder.WriteString(fmt.Sprintf("\n⏱ Total: %s", formatMinutes(totalMinutes)))

	return strings.TrimSpace(builder.String()), nil
}

func formatMinutes(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm", h, m)
	case h > 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dm", m)
	}
}
