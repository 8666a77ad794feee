package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"time"

	"higher-pleasures/internal/grid"
	"higher-pleasures/internal/model"
	"higher-pleasures/internal/parser"
	"higher-pleasures/internal/repository"
)

// TrackedActivity reports the outcome for one activity found in a message.
// The grid and the ledger are written independently with no shared
// transaction, so each write's success is carried separately; a partial
// failure is logged for later reconciliation instead of rolling back.
type TrackedActivity struct {
	Category string
	Hours    float64
	Date     time.Time
	GridOK   bool
	LedgerOK bool
}

// Partial reports whether one of the two writes failed.
func (t TrackedActivity) Partial() bool {
	return t.GridOK != t.LedgerOK
}

// Tracker orchestrates the core flow: parse a message, upsert each activity
// into the user's sheet, and append it to the ledger.
type Tracker struct {
	parser       parser.Parser
	grid         *grid.Engine
	userRepo     *repository.UserRepository
	activityRepo *repository.ActivityRepository
	entryRepo    *repository.EntryRepository
	year         int // 0 means the current year
}

func NewTracker(
	p parser.Parser,
	engine *grid.Engine,
	userRepo *repository.UserRepository,
	activityRepo *repository.ActivityRepository,
	entryRepo *repository.EntryRepository,
	year int,
) *Tracker {
	return &Tracker{
		parser:       p,
		grid:         engine,
		userRepo:     userRepo,
		activityRepo: activityRepo,
		entryRepo:    entryRepo,
		year:         year,
	}
}

func (s *Tracker) trackingYear() int {
	if s.year != 0 {
		return s.year
	}
	return time.Now().UTC().Year()
}

// TrackMessage records every activity found in a free-form message against
// the user's sheet and the ledger. Validation failures abort immediately;
// a storage failure on one side is tolerated as long as the other side
// recorded the activity.
func (s *Tracker) TrackMessage(ctx context.Context, user *model.User, message string) ([]TrackedActivity, error) {
	existing, err := s.activityRepo.ListNamesByUser(ctx, user.ID)
	if err != nil {
		return nil, fmt.Errorf("list activities: %w", err)
	}

	parsed, err := s.parser.ParseMessage(ctx, message, existing)
	if err != nil {
		return nil, err
	}

	results := make([]TrackedActivity, 0, len(parsed))
	for _, act := range parsed {
		day := dateOnly(act.Date)
		rec := TrackedActivity{Category: act.Category, Hours: act.DurationHours, Date: day}

		gridErr := s.grid.Upsert(ctx, user.SheetName, day, act.Category, act.DurationHours)
		var verr *grid.ValidationError
		if errors.As(gridErr, &verr) {
			return results, gridErr
		}
		rec.GridOK = gridErr == nil
		if gridErr != nil {
			log.Printf("[warn] grid write failed user=%s category=%q: %v", user.PublicID, act.Category, gridErr)
		}

		ledgerErr := s.appendEntry(ctx, user, rec.Category, act.DurationHours, day, message)
		rec.LedgerOK = ledgerErr == nil
		if ledgerErr != nil {
			log.Printf("[warn] ledger write failed user=%s category=%q: %v", user.PublicID, act.Category, ledgerErr)
		}

		if !rec.GridOK && !rec.LedgerOK {
			return results, gridErr
		}
		results = append(results, rec)
	}

	return results, nil
}

func (s *Tracker) appendEntry(ctx context.Context, user *model.User, category string, hours float64, day time.Time, raw string) error {
	activity, err := s.activityRepo.GetOrCreate(ctx, user.ID, category)
	if err != nil {
		return err
	}

	entry := model.Entry{
		UserID:          user.ID,
		ActivityID:      activity.ID,
		Date:            day,
		DurationMinutes: int(math.Round(hours * 60)),
		RawMessage:      raw,
	}
	return s.entryRepo.Create(ctx, &entry)
}

// EnsureSurface initializes (or verifies) the year skeleton on one user's
// sheet. Called after onboarding and before the first upsert of a year.
func (s *Tracker) EnsureSurface(ctx context.Context, user *model.User) error {
	return s.grid.EnsureYearStructure(ctx, user.SheetName, s.trackingYear(), false)
}

// EnsureAllSurfaces verifies the year skeleton of every registered user's
// sheet. Run at startup and again at midnight so a new year's skeleton
// appears without a restart.
func (s *Tracker) EnsureAllSurfaces(ctx context.Context) error {
	users, err := s.userRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("list users: %w", err)
	}

	for _, user := range users {
		if err := s.EnsureSurface(ctx, &user); err != nil {
			return fmt.Errorf("surface %q: %w", user.SheetName, err)
		}
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
