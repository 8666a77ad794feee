package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"higher-pleasures/internal/model"
)

// EntryRepository appends to and queries the activity ledger. Entries are
// immutable; there are no update or delete paths.
type EntryRepository struct {
	db *gorm.DB
}

func NewEntryRepository(db *gorm.DB) *EntryRepository {
	return &EntryRepository{db: db}
}

func (r *EntryRepository) Create(ctx context.Context, entry *model.Entry) error {
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("create entry: %w", err)
	}
	return nil
}

// DayTotal aggregates tracked minutes for one activity on one day.
type DayTotal struct {
	Activity string
	Minutes  int
}

// TotalsForDate sums the user's tracked minutes per activity for a day.
func (r *EntryRepository) TotalsForDate(ctx context.Context, userID uint, date time.Time) ([]DayTotal, error) {
	var totals []DayTotal
	err := r.db.WithContext(ctx).Model(&model.Entry{}).
		Select("activities.name AS activity, SUM(entries.duration_minutes) AS minutes").
		Joins("JOIN activities ON activities.id = entries.activity_id").
		Where("entries.user_id = ? AND entries.date = ?", userID, date).
		Group("activities.name").
		Order("minutes DESC").
		Scan(&totals).Error
	if err != nil {
		return nil, fmt.Errorf("sum entries: %w", err)
	}
	return totals, nil
}

// ListForUser returns the user's entries newest first, capped at limit.
func (r *EntryRepository) ListForUser(ctx context.Context, userID uint, limit int) ([]model.Entry, error) {
	var entries []model.Entry
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}
