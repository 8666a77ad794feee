package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"higher-pleasures/internal/model"
)

// ActivityRepository manages per-user activity categories.
type ActivityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// GetOrCreate resolves a category name for a user, creating it on first use.
// Matching is exact and case sensitive, mirroring the sheet header.
func (r *ActivityRepository) GetOrCreate(ctx context.Context, userID uint, name string) (*model.Activity, error) {
	if name == "" {
		return nil, fmt.Errorf("activity name is required")
	}

	var activity model.Activity
	db := r.db.WithContext(ctx)
	err := db.Where("user_id = ? AND name = ?", userID, name).First(&activity).Error
	switch {
	case err == nil:
		return &activity, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		activity = model.Activity{UserID: userID, Name: name}
		if err := db.Create(&activity).Error; err != nil {
			return nil, fmt.Errorf("create activity: %w", err)
		}
		return &activity, nil
	default:
		return nil, fmt.Errorf("find activity: %w", err)
	}
}

// ListNamesByUser returns the user's category names in first-seen order,
// matching the column order on their sheet.
func (r *ActivityRepository) ListNamesByUser(ctx context.Context, userID uint) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).Model(&model.Activity{}).
		Where("user_id = ?", userID).
		Order("id ASC").
		Pluck("name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}
