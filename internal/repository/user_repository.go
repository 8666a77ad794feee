package repository

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"higher-pleasures/internal/model"
)

// UserRepository handles registered tracker accounts.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a newly onboarded user.
func (r *UserRepository) Create(ctx context.Context, user *model.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// FindByTelegramID resolves a Telegram account to a registered user.
// Returns gorm.ErrRecordNotFound for unknown accounts.
func (r *UserRepository) FindByTelegramID(ctx context.Context, telegramID int64) (*model.User, error) {
	var user model.User
	if err := r.db.WithContext(ctx).Where("telegram_id = ?", telegramID).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// IsRegistered reports whether a Telegram account has completed onboarding.
func (r *UserRepository) IsRegistered(ctx context.Context, telegramID int64) (bool, error) {
	_, err := r.FindByTelegramID(ctx, telegramID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return false, nil
	default:
		return false, fmt.Errorf("find user: %w", err)
	}
}

func (r *UserRepository) ListAll(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := r.db.WithContext(ctx).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
