package repository_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"higher-pleasures/internal/model"
	"higher-pleasures/internal/repository"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := repository.NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestUser(t *testing.T, db *gorm.DB, telegramID int64) *model.User {
	t.Helper()
	users := repository.NewUserRepository(db)
	user := &model.User{
		PublicID:   fmt.Sprintf("test-%d", telegramID),
		TelegramID: telegramID,
		FirstName:  "Alice",
		LastName:   "Smith",
		Cell:       "+1000000",
		SheetName:  "Alice Smith",
	}
	require.NoError(t, users.Create(context.Background(), user))
	return user
}

func TestUserRepository_CreateAndFind(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	created := newTestUser(t, db, 42)

	found, err := users.FindByTelegramID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, created.ID, found.ID)
	assert.Equal(t, created.PublicID, found.PublicID)
	assert.Equal(t, "Alice Smith", found.SheetName)
}

func TestUserRepository_IsRegistered(t *testing.T) {
	db := newTestDB(t)
	users := repository.NewUserRepository(db)
	ctx := context.Background()

	ok, err := users.IsRegistered(ctx, 42)
	require.NoError(t, err)
	assert.False(t, ok)

	newTestUser(t, db, 42)

	ok, err = users.IsRegistered(ctx, 42)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestActivityRepository_GetOrCreateIdempotent(t *testing.T) {
	db := newTestDB(t)
	activities := repository.NewActivityRepository(db)
	ctx := context.Background()
	user := newTestUser(t, db, 1)

	first, err := activities.GetOrCreate(ctx, user.ID, "Running")
	require.NoError(t, err)
	second, err := activities.GetOrCreate(ctx, user.ID, "Running")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	// Case-sensitive: a different casing is a different category.
	other, err := activities.GetOrCreate(ctx, user.ID, "running")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, other.ID)
}

func TestActivityRepository_ListNamesFirstSeenOrder(t *testing.T) {
	db := newTestDB(t)
	activities := repository.NewActivityRepository(db)
	ctx := context.Background()
	user := newTestUser(t, db, 1)

	for _, name := range []string{"Yoga", "Biking", "Art"} {
		_, err := activities.GetOrCreate(ctx, user.ID, name)
		require.NoError(t, err)
	}

	names, err := activities.ListNamesByUser(ctx, user.ID)
	require.NoError(t, err)
	// First-seen order, not alphabetical, to match sheet columns.
	assert.Equal(t, []string{"Yoga", "Biking", "Art"}, names)
}

func TestEntryRepository_TotalsForDate(t *testing.T) {
	db := newTestDB(t)
	activities := repository.NewActivityRepository(db)
	entries := repository.NewEntryRepository(db)
	ctx := context.Background()
	user := newTestUser(t, db, 1)

	running, err := activities.GetOrCreate(ctx, user.ID, "Running")
	require.NoError(t, err)
	reading, err := activities.GetOrCreate(ctx, user.ID, "Reading")
	require.NoError(t, err)

	jan15 := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	jan16 := time.Date(2024, time.January, 16, 0, 0, 0, 0, time.UTC)

	for _, e := range []model.Entry{
		{UserID: user.ID, ActivityID: running.ID, Date: jan15, DurationMinutes: 30, RawMessage: "ran for 30 minutes"},
		{UserID: user.ID, ActivityID: running.ID, Date: jan15, DurationMinutes: 15, RawMessage: "short run"},
		{UserID: user.ID, ActivityID: reading.ID, Date: jan15, DurationMinutes: 60, RawMessage: "read for an hour"},
		{UserID: user.ID, ActivityID: reading.ID, Date: jan16, DurationMinutes: 20, RawMessage: "read a bit"},
	} {
		entry := e
		require.NoError(t, entries.Create(ctx, &entry))
	}

	totals, err := entries.TotalsForDate(ctx, user.ID, jan15)
	require.NoError(t, err)
	require.Len(t, totals, 2)
	assert.Equal(t, repository.DayTotal{Activity: "Reading", Minutes: 60}, totals[0])
	assert.Equal(t, repository.DayTotal{Activity: "Running", Minutes: 45}, totals[1])
}

func TestEntryRepository_ListForUser(t *testing.T) {
	db := newTestDB(t)
	activities := repository.NewActivityRepository(db)
	entries := repository.NewEntryRepository(db)
	ctx := context.Background()
	user := newTestUser(t, db, 1)

	act, err := activities.GetOrCreate(ctx, user.ID, "Running")
	require.NoError(t, err)

	day := time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		require.NoError(t, entries.Create(ctx, &model.Entry{
			UserID: user.ID, ActivityID: act.ID, Date: day, DurationMinutes: 10 + i,
		}))
	}

	got, err := entries.ListForUser(ctx, user.ID, 3)
	require.NoError(t, err)
	assert.Len(t, got, 3)
}
