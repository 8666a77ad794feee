package model

import "time"

// Entry is one ledger record: a tracked duration for an activity on a
// calendar day, kept alongside the raw message it was parsed from. The
// ledger is append-only; entries are never updated or deleted.
type Entry struct {
	ID              uint      `gorm:"primaryKey"`
	UserID          uint      `gorm:"index"`
	ActivityID      uint      `gorm:"index"`
	Date            time.Time `gorm:"index"`
	DurationMinutes int
	RawMessage      string
	CreatedAt       time.Time
}
