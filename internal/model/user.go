package model

import "time"

// User stores one registered tracker account. PublicID is the stable
// external identifier assigned at registration; SheetName is the user's
// tracking surface inside the shared spreadsheet.
type User struct {
	ID         uint   `gorm:"primaryKey"`
	PublicID   string `gorm:"uniqueIndex"`
	TelegramID int64  `gorm:"uniqueIndex"`
	FirstName  string
	LastName   string
	Email      string
	Cell       string
	SheetName  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
