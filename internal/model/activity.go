package model

import "time"

// Activity is one tracked category owned by a user ("Running", "Reading").
// Names are case sensitive and unique per user; creation order matches the
// column order on the user's sheet.
type Activity struct {
	ID        uint   `gorm:"primaryKey"`
	UserID    uint   `gorm:"index:idx_user_activity_name,unique"`
	Name      string `gorm:"index:idx_user_activity_name,unique"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Entries   []Entry `gorm:"foreignKey:ActivityID"`
}
