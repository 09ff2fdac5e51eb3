package models

import "time"

// StreakRecord exists only for days with confirmed activity, one per (user, day).
type StreakRecord struct {
	Base
	UserID           string    `gorm:"not null;uniqueIndex:idx_streak_user_day" json:"user_id"`
	Date             time.Time `gorm:"column:streak_date;type:date;not null;uniqueIndex:idx_streak_user_day" json:"date"`
	CurrentStreak    int       `gorm:"not null" json:"current_streak"`
	LongestStreak    int       `gorm:"not null" json:"longest_streak"`
	LastActivityDate time.Time `gorm:"type:date" json:"last_activity_date"`
	Timestamps
}
