package models

import "time"

// WeightRecord is unique per (user, calendar day).
type WeightRecord struct {
	Base
	UserID       string    `gorm:"not null;uniqueIndex:idx_weight_user_day" json:"user_id"`
	RecordedDate time.Time `gorm:"type:date;not null;uniqueIndex:idx_weight_user_day" json:"recorded_date"`
	Weight       float64   `gorm:"not null" json:"weight"`
	Notes        string    `gorm:"type:text" json:"notes"`
	Timestamps
}
