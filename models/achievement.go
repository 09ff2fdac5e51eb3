package models

import "time"

// Achievement: admin-managed catalog entry
type Achievement struct {
	Base
	Code          string          `gorm:"uniqueIndex;not null" json:"code"` // e.g. "week-warrior"
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	Type          AchievementType `gorm:"type:varchar(32);not null;index" json:"type"`
	IconURL       string          `gorm:"type:text" json:"icon_url"`
	RequiredValue int             `gorm:"not null" json:"required_value"`
	Points        int             `gorm:"not null;default:0" json:"points"`
	IsActive      bool            `gorm:"not null;default:true" json:"is_active"`
	Timestamps
}

// UserAchievement: unlock record, at most one per (user, achievement), never removed
type UserAchievement struct {
	Base
	UserID        string       `gorm:"not null;uniqueIndex:idx_user_achievement" json:"user_id"`
	AchievementID string       `gorm:"type:uuid;not null;uniqueIndex:idx_user_achievement" json:"achievement_id"`
	Achievement   *Achievement `gorm:"foreignKey:AchievementID" json:"achievement,omitempty"`
	EarnedAt      time.Time    `gorm:"not null" json:"earned_at"`
}
