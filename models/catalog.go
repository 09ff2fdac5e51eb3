package models

import "gorm.io/datatypes"

type Exercise struct {
	Base
	Code                    string           `gorm:"uniqueIndex;not null" json:"code"` // slug of Name
	Name                    string           `gorm:"not null" json:"name"`
	Description             string           `gorm:"type:text" json:"description"`
	Instructions            string           `gorm:"type:text" json:"instructions"`
	Type                    ExerciseType     `gorm:"type:varchar(16);index" json:"type"`
	Location                ExerciseLocation `gorm:"type:varchar(16);index" json:"location"`
	Difficulty              Difficulty       `gorm:"type:varchar(16);index" json:"difficulty"`
	DurationMinutes         int              `json:"duration_minutes"`
	CaloriesBurnedPerMinute float64          `gorm:"not null" json:"calories_burned_per_minute"`
	ImageURL                string           `gorm:"type:text" json:"image_url"`
	VideoURL                string           `gorm:"type:text" json:"video_url"`
	MuscleGroups            datatypes.JSON   `json:"muscle_groups"` // e.g. ["Chest","Triceps"]
	Equipment               datatypes.JSON   `json:"equipment"`
	IsActive                bool             `gorm:"not null;default:true" json:"is_active"`
	Timestamps
}

type Food struct {
	Base
	Name            string  `gorm:"not null;index" json:"name"`
	Description     string  `gorm:"type:text" json:"description"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	FiberPer100g    float64 `json:"fiber_per_100g"`
	Category        string  `gorm:"type:varchar(64);index" json:"category"` // Fruits, Vegetables, Proteins...
	ImageURL        string  `gorm:"type:text" json:"image_url"`
	IsActive        bool    `gorm:"not null;default:true" json:"is_active"`
	Timestamps
}
