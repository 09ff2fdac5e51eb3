package models

import "time"

// ExerciseLog snapshots the calorie burn at logging time; later catalog edits
// never change it.
type ExerciseLog struct {
	Base
	UserID          string    `gorm:"not null;index:idx_exercise_log_user_day" json:"user_id"`
	ExerciseID      string    `gorm:"type:uuid;not null;index" json:"exercise_id"`
	Exercise        *Exercise `gorm:"foreignKey:ExerciseID" json:"exercise,omitempty"`
	ExerciseName    string    `json:"exercise_name"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	CaloriesBurned  float64   `gorm:"not null" json:"calories_burned"`
	Sets            *int      `json:"sets,omitempty"`
	Reps            *int      `json:"reps,omitempty"`
	Weight          *float64  `json:"weight,omitempty"` // kg lifted
	Notes           string    `gorm:"type:text" json:"notes"`
	LoggedAt        time.Time `gorm:"not null" json:"logged_at"`
	ExerciseDate    time.Time `gorm:"type:date;not null;index:idx_exercise_log_user_day" json:"exercise_date"`
}

// DietLog snapshots nutrition (per100g × quantity/100) at logging time.
type DietLog struct {
	Base
	UserID           string    `gorm:"not null;index:idx_diet_log_user_day" json:"user_id"`
	FoodID           string    `gorm:"type:uuid;not null;index" json:"food_id"`
	Food             *Food     `gorm:"foreignKey:FoodID" json:"food,omitempty"`
	FoodName         string    `json:"food_name"`
	Quantity         float64   `gorm:"not null" json:"quantity"`
	Unit             string    `gorm:"type:varchar(16);default:'grams'" json:"unit"`
	CaloriesConsumed float64   `json:"calories_consumed"`
	ProteinConsumed  float64   `json:"protein_consumed"`
	CarbsConsumed    float64   `json:"carbs_consumed"`
	FatConsumed      float64   `json:"fat_consumed"`
	MealType         MealType  `gorm:"type:varchar(16)" json:"meal_type"`
	Notes            string    `gorm:"type:text" json:"notes"`
	LoggedAt         time.Time `gorm:"not null" json:"logged_at"`
	MealDate         time.Time `gorm:"type:date;not null;index:idx_diet_log_user_day" json:"meal_date"`
}
