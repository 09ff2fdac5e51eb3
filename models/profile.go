package models

// UserProfile holds a user's body measurements plus the goals derived from them.
// BMI, BMICategory, DailyCalorieGoal and DailyProteinGoal are written only by
// services.ApplyDerivedMetrics.
type UserProfile struct {
	Base
	UserID        string        `gorm:"uniqueIndex;not null" json:"user_id"`
	Weight        float64       `gorm:"not null" json:"weight"` // kg
	Height        float64       `gorm:"not null" json:"height"` // m
	Age           int           `gorm:"not null" json:"age"`
	Gender        Gender        `gorm:"type:varchar(16);not null" json:"gender"`
	ActivityLevel ActivityLevel `gorm:"not null" json:"activity_level"`
	FitnessGoal   FitnessGoal   `gorm:"type:varchar(16);not null" json:"fitness_goal"`
	TargetWeight  float64       `json:"target_weight"`

	BMI              float64 `gorm:"column:bmi" json:"bmi"`
	BMICategory      string  `gorm:"column:bmi_category;type:varchar(32)" json:"bmi_category"`
	DailyCalorieGoal float64 `json:"daily_calorie_goal"`
	DailyProteinGoal float64 `json:"daily_protein_goal"`

	Timestamps
}
