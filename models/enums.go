package models

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
	GenderOther  Gender = "other"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	}
	return false
}

// ActivityLevel is ordinal: comparisons like ">= VeryActive" are meaningful.
type ActivityLevel int

const (
	Sedentary        ActivityLevel = 1
	LightlyActive    ActivityLevel = 2
	ModeratelyActive ActivityLevel = 3
	VeryActive       ActivityLevel = 4
	ExtraActive      ActivityLevel = 5
)

func (a ActivityLevel) Valid() bool {
	return a >= Sedentary && a <= ExtraActive
}

func (a ActivityLevel) String() string {
	switch a {
	case Sedentary:
		return "sedentary"
	case LightlyActive:
		return "lightly-active"
	case ModeratelyActive:
		return "moderately-active"
	case VeryActive:
		return "very-active"
	case ExtraActive:
		return "extra-active"
	}
	return "unknown"
}

type FitnessGoal string

const (
	GoalWeightLoss FitnessGoal = "weight-loss"
	GoalWeightGain FitnessGoal = "weight-gain"
	GoalMaintain   FitnessGoal = "maintain"
	GoalCustom     FitnessGoal = "custom"
)

func (g FitnessGoal) Valid() bool {
	switch g {
	case GoalWeightLoss, GoalWeightGain, GoalMaintain, GoalCustom:
		return true
	}
	return false
}

type ExerciseType string

const (
	ExerciseCardio      ExerciseType = "cardio"
	ExerciseStrength    ExerciseType = "strength"
	ExerciseFlexibility ExerciseType = "flexibility"
	ExerciseHIIT        ExerciseType = "hiit"
	ExerciseSports      ExerciseType = "sports"
	ExerciseOther       ExerciseType = "other"
)

func (t ExerciseType) Valid() bool {
	switch t {
	case ExerciseCardio, ExerciseStrength, ExerciseFlexibility, ExerciseHIIT, ExerciseSports, ExerciseOther:
		return true
	}
	return false
}

type ExerciseLocation string

const (
	LocationHome    ExerciseLocation = "home"
	LocationGym     ExerciseLocation = "gym"
	LocationOutdoor ExerciseLocation = "outdoor"
	LocationBoth    ExerciseLocation = "both"
	LocationOnline  ExerciseLocation = "online"
)

func (l ExerciseLocation) Valid() bool {
	switch l {
	case LocationHome, LocationGym, LocationOutdoor, LocationBoth, LocationOnline:
		return true
	}
	return false
}

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	}
	return false
}

type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// AchievementType selects the progress source an achievement is measured against.
type AchievementType string

const (
	AchievementWeightLoss        AchievementType = "weight-loss"
	AchievementWeightGain        AchievementType = "weight-gain"
	AchievementDailyStreak       AchievementType = "daily-streak"
	AchievementTotalWorkouts     AchievementType = "total-workouts"
	AchievementCaloriesBurned    AchievementType = "calories-burned"
	AchievementConsistentLogging AchievementType = "consistent-logging"
	AchievementCalorieGoal       AchievementType = "calorie-goal"
	AchievementProteinGoal       AchievementType = "protein-goal"
)

var AchievementTypes = []AchievementType{
	AchievementWeightLoss,
	AchievementWeightGain,
	AchievementDailyStreak,
	AchievementTotalWorkouts,
	AchievementCaloriesBurned,
	AchievementConsistentLogging,
	AchievementCalorieGoal,
	AchievementProteinGoal,
}

func (t AchievementType) Valid() bool {
	for _, known := range AchievementTypes {
		if t == known {
			return true
		}
	}
	return false
}
