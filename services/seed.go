package services

import (
	"context"
	"fmt"
	"log"

	"fitness-tracker/models"

	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

var seedExercises = []ExerciseInput{
	{
		Name:                    "Push-ups",
		Description:             "A classic bodyweight exercise that targets chest, shoulders, and triceps.",
		Instructions:            "Start in a plank position with hands slightly wider than shoulders. Lower your body until chest nearly touches the floor, then push back up.",
		Type:                    models.ExerciseStrength,
		Location:                models.LocationHome,
		Difficulty:              models.DifficultyBeginner,
		DurationMinutes:         10,
		CaloriesBurnedPerMinute: 7.0,
		MuscleGroups:            []string{"Chest", "Shoulders", "Triceps", "Core"},
		Equipment:               []string{"None"},
	},
	{
		Name:                    "Squats",
		Description:             "A fundamental lower body exercise that targets quadriceps, glutes, and hamstrings.",
		Instructions:            "Stand with feet shoulder-width apart. Lower your body as if sitting back into a chair, keeping chest up and knees behind toes. Return to standing.",
		Type:                    models.ExerciseStrength,
		Location:                models.LocationHome,
		Difficulty:              models.DifficultyBeginner,
		DurationMinutes:         10,
		CaloriesBurnedPerMinute: 8.0,
		MuscleGroups:            []string{"Quadriceps", "Glutes", "Hamstrings", "Core"},
		Equipment:               []string{"None"},
	},
	{
		Name:                    "Running",
		Description:             "Cardiovascular exercise that improves heart health and burns calories.",
		Instructions:            "Maintain a steady pace, land on the balls of your feet, keep arms relaxed, and breathe rhythmically.",
		Type:                    models.ExerciseCardio,
		Location:                models.LocationOutdoor,
		Difficulty:              models.DifficultyIntermediate,
		DurationMinutes:         30,
		CaloriesBurnedPerMinute: 12.0,
		MuscleGroups:            []string{"Legs", "Core", "Cardiovascular System"},
		Equipment:               []string{"Running Shoes"},
	},
	{
		Name:                    "Deadlifts",
		Description:             "A compound exercise that works multiple muscle groups, primarily the posterior chain.",
		Instructions:            "Stand with feet hip-width apart, grip the bar with hands just outside legs. Keep back straight, lift by driving through heels and extending hips.",
		Type:                    models.ExerciseStrength,
		Location:                models.LocationGym,
		Difficulty:              models.DifficultyAdvanced,
		DurationMinutes:         20,
		CaloriesBurnedPerMinute: 10.0,
		MuscleGroups:            []string{"Hamstrings", "Glutes", "Lower Back", "Traps", "Forearms"},
		Equipment:               []string{"Barbell", "Weight Plates"},
	},
	{
		Name:                    "Yoga Flow",
		Description:             "A sequence of yoga poses that improves flexibility, balance, and mindfulness.",
		Instructions:            "Flow through poses with controlled breathing. Hold each pose for 30 seconds to 1 minute.",
		Type:                    models.ExerciseFlexibility,
		Location:                models.LocationHome,
		Difficulty:              models.DifficultyBeginner,
		DurationMinutes:         45,
		CaloriesBurnedPerMinute: 3.0,
		MuscleGroups:            []string{"Full Body", "Core", "Flexibility"},
		Equipment:               []string{"Yoga Mat"},
	},
	{
		Name:                    "Bench Press",
		Description:             "A fundamental upper body strength exercise targeting the chest muscles.",
		Instructions:            "Lie on bench, grip bar slightly wider than shoulders. Lower bar to chest, then press up until arms are fully extended.",
		Type:                    models.ExerciseStrength,
		Location:                models.LocationGym,
		Difficulty:              models.DifficultyIntermediate,
		DurationMinutes:         15,
		CaloriesBurnedPerMinute: 6.0,
		MuscleGroups:            []string{"Chest", "Shoulders", "Triceps"},
		Equipment:               []string{"Barbell", "Bench", "Weight Plates"},
	},
	{
		Name:                    "Cycling",
		Description:             "Low-impact cardiovascular exercise that strengthens legs and improves endurance.",
		Instructions:            "Maintain proper posture, adjust seat height, pedal at a steady rhythm, and vary intensity.",
		Type:                    models.ExerciseCardio,
		Location:                models.LocationOutdoor,
		Difficulty:              models.DifficultyBeginner,
		DurationMinutes:         45,
		CaloriesBurnedPerMinute: 9.0,
		MuscleGroups:            []string{"Quadriceps", "Hamstrings", "Calves", "Glutes"},
		Equipment:               []string{"Bicycle", "Helmet"},
	},
	{
		Name:                    "Plank",
		Description:             "An isometric core exercise that builds stability and strength.",
		Instructions:            "Hold a push-up position with forearms on the ground. Keep body straight from head to heels.",
		Type:                    models.ExerciseStrength,
		Location:                models.LocationHome,
		Difficulty:              models.DifficultyBeginner,
		DurationMinutes:         5,
		CaloriesBurnedPerMinute: 5.0,
		MuscleGroups:            []string{"Core", "Shoulders", "Back"},
		Equipment:               []string{"None"},
	},
}

var seedFoods = []FoodInput{
	{Name: "Chicken Breast", Description: "Lean protein source, skinless and boneless", CaloriesPer100g: 165, ProteinPer100g: 31, CarbsPer100g: 0, FatPer100g: 3.6, FiberPer100g: 0, Category: "Proteins"},
	{Name: "Brown Rice", Description: "Whole grain rice, cooked", CaloriesPer100g: 123, ProteinPer100g: 2.6, CarbsPer100g: 23, FatPer100g: 0.9, FiberPer100g: 1.8, Category: "Grains"},
	{Name: "Broccoli", Description: "Fresh broccoli, raw", CaloriesPer100g: 34, ProteinPer100g: 2.8, CarbsPer100g: 7, FatPer100g: 0.4, FiberPer100g: 2.6, Category: "Vegetables"},
	{Name: "Banana", Description: "Fresh banana, medium size", CaloriesPer100g: 89, ProteinPer100g: 1.1, CarbsPer100g: 23, FatPer100g: 0.3, FiberPer100g: 2.6, Category: "Fruits"},
	{Name: "Almonds", Description: "Raw almonds, unsalted", CaloriesPer100g: 579, ProteinPer100g: 21, CarbsPer100g: 22, FatPer100g: 50, FiberPer100g: 12, Category: "Nuts"},
	{Name: "Greek Yogurt", Description: "Plain Greek yogurt, non-fat", CaloriesPer100g: 59, ProteinPer100g: 10, CarbsPer100g: 3.6, FatPer100g: 0.4, FiberPer100g: 0, Category: "Dairy"},
	{Name: "Salmon", Description: "Atlantic salmon, cooked", CaloriesPer100g: 206, ProteinPer100g: 22, CarbsPer100g: 0, FatPer100g: 12, FiberPer100g: 0, Category: "Proteins"},
	{Name: "Sweet Potato", Description: "Baked sweet potato with skin", CaloriesPer100g: 90, ProteinPer100g: 2, CarbsPer100g: 21, FatPer100g: 0.1, FiberPer100g: 3.3, Category: "Vegetables"},
}

var seedAchievements = []models.Achievement{
	{Name: "First Workout", Description: "Complete your first workout", Type: models.AchievementTotalWorkouts, IconURL: "/images/achievements/first-workout.png", RequiredValue: 1, Points: 10},
	{Name: "Week Warrior", Description: "Exercise for 7 consecutive days", Type: models.AchievementDailyStreak, IconURL: "/images/achievements/week-warrior.png", RequiredValue: 7, Points: 50},
	{Name: "Calorie Crusher", Description: "Meet your daily calorie goal for 5 days", Type: models.AchievementCalorieGoal, IconURL: "/images/achievements/calorie-crusher.png", RequiredValue: 5, Points: 30},
	{Name: "Weight Loss Champion", Description: "Lose 5kg from your starting weight", Type: models.AchievementWeightLoss, IconURL: "/images/achievements/weight-loss.png", RequiredValue: 5, Points: 100},
	{Name: "Protein Power", Description: "Meet your daily protein goal for 10 days", Type: models.AchievementProteinGoal, IconURL: "/images/achievements/protein-power.png", RequiredValue: 10, Points: 40},
}

// SeedCatalog inserts the starter catalog when no exercises exist yet.
// It reports whether anything was written.
func SeedCatalog(ctx context.Context, db *gorm.DB) (bool, error) {
	var count int64
	if err := db.WithContext(ctx).Model(&models.Exercise{}).Count(&count).Error; err != nil {
		return false, fmt.Errorf("count exercises: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, in := range seedExercises {
			e := models.Exercise{Code: slug.Make(in.Name), IsActive: true}
			in.applyTo(&e)
			e.ImageURL = "/images/exercises/" + e.Code + ".jpg"
			if err := tx.Create(&e).Error; err != nil {
				return fmt.Errorf("seed exercise %s: %w", in.Name, err)
			}
		}
		for _, in := range seedFoods {
			f := models.Food{IsActive: true}
			in.applyTo(&f)
			f.ImageURL = "/images/foods/" + slug.Make(in.Name) + ".jpg"
			if err := tx.Create(&f).Error; err != nil {
				return fmt.Errorf("seed food %s: %w", in.Name, err)
			}
		}
		for _, a := range seedAchievements {
			a.Code = slug.Make(a.Name)
			a.IsActive = true
			if err := tx.Create(&a).Error; err != nil {
				return fmt.Errorf("seed achievement %s: %w", a.Name, err)
			}
		}
		return nil
	})
	if err != nil {
		return false, err
	}
	log.Printf("🌱 [SEED] catalog seeded: %d exercises, %d foods, %d achievements",
		len(seedExercises), len(seedFoods), len(seedAchievements))
	return true, nil
}
