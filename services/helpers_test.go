package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// day0 is a fixed Wednesday used as "today" throughout the service tests.
var day0 = time.Date(2024, time.March, 13, 0, 0, 0, 0, time.UTC)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := utils.OpenSQLite(filepath.Join(t.TempDir(), "test.db"), true)
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

type fixture struct {
	db           *gorm.DB
	activity     *GormActivityStore
	profiles     *ProfileService
	weights      *WeightService
	streaks      *StreakService
	achievements *AchievementService
	exerciseLogs *ExerciseLogService
	dietLogs     *DietLogService
	catalog      *CatalogService
}

func newFixture(t *testing.T) *fixture {
	db := newTestDB(t)
	activity := NewGormActivityStore(db)
	profiles := NewProfileService(db)
	streaks := NewStreakService(db, activity)
	return &fixture{
		db:           db,
		activity:     activity,
		profiles:     profiles,
		weights:      NewWeightService(db, profiles),
		streaks:      streaks,
		achievements: NewAchievementService(db, activity, streaks),
		exerciseLogs: NewExerciseLogService(db),
		dietLogs:     NewDietLogService(db),
		catalog:      NewCatalogService(db, nil),
	}
}

func (f *fixture) exercise(t *testing.T, name string, perMinute float64) *models.Exercise {
	t.Helper()
	e, err := f.catalog.CreateExercise(context.Background(), ExerciseInput{
		Name:                    name,
		Type:                    models.ExerciseCardio,
		Location:                models.LocationGym,
		Difficulty:              models.DifficultyBeginner,
		CaloriesBurnedPerMinute: perMinute,
	})
	require.NoError(t, err)
	return e
}

func (f *fixture) food(t *testing.T, name string, kcal, protein float64) *models.Food {
	t.Helper()
	food, err := f.catalog.CreateFood(context.Background(), FoodInput{
		Name:            name,
		CaloriesPer100g: kcal,
		ProteinPer100g:  protein,
	})
	require.NoError(t, err)
	return food
}

func (f *fixture) logWorkout(t *testing.T, userID, exerciseID string, minutes int, day time.Time) *models.ExerciseLog {
	t.Helper()
	entry, err := f.exerciseLogs.Log(context.Background(), userID, ExerciseLogInput{
		ExerciseID:      exerciseID,
		DurationMinutes: minutes,
		ExerciseDate:    day,
	}, day0.Add(12*time.Hour))
	require.NoError(t, err)
	return entry
}

func (f *fixture) logMeal(t *testing.T, userID, foodID string, grams float64, day time.Time) *models.DietLog {
	t.Helper()
	entry, err := f.dietLogs.Log(context.Background(), userID, DietLogInput{
		FoodID:   foodID,
		Quantity: grams,
		MealType: models.MealLunch,
		MealDate: day,
	}, day0.Add(12*time.Hour))
	require.NoError(t, err)
	return entry
}

func (f *fixture) createProfile(t *testing.T, userID string) *models.UserProfile {
	t.Helper()
	p, err := f.profiles.CreateProfile(context.Background(), userID, ProfileInput{
		Weight:        80,
		Height:        1.75,
		Age:           30,
		Gender:        models.GenderMale,
		ActivityLevel: models.ModeratelyActive,
		FitnessGoal:   models.GoalWeightLoss,
		TargetWeight:  72,
	})
	require.NoError(t, err)
	return p
}
