package services

import (
	"context"
	"testing"
	"time"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExerciseLogSnapshotsCalories(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ex := f.exercise(t, "Burpees", 10.5)

	entry := f.logWorkout(t, "user-1", ex.ID, 30, day0)
	assert.Equal(t, 315.0, entry.CaloriesBurned)
	assert.Equal(t, "Burpees", entry.ExerciseName)
	assert.True(t, utils.SameDay(day0, entry.ExerciseDate))

	override := 200.0
	sets, reps := 3, 12
	custom, err := f.exerciseLogs.Log(ctx, "user-1", ExerciseLogInput{
		ExerciseID:      ex.ID,
		DurationMinutes: 30,
		CaloriesBurned:  &override,
		Sets:            &sets,
		Reps:            &reps,
	}, day0.Add(9*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 200.0, custom.CaloriesBurned)
	assert.Equal(t, 3, *custom.Sets)

	// editing the catalog later leaves the logged burn alone
	_, err = f.catalog.UpdateExercise(ctx, ex.ID, ExerciseInput{
		Name: "Burpees", Type: models.ExerciseHIIT, Location: models.LocationHome,
		Difficulty: models.DifficultyAdvanced, CaloriesBurnedPerMinute: 20,
	})
	require.NoError(t, err)
	var stored models.ExerciseLog
	require.NoError(t, f.db.First(&stored, "id = ?", entry.ID).Error)
	assert.Equal(t, 315.0, stored.CaloriesBurned)
}

func TestExerciseLogValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ex := f.exercise(t, "Plank", 4)

	for _, minutes := range []int{0, 601} {
		_, err := f.exerciseLogs.Log(ctx, "user-1", ExerciseLogInput{ExerciseID: ex.ID, DurationMinutes: minutes}, day0)
		assert.ErrorIs(t, err, ErrInvalidInput, "duration %d", minutes)
	}

	_, err := f.exerciseLogs.Log(ctx, "user-1", ExerciseLogInput{
		ExerciseID: ex.ID, DurationMinutes: 10, ExerciseDate: utils.AddDays(day0, 1),
	}, day0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.catalog.DeactivateExercise(ctx, ex.ID))
	_, err = f.exerciseLogs.Log(ctx, "user-1", ExerciseLogInput{ExerciseID: ex.ID, DurationMinutes: 10}, day0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestExerciseLogListAndDelete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	ex := f.exercise(t, "Walk", 4)
	for _, off := range []int{-10, -3, -2, -1, 0} {
		f.logWorkout(t, "user-1", ex.ID, 30, utils.AddDays(day0, off))
	}
	f.logWorkout(t, "user-2", ex.ID, 30, day0)

	from := utils.AddDays(day0, -3)
	to := utils.AddDays(day0, -1)
	page, err := f.exerciseLogs.List(ctx, "user-1", ExerciseLogFilter{From: &from, To: &to, Page: utils.Page{Page: 1, Size: 2}})
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Items, 2)
	assert.True(t, utils.SameDay(to, page.Items[0].ExerciseDate))

	all, err := f.exerciseLogs.List(ctx, "user-1", ExerciseLogFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(5), all.Total)
	assert.Equal(t, utils.DefaultPageSize, all.Size)

	target := all.Items[0].ID
	assert.ErrorIs(t, f.exerciseLogs.Delete(ctx, "user-2", target), ErrNotFound)
	require.NoError(t, f.exerciseLogs.Delete(ctx, "user-1", target))
	assert.ErrorIs(t, f.exerciseLogs.Delete(ctx, "user-1", target), ErrNotFound)
}

func TestDietLogSnapshotAndUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chicken := f.food(t, "Chicken Breast", 165, 31)

	entry := f.logMeal(t, "user-1", chicken.ID, 150, day0)
	assert.Equal(t, 247.5, entry.CaloriesConsumed)
	assert.Equal(t, 46.5, entry.ProteinConsumed)
	assert.Equal(t, "grams", entry.Unit)
	assert.Equal(t, "Chicken Breast", entry.FoodName)

	_, err := f.catalog.UpdateFood(ctx, chicken.ID, FoodInput{Name: "Chicken Breast", CaloriesPer100g: 200, ProteinPer100g: 31})
	require.NoError(t, err)

	logs, err := f.dietLogs.ListForDay(ctx, "user-1", day0)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, 247.5, logs[0].CaloriesConsumed)

	grams := 200.0
	meal := models.MealDinner
	updated, err := f.dietLogs.Update(ctx, "user-1", entry.ID, DietLogPatch{Quantity: &grams, MealType: &meal})
	require.NoError(t, err)
	assert.Equal(t, 400.0, updated.CaloriesConsumed)
	assert.Equal(t, 62.0, updated.ProteinConsumed)
	assert.Equal(t, models.MealDinner, updated.MealType)

	_, err = f.dietLogs.Update(ctx, "user-2", entry.ID, DietLogPatch{Quantity: &grams})
	assert.ErrorIs(t, err, ErrNotFound)

	tooMuch := 5001.0
	_, err = f.dietLogs.Update(ctx, "user-1", entry.ID, DietLogPatch{Quantity: &tooMuch})
	assert.ErrorIs(t, err, ErrInvalidInput)

	require.NoError(t, f.dietLogs.Delete(ctx, "user-1", entry.ID))
	assert.ErrorIs(t, f.dietLogs.Delete(ctx, "user-1", entry.ID), ErrNotFound)
}

func TestDietLogValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	apple := f.food(t, "Apple", 52, 0.3)

	_, err := f.dietLogs.Log(ctx, "user-1", DietLogInput{FoodID: apple.ID, Quantity: 0, MealType: models.MealSnack}, day0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.dietLogs.Log(ctx, "user-1", DietLogInput{FoodID: apple.ID, Quantity: 100, MealType: "brunch"}, day0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = f.dietLogs.Log(ctx, "user-1", DietLogInput{FoodID: "nope", Quantity: 100, MealType: models.MealSnack}, day0)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = f.dietLogs.Log(ctx, "", DietLogInput{FoodID: apple.ID, Quantity: 100, MealType: models.MealSnack}, day0)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDailySummary(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	chicken := f.food(t, "Chicken Breast", 165, 31)
	rice := f.food(t, "Rice", 130, 2.7)
	f.logMeal(t, "user-1", chicken.ID, 150, day0)
	f.logMeal(t, "user-1", rice.ID, 100, day0)
	f.logMeal(t, "user-1", rice.ID, 500, utils.AddDays(day0, -1))

	summary, err := f.dietLogs.DailySummary(ctx, "user-1", day0)
	require.NoError(t, err)
	assert.Equal(t, "2024-03-13", summary.Date)
	assert.Equal(t, 377.5, summary.Consumed.Calories)
	assert.Equal(t, 49.2, summary.Consumed.Protein)
	assert.Len(t, summary.Logs, 2)
	assert.Nil(t, summary.Goals)
	assert.Nil(t, summary.Progress)

	f.createProfile(t, "user-1")
	summary, err = f.dietLogs.DailySummary(ctx, "user-1", day0)
	require.NoError(t, err)
	require.NotNil(t, summary.Goals)
	assert.Equal(t, 2211.0, summary.Goals.Calories)
	assert.Equal(t, 128.0, summary.Goals.Protein)
	// 377.5 / 2211 and 49.2 / 128
	assert.Equal(t, 17.1, summary.Progress.CalorieProgress)
	assert.Equal(t, 38.4, summary.Progress.ProteinProgress)
}
