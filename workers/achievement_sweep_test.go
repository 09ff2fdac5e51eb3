package workers

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"fitness-tracker/models"
	"fitness-tracker/services"
	"fitness-tracker/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAchievementSweeperRunOnce(t *testing.T) {
	db, err := utils.OpenSQLite(filepath.Join(t.TempDir(), "sweep.db"), true)
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	ctx := context.Background()
	now := time.Date(2024, time.March, 13, 9, 0, 0, 0, time.UTC)

	activity := services.NewGormActivityStore(db)
	profiles := services.NewProfileService(db)
	achievements := services.NewAchievementService(db, activity, services.NewStreakService(db, activity))
	catalog := services.NewCatalogService(db, nil)
	logs := services.NewExerciseLogService(db)

	_, err = catalog.CreateAchievement(ctx, services.AchievementInput{
		Name: "First Workout", Type: models.AchievementTotalWorkouts, RequiredValue: 1, Points: 10,
	})
	require.NoError(t, err)
	ex, err := catalog.CreateExercise(ctx, services.ExerciseInput{
		Name: "Running", Type: models.ExerciseCardio, Location: models.LocationOutdoor,
		Difficulty: models.DifficultyBeginner, CaloriesBurnedPerMinute: 10,
	})
	require.NoError(t, err)

	for _, user := range []string{"active-user", "idle-user"} {
		_, err := profiles.CreateProfile(ctx, user, services.ProfileInput{
			Weight: 70, Height: 1.7, Age: 28, Gender: models.GenderFemale,
			ActivityLevel: models.LightlyActive, FitnessGoal: models.GoalMaintain, TargetWeight: 70,
		})
		require.NoError(t, err)
	}
	_, err = logs.Log(ctx, "active-user", services.ExerciseLogInput{ExerciseID: ex.ID, DurationMinutes: 30}, now)
	require.NoError(t, err)

	sweeper := NewAchievementSweeper(profiles, achievements)
	sweeper.Now = func() time.Time { return now }

	n, err := sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	n, err = sweeper.RunOnce(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestAchievementSweeperStopsOnCancel(t *testing.T) {
	db, err := utils.OpenSQLite(filepath.Join(t.TempDir(), "sweep.db"), true)
	require.NoError(t, err)
	require.NoError(t, models.Migrate(db))

	activity := services.NewGormActivityStore(db)
	profiles := services.NewProfileService(db)
	_, err = profiles.CreateProfile(context.Background(), "user-1", services.ProfileInput{
		Weight: 70, Height: 1.7, Age: 28, Gender: models.GenderMale,
		ActivityLevel: models.Sedentary, FitnessGoal: models.GoalMaintain, TargetWeight: 70,
	})
	require.NoError(t, err)

	sweeper := NewAchievementSweeper(profiles, services.NewAchievementService(db, activity, services.NewStreakService(db, activity)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = sweeper.RunOnce(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
