package services

import (
	"context"
	"strings"
	"testing"
	"time"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogWeightUpsertsPerDay(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.weights.LogWeight(ctx, "user-1", WeightInput{Weight: 80, Notes: "morning"}, day0)
	require.NoError(t, err)
	second, err := f.weights.LogWeight(ctx, "user-1", WeightInput{Weight: 79.4, Notes: "evening"}, day0.Add(20*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 79.4, second.Weight)
	assert.Equal(t, "evening", second.Notes)

	var count int64
	require.NoError(t, f.db.Model(&models.WeightRecord{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestLogWeightValidation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.weights.LogWeight(ctx, "user-1", WeightInput{Weight: 80, RecordedDate: utils.AddDays(day0, 1)}, day0)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "recorded_date")

	_, err = f.weights.LogWeight(ctx, "user-1", WeightInput{Weight: 80, Notes: strings.Repeat("x", 501)}, day0)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "notes")

	_, err = f.weights.LogWeight(ctx, "user-1", WeightInput{Weight: 12}, day0)
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "weight")

	_, err = f.weights.LogWeight(ctx, "", WeightInput{Weight: 80}, day0)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestLogWeightSyncsProfileToLatest(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.createProfile(t, "user-1")

	f.logWeight(t, "user-1", 78, 0)
	view, err := f.profiles.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 78.0, view.Weight)
	assert.Equal(t, 25.47, view.BMI)

	// a backfilled older entry leaves the profile on the latest weight
	f.logWeight(t, "user-1", 90, -5)
	view, err = f.profiles.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 78.0, view.Weight)

	records, err := f.weights.ListWeights(ctx, "user-1", 0, day0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.NoError(t, f.weights.DeleteWeight(ctx, "user-1", records[0].ID))

	view, err = f.profiles.GetProfile(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 90.0, view.Weight)
}

func TestUpdateWeight(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.logWeight(t, "user-1", 80, -1)
	f.logWeight(t, "user-1", 79, 0)

	records, err := f.weights.ListWeights(ctx, "user-1", 0, day0)
	require.NoError(t, err)
	latest := records[0]

	yesterday := utils.AddDays(day0, -1)
	_, err = f.weights.UpdateWeight(ctx, "user-1", latest.ID, WeightPatch{RecordedDate: &yesterday}, day0)
	assert.ErrorIs(t, err, ErrConflict)

	kg := 78.5
	note := "after run"
	updated, err := f.weights.UpdateWeight(ctx, "user-1", latest.ID, WeightPatch{Weight: &kg, Notes: &note}, day0)
	require.NoError(t, err)
	assert.Equal(t, 78.5, updated.Weight)
	assert.Equal(t, "after run", updated.Notes)

	_, err = f.weights.UpdateWeight(ctx, "user-2", latest.ID, WeightPatch{Weight: &kg}, day0)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = f.weights.GetWeight(ctx, "user-1", "missing")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, f.weights.DeleteWeight(ctx, "user-1", "missing"), ErrNotFound)
}

func TestListWeightsWindow(t *testing.T) {
	f := newFixture(t)
	for _, off := range []int{-21, -14, -7, 0} {
		f.logWeight(t, "user-1", 80, off)
	}
	records, err := f.weights.ListWeights(context.Background(), "user-1", 7, day0)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.True(t, utils.SameDay(day0, records[0].RecordedDate))
	assert.True(t, utils.SameDay(utils.AddDays(day0, -7), records[1].RecordedDate))
}

func TestWeightProgressAndTrend(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.weights.Progress(ctx, "user-1", day0)
	require.NoError(t, err)
	assert.Nil(t, empty.CurrentWeight)
	assert.Empty(t, empty.RecentRecords)

	f.createProfile(t, "user-1")
	f.logWeight(t, "user-1", 81, -21)
	f.logWeight(t, "user-1", 80, -14)
	f.logWeight(t, "user-1", 79, -7)
	f.logWeight(t, "user-1", 78, 0)

	p, err := f.weights.Progress(ctx, "user-1", day0)
	require.NoError(t, err)
	require.NotNil(t, p.CurrentWeight)
	assert.Equal(t, 78.0, *p.CurrentWeight)
	assert.Equal(t, 79.0, *p.PreviousWeight)
	assert.Equal(t, -1.0, *p.WeightChange)
	assert.Equal(t, 72.0, *p.TargetWeight)
	assert.Equal(t, 6.0, *p.WeightToTarget)
	assert.Len(t, p.RecentRecords, 4)

	require.NotNil(t, p.Trend)
	assert.Equal(t, "Decreasing", p.Trend.Direction)
	assert.Equal(t, -1.0, p.Trend.AverageWeeklyChange)
	assert.Equal(t, -3.0, p.Trend.AverageMonthlyChange)
	assert.Equal(t, "Your weight is trending downward by approximately 1.0 kg per week", p.Trend.Description)
}

func TestWeightTrendEdgeCases(t *testing.T) {
	single := []models.WeightRecord{{Weight: 80, RecordedDate: day0}}
	trend := weightTrend(single, day0)
	assert.Equal(t, "Stable", trend.Direction)
	assert.Equal(t, "Not enough data to determine trend", trend.Description)

	flat := []models.WeightRecord{
		{Weight: 80.05, RecordedDate: day0},
		{Weight: 80, RecordedDate: utils.AddDays(day0, -7)},
	}
	trend = weightTrend(flat, day0)
	assert.Equal(t, "Stable", trend.Direction)
	assert.Equal(t, "Your weight has been relatively stable", trend.Description)

	rising := []models.WeightRecord{
		{Weight: 82, RecordedDate: day0},
		{Weight: 81, RecordedDate: utils.AddDays(day0, -7)},
		{Weight: 80, RecordedDate: utils.AddDays(day0, -40)},
	}
	trend = weightTrend(rising, day0)
	assert.Equal(t, "Increasing", trend.Direction)
	assert.Equal(t, 1.0, trend.AverageWeeklyChange)
	// only the two entries inside 30 days count toward the monthly change
	assert.Equal(t, 1.0, trend.AverageMonthlyChange)
}

func TestWeightStatistics(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	empty, err := f.weights.Statistics(ctx, "user-1")
	require.NoError(t, err)
	assert.Zero(t, empty.TotalRecords)

	f.logWeight(t, "user-1", 81, -21)
	f.logWeight(t, "user-1", 83, -14)
	f.logWeight(t, "user-1", 79, -7)
	f.logWeight(t, "user-1", 78, 0)

	stats, err := f.weights.Statistics(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, 83.0, stats.HighestWeight)
	assert.Equal(t, 78.0, stats.LowestWeight)
	require.NotNil(t, stats.HighestWeightDate)
	assert.True(t, utils.SameDay(utils.AddDays(day0, -14), *stats.HighestWeightDate))
	assert.Equal(t, 3.0, stats.TotalWeightLost)
	assert.Zero(t, stats.TotalWeightGained)
	assert.Equal(t, 4, stats.TotalRecords)
	assert.Equal(t, 22, stats.DaysTracking)
}
