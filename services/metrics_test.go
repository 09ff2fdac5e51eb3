package services

import (
	"testing"

	"fitness-tracker/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateBMI(t *testing.T) {
	bmi, err := CalculateBMI(80, 1.75)
	require.NoError(t, err)
	assert.Equal(t, 26.12, bmi)

	_, err = CalculateBMI(80, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = CalculateBMI(0, 1.75)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestBMICategoryBoundaries(t *testing.T) {
	cases := []struct {
		bmi  float64
		want string
	}{
		{17.49, CategoryUnderweight},
		{18.49, CategoryUnderweight},
		{18.5, CategoryNormal},
		{24.99, CategoryNormal},
		{25, CategoryOverweight},
		{29.99, CategoryOverweight},
		{30, CategoryObese},
		{45, CategoryObese},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, BMICategory(tc.bmi), "bmi %v", tc.bmi)
	}
}

func TestBasalMetabolicRateByGender(t *testing.T) {
	assert.InDelta(t, 1748.75, BasalMetabolicRate(80, 1.75, 30, models.GenderMale), 1e-9)
	assert.InDelta(t, 1582.75, BasalMetabolicRate(80, 1.75, 30, models.GenderFemale), 1e-9)
	assert.InDelta(t, 1582.75, BasalMetabolicRate(80, 1.75, 30, models.GenderOther), 1e-9)
}

func TestTotalDailyEnergyExpenditure(t *testing.T) {
	assert.Equal(t, 2711.0, TotalDailyEnergyExpenditure(1748.75, models.ModeratelyActive))
	assert.Equal(t, 2099.0, TotalDailyEnergyExpenditure(1748.75, models.Sedentary))
	// unknown levels fall back to sedentary
	assert.Equal(t, 2099.0, TotalDailyEnergyExpenditure(1748.75, models.ActivityLevel(9)))
}

func TestCalorieGoal(t *testing.T) {
	assert.Equal(t, 2211.0, CalorieGoal(2711, models.GoalWeightLoss))
	assert.Equal(t, 3211.0, CalorieGoal(2711, models.GoalWeightGain))
	assert.Equal(t, 2711.0, CalorieGoal(2711, models.GoalMaintain))
	assert.Equal(t, 2711.0, CalorieGoal(2711, models.GoalCustom))
}

func TestProteinGoal(t *testing.T) {
	assert.Equal(t, 128.0, ProteinGoal(80, models.GoalWeightLoss, models.ModeratelyActive))
	assert.Equal(t, 144.0, ProteinGoal(80, models.GoalWeightGain, models.Sedentary))
	assert.Equal(t, 96.0, ProteinGoal(80, models.GoalMaintain, models.LightlyActive))
	assert.Equal(t, 112.0, ProteinGoal(80, models.GoalCustom, models.Sedentary))
	// very active and above earn +0.2 g/kg
	assert.Equal(t, 144.0, ProteinGoal(80, models.GoalWeightLoss, models.VeryActive))
	assert.Equal(t, 160.0, ProteinGoal(80, models.GoalWeightGain, models.ExtraActive))
}

func TestProteinGoalNonDecreasingInActivity(t *testing.T) {
	for _, goal := range []models.FitnessGoal{models.GoalWeightLoss, models.GoalWeightGain, models.GoalMaintain, models.GoalCustom} {
		prev := 0.0
		for level := models.Sedentary; level <= models.ExtraActive; level++ {
			got := ProteinGoal(72.5, goal, level)
			assert.GreaterOrEqual(t, got, prev, "goal %s level %s", goal, level)
			prev = got
		}
	}
}

func TestProteinGoalNonDecreasingInWeight(t *testing.T) {
	goals := []models.FitnessGoal{models.GoalWeightLoss, models.GoalWeightGain, models.GoalMaintain, models.GoalCustom}
	levels := []models.ActivityLevel{models.ModeratelyActive, models.VeryActive}
	for _, goal := range goals {
		for _, level := range levels {
			prev := ProteinGoal(30, goal, level)
			for w := 30.05; w <= 300; w += 0.05 {
				got := ProteinGoal(w, goal, level)
				if got < prev {
					t.Fatalf("goal %s level %s: protein dropped from %v to %v at %.2f kg", goal, level, prev, got, w)
				}
				prev = got
			}
		}
	}
}

func TestRecommendation(t *testing.T) {
	assert.Equal(t,
		"Good choice! A moderate calorie deficit with regular exercise will help you reach a healthier weight.",
		Recommendation(26.12, models.GoalWeightLoss))
	assert.Equal(t,
		"Your BMI indicates you're underweight. Consider focusing on healthy weight gain instead.",
		Recommendation(17, models.GoalWeightLoss))
	assert.Equal(t,
		"Great choice! Focus on gaining weight through a balanced diet and strength training.",
		Recommendation(17, models.GoalMaintain))
	assert.Equal(t,
		"Perfect! Maintain your healthy weight with balanced nutrition and regular exercise.",
		Recommendation(22, models.GoalMaintain))
	assert.Equal(t,
		"You're in a healthy weight range. Make sure your goals align with your overall health objectives.",
		Recommendation(22, models.GoalWeightGain))
	assert.Equal(t,
		"We strongly recommend focusing on weight loss for your health. Please consult with a healthcare provider.",
		Recommendation(32, models.GoalWeightGain))
	assert.Equal(t, defaultRecommendation, Recommendation(27, models.GoalMaintain))
	assert.Equal(t, defaultRecommendation, Recommendation(35, models.GoalCustom))
}

func TestApplyDerivedMetrics(t *testing.T) {
	p := &models.UserProfile{
		Weight:        80,
		Height:        1.75,
		Age:           30,
		Gender:        models.GenderMale,
		ActivityLevel: models.ModeratelyActive,
		FitnessGoal:   models.GoalWeightLoss,
	}
	require.NoError(t, ApplyDerivedMetrics(p))
	assert.Equal(t, 26.12, p.BMI)
	assert.Equal(t, CategoryOverweight, p.BMICategory)
	assert.Equal(t, 2211.0, p.DailyCalorieGoal)
	assert.Equal(t, 128.0, p.DailyProteinGoal)

	p.Height = 0
	assert.ErrorIs(t, ApplyDerivedMetrics(p), ErrInvalidInput)
}

func TestAdherenceWithin(t *testing.T) {
	assert.True(t, AdherenceWithin(2000, 2000, 0.1))
	assert.True(t, AdherenceWithin(1800, 2000, 0.1))
	assert.True(t, AdherenceWithin(2200, 2000, 0.1))
	assert.False(t, AdherenceWithin(1799, 2000, 0.1))
	assert.False(t, AdherenceWithin(2201, 2000, 0.1))
	assert.False(t, AdherenceWithin(0, 0, 0.1))
}

func TestValidationErrorUnwrapsToInvalidInput(t *testing.T) {
	err := (validator{"b": "bad", "a": "worse"}).err()
	assert.ErrorIs(t, err, ErrInvalidInput)
	assert.Equal(t, "validation failed: a: worse; b: bad", err.Error())
	assert.NoError(t, validator{}.err())
}
