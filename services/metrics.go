package services

import (
	"fmt"
	"math"

	"fitness-tracker/models"
)

const (
	CategoryUnderweight = "Underweight"
	CategoryNormal      = "Normal weight"
	CategoryOverweight  = "Overweight"
	CategoryObese       = "Obese"
)

// Fixed daily deficit/surplus, roughly 0.45 kg per week.
const calorieAdjustment = 500.0

var activityMultipliers = map[models.ActivityLevel]float64{
	models.Sedentary:        1.2,
	models.LightlyActive:    1.375,
	models.ModeratelyActive: 1.55,
	models.VeryActive:       1.725,
	models.ExtraActive:      1.9,
}

// protein grams per kg of body weight
var proteinRates = map[models.FitnessGoal]float64{
	models.GoalWeightLoss: 1.6,
	models.GoalWeightGain: 1.8,
	models.GoalMaintain:   1.2,
	models.GoalCustom:     1.4,
}

const (
	activeProteinBonus = 0.2
	defaultProteinRate = 1.2
)

func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(x*p) / p
}

// CalculateBMI returns weight/height² rounded to 2 decimals.
func CalculateBMI(weightKg, heightM float64) (float64, error) {
	if heightM <= 0 {
		return 0, fmt.Errorf("%w: height must be greater than 0", ErrInvalidInput)
	}
	if weightKg <= 0 {
		return 0, fmt.Errorf("%w: weight must be greater than 0", ErrInvalidInput)
	}
	return roundTo(weightKg/(heightM*heightM), 2), nil
}

func BMICategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return CategoryUnderweight
	case bmi < 25:
		return CategoryNormal
	case bmi < 30:
		return CategoryOverweight
	default:
		return CategoryObese
	}
}

// BasalMetabolicRate uses Mifflin–St Jeor.
func BasalMetabolicRate(weightKg, heightM float64, age int, gender models.Gender) float64 {
	bmr := 10*weightKg + 6.25*(heightM*100) - 5*float64(age)
	// Only male gets +5; female and other both take the -161 offset.
	if gender == models.GenderMale {
		return bmr + 5
	}
	return bmr - 161
}

// TotalDailyEnergyExpenditure rounds bmr × activity factor to a whole number.
// Unknown levels fall back to sedentary.
func TotalDailyEnergyExpenditure(bmr float64, level models.ActivityLevel) float64 {
	factor, ok := activityMultipliers[level]
	if !ok {
		factor = activityMultipliers[models.Sedentary]
	}
	return math.Round(bmr * factor)
}

func CalorieGoal(tdee float64, goal models.FitnessGoal) float64 {
	switch goal {
	case models.GoalWeightLoss:
		return math.Round(tdee - calorieAdjustment)
	case models.GoalWeightGain:
		return math.Round(tdee + calorieAdjustment)
	default:
		return math.Round(tdee)
	}
}

// ProteinGoal returns grams per day, rounded to 1 decimal.
func ProteinGoal(weightKg float64, goal models.FitnessGoal, level models.ActivityLevel) float64 {
	rate, ok := proteinRates[goal]
	if !ok {
		rate = defaultProteinRate
	}
	if level >= models.VeryActive {
		rate += activeProteinBonus
	}
	return roundTo(weightKg*rate, 1)
}

type recommendationKey struct {
	category string
	goal     models.FitnessGoal
}

const defaultRecommendation = "Focus on maintaining a balanced diet and regular exercise routine."

var recommendations = func() map[recommendationKey]string {
	m := map[recommendationKey]string{
		{CategoryUnderweight, models.GoalWeightLoss}: "Your BMI indicates you're underweight. Consider focusing on healthy weight gain instead.",
		{CategoryNormal, models.GoalMaintain}:        "Perfect! Maintain your healthy weight with balanced nutrition and regular exercise.",
		{CategoryOverweight, models.GoalWeightLoss}:  "Good choice! A moderate calorie deficit with regular exercise will help you reach a healthier weight.",
		{CategoryOverweight, models.GoalWeightGain}:  "Consider focusing on weight loss first to reach a healthier BMI range.",
		{CategoryObese, models.GoalWeightLoss}:       "Excellent decision! Weight loss will significantly improve your health. Consider consulting with a healthcare provider.",
		{CategoryObese, models.GoalWeightGain}:       "We strongly recommend focusing on weight loss for your health. Please consult with a healthcare provider.",
	}
	for _, g := range []models.FitnessGoal{models.GoalWeightGain, models.GoalMaintain, models.GoalCustom} {
		m[recommendationKey{CategoryUnderweight, g}] = "Great choice! Focus on gaining weight through a balanced diet and strength training."
	}
	for _, g := range []models.FitnessGoal{models.GoalWeightLoss, models.GoalWeightGain, models.GoalCustom} {
		m[recommendationKey{CategoryNormal, g}] = "You're in a healthy weight range. Make sure your goals align with your overall health objectives."
	}
	return m
}()

// Recommendation looks up coaching text for (BMI category, goal).
func Recommendation(bmi float64, goal models.FitnessGoal) string {
	if text, ok := recommendations[recommendationKey{BMICategory(bmi), goal}]; ok {
		return text
	}
	return defaultRecommendation
}

// ApplyDerivedMetrics recomputes every derived field of p from its source fields.
// Every profile write goes through here before saving.
func ApplyDerivedMetrics(p *models.UserProfile) error {
	bmi, err := CalculateBMI(p.Weight, p.Height)
	if err != nil {
		return err
	}
	bmr := BasalMetabolicRate(p.Weight, p.Height, p.Age, p.Gender)
	tdee := TotalDailyEnergyExpenditure(bmr, p.ActivityLevel)

	p.BMI = bmi
	p.BMICategory = BMICategory(bmi)
	p.DailyCalorieGoal = CalorieGoal(tdee, p.FitnessGoal)
	p.DailyProteinGoal = ProteinGoal(p.Weight, p.FitnessGoal, p.ActivityLevel)
	return nil
}
