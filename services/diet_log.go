package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"gorm.io/gorm"
)

const MaxQuantityGrams = 5000

type DietLogInput struct {
	FoodID   string
	Quantity float64 // grams
	Unit     string
	MealType models.MealType
	Notes    string
	MealDate time.Time // zero means the day of now
}

type DietLogPatch struct {
	Quantity *float64
	MealType *models.MealType
	Notes    *string
}

type NutritionTotals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}

type NutritionGoals struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
}

type NutritionProgress struct {
	CalorieProgress float64 `json:"calorie_progress"` // percent
	ProteinProgress float64 `json:"protein_progress"`
}

type DailySummary struct {
	Date     string             `json:"date"`
	Consumed NutritionTotals    `json:"consumed"`
	Goals    *NutritionGoals    `json:"goals"`
	Progress *NutritionProgress `json:"progress"`
	Logs     []models.DietLog   `json:"logs"`
}

type DietLogService struct {
	DB *gorm.DB
}

func NewDietLogService(db *gorm.DB) *DietLogService {
	return &DietLogService{DB: db}
}

// snapshot fills the consumed nutrition from per-100g food values.
func snapshot(entry *models.DietLog, food *models.Food) {
	factor := entry.Quantity / 100
	entry.FoodID = food.ID
	entry.FoodName = food.Name
	entry.CaloriesConsumed = roundTo(food.CaloriesPer100g*factor, 2)
	entry.ProteinConsumed = roundTo(food.ProteinPer100g*factor, 2)
	entry.CarbsConsumed = roundTo(food.CarbsPer100g*factor, 2)
	entry.FatConsumed = roundTo(food.FatPer100g*factor, 2)
}

func validateDiet(v validator, quantity float64, meal models.MealType, notes string) {
	if quantity <= 0 || quantity > MaxQuantityGrams {
		v.add("quantity", fmt.Sprintf("must be greater than 0 and at most %d grams", MaxQuantityGrams))
	}
	if !meal.Valid() {
		v.add("meal_type", "must be one of breakfast, lunch, dinner, snack")
	}
	if len([]rune(notes)) > MaxNotesLength {
		v.add("notes", fmt.Sprintf("must be at most %d characters", MaxNotesLength))
	}
}

func (s *DietLogService) loadFood(db *gorm.DB, id string, activeOnly bool) (*models.Food, error) {
	q := db.Where("id = ?", id)
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var food models.Food
	err := q.First(&food).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: food not found", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load food: %w", err)
	}
	return &food, nil
}

func (s *DietLogService) Log(ctx context.Context, userID string, in DietLogInput, now time.Time) (*models.DietLog, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	today := utils.DayStart(now)
	day := today
	if !in.MealDate.IsZero() {
		day = utils.DayStart(in.MealDate)
	}

	v := validator{}
	if in.FoodID == "" {
		v.add("food_id", "is required")
	}
	validateDiet(v, in.Quantity, in.MealType, in.Notes)
	if day.After(today) {
		v.add("meal_date", "cannot be in the future")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	food, err := s.loadFood(s.DB.WithContext(ctx), in.FoodID, true)
	if err != nil {
		return nil, err
	}

	unit := in.Unit
	if unit == "" {
		unit = "grams"
	}
	entry := models.DietLog{
		UserID:   userID,
		Quantity: in.Quantity,
		Unit:     unit,
		MealType: in.MealType,
		Notes:    in.Notes,
		LoggedAt: now.UTC(),
		MealDate: day,
	}
	snapshot(&entry, food)
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create diet log: %w", err)
	}
	return &entry, nil
}

// Update edits an entry and re-snapshots nutrition from the food's current values.
func (s *DietLogService) Update(ctx context.Context, userID, id string, patch DietLogPatch) (*models.DietLog, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var entry models.DietLog
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ? AND user_id = ?", id, userID).First(&entry).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: diet log not found", ErrNotFound)
			}
			return fmt.Errorf("load diet log: %w", err)
		}
		if patch.Quantity != nil {
			entry.Quantity = *patch.Quantity
		}
		if patch.MealType != nil {
			entry.MealType = *patch.MealType
		}
		if patch.Notes != nil {
			entry.Notes = *patch.Notes
		}
		v := validator{}
		validateDiet(v, entry.Quantity, entry.MealType, entry.Notes)
		if err := v.err(); err != nil {
			return err
		}
		food, err := s.loadFood(tx, entry.FoodID, false)
		if err != nil {
			return err
		}
		snapshot(&entry, food)
		return tx.Omit("Food").Save(&entry).Error
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *DietLogService) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.DietLog{})
	if res.Error != nil {
		return fmt.Errorf("delete diet log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: diet log not found", ErrNotFound)
	}
	return nil
}

// ListForDay returns the user's entries for one meal day in logging order.
func (s *DietLogService) ListForDay(ctx context.Context, userID string, day time.Time) ([]models.DietLog, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	logs := []models.DietLog{}
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND meal_date = ?", userID, utils.DayStart(day)).
		Order("logged_at ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list diet logs: %w", err)
	}
	return logs, nil
}

// DailySummary totals one day's intake against the profile goals (nil without a profile).
func (s *DietLogService) DailySummary(ctx context.Context, userID string, day time.Time) (*DailySummary, error) {
	logs, err := s.ListForDay(ctx, userID, day)
	if err != nil {
		return nil, err
	}
	var t NutritionTotals
	for _, l := range logs {
		t.Calories += l.CaloriesConsumed
		t.Protein += l.ProteinConsumed
		t.Carbs += l.CarbsConsumed
		t.Fat += l.FatConsumed
	}
	summary := &DailySummary{
		Date: utils.DayKey(day),
		Consumed: NutritionTotals{
			Calories: roundTo(t.Calories, 2),
			Protein:  roundTo(t.Protein, 2),
			Carbs:    roundTo(t.Carbs, 2),
			Fat:      roundTo(t.Fat, 2),
		},
		Logs: logs,
	}

	profile, err := findProfile(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if profile != nil {
		summary.Goals = &NutritionGoals{Calories: profile.DailyCalorieGoal, Protein: profile.DailyProteinGoal}
		summary.Progress = &NutritionProgress{
			CalorieProgress: percentOf(t.Calories, profile.DailyCalorieGoal),
			ProteinProgress: percentOf(t.Protein, profile.DailyProteinGoal),
		}
	}
	return summary, nil
}

func percentOf(value, goal float64) float64 {
	if goal <= 0 {
		return 0
	}
	return roundTo(value/goal*100, 1)
}
