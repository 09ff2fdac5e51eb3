package services

import (
	"context"
	"fmt"
	"time"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"gorm.io/gorm"
)

// DailyIntake is the nutrition consumed by a user on one day.
type DailyIntake struct {
	Day      time.Time
	Calories float64
	Protein  float64
}

// ActivityLogStore is the read side over a user's logs and weight history.
// Days are UTC calendar days; from/to bounds are inclusive.
type ActivityLogStore interface {
	ActiveDays(ctx context.Context, userID string, from, to time.Time) (map[string]bool, error)
	HasActivityOn(ctx context.Context, userID string, day time.Time) (bool, error)
	CountExerciseLogs(ctx context.Context, userID string) (int64, error)
	SumCaloriesBurned(ctx context.Context, userID string) (float64, error)
	CountLoggedDays(ctx context.Context, userID string) (int, error)
	WeightHistory(ctx context.Context, userID string) ([]models.WeightRecord, error)
	DailyIntakes(ctx context.Context, userID string) ([]DailyIntake, error)
}

type GormActivityStore struct {
	DB *gorm.DB
}

func NewGormActivityStore(db *gorm.DB) *GormActivityStore {
	return &GormActivityStore{DB: db}
}

func (s *GormActivityStore) distinctDays(ctx context.Context, model any, column, userID string, from, to *time.Time) ([]time.Time, error) {
	q := s.DB.WithContext(ctx).Model(model).Where("user_id = ?", userID)
	if from != nil {
		q = q.Where(column+" >= ?", utils.DayStart(*from))
	}
	if to != nil {
		q = q.Where(column+" <= ?", utils.DayStart(*to))
	}
	var days []time.Time
	if err := q.Distinct().Pluck(column, &days).Error; err != nil {
		return nil, fmt.Errorf("load %s: %w", column, err)
	}
	return days, nil
}

// activeDays unions exercise and diet log days into a set keyed by utils.DayKey.
func (s *GormActivityStore) activeDays(ctx context.Context, userID string, from, to *time.Time) (map[string]bool, error) {
	set := make(map[string]bool)
	exerciseDays, err := s.distinctDays(ctx, &models.ExerciseLog{}, "exercise_date", userID, from, to)
	if err != nil {
		return nil, err
	}
	dietDays, err := s.distinctDays(ctx, &models.DietLog{}, "meal_date", userID, from, to)
	if err != nil {
		return nil, err
	}
	for _, d := range exerciseDays {
		set[utils.DayKey(d)] = true
	}
	for _, d := range dietDays {
		set[utils.DayKey(d)] = true
	}
	return set, nil
}

func (s *GormActivityStore) ActiveDays(ctx context.Context, userID string, from, to time.Time) (map[string]bool, error) {
	return s.activeDays(ctx, userID, &from, &to)
}

func (s *GormActivityStore) HasActivityOn(ctx context.Context, userID string, day time.Time) (bool, error) {
	day = utils.DayStart(day)
	for _, probe := range []struct {
		model  any
		column string
	}{
		{&models.ExerciseLog{}, "exercise_date"},
		{&models.DietLog{}, "meal_date"},
	} {
		var count int64
		err := s.DB.WithContext(ctx).Model(probe.model).
			Where("user_id = ? AND "+probe.column+" = ?", userID, day).
			Count(&count).Error
		if err != nil {
			return false, fmt.Errorf("check activity: %w", err)
		}
		if count > 0 {
			return true, nil
		}
	}
	return false, nil
}

func (s *GormActivityStore) CountExerciseLogs(ctx context.Context, userID string) (int64, error) {
	var count int64
	if err := s.DB.WithContext(ctx).Model(&models.ExerciseLog{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count exercise logs: %w", err)
	}
	return count, nil
}

func (s *GormActivityStore) SumCaloriesBurned(ctx context.Context, userID string) (float64, error) {
	var total float64
	if err := s.DB.WithContext(ctx).Model(&models.ExerciseLog{}).
		Where("user_id = ?", userID).
		Select("COALESCE(SUM(calories_burned), 0)").
		Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("sum calories burned: %w", err)
	}
	return total, nil
}

func (s *GormActivityStore) CountLoggedDays(ctx context.Context, userID string) (int, error) {
	days, err := s.activeDays(ctx, userID, nil, nil)
	if err != nil {
		return 0, err
	}
	return len(days), nil
}

// WeightHistory returns all records oldest first.
func (s *GormActivityStore) WeightHistory(ctx context.Context, userID string) ([]models.WeightRecord, error) {
	var records []models.WeightRecord
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load weight history: %w", err)
	}
	return records, nil
}

// DailyIntakes sums diet logs per meal day, oldest first.
func (s *GormActivityStore) DailyIntakes(ctx context.Context, userID string) ([]DailyIntake, error) {
	var logs []models.DietLog
	if err := s.DB.WithContext(ctx).
		Select("meal_date", "calories_consumed", "protein_consumed").
		Where("user_id = ?", userID).
		Order("meal_date ASC").
		Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("load diet logs: %w", err)
	}

	var out []DailyIntake
	index := make(map[string]int)
	for _, l := range logs {
		key := utils.DayKey(l.MealDate)
		i, ok := index[key]
		if !ok {
			i = len(out)
			index[key] = i
			out = append(out, DailyIntake{Day: utils.DayStart(l.MealDate)})
		}
		out[i].Calories += l.CaloriesConsumed
		out[i].Protein += l.ProteinConsumed
	}
	return out, nil
}
