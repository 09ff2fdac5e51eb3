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

const MaxExerciseMinutes = 600

type ExerciseLogInput struct {
	ExerciseID      string
	DurationMinutes int
	CaloriesBurned  *float64 // overrides perMinute × duration when set
	Sets            *int
	Reps            *int
	Weight          *float64
	Notes           string
	ExerciseDate    time.Time // zero means the day of now
}

type ExerciseLogFilter struct {
	From *time.Time
	To   *time.Time
	Page utils.Page
}

type ExerciseLogService struct {
	DB *gorm.DB
}

func NewExerciseLogService(db *gorm.DB) *ExerciseLogService {
	return &ExerciseLogService{DB: db}
}

// Log records a workout, snapshotting the calorie burn from the catalog entry.
func (s *ExerciseLogService) Log(ctx context.Context, userID string, in ExerciseLogInput, now time.Time) (*models.ExerciseLog, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	today := utils.DayStart(now)
	day := today
	if !in.ExerciseDate.IsZero() {
		day = utils.DayStart(in.ExerciseDate)
	}

	v := validator{}
	if in.ExerciseID == "" {
		v.add("exercise_id", "is required")
	}
	if in.DurationMinutes < 1 || in.DurationMinutes > MaxExerciseMinutes {
		v.add("duration_minutes", fmt.Sprintf("must be between 1 and %d", MaxExerciseMinutes))
	}
	if in.CaloriesBurned != nil && *in.CaloriesBurned < 0 {
		v.add("calories_burned", "cannot be negative")
	}
	if in.Sets != nil && *in.Sets < 0 {
		v.add("sets", "cannot be negative")
	}
	if in.Reps != nil && *in.Reps < 0 {
		v.add("reps", "cannot be negative")
	}
	if in.Weight != nil && *in.Weight < 0 {
		v.add("weight", "cannot be negative")
	}
	if len([]rune(in.Notes)) > MaxNotesLength {
		v.add("notes", fmt.Sprintf("must be at most %d characters", MaxNotesLength))
	}
	if day.After(today) {
		v.add("exercise_date", "cannot be in the future")
	}
	if err := v.err(); err != nil {
		return nil, err
	}

	var exercise models.Exercise
	err := s.DB.WithContext(ctx).Where("id = ? AND is_active = ?", in.ExerciseID, true).First(&exercise).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: exercise not found", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load exercise: %w", err)
	}

	burned := exercise.CaloriesBurnedPerMinute * float64(in.DurationMinutes)
	if in.CaloriesBurned != nil {
		burned = *in.CaloriesBurned
	}

	entry := models.ExerciseLog{
		UserID:          userID,
		ExerciseID:      exercise.ID,
		ExerciseName:    exercise.Name,
		DurationMinutes: in.DurationMinutes,
		CaloriesBurned:  roundTo(burned, 2),
		Sets:            in.Sets,
		Reps:            in.Reps,
		Weight:          in.Weight,
		Notes:           in.Notes,
		LoggedAt:        now.UTC(),
		ExerciseDate:    day,
	}
	if err := s.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("create exercise log: %w", err)
	}
	return &entry, nil
}

func (s *ExerciseLogService) List(ctx context.Context, userID string, f ExerciseLogFilter) (*utils.Paged[models.ExerciseLog], error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Model(&models.ExerciseLog{}).Where("user_id = ?", userID)
	if f.From != nil {
		q = q.Where("exercise_date >= ?", utils.DayStart(*f.From))
	}
	if f.To != nil {
		q = q.Where("exercise_date <= ?", utils.DayStart(*f.To))
	}

	page := utils.NewPage(f.Page.Page, f.Page.Size)
	out := &utils.Paged[models.ExerciseLog]{Items: []models.ExerciseLog{}, Page: page.Page, Size: page.Size}
	if err := q.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
		return nil, fmt.Errorf("count exercise logs: %w", err)
	}
	if err := q.Scopes(page.Scope).
		Order("exercise_date DESC, logged_at DESC").
		Find(&out.Items).Error; err != nil {
		return nil, fmt.Errorf("list exercise logs: %w", err)
	}
	return out, nil
}

func (s *ExerciseLogService) Delete(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	res := s.DB.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).Delete(&models.ExerciseLog{})
	if res.Error != nil {
		return fmt.Errorf("delete exercise log: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: exercise log not found", ErrNotFound)
	}
	return nil
}
