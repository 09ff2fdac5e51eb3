package services

import (
	"context"
	"fmt"
	"log"
	"math"
	"time"

	"fitness-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CalorieGoalTolerance is how far (as a fraction of the goal) a day's intake may
// stray and still count as meeting the calorie goal.
const CalorieGoalTolerance = 0.10

type AchievementService struct {
	DB       *gorm.DB
	Activity ActivityLogStore
	Streaks  *StreakService
}

func NewAchievementService(db *gorm.DB, activity ActivityLogStore, streaks *StreakService) *AchievementService {
	return &AchievementService{DB: db, Activity: activity, Streaks: streaks}
}

type progressFunc func(ctx context.Context, s *AchievementService, userID string) (int, error)

// progressSources is the single dispatch table from achievement type to its
// progress metric. Adding a type means adding one entry here.
var progressSources = map[models.AchievementType]progressFunc{
	models.AchievementDailyStreak: func(ctx context.Context, s *AchievementService, userID string) (int, error) {
		latest, err := s.Streaks.Latest(ctx, userID)
		if err != nil || latest == nil {
			return 0, err
		}
		return latest.CurrentStreak, nil
	},
	models.AchievementTotalWorkouts: func(ctx context.Context, s *AchievementService, userID string) (int, error) {
		n, err := s.Activity.CountExerciseLogs(ctx, userID)
		return int(n), err
	},
	models.AchievementCaloriesBurned: func(ctx context.Context, s *AchievementService, userID string) (int, error) {
		total, err := s.Activity.SumCaloriesBurned(ctx, userID)
		return int(total), err
	},
	models.AchievementWeightLoss: func(ctx context.Context, s *AchievementService, userID string) (int, error) {
		return weightDelta(ctx, s, userID, func(first, last float64) float64 { return first - last })
	},
	models.AchievementWeightGain: func(ctx context.Context, s *AchievementService, userID string) (int, error) {
		return weightDelta(ctx, s, userID, func(first, last float64) float64 { return last - first })
	},
	models.AchievementConsistentLogging: func(ctx context.Context, s *AchievementService, userID string) (int, error) {
		return s.Activity.CountLoggedDays(ctx, userID)
	},
	models.AchievementCalorieGoal: func(ctx context.Context, s *AchievementService, userID string) (int, error) {
		return goalDays(ctx, s, userID, func(p *models.UserProfile, day DailyIntake) bool {
			return p.DailyCalorieGoal > 0 && AdherenceWithin(day.Calories, p.DailyCalorieGoal, CalorieGoalTolerance)
		})
	},
	models.AchievementProteinGoal: func(ctx context.Context, s *AchievementService, userID string) (int, error) {
		return goalDays(ctx, s, userID, func(p *models.UserProfile, day DailyIntake) bool {
			return p.DailyProteinGoal > 0 && day.Protein >= p.DailyProteinGoal
		})
	},
}

// weightDelta applies diff to the first and last weights by date, clamped at 0.
func weightDelta(ctx context.Context, s *AchievementService, userID string, diff func(first, last float64) float64) (int, error) {
	history, err := s.Activity.WeightHistory(ctx, userID)
	if err != nil || len(history) < 2 {
		return 0, err
	}
	delta := math.Round(diff(history[0].Weight, history[len(history)-1].Weight))
	if delta < 0 {
		return 0, nil
	}
	return int(delta), nil
}

// goalDays counts days whose intake satisfies met, judged against the current
// profile goals. No profile means no goals, hence 0.
func goalDays(ctx context.Context, s *AchievementService, userID string, met func(*models.UserProfile, DailyIntake) bool) (int, error) {
	profile, err := findProfile(s.DB.WithContext(ctx), userID)
	if err != nil || profile == nil {
		return 0, err
	}
	days, err := s.Activity.DailyIntakes(ctx, userID)
	if err != nil {
		return 0, err
	}
	n := 0
	for _, d := range days {
		if met(profile, d) {
			n++
		}
	}
	return n, nil
}

// AdherenceWithin reports whether actual is within ±tolerance (fraction) of target.
func AdherenceWithin(actual, target, tolerance float64) bool {
	if target <= 0 {
		return false
	}
	return math.Abs(actual-target) <= target*tolerance
}

// Progress returns the user's current value for an achievement type; unknown
// types report 0.
func (s *AchievementService) Progress(ctx context.Context, userID string, t models.AchievementType) (int, error) {
	if err := requireUser(userID); err != nil {
		return 0, err
	}
	fn, ok := progressSources[t]
	if !ok {
		return 0, nil
	}
	return fn(ctx, s, userID)
}

// progressCache evaluates each type at most once per call.
type progressCache struct {
	s      *AchievementService
	userID string
	values map[models.AchievementType]int
}

func (c *progressCache) get(ctx context.Context, t models.AchievementType) (int, error) {
	if v, ok := c.values[t]; ok {
		return v, nil
	}
	v, err := c.s.Progress(ctx, c.userID, t)
	if err != nil {
		return 0, fmt.Errorf("progress %s: %w", t, err)
	}
	c.values[t] = v
	return v, nil
}

func (s *AchievementService) newProgressCache(userID string) *progressCache {
	return &progressCache{s: s, userID: userID, values: make(map[models.AchievementType]int)}
}

// ListCatalog returns active achievements.
func (s *AchievementService) ListCatalog(ctx context.Context) ([]models.Achievement, error) {
	achievements := []models.Achievement{}
	if err := s.DB.WithContext(ctx).
		Where("is_active = ?", true).
		Order("type, required_value, name").
		Find(&achievements).Error; err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return achievements, nil
}

func unlockedSet(db *gorm.DB, userID string) (map[string]models.UserAchievement, error) {
	var unlocks []models.UserAchievement
	if err := db.Where("user_id = ?", userID).Find(&unlocks).Error; err != nil {
		return nil, fmt.Errorf("load unlocked achievements: %w", err)
	}
	set := make(map[string]models.UserAchievement, len(unlocks))
	for _, u := range unlocks {
		set[u.AchievementID] = u
	}
	return set, nil
}

// CheckAndUnlock awards every active achievement whose threshold the user now
// meets and returns only the ones unlocked by this call. All inserts commit
// together; the unlocked set is re-read inside the transaction and the
// (user, achievement) unique index rejects concurrent duplicates.
func (s *AchievementService) CheckAndUnlock(ctx context.Context, userID string, now time.Time) ([]models.Achievement, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	catalog, err := s.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	already, err := unlockedSet(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}

	progress := s.newProgressCache(userID)
	var qualified []models.Achievement
	for _, a := range catalog {
		if _, done := already[a.ID]; done {
			continue
		}
		value, err := progress.get(ctx, a.Type)
		if err != nil {
			return nil, err
		}
		if value >= a.RequiredValue {
			qualified = append(qualified, a)
		}
	}

	unlocked := []models.Achievement{}
	if len(qualified) == 0 {
		return unlocked, nil
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := unlockedSet(tx, userID)
		if err != nil {
			return err
		}
		for _, a := range qualified {
			if _, done := current[a.ID]; done {
				continue
			}
			ua := models.UserAchievement{UserID: userID, AchievementID: a.ID, EarnedAt: now.UTC()}
			res := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "user_id"}, {Name: "achievement_id"}},
				DoNothing: true,
			}).Create(&ua)
			if res.Error != nil {
				return fmt.Errorf("unlock %s: %w", a.Code, res.Error)
			}
			if res.RowsAffected == 1 {
				unlocked = append(unlocked, a)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	for _, a := range unlocked {
		log.Printf("🎖️ [ACHIEVEMENT] %s unlocked %q (+%d pts)", userID, a.Name, a.Points)
	}
	return unlocked, nil
}

type UserAchievementView struct {
	models.Achievement
	IsUnlocked      bool       `json:"is_unlocked"`
	UnlockedAt      *time.Time `json:"unlocked_at"`
	CurrentProgress int        `json:"current_progress"`
}

type UserAchievementSummary struct {
	Achievements  []UserAchievementView `json:"achievements"`
	TotalPoints   int                   `json:"total_points"`
	UnlockedCount int                   `json:"unlocked_count"`
	TotalCount    int                   `json:"total_count"`
}

// ListForUser annotates the active catalog with the user's unlocks and live progress.
func (s *AchievementService) ListForUser(ctx context.Context, userID string) (*UserAchievementSummary, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	catalog, err := s.ListCatalog(ctx)
	if err != nil {
		return nil, err
	}
	unlocks, err := unlockedSet(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}

	progress := s.newProgressCache(userID)
	summary := &UserAchievementSummary{
		Achievements: make([]UserAchievementView, 0, len(catalog)),
		TotalCount:   len(catalog),
	}
	for _, a := range catalog {
		value, err := progress.get(ctx, a.Type)
		if err != nil {
			return nil, err
		}
		view := UserAchievementView{Achievement: a, CurrentProgress: value}
		if u, ok := unlocks[a.ID]; ok {
			earned := u.EarnedAt
			view.IsUnlocked = true
			view.UnlockedAt = &earned
			summary.TotalPoints += a.Points
			summary.UnlockedCount++
		}
		summary.Achievements = append(summary.Achievements, view)
	}
	return summary, nil
}
