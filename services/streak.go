package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StreakService advances and reports per-user daily activity streaks.
// Every method takes the reference day explicitly.
type StreakService struct {
	DB       *gorm.DB
	Activity ActivityLogStore
}

func NewStreakService(db *gorm.DB, activity ActivityLogStore) *StreakService {
	return &StreakService{DB: db, Activity: activity}
}

type StreakStatus struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`
	IsActiveToday    bool       `json:"is_active_today"`
}

type CalendarDay struct {
	Date          string `json:"date"` // YYYY-MM-DD
	HasActivity   bool   `json:"has_activity"`
	CurrentStreak int    `json:"current_streak"`
	IsToday       bool   `json:"is_today"`
}

type StreakCalendar struct {
	Year  int           `json:"year"`
	Month int           `json:"month"`
	Days  []CalendarDay `json:"days"`
}

type StreakStats struct {
	CurrentStreak       int   `json:"current_streak"`
	LongestStreak       int   `json:"longest_streak"`
	TotalActiveDays     int64 `json:"total_active_days"`
	ThisMonthActiveDays int64 `json:"this_month_active_days"`
	ThisWeekActiveDays  int64 `json:"this_week_active_days"`
	IsActiveToday       bool  `json:"is_active_today"`
}

func (s *StreakService) recordOn(db *gorm.DB, userID string, day time.Time) (*models.StreakRecord, error) {
	var rec models.StreakRecord
	err := db.Where("user_id = ? AND streak_date = ?", userID, utils.DayStart(day)).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load streak record: %w", err)
	}
	return &rec, nil
}

// Latest returns the user's most recent record, or nil.
func (s *StreakService) Latest(ctx context.Context, userID string) (*models.StreakRecord, error) {
	return s.latestBefore(s.DB.WithContext(ctx), userID, nil)
}

func (s *StreakService) latestBefore(db *gorm.DB, userID string, before *time.Time) (*models.StreakRecord, error) {
	q := db.Where("user_id = ?", userID)
	if before != nil {
		q = q.Where("streak_date < ?", utils.DayStart(*before))
	}
	var rec models.StreakRecord
	err := q.Order("streak_date DESC").First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load latest streak record: %w", err)
	}
	return &rec, nil
}

// Advance records today's streak. Repeat calls on the same day return the
// stored record unchanged; a day without diet or exercise logs fails with
// ErrNoActivity.
func (s *StreakService) Advance(ctx context.Context, userID string, today time.Time) (*models.StreakRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	today = utils.DayStart(today)
	db := s.DB.WithContext(ctx)

	existing, err := s.recordOn(db, userID, today)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	active, err := s.Activity.HasActivityOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, ErrNoActivity
	}

	rec := models.StreakRecord{
		UserID:           userID,
		Date:             today,
		LastActivityDate: today,
		CurrentStreak:    1,
		LongestStreak:    1,
	}

	yesterday, err := s.recordOn(db, userID, utils.AddDays(today, -1))
	if err != nil {
		return nil, err
	}
	switch {
	case yesterday != nil:
		rec.CurrentStreak = yesterday.CurrentStreak + 1
		rec.LongestStreak = max(yesterday.LongestStreak, rec.CurrentStreak)
	default:
		// One-day gap or a long break both restart at 1; the historical best
		// carries over from the nearest earlier record.
		gap, err := s.recordOn(db, userID, utils.AddDays(today, -2))
		if err != nil {
			return nil, err
		}
		if gap == nil {
			gap, err = s.latestBefore(db, userID, &today)
			if err != nil {
				return nil, err
			}
		}
		if gap != nil {
			rec.LongestStreak = max(gap.LongestStreak, 1)
		}
	}

	res := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}, {Name: "streak_date"}},
		DoNothing: true,
	}).Create(&rec)
	if res.Error != nil {
		return nil, fmt.Errorf("save streak record: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		// A concurrent call won the insert; return its row.
		return s.recordOn(db, userID, today)
	}

	log.Printf("🔥 [STREAK] %s → day %d (best %d)", userID, rec.CurrentStreak, rec.LongestStreak)
	return &rec, nil
}

// GetCurrent reports the latest record plus a live "active today" flag.
func (s *StreakService) GetCurrent(ctx context.Context, userID string, today time.Time) (*StreakStatus, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	latest, err := s.Latest(ctx, userID)
	if err != nil {
		return nil, err
	}
	active, err := s.Activity.HasActivityOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	status := &StreakStatus{IsActiveToday: active}
	if latest != nil {
		last := latest.LastActivityDate
		status.CurrentStreak = latest.CurrentStreak
		status.LongestStreak = latest.LongestStreak
		status.LastActivityDate = &last
	}
	return status, nil
}

// Calendar lists every day of the month with activity and the streak on record.
func (s *StreakService) Calendar(ctx context.Context, userID string, year, month int, today time.Time) (*StreakCalendar, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if month < 1 || month > 12 {
		return nil, &ValidationError{Fields: map[string]string{"month": "must be between 1 and 12"}}
	}
	if year < 1 {
		return nil, &ValidationError{Fields: map[string]string{"year": "must be positive"}}
	}

	first := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	last := first.AddDate(0, 1, -1)

	active, err := s.Activity.ActiveDays(ctx, userID, first, last)
	if err != nil {
		return nil, err
	}

	var records []models.StreakRecord
	if err := s.DB.WithContext(ctx).
		Where("user_id = ? AND streak_date >= ? AND streak_date <= ?", userID, first, last).
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load streak records: %w", err)
	}
	streakByDay := make(map[string]int, len(records))
	for _, r := range records {
		streakByDay[utils.DayKey(r.Date)] = r.CurrentStreak
	}

	cal := &StreakCalendar{Year: year, Month: month}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
		key := utils.DayKey(d)
		cal.Days = append(cal.Days, CalendarDay{
			Date:          key,
			HasActivity:   active[key],
			CurrentStreak: streakByDay[key],
			IsToday:       utils.SameDay(d, today),
		})
	}
	return cal, nil
}

// Stats counts streak records overall, this month and this week (Sunday start).
func (s *StreakService) Stats(ctx context.Context, userID string, today time.Time) (*StreakStats, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	today = utils.DayStart(today)
	db := s.DB.WithContext(ctx).Model(&models.StreakRecord{})

	stats := &StreakStats{}
	if latest, err := s.Latest(ctx, userID); err != nil {
		return nil, err
	} else if latest != nil {
		stats.CurrentStreak = latest.CurrentStreak
	}

	if err := db.Session(&gorm.Session{}).Where("user_id = ?", userID).
		Select("COALESCE(MAX(longest_streak), 0)").Scan(&stats.LongestStreak).Error; err != nil {
		return nil, fmt.Errorf("max longest streak: %w", err)
	}

	counts := []struct {
		from *time.Time
		dst  *int64
	}{
		{nil, &stats.TotalActiveDays},
		{ptr(utils.MonthStart(today)), &stats.ThisMonthActiveDays},
		{ptr(utils.WeekStart(today)), &stats.ThisWeekActiveDays},
	}
	for _, c := range counts {
		q := db.Session(&gorm.Session{}).Where("user_id = ?", userID)
		if c.from != nil {
			q = q.Where("streak_date >= ? AND streak_date <= ?", *c.from, today)
		}
		if err := q.Count(c.dst).Error; err != nil {
			return nil, fmt.Errorf("count streak records: %w", err)
		}
	}

	active, err := s.Activity.HasActivityOn(ctx, userID, today)
	if err != nil {
		return nil, err
	}
	stats.IsActiveToday = active
	return stats, nil
}

func ptr[T any](v T) *T { return &v }
