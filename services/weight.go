package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	MaxNotesLength      = 500
	recentWeightRecords = 10
	trendWindow         = 4
	stableWeeklyChange  = 0.1
)

type WeightInput struct {
	Weight       float64
	RecordedDate time.Time // zero means today
	Notes        string
}

type WeightPatch struct {
	Weight       *float64
	RecordedDate *time.Time
	Notes        *string
}

type WeightTrend struct {
	Direction            string  `json:"direction"` // Increasing, Decreasing, Stable
	AverageWeeklyChange  float64 `json:"average_weekly_change"`
	AverageMonthlyChange float64 `json:"average_monthly_change"`
	Description          string  `json:"description"`
}

type WeightProgress struct {
	CurrentWeight    *float64              `json:"current_weight"`
	PreviousWeight   *float64              `json:"previous_weight"`
	WeightChange     *float64              `json:"weight_change"`
	TargetWeight     *float64              `json:"target_weight"`
	WeightToTarget   *float64              `json:"weight_to_target"`
	LastRecordedDate *time.Time            `json:"last_recorded_date"`
	RecentRecords    []models.WeightRecord `json:"recent_records"`
	Trend            *WeightTrend          `json:"trend"`
}

type WeightStatistics struct {
	HighestWeight     float64    `json:"highest_weight"`
	LowestWeight      float64    `json:"lowest_weight"`
	HighestWeightDate *time.Time `json:"highest_weight_date"`
	LowestWeightDate  *time.Time `json:"lowest_weight_date"`
	TotalWeightLost   float64    `json:"total_weight_lost"`
	TotalWeightGained float64    `json:"total_weight_gained"`
	TotalRecords      int        `json:"total_records"`
	DaysTracking      int        `json:"days_tracking"`
}

type WeightService struct {
	DB       *gorm.DB
	Profiles *ProfileService
}

func NewWeightService(db *gorm.DB, profiles *ProfileService) *WeightService {
	return &WeightService{DB: db, Profiles: profiles}
}

func validateWeightEntry(v validator, weight float64, day, today time.Time, notes string) {
	validateWeight(v, "weight", weight)
	if day.After(today) {
		v.add("recorded_date", "cannot be in the future")
	}
	if len([]rune(notes)) > MaxNotesLength {
		v.add("notes", fmt.Sprintf("must be at most %d characters", MaxNotesLength))
	}
}

// LogWeight writes the record for its day, replacing any earlier entry for the
// same day. If it is the user's latest record the profile weight follows it.
func (s *WeightService) LogWeight(ctx context.Context, userID string, in WeightInput, today time.Time) (*models.WeightRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	today = utils.DayStart(today)
	day := today
	if !in.RecordedDate.IsZero() {
		day = utils.DayStart(in.RecordedDate)
	}
	v := validator{}
	validateWeightEntry(v, in.Weight, day, today, in.Notes)
	if err := v.err(); err != nil {
		return nil, err
	}

	var saved models.WeightRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec := models.WeightRecord{UserID: userID, RecordedDate: day, Weight: in.Weight, Notes: in.Notes}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "recorded_date"}},
			DoUpdates: clause.AssignmentColumns([]string{"weight", "notes", "updated_at"}),
		}).Create(&rec).Error; err != nil {
			return fmt.Errorf("upsert weight record: %w", err)
		}
		if err := tx.Where("user_id = ? AND recorded_date = ?", userID, day).First(&saved).Error; err != nil {
			return fmt.Errorf("reload weight record: %w", err)
		}
		return s.syncLatest(tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// syncLatest pushes the newest recorded weight into the profile.
func (s *WeightService) syncLatest(tx *gorm.DB, userID string) error {
	var latest models.WeightRecord
	err := tx.Where("user_id = ?", userID).Order("recorded_date DESC").First(&latest).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load latest weight: %w", err)
	}
	return s.Profiles.syncWeight(tx, userID, latest.Weight)
}

// ListWeights returns records from the last `days` days (all when days <= 0), newest first.
func (s *WeightService) ListWeights(ctx context.Context, userID string, days int, today time.Time) ([]models.WeightRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	q := s.DB.WithContext(ctx).Where("user_id = ?", userID)
	if days > 0 {
		q = q.Where("recorded_date >= ?", utils.AddDays(today, -days))
	}
	records := []models.WeightRecord{}
	if err := q.Order("recorded_date DESC").Find(&records).Error; err != nil {
		return nil, fmt.Errorf("list weight records: %w", err)
	}
	return records, nil
}

func (s *WeightService) GetWeight(ctx context.Context, userID, id string) (*models.WeightRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	return s.find(s.DB.WithContext(ctx), userID, id)
}

func (s *WeightService) find(db *gorm.DB, userID, id string) (*models.WeightRecord, error) {
	var rec models.WeightRecord
	err := db.Where("id = ? AND user_id = ?", id, userID).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: weight record not found", ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("load weight record: %w", err)
	}
	return &rec, nil
}

// UpdateWeight edits a record; moving it onto a day that already has one is a conflict.
func (s *WeightService) UpdateWeight(ctx context.Context, userID, id string, patch WeightPatch, today time.Time) (*models.WeightRecord, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	today = utils.DayStart(today)

	var rec *models.WeightRecord
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		if rec, err = s.find(tx, userID, id); err != nil {
			return err
		}
		if patch.Weight != nil {
			rec.Weight = *patch.Weight
		}
		if patch.Notes != nil {
			rec.Notes = *patch.Notes
		}
		if patch.RecordedDate != nil {
			newDay := utils.DayStart(*patch.RecordedDate)
			if !utils.SameDay(newDay, rec.RecordedDate) {
				var clash int64
				if err := tx.Model(&models.WeightRecord{}).
					Where("user_id = ? AND recorded_date = ? AND id <> ?", userID, newDay, rec.ID).
					Count(&clash).Error; err != nil {
					return fmt.Errorf("check weight day: %w", err)
				}
				if clash > 0 {
					return fmt.Errorf("%w: a weight record already exists for %s", ErrConflict, utils.DayKey(newDay))
				}
			}
			rec.RecordedDate = newDay
		}

		v := validator{}
		validateWeightEntry(v, rec.Weight, rec.RecordedDate, today, rec.Notes)
		if err := v.err(); err != nil {
			return err
		}
		if err := tx.Save(rec).Error; err != nil {
			return fmt.Errorf("save weight record: %w", err)
		}
		return s.syncLatest(tx, userID)
	})
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *WeightService) DeleteWeight(ctx context.Context, userID, id string) error {
	if err := requireUser(userID); err != nil {
		return err
	}
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		rec, err := s.find(tx, userID, id)
		if err != nil {
			return err
		}
		if err := tx.Delete(rec).Error; err != nil {
			return fmt.Errorf("delete weight record: %w", err)
		}
		return s.syncLatest(tx, userID)
	})
}

// Progress summarises the newest records against the profile's target weight.
func (s *WeightService) Progress(ctx context.Context, userID string, today time.Time) (*WeightProgress, error) {
	records, err := s.ListWeights(ctx, userID, 0, today)
	if err != nil {
		return nil, err
	}
	progress := &WeightProgress{RecentRecords: []models.WeightRecord{}}
	if len(records) == 0 {
		return progress, nil
	}

	profile, err := findProfile(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}

	current := records[0].Weight
	last := records[0].RecordedDate
	progress.CurrentWeight = &current
	progress.LastRecordedDate = &last
	if len(records) > 1 {
		prev := records[1].Weight
		change := roundTo(current-prev, 2)
		progress.PreviousWeight = &prev
		progress.WeightChange = &change
	}
	if profile != nil && profile.TargetWeight > 0 {
		target := profile.TargetWeight
		toTarget := roundTo(current-target, 2)
		progress.TargetWeight = &target
		progress.WeightToTarget = &toTarget
	}
	progress.RecentRecords = records[:min(recentWeightRecords, len(records))]
	progress.Trend = weightTrend(records, today)
	return progress, nil
}

// weightTrend expects records newest first.
func weightTrend(records []models.WeightRecord, today time.Time) *WeightTrend {
	if len(records) < 2 {
		return &WeightTrend{Direction: "Stable", Description: "Not enough data to determine trend"}
	}

	window := records[:min(trendWindow, len(records))]
	weekly := (window[0].Weight - window[len(window)-1].Weight) / float64(len(window)-1)

	monthStart := utils.AddDays(today, -30)
	var monthly []models.WeightRecord
	for _, r := range records {
		if !r.RecordedDate.Before(monthStart) {
			monthly = append(monthly, r)
		}
	}
	var monthlyChange float64
	if len(monthly) >= 2 {
		monthlyChange = monthly[0].Weight - monthly[len(monthly)-1].Weight
	}

	trend := &WeightTrend{
		AverageWeeklyChange:  roundTo(weekly, 2),
		AverageMonthlyChange: roundTo(monthlyChange, 2),
	}
	switch {
	case math.Abs(weekly) < stableWeeklyChange:
		trend.Direction = "Stable"
		trend.Description = "Your weight has been relatively stable"
	case weekly > 0:
		trend.Direction = "Increasing"
		trend.Description = fmt.Sprintf("Your weight is trending upward by approximately %.1f kg per week", math.Abs(weekly))
	default:
		trend.Direction = "Decreasing"
		trend.Description = fmt.Sprintf("Your weight is trending downward by approximately %.1f kg per week", math.Abs(weekly))
	}
	return trend
}

func (s *WeightService) Statistics(ctx context.Context, userID string) (*WeightStatistics, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	var records []models.WeightRecord
	if err := s.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("recorded_date ASC").
		Find(&records).Error; err != nil {
		return nil, fmt.Errorf("load weight records: %w", err)
	}
	stats := &WeightStatistics{}
	if len(records) == 0 {
		return stats, nil
	}

	high, low := records[0], records[0]
	for _, r := range records[1:] {
		if r.Weight > high.Weight {
			high = r
		}
		if r.Weight < low.Weight {
			low = r
		}
	}
	first, last := records[0], records[len(records)-1]
	total := roundTo(last.Weight-first.Weight, 2)

	stats.HighestWeight = high.Weight
	stats.LowestWeight = low.Weight
	stats.HighestWeightDate = &high.RecordedDate
	stats.LowestWeightDate = &low.RecordedDate
	if total < 0 {
		stats.TotalWeightLost = -total
	} else {
		stats.TotalWeightGained = total
	}
	stats.TotalRecords = len(records)
	stats.DaysTracking = utils.DaysBetween(first.RecordedDate, last.RecordedDate) + 1
	return stats, nil
}
