package services

import (
	"context"
	"errors"
	"fmt"
	"log"

	"fitness-tracker/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Input bounds for body measurements.
const (
	MinWeightKg = 30.0
	MaxWeightKg = 300.0
	MinHeightM  = 1.0
	MaxHeightM  = 2.5
	MinAge      = 13
	MaxAge      = 120
)

type ProfileInput struct {
	Weight        float64              `json:"weight"`
	Height        float64              `json:"height"`
	Age           int                  `json:"age"`
	Gender        models.Gender        `json:"gender"`
	ActivityLevel models.ActivityLevel `json:"activity_level"`
	FitnessGoal   models.FitnessGoal   `json:"fitness_goal"`
	TargetWeight  float64              `json:"target_weight"`
}

// ProfilePatch: nil fields are left untouched.
type ProfilePatch struct {
	Weight        *float64              `json:"weight"`
	Height        *float64              `json:"height"`
	Age           *int                  `json:"age"`
	Gender        *models.Gender        `json:"gender"`
	ActivityLevel *models.ActivityLevel `json:"activity_level"`
	FitnessGoal   *models.FitnessGoal   `json:"fitness_goal"`
	TargetWeight  *float64              `json:"target_weight"`
}

// ProfileView is a stored profile plus its coaching text.
type ProfileView struct {
	models.UserProfile
	Recommendation string `json:"recommendation"`
}

type ProfileService struct {
	DB *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{DB: db}
}

func validateWeight(v validator, field string, w float64) {
	v.rangeFloat(field, w, MinWeightKg, MaxWeightKg, "kg")
}

func validateHeight(v validator, h float64) {
	v.rangeFloat("height", h, MinHeightM, MaxHeightM, "m")
}

func validateAge(v validator, age int) {
	if age < MinAge || age > MaxAge {
		v.add("age", fmt.Sprintf("must be between %d and %d", MinAge, MaxAge))
	}
}

func validateGender(v validator, g models.Gender) {
	if !g.Valid() {
		v.add("gender", "must be one of male, female, other")
	}
}

func validateActivity(v validator, a models.ActivityLevel) {
	if !a.Valid() {
		v.add("activity_level", "must be between 1 (sedentary) and 5 (extra active)")
	}
}

func validateGoal(v validator, g models.FitnessGoal) {
	if !g.Valid() {
		v.add("fitness_goal", "must be one of weight-loss, weight-gain, maintain, custom")
	}
}

func (in ProfileInput) validate() error {
	v := validator{}
	validateWeight(v, "weight", in.Weight)
	validateHeight(v, in.Height)
	validateAge(v, in.Age)
	validateGender(v, in.Gender)
	validateActivity(v, in.ActivityLevel)
	validateGoal(v, in.FitnessGoal)
	validateWeight(v, "target_weight", in.TargetWeight)
	return v.err()
}

func (p ProfilePatch) validate() error {
	v := validator{}
	if p.Weight != nil {
		validateWeight(v, "weight", *p.Weight)
	}
	if p.Height != nil {
		validateHeight(v, *p.Height)
	}
	if p.Age != nil {
		validateAge(v, *p.Age)
	}
	if p.Gender != nil {
		validateGender(v, *p.Gender)
	}
	if p.ActivityLevel != nil {
		validateActivity(v, *p.ActivityLevel)
	}
	if p.FitnessGoal != nil {
		validateGoal(v, *p.FitnessGoal)
	}
	if p.TargetWeight != nil {
		validateWeight(v, "target_weight", *p.TargetWeight)
	}
	return v.err()
}

func (p ProfilePatch) apply(profile *models.UserProfile) {
	if p.Weight != nil {
		profile.Weight = *p.Weight
	}
	if p.Height != nil {
		profile.Height = *p.Height
	}
	if p.Age != nil {
		profile.Age = *p.Age
	}
	if p.Gender != nil {
		profile.Gender = *p.Gender
	}
	if p.ActivityLevel != nil {
		profile.ActivityLevel = *p.ActivityLevel
	}
	if p.FitnessGoal != nil {
		profile.FitnessGoal = *p.FitnessGoal
	}
	if p.TargetWeight != nil {
		profile.TargetWeight = *p.TargetWeight
	}
}

// CreateProfile fails with ErrConflict when the user already has a profile.
func (s *ProfileService) CreateProfile(ctx context.Context, userID string, in ProfileInput) (*models.UserProfile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := in.validate(); err != nil {
		return nil, err
	}

	profile := models.UserProfile{
		UserID:        userID,
		Weight:        in.Weight,
		Height:        in.Height,
		Age:           in.Age,
		Gender:        in.Gender,
		ActivityLevel: in.ActivityLevel,
		FitnessGoal:   in.FitnessGoal,
		TargetWeight:  in.TargetWeight,
	}
	if err := ApplyDerivedMetrics(&profile); err != nil {
		return nil, err
	}

	res := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "user_id"}}, DoNothing: true}).
		Create(&profile)
	if res.Error != nil {
		return nil, fmt.Errorf("create profile: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: profile already exists for this user", ErrConflict)
	}

	log.Printf("✅ [PROFILE] created for %s (BMI %.2f, %s)", userID, profile.BMI, profile.BMICategory)
	return &profile, nil
}

// UpdateProfile applies the supplied fields and recomputes all derived metrics.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID string, patch ProfilePatch) (*models.UserProfile, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	if err := patch.validate(); err != nil {
		return nil, err
	}

	var profile models.UserProfile
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).First(&profile).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: profile not found", ErrNotFound)
			}
			return fmt.Errorf("load profile: %w", err)
		}
		patch.apply(&profile)
		if err := ApplyDerivedMetrics(&profile); err != nil {
			return err
		}
		return tx.Save(&profile).Error
	})
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *ProfileService) GetProfile(ctx context.Context, userID string) (*ProfileView, error) {
	if err := requireUser(userID); err != nil {
		return nil, err
	}
	profile, err := findProfile(s.DB.WithContext(ctx), userID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, fmt.Errorf("%w: profile not found", ErrNotFound)
	}
	return &ProfileView{
		UserProfile:    *profile,
		Recommendation: Recommendation(profile.BMI, profile.FitnessGoal),
	}, nil
}

// syncWeight copies weight into the user's profile (if any) and recomputes its
// derived fields. Runs inside the caller's transaction.
func (s *ProfileService) syncWeight(tx *gorm.DB, userID string, weight float64) error {
	profile, err := findProfile(tx, userID)
	if err != nil || profile == nil {
		return err
	}
	if profile.Weight == weight {
		return nil
	}
	profile.Weight = weight
	if err := ApplyDerivedMetrics(profile); err != nil {
		return err
	}
	if err := tx.Save(profile).Error; err != nil {
		return fmt.Errorf("sync profile weight: %w", err)
	}
	log.Printf("🔄 [PROFILE] weight synced for %s → %.1f kg", userID, weight)
	return nil
}

// RecomputeAll re-applies ApplyDerivedMetrics to every stored profile.
func (s *ProfileService) RecomputeAll(ctx context.Context) (int, error) {
	var profiles []models.UserProfile
	if err := s.DB.WithContext(ctx).Find(&profiles).Error; err != nil {
		return 0, fmt.Errorf("load profiles: %w", err)
	}
	updated := 0
	for i := range profiles {
		p := &profiles[i]
		if err := ApplyDerivedMetrics(p); err != nil {
			log.Printf("⚠️ [PROFILE] skipping %s: %v", p.UserID, err)
			continue
		}
		if err := s.DB.WithContext(ctx).Save(p).Error; err != nil {
			return updated, fmt.Errorf("save profile %s: %w", p.UserID, err)
		}
		updated++
	}
	return updated, nil
}

// UserIDs lists every user with a profile.
func (s *ProfileService) UserIDs(ctx context.Context) ([]string, error) {
	var ids []string
	if err := s.DB.WithContext(ctx).Model(&models.UserProfile{}).
		Order("user_id").
		Pluck("user_id", &ids).Error; err != nil {
		return nil, fmt.Errorf("list profile users: %w", err)
	}
	return ids, nil
}

// findProfile returns (nil, nil) when the user has no profile.
func findProfile(db *gorm.DB, userID string) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := db.Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return &profile, nil
}
