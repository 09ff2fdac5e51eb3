package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"path/filepath"
	"strings"

	"fitness-tracker/models"
	"fitness-tracker/utils"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ExerciseInput struct {
	Name                    string                  `json:"name"`
	Description             string                  `json:"description"`
	Instructions            string                  `json:"instructions"`
	Type                    models.ExerciseType     `json:"type"`
	Location                models.ExerciseLocation `json:"location"`
	Difficulty              models.Difficulty       `json:"difficulty"`
	DurationMinutes         int                     `json:"duration_minutes"`
	CaloriesBurnedPerMinute float64                 `json:"calories_burned_per_minute"`
	VideoURL                string                  `json:"video_url"`
	MuscleGroups            []string                `json:"muscle_groups"`
	Equipment               []string                `json:"equipment"`
}

type FoodInput struct {
	Name            string  `json:"name"`
	Description     string  `json:"description"`
	CaloriesPer100g float64 `json:"calories_per_100g"`
	ProteinPer100g  float64 `json:"protein_per_100g"`
	CarbsPer100g    float64 `json:"carbs_per_100g"`
	FatPer100g      float64 `json:"fat_per_100g"`
	FiberPer100g    float64 `json:"fiber_per_100g"`
	Category        string  `json:"category"`
}

type AchievementInput struct {
	Name          string                 `json:"name"`
	Description   string                 `json:"description"`
	Type          models.AchievementType `json:"type"`
	RequiredValue int                    `json:"required_value"`
	Points        int                    `json:"points"`
	IsActive      *bool                  `json:"is_active"`
}

type ExerciseFilter struct {
	Type       models.ExerciseType
	Location   models.ExerciseLocation
	Difficulty models.Difficulty
	Search     string
	Page       utils.Page
}

type FoodFilter struct {
	Category string
	Search   string
	Page     utils.Page
}

// Image targets for UploadImage.
const (
	ImageExercise    = "exercises"
	ImageFood        = "foods"
	ImageAchievement = "achievements"
)

// CatalogService manages the admin-owned exercise, food and achievement catalogs.
// Deleting deactivates; history rows keep pointing at the item.
type CatalogService struct {
	DB     *gorm.DB
	Images utils.ImageStore
}

func NewCatalogService(db *gorm.DB, images utils.ImageStore) *CatalogService {
	return &CatalogService{DB: db, Images: images}
}

func jsonList(items []string) datatypes.JSON {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return datatypes.JSON(b)
}

func (in ExerciseInput) validate() error {
	v := validator{}
	if strings.TrimSpace(in.Name) == "" {
		v.add("name", "is required")
	}
	if !in.Type.Valid() {
		v.add("type", "unknown exercise type")
	}
	if !in.Location.Valid() {
		v.add("location", "unknown location")
	}
	if !in.Difficulty.Valid() {
		v.add("difficulty", "unknown difficulty")
	}
	if in.DurationMinutes < 0 {
		v.add("duration_minutes", "cannot be negative")
	}
	if in.CaloriesBurnedPerMinute <= 0 {
		v.add("calories_burned_per_minute", "must be greater than 0")
	}
	return v.err()
}

func (in FoodInput) validate() error {
	v := validator{}
	if strings.TrimSpace(in.Name) == "" {
		v.add("name", "is required")
	}
	for field, value := range map[string]float64{
		"calories_per_100g": in.CaloriesPer100g,
		"protein_per_100g":  in.ProteinPer100g,
		"carbs_per_100g":    in.CarbsPer100g,
		"fat_per_100g":      in.FatPer100g,
		"fiber_per_100g":    in.FiberPer100g,
	} {
		if value < 0 {
			v.add(field, "cannot be negative")
		}
	}
	return v.err()
}

func (in AchievementInput) validate() error {
	v := validator{}
	if strings.TrimSpace(in.Name) == "" {
		v.add("name", "is required")
	}
	if !in.Type.Valid() {
		v.add("type", "unknown achievement type")
	}
	if in.RequiredValue < 1 {
		v.add("required_value", "must be at least 1")
	}
	if in.Points < 0 {
		v.add("points", "cannot be negative")
	}
	return v.err()
}

// uniqueCode slugs name and suffixes -2, -3... until no other row of model uses it.
func uniqueCode(db *gorm.DB, model any, name, exceptID string) (string, error) {
	base := slug.Make(name)
	if base == "" {
		base = uuid.NewString()[:8]
	}
	code := base
	for i := 2; ; i++ {
		var count int64
		q := db.Model(model).Where("code = ?", code)
		if exceptID != "" {
			q = q.Where("id <> ?", exceptID)
		}
		if err := q.Count(&count).Error; err != nil {
			return "", fmt.Errorf("check code: %w", err)
		}
		if count == 0 {
			return code, nil
		}
		code = fmt.Sprintf("%s-%d", base, i)
	}
}

const codeAttempts = 3

// createWithCode inserts row under a fresh code, re-slugging when a concurrent
// insert claims the same code between the lookup and the write.
func createWithCode(db *gorm.DB, model any, name string, setCode func(string), row any) error {
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := uniqueCode(db, model, name, "")
		if err != nil {
			return err
		}
		setCode(code)
		err = db.Create(row).Error
		if !errors.Is(err, gorm.ErrDuplicatedKey) {
			return err
		}
		log.Printf("⚠️ [CATALOG] code %q taken concurrently, retrying", code)
	}
	return fmt.Errorf("%w: no free code for %q", ErrConflict, name)
}

// saveErr maps a unique violation on update (a code claimed concurrently) to ErrConflict.
func saveErr(err error, what string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %s code already in use", ErrConflict, what)
	}
	return fmt.Errorf("update %s: %w", what, err)
}

func notFound(err error, what string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s not found", ErrNotFound, what)
	}
	return fmt.Errorf("load %s: %w", what, err)
}

// ---- exercises ----

func (s *CatalogService) ListExercises(ctx context.Context, f ExerciseFilter) (*utils.Paged[models.Exercise], error) {
	q := s.DB.WithContext(ctx).Model(&models.Exercise{}).Where("is_active = ?", true)
	if f.Type != "" {
		q = q.Where("type = ?", f.Type)
	}
	if f.Location != "" {
		q = q.Where("location = ?", f.Location)
	}
	if f.Difficulty != "" {
		q = q.Where("difficulty = ?", f.Difficulty)
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	page := utils.NewPage(f.Page.Page, f.Page.Size)
	out := &utils.Paged[models.Exercise]{Items: []models.Exercise{}, Page: page.Page, Size: page.Size}
	if err := q.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
		return nil, fmt.Errorf("count exercises: %w", err)
	}
	if err := q.Scopes(page.Scope).Order("name").Find(&out.Items).Error; err != nil {
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	return out, nil
}

func (s *CatalogService) GetExercise(ctx context.Context, id string) (*models.Exercise, error) {
	var e models.Exercise
	if err := s.DB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&e).Error; err != nil {
		return nil, notFound(err, "exercise")
	}
	return &e, nil
}

func (in ExerciseInput) applyTo(e *models.Exercise) {
	e.Name = strings.TrimSpace(in.Name)
	e.Description = in.Description
	e.Instructions = in.Instructions
	e.Type = in.Type
	e.Location = in.Location
	e.Difficulty = in.Difficulty
	e.DurationMinutes = in.DurationMinutes
	e.CaloriesBurnedPerMinute = in.CaloriesBurnedPerMinute
	e.VideoURL = in.VideoURL
	e.MuscleGroups = jsonList(in.MuscleGroups)
	e.Equipment = jsonList(in.Equipment)
}

func (s *CatalogService) CreateExercise(ctx context.Context, in ExerciseInput) (*models.Exercise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	e := models.Exercise{IsActive: true}
	in.applyTo(&e)
	if err := createWithCode(db, &models.Exercise{}, e.Name, func(code string) { e.Code = code }, &e); err != nil {
		return nil, fmt.Errorf("create exercise: %w", err)
	}
	log.Printf("✅ [CATALOG] exercise created: %s (%s)", e.Name, e.Code)
	return &e, nil
}

func (s *CatalogService) UpdateExercise(ctx context.Context, id string, in ExerciseInput) (*models.Exercise, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	var e models.Exercise
	if err := db.Where("id = ?", id).First(&e).Error; err != nil {
		return nil, notFound(err, "exercise")
	}
	in.applyTo(&e)
	code, err := uniqueCode(db, &models.Exercise{}, e.Name, e.ID)
	if err != nil {
		return nil, err
	}
	e.Code = code
	if err := db.Save(&e).Error; err != nil {
		return nil, saveErr(err, "exercise")
	}
	return &e, nil
}

func (s *CatalogService) DeactivateExercise(ctx context.Context, id string) error {
	return s.deactivate(ctx, &models.Exercise{}, id, "exercise")
}

// ---- foods ----

func (s *CatalogService) ListFoods(ctx context.Context, f FoodFilter) (*utils.Paged[models.Food], error) {
	q := s.DB.WithContext(ctx).Model(&models.Food{}).Where("is_active = ?", true)
	if f.Category != "" {
		q = q.Where("LOWER(category) = ?", strings.ToLower(f.Category))
	}
	if f.Search != "" {
		like := "%" + strings.ToLower(f.Search) + "%"
		q = q.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", like, like)
	}
	page := utils.NewPage(f.Page.Page, f.Page.Size)
	out := &utils.Paged[models.Food]{Items: []models.Food{}, Page: page.Page, Size: page.Size}
	if err := q.Session(&gorm.Session{}).Count(&out.Total).Error; err != nil {
		return nil, fmt.Errorf("count foods: %w", err)
	}
	if err := q.Scopes(page.Scope).Order("name").Find(&out.Items).Error; err != nil {
		return nil, fmt.Errorf("list foods: %w", err)
	}
	return out, nil
}

func (s *CatalogService) GetFood(ctx context.Context, id string) (*models.Food, error) {
	var f models.Food
	if err := s.DB.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&f).Error; err != nil {
		return nil, notFound(err, "food")
	}
	return &f, nil
}

func (in FoodInput) applyTo(f *models.Food) {
	f.Name = strings.TrimSpace(in.Name)
	f.Description = in.Description
	f.CaloriesPer100g = in.CaloriesPer100g
	f.ProteinPer100g = in.ProteinPer100g
	f.CarbsPer100g = in.CarbsPer100g
	f.FatPer100g = in.FatPer100g
	f.FiberPer100g = in.FiberPer100g
	f.Category = in.Category
}

func (s *CatalogService) CreateFood(ctx context.Context, in FoodInput) (*models.Food, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	f := models.Food{IsActive: true}
	in.applyTo(&f)
	if err := s.DB.WithContext(ctx).Create(&f).Error; err != nil {
		return nil, fmt.Errorf("create food: %w", err)
	}
	log.Printf("✅ [CATALOG] food created: %s", f.Name)
	return &f, nil
}

func (s *CatalogService) UpdateFood(ctx context.Context, id string, in FoodInput) (*models.Food, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	var f models.Food
	if err := db.Where("id = ?", id).First(&f).Error; err != nil {
		return nil, notFound(err, "food")
	}
	in.applyTo(&f)
	if err := db.Save(&f).Error; err != nil {
		return nil, fmt.Errorf("update food: %w", err)
	}
	return &f, nil
}

func (s *CatalogService) DeactivateFood(ctx context.Context, id string) error {
	return s.deactivate(ctx, &models.Food{}, id, "food")
}

// ---- achievements ----

// ListAllAchievements includes inactive entries (admin view).
func (s *CatalogService) ListAllAchievements(ctx context.Context) ([]models.Achievement, error) {
	out := []models.Achievement{}
	if err := s.DB.WithContext(ctx).Order("type, required_value, name").Find(&out).Error; err != nil {
		return nil, fmt.Errorf("list achievements: %w", err)
	}
	return out, nil
}

func (s *CatalogService) CreateAchievement(ctx context.Context, in AchievementInput) (*models.Achievement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	a := models.Achievement{
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Type:          in.Type,
		RequiredValue: in.RequiredValue,
		Points:        in.Points,
		IsActive:      true,
	}
	if err := createWithCode(db, &models.Achievement{}, a.Name, func(code string) { a.Code = code }, &a); err != nil {
		return nil, fmt.Errorf("create achievement: %w", err)
	}
	// default:true swallows a false on insert
	if in.IsActive != nil && !*in.IsActive {
		if err := db.Model(&a).Update("is_active", false).Error; err != nil {
			return nil, fmt.Errorf("deactivate achievement: %w", err)
		}
	}
	log.Printf("✅ [CATALOG] achievement created: %s (%s ≥ %d)", a.Name, a.Type, a.RequiredValue)
	return &a, nil
}

func (s *CatalogService) UpdateAchievement(ctx context.Context, id string, in AchievementInput) (*models.Achievement, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)
	var a models.Achievement
	if err := db.Where("id = ?", id).First(&a).Error; err != nil {
		return nil, notFound(err, "achievement")
	}
	a.Name = strings.TrimSpace(in.Name)
	a.Description = in.Description
	a.Type = in.Type
	a.RequiredValue = in.RequiredValue
	a.Points = in.Points
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
	code, err := uniqueCode(db, &models.Achievement{}, a.Name, a.ID)
	if err != nil {
		return nil, err
	}
	a.Code = code
	if err := db.Save(&a).Error; err != nil {
		return nil, saveErr(err, "achievement")
	}
	return &a, nil
}

// DeactivateAchievement hides it from the catalog; existing unlocks stay.
func (s *CatalogService) DeactivateAchievement(ctx context.Context, id string) error {
	return s.deactivate(ctx, &models.Achievement{}, id, "achievement")
}

func (s *CatalogService) deactivate(ctx context.Context, model any, id, what string) error {
	res := s.DB.WithContext(ctx).Model(model).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("deactivate %s: %w", what, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s not found", ErrNotFound, what)
	}
	return nil
}

// ---- images ----

var imageColumns = map[string]struct {
	model  func() any
	column string
}{
	ImageExercise:    {func() any { return &models.Exercise{} }, "image_url"},
	ImageFood:        {func() any { return &models.Food{} }, "image_url"},
	ImageAchievement: {func() any { return &models.Achievement{} }, "icon_url"},
}

var allowedImageExt = map[string]bool{".png": true, ".jpg": true, ".jpeg": true, ".webp": true, ".svg": true}

// UploadImage stores the file under "<kind>/<id>-<uuid><ext>" and records its URL.
func (s *CatalogService) UploadImage(ctx context.Context, kind, id string, file *multipart.FileHeader) (string, error) {
	target, ok := imageColumns[kind]
	if !ok {
		return "", fmt.Errorf("%w: unknown image target %q", ErrInvalidInput, kind)
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedImageExt[ext] {
		return "", &ValidationError{Fields: map[string]string{"image": "must be png, jpg, jpeg, webp or svg"}}
	}
	if s.Images == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	db := s.DB.WithContext(ctx)
	var count int64
	if err := db.Model(target.model()).Where("id = ?", id).Count(&count).Error; err != nil {
		return "", fmt.Errorf("load %s: %w", kind, err)
	}
	if count == 0 {
		return "", fmt.Errorf("%w: %s %s not found", ErrNotFound, kind, id)
	}

	key := fmt.Sprintf("%s/%s-%s%s", kind, id, uuid.NewString()[:8], ext)
	url, err := s.Images.Upload(ctx, file, key)
	if err != nil {
		return "", err
	}
	if err := db.Model(target.model()).Where("id = ?", id).Update(target.column, url).Error; err != nil {
		return "", fmt.Errorf("save image url: %w", err)
	}
	log.Printf("🖼️ [CATALOG] %s %s image → %s", kind, id, url)
	return url, nil
}
