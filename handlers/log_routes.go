// handlers/log_routes.go
package handlers

import (
	"time"

	"fitness-tracker/models"
	"fitness-tracker/services"

	"github.com/gofiber/fiber/v2"
)

type exerciseLogRequest struct {
	ExerciseID      string   `json:"exercise_id"`
	DurationMinutes int      `json:"duration_minutes"`
	CaloriesBurned  *float64 `json:"calories_burned"`
	Sets            *int     `json:"sets"`
	Reps            *int     `json:"reps"`
	Weight          *float64 `json:"weight"`
	Notes           string   `json:"notes"`
	ExerciseDate    string   `json:"exercise_date"`
}

type dietLogRequest struct {
	FoodID   string          `json:"food_id"`
	Quantity float64         `json:"quantity"`
	Unit     string          `json:"unit"`
	MealType models.MealType `json:"meal_type"`
	Notes    string          `json:"notes"`
	MealDate string          `json:"meal_date"`
}

type dietLogPatchRequest struct {
	Quantity *float64         `json:"quantity"`
	MealType *models.MealType `json:"meal_type"`
	Notes    *string          `json:"notes"`
}

func SetupLogRoutes(app *fiber.App, identity fiber.Handler, exercises *services.ExerciseLogService, diets *services.DietLogService) {
	exerciseLogs := app.Group("/exercise-logs", identity)

	exerciseLogs.Get("/", func(c *fiber.Ctx) error {
		filter := services.ExerciseLogFilter{Page: queryPage(c)}
		for key, dst := range map[string]**time.Time{"from": &filter.From, "to": &filter.To} {
			if c.Query(key) == "" {
				continue
			}
			day, err := queryDay(c, key, Now())
			if err != nil {
				return respondError(c, err)
			}
			*dst = &day
		}
		logs, err := exercises.List(c.UserContext(), userID(c), filter)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(logs)
	})

	exerciseLogs.Post("/", func(c *fiber.Ctx) error {
		var req exerciseLogRequest
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		day, err := optionalDay("exercise_date", req.ExerciseDate)
		if err != nil {
			return respondError(c, err)
		}
		entry, err := exercises.Log(c.UserContext(), userID(c), services.ExerciseLogInput{
			ExerciseID:      req.ExerciseID,
			DurationMinutes: req.DurationMinutes,
			CaloriesBurned:  req.CaloriesBurned,
			Sets:            req.Sets,
			Reps:            req.Reps,
			Weight:          req.Weight,
			Notes:           req.Notes,
			ExerciseDate:    day,
		}, Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	})

	exerciseLogs.Delete("/:id", func(c *fiber.Ctx) error {
		if err := exercises.Delete(c.UserContext(), userID(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	dietLogs := app.Group("/diet-logs", identity)

	dietLogs.Get("/", func(c *fiber.Ctx) error {
		day, err := queryDay(c, "date", Now())
		if err != nil {
			return respondError(c, err)
		}
		logs, err := diets.ListForDay(c.UserContext(), userID(c), day)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(logs)
	})

	dietLogs.Get("/daily-summary", func(c *fiber.Ctx) error {
		day, err := queryDay(c, "date", Now())
		if err != nil {
			return respondError(c, err)
		}
		summary, err := diets.DailySummary(c.UserContext(), userID(c), day)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(summary)
	})

	dietLogs.Post("/", func(c *fiber.Ctx) error {
		var req dietLogRequest
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		day, err := optionalDay("meal_date", req.MealDate)
		if err != nil {
			return respondError(c, err)
		}
		entry, err := diets.Log(c.UserContext(), userID(c), services.DietLogInput{
			FoodID:   req.FoodID,
			Quantity: req.Quantity,
			Unit:     req.Unit,
			MealType: req.MealType,
			Notes:    req.Notes,
			MealDate: day,
		}, Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(entry)
	})

	dietLogs.Put("/:id", func(c *fiber.Ctx) error {
		var req dietLogPatchRequest
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		entry, err := diets.Update(c.UserContext(), userID(c), c.Params("id"), services.DietLogPatch{
			Quantity: req.Quantity,
			MealType: req.MealType,
			Notes:    req.Notes,
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(entry)
	})

	dietLogs.Delete("/:id", func(c *fiber.Ctx) error {
		if err := diets.Delete(c.UserContext(), userID(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}
