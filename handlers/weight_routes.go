package handlers

import (
	"fitness-tracker/services"
	"fitness-tracker/utils"

	"github.com/gofiber/fiber/v2"
)

type weightRequest struct {
	Weight       float64 `json:"weight"`
	RecordedDate string  `json:"recorded_date"` // YYYY-MM-DD, default today
	Notes        string  `json:"notes"`
}

type weightPatchRequest struct {
	Weight       *float64 `json:"weight"`
	RecordedDate *string  `json:"recorded_date"`
	Notes        *string  `json:"notes"`
}

func SetupWeightRoutes(app *fiber.App, identity fiber.Handler, weights *services.WeightService) {
	group := app.Group("/weight", identity)

	group.Get("/", func(c *fiber.Ctx) error {
		records, err := weights.ListWeights(c.UserContext(), userID(c), c.QueryInt("days", 30), Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(records)
	})

	group.Post("/", func(c *fiber.Ctx) error {
		var req weightRequest
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		day, err := optionalDay("recorded_date", req.RecordedDate)
		if err != nil {
			return respondError(c, err)
		}
		rec, err := weights.LogWeight(c.UserContext(), userID(c), services.WeightInput{
			Weight:       req.Weight,
			RecordedDate: day,
			Notes:        req.Notes,
		}, Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(rec)
	})

	// registered before /:id so they are not captured as ids
	group.Get("/progress", func(c *fiber.Ctx) error {
		progress, err := weights.Progress(c.UserContext(), userID(c), Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(progress)
	})

	group.Get("/statistics", func(c *fiber.Ctx) error {
		stats, err := weights.Statistics(c.UserContext(), userID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stats)
	})

	group.Get("/:id", func(c *fiber.Ctx) error {
		rec, err := weights.GetWeight(c.UserContext(), userID(c), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rec)
	})

	group.Put("/:id", func(c *fiber.Ctx) error {
		var req weightPatchRequest
		if err := c.BodyParser(&req); err != nil {
			return badJSON(c, err)
		}
		patch := services.WeightPatch{Weight: req.Weight, Notes: req.Notes}
		if req.RecordedDate != nil {
			day, err := utils.ParseDay(*req.RecordedDate)
			if err != nil {
				return respondError(c, &services.ValidationError{Fields: map[string]string{"recorded_date": err.Error()}})
			}
			patch.RecordedDate = &day
		}
		rec, err := weights.UpdateWeight(c.UserContext(), userID(c), c.Params("id"), patch, Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rec)
	})

	group.Delete("/:id", func(c *fiber.Ctx) error {
		if err := weights.DeleteWeight(c.UserContext(), userID(c), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})
}

