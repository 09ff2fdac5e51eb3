package handlers

import (
	"fitness-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupStreakRoutes(app *fiber.App, identity fiber.Handler, streaks *services.StreakService) {
	group := app.Group("/streak", identity)

	group.Get("/current", func(c *fiber.Ctx) error {
		status, err := streaks.GetCurrent(c.UserContext(), userID(c), Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(status)
	})

	group.Post("/update", func(c *fiber.Ctx) error {
		rec, err := streaks.Advance(c.UserContext(), userID(c), Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(rec)
	})

	group.Get("/calendar", func(c *fiber.Ctx) error {
		today := Now()
		year := c.QueryInt("year", today.Year())
		month := c.QueryInt("month", int(today.Month()))
		cal, err := streaks.Calendar(c.UserContext(), userID(c), year, month, today)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(cal)
	})

	group.Get("/stats", func(c *fiber.Ctx) error {
		stats, err := streaks.Stats(c.UserContext(), userID(c), Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(stats)
	})
}
