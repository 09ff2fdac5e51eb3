package handlers

import (
	"fitness-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupAchievementRoutes(app *fiber.App, identity fiber.Handler, achievements *services.AchievementService) {
	// 🔓 catalog is public (gateway auth only)
	app.Get("/achievements", func(c *fiber.Ctx) error {
		catalog, err := achievements.ListCatalog(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(catalog)
	})

	app.Get("/achievements/user", identity, func(c *fiber.Ctx) error {
		summary, err := achievements.ListForUser(c.UserContext(), userID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(summary)
	})

	app.Post("/achievements/check", identity, func(c *fiber.Ctx) error {
		unlocked, err := achievements.CheckAndUnlock(c.UserContext(), userID(c), Now())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{
			"newly_unlocked": unlocked,
			"count":          len(unlocked),
		})
	})
}
