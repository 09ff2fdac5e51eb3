// handlers/profile_routes.go
package handlers

import (
	"fitness-tracker/services"

	"github.com/gofiber/fiber/v2"
)

func SetupProfileRoutes(app *fiber.App, identity fiber.Handler, profiles *services.ProfileService) {
	group := app.Group("/profile", identity)

	group.Get("/", func(c *fiber.Ctx) error {
		view, err := profiles.GetProfile(c.UserContext(), userID(c))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(view)
	})

	group.Post("/", func(c *fiber.Ctx) error {
		var in services.ProfileInput
		if err := c.BodyParser(&in); err != nil {
			return badJSON(c, err)
		}
		profile, err := profiles.CreateProfile(c.UserContext(), userID(c), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(services.ProfileView{
			UserProfile:    *profile,
			Recommendation: services.Recommendation(profile.BMI, profile.FitnessGoal),
		})
	})

	group.Put("/", func(c *fiber.Ctx) error {
		var patch services.ProfilePatch
		if err := c.BodyParser(&patch); err != nil {
			return badJSON(c, err)
		}
		profile, err := profiles.UpdateProfile(c.UserContext(), userID(c), patch)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(services.ProfileView{
			UserProfile:    *profile,
			Recommendation: services.Recommendation(profile.BMI, profile.FitnessGoal),
		})
	})
}
