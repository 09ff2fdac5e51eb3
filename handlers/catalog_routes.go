package handlers

import (
	"fitness-tracker/middleware"
	"fitness-tracker/models"
	"fitness-tracker/services"

	"github.com/gofiber/fiber/v2"
)

// SetupCatalogRoutes registers public browsing plus the admin-only mutations.
func SetupCatalogRoutes(app *fiber.App, identity fiber.Handler, catalog *services.CatalogService) {
	// 🔓 Public routes: no user context, still behind gateway auth
	app.Get("/exercises", func(c *fiber.Ctx) error {
		list, err := catalog.ListExercises(c.UserContext(), services.ExerciseFilter{
			Type:       models.ExerciseType(c.Query("type")),
			Location:   models.ExerciseLocation(c.Query("location")),
			Difficulty: models.Difficulty(c.Query("difficulty")),
			Search:     c.Query("search"),
			Page:       queryPage(c),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})
	app.Get("/exercises/:id", func(c *fiber.Ctx) error {
		e, err := catalog.GetExercise(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(e)
	})
	app.Get("/foods", func(c *fiber.Ctx) error {
		list, err := catalog.ListFoods(c.UserContext(), services.FoodFilter{
			Category: c.Query("category"),
			Search:   c.Query("search"),
			Page:     queryPage(c),
		})
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})
	app.Get("/foods/:id", func(c *fiber.Ctx) error {
		f, err := catalog.GetFood(c.UserContext(), c.Params("id"))
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(f)
	})

	// 🔐 Admin routes
	admin := app.Group("/admin", identity, middleware.RequireRole(middleware.RoleAdmin))

	admin.Post("/exercises", func(c *fiber.Ctx) error {
		var in services.ExerciseInput
		if err := c.BodyParser(&in); err != nil {
			return badJSON(c, err)
		}
		e, err := catalog.CreateExercise(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(e)
	})
	admin.Put("/exercises/:id", func(c *fiber.Ctx) error {
		var in services.ExerciseInput
		if err := c.BodyParser(&in); err != nil {
			return badJSON(c, err)
		}
		e, err := catalog.UpdateExercise(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(e)
	})
	admin.Delete("/exercises/:id", func(c *fiber.Ctx) error {
		if err := catalog.DeactivateExercise(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	admin.Post("/foods", func(c *fiber.Ctx) error {
		var in services.FoodInput
		if err := c.BodyParser(&in); err != nil {
			return badJSON(c, err)
		}
		f, err := catalog.CreateFood(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(f)
	})
	admin.Put("/foods/:id", func(c *fiber.Ctx) error {
		var in services.FoodInput
		if err := c.BodyParser(&in); err != nil {
			return badJSON(c, err)
		}
		f, err := catalog.UpdateFood(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(f)
	})
	admin.Delete("/foods/:id", func(c *fiber.Ctx) error {
		if err := catalog.DeactivateFood(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	admin.Get("/achievements", func(c *fiber.Ctx) error {
		list, err := catalog.ListAllAchievements(c.UserContext())
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(list)
	})
	admin.Post("/achievements", func(c *fiber.Ctx) error {
		var in services.AchievementInput
		if err := c.BodyParser(&in); err != nil {
			return badJSON(c, err)
		}
		a, err := catalog.CreateAchievement(c.UserContext(), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(a)
	})
	admin.Put("/achievements/:id", func(c *fiber.Ctx) error {
		var in services.AchievementInput
		if err := c.BodyParser(&in); err != nil {
			return badJSON(c, err)
		}
		a, err := catalog.UpdateAchievement(c.UserContext(), c.Params("id"), in)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(a)
	})
	admin.Delete("/achievements/:id", func(c *fiber.Ctx) error {
		if err := catalog.DeactivateAchievement(c.UserContext(), c.Params("id")); err != nil {
			return respondError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	})

	for _, kind := range []string{services.ImageExercise, services.ImageFood, services.ImageAchievement} {
		admin.Post("/"+kind+"/:id/image", uploadImageHandler(catalog, kind))
	}
}

func uploadImageHandler(catalog *services.CatalogService, kind string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		file, err := c.FormFile("image")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "image is required"})
		}
		url, err := catalog.UploadImage(c.UserContext(), kind, c.Params("id"), file)
		if err != nil {
			return respondError(c, err)
		}
		return c.JSON(fiber.Map{"url": url})
	}
}
