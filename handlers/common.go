package handlers

import (
	"errors"
	"log"
	"strconv"
	"time"

	"fitness-tracker/middleware"
	"fitness-tracker/services"
	"fitness-tracker/utils"

	"github.com/gofiber/fiber/v2"
)

// Now is the handlers' reference clock; tests replace it.
var Now = func() time.Time { return time.Now().UTC() }

// respondError maps service errors onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "validation failed",
			"fields": verr.Fields,
		})
	case errors.Is(err, services.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "user identity required"})
	case errors.Is(err, services.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, services.ErrNoActivity):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "log a meal or a workout today before updating your streak",
		})
	}
	log.Printf("❌ [HTTP] %s %s: %v", c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": "internal error",
		"cause": err.Error(),
	})
}

func badJSON(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": "invalid JSON",
		"cause": err.Error(),
	})
}

func userID(c *fiber.Ctx) string {
	return middleware.UserID(c)
}

// queryDay parses ?<key>=YYYY-MM-DD, falling back to fallback when absent.
func queryDay(c *fiber.Ctx, key string, fallback time.Time) (time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return utils.DayStart(fallback), nil
	}
	day, err := utils.ParseDay(raw)
	if err != nil {
		return time.Time{}, &services.ValidationError{Fields: map[string]string{key: err.Error()}}
	}
	return day, nil
}

// optionalDay parses a body date string; "" yields the zero time.
func optionalDay(field, raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	day, err := utils.ParseDay(raw)
	if err != nil {
		return time.Time{}, &services.ValidationError{Fields: map[string]string{field: err.Error()}}
	}
	return day, nil
}

func queryPage(c *fiber.Ctx) utils.Page {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	size, _ := strconv.Atoi(c.Query("size", strconv.Itoa(utils.DefaultPageSize)))
	return utils.NewPage(page, size)
}
