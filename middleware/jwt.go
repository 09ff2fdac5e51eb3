package middleware

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// IdentityClaims is what the identity provider signs: subject plus roles.
type IdentityClaims struct {
	Roles []string `json:"roles"`
	jwt.RegisteredClaims
}

// JWTIdentityMiddleware resolves identity from an HS256 bearer token instead of
// gateway headers.
func JWTIdentityMiddleware(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		raw := bearerToken(c)
		if raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "missing authorization token"})
		}

		claims := &IdentityClaims{}
		token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fiber.NewError(fiber.StatusUnauthorized, "invalid signing method")
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			log.Printf("❌ [JWT] rejected token for %s: %v", c.Path(), err)
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "invalid token"})
		}
		if strings.TrimSpace(claims.Subject) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "token has no subject"})
		}

		setIdentity(c, claims.Subject, claims.Roles)
		return c.Next()
	}
}
