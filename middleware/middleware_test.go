package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func whoAmI(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"user_id": UserID(c), "roles": Roles(c)})
}

func decode(t *testing.T, app *fiber.App, method, path string, headers map[string]string) (int, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	body := map[string]any{}
	_ = json.NewDecoder(resp.Body).Decode(&body)
	return resp.StatusCode, body
}

func TestGatewayAuthMiddleware(t *testing.T) {
	app := fiber.New()
	app.Use(GatewayAuthMiddleware("s3cret"))
	app.Get("/ping", func(c *fiber.Ctx) error { return c.SendString("pong") })

	status, _ := decode(t, app, "GET", "/ping", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := decode(t, app, "GET", "/ping", map[string]string{"Authorization": "Bearer wrong"})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "invalid gateway authentication token", body["error"])

	status, _ = decode(t, app, "GET", "/ping", map[string]string{"Authorization": "Bearer s3cret"})
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = decode(t, app, "GET", "/ping", map[string]string{"Authorization": "s3cret"})
	assert.Equal(t, fiber.StatusOK, status)
}

func TestUserContextMiddleware(t *testing.T) {
	app := fiber.New()
	app.Get("/me", UserContextMiddleware(), whoAmI)

	status, _ := decode(t, app, "GET", "/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)

	status, body := decode(t, app, "GET", "/me", map[string]string{
		"X-User-ID":    "user-42",
		"X-User-Roles": "member, Admin ,",
	})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-42", body["user_id"])
	assert.Equal(t, []any{"member", "Admin"}, body["roles"])
}

func TestRequireRole(t *testing.T) {
	app := fiber.New()
	app.Get("/admin", UserContextMiddleware(), RequireRole(RoleAdmin), whoAmI)

	status, _ := decode(t, app, "GET", "/admin", map[string]string{"X-User-ID": "u1", "X-User-Roles": "member"})
	assert.Equal(t, fiber.StatusForbidden, status)

	status, _ = decode(t, app, "GET", "/admin", map[string]string{"X-User-ID": "u1", "X-User-Roles": "ADMIN"})
	assert.Equal(t, fiber.StatusOK, status)
}

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims IdentityClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTIdentityMiddleware(t *testing.T) {
	secret := "jwt-secret"
	app := fiber.New()
	app.Get("/me", JWTIdentityMiddleware(secret), whoAmI)

	valid := signToken(t, jwt.SigningMethodHS256, []byte(secret), IdentityClaims{
		Roles: []string{"admin"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})
	status, body := decode(t, app, "GET", "/me", map[string]string{"Authorization": "Bearer " + valid})
	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "user-7", body["user_id"])
	assert.Equal(t, []any{"admin"}, body["roles"])

	expired := signToken(t, jwt.SigningMethodHS256, []byte(secret), IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "user-7",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	})
	status, _ = decode(t, app, "GET", "/me", map[string]string{"Authorization": "Bearer " + expired})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	wrongKey := signToken(t, jwt.SigningMethodHS256, []byte("other"), IdentityClaims{
		RegisteredClaims: jwt.RegisteredClaims{Subject: "user-7"},
	})
	status, _ = decode(t, app, "GET", "/me", map[string]string{"Authorization": "Bearer " + wrongKey})
	assert.Equal(t, fiber.StatusUnauthorized, status)

	noSubject := signToken(t, jwt.SigningMethodHS256, []byte(secret), IdentityClaims{})
	status, body = decode(t, app, "GET", "/me", map[string]string{"Authorization": "Bearer " + noSubject})
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "token has no subject", body["error"])

	status, _ = decode(t, app, "GET", "/me", nil)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}
