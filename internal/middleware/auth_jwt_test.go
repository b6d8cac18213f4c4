package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

const testSecret = "unit-test-secret"

func authApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(RequireAuth(secret))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId": c.Locals("user_id"),
			"role":   c.Locals("role"),
		})
	})
	return app
}

func TestRequireAuthAcceptsValidToken(t *testing.T) {
	app := authApp(t, testSecret)

	tok, err := SignToken(testSecret, "abc123", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireAuthMissingHeader(t *testing.T) {
	app := authApp(t, testSecret)

	resp, err := app.Test(httptest.NewRequest("GET", "/whoami", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthNonBearerScheme(t *testing.T) {
	app := authApp(t, testSecret)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Basic dXNlcjpwYXNz")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthWrongSecret(t *testing.T) {
	app := authApp(t, testSecret)

	tok, err := SignToken("some-other-secret", "abc123", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthExpiredToken(t *testing.T) {
	app := authApp(t, testSecret)

	tok, err := SignToken(testSecret, "abc123", "admin", -time.Minute)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func roleApp(t *testing.T) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(RequireAuth(testSecret))
	app.Post("/admin-only", RequireRole("admin"), func(c *fiber.Ctx) error {
		return c.SendString("ok")
	})
	return app
}

func TestRequireRoleAcceptsMatchingRole(t *testing.T) {
	app := roleApp(t)

	tok, err := SignToken(testSecret, "abc123", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
}

func TestRequireRoleRejectsOtherRole(t *testing.T) {
	app := roleApp(t)

	tok, err := SignToken(testSecret, "abc123", "subadmin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestRequireRoleUnauthenticatedIs401(t *testing.T) {
	app := roleApp(t)

	resp, err := app.Test(httptest.NewRequest("POST", "/admin-only", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuthEmptySubject(t *testing.T) {
	app := authApp(t, testSecret)

	tok, err := SignToken(testSecret, "", "admin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
