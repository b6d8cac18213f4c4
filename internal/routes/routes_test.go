package routes

import (
	"context"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/developerakkoo/Voter-Management-API-sub000/internal/middleware"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
)

const testSecret = "routes-test-secret"

// testApp mounts the full route table over a client that never dials;
// requests rejected by middleware never reach the database.
func testApp(t *testing.T) *fiber.App {
	t.Helper()
	client, err := mongo.Connect(options.Client().ApplyURI("mongodb://127.0.0.1:1"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Disconnect(context.Background()) })

	app := fiber.New()
	Register(app, Deps{
		Client:    client,
		Stores:    repository.NewStores(client.Database("routes_test")),
		JWTSecret: testSecret,
	})
	return app
}

func TestSubAdminRegisterRequiresAuth(t *testing.T) {
	app := testApp(t)

	req := httptest.NewRequest("POST", "/api/auth/subadmin/register",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestSubAdminRegisterRejectsSubAdminCaller(t *testing.T) {
	app := testApp(t)

	tok, err := middleware.SignToken(testSecret, "abc123", "subadmin", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/auth/subadmin/register",
		strings.NewReader(`{}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+tok)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusForbidden, resp.StatusCode)
}

func TestAdminAndSubAdminLoginStayPublic(t *testing.T) {
	app := testApp(t)

	// Missing credentials reach the handler (400), not the auth wall (401).
	for _, path := range []string{"/api/auth/admin/login", "/api/auth/subadmin/login"} {
		req := httptest.NewRequest("POST", path, strings.NewReader(`{}`))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		require.NoError(t, err)
		require.Equal(t, fiber.StatusBadRequest, resp.StatusCode, path)
	}
}

func TestVoterRoutesRequireAuth(t *testing.T) {
	app := testApp(t)

	resp, err := app.Test(httptest.NewRequest("GET", "/api/voters/all", nil))
	require.NoError(t, err)
	require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
