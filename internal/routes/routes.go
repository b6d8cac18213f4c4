package routes

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/developerakkoo/Voter-Management-API-sub000/internal/handlers"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/middleware"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
)

// Deps holds shared dependencies to inject into handlers.
type Deps struct {
	Client    *mongo.Client
	Stores    *repository.Stores
	JWTSecret string
	// NotifyOutbox wakes the outbox consumer after a survey write.
	NotifyOutbox func()
}

// Register mounts all HTTP routes in one place. Paths are lowercase and
// grouped by resource; /api/voters/all must register before the
// /:voterType routes or "all" would be parsed as a discriminator.
func Register(app *fiber.App, d Deps) {
	voterRepo := repository.NewVoterRepo(d.Stores)
	combinedRepo := repository.NewCombinedRepo(d.Stores)
	assignmentRepo := repository.NewAssignmentRepo(d.Stores, voterRepo)
	surveyRepo := repository.NewSurveyRepo(d.Stores, d.NotifyOutbox)
	accountRepo := repository.NewAccountRepo(d.Stores)
	contentRepo := repository.NewContentRepo(d.Stores)

	auth := &handlers.AuthHandler{Accounts: accountRepo, Secret: d.JWTSecret}
	voters := &handlers.VoterHandler{Repo: voterRepo}
	combined := &handlers.CombinedHandler{Repo: combinedRepo}
	assignments := &handlers.AssignmentHandler{Repo: assignmentRepo}
	surveys := &handlers.SurveyHandler{Repo: surveyRepo, Voters: voterRepo}
	subadmins := &handlers.SubAdminHandler{Accounts: accountRepo, Assignments: assignmentRepo}
	alerts := &handlers.AlertHandler{Repo: contentRepo}
	categories := &handlers.CategoryHandler{Repo: contentRepo}

	api := app.Group("/api")

	// Health check
	// GET /api/healthz → "ok" once mongo answers a ping.
	api.Get("/healthz", func(c *fiber.Ctx) error {
		if err := d.Client.Ping(c.Context(), readpref.Primary()); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).SendString("mongo unreachable")
		}
		return c.SendString("ok")
	})

	// ============================================================
	// Auth (public)
	// ============================================================
	authGroup := api.Group("/auth")
	authGroup.Post("/admin/register", auth.AdminRegister)
	authGroup.Post("/admin/login", auth.AdminLogin)
	authGroup.Post("/subadmin/login", auth.SubAdminLogin)

	// Everything below requires a bearer token.
	api.Use(middleware.RequireAuth(d.JWTSecret))

	// Sub-admin accounts are provisioned by an admin, not self-registered.
	api.Post("/auth/subadmin/register",
		middleware.RequireRole(handlers.RoleAdmin), auth.SubAdminRegister)

	// ============================================================
	// Voters — combined (both collections)
	// ============================================================
	votersGroup := api.Group("/voters")
	votersGroup.Get("/all", combined.List)
	votersGroup.Get("/all/stream", combined.Stream)

	// ============================================================
	// Voters — per collection (:voterType is "voter" | "voterfour")
	// ============================================================
	votersGroup.Get("/:voterType", voters.List)
	votersGroup.Post("/:voterType", voters.Create)
	votersGroup.Delete("/:voterType", voters.Reset)
	votersGroup.Get("/:voterType/:id", voters.Get)
	votersGroup.Put("/:voterType/:id", voters.Update)
	votersGroup.Delete("/:voterType/:id", voters.Delete)
	votersGroup.Patch("/:voterType/:id/paid", voters.PatchPaid)
	votersGroup.Patch("/:voterType/:id/visited", voters.PatchVisited)
	votersGroup.Patch("/:voterType/:id/status", voters.PatchStatus)

	// ============================================================
	// Assignments
	// ============================================================
	assignGroup := api.Group("/assignments")
	assignGroup.Post("/assign", assignments.Assign)
	assignGroup.Delete("/unassign", assignments.Unassign)
	assignGroup.Get("/subadmin/:subAdminId", assignments.ListForSubAdmin)
	assignGroup.Get("/voter/:voterType/:voterId", assignments.ListForVoter)

	// ============================================================
	// Surveys
	// ============================================================
	surveyGroup := api.Group("/surveys")
	surveyGroup.Post("/", surveys.Create)
	surveyGroup.Get("/", surveys.List)
	surveyGroup.Get("/voter/:voterType/:voterId", surveys.GetByVoter)
	surveyGroup.Get("/:id", surveys.Get)
	surveyGroup.Patch("/:id/status", surveys.PatchStatus)
	surveyGroup.Delete("/:id", surveys.Delete)

	// ============================================================
	// Sub-admins
	// ============================================================
	subadminGroup := api.Group("/subadmins")
	subadminGroup.Get("/", subadmins.List)
	subadminGroup.Get("/:id", subadmins.Get)
	subadminGroup.Put("/:id", subadmins.Update)
	subadminGroup.Delete("/:id", subadmins.Delete)

	// ============================================================
	// Alerts & categories
	// ============================================================
	alertGroup := api.Group("/alerts")
	alertGroup.Post("/", alerts.Create)
	alertGroup.Get("/", alerts.List)
	alertGroup.Get("/:id", alerts.Get)
	alertGroup.Put("/:id", alerts.Update)
	alertGroup.Delete("/:id", alerts.Delete)

	categoryGroup := api.Group("/categories")
	categoryGroup.Post("/", categories.Create)
	categoryGroup.Get("/", categories.List)
	categoryGroup.Get("/:id", categories.Get)
	categoryGroup.Put("/:id", categories.Update)
	categoryGroup.Delete("/:id", categories.Delete)
}
