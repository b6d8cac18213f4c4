package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// AlertHandler serves the alert CRUD surface.
type AlertHandler struct {
	Repo *repository.ContentRepo
}

// Create handles POST /api/alerts.
func (h *AlertHandler) Create(c *fiber.Ctx) error {
	var req dto.AlertRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Title == "" || req.Message == "" {
		return badRequest(c, "title and message are required")
	}
	if req.Type == "" {
		req.Type = model.AlertTypeInfo
	}
	if !model.ValidAlertType(req.Type) {
		return badRequest(c, "type must be info, warning or urgent")
	}
	a := &model.Alert{
		Title:     req.Title,
		Message:   req.Message,
		Type:      req.Type,
		IsActive:  true,
		CreatedBy: callerID(c),
	}
	if req.IsActive != nil {
		a.IsActive = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Repo.CreateAlert(ctx, a); err != nil {
		return internalErr(c, "alert create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": a})
}

// List handles GET /api/alerts.
func (h *AlertHandler) List(c *fiber.Ctx) error {
	isActive, err := query.ParseFlag(c.Query("isActive"))
	if err != nil {
		return badRequest(c, "isActive: "+err.Error())
	}
	alertType := c.Query("type")
	if alertType != "" && !model.ValidAlertType(alertType) {
		return badRequest(c, "type must be info, warning or urgent")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, err := h.Repo.ListAlerts(ctx, isActive, alertType)
	if err != nil {
		return internalErr(c, "alert list failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

// Get handles GET /api/alerts/:id.
func (h *AlertHandler) Get(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid alert id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	a, err := h.Repo.GetAlert(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "alert not found")
		}
		return internalErr(c, "alert get failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": a})
}

// Update handles PUT /api/alerts/:id.
func (h *AlertHandler) Update(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid alert id")
	}
	var req dto.AlertRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	set := bson.M{}
	if req.Title != "" {
		set["title"] = req.Title
	}
	if req.Message != "" {
		set["message"] = req.Message
	}
	if req.Type != "" {
		if !model.ValidAlertType(req.Type) {
			return badRequest(c, "type must be info, warning or urgent")
		}
		set["type"] = req.Type
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if len(set) == 0 {
		return badRequest(c, "no fields to update")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	a, err := h.Repo.UpdateAlert(ctx, id, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "alert not found")
		}
		return internalErr(c, "alert update failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": a})
}

// Delete handles DELETE /api/alerts/:id.
func (h *AlertHandler) Delete(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid alert id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Repo.DeleteAlert(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "alert not found")
		}
		return internalErr(c, "alert delete failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "alert deleted"})
}
