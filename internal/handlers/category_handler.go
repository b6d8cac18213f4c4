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

// CategoryHandler serves the category content CRUD surface.
type CategoryHandler struct {
	Repo *repository.ContentRepo
}

// Create handles POST /api/categories.
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Name == "" {
		return badRequest(c, "name is required")
	}
	cat := &model.Category{
		Name:     req.Name,
		Body:     req.Body,
		IsActive: true,
	}
	if req.DisplayOrder != nil {
		cat.DisplayOrder = *req.DisplayOrder
	}
	if req.IsActive != nil {
		cat.IsActive = *req.IsActive
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Repo.CreateCategory(ctx, cat); err != nil {
		if errors.Is(err, repository.ErrNameTaken) {
			return conflict(c, "a category with this name already exists")
		}
		return internalErr(c, "category create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": cat})
}

// List handles GET /api/categories.
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	isActive, err := query.ParseFlag(c.Query("isActive"))
	if err != nil {
		return badRequest(c, "isActive: "+err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, err := h.Repo.ListCategories(ctx, isActive)
	if err != nil {
		return internalErr(c, "category list failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}

// Get handles GET /api/categories/:id.
func (h *CategoryHandler) Get(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid category id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	cat, err := h.Repo.GetCategory(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "category not found")
		}
		return internalErr(c, "category get failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": cat})
}

// Update handles PUT /api/categories/:id.
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid category id")
	}
	var req dto.CategoryRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	set := bson.M{}
	if req.Name != "" {
		set["name"] = req.Name
	}
	if req.Body != "" {
		set["body"] = req.Body
	}
	if req.DisplayOrder != nil {
		set["displayOrder"] = *req.DisplayOrder
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if len(set) == 0 {
		return badRequest(c, "no fields to update")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	cat, err := h.Repo.UpdateCategory(ctx, id, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "category not found")
		}
		if errors.Is(err, repository.ErrNameTaken) {
			return conflict(c, "a category with this name already exists")
		}
		return internalErr(c, "category update failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": cat})
}

// Delete handles DELETE /api/categories/:id.
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid category id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Repo.DeleteCategory(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "category not found")
		}
		return internalErr(c, "category delete failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "category deleted"})
}
