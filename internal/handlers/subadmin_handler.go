package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
)

// SubAdminHandler serves sub-admin account management.
type SubAdminHandler struct {
	Accounts    *repository.AccountRepo
	Assignments *repository.AssignmentRepo
}

// List handles GET /api/subadmins.
func (h *SubAdminHandler) List(c *fiber.Ctx) error {
	p := query.ParsePage(c.Query("page"), c.Query("limit"), defaultPageLimit, maxPageLimit)

	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, total, err := h.Accounts.ListSubAdmins(ctx, c.Query("search"), p.Skip(), p.Limit)
	if err != nil {
		return internalErr(c, "subadmin list failed", err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"data":    rows,
		"pagination": dto.Pagination{
			Page:       p.Number,
			Limit:      p.Limit,
			TotalCount: total,
			TotalPages: query.TotalPages(total, p.Limit),
		},
	})
}

// Get handles GET /api/subadmins/:id, decorated with the active
// assignment count.
func (h *SubAdminHandler) Get(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid subadmin id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Accounts.GetSubAdmin(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "sub-admin not found")
		}
		return internalErr(c, "subadmin get failed", err)
	}
	count, err := h.Assignments.ActiveCount(ctx, id)
	if err != nil {
		return internalErr(c, "subadmin assignment count failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": s, "activeAssignments": count})
}

// Update handles PUT /api/subadmins/:id.
func (h *SubAdminHandler) Update(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid subadmin id")
	}
	var req dto.UpdateSubAdminRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	set := bson.M{}
	if req.FullName != nil {
		set["fullName"] = *req.FullName
	}
	if req.Email != nil {
		set["email"] = *req.Email
	}
	if req.Phone != nil {
		set["phone"] = *req.Phone
	}
	if req.IsActive != nil {
		set["isActive"] = *req.IsActive
	}
	if len(set) == 0 {
		return badRequest(c, "no fields to update")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Accounts.UpdateSubAdmin(ctx, id, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "sub-admin not found")
		}
		if errors.Is(err, repository.ErrEmailTaken) {
			return conflict(c, "email already registered")
		}
		return internalErr(c, "subadmin update failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": s})
}

// Delete handles DELETE /api/subadmins/:id — a soft deactivate, keeping
// the account for assignment history.
func (h *SubAdminHandler) Delete(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid subadmin id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Accounts.DeactivateSubAdmin(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "sub-admin not found")
		}
		return internalErr(c, "subadmin deactivate failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "sub-admin deactivated"})
}
