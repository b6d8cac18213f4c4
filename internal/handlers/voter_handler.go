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

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// VoterHandler serves the per-collection voter CRUD surface. Which
// collection is targeted comes from the :voterType path parameter.
type VoterHandler struct {
	Repo *repository.VoterRepo
}

func voterTypeParam(c *fiber.Ctx) (model.VoterType, error) {
	return model.ParseVoterType(c.Params("voterType"))
}

// parseListFilters reads the shared filter query params. Used by both the
// per-collection and the combined listings.
func parseListFilters(c *fiber.Ctx) (query.Filters, error) {
	var f query.Filters
	var err error
	if f.IsActive, err = query.ParseFlag(c.Query("isActive")); err != nil {
		return f, errors.New("isActive: " + err.Error())
	}
	if f.IsPaid, err = query.ParseFlag(c.Query("isPaid")); err != nil {
		return f, errors.New("isPaid: " + err.Error())
	}
	if f.IsVisited, err = query.ParseFlag(c.Query("isVisited")); err != nil {
		return f, errors.New("isVisited: " + err.Error())
	}
	f.Name = c.Query("name")
	f.Address = c.Query("address")
	f.Search = c.Query("search")
	return f, nil
}

func filtersEcho(f query.Filters, s query.Sort, voterType string) dto.VoterFilters {
	order := "asc"
	if s.Order < 0 {
		order = "desc"
	}
	return dto.VoterFilters{
		IsActive:  f.IsActive,
		IsPaid:    f.IsPaid,
		IsVisited: f.IsVisited,
		Name:      f.Name,
		Address:   f.Address,
		Search:    f.Search,
		SortBy:    s.Field,
		SortOrder: order,
		VoterType: voterType,
	}
}

// List handles GET /api/voters/:voterType.
func (h *VoterHandler) List(c *fiber.Ctx) error {
	t, err := voterTypeParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	f, err := parseListFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	s, err := query.ParseSort(c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	p := query.ParsePage(c.Query("page"), c.Query("limit"), defaultPageLimit, maxPageLimit)

	ctx, cancel := reqCtx(c)
	defer cancel()
	voters, total, err := h.Repo.List(ctx, t, f, s, p)
	if err != nil {
		return internalErr(c, "voter list failed", err)
	}
	return c.JSON(dto.VoterListResponse{
		Success: true,
		Data:    voters,
		Pagination: dto.Pagination{
			Page:       p.Number,
			Limit:      p.Limit,
			TotalCount: total,
			TotalPages: query.TotalPages(total, p.Limit),
		},
		Filters: filtersEcho(f, s, string(t)),
	})
}

// Get handles GET /api/voters/:voterType/:id.
func (h *VoterHandler) Get(c *fiber.Ctx) error {
	t, err := voterTypeParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid voter id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	v, err := h.Repo.Get(ctx, t, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "voter not found")
		}
		return internalErr(c, "voter get failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": v})
}

// Create handles POST /api/voters/:voterType.
func (h *VoterHandler) Create(c *fiber.Ctx) error {
	t, err := voterTypeParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	var v model.Voter
	if err := c.BodyParser(&v); err != nil {
		return badRequest(c, "invalid body")
	}
	if v.Name == "" && v.NameEnglish == "" {
		return badRequest(c, "name or nameEnglish is required")
	}
	v.ID = bson.ObjectID{}
	v.IsActive = true

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Repo.Create(ctx, t, &v); err != nil {
		if repository.IsDuplicateKey(err) {
			return conflict(c, "a voter with this cardNo already exists")
		}
		return internalErr(c, "voter create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": v})
}

func updateSet(req dto.UpdateVoterRequest) bson.M {
	set := bson.M{}
	put := func(key string, v any, present bool) {
		if present {
			set[key] = v
		}
	}
	put("name", deref(req.Name), req.Name != nil)
	put("nameEnglish", deref(req.NameEnglish), req.NameEnglish != nil)
	put("relativeName", deref(req.RelativeName), req.RelativeName != nil)
	put("relativeNameEnglish", deref(req.RelativeNameEnglish), req.RelativeNameEnglish != nil)
	put("sex", deref(req.Sex), req.Sex != nil)
	put("age", derefInt(req.Age), req.Age != nil)
	put("cardNo", deref(req.CardNo), req.CardNo != nil)
	put("address", deref(req.Address), req.Address != nil)
	put("addressEnglish", deref(req.AddressEnglish), req.AddressEnglish != nil)
	put("boothNo", deref(req.BoothNo), req.BoothNo != nil)
	put("partNo", deref(req.PartNo), req.PartNo != nil)
	put("acNo", deref(req.AcNo), req.AcNo != nil)
	put("pno", deref(req.Pno), req.Pno != nil)
	put("sourceFile", deref(req.SourceFile), req.SourceFile != nil)
	put("codeNo", deref(req.CodeNo), req.CodeNo != nil)
	return set
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefInt(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

// Update handles PUT /api/voters/:voterType/:id.
func (h *VoterHandler) Update(c *fiber.Ctx) error {
	t, err := voterTypeParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid voter id")
	}
	var req dto.UpdateVoterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	set := updateSet(req)
	if len(set) == 0 {
		return badRequest(c, "no fields to update")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	v, err := h.Repo.Update(ctx, t, id, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "voter not found")
		}
		if repository.IsDuplicateKey(err) {
			return conflict(c, "a voter with this cardNo already exists")
		}
		return internalErr(c, "voter update failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": v})
}

// Delete handles DELETE /api/voters/:voterType/:id.
func (h *VoterHandler) Delete(c *fiber.Ctx) error {
	t, err := voterTypeParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid voter id")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Repo.Delete(ctx, t, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "voter not found")
		}
		return internalErr(c, "voter delete failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "voter deleted"})
}

// Reset handles DELETE /api/voters/:voterType — wipes the collection.
func (h *VoterHandler) Reset(c *fiber.Ctx) error {
	t, err := voterTypeParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	if c.Query("confirm") != "true" {
		return badRequest(c, "pass confirm=true to reset the collection")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	n, err := h.Repo.Reset(ctx, t)
	if err != nil {
		return internalErr(c, "voter reset failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "deletedCount": n})
}

// flagPatch applies a status-flag patch built from the request body.
func (h *VoterHandler) flagPatch(c *fiber.Ctx, build func(dto.StatusPatchRequest) (bson.M, error)) error {
	t, err := voterTypeParam(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid voter id")
	}
	var req dto.StatusPatchRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	set, err := build(req)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	v, err := h.Repo.Update(ctx, t, id, set)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "voter not found")
		}
		return internalErr(c, "voter flag patch failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": v})
}

// PatchPaid handles PATCH /api/voters/:voterType/:id/paid.
func (h *VoterHandler) PatchPaid(c *fiber.Ctx) error {
	return h.flagPatch(c, func(req dto.StatusPatchRequest) (bson.M, error) {
		if req.IsPaid == nil {
			return nil, errors.New("isPaid boolean is required")
		}
		return bson.M{"isPaid": *req.IsPaid}, nil
	})
}

// PatchVisited handles PATCH /api/voters/:voterType/:id/visited.
func (h *VoterHandler) PatchVisited(c *fiber.Ctx) error {
	return h.flagPatch(c, func(req dto.StatusPatchRequest) (bson.M, error) {
		if req.IsVisited == nil {
			return nil, errors.New("isVisited boolean is required")
		}
		return bson.M{"isVisited": *req.IsVisited}, nil
	})
}

// PatchStatus handles PATCH /api/voters/:voterType/:id/status; at least
// one of the two flags must be present.
func (h *VoterHandler) PatchStatus(c *fiber.Ctx) error {
	return h.flagPatch(c, func(req dto.StatusPatchRequest) (bson.M, error) {
		if req.IsPaid == nil && req.IsVisited == nil {
			return nil, errors.New("at least one of isPaid, isVisited is required")
		}
		set := bson.M{}
		if req.IsPaid != nil {
			set["isPaid"] = *req.IsPaid
		}
		if req.IsVisited != nil {
			set["isVisited"] = *req.IsVisited
		}
		return set, nil
	})
}
