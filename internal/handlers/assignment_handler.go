package handlers

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// AssignmentHandler serves the sub-admin/voter assignment surface.
type AssignmentHandler struct {
	Repo *repository.AssignmentRepo
}

// parseIDBatch validates a subAdminId/voterIds/voterType triple shared by
// assign and unassign.
func parseIDBatch(subAdminID string, voterIDs []string, voterType string) (bson.ObjectID, []bson.ObjectID, model.VoterType, error) {
	sid, err := bson.ObjectIDFromHex(subAdminID)
	if err != nil {
		return bson.ObjectID{}, nil, "", errors.New("invalid subAdminId")
	}
	if len(voterIDs) == 0 {
		return bson.ObjectID{}, nil, "", errors.New("voterIds must not be empty")
	}
	t, err := model.ParseVoterType(voterType)
	if err != nil {
		return bson.ObjectID{}, nil, "", err
	}
	ids := make([]bson.ObjectID, 0, len(voterIDs))
	seen := make(map[bson.ObjectID]bool, len(voterIDs))
	for _, raw := range voterIDs {
		oid, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			return bson.ObjectID{}, nil, "", fmt.Errorf("invalid voter id %q", raw)
		}
		if !seen[oid] {
			seen[oid] = true
			ids = append(ids, oid)
		}
	}
	return sid, ids, t, nil
}

// Assign handles POST /api/assignments/assign. All-or-nothing: any
// missing voter or active conflict rejects the whole batch.
func (h *AssignmentHandler) Assign(c *fiber.Ctx) error {
	var req dto.AssignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	sid, ids, t, err := parseIDBatch(req.SubAdminID, req.VoterIDs, req.VoterType)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, err := h.Repo.Assign(ctx, sid, ids, t, callerID(c), req.Notes)
	if err != nil {
		var missing *repository.ErrMissingVoters
		if errors.As(err, &missing) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"success": false,
				"message": "some voters were not found in the selected collection; nothing was assigned",
				"missing": missing.Missing,
			})
		}
		var assigned *repository.ErrAlreadyAssigned
		if errors.As(err, &assigned) {
			return c.Status(fiber.StatusConflict).JSON(dto.AssignConflictResponse{
				Success:         false,
				Message:         "some voters are already assigned to this sub-admin; nothing was assigned",
				AlreadyAssigned: assigned.VoterIDs,
			})
		}
		if errors.Is(err, repository.ErrSubAdminNotFound) {
			return notFound(c, "sub-admin not found")
		}
		return internalErr(c, "assign failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("assigned %d voter(s)", len(rows)),
		"data":    rows,
	})
}

// Unassign handles DELETE /api/assignments/unassign. Idempotent: tuples
// with no active assignment just don't count.
func (h *AssignmentHandler) Unassign(c *fiber.Ctx) error {
	var req dto.UnassignRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	sid, ids, t, err := parseIDBatch(req.SubAdminID, req.VoterIDs, req.VoterType)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	n, err := h.Repo.Unassign(ctx, sid, ids, t)
	if err != nil {
		return internalErr(c, "unassign failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "unassignedCount": n})
}

// ListForSubAdmin handles GET /api/assignments/subadmin/:subAdminId.
func (h *AssignmentHandler) ListForSubAdmin(c *fiber.Ctx) error {
	sid, err := paramOID(c, "subAdminId")
	if err != nil {
		return badRequest(c, "invalid subAdminId")
	}
	isActive, err := query.ParseFlag(c.Query("isActive"))
	if err != nil {
		return badRequest(c, "isActive: "+err.Error())
	}
	p := query.ParsePage(c.Query("page"), c.Query("limit"), defaultPageLimit, maxPageLimit)

	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, total, err := h.Repo.ListForSubAdmin(ctx, sid, isActive, p.Skip(), p.Limit)
	if err != nil {
		return internalErr(c, "assignment list failed", err)
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

// ListForVoter handles GET /api/assignments/voter/:voterType/:voterId —
// the assignment history of one voter.
func (h *AssignmentHandler) ListForVoter(c *fiber.Ctx) error {
	t, err := model.ParseVoterType(c.Params("voterType"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	vid, err := paramOID(c, "voterId")
	if err != nil {
		return badRequest(c, "invalid voterId")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, err := h.Repo.ListForVoter(ctx, t, vid)
	if err != nil {
		return internalErr(c, "voter assignment history failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": rows})
}
