package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
)

const (
	defaultStreamLimit = 100
	maxStreamLimit     = 1000
)

// CombinedHandler serves the cross-collection listing endpoints.
type CombinedHandler struct {
	Repo *repository.CombinedRepo
}

// List handles GET /api/voters/all.
func (h *CombinedHandler) List(c *fiber.Ctx) error {
	f, err := parseListFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	s, err := query.ParseSort(c.Query("sortBy"), c.Query("sortOrder"))
	if err != nil {
		return badRequest(c, err.Error())
	}
	p := query.ParsePage(c.Query("page"), c.Query("limit"), defaultPageLimit, maxPageLimit)
	sel := c.Query("voterType", repository.TargetAll)

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Repo.List(ctx, sel, f, s, p)
	if err != nil {
		if isBadVoterType(err) {
			return badRequest(c, err.Error())
		}
		return internalErr(c, "combined voter list failed", err)
	}

	return c.JSON(dto.CombinedListResponse{
		Success: true,
		Data:    res.Rows,
		Pagination: dto.Pagination{
			Page:       p.Number,
			Limit:      p.Limit,
			TotalCount: res.TotalCount,
			TotalPages: query.TotalPages(res.TotalCount, p.Limit),
		},
		Analytics: res.Analytics,
		Filters:   filtersEcho(f, s, sel),
		Warnings:  res.Warnings,
	})
}

// Stream handles GET /api/voters/all/stream — cursor pagination over the
// union, ordered by _id.
func (h *CombinedHandler) Stream(c *fiber.Ctx) error {
	f, err := parseListFilters(c)
	if err != nil {
		return badRequest(c, err.Error())
	}
	limit := query.ParsePage("1", c.Query("limit"), defaultStreamLimit, maxStreamLimit).Limit
	sel := c.Query("voterType", repository.TargetAll)

	descending := false
	switch c.Query("sortOrder") {
	case "", "asc":
	case "desc":
		descending = true
	default:
		return badRequest(c, "sortOrder must be \"asc\" or \"desc\"")
	}

	var lastID *bson.ObjectID
	if raw := c.Query("lastId"); raw != "" {
		oid, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			return badRequest(c, "invalid lastId cursor")
		}
		lastID = &oid
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	res, err := h.Repo.Stream(ctx, sel, f, lastID, limit, descending)
	if err != nil {
		if isBadVoterType(err) {
			return badRequest(c, err.Error())
		}
		return internalErr(c, "voter stream failed", err)
	}

	var next *string
	if res.HasMore && res.NextCursor != "" {
		next = &res.NextCursor
	}
	return c.JSON(dto.StreamResponse{
		Success: true,
		Data:    res.Rows,
		Pagination: dto.CursorPagination{
			Limit:      limit,
			HasMore:    res.HasMore,
			NextCursor: next,
		},
	})
}
