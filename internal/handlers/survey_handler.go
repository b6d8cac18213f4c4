package handlers

import (
	"errors"
	"regexp"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/query"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

var phoneRe = regexp.MustCompile(`^[0-9]{10}$`)

const voterSampleSize = 5

// SurveyHandler serves survey capture and review.
type SurveyHandler struct {
	Repo   *repository.SurveyRepo
	Voters *repository.VoterRepo
}

func buildMembers(reqs []dto.SurveyMemberRequest) ([]model.SurveyMember, error) {
	if len(reqs) == 0 {
		return nil, nil
	}
	members := make([]model.SurveyMember, 0, len(reqs))
	for _, m := range reqs {
		if m.Name == "" {
			return nil, errors.New("member name is required")
		}
		if m.Phone != "" && !phoneRe.MatchString(m.Phone) {
			return nil, errors.New("member phone must be a 10-digit number")
		}
		member := model.SurveyMember{
			Name:         m.Name,
			Age:          m.Age,
			Phone:        m.Phone,
			Relationship: m.Relationship,
		}
		if m.VoterID != "" {
			t, err := model.ParseVoterType(m.VoterType)
			if err != nil {
				return nil, err
			}
			oid, err := bson.ObjectIDFromHex(m.VoterID)
			if err != nil {
				return nil, errors.New("invalid member voterId")
			}
			member.Voter = &model.VoterRef{Type: t, ID: oid}
		}
		members = append(members, member)
	}
	return members, nil
}

// Create handles POST /api/surveys. The voter's surveyDone flag is
// updated through the outbox, so a read shortly after creation observes
// it.
func (h *SurveyHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSurveyRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	t, err := model.ParseVoterType(req.VoterType)
	if err != nil {
		return badRequest(c, err.Error())
	}
	voterID, err := bson.ObjectIDFromHex(req.VoterID)
	if err != nil {
		return badRequest(c, "invalid voterId")
	}
	surveyorID, err := bson.ObjectIDFromHex(req.SurveyorID)
	if err != nil {
		return badRequest(c, "invalid surveyorId")
	}
	if !phoneRe.MatchString(req.VoterPhoneNumber) {
		return badRequest(c, "voterPhoneNumber must be a 10-digit number")
	}
	status := req.Status
	if status == "" {
		status = model.SurveyStatusCompleted
	}
	if !model.ValidSurveyStatus(status) {
		return badRequest(c, "invalid status")
	}
	members, err := buildMembers(req.Members)
	if err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()

	// Voter must exist in the selected collection. The 404 carries a few
	// ids that do exist so a wrong voterType is easy to spot client-side.
	if _, err := h.Voters.Get(ctx, t, voterID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			sample, serr := h.Voters.SampleIDs(ctx, t, voterSampleSize)
			if serr != nil {
				sample = nil
			}
			return c.Status(fiber.StatusNotFound).JSON(dto.VoterNotFoundResponse{
				Success:     false,
				Message:     "voter not found in the selected collection",
				VoterType:   string(t),
				SampleIDs:   sample,
				RequestedID: req.VoterID,
			})
		}
		return internalErr(c, "survey voter lookup failed", err)
	}

	s := &model.Survey{
		VoterID:    voterID,
		VoterType:  t,
		SurveyorID: surveyorID,
		Location: model.SurveyLocation{
			Latitude:  req.Location.Latitude,
			Longitude: req.Location.Longitude,
			Accuracy:  req.Location.Accuracy,
		},
		VoterPhoneNumber: req.VoterPhoneNumber,
		SurveyData:       req.SurveyData,
		Status:           status,
		Members:          members,
	}
	if err := h.Repo.Create(ctx, s); err != nil {
		if errors.Is(err, repository.ErrSurveyExists) {
			return conflict(c, "a survey already exists for this voter")
		}
		return internalErr(c, "survey create failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": s})
}

// Get handles GET /api/surveys/:id.
func (h *SurveyHandler) Get(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid survey id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "survey not found")
		}
		return internalErr(c, "survey get failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": s})
}

// GetByVoter handles GET /api/surveys/voter/:voterType/:voterId.
func (h *SurveyHandler) GetByVoter(c *fiber.Ctx) error {
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
	s, err := h.Repo.GetByVoter(ctx, t, vid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "no survey for this voter")
		}
		return internalErr(c, "survey get by voter failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": s})
}

// List handles GET /api/surveys with optional status/surveyorId filters.
func (h *SurveyHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !model.ValidSurveyStatus(status) {
		return badRequest(c, "invalid status filter")
	}
	var surveyorID *bson.ObjectID
	if raw := c.Query("surveyorId"); raw != "" {
		oid, err := bson.ObjectIDFromHex(raw)
		if err != nil {
			return badRequest(c, "invalid surveyorId filter")
		}
		surveyorID = &oid
	}
	p := query.ParsePage(c.Query("page"), c.Query("limit"), defaultPageLimit, maxPageLimit)

	ctx, cancel := reqCtx(c)
	defer cancel()
	rows, total, err := h.Repo.List(ctx, status, surveyorID, p.Skip(), p.Limit)
	if err != nil {
		return internalErr(c, "survey list failed", err)
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

// PatchStatus handles PATCH /api/surveys/:id/status. Any known status may
// be set directly; the statuses are not a strict ladder.
func (h *SurveyHandler) PatchStatus(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid survey id")
	}
	var req dto.SurveyStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if !model.ValidSurveyStatus(req.Status) {
		return badRequest(c, "invalid status")
	}
	var reviewedBy *bson.ObjectID
	if req.ReviewedBy != "" {
		oid, err := bson.ObjectIDFromHex(req.ReviewedBy)
		if err != nil {
			return badRequest(c, "invalid reviewedBy")
		}
		reviewedBy = &oid
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Repo.UpdateStatus(ctx, id, req.Status, reviewedBy, req.ReviewRemark)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "survey not found")
		}
		return internalErr(c, "survey status update failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "data": s})
}

// Delete handles DELETE /api/surveys/:id and clears the voter's
// denormalized survey fields through the outbox.
func (h *SurveyHandler) Delete(c *fiber.Ctx) error {
	id, err := paramOID(c, "id")
	if err != nil {
		return badRequest(c, "invalid survey id")
	}
	ctx, cancel := reqCtx(c)
	defer cancel()
	if err := h.Repo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return notFound(c, "survey not found")
		}
		return internalErr(c, "survey delete failed", err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "survey deleted"})
}
