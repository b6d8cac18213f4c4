package handlers

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/model"
)

// reqCtx bounds one handler's store round-trips.
func reqCtx(c *fiber.Ctx) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Context(), 10*time.Second)
}

// internalErr logs the real cause and returns the generic 500 body.
// Driver errors never reach the client.
func internalErr(c *fiber.Ctx, op string, err error) error {
	slog.Error(op, "path", c.Path(), "err", err)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Error("internal server error"))
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Error(msg))
}

func notFound(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Error(msg))
}

func conflict(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusConflict).JSON(dto.Error(msg))
}

// paramOID parses an ObjectID path parameter.
func paramOID(c *fiber.Ctx, name string) (bson.ObjectID, error) {
	return bson.ObjectIDFromHex(c.Params(name))
}

// callerID returns the authenticated account id set by the JWT middleware.
func callerID(c *fiber.Ctx) string {
	if v, ok := c.Locals("user_id").(string); ok {
		return v
	}
	return ""
}

// isBadVoterType distinguishes a bad discriminator (400) from a real
// store failure (500).
func isBadVoterType(err error) bool {
	return errors.Is(err, model.ErrUnknownVoterType)
}
