package handlers

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/middleware"
	"github.com/developerakkoo/Voter-Management-API-sub000/internal/repository"
)

const tokenTTL = 24 * time.Hour

// Role values embedded in issued tokens.
const (
	RoleAdmin    = "admin"
	RoleSubAdmin = "subadmin"
)

// AuthHandler serves registration and login for both account kinds.
type AuthHandler struct {
	Accounts *repository.AccountRepo
	Secret   string
}

func validRegister(req dto.RegisterRequest) error {
	if req.FullName == "" {
		return errors.New("fullName is required")
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return errors.New("a valid email is required")
	}
	if len(req.Password) < 8 {
		return errors.New("password must be at least 8 characters")
	}
	return nil
}

// AdminRegister handles POST /api/auth/admin/register.
func (h *AuthHandler) AdminRegister(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validRegister(req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	a, err := h.Accounts.CreateAdmin(ctx, req.FullName, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return conflict(c, "email already registered")
		}
		return internalErr(c, "admin register failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": a})
}

// AdminLogin handles POST /api/auth/admin/login.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	a, err := h.Accounts.AuthenticateAdmin(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrBadCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("invalid email or password"))
		}
		return internalErr(c, "admin login failed", err)
	}
	token, err := middleware.SignToken(h.Secret, a.ID.Hex(), RoleAdmin, tokenTTL)
	if err != nil {
		return internalErr(c, "token signing failed", err)
	}
	return c.JSON(dto.TokenResponse{Success: true, Token: token, Role: RoleAdmin, UserID: a.ID.Hex()})
}

// SubAdminRegister handles POST /api/auth/subadmin/register.
func (h *AuthHandler) SubAdminRegister(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if err := validRegister(req); err != nil {
		return badRequest(c, err.Error())
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Accounts.CreateSubAdmin(ctx, req.FullName, req.Email, req.Phone, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrEmailTaken) {
			return conflict(c, "email already registered")
		}
		return internalErr(c, "subadmin register failed", err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": s})
}

// SubAdminLogin handles POST /api/auth/subadmin/login.
func (h *AuthHandler) SubAdminLogin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid body")
	}
	if req.Email == "" || req.Password == "" {
		return badRequest(c, "email and password are required")
	}

	ctx, cancel := reqCtx(c)
	defer cancel()
	s, err := h.Accounts.AuthenticateSubAdmin(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrBadCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("invalid email or password"))
		}
		return internalErr(c, "subadmin login failed", err)
	}
	token, err := middleware.SignToken(h.Secret, s.ID.Hex(), RoleSubAdmin, tokenTTL)
	if err != nil {
		return internalErr(c, "token signing failed", err)
	}
	return c.JSON(dto.TokenResponse{Success: true, Token: token, Role: RoleSubAdmin, UserID: s.ID.Hex()})
}
