package middleware

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/developerakkoo/Voter-Management-API-sub000/dto"
)

// Claims carried by every token this service issues.
type Claims struct {
	Role string `json:"role,omitempty"` // "admin" | "subadmin"
	jwt.RegisteredClaims
}

// SignToken issues an HS256 token for the given account.
func SignToken(secret, userID, role string, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// RequireAuth rejects requests without a valid bearer token. HS256 only;
// on success the subject and role land in c.Locals("user_id") and
// c.Locals("role").
func RequireAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" || !strings.HasPrefix(strings.ToLower(auth), "bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("missing bearer token"))
		}

		tokenStr := strings.TrimSpace(auth[7:])
		var claims Claims
		token, err := jwt.ParseWithClaims(
			tokenStr,
			&claims,
			func(t *jwt.Token) (any, error) {
				if t.Method != jwt.SigningMethodHS256 {
					return nil, fiber.ErrUnauthorized
				}
				return []byte(secret), nil
			},
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		)
		if err != nil || !token.Valid || claims.Subject == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.Error("invalid or expired token"))
		}

		c.Locals("user_id", claims.Subject)
		c.Locals("role", claims.Role)
		return c.Next()
	}
}

// RequireRole rejects authenticated callers whose role claim differs.
// Mount after RequireAuth.
func RequireRole(role string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Locals("role") != role {
			return c.Status(fiber.StatusForbidden).JSON(dto.Error(role + " role required"))
		}
		return c.Next()
	}
}
