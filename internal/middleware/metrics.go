package middleware

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/developerakkoo/Voter-Management-API-sub000/internal/metrics"
)

// Metrics counts every request by matched route and status code.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		err := c.Next()
		route := c.Route().Path
		if route == "" {
			route = c.Path()
		}
		metrics.HTTPRequests.WithLabelValues(route, strconv.Itoa(c.Response().StatusCode())).Inc()
		return err
	}
}
