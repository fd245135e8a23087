package middleware

import (
	"github.com/gofiber/fiber/v2"
	"strconv"
)

// NewMetricsMiddleware counts requests by the matched route pattern so that
// path parameters do not explode label cardinality.
func (m *middleware) NewMetricsMiddleware(ctx *fiber.Ctx) error {
	err := ctx.Next()

	if m.metrics == nil {
		return err
	}

	status := ctx.Response().StatusCode()
	if err != nil {
		status = fiber.StatusInternalServerError
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
	}

	m.metrics.HTTPRequests.WithLabelValues(ctx.Method(), ctx.Route().Path, strconv.Itoa(status)).Inc()

	return err
}
