package middleware

import (
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"os"
	"strconv"
)

type Middleware interface {
	NewRateLimiter(ctx *fiber.Ctx) error
	NewRequestIDMiddleware() fiber.Handler
	NewMetricsMiddleware(ctx *fiber.Ctx) error
	GetRequestID(ctx *fiber.Ctx) string
}

type middleware struct {
	rateLimitter        *rateLimiter
	requestIDMiddleware fiber.Handler
	metrics             *metrics.Metrics
	log                 *logrus.Logger
}

func New(logger *logrus.Logger, m *metrics.Metrics) Middleware {
	rateLimit := newRateLimiter(rate.Limit(envInt("RATE_LIMIT_RPS", 50)), envInt("RATE_LIMIT_BURST", 100))
	requestID := newRequestIDMiddleware(utils.New())

	return &middleware{
		rateLimitter:        rateLimit,
		requestIDMiddleware: requestID,
		metrics:             m,
		log:                 logger,
	}
}

func (m *middleware) GetRequestID(ctx *fiber.Ctx) string {
	requestID, ok := ctx.Locals(RequestIDKey).(string)
	if !ok || requestID == "" {
		return "unknown"
	}
	return requestID
}

func (m *middleware) NewRequestIDMiddleware() fiber.Handler {
	return m.requestIDMiddleware
}

func envInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
