package upsellHandler

import (
	upsellService "SovicoAssistant/internal/api/upsell/service"
	"SovicoAssistant/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type UpsellHandler struct {
	log           *logrus.Logger
	validator     *validator.Validate
	middleware    middleware.Middleware
	upsellService upsellService.IUpsellService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	upsellService upsellService.IUpsellService,
) *UpsellHandler {
	return &UpsellHandler{
		log:           log,
		validator:     validate,
		middleware:    middleware,
		upsellService: upsellService,
	}
}

func (h *UpsellHandler) Start(srv fiber.Router) {
	upsell := srv.Group("/upsell")

	upsell.Get("/", h.GetSuggestions)
	upsell.Get("/services/:id", h.GetServiceDetails)
	upsell.Post("/book", h.middleware.NewRateLimiter, h.BookService)
}
