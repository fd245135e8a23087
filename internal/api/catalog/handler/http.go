package catalogHandler

import (
	catalogService "SovicoAssistant/internal/api/catalog/service"
	"SovicoAssistant/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type CatalogHandler struct {
	log            *logrus.Logger
	validator      *validator.Validate
	middleware     middleware.Middleware
	catalogService catalogService.ICatalogService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	catalogService catalogService.ICatalogService,
) *CatalogHandler {
	return &CatalogHandler{
		log:            log,
		validator:      validate,
		middleware:     middleware,
		catalogService: catalogService,
	}
}

func (h *CatalogHandler) Start(srv fiber.Router) {
	flights := srv.Group("/flights")

	flights.Get("/", h.SearchFlights)
	flights.Get("/:id", h.GetFlight)
}
