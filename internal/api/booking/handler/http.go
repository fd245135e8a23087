package bookingHandler

import (
	bookingService "SovicoAssistant/internal/api/booking/service"
	"SovicoAssistant/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type BookingHandler struct {
	log            *logrus.Logger
	middleware     middleware.Middleware
	bookingService bookingService.IBookingService
}

func New(
	log *logrus.Logger,
	middleware middleware.Middleware,
	bookingService bookingService.IBookingService,
) *BookingHandler {
	return &BookingHandler{
		log:            log,
		middleware:     middleware,
		bookingService: bookingService,
	}
}

func (h *BookingHandler) Start(srv fiber.Router) {
	customers := srv.Group("/customers")

	customers.Get("/:phone", h.middleware.NewRateLimiter, h.GetCustomer)
}
