package catalogHandler

import (
	"SovicoAssistant/internal/api/catalog"
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/handlerUtil"
	"SovicoAssistant/pkg/log"
	"SovicoAssistant/pkg/nlp"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *CatalogHandler) SearchFlights(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req catalog.FlightSearchRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_query")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(log.Fields{
		"request_id": requestID,
		"from":       req.From,
		"to":         req.To,
		"date":       req.Date,
	}).Debug("Processing flight search request")

	flights, err := h.catalogService.SearchFlights(c, req.From, req.To, req.Date)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "search_flights")
	}

	res := catalog.FlightSearchResponse{
		From:    nlp.NormalizeCity(req.From),
		To:      nlp.NormalizeCity(req.To),
		Date:    req.Date,
		Flights: flights,
	}
	if len(flights) > 0 {
		res.Date = flights[0].Date
	}

	cheapest, err := h.catalogService.CheapestFlight(c, req.From, req.To, req.Date)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "cheapest_flight")
	}
	if f, ok := cheapest.Get(); ok {
		res.Cheapest = &f
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *CatalogHandler) GetFlight(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	flight, err := h.catalogService.FlightByID(c, ctx.Params("id"), ctx.Query("date"))
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "flight_by_id")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, flight)
	}
}
