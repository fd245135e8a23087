package upsellHandler

import (
	"SovicoAssistant/internal/api/upsell"
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/handlerUtil"
	"SovicoAssistant/pkg/log"
	"github.com/gofiber/fiber/v2"
	"golang.org/x/net/context"
	"time"
)

func (h *UpsellHandler) GetSuggestions(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req upsell.SuggestRequest
	if err := ctx.QueryParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_query")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	result, err := h.upsellService.Suggest(c, req.Destination, upsell.TripContext{Origin: req.Origin})
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "suggest_services")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, result)
	}
}

func (h *UpsellHandler) GetServiceDetails(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	destination := ctx.Query("destination")
	serviceID := ctx.Params("id")

	h.log.WithFields(log.Fields{
		"request_id":  requestID,
		"destination": destination,
		"service_id":  serviceID,
	}).Debug("Processing service details request")

	details, err := h.upsellService.ServiceDetails(c, destination, serviceID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "service_details")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, details)
	}
}

func (h *UpsellHandler) BookService(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req upsell.BookServiceRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	res, err := h.upsellService.BookService(c, req)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "book_service")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusCreated, res)
	}
}
