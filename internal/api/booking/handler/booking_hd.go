package bookingHandler

import (
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/handlerUtil"
	"SovicoAssistant/pkg/utils"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

func (h *BookingHandler) GetCustomer(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), 10*time.Second)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	phone := ctx.Params("phone")
	h.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"phone":      utils.MaskPhone(phone),
	}).Debug("Processing customer lookup")

	res, err := h.bookingService.GetCustomer(c, phone)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_customer")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}
