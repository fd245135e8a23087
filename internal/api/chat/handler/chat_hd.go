package chatHandler

import (
	"SovicoAssistant/internal/api/chat"
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/handlerUtil"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

const turnTimeout = 10 * time.Second

func (h *ChatHandler) Chat(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), turnTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	var req chat.ChatRequest
	if err := ctx.BodyParser(&req); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "parse_request_body")
	}

	if err := h.validator.Struct(req); err != nil {
		return errHandler.HandleValidationError(ctx, requestID, err, ctx.Path())
	}

	h.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    req.UserID,
	}).Debug("Processing chat turn")

	res, err := h.chatService.ProcessMessage(contextPkg.WithUserID(c, req.UserID), req.UserID, req.Message)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "process_message")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, res)
	}
}

func (h *ChatHandler) GetContext(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), turnTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	userID := ctx.Params("user_id")
	conversation, err := h.chatService.GetContext(c, userID)
	if err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "get_context")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusOK, chat.ContextResponse{Context: conversation})
	}
}

func (h *ChatHandler) ResetContext(ctx *fiber.Ctx) error {
	requestID := h.middleware.GetRequestID(ctx)
	c, cancel := context.WithTimeout(contextPkg.FromFiberCtx(ctx), turnTimeout)
	defer cancel()

	errHandler := handlerUtil.New(h.log)

	if err := h.chatService.ResetContext(c, ctx.Params("user_id")); err != nil {
		return errHandler.Handle(ctx, requestID, err, ctx.Path(), "reset_context")
	}

	select {
	case <-c.Done():
		return errHandler.HandleRequestTimeout(ctx)
	default:
		return errHandler.HandleSuccess(ctx, fiber.StatusNoContent, nil)
	}
}
