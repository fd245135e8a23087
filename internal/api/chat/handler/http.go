package chatHandler

import (
	chatService "SovicoAssistant/internal/api/chat/service"
	"SovicoAssistant/internal/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/sirupsen/logrus"
)

type ChatHandler struct {
	log         *logrus.Logger
	validator   *validator.Validate
	middleware  middleware.Middleware
	chatService chatService.IChatService
}

func New(
	log *logrus.Logger,
	validate *validator.Validate,
	middleware middleware.Middleware,
	chatService chatService.IChatService,
) *ChatHandler {
	return &ChatHandler{
		log:         log,
		validator:   validate,
		middleware:  middleware,
		chatService: chatService,
	}
}

func (h *ChatHandler) Start(srv fiber.Router) {
	wsMiddleware := func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}

	chat := srv.Group("/chat")

	chat.Post("/", h.middleware.NewRateLimiter, h.Chat)
	chat.Get("/context/:user_id", h.GetContext)
	chat.Delete("/context/:user_id", h.ResetContext)

	chat.Use("/ws", wsMiddleware)
	chat.Get("/ws", websocket.New(h.handleWebSocket))
}
