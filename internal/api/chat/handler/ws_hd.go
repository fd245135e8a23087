package chatHandler

import (
	"SovicoAssistant/internal/api/chat"
	"SovicoAssistant/internal/middleware"
	contextPkg "SovicoAssistant/pkg/context"
	"fmt"
	"github.com/gofiber/websocket/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const wsReadTimeout = 5 * time.Minute

// wsError is the reply frame for a failed turn.
type wsError = chat.Failure

// handleWebSocket runs one chat turn per text frame.
func (h *ChatHandler) handleWebSocket(c *websocket.Conn) {
	connID, _ := c.Locals(middleware.RequestIDKey).(string)
	h.log.WithField("request_id", connID).Info("Chat WebSocket client connected")
	defer h.log.WithField("request_id", connID).Info("Chat WebSocket client disconnected")

	for seq := 1; ; seq++ {
		if err := c.SetReadDeadline(time.Now().Add(wsReadTimeout)); err != nil {
			h.log.Errorf("Error setting read deadline: %v", err)
			return
		}

		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Errorf("Chat WebSocket error: %v", err)
			}
			return
		}

		if messageType != websocket.TextMessage {
			h.log.Warnf("Received unexpected message type: %d", messageType)
			continue
		}

		reply := h.wsTurn(fmt.Sprintf("%s-%d", connID, seq), message)
		if err := c.WriteJSON(reply); err != nil {
			h.log.Errorf("Error writing JSON response: %v", err)
			return
		}
	}
}

func (h *ChatHandler) wsTurn(requestID string, frame []byte) interface{} {
	var req chat.ChatRequest
	if err := json.Unmarshal(frame, &req); err != nil {
		return wsError{Code: "INVALID_FRAME", Message: chat.MsgInvalidFrame, Suggestions: chat.FailureSuggestions()}
	}
	if err := h.validator.Struct(req); err != nil {
		return wsError{Code: "VALIDATION_ERROR", Message: chat.MsgInvalidRequest, Suggestions: chat.FailureSuggestions()}
	}

	ctx, cancel := context.WithTimeout(contextPkg.WithRequestID(context.Background(), requestID), turnTimeout)
	defer cancel()

	res, err := h.chatService.ProcessMessage(contextPkg.WithUserID(ctx, req.UserID), req.UserID, req.Message)
	if err != nil {
		failure, _ := chat.DescribeFailure(err)
		h.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    req.UserID,
			"code":       failure.Code,
			"error":      err.Error(),
		}).Warn("Chat WebSocket turn failed")
		return failure
	}
	return res
}
