package chatService

import (
	"SovicoAssistant/internal/api/chat"
	"SovicoAssistant/internal/api/intent"
	"SovicoAssistant/internal/entity"
	contextPkg "SovicoAssistant/pkg/context"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
	"unicode/utf8"
)

const msgApology = "😔 Xin lỗi, hệ thống đang gặp sự cố khi xử lý yêu cầu của bạn. Vui lòng thử lại sau ít phút."

var cancelPhrases = map[string]struct{}{
	"hủy đặt vé":     {},
	"huỷ đặt vé":     {},
	"❌ hủy đặt vé":   {},
	"❌ huỷ đặt vé":   {},
	"hủy":            {},
	"huỷ":            {},
	"cancel":         {},
	"thôi không đặt": {},
}

func isCancel(message string) bool {
	_, ok := cancelPhrases[strings.ToLower(strings.TrimSpace(message))]
	return ok
}

func (s *chatService) ProcessMessage(ctx context.Context, userID string, message string) (*chat.ChatResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)
	started := time.Now()

	message = strings.TrimSpace(message)
	if message == "" {
		return nil, chat.ErrEmptyMessage
	}
	if utf8.RuneCountInString(message) > chat.MaxMessageRunes {
		return nil, chat.ErrMessageTooLong
	}

	unlock := s.store.Lock(userID)
	defer unlock()

	loaded, err := s.store.Load(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to load conversation context")
		return nil, fmt.Errorf("%w: %v", chat.ErrContextStore, err)
	}

	working := loaded.Clone()
	t, err := s.route(ctx, userID, working, message)
	if err != nil {
		return s.apologize(ctx, userID, loaded, err), nil
	}

	working.LastUpdated = s.now()
	if err := s.save(ctx, userID, working, t.persist); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to save conversation context")
		return nil, fmt.Errorf("%w: %v", chat.ErrTurnAborted, err)
	}

	if t.afterSave != nil {
		t.afterSave(ctx)
	}

	s.metrics.TurnsProcessed.WithLabelValues(string(t.agent)).Inc()
	s.metrics.TurnDuration.Observe(time.Since(started).Seconds())

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"user_id":    userID,
		"agent_type": t.agent,
		"intent":     t.intent,
		"latency_ms": time.Since(started).Milliseconds(),
	}).Info("Chat turn processed")

	return s.respond(t, working), nil
}

func (s *chatService) save(ctx context.Context, userID string, c *entity.ConversationContext, mode persistence) error {
	if mode != saveSession {
		return s.store.Save(ctx, userID, c)
	}
	if c.BookingSession == nil {
		return s.store.RemoveBookingSession(ctx, userID)
	}

	session := c.BookingSession.Clone()
	return s.store.UpdateBookingSession(ctx, userID, func(b *entity.BookingSession) error {
		*b = *session
		return nil
	})
}

func (s *chatService) respond(t *turn, c *entity.ConversationContext) *chat.ChatResponse {
	rc := chat.ResponseContext{
		AgentType:      t.agent,
		Intent:         t.intent,
		Confidence:     t.confidence,
		SessionContext: c,
	}
	if c.BookingSession != nil {
		rc.Step = c.BookingSession.Step
		rc.SessionID = c.BookingSession.SessionID
	}

	suggestions := t.suggestions
	if len(suggestions) > maxSuggestions {
		suggestions = suggestions[:maxSuggestions]
	}

	return &chat.ChatResponse{
		Response:    t.reply,
		Suggestions: suggestions,
		Context:     rc,
	}
}

// apologize answers a failed turn. Nothing from the turn is saved.
func (s *chatService) apologize(ctx context.Context, userID string, loaded *entity.ConversationContext, err error) *chat.ChatResponse {
	capability := "unknown"
	var f *failure
	if errors.As(err, &f) {
		capability = f.capability
	}

	s.metrics.CapabilityFailures.WithLabelValues(capability).Inc()
	s.metrics.TurnsProcessed.WithLabelValues(string(chat.AgentError)).Inc()
	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"user_id":    userID,
		"capability": capability,
		"error":      err.Error(),
	}).Error("Chat turn failed")

	return s.respond(&turn{
		agent:       chat.AgentError,
		reply:       msgApology,
		suggestions: errorSuggestions(),
	}, loaded)
}

func (s *chatService) route(ctx context.Context, userID string, c *entity.ConversationContext, message string) (*turn, error) {
	if c.BookingSession != nil {
		if isCancel(message) {
			return s.cancelBooking(ctx, userID, c), nil
		}
		return s.continueBooking(ctx, c, message)
	}

	recent := intent.RecentContext{
		LastSearch:   c.LastSearchResult,
		UpsellActive: c.CompletedBooking != nil,
	}
	decision := s.classifier.ShouldProceedWithBooking(ctx, message, recent, userID)
	s.metrics.IntentsClassified.WithLabelValues(string(decision.Result.Intent)).Inc()

	var (
		t   *turn
		err error
	)
	switch {
	case decision.ShouldBook:
		t, err = s.startBooking(ctx, c, message)
	case decision.ShouldConfirm:
		t = s.confirmBooking(ctx, c, message)
	default:
		t, err = s.dispatch(ctx, c, message, decision.Result)
	}
	if err != nil {
		return nil, err
	}

	t.intent = string(decision.Result.Intent)
	t.confidence = decision.Confidence
	if !decision.ShouldBook && !decision.ShouldConfirm {
		t.confidence = decision.Result.Confidence
	}
	return t, nil
}

func (s *chatService) GetContext(ctx context.Context, userID string) (*entity.ConversationContext, error) {
	unlock := s.store.Lock(userID)
	defer unlock()

	c, err := s.store.Load(ctx, userID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to load conversation context")
		return nil, fmt.Errorf("%w: %v", chat.ErrContextStore, err)
	}
	if c.LastUpdated.IsZero() {
		return nil, chat.ErrContextNotFound
	}

	return c, nil
}

func (s *chatService) ResetContext(ctx context.Context, userID string) error {
	unlock := s.store.Lock(userID)
	defer unlock()

	if err := s.store.Clear(ctx, userID); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"user_id":    userID,
			"error":      err.Error(),
		}).Error("Failed to clear conversation context")
		return fmt.Errorf("%w: %v", chat.ErrContextStore, err)
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"user_id":    userID,
	}).Info("Conversation context reset")

	return nil
}
