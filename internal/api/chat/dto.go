package chat

import "SovicoAssistant/internal/entity"

const MaxMessageRunes = 1000

type AgentType string

const (
	AgentBooking     AgentType = "booking"
	AgentCancel      AgentType = "cancel"
	AgentConfirm     AgentType = "booking_confirmation"
	AgentSearch      AgentType = "search"
	AgentPrice       AgentType = "price"
	AgentServiceInfo AgentType = "service_info"
	AgentUnknown     AgentType = "general"
	AgentError       AgentType = "error"
)

type ChatRequest struct {
	UserID  string `json:"user_id" validate:"required,max=128"`
	Message string `json:"message" validate:"required"`
}

type ChatResponse struct {
	Response    string          `json:"response"`
	Suggestions []string        `json:"suggestions"`
	Context     ResponseContext `json:"context"`
}

// ResponseContext describes how the turn was handled, plus the context as saved.
type ResponseContext struct {
	AgentType      AgentType                   `json:"agent_type"`
	Intent         string                      `json:"intent,omitempty"`
	Confidence     float64                     `json:"confidence,omitempty"`
	Step           entity.BookingStep          `json:"step,omitempty"`
	SessionID      string                      `json:"session_id,omitempty"`
	SessionContext *entity.ConversationContext `json:"session_context,omitempty"`
}

type ContextResponse struct {
	Context *entity.ConversationContext `json:"context"`
}
