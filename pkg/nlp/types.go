package nlp

import (
	"context"

	"SovicoAssistant/internal/entity"
)

const (
	SourceRules  = "rules"
	SourceGemini = "gemini"
	SourceOpenAI = "openai"
)

const (
	SignalSearch  = "search"
	SignalBooking = "booking"
	SignalPrice   = "price"
	SignalInfo    = "info"
)

// Extraction is the structured reading of one user message.
type Extraction struct {
	Slots         entity.Slots       `json:"slots"`
	IntentSignals []string           `json:"intent_signals"`
	ServiceType   entity.ServiceType `json:"service_type,omitempty"`
	FlightID      string             `json:"flight_id,omitempty"`
	Source        string             `json:"source"`
}

func (e *Extraction) HasSignal(signal string) bool {
	if e == nil {
		return false
	}
	for _, s := range e.IntentSignals {
		if s == signal {
			return true
		}
	}
	return false
}

// IntentExtractor turns free text into slots. known carries the slots already
// accumulated in the conversation.
type IntentExtractor interface {
	Extract(ctx context.Context, message string, known entity.Slots) (*Extraction, error)
}

// TurnData is everything a synthesizer may mention in a reply. Draft is the
// templated reply; model-backed synthesizers rephrase it.
type TurnData struct {
	UserMessage string
	Capability  string
	Slots       entity.Slots
	Flights     []entity.Flight
	Hotels      []entity.Hotel
	Transfers   []entity.Transfer
	Draft       string
}

type ResponseSynthesizer interface {
	Synthesize(ctx context.Context, turn TurnData) (string, error)
}
