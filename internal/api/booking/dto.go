package booking

import (
	"SovicoAssistant/internal/api/upsell"
	"SovicoAssistant/internal/entity"
	"golang.org/x/net/context"
)

type Outcome string

const (
	// OutcomeAdvanced means the session moved to its next step.
	OutcomeAdvanced Outcome = "advanced"
	// OutcomeRejected means the input was not accepted; the step is unchanged.
	OutcomeRejected Outcome = "rejected"
	// OutcomeResent means a fresh code was issued without leaving verify_sms.
	OutcomeResent Outcome = "resent"
	// OutcomeRestart means the session is unusable and must be discarded.
	OutcomeRestart Outcome = "restart"
)

// StepResult is what a single transition produced. Session is always a new
// value; the session passed to Advance is never modified.
//
// Commit holds the effects of a completed booking (used code, customer
// profile, confirmation mail). It is nil for every other transition and must
// only run once the new session state has been persisted.
type StepResult struct {
	Outcome           Outcome                  `json:"outcome"`
	Session           *entity.BookingSession   `json:"session,omitempty"`
	Message           string                   `json:"message"`
	NeedsConfirmation bool                     `json:"needs_confirmation"`
	EditRequested     bool                     `json:"edit_requested,omitempty"`
	UserType          entity.UserType          `json:"user_type,omitempty"`
	AttemptsLeft      int                      `json:"attempts_left,omitempty"`
	ConfirmationCode  string                   `json:"confirmation_code,omitempty"`
	Completed         bool                     `json:"completed"`
	Booking           *entity.CompletedBooking `json:"booking,omitempty"`
	Upsell            *upsell.UpsellResult     `json:"upsell,omitempty"`
	Commit            func(ctx context.Context) `json:"-"`
}

type CustomerResponse struct {
	Customer entity.Customer `json:"customer"`
}
