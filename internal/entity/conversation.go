package entity

import "time"

const ContextTTL = 24 * time.Hour

type ConversationContext struct {
	UserID             string            `json:"user_id"`
	Slots              Slots             `json:"slots"`
	LastSearchResult   *SearchResult     `json:"last_search_result,omitempty"`
	SelectedFlightID   string            `json:"selected_flight_id,omitempty"`
	BookingSession     *BookingSession   `json:"booking_session,omitempty"`
	CompletedBooking   *CompletedBooking `json:"completed_booking,omitempty"`
	CurrentOrigin      string            `json:"current_origin,omitempty"`
	CurrentDestination string            `json:"current_destination,omitempty"`
	LastUpdated        time.Time         `json:"last_updated"`
}

type Slots struct {
	Locations      Locations `json:"locations"`
	Date           string    `json:"date,omitempty"`
	TimePreference string    `json:"time_preference,omitempty"`
	Passengers     int       `json:"passengers,omitempty"`
	PriceRange     string    `json:"price_range,omitempty"`
}

type Locations struct {
	From string `json:"from,omitempty"`
	To   string `json:"to,omitempty"`
}

type CompletedBooking struct {
	BookingID        string     `json:"booking_id"`
	SessionID        string     `json:"session_id"`
	BookingRef       string     `json:"booking_ref"`
	ConfirmationCode string     `json:"confirmation_code"`
	FlightDetails    Flight     `json:"flight_details"`
	TravelInfo       TravelInfo `json:"travel_info"`
	CCCD             string     `json:"cccd,omitempty"`
	SMSPhone         string     `json:"sms_phone,omitempty"`
	BookingDate      time.Time  `json:"booking_date"`
	Status           string     `json:"status"`
}

type TravelInfo struct {
	FromCity    string `json:"from_city"`
	ToCity      string `json:"to_city"`
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

func NewConversationContext(userID string) *ConversationContext {
	return &ConversationContext{UserID: userID}
}

// Expired reports whether the context was last written more than ContextTTL before now.
func (c *ConversationContext) Expired(now time.Time) bool {
	if c == nil || c.LastUpdated.IsZero() {
		return false
	}
	return now.Sub(c.LastUpdated) > ContextTTL
}

// Merge copies every non-empty slot from other; sub-keys of Locations merge independently.
func (s *Slots) Merge(other Slots) {
	if other.Locations.From != "" {
		s.Locations.From = other.Locations.From
	}
	if other.Locations.To != "" {
		s.Locations.To = other.Locations.To
	}
	if other.Date != "" {
		s.Date = other.Date
	}
	if other.TimePreference != "" {
		s.TimePreference = other.TimePreference
	}
	if other.Passengers > 0 {
		s.Passengers = other.Passengers
	}
	if other.PriceRange != "" {
		s.PriceRange = other.PriceRange
	}
}

func (s Slots) HasLocations() bool {
	return s.Locations.From != "" || s.Locations.To != ""
}

// Clone returns a working copy. Search results are treated as immutable and shared.
func (c *ConversationContext) Clone() *ConversationContext {
	if c == nil {
		return nil
	}
	cp := *c
	cp.BookingSession = c.BookingSession.Clone()
	if c.CompletedBooking != nil {
		done := *c.CompletedBooking
		cp.CompletedBooking = &done
	}
	return &cp
}
