package intent

import "SovicoAssistant/internal/entity"

type Intent string

const (
	IntentBookFlight       Intent = "book_flight"
	IntentSearchFlight     Intent = "search_flight"
	IntentGetInfo          Intent = "get_info"
	IntentRequestHotel     Intent = "request_hotel"
	IntentRequestTransfer  Intent = "request_transfer"
	IntentRequestTour      Intent = "request_tour"
	IntentRequestInsurance Intent = "request_insurance"
	IntentUnknown          Intent = "unknown"
)

// ServiceType maps a request_* intent to the service it asks for.
func (i Intent) ServiceType() (entity.ServiceType, bool) {
	switch i {
	case IntentRequestHotel:
		return entity.ServiceHotel, true
	case IntentRequestTransfer:
		return entity.ServiceTransfer, true
	case IntentRequestTour:
		return entity.ServiceTour, true
	case IntentRequestInsurance:
		return entity.ServiceInsurance, true
	}
	return "", false
}

// RecentContext is what the classifier may know about earlier turns.
type RecentContext struct {
	LastSearch *entity.SearchResult
	// UpsellActive is set after a completed booking, when service offers are on screen.
	UpsellActive bool
}

func (r RecentContext) HasRecentSearch() bool {
	return r.LastSearch != nil
}

type SearchInfo struct {
	FromCity string `json:"from_city,omitempty"`
	ToCity   string `json:"to_city,omitempty"`
	Date     string `json:"date,omitempty"`
}

type Result struct {
	Intent     Intent  `json:"intent"`
	Confidence float64 `json:"confidence"`

	// booking only
	RequiresFlightSelection bool                 `json:"requires_flight_selection,omitempty"`
	ContextAvailable        bool                 `json:"context_available,omitempty"`
	LastSearch              *entity.SearchResult `json:"-"`

	// search only
	Search *SearchInfo `json:"extracted_info,omitempty"`
}

type Decision struct {
	ShouldBook    bool    `json:"should_book"`
	ShouldConfirm bool    `json:"should_confirm"`
	Confidence    float64 `json:"confidence"`
	Reason        string  `json:"reason"`
	Result        Result  `json:"-"`
}
