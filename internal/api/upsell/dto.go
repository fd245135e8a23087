package upsell

import "SovicoAssistant/internal/entity"

type DestinationType string

const (
	DestinationBeach    DestinationType = "beach_city"
	DestinationCultural DestinationType = "cultural_city"
	DestinationBusiness DestinationType = "business_city"
	DestinationGeneric  DestinationType = "city"
)

// TripContext describes the completed trip the offers are for. An empty
// DestinationType is derived from the destination name.
type TripContext struct {
	Origin          string          `json:"origin,omitempty"`
	DestinationType DestinationType `json:"destination_type,omitempty"`
}

type UpsellResult struct {
	Destination     string                 `json:"destination"`
	DestinationType DestinationType        `json:"destination_type"`
	Services        []entity.TravelService `json:"services"`
	Suggestions     []string               `json:"suggestions"`
	Message         string                 `json:"message"`
}

type ServiceDetailsResponse struct {
	Service     entity.TravelService `json:"service"`
	BookingInfo string               `json:"booking_info"`
}

type SuggestRequest struct {
	Destination string `query:"destination" validate:"required"`
	Origin      string `query:"origin"`
}

type BookServiceRequest struct {
	Destination string            `json:"destination" validate:"required"`
	ServiceID   string            `json:"service_id" validate:"required"`
	Details     map[string]string `json:"details" validate:"required"`
}

type BookServiceResponse struct {
	Booking entity.ServiceBooking `json:"booking"`
	Message string                `json:"message"`
}
