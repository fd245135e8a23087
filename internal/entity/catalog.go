package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

type Flight struct {
	FlightID    string          `json:"flight_id"`
	Airline     string          `json:"airline"`
	AirlineCode string          `json:"airline_code"`
	FromCity    string          `json:"from_city"`
	ToCity      string          `json:"to_city"`
	FromCode    string          `json:"from_code"`
	ToCode      string          `json:"to_code"`
	Route       string          `json:"route"`
	Date        string          `json:"date"`
	Time        string          `json:"time"`
	Price       decimal.Decimal `json:"price"`
	SeatsLeft   int             `json:"seats_left"`
	ClassType   string          `json:"class_type"`
	Duration    string          `json:"duration"`
	Aircraft    string          `json:"aircraft,omitempty"`
}

func (f Flight) IsZero() bool {
	return f.FlightID == ""
}

type Hotel struct {
	HotelID       string          `json:"hotel_id"`
	Name          string          `json:"name"`
	City          string          `json:"city"`
	Location      string          `json:"location"`
	Category      string          `json:"category"`
	Rating        int             `json:"rating"`
	PricePerNight decimal.Decimal `json:"price_per_night"`
	RoomsLeft     int             `json:"rooms_left"`
	CheckIn       string          `json:"check_in,omitempty"`
	Guests        int             `json:"guests,omitempty"`
}

type Transfer struct {
	TransferID   string          `json:"transfer_id"`
	City         string          `json:"city"`
	Type         string          `json:"type"`
	FromLocation string          `json:"from_location"`
	ToLocation   string          `json:"to_location"`
	Vehicle      string          `json:"vehicle"`
	Price        decimal.Decimal `json:"price"`
}

type SearchKind string

const (
	SearchKindFlights SearchKind = "flights"
	SearchKindPrice   SearchKind = "price"
)

// SearchResult is the last successful flight query, kept so later turns can
// resolve "chuyến đó" or "vé rẻ nhất".
type SearchResult struct {
	Kind       SearchKind `json:"kind"`
	From       string     `json:"from,omitempty"`
	To         string     `json:"to,omitempty"`
	Date       string     `json:"date,omitempty"`
	Flights    []Flight   `json:"flights,omitempty"`
	SearchedAt time.Time  `json:"searched_at"`
}

func (r *SearchResult) HasFlights() bool {
	return r != nil && len(r.Flights) > 0
}

func (r *SearchResult) Cheapest() (Flight, bool) {
	if !r.HasFlights() {
		return Flight{}, false
	}
	best := r.Flights[0]
	for _, f := range r.Flights[1:] {
		if f.Price.LessThan(best.Price) {
			best = f
		}
	}
	return best, true
}

func (r *SearchResult) FlightByID(id string) (Flight, bool) {
	if r == nil {
		return Flight{}, false
	}
	for _, f := range r.Flights {
		if f.FlightID == id {
			return f, true
		}
	}
	return Flight{}, false
}

type ServiceType string

const (
	ServiceHotel     ServiceType = "hotel"
	ServiceTransfer  ServiceType = "transfer"
	ServiceTour      ServiceType = "tour"
	ServiceInsurance ServiceType = "insurance"
)

func (t ServiceType) Valid() bool {
	switch t {
	case ServiceHotel, ServiceTransfer, ServiceTour, ServiceInsurance:
		return true
	}
	return false
}

// TravelService is an ancillary Sovico product offered after a booking.
type TravelService struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Type        ServiceType     `json:"type"`
	Price       decimal.Decimal `json:"price"`
	Unit        string          `json:"unit"`
	Description string          `json:"description"`
	Discount    string          `json:"discount,omitempty"`
	Rating      int             `json:"rating,omitempty"`
	Location    string          `json:"location,omitempty"`
	Duration    string          `json:"duration,omitempty"`
	Coverage    string          `json:"coverage,omitempty"`
	Features    []string        `json:"features,omitempty"`
}

type ServiceBooking struct {
	ServiceID        string            `json:"service_id"`
	ServiceName      string            `json:"service_name"`
	ServiceType      ServiceType       `json:"service_type"`
	Price            decimal.Decimal   `json:"price"`
	Details          map[string]string `json:"details"`
	BookingReference string            `json:"booking_reference"`
	Status           string            `json:"status"`
}
