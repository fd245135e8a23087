package catalog

import "SovicoAssistant/internal/entity"

type FlightSearchRequest struct {
	From string `query:"from" validate:"required"`
	To   string `query:"to" validate:"required"`
	Date string `query:"date"`
}

type FlightSearchResponse struct {
	From     string          `json:"from"`
	To       string          `json:"to"`
	Date     string          `json:"date"`
	Flights  []entity.Flight `json:"flights"`
	Cheapest *entity.Flight  `json:"cheapest,omitempty"`
}
