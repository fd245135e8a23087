package upsell

import "SovicoAssistant/pkg/response"

var (
	ErrMissingDestination = response.NewError(400, "destination is required")
	ErrServiceNotFound    = response.NewError(404, "service not found")
	ErrMissingDetails     = response.NewError(400, "missing service booking details")
)
