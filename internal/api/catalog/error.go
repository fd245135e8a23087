package catalog

import (
	"SovicoAssistant/pkg/response"
	"net/http"
)

var (
	ErrFlightNotFound = response.NewError(http.StatusNotFound, "flight not found")
	ErrMissingCity    = response.NewError(http.StatusBadRequest, "city is required")
)
