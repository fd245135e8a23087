package booking

import (
	"SovicoAssistant/pkg/response"
	"net/http"
)

var (
	ErrSessionNotFound  = response.NewError(http.StatusGone, "booking session is invalid, please restart")
	ErrNoFlightSelected = response.NewError(http.StatusBadRequest, "no flight selected for booking")
	ErrCustomerNotFound = response.NewError(http.StatusNotFound, "customer not found")
	ErrFailedToSendCode = response.NewError(http.StatusBadGateway, "failed to send verification code")
)
