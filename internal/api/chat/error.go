package chat

import (
	"SovicoAssistant/pkg/response"
	"net/http"
)

var (
	ErrEmptyMessage    = response.NewError(http.StatusBadRequest, "message must not be empty")
	ErrMessageTooLong  = response.NewError(http.StatusRequestEntityTooLarge, "message is too long")
	ErrContextStore    = response.NewError(http.StatusServiceUnavailable, "conversation context is unavailable")
	ErrContextNotFound = response.NewError(http.StatusNotFound, "conversation context not found")
	ErrTurnAborted     = response.NewError(http.StatusServiceUnavailable, "turn aborted before it could be saved")
	ErrCapability      = response.NewError(http.StatusBadGateway, "downstream capability failed")
)
