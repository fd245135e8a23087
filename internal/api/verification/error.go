package verification

import "SovicoAssistant/pkg/response"

var (
	ErrInvalidPhone     = response.NewError(400, "invalid phone number")
	ErrCodeNotFound     = response.NewError(404, "verification code not found")
	ErrCodeExpired      = response.NewError(410, "verification code expired")
	ErrCodeExhausted    = response.NewError(429, "too many wrong verification attempts")
	ErrCodeMismatch     = response.NewError(400, "verification code does not match")
	ErrMalformedCode    = response.NewError(400, "verification code must be 6 digits")
	ErrFailedToSendCode = response.NewError(500, "failed to issue verification code")
)
