package verification

const (
	CodeLength  = 6
	MaxAttempts = 3
	// CodeTTLSeconds is the code lifetime reported to clients.
	CodeTTLSeconds = 300
)

type SendResult struct {
	Code        string `json:"code"`
	ExpiresIn   int    `json:"expires_in"`
	MaskedPhone string `json:"masked_phone"`
	Message     string `json:"message"`
}

type VerifyResult struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	AttemptsLeft int    `json:"attempts_left"`
}
