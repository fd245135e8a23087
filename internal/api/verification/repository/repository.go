package verificationRepository

import (
	"SovicoAssistant/internal/entity"
	"errors"
	"golang.org/x/net/context"
	"time"
)

var (
	ErrRecordNotFound    = errors.New("verification record not found")
	ErrRecordExpired     = errors.New("verification record expired")
	ErrAttemptsExhausted = errors.New("verification attempts exhausted")
)

// Store keeps at most one record per phone. Save overwrites.
type Store interface {
	Save(ctx context.Context, record entity.VerificationRecord) error
	// Attempt atomically checks expiry and counts one attempt. Expired and
	// exhausted records are deleted before the error is returned.
	Attempt(ctx context.Context, phone string, now time.Time, maxAttempts int) (entity.VerificationRecord, error)
	Delete(ctx context.Context, phone string) error
}
