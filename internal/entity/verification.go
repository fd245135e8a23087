package entity

import "time"

type VerificationPurpose string

const (
	PurposePayment VerificationPurpose = "payment"
)

// VerificationRecord is keyed by phone; only a hash of the code is kept.
type VerificationRecord struct {
	Phone     string              `json:"phone"`
	CodeHash  string              `json:"code_hash"`
	Purpose   VerificationPurpose `json:"purpose"`
	CreatedAt time.Time           `json:"created_at"`
	ExpiresAt time.Time           `json:"expires_at"`
	Attempts  int                 `json:"attempts"`
}

func (r *VerificationRecord) ExpiredAt(now time.Time) bool {
	return now.After(r.ExpiresAt)
}
