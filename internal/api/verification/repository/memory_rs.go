package verificationRepository

import (
	"SovicoAssistant/internal/entity"
	"golang.org/x/net/context"
	"sync"
	"time"
)

type memoryStore struct {
	mu      sync.Mutex
	records map[string]entity.VerificationRecord
}

func NewMemoryStore() Store {
	return &memoryStore{
		records: make(map[string]entity.VerificationRecord),
	}
}

func (s *memoryStore) Save(_ context.Context, record entity.VerificationRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.records[record.Phone] = record
	return nil
}

func (s *memoryStore) Attempt(_ context.Context, phone string, now time.Time, maxAttempts int) (entity.VerificationRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.records[phone]
	if !ok {
		return entity.VerificationRecord{}, ErrRecordNotFound
	}

	if record.ExpiredAt(now) {
		delete(s.records, phone)
		return entity.VerificationRecord{}, ErrRecordExpired
	}

	record.Attempts++
	if record.Attempts > maxAttempts {
		delete(s.records, phone)
		return entity.VerificationRecord{}, ErrAttemptsExhausted
	}

	s.records[phone] = record
	return record, nil
}

func (s *memoryStore) Delete(_ context.Context, phone string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.records, phone)
	return nil
}
