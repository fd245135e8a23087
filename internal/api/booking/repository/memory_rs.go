package bookingRepository

import (
	"SovicoAssistant/internal/api/booking"
	"SovicoAssistant/internal/entity"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"golang.org/x/net/context"
	"strings"
	"sync"
)

type memoryStore struct {
	mu        sync.RWMutex
	customers map[string]entity.Customer
}

// NewMemoryStore keeps customers in process memory, keyed by phone.
func NewMemoryStore(seed ...entity.Customer) CustomerStore {
	s := &memoryStore{customers: make(map[string]entity.Customer, len(seed))}
	for _, c := range seed {
		s.customers[c.Phone] = c
	}
	return s
}

func (s *memoryStore) FindByPhone(_ context.Context, phone string) (mo.Option[entity.Customer], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if c, ok := s.customers[phone]; ok {
		return mo.Some(c), nil
	}
	return mo.None[entity.Customer](), nil
}

func (s *memoryStore) FindByEmail(_ context.Context, email string) (mo.Option[entity.Customer], error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.customers {
		if c.Email != "" && strings.EqualFold(c.Email, email) {
			return mo.Some(c), nil
		}
	}
	return mo.None[entity.Customer](), nil
}

func (s *memoryStore) RecordBooking(_ context.Context, phone string, fare decimal.Decimal) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.customers[phone]
	if !ok {
		return booking.ErrCustomerNotFound
	}

	c.TotalBookings++
	c.LoyaltyPoints += LoyaltyPoints(fare)
	s.customers[phone] = c

	return nil
}

// SeedCustomers is the demo customer set used by the in-memory store.
func SeedCustomers() []entity.Customer {
	return []entity.Customer{
		{
			ID:               "user_001",
			FullName:         "Nguyễn Văn A",
			Email:            "nguyenvana@gmail.com",
			Phone:            "0901234567",
			IDNumber:         "123456789012",
			LoyaltyPoints:    250,
			TotalBookings:    3,
			PreferredPayment: "momo",
		},
		{
			ID:               "user_002",
			FullName:         "Trần Thị B",
			Email:            "tranthib@gmail.com",
			Phone:            "0907654321",
			IDNumber:         "987654321098",
			LoyaltyPoints:    150,
			TotalBookings:    2,
			PreferredPayment: "banking",
		},
		{
			ID:               "user_003",
			FullName:         "Lê Minh C",
			Email:            "leminhc@gmail.com",
			Phone:            "0912345678",
			IDNumber:         "456789123456",
			LoyaltyPoints:    500,
			TotalBookings:    8,
			PreferredPayment: "visa",
		},
		{
			ID:               "user_004",
			FullName:         "Đinh Như Khải",
			Email:            "khaidevcontact@gmail.com",
			Phone:            "0888888888",
			IDNumber:         "0123456789123",
			LoyaltyPoints:    100,
			TotalBookings:    1,
			PreferredPayment: "momo",
		},
	}
}
