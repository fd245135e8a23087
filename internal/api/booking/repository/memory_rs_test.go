package bookingRepository

import (
	"SovicoAssistant/internal/api/booking"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreLookup(t *testing.T) {
	s := NewMemoryStore(SeedCustomers()...)
	ctx := context.Background()

	byPhone, err := s.FindByPhone(ctx, "0901234567")
	require.NoError(t, err)
	c, ok := byPhone.Get()
	require.True(t, ok)
	assert.Equal(t, "Nguyễn Văn A", c.FullName)

	byEmail, err := s.FindByEmail(ctx, "LeMinhC@gmail.com")
	require.NoError(t, err)
	assert.Equal(t, "0912345678", byEmail.MustGet().Phone)

	missing, err := s.FindByPhone(ctx, "0999999999")
	require.NoError(t, err)
	assert.True(t, missing.IsAbsent())
}

func TestMemoryStoreRecordBooking(t *testing.T) {
	s := NewMemoryStore(SeedCustomers()...)
	ctx := context.Background()

	require.NoError(t, s.RecordBooking(ctx, "0901234567", decimal.NewFromInt(1812000)))

	found, err := s.FindByPhone(ctx, "0901234567")
	require.NoError(t, err)
	c := found.MustGet()
	assert.Equal(t, 4, c.TotalBookings)
	assert.Equal(t, 250+181, c.LoyaltyPoints)

	err = s.RecordBooking(ctx, "0999999999", decimal.NewFromInt(1000000))
	assert.ErrorIs(t, err, booking.ErrCustomerNotFound)
}

func TestLoyaltyPoints(t *testing.T) {
	assert.Equal(t, 0, LoyaltyPoints(decimal.NewFromInt(9999)))
	assert.Equal(t, 129, LoyaltyPoints(decimal.NewFromInt(1299000)))
	assert.Equal(t, 181, LoyaltyPoints(decimal.RequireFromString("1812999.99")))
}
