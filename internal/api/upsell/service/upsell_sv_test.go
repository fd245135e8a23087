package upsellService

import (
	"SovicoAssistant/internal/api/upsell"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/log"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(now time.Time) *upsellService {
	return &upsellService{
		log: log.Discard(),
		now: func() time.Time { return now },
	}
}

func serviceTypes(services []entity.TravelService) []entity.ServiceType {
	out := make([]entity.ServiceType, 0, len(services))
	for _, s := range services {
		out = append(out, s.Type)
	}
	return out
}

func TestClassifyDestination(t *testing.T) {
	tests := []struct {
		destination string
		want        upsell.DestinationType
	}{
		{"Da Nang", upsell.DestinationBeach},
		{"Đà Nẵng", upsell.DestinationBeach},
		{"Hanoi", upsell.DestinationCultural},
		{"Ho Chi Minh City", upsell.DestinationBusiness},
		{"Sài Gòn", upsell.DestinationBusiness},
		{"Quy Nhon", upsell.DestinationGeneric},
	}

	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyDestination(tt.destination))
		})
	}
}

func TestSuggestBeachDestination(t *testing.T) {
	s := newTestService(time.Now())

	res, err := s.Suggest(context.Background(), "Da Nang", upsell.TripContext{Origin: "Ho Chi Minh City"})
	require.NoError(t, err)

	assert.Equal(t, upsell.DestinationBeach, res.DestinationType)
	require.NotEmpty(t, res.Services)
	assert.Equal(t, entity.ServiceHotel, res.Services[0].Type)
	assert.Equal(t, []entity.ServiceType{
		entity.ServiceHotel,
		entity.ServiceTour,
		entity.ServiceTransfer,
		entity.ServiceInsurance,
	}, serviceTypes(res.Services))

	assert.Equal(t, []string{
		"🏨 Resort Da Nang",
		"🎯 Tour biển Da Nang",
		"🚗 Xe đón Da Nang",
		"🛡️ Bảo hiểm du lịch",
	}, res.Suggestions)
	assert.Contains(t, res.Message, "DỊCH VỤ BỔ SUNG TẠI DA NANG")
}

func TestSuggestOrdersByDestinationType(t *testing.T) {
	tests := []struct {
		destination string
		first       entity.ServiceType
	}{
		{"Hanoi", entity.ServiceTour},
		{"Ho Chi Minh City", entity.ServiceTransfer},
		{"Quy Nhon", entity.ServiceHotel},
	}

	s := newTestService(time.Now())
	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			res, err := s.Suggest(context.Background(), tt.destination, upsell.TripContext{})
			require.NoError(t, err)
			require.NotEmpty(t, res.Services)
			assert.Equal(t, tt.first, res.Services[0].Type)
			assert.LessOrEqual(t, len(res.Suggestions), maxSuggestions)
			assert.Equal(t, entity.ServiceInsurance, res.Services[len(res.Services)-1].Type)
		})
	}
}

func TestSuggestHanoiSuggestions(t *testing.T) {
	s := newTestService(time.Now())

	res, err := s.Suggest(context.Background(), "Hanoi", upsell.TripContext{})
	require.NoError(t, err)

	// two hotels, one transfer, one tour, one insurance
	assert.Len(t, res.Services, 5)
	assert.Equal(t, []string{
		"🎯 Tour Hanoi",
		"🏨 Sovico Bouti...",
		"🚗 Xe đón Hanoi",
		"🛡️ Bảo hiểm du lịch",
	}, res.Suggestions)
}

func TestSuggestExplicitDestinationType(t *testing.T) {
	s := newTestService(time.Now())

	res, err := s.Suggest(context.Background(), "Hanoi", upsell.TripContext{DestinationType: upsell.DestinationBusiness})
	require.NoError(t, err)
	assert.Equal(t, upsell.DestinationBusiness, res.DestinationType)
	assert.Equal(t, entity.ServiceTransfer, res.Services[0].Type)
}

func TestSuggestRequiresDestination(t *testing.T) {
	s := newTestService(time.Now())

	_, err := s.Suggest(context.Background(), "  ", upsell.TripContext{})
	assert.ErrorIs(t, err, upsell.ErrMissingDestination)
}

func TestServiceDetails(t *testing.T) {
	s := newTestService(time.Now())

	res, err := s.ServiceDetails(context.Background(), "Da Nang", "sovico_transfer_danang")
	require.NoError(t, err)
	assert.Equal(t, entity.ServiceTransfer, res.Service.Type)
	assert.Contains(t, res.BookingInfo, "320,000 VNĐ/chuyến")
	assert.Contains(t, res.BookingInfo, "Bạn cần đưa đón lúc mấy giờ?")

	res, err = s.ServiceDetails(context.Background(), "Da Nang", "sovico_insurance_001")
	require.NoError(t, err)
	assert.Contains(t, res.BookingInfo, "Bảo hiểm tối đa: 10 tỷ VNĐ")

	_, err = s.ServiceDetails(context.Background(), "Da Nang", "nope")
	assert.ErrorIs(t, err, upsell.ErrServiceNotFound)
}

func TestBookService(t *testing.T) {
	s := newTestService(time.Date(2025, 3, 15, 9, 0, 0, 0, time.UTC))

	res, err := s.BookService(context.Background(), upsell.BookServiceRequest{
		Destination: "Hanoi",
		ServiceID:   "sovico_hn_001",
		Details: map[string]string{
			"check_in":  "2025-03-20",
			"check_out": "2025-03-22",
			"guests":    "2",
			"rooms":     "1",
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "SOVICO20250315HN_001", res.Booking.BookingReference)
	assert.Equal(t, "confirmed", res.Booking.Status)
	assert.Equal(t, entity.ServiceHotel, res.Booking.ServiceType)
	assert.Contains(t, res.Message, "Đặt Sovico Grand Hotel Hanoi thành công!")
}

func TestBookServiceMissingDetails(t *testing.T) {
	s := newTestService(time.Now())

	_, err := s.BookService(context.Background(), upsell.BookServiceRequest{
		Destination: "Hanoi",
		ServiceID:   "sovico_hn_001",
		Details:     map[string]string{"check_in": "2025-03-20", "guests": "2"},
	})
	require.ErrorIs(t, err, upsell.ErrMissingDetails)
	assert.Contains(t, err.Error(), "check_out, rooms")
}

func TestCatalogLookupNeedsWholeCityName(t *testing.T) {
	tests := []struct {
		destination string
		hotel       string
	}{
		{"Hanoi", "Sovico Grand Hotel Hanoi"},
		{"Hà Nội", "Sovico Grand Hotel Hanoi"},
		{"Sài Gòn", "Sovico Luxury Saigon"},
		{"Hà", "Sovico Hotel Hà"},
		{"Nha", "Sovico Hotel Nha"},
	}

	for _, tt := range tests {
		t.Run(tt.destination, func(t *testing.T) {
			hotels := hotelsFor(tt.destination)
			require.NotEmpty(t, hotels)
			assert.Equal(t, tt.hotel, hotels[0].Name)
		})
	}
}
