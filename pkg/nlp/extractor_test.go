package nlp

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SovicoAssistant/internal/entity"
)

func TestRuleExtractorSlots(t *testing.T) {
	tests := []struct {
		name    string
		message string
		want    entity.Slots
	}{
		{
			name:    "from and to with relative date",
			message: "Tìm chuyến bay từ TP.HCM đến Hà Nội ngày mai",
			want: entity.Slots{
				Locations: entity.Locations{From: CityHoChiMinh, To: CityHanoi},
				Date:      "ngày mai",
			},
		},
		{
			name:    "destination only with price and passengers",
			message: "vé rẻ nhất đi Đà Nẵng 2 người",
			want: entity.Slots{
				Locations:  entity.Locations{To: CityDaNang},
				PriceRange: "cheapest",
				Passengers: 2,
			},
		},
		{
			name:    "exact date wins",
			message: "bay từ đà nẵng ra hà nội 25/12/2025 tuần sau",
			want: entity.Slots{
				Locations: entity.Locations{From: CityDaNang, To: CityHanoi},
				Date:      "25/12/2025",
			},
		},
		{
			name:    "destination mentioned before origin",
			message: "đến hà nội từ sài gòn buổi sáng",
			want: entity.Slots{
				Locations:      entity.Locations{From: CityHoChiMinh, To: CityHanoi},
				TimePreference: "sáng",
			},
		},
		{
			name:    "arrow route",
			message: "HN → SGN",
			want: entity.Slots{
				Locations: entity.Locations{From: CityHanoi, To: CityHoChiMinh},
			},
		},
		{
			name:    "unknown cities fall back to patterns",
			message: "bay từ vinh đến huế",
			want: entity.Slots{
				Locations: entity.Locations{From: "Vinh", To: "Huế"},
			},
		},
		{
			name:    "passengers are clamped",
			message: "flight for 15",
			want:    entity.Slots{Passengers: 10},
		},
	}

	e := NewRuleExtractor()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.Extract(context.Background(), tt.message, entity.Slots{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Slots)
			assert.Equal(t, SourceRules, got.Source)
		})
	}
}

func TestRuleExtractorSignals(t *testing.T) {
	e := NewRuleExtractor()
	ctx := context.Background()

	got, err := e.Extract(ctx, "Đặt vé VJ112 giá bao nhiêu", entity.Slots{})
	require.NoError(t, err)
	assert.True(t, got.HasSignal(SignalBooking))
	assert.True(t, got.HasSignal(SignalPrice))
	assert.False(t, got.HasSignal(SignalInfo))
	assert.Equal(t, "VJ112", got.FlightID)

	got, err = e.Extract(ctx, "cho tôi thông tin khách sạn", entity.Slots{})
	require.NoError(t, err)
	assert.True(t, got.HasSignal(SignalInfo))
	assert.Equal(t, entity.ServiceHotel, got.ServiceType)

	got, err = e.Extract(ctx, "mua bảo hiểm du lịch", entity.Slots{})
	require.NoError(t, err)
	assert.Equal(t, entity.ServiceTour, got.ServiceType, "first matching group wins")
}

func TestNormalizeCity(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Sài Gòn", CityHoChiMinh},
		{"tphcm", CityHoChiMinh},
		{"Hà Nội", CityHanoi},
		{"DANANG", CityDaNang},
		{"Danangg", CityDaNang},
		{"Phú Quốc", CityPhuQuoc},
		{"quy nhơn", "Quy Nhơn"},
		{"  ", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeCity(tt.in))
		})
	}

	assert.True(t, IsKnownCity("Đà Lạt"))
	assert.False(t, IsKnownCity("Vinh"))
}

func TestFold(t *testing.T) {
	assert.Equal(t, "da nang", Fold("Đà Nẵng"))
	assert.Equal(t, "ho chi minh", Fold("Hồ Chí Minh"))
	assert.Equal(t, "dat ve nay", Fold("ĐẶT VÉ NÀY"))
}

func TestResolveDate(t *testing.T) {
	now := time.Date(2025, 3, 15, 18, 30, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want string
	}{
		{"hôm nay", "2025-03-15"},
		{"ngày mai", "2025-03-16"},
		{"", "2025-03-16"},
		{"tuần sau", "2025-03-22"},
		{"tháng sau", "2025-04-15"},
		{"20/03/2025", "2025-03-20"},
		{"5/4/2025", "2025-04-05"},
		{"2025-05-01", "2025-05-01"},
		{"thứ hai", "2025-03-16"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			assert.Equal(t, tt.want, ResolveDate(tt.raw, now).Format(DateLayout))
		})
	}
}
