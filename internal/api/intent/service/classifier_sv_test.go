package intentService

import (
	"SovicoAssistant/internal/api/intent"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/log"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func recentSearch() intent.RecentContext {
	return intent.RecentContext{
		LastSearch: &entity.SearchResult{
			Kind:    entity.SearchKindFlights,
			Flights: []entity.Flight{{FlightID: "VJ112", FromCity: "Ho Chi Minh City", ToCity: "Hanoi"}},
		},
	}
}

func TestAnalyzeIntent(t *testing.T) {
	tests := []struct {
		name    string
		message string
		recent  intent.RecentContext
		want    intent.Intent
		minConf float64
	}{
		{"exact booking phrase", "đặt vé này", recentSearch(), intent.IntentBookFlight, 0.9},
		{"exact booking phrase without search", "Đặt vé này", intent.RecentContext{}, intent.IntentBookFlight, 0.9},
		{"context phrase", "hãy đặt cho tôi chuyến bay đó", recentSearch(), intent.IntentBookFlight, 0.9},
		{"deictic cheapest", "vé rẻ nhất", recentSearch(), intent.IntentBookFlight, 0.85},
		{"medium verb with search", "tôi muốn đặt", recentSearch(), intent.IntentBookFlight, 0.8},
		{"route search", "Tìm chuyến bay từ hà nội đến đà nẵng ngày mai", intent.RecentContext{}, intent.IntentSearchFlight, 1.0},
		{"booking as question loses to search", "vé rẻ nhất bao nhiêu?", recentSearch(), intent.IntentSearchFlight, 0.7},
		{"hotel request", "có khách sạn ở đà nẵng không?", intent.RecentContext{}, intent.IntentRequestHotel, 0.9},
		{"baggage info", "hành lý được bao nhiêu kg", intent.RecentContext{}, intent.IntentGetInfo, 0.8},
		{"find after upsell", "tìm giúp tôi", intent.RecentContext{UpsellActive: true}, intent.IntentRequestHotel, 0.8},
		{"find without upsell", "tìm giúp tôi", intent.RecentContext{}, intent.IntentUnknown, 0},
		{"small talk", "xin chào", intent.RecentContext{}, intent.IntentUnknown, 0},
	}

	s := NewClassifierService(log.Discard(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.AnalyzeIntent(context.Background(), tt.message, tt.recent, "user_test")
			assert.Equal(t, tt.want, got.Intent)
			assert.GreaterOrEqual(t, got.Confidence, tt.minConf-1e-9)
			assert.LessOrEqual(t, got.Confidence, 1.0)
		})
	}
}

func TestAnalyzeIntentSearchInfo(t *testing.T) {
	s := NewClassifierService(log.Discard(), nil)

	got := s.AnalyzeIntent(context.Background(), "Tìm chuyến bay từ hà nội đến đà nẵng ngày mai", intent.RecentContext{}, "u1")
	require.NotNil(t, got.Search)
	assert.Equal(t, intent.SearchInfo{FromCity: "Hanoi", ToCity: "Da Nang", Date: "ngày mai"}, *got.Search)
}

func TestAnalyzeIntentBookingCarriesLastSearch(t *testing.T) {
	s := NewClassifierService(log.Discard(), nil)
	recent := recentSearch()

	got := s.AnalyzeIntent(context.Background(), "đặt vé này", recent, "u1")
	assert.True(t, got.ContextAvailable)
	assert.False(t, got.RequiresFlightSelection)
	assert.Same(t, recent.LastSearch, got.LastSearch)

	got = s.AnalyzeIntent(context.Background(), "đặt vé này", intent.RecentContext{}, "u1")
	assert.True(t, got.RequiresFlightSelection)
	assert.Nil(t, got.LastSearch)
}

func TestShouldProceedWithBooking(t *testing.T) {
	tests := []struct {
		name        string
		message     string
		recent      intent.RecentContext
		wantBook    bool
		wantConfirm bool
	}{
		{"strong phrase proceeds", "đặt vé này", recentSearch(), true, false},
		{"medium verb with context proceeds", "tôi muốn đặt", recentSearch(), true, false},
		{"medium verb without context asks", "tôi muốn đặt", intent.RecentContext{}, false, true},
		{"question is not booking", "đặt vé không?", intent.RecentContext{}, false, false},
		{"search is not booking", "Tìm chuyến bay từ hà nội đến đà nẵng", intent.RecentContext{}, false, false},
	}

	s := NewClassifierService(log.Discard(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := s.ShouldProceedWithBooking(context.Background(), tt.message, tt.recent, "user_test")
			assert.Equal(t, tt.wantBook, got.ShouldBook)
			assert.Equal(t, tt.wantConfirm, got.ShouldConfirm)
			assert.NotEmpty(t, got.Reason)
		})
	}
}

func TestHistoryKeepsLastThree(t *testing.T) {
	s := NewClassifierService(log.Discard(), nil)
	ctx := context.Background()

	for _, m := range []string{"một", "hai", "ba", "bốn"} {
		s.AnalyzeIntent(ctx, m, intent.RecentContext{}, "u1")
	}
	s.AnalyzeIntent(ctx, "khác", intent.RecentContext{}, "u2")

	assert.Equal(t, []string{"hai", "ba", "bốn"}, s.History("u1"))
	assert.Equal(t, []string{"khác"}, s.History("u2"))
	assert.Empty(t, s.History("nobody"))
}
