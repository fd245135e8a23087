package chatService

import (
	"SovicoAssistant/internal/api/booking"
	"SovicoAssistant/internal/api/chat"
	"SovicoAssistant/internal/entity"
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/utils"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
)

const (
	msgCancelled = "❌ Đã hủy đặt vé. Thông tin tìm kiếm của bạn vẫn được giữ lại.\n\n" +
		"Bạn có thể tìm chuyến bay khác hoặc đặt lại bất cứ lúc nào."
	msgPickFlight = "✈️ Bạn muốn đặt chuyến bay nào? Hãy tìm chuyến bay trước, ví dụ: " +
		"\"Tìm vé Hà Nội đi Đà Nẵng ngày mai\"."
)

func (s *chatService) cancelBooking(ctx context.Context, userID string, c *entity.ConversationContext) *turn {
	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"user_id":    userID,
		"session_id": c.BookingSession.SessionID,
		"step":       c.BookingSession.Step,
	}).Info("Booking session cancelled")

	c.BookingSession = nil

	return &turn{
		agent:       chat.AgentCancel,
		reply:       msgCancelled,
		suggestions: searchSuggestions(c),
		persist:     saveSession,
	}
}

// resolveFlight picks the flight a booking request refers to: a flight number
// in the message, the selected flight, the cheapest one when asked for, or
// the first search result.
func (s *chatService) resolveFlight(ctx context.Context, c *entity.ConversationContext, message string) (entity.Flight, bool) {
	last := c.LastSearchResult

	if extraction, err := s.rules.Extract(ctx, message, c.Slots); err == nil && extraction.FlightID != "" {
		if f, ok := last.FlightByID(extraction.FlightID); ok {
			return f, true
		}
		if f, err := s.catalog.FlightByID(ctx, extraction.FlightID, c.Slots.Date); err == nil {
			return f, true
		}
	}

	if c.SelectedFlightID != "" {
		if f, ok := last.FlightByID(c.SelectedFlightID); ok {
			return f, true
		}
	}

	lower := strings.ToLower(message)
	if strings.Contains(lower, "rẻ nhất") || strings.Contains(lower, "cheapest") {
		if f, ok := last.Cheapest(); ok {
			return f, true
		}
	}

	if last.HasFlights() {
		return last.Flights[0], true
	}
	return entity.Flight{}, false
}

func (s *chatService) startBooking(ctx context.Context, c *entity.ConversationContext, message string) (*turn, error) {
	flight, ok := s.resolveFlight(ctx, c, message)
	if !ok {
		return &turn{
			agent:       chat.AgentBooking,
			reply:       msgPickFlight,
			suggestions: exampleSearches(),
		}, nil
	}

	session, reply, err := s.booking.Start(ctx, flight)
	if err != nil {
		return nil, fail("booking", err)
	}

	c.BookingSession = session
	c.SelectedFlightID = flight.FlightID

	return &turn{
		agent:       chat.AgentBooking,
		reply:       reply,
		suggestions: bookingSuggestions(session),
	}, nil
}

func (s *chatService) confirmBooking(ctx context.Context, c *entity.ConversationContext, message string) *turn {
	flight, ok := s.resolveFlight(ctx, c, message)
	if !ok {
		return &turn{
			agent:       chat.AgentConfirm,
			reply:       "🤔 Bạn muốn đặt vé máy bay phải không? " + msgPickFlight,
			suggestions: exampleSearches(),
		}
	}

	reply := fmt.Sprintf("🤔 Bạn có muốn đặt vé chuyến %s %s → %s ngày %s lúc %s (%s VNĐ) không?\n\n"+
		"Trả lời \"Đặt vé này\" để bắt đầu đặt vé.",
		flight.FlightID, flight.FromCity, flight.ToCity, flight.Date, flight.Time, utils.FormatVND(flight.Price))

	return &turn{
		agent:       chat.AgentConfirm,
		reply:       reply,
		suggestions: []string{"Đặt vé này", "💰 Vé rẻ nhất", "🔍 Tìm chuyến khác", "❓ Trợ giúp"},
	}
}

// continueBooking hands the whole message to the booking machine.
func (s *chatService) continueBooking(ctx context.Context, c *entity.ConversationContext, message string) (*turn, error) {
	result, err := s.booking.Advance(ctx, c.BookingSession, message)
	if err != nil {
		return nil, fail("booking", err)
	}

	t := &turn{
		agent:  chat.AgentBooking,
		intent: "booking_step",
		reply:  result.Message,
	}

	switch {
	case result.Outcome == booking.OutcomeRestart:
		c.BookingSession = nil
		t.suggestions = searchSuggestions(c)
		t.persist = saveSession
	case result.Completed:
		foldCompletedBooking(c, result.Booking)
		t.suggestions = completedSuggestions(result)
		t.afterSave = result.Commit
	default:
		c.BookingSession = result.Session
		t.suggestions = bookingSuggestions(result.Session)
		t.persist = saveSession
	}

	return t, nil
}

// foldCompletedBooking drops the live session and keeps its summary.
func foldCompletedBooking(c *entity.ConversationContext, done *entity.CompletedBooking) {
	c.BookingSession = nil
	c.SelectedFlightID = ""
	if done == nil {
		return
	}

	c.CompletedBooking = done
	c.CurrentOrigin = done.TravelInfo.Origin
	c.CurrentDestination = done.TravelInfo.Destination
}
