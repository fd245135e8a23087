package chatService

import (
	"SovicoAssistant/internal/api/chat"
	"SovicoAssistant/internal/api/intent"
	"SovicoAssistant/internal/api/upsell"
	"SovicoAssistant/internal/entity"
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/nlp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
)

const (
	capabilitySearch  = "search"
	capabilityPrice   = "price"
	capabilityService = "service_info"
	capabilityInfo    = "flight_info"
	capabilityHelp    = "help"
)

// dispatch serves a turn outside the booking flow.
func (s *chatService) dispatch(ctx context.Context, c *entity.ConversationContext, message string, result intent.Result) (*turn, error) {
	extraction, err := s.extractor.Extract(ctx, message, c.Slots)
	if err != nil {
		return nil, fail("extract", err)
	}
	c.Slots.Merge(extraction.Slots)

	if extraction.FlightID != "" {
		if _, ok := c.LastSearchResult.FlightByID(extraction.FlightID); ok {
			c.SelectedFlightID = extraction.FlightID
		}
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"intent":     result.Intent,
		"source":     extraction.Source,
		"signals":    extraction.IntentSignals,
	}).Debug("Dispatching turn")

	serviceType, isService := result.Intent.ServiceType()
	if !isService && result.Intent == intent.IntentGetInfo && extraction.ServiceType.Valid() {
		serviceType, isService = extraction.ServiceType, true
	}

	asksPrice := extraction.HasSignal(nlp.SignalPrice) || extraction.Slots.PriceRange == "cheapest"
	namesRoute := extraction.Slots.Locations.From != "" && extraction.Slots.Locations.To != ""

	switch {
	case isService:
		return s.serviceInfo(ctx, c, message, serviceType)
	case result.Intent == intent.IntentGetInfo:
		return s.flightInfo(ctx, c, message)
	case asksPrice && (result.Intent == intent.IntentSearchFlight || c.Slots.HasLocations()):
		return s.cheapest(ctx, c, message)
	case result.Intent == intent.IntentSearchFlight, result.Intent == intent.IntentBookFlight, namesRoute:
		return s.search(ctx, c, message)
	}

	return s.help(ctx, c, message)
}

func (s *chatService) synthesize(ctx context.Context, turn nlp.TurnData) string {
	reply, err := s.synthesizer.Synthesize(ctx, turn)
	if err != nil || strings.TrimSpace(reply) == "" {
		if err != nil {
			s.metrics.CapabilityFailures.WithLabelValues("synthesize").Inc()
		}
		return turn.Draft
	}
	return reply
}

// missingRoute returns a prompt for the missing end of the route, or "".
func missingRoute(slots entity.Slots) string {
	switch {
	case slots.Locations.From == "" && slots.Locations.To == "":
		return "✈️ Bạn muốn bay từ đâu đến đâu? Ví dụ: \"Hà Nội đi Đà Nẵng ngày mai\"."
	case slots.Locations.From == "":
		return "🛫 Bạn muốn bay đến " + slots.Locations.To + " từ thành phố nào?"
	case slots.Locations.To == "":
		return "🛬 Bạn muốn bay từ " + slots.Locations.From + " đến đâu?"
	}
	return ""
}

func (s *chatService) search(ctx context.Context, c *entity.ConversationContext, message string) (*turn, error) {
	if prompt := missingRoute(c.Slots); prompt != "" {
		return &turn{agent: chat.AgentSearch, reply: prompt, suggestions: exampleSearches()}, nil
	}

	from, to := c.Slots.Locations.From, c.Slots.Locations.To
	flights, err := s.catalog.SearchFlights(ctx, from, to, c.Slots.Date)
	if err != nil {
		return nil, fail(capabilitySearch, err)
	}
	flights = filterByTime(flights, c.Slots.TimePreference)

	c.CurrentOrigin = nlp.NormalizeCity(from)
	c.CurrentDestination = nlp.NormalizeCity(to)

	if len(flights) == 0 {
		return &turn{
			agent:       chat.AgentSearch,
			reply:       noFlightsDraft(c.CurrentOrigin, c.CurrentDestination),
			suggestions: exampleSearches(),
		}, nil
	}

	c.LastSearchResult = &entity.SearchResult{
		Kind:       entity.SearchKindFlights,
		From:       c.CurrentOrigin,
		To:         c.CurrentDestination,
		Date:       flights[0].Date,
		Flights:    flights,
		SearchedAt: s.now(),
	}
	c.SelectedFlightID = ""

	reply := s.synthesize(ctx, nlp.TurnData{
		UserMessage: message,
		Capability:  capabilitySearch,
		Slots:       c.Slots,
		Flights:     flights,
		Draft:       flightsDraft(c.LastSearchResult),
	})

	return &turn{agent: chat.AgentSearch, reply: reply, suggestions: searchSuggestions(c)}, nil
}

func (s *chatService) cheapest(ctx context.Context, c *entity.ConversationContext, message string) (*turn, error) {
	if prompt := missingRoute(c.Slots); prompt != "" {
		return &turn{agent: chat.AgentPrice, reply: prompt, suggestions: exampleSearches()}, nil
	}

	from, to := c.Slots.Locations.From, c.Slots.Locations.To
	found, err := s.catalog.CheapestFlight(ctx, from, to, c.Slots.Date)
	if err != nil {
		return nil, fail(capabilityPrice, err)
	}

	c.CurrentOrigin = nlp.NormalizeCity(from)
	c.CurrentDestination = nlp.NormalizeCity(to)

	flight, ok := found.Get()
	if !ok {
		return &turn{
			agent:       chat.AgentPrice,
			reply:       noFlightsDraft(c.CurrentOrigin, c.CurrentDestination),
			suggestions: exampleSearches(),
		}, nil
	}

	c.LastSearchResult = &entity.SearchResult{
		Kind:       entity.SearchKindPrice,
		From:       c.CurrentOrigin,
		To:         c.CurrentDestination,
		Date:       flight.Date,
		Flights:    []entity.Flight{flight},
		SearchedAt: s.now(),
	}
	c.SelectedFlightID = flight.FlightID

	reply := s.synthesize(ctx, nlp.TurnData{
		UserMessage: message,
		Capability:  capabilityPrice,
		Slots:       c.Slots,
		Flights:     []entity.Flight{flight},
		Draft:       cheapestDraft(flight),
	})

	return &turn{agent: chat.AgentPrice, reply: reply, suggestions: searchSuggestions(c)}, nil
}

// serviceCity is where ancillary services are wanted: the named destination,
// then the current trip, then the last completed booking.
func serviceCity(c *entity.ConversationContext) string {
	switch {
	case c.Slots.Locations.To != "":
		return c.Slots.Locations.To
	case c.CurrentDestination != "":
		return c.CurrentDestination
	case c.CompletedBooking != nil:
		return c.CompletedBooking.TravelInfo.Destination
	}
	return ""
}

func (s *chatService) serviceInfo(ctx context.Context, c *entity.ConversationContext, message string, serviceType entity.ServiceType) (*turn, error) {
	city := serviceCity(c)
	if city == "" {
		return &turn{
			agent:       chat.AgentServiceInfo,
			reply:       "📍 Bạn cần " + serviceLabel(serviceType) + " ở thành phố nào?",
			suggestions: []string{"🏖️ Đà Nẵng", "🏛️ Hà Nội", "🏙️ Hồ Chí Minh", "🌴 Phú Quốc"},
		}, nil
	}

	data := nlp.TurnData{
		UserMessage: message,
		Capability:  capabilityService,
		Slots:       c.Slots,
	}

	switch serviceType {
	case entity.ServiceHotel:
		hotels, err := s.catalog.SearchHotels(ctx, city, c.Slots.Date, max(c.Slots.Passengers, 1))
		if err != nil {
			return nil, fail(capabilityService, err)
		}
		data.Hotels = hotels
		data.Draft = hotelsDraft(nlp.NormalizeCity(city), hotels)
	case entity.ServiceTransfer:
		transfers, err := s.catalog.SearchTransfers(ctx, city)
		if err != nil {
			return nil, fail(capabilityService, err)
		}
		data.Transfers = transfers
		data.Draft = transfersDraft(nlp.NormalizeCity(city), transfers)
	default:
		offer, err := s.upsell.Suggest(ctx, city, upsell.TripContext{Origin: c.CurrentOrigin})
		if err != nil {
			return nil, fail(capabilityService, err)
		}
		data.Draft = servicesDraft(offer, serviceType)
	}

	return &turn{
		agent:       chat.AgentServiceInfo,
		reply:       s.synthesize(ctx, data),
		suggestions: serviceSuggestions(nlp.NormalizeCity(city), serviceType),
	}, nil
}

func (s *chatService) flightInfo(ctx context.Context, c *entity.ConversationContext, message string) (*turn, error) {
	flight, ok := s.resolveFlight(ctx, c, message)
	if !ok {
		return s.help(ctx, c, message)
	}

	reply := s.synthesize(ctx, nlp.TurnData{
		UserMessage: message,
		Capability:  capabilityInfo,
		Slots:       c.Slots,
		Flights:     []entity.Flight{flight},
		Draft:       flightInfoDraft(flight),
	})

	return &turn{
		agent:       chat.AgentSearch,
		reply:       reply,
		suggestions: []string{"Đặt vé này", "💰 Vé rẻ nhất", "🔍 Tìm chuyến khác"},
	}, nil
}

func (s *chatService) help(ctx context.Context, c *entity.ConversationContext, message string) (*turn, error) {
	reply := s.synthesize(ctx, nlp.TurnData{
		UserMessage: message,
		Capability:  capabilityHelp,
		Slots:       c.Slots,
		Draft:       helpDraft,
	})

	return &turn{agent: chat.AgentUnknown, reply: reply, suggestions: exampleSearches()}, nil
}

// filterByTime keeps flights in the preferred part of the day. An empty
// filter result falls back to every flight.
func filterByTime(flights []entity.Flight, preference string) []entity.Flight {
	var lo, hi string
	switch preference {
	case "sáng":
		lo, hi = "00:00", "12:00"
	case "chiều":
		lo, hi = "12:00", "18:00"
	case "tối":
		lo, hi = "18:00", "24:00"
	default:
		return flights
	}

	kept := make([]entity.Flight, 0, len(flights))
	for _, f := range flights {
		if f.Time >= lo && f.Time < hi {
			kept = append(kept, f)
		}
	}
	if len(kept) == 0 {
		return flights
	}
	return kept
}
