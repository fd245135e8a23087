package upsellService

import (
	"SovicoAssistant/internal/api/upsell"
	"SovicoAssistant/internal/entity"
	contextPkg "SovicoAssistant/pkg/context"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"sort"
	"strings"
)

const maxSuggestions = 4

var priorityByDestination = map[upsell.DestinationType][]entity.ServiceType{
	upsell.DestinationBeach:    {entity.ServiceHotel, entity.ServiceTour, entity.ServiceTransfer, entity.ServiceInsurance},
	upsell.DestinationCultural: {entity.ServiceTour, entity.ServiceHotel, entity.ServiceTransfer, entity.ServiceInsurance},
	upsell.DestinationBusiness: {entity.ServiceTransfer, entity.ServiceHotel, entity.ServiceTour, entity.ServiceInsurance},
	upsell.DestinationGeneric:  {entity.ServiceHotel, entity.ServiceTransfer, entity.ServiceTour, entity.ServiceInsurance},
}

var requiredFields = map[entity.ServiceType][]string{
	entity.ServiceHotel:     {"check_in", "check_out", "guests", "rooms"},
	entity.ServiceTransfer:  {"pickup_time", "pickup_address"},
	entity.ServiceTour:      {"tour_date", "participants"},
	entity.ServiceInsurance: {"confirm"},
}

// ClassifyDestination maps a destination name to its profile.
func ClassifyDestination(destination string) upsell.DestinationType {
	dest := normalizeDestination(destination)
	switch {
	case strings.Contains(dest, "danang"):
		return upsell.DestinationBeach
	case strings.Contains(dest, "hanoi"):
		return upsell.DestinationCultural
	case strings.Contains(dest, "hochiminh"), strings.Contains(dest, "saigon"), strings.Contains(dest, "hcm"):
		return upsell.DestinationBusiness
	}
	return upsell.DestinationGeneric
}

func (s *upsellService) Suggest(ctx context.Context, destination string, trip upsell.TripContext) (*upsell.UpsellResult, error) {
	destination = strings.TrimSpace(destination)
	if destination == "" {
		return nil, upsell.ErrMissingDestination
	}

	destType := trip.DestinationType
	if _, ok := priorityByDestination[destType]; !ok {
		destType = ClassifyDestination(destination)
	}
	priority := priorityByDestination[destType]

	services := servicesFor(destination)
	rankServices(services, priority)

	suggestions := formatSuggestions(services, priority, destination, destType)
	if len(suggestions) == 0 {
		suggestions = fallbackSuggestions(destination, destType)
	}

	s.log.WithFields(logrus.Fields{
		"request_id":       contextPkg.GetRequestID(ctx),
		"destination":      destination,
		"destination_type": destType,
		"origin":           trip.Origin,
		"services":         len(services),
	}).Debug("Upsell services suggested")

	return &upsell.UpsellResult{
		Destination:     destination,
		DestinationType: destType,
		Services:        services,
		Suggestions:     suggestions,
		Message:         upsellMessage(destination),
	}, nil
}

func (s *upsellService) ServiceDetails(ctx context.Context, destination string, serviceID string) (*upsell.ServiceDetailsResponse, error) {
	service, err := findService(destination, serviceID)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"service_id": serviceID,
		}).Warn("Upsell service not found")
		return nil, err
	}

	return &upsell.ServiceDetailsResponse{
		Service:     service,
		BookingInfo: bookingInfo(service),
	}, nil
}

func (s *upsellService) BookService(ctx context.Context, req upsell.BookServiceRequest) (*upsell.BookServiceResponse, error) {
	requestID := contextPkg.GetRequestID(ctx)

	service, err := findService(req.Destination, req.ServiceID)
	if err != nil {
		return nil, err
	}

	var missing []string
	for _, field := range requiredFields[service.Type] {
		if strings.TrimSpace(req.Details[field]) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"service_id": service.ID,
			"missing":    missing,
		}).Warn("Service booking is missing details")
		return nil, fmt.Errorf("%w: %s", upsell.ErrMissingDetails, strings.Join(missing, ", "))
	}

	suffix := service.ID
	if len(suffix) > 6 {
		suffix = suffix[len(suffix)-6:]
	}

	booking := entity.ServiceBooking{
		ServiceID:        service.ID,
		ServiceName:      service.Name,
		ServiceType:      service.Type,
		Price:            service.Price,
		Details:          req.Details,
		BookingReference: fmt.Sprintf("SOVICO%s%s", s.now().Format("20060102"), strings.ToUpper(suffix)),
		Status:           "confirmed",
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"service_id": service.ID,
		"reference":  booking.BookingReference,
	}).Info("Additional service booked")

	return &upsell.BookServiceResponse{
		Booking: booking,
		Message: fmt.Sprintf("✅ Đặt %s thành công!\n🔗 Mã tham chiếu: %s", service.Name, booking.BookingReference),
	}, nil
}

func findService(destination string, serviceID string) (entity.TravelService, error) {
	if strings.TrimSpace(destination) == "" {
		return entity.TravelService{}, upsell.ErrMissingDestination
	}

	for _, service := range servicesFor(destination) {
		if service.ID == serviceID {
			return service, nil
		}
	}
	return entity.TravelService{}, upsell.ErrServiceNotFound
}

func rankServices(services []entity.TravelService, priority []entity.ServiceType) {
	rank := make(map[entity.ServiceType]int, len(priority))
	for i, t := range priority {
		rank[t] = i
	}

	sort.SliceStable(services, func(i, j int) bool {
		return rank[services[i].Type] < rank[services[j].Type]
	})
}

// formatSuggestions emits one quick reply per service type in priority order.
// When a type has several services the last one is shown.
func formatSuggestions(services []entity.TravelService, priority []entity.ServiceType, destination string, destType upsell.DestinationType) []string {
	byType := make(map[entity.ServiceType]entity.TravelService, len(services))
	for _, service := range services {
		byType[service.Type] = service
	}

	var out []string
	for _, t := range priority {
		service, ok := byType[t]
		if !ok {
			continue
		}
		if suggestion := formatSuggestion(service, destination, destType); suggestion != "" {
			out = append(out, suggestion)
		}
		if len(out) >= maxSuggestions {
			break
		}
	}
	return out
}

func formatSuggestion(service entity.TravelService, destination string, destType upsell.DestinationType) string {
	switch service.Type {
	case entity.ServiceHotel:
		if destType == upsell.DestinationBeach {
			return fmt.Sprintf("🏨 Resort %s", destination)
		}
		name := strings.NewReplacer("Hotel", "", "Resort", "").Replace(service.Name)
		return fmt.Sprintf("🏨 %s...", truncateRunes(strings.TrimSpace(name), 12))
	case entity.ServiceTransfer:
		return fmt.Sprintf("🚗 Xe đón %s", destination)
	case entity.ServiceTour:
		switch destType {
		case upsell.DestinationCultural:
			return fmt.Sprintf("🎯 Tour %s", destination)
		case upsell.DestinationBeach:
			return fmt.Sprintf("🎯 Tour biển %s", destination)
		}
		name := strings.ReplaceAll(service.Name, "Tour", "")
		return fmt.Sprintf("🎯 %s...", truncateRunes(strings.TrimSpace(name), 12))
	case entity.ServiceInsurance:
		return "🛡️ Bảo hiểm du lịch"
	}
	return ""
}

func fallbackSuggestions(destination string, destType upsell.DestinationType) []string {
	switch destType {
	case upsell.DestinationBeach:
		return []string{
			fmt.Sprintf("🏨 Resort %s", destination),
			fmt.Sprintf("🎯 Tour biển %s", destination),
			fmt.Sprintf("🚗 Xe đón %s", destination),
			"🛡️ Bảo hiểm",
		}
	case upsell.DestinationCultural:
		return []string{
			fmt.Sprintf("🎯 Tour %s", destination),
			fmt.Sprintf("🏨 Khách sạn %s", destination),
			fmt.Sprintf("🚗 Xe đón %s", destination),
			"🛡️ Bảo hiểm",
		}
	}
	return []string{
		fmt.Sprintf("🏨 Khách sạn %s", destination),
		fmt.Sprintf("🚗 Xe đón %s", destination),
		fmt.Sprintf("🎯 Tour %s", destination),
		"🛡️ Bảo hiểm",
	}
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
