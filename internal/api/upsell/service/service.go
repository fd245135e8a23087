package upsellService

import (
	"SovicoAssistant/internal/api/upsell"
	"SovicoAssistant/internal/entity"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type IUpsellService interface {
	Suggest(ctx context.Context, destination string, trip upsell.TripContext) (*upsell.UpsellResult, error)
	ServiceDetails(ctx context.Context, destination string, serviceID string) (*upsell.ServiceDetailsResponse, error)
	BookService(ctx context.Context, req upsell.BookServiceRequest) (*upsell.BookServiceResponse, error)
}

type upsellService struct {
	log *logrus.Logger
	now func() time.Time
}

func NewUpsellService(log *logrus.Logger) IUpsellService {
	return &upsellService{
		log: log,
		now: time.Now,
	}
}

// servicesFor is the flight upsell slice: two hotels, the transfer, one tour
// and the insurance.
func servicesFor(destination string) []entity.TravelService {
	hotels := hotelsFor(destination)
	if len(hotels) > 2 {
		hotels = hotels[:2]
	}

	services := append([]entity.TravelService{}, hotels...)
	services = append(services, transferFor(destination))
	if tours := toursFor(destination); len(tours) > 0 {
		services = append(services, tours[0])
	}
	services = append(services, insurance)

	return services
}
