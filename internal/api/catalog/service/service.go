package catalogService

import (
	"SovicoAssistant/internal/entity"
	"github.com/samber/mo"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

// ICatalogService is the read-only inventory the assistant searches.
type ICatalogService interface {
	SearchFlights(ctx context.Context, from, to, date string) ([]entity.Flight, error)
	CheapestFlight(ctx context.Context, from, to, date string) (mo.Option[entity.Flight], error)
	SearchHotels(ctx context.Context, city, checkIn string, guests int) ([]entity.Hotel, error)
	SearchTransfers(ctx context.Context, city string) ([]entity.Transfer, error)
	FlightByID(ctx context.Context, flightID, date string) (entity.Flight, error)
}

type catalogService struct {
	log *logrus.Logger
	now func() time.Time
}

type Option func(*catalogService)

func WithClock(now func() time.Time) Option {
	return func(s *catalogService) {
		s.now = now
	}
}

func NewCatalogService(log *logrus.Logger, opts ...Option) ICatalogService {
	s := &catalogService{
		log: log,
		now: time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
