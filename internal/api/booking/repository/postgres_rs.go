package bookingRepository

import (
	"SovicoAssistant/internal/api/booking"
	"SovicoAssistant/internal/entity"
	contextPkg "SovicoAssistant/pkg/context"
	"errors"
	"fmt"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type postgresStore struct {
	repo Repository
	log  *logrus.Logger
}

// NewPostgresStore adapts the sqlx repository to the booking flow.
func NewPostgresStore(repo Repository, log *logrus.Logger) CustomerStore {
	return &postgresStore{
		repo: repo,
		log:  log,
	}
}

func (s *postgresStore) FindByPhone(ctx context.Context, phone string) (mo.Option[entity.Customer], error) {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return mo.None[entity.Customer](), err
	}

	return toOption(client.Customer.GetCustomerByPhone(ctx, phone, false))
}

func (s *postgresStore) FindByEmail(ctx context.Context, email string) (mo.Option[entity.Customer], error) {
	client, err := s.repo.NewClient(false)
	if err != nil {
		return mo.None[entity.Customer](), err
	}

	return toOption(client.Customer.GetCustomerByEmail(ctx, email))
}

func (s *postgresStore) RecordBooking(ctx context.Context, phone string, fare decimal.Decimal) error {
	client, err := s.repo.NewClient(true)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rbErr := client.Rollback(); rbErr != nil {
				s.log.WithFields(logrus.Fields{
					"request_id": contextPkg.GetRequestID(ctx),
					"error":      rbErr.Error(),
				}).Error("Failed to rollback booking record")
			}
		}
	}()

	var customer entity.Customer
	customer, err = client.Customer.GetCustomerByPhone(ctx, phone, true)
	if err != nil {
		return err
	}

	if err = client.Customer.AddBooking(ctx, customer.ID, LoyaltyPoints(fare)); err != nil {
		return err
	}

	if err = client.Commit(); err != nil {
		return fmt.Errorf("commit booking record: %w", err)
	}

	return nil
}

func toOption(c entity.Customer, err error) (mo.Option[entity.Customer], error) {
	if errors.Is(err, booking.ErrCustomerNotFound) {
		return mo.None[entity.Customer](), nil
	}
	if err != nil {
		return mo.None[entity.Customer](), err
	}
	return mo.Some(c), nil
}
