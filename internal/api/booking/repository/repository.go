package bookingRepository

import (
	"SovicoAssistant/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/samber/mo"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// CustomerStore is what the booking flow needs from customer profiles.
type CustomerStore interface {
	FindByPhone(ctx context.Context, phone string) (mo.Option[entity.Customer], error)
	FindByEmail(ctx context.Context, email string) (mo.Option[entity.Customer], error)
	RecordBooking(ctx context.Context, phone string, fare decimal.Decimal) error
}

type SQLExecutor interface {
	sqlx.ExtContext
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Customer: &customerRepository{q: sqlExecutor, log: r.log},
		Commit:   commitFunc,
		Rollback: rollbackFunc,
	}, nil
}

type Client struct {
	Customer interface {
		GetCustomerByPhone(ctx context.Context, phone string, forUpdate bool) (entity.Customer, error)
		GetCustomerByEmail(ctx context.Context, email string) (entity.Customer, error)
		AddBooking(ctx context.Context, id string, points int) error
		CreateCustomer(ctx context.Context, customer entity.Customer) error
	}

	Commit   func() error
	Rollback func() error
}

type customerRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

// LoyaltyPoints is one point per 10,000 VND of fare, rounded down.
func LoyaltyPoints(fare decimal.Decimal) int {
	return int(fare.Div(decimal.NewFromInt(10000)).Floor().IntPart())
}
