package bookingRepository

import (
	"SovicoAssistant/internal/api/booking"
	"SovicoAssistant/internal/entity"
	contextPkg "SovicoAssistant/pkg/context"
	"database/sql"
	"errors"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type CustomerDB struct {
	ID               string         `db:"id"`
	FullName         string         `db:"full_name"`
	Email            sql.NullString `db:"email"`
	Phone            string         `db:"phone"`
	IDNumber         sql.NullString `db:"id_number"`
	LoyaltyPoints    int            `db:"loyalty_points"`
	TotalBookings    int            `db:"total_bookings"`
	PreferredPayment sql.NullString `db:"preferred_payment"`
}

func (r *customerRepository) CreateCustomer(ctx context.Context, customer entity.Customer) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryCreateCustomer, customer)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateCustomer")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating customer")
		return err
	}

	return nil
}

func (r *customerRepository) GetCustomerByPhone(ctx context.Context, phone string, forUpdate bool) (entity.Customer, error) {
	q := queryGetCustomerByPhone
	if forUpdate {
		q = queryGetCustomerByPhoneForUpdate
	}
	return r.getCustomer(ctx, q, map[string]interface{}{"phone": phone}, "GetCustomerByPhone")
}

func (r *customerRepository) GetCustomerByEmail(ctx context.Context, email string) (entity.Customer, error) {
	return r.getCustomer(ctx, queryGetCustomerByEmail, map[string]interface{}{"email": email}, "GetCustomerByEmail")
}

func (r *customerRepository) getCustomer(ctx context.Context, q string, argsKV map[string]interface{}, op string) (entity.Customer, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var customer CustomerDB

	query, args, err := sqlx.Named(q, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " named query preparation err")
		return entity.Customer{}, err
	}

	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&customer); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Customer{}, booking.ErrCustomerNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error(op + " execution err")
		return entity.Customer{}, err
	}

	return r.makeCustomer(customer), nil
}

func (r *customerRepository) AddBooking(ctx context.Context, id string, points int) error {
	requestID := contextPkg.GetRequestID(ctx)

	query, args, err := sqlx.Named(queryAddBooking, map[string]interface{}{
		"id":     id,
		"points": points,
	})
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AddBooking named query preparation err")
		return err
	}
	query = r.q.Rebind(query)

	res, err := r.q.ExecContext(ctx, query, args...)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("AddBooking execution err")
		return err
	}

	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return booking.ErrCustomerNotFound
	}

	return nil
}

func (r *customerRepository) makeCustomer(c CustomerDB) entity.Customer {
	return entity.Customer{
		ID:               c.ID,
		FullName:         c.FullName,
		Email:            c.Email.String,
		Phone:            c.Phone,
		IDNumber:         c.IDNumber.String,
		LoyaltyPoints:    c.LoyaltyPoints,
		TotalBookings:    c.TotalBookings,
		PreferredPayment: c.PreferredPayment.String,
	}
}
