package entity

type Customer struct {
	ID               string `db:"id" json:"user_id"`
	FullName         string `db:"full_name" json:"full_name"`
	Email            string `db:"email" json:"email"`
	Phone            string `db:"phone" json:"phone"`
	IDNumber         string `db:"id_number" json:"id_number"`
	LoyaltyPoints    int    `db:"loyalty_points" json:"loyalty_points"`
	TotalBookings    int    `db:"total_bookings" json:"total_bookings"`
	PreferredPayment string `db:"preferred_payment" json:"preferred_payment"`
}
