package bookingRepository

const (
	queryCreateCustomer = `
		INSERT INTO customers (
			id,
			full_name,
			email,
			phone,
			id_number,
			loyalty_points,
			total_bookings,
			preferred_payment
		) VALUES (
			:id,
			:full_name,
			:email,
			:phone,
			:id_number,
			:loyalty_points,
			:total_bookings,
			:preferred_payment
		)
	`

	queryGetCustomerByPhone = `
		SELECT id, full_name, email, phone, id_number, loyalty_points, total_bookings, preferred_payment
		FROM customers
		WHERE phone = :phone
	`

	queryGetCustomerByPhoneForUpdate = queryGetCustomerByPhone + ` FOR UPDATE`

	queryGetCustomerByEmail = `
		SELECT id, full_name, email, phone, id_number, loyalty_points, total_bookings, preferred_payment
		FROM customers
		WHERE LOWER(email) = LOWER(:email)
	`

	queryAddBooking = `
		UPDATE customers
		SET total_bookings = total_bookings + 1,
			loyalty_points = loyalty_points + :points
		WHERE id = :id
	`
)
