package smtp

import (
	smtpPkg "net/smtp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendBookingConfirmation(t *testing.T) {
	var gotTo []string
	var gotMsg string

	s := &smtp{
		mail: "booking@sovico.vn",
		addr: "localhost:587",
		send: func(addr string, a smtpPkg.Auth, from string, to []string, msg []byte) error {
			gotTo = to
			gotMsg = string(msg)
			return nil
		},
	}

	err := s.SendBookingConfirmation(BookingConfirmation{
		To:               "nguyenvana@gmail.com",
		FullName:         "Nguyễn Văn A",
		ConfirmationCode: "CONFAB12CD34",
		BookingRef:       "SOVICO20012025VJ112",
		FlightID:         "VJ112",
		Route:            "HAN → SGN",
		Date:             "20/01/2025",
		Time:             "06:00",
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"nguyenvana@gmail.com"}, gotTo)
	assert.Contains(t, gotMsg, "Mã xác nhận: CONFAB12CD34")
	assert.Contains(t, gotMsg, "Subject: Xac nhan dat ve CONFAB12CD34")

	assert.Error(t, s.SendBookingConfirmation(BookingConfirmation{}))
}
