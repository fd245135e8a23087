package bookingService

import (
	"SovicoAssistant/internal/api/booking"
	bookingRepository "SovicoAssistant/internal/api/booking/repository"
	"SovicoAssistant/internal/api/upsell"
	upsellService "SovicoAssistant/internal/api/upsell/service"
	verificationRepository "SovicoAssistant/internal/api/verification/repository"
	verificationService "SovicoAssistant/internal/api/verification/service"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/bcrypt"
	"SovicoAssistant/pkg/log"
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/notify"
	"SovicoAssistant/pkg/smtp"
	"SovicoAssistant/pkg/utils"
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cryptoBcrypt "golang.org/x/crypto/bcrypt"
)

type recordingMailer struct {
	mu   sync.Mutex
	sent []smtp.BookingConfirmation
}

func (m *recordingMailer) SendBookingConfirmation(c smtp.BookingConfirmation) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, c)
	return nil
}

type testDeps struct {
	svc       IBookingService
	customers bookingRepository.CustomerStore
	mailer    *recordingMailer
}

func newTestService(t *testing.T) testDeps {
	t.Helper()

	logger := log.Discard()
	m := metrics.NewNoop()
	u := utils.New()

	verifier := verificationService.NewVerificationService(
		logger,
		verificationRepository.NewMemoryStore(),
		bcrypt.NewWithCost(cryptoBcrypt.MinCost),
		u,
		notify.Inline{},
		notify.LogSender{Log: logger},
		m,
	)
	customers := bookingRepository.NewMemoryStore(bookingRepository.SeedCustomers()...)
	mailer := &recordingMailer{}

	svc := NewBookingService(
		logger,
		customers,
		verifier,
		upsellService.NewUpsellService(logger),
		u,
		notify.Inline{},
		m,
		WithMailer(mailer),
	)

	return testDeps{svc: svc, customers: customers, mailer: mailer}
}

func testFlight() entity.Flight {
	return entity.Flight{
		FlightID: "VJ112",
		Airline:  "VietJet Air",
		FromCity: "Hà Nội",
		ToCity:   "Đà Nẵng",
		FromCode: "HAN",
		ToCode:   "DAD",
		Date:     "2025-03-16",
		Time:     "05:45",
		Price:    decimal.NewFromInt(1812000),
	}
}

// advanceTo walks a fresh session through the given inputs, failing on any non-advancing step.
func advanceTo(t *testing.T, svc IBookingService, inputs ...string) *entity.BookingSession {
	t.Helper()

	session, _, err := svc.Start(context.Background(), testFlight())
	require.NoError(t, err)

	for _, in := range inputs {
		res, err := svc.Advance(context.Background(), session, in)
		require.NoError(t, err)
		require.Equal(t, booking.OutcomeAdvanced, res.Outcome, res.Message)
		session = res.Session
	}
	return session
}

func TestPhoneValidation(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"0987654321", true},
		{" 0987654321 ", true},
		{"098-765-4321", true},
		{"098 765 4321", true},
		{"1987654321", false},
		{"098765432", false},
		{"09876543210", false},
		{"09876a4321", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.valid, ValidPhone(NormalizePhone(tt.in)))
		})
	}
}

func TestParseAdditionalInfo(t *testing.T) {
	tests := []struct {
		name     string
		in       string
		idNumber string
		smsPhone string
	}{
		{"labeled both", "cccd: 123456789012345, sms: 0912345678", "123456789012345", "0912345678"},
		{"id only", "123456789012", "123456789012", ""},
		{"cmnd and sdt", "CMND 079203001234 sđt 0987654321", "079203001234", "0987654321"},
		{"bare values", "0912345678 123456789012", "123456789012", "0912345678"},
		{"no id", "sms: 0912345678", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, sms := parseAdditionalInfo(tt.in)
			assert.Equal(t, tt.idNumber, id)
			assert.Equal(t, tt.smsPhone, sms)
		})
	}
}

func TestStart(t *testing.T) {
	d := newTestService(t)

	session, message, err := d.svc.Start(context.Background(), testFlight())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(session.SessionID, "booking_"))
	assert.Equal(t, entity.StepCollectPhone, session.Step)
	assert.Equal(t, "VJ112", session.FlightInfo.FlightID)
	assert.Contains(t, message, "VietJet Air VJ112")
	assert.Contains(t, message, "1,812,000 VNĐ")

	_, _, err = d.svc.Start(context.Background(), entity.Flight{})
	assert.ErrorIs(t, err, booking.ErrNoFlightSelected)
}

func TestCollectPhoneExistingCustomer(t *testing.T) {
	d := newTestService(t)
	session := advanceTo(t, d.svc)

	res, err := d.svc.Advance(context.Background(), session, "0901234567")
	require.NoError(t, err)

	assert.Equal(t, booking.OutcomeAdvanced, res.Outcome)
	assert.True(t, res.NeedsConfirmation)
	assert.Equal(t, entity.UserTypeExisting, res.UserType)
	assert.Equal(t, entity.StepConfirmUserInfo, res.Session.Step)
	assert.Equal(t, "user_001", res.Session.CustomerID)
	assert.Equal(t, "123456789012", res.Session.ProfileIDNumber)
	assert.Empty(t, res.Session.CCCD, "CCCD is only set from the additional info step")
	assert.Contains(t, res.Message, "Chào lại Nguyễn Văn A! (3 booking, 250 điểm)")

	assert.Equal(t, entity.StepCollectPhone, session.Step, "input session must not change")
	assert.Empty(t, session.Phone)
}

func TestCollectPhone(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		outcome    booking.Outcome
		userType   entity.UserType
		customerID string
	}{
		{"new customer", "0999999999", booking.OutcomeAdvanced, entity.UserTypeNew, ""},
		{"email fallback", "0999999999 TranThiB@gmail.com", booking.OutcomeAdvanced, entity.UserTypeExisting, "user_002"},
		{"spaced phone", "091 234 5678", booking.OutcomeAdvanced, entity.UserTypeExisting, "user_003"},
		{"too short", "09123", booking.OutcomeRejected, "", ""},
		{"letters", "call me", booking.OutcomeRejected, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := newTestService(t)
			session := advanceTo(t, d.svc)

			res, err := d.svc.Advance(context.Background(), session, tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.outcome, res.Outcome)
			assert.Equal(t, tt.userType, res.UserType)
			assert.Equal(t, tt.customerID, res.Session.CustomerID)
			if tt.outcome == booking.OutcomeRejected {
				assert.Equal(t, entity.StepCollectPhone, res.Session.Step)
				assert.Equal(t, msgInvalidPhone, res.Message)
			}
			if tt.userType == entity.UserTypeNew {
				assert.False(t, res.NeedsConfirmation)
			}
		})
	}
}

func TestConfirmUserInfo(t *testing.T) {
	tests := []struct {
		input string
		step  entity.BookingStep
		edit  bool
	}{
		{"Đúng", entity.StepCollectAdditionalInfo, false},
		{" ok ", entity.StepCollectAdditionalInfo, false},
		{"chính xác", entity.StepCollectAdditionalInfo, false},
		{"sửa", entity.StepConfirmUserInfo, true},
		{"No", entity.StepConfirmUserInfo, true},
		{"để tôi nghĩ đã", entity.StepConfirmUserInfo, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d := newTestService(t)
			session := advanceTo(t, d.svc, "0901234567")

			res, err := d.svc.Advance(context.Background(), session, tt.input)
			require.NoError(t, err)

			assert.Equal(t, tt.step, res.Session.Step)
			assert.Equal(t, tt.edit, res.EditRequested)
			switch {
			case tt.edit:
				assert.Contains(t, res.Message, "NHẬP THÔNG TIN MỚI")
			case tt.step == entity.StepConfirmUserInfo:
				assert.Equal(t, msgConfirmReprompt, res.Message)
			default:
				assert.Contains(t, res.Message, "123456789012")
			}
		})
	}
}

func TestCollectAdditionalInfo(t *testing.T) {
	d := newTestService(t)
	session := advanceTo(t, d.svc, "0901234567", "đúng")

	res, err := d.svc.Advance(context.Background(), session, "abc")
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeRejected, res.Outcome)
	assert.Equal(t, msgMissingIDNumber, res.Message)
	assert.Equal(t, entity.StepCollectAdditionalInfo, res.Session.Step)

	res, err = d.svc.Advance(context.Background(), session, "cccd: 123456789012345, sms: 0912345678")
	require.NoError(t, err)

	assert.Equal(t, booking.OutcomeAdvanced, res.Outcome)
	assert.Equal(t, entity.StepVerifySMS, res.Session.Step)
	assert.Equal(t, "123456789012345", res.Session.CCCD)
	assert.Equal(t, "0912345678", res.Session.SMSPhone)
	assert.Equal(t, "SOVICO20250316VJ112", res.Session.BookingRef)
	require.NotNil(t, res.Session.SMSCode)
	assert.Regexp(t, `^\d{6}$`, res.Session.SMSCode.Code)
	assert.Contains(t, res.Message, "******5678")
	assert.Contains(t, res.Message, "📝 **Mã test:** "+res.Session.SMSCode.Code)
}

func TestCollectAdditionalInfoDefaultsSMSPhone(t *testing.T) {
	d := newTestService(t)
	session := advanceTo(t, d.svc, "0901234567", "đúng", "123456789012")

	assert.Equal(t, "0901234567", session.SMSPhone)
	assert.Equal(t, entity.StepVerifySMS, session.Step)
}

func TestVerifySMSAttemptBound(t *testing.T) {
	d := newTestService(t)
	session := advanceTo(t, d.svc, "0901234567", "đúng", "cccd: 123456789012345, sms: 0912345678")
	code := session.SMSCode.Code

	for i, left := range []int{2, 1, 0} {
		res, err := d.svc.Advance(context.Background(), session, "000000")
		require.NoError(t, err)
		assert.Equal(t, booking.OutcomeRejected, res.Outcome, "attempt %d", i+1)
		assert.Equal(t, left, res.AttemptsLeft)
		session = res.Session
	}

	res, err := d.svc.Advance(context.Background(), session, code)
	require.NoError(t, err)

	assert.Equal(t, booking.OutcomeRejected, res.Outcome)
	assert.False(t, res.Completed)
	assert.Equal(t, entity.StepVerifySMS, res.Session.Step)
	assert.Contains(t, res.Message, "gửi lại")
}

func TestVerifySMSMalformedInputKeepsAttempts(t *testing.T) {
	d := newTestService(t)
	session := advanceTo(t, d.svc, "0901234567", "đúng", "123456789012")

	res, err := d.svc.Advance(context.Background(), session, "mã là abc")
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeRejected, res.Outcome)
	assert.Equal(t, msgMalformedCode, res.Message)

	res, err = d.svc.Advance(context.Background(), res.Session, "000000")
	require.NoError(t, err)
	assert.Equal(t, 2, res.AttemptsLeft)
}

func TestVerifySMSResend(t *testing.T) {
	d := newTestService(t)
	session := advanceTo(t, d.svc, "0901234567", "đúng", "123456789012")

	for i := 0; i < 3; i++ {
		res, err := d.svc.Advance(context.Background(), session, "000000")
		require.NoError(t, err)
		session = res.Session
	}

	res, err := d.svc.Advance(context.Background(), session, "Gửi lại mã giúp tôi")
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeResent, res.Outcome)
	assert.Equal(t, entity.StepVerifySMS, res.Session.Step)
	require.NotNil(t, res.Session.SMSCode)

	done, err := d.svc.Advance(context.Background(), res.Session, res.Session.SMSCode.Code)
	require.NoError(t, err)
	assert.True(t, done.Completed)
}

func TestVerifySMSCompletes(t *testing.T) {
	d := newTestService(t)
	session := advanceTo(t, d.svc, "0901234567", "đúng", "cccd: 123456789012345, sms: 0912345678")

	res, err := d.svc.Advance(context.Background(), session, "Mã của tôi: "+session.SMSCode.Code)
	require.NoError(t, err)

	require.True(t, res.Completed)
	assert.Equal(t, booking.OutcomeAdvanced, res.Outcome)
	assert.Equal(t, entity.StepCompleted, res.Session.Step)
	assert.Equal(t, ConfirmationCode(session.SessionID), res.ConfirmationCode)
	assert.Contains(t, res.Message, "Mã xác nhận: "+res.ConfirmationCode)

	require.NotNil(t, res.Booking)
	assert.Equal(t, "Hà Nội", res.Booking.TravelInfo.Origin)
	assert.Equal(t, "Đà Nẵng", res.Booking.TravelInfo.Destination)
	assert.Equal(t, "SOVICO20250316VJ112", res.Booking.BookingRef)
	assert.Equal(t, "123456789012345", res.Booking.CCCD)
	assert.Equal(t, "VJ112", res.Booking.FlightDetails.FlightID)

	require.NotNil(t, res.Upsell)
	assert.Equal(t, upsell.DestinationBeach, res.Upsell.DestinationType)
	require.NotEmpty(t, res.Upsell.Services)
	assert.Equal(t, entity.ServiceHotel, res.Upsell.Services[0].Type)

	found, err := d.customers.FindByPhone(context.Background(), "0901234567")
	require.NoError(t, err)
	assert.Equal(t, 3, found.MustGet().TotalBookings, "profile changes wait for Commit")
	assert.Empty(t, d.mailer.sent)

	require.NotNil(t, res.Commit)
	res.Commit(context.Background())

	found, err = d.customers.FindByPhone(context.Background(), "0901234567")
	require.NoError(t, err)
	assert.Equal(t, 4, found.MustGet().TotalBookings)
	assert.Equal(t, 250+181, found.MustGet().LoyaltyPoints)

	require.Len(t, d.mailer.sent, 1)
	assert.Equal(t, "nguyenvana@gmail.com", d.mailer.sent[0].To)
	assert.Equal(t, res.ConfirmationCode, d.mailer.sent[0].ConfirmationCode)
}

func TestVerifySMSCodeSurvivesUntilCommit(t *testing.T) {
	d := newTestService(t)
	session := advanceTo(t, d.svc, "0901234567", "đúng", "123456789012")
	code := session.SMSCode.Code

	first, err := d.svc.Advance(context.Background(), session, code)
	require.NoError(t, err)
	require.True(t, first.Completed)

	// The first result is dropped, as when its session could not be stored.
	retry, err := d.svc.Advance(context.Background(), session, code)
	require.NoError(t, err)
	require.True(t, retry.Completed)
	assert.Equal(t, first.ConfirmationCode, retry.ConfirmationCode)

	retry.Commit(context.Background())

	again, err := d.svc.Advance(context.Background(), session, code)
	require.NoError(t, err)
	assert.Equal(t, booking.OutcomeRejected, again.Outcome)
	assert.False(t, again.Completed)
}

func TestAdvanceInvalidSession(t *testing.T) {
	d := newTestService(t)

	tests := []struct {
		name    string
		session *entity.BookingSession
	}{
		{"nil", nil},
		{"no id", &entity.BookingSession{Step: entity.StepCollectPhone}},
		{"unknown step", &entity.BookingSession{SessionID: "booking_X", Step: "send_sms"}},
		{"completed", &entity.BookingSession{SessionID: "booking_X", Step: entity.StepCompleted}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := d.svc.Advance(context.Background(), tt.session, "0901234567")
			require.NoError(t, err)
			assert.Equal(t, booking.OutcomeRestart, res.Outcome)
			assert.Equal(t, msgSessionInvalid, res.Message)
			assert.Nil(t, res.Session)
		})
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	d := newTestService(t)

	a := advanceTo(t, d.svc, "0901234567")
	b := advanceTo(t, d.svc, "0907654321")
	bBefore := *b

	res, err := d.svc.Advance(context.Background(), a, "đúng")
	require.NoError(t, err)

	assert.Equal(t, entity.StepCollectAdditionalInfo, res.Session.Step)
	assert.Equal(t, entity.StepConfirmUserInfo, a.Step)
	assert.Equal(t, bBefore, *b)
	assert.NotEqual(t, a.SessionID, b.SessionID)
}

func TestConfirmationCode(t *testing.T) {
	assert.Equal(t, "CONFQ8ZK3M1A", ConfirmationCode("booking_01HVQ8ZK3M1A"))
	assert.Equal(t, "CONFCDEFGH12", ConfirmationCode("booking_abcdefgh12"))
	assert.Equal(t, "CONFABC", ConfirmationCode("abc"))
}

func TestGetCustomer(t *testing.T) {
	d := newTestService(t)

	res, err := d.svc.GetCustomer(context.Background(), "090 123 4567")
	require.NoError(t, err)
	assert.Equal(t, "user_001", res.Customer.ID)

	_, err = d.svc.GetCustomer(context.Background(), "0999999999")
	assert.ErrorIs(t, err, booking.ErrCustomerNotFound)
}
