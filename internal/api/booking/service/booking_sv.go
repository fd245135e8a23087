package bookingService

import (
	"SovicoAssistant/internal/api/booking"
	"SovicoAssistant/internal/api/upsell"
	"SovicoAssistant/internal/api/verification"
	"SovicoAssistant/internal/entity"
	contextPkg "SovicoAssistant/pkg/context"
	"SovicoAssistant/pkg/smtp"
	"SovicoAssistant/pkg/utils"
	"errors"
	"fmt"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"strings"
	"time"
)

func (s *bookingService) Start(ctx context.Context, flight entity.Flight) (*entity.BookingSession, string, error) {
	if flight.IsZero() {
		return nil, "", booking.ErrNoFlightSelected
	}

	now := s.now()
	id, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to generate booking session id")
		return nil, "", err
	}

	session := &entity.BookingSession{
		SessionID:  "booking_" + id,
		Step:       entity.StepCollectPhone,
		FlightInfo: flight,
		StartedAt:  now,
	}

	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": session.SessionID,
		"flight_id":  flight.FlightID,
	}).Info("Booking session started")

	return session, startMessage(flight), nil
}

// Advance applies one input to a copy of session. The argument is never modified.
func (s *bookingService) Advance(ctx context.Context, session *entity.BookingSession, input string) (*booking.StepResult, error) {
	if !session.IsActive() || !session.Step.Valid() || session.Step == entity.StepCompleted {
		s.metrics.BookingSteps.WithLabelValues("invalid", string(booking.OutcomeRestart)).Inc()
		return &booking.StepResult{
			Outcome: booking.OutcomeRestart,
			Message: msgSessionInvalid,
		}, nil
	}

	next := session.Clone()
	var (
		result *booking.StepResult
		err    error
	)

	switch next.Step {
	case entity.StepCollectPhone:
		result, err = s.collectPhone(ctx, next, input)
	case entity.StepConfirmUserInfo:
		result, err = s.confirmUserInfo(ctx, next, input)
	case entity.StepCollectAdditionalInfo:
		result, err = s.collectAdditionalInfo(ctx, next, input)
	case entity.StepVerifySMS:
		result, err = s.verifySMS(ctx, next, input)
	case entity.StepCompleted:
		return nil, booking.ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	s.metrics.BookingSteps.WithLabelValues(string(session.Step), string(result.Outcome)).Inc()
	s.log.WithFields(logrus.Fields{
		"request_id": contextPkg.GetRequestID(ctx),
		"session_id": session.SessionID,
		"from_step":  session.Step,
		"to_step":    result.Session.Step,
		"outcome":    result.Outcome,
	}).Debug("Booking step processed")

	return result, nil
}

func rejected(session *entity.BookingSession, message string) *booking.StepResult {
	return &booking.StepResult{
		Outcome: booking.OutcomeRejected,
		Session: session,
		Message: message,
	}
}

func (s *bookingService) collectPhone(ctx context.Context, session *entity.BookingSession, input string) (*booking.StepResult, error) {
	phone, email := splitPhoneEmail(input)
	if !ValidPhone(phone) {
		return rejected(session, msgInvalidPhone), nil
	}

	customer, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}
	if customer.IsAbsent() && email != "" {
		if customer, err = s.customers.FindByEmail(ctx, email); err != nil {
			return nil, err
		}
	}

	session.Phone = phone
	session.Step = entity.StepConfirmUserInfo

	c, found := customer.Get()
	if !found {
		session.UserType = entity.UserTypeNew
		session.CustomerEmail = email
		return &booking.StepResult{
			Outcome:  booking.OutcomeAdvanced,
			Session:  session,
			Message:  msgNewUser,
			UserType: entity.UserTypeNew,
		}, nil
	}

	session.UserType = entity.UserTypeExisting
	session.CustomerID = c.ID
	session.CustomerName = c.FullName
	session.CustomerEmail = c.Email
	session.ProfileIDNumber = c.IDNumber

	return &booking.StepResult{
		Outcome:           booking.OutcomeAdvanced,
		Session:           session,
		Message:           existingUserMessage(c),
		NeedsConfirmation: true,
		UserType:          entity.UserTypeExisting,
	}, nil
}

func (s *bookingService) confirmUserInfo(_ context.Context, session *entity.BookingSession, input string) (*booking.StepResult, error) {
	switch {
	case answerIn(affirmatives, input):
		session.Step = entity.StepCollectAdditionalInfo
		return &booking.StepResult{
			Outcome:  booking.OutcomeAdvanced,
			Session:  session,
			Message:  additionalInfoMessage(session.ProfileIDNumber),
			UserType: session.UserType,
		}, nil
	case answerIn(negatives, input):
		// No step receives the new fields; the caller has to restart.
		result := rejected(session, msgEditInfo)
		result.EditRequested = true
		return result, nil
	default:
		return rejected(session, msgConfirmReprompt), nil
	}
}

func (s *bookingService) collectAdditionalInfo(ctx context.Context, session *entity.BookingSession, input string) (*booking.StepResult, error) {
	idNumber, smsPhone := parseAdditionalInfo(input)
	if idNumber == "" {
		return rejected(session, msgMissingIDNumber), nil
	}
	if smsPhone == "" {
		smsPhone = session.Phone
	}

	bookingRef := fmt.Sprintf("SOVICO%s%s", digitsOnly(session.FlightInfo.Date), session.FlightInfo.FlightID)

	sent, err := s.verification.SendCode(ctx, smsPhone, entity.PurposePayment)
	if err != nil {
		if errors.Is(err, verification.ErrInvalidPhone) {
			return rejected(session, msgInvalidPhone), nil
		}
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": session.SessionID,
			"error":      err.Error(),
		}).Error("Failed to send payment verification code")
		return rejected(session, msgSendFailed), nil
	}

	session.CCCD = idNumber
	session.SMSPhone = smsPhone
	session.BookingRef = bookingRef
	session.SMSCode = s.outstandingCode(sent)
	session.Step = entity.StepVerifySMS

	return &booking.StepResult{
		Outcome: booking.OutcomeAdvanced,
		Session: session,
		Message: s.withCodeEcho(paymentMessage(sent.Message, bookingRef), sent),
	}, nil
}

func (s *bookingService) verifySMS(ctx context.Context, session *entity.BookingSession, input string) (*booking.StepResult, error) {
	if wantsResend(input) {
		return s.resendCode(ctx, session)
	}

	code := parseCode(input)
	if code == "" {
		return rejected(session, msgMalformedCode), nil
	}

	res, err := s.verification.CheckCode(ctx, session.SMSPhone, code)
	switch {
	case errors.Is(err, verification.ErrCodeMismatch):
		result := rejected(session, "❌ "+res.Message)
		result.AttemptsLeft = res.AttemptsLeft
		return result, nil
	case errors.Is(err, verification.ErrCodeNotFound),
		errors.Is(err, verification.ErrCodeExpired),
		errors.Is(err, verification.ErrCodeExhausted):
		session.SMSCode = nil
		return rejected(session, "❌ "+res.Message+"\nGõ 'gửi lại' để nhận mã mới."), nil
	case err != nil:
		return nil, err
	}

	return s.complete(ctx, session)
}

func (s *bookingService) resendCode(ctx context.Context, session *entity.BookingSession) (*booking.StepResult, error) {
	sent, err := s.verification.SendCode(ctx, session.SMSPhone, entity.PurposePayment)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"session_id": session.SessionID,
			"error":      err.Error(),
		}).Error("Failed to resend payment verification code")
		return rejected(session, msgSendFailed), nil
	}

	session.SMSCode = s.outstandingCode(sent)

	return &booking.StepResult{
		Outcome: booking.OutcomeResent,
		Session: session,
		Message: s.withCodeEcho(paymentMessage(sent.Message, session.BookingRef), sent),
	}, nil
}

func (s *bookingService) complete(ctx context.Context, session *entity.BookingSession) (*booking.StepResult, error) {
	requestID := contextPkg.GetRequestID(ctx)
	now := s.now()

	bookingID, err := s.utils.NewULIDFromTimestamp(now)
	if err != nil {
		return nil, err
	}

	confirmation := ConfirmationCode(session.SessionID)
	flight := session.FlightInfo

	session.Step = entity.StepCompleted
	session.SMSCode = nil

	completed := &entity.CompletedBooking{
		BookingID:        bookingID,
		SessionID:        session.SessionID,
		BookingRef:       session.BookingRef,
		ConfirmationCode: confirmation,
		FlightDetails:    flight,
		TravelInfo: entity.TravelInfo{
			FromCity:    flight.FromCity,
			ToCity:      flight.ToCity,
			Origin:      flight.FromCity,
			Destination: flight.ToCity,
		},
		CCCD:        session.CCCD,
		SMSPhone:    session.SMSPhone,
		BookingDate: now,
		Status:      "confirmed",
	}

	mailed := s.mailer != nil && session.CustomerEmail != ""

	message := successMessage(confirmation, mailed)
	offer, err := s.upsell.Suggest(ctx, flight.ToCity, upsell.TripContext{Origin: flight.FromCity})
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id":  requestID,
			"destination": flight.ToCity,
			"error":       err.Error(),
		}).Warn("Upsell suggestions unavailable")
	} else {
		message += "\n\n" + offer.Message
	}

	done := session.Clone()
	commit := func(ctx context.Context) {
		s.commitBooking(ctx, done, confirmation)
	}

	return &booking.StepResult{
		Outcome:          booking.OutcomeAdvanced,
		Session:          session,
		Message:          message,
		UserType:         session.UserType,
		ConfirmationCode: confirmation,
		Completed:        true,
		Booking:          completed,
		Upsell:           offer,
		Commit:           commit,
	}, nil
}

// commitBooking runs the side effects of a completed booking. Failures are
// logged; the booking itself is already stored.
func (s *bookingService) commitBooking(ctx context.Context, session *entity.BookingSession, confirmation string) {
	requestID := contextPkg.GetRequestID(ctx)

	if err := s.verification.ConsumeCode(ctx, session.SMSPhone); err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"phone":      utils.MaskPhone(session.SMSPhone),
			"error":      err.Error(),
		}).Warn("Failed to delete used verification record")
	}

	if session.CustomerID != "" {
		if err := s.customers.RecordBooking(ctx, session.Phone, session.FlightInfo.Price); err != nil {
			s.log.WithFields(logrus.Fields{
				"request_id": requestID,
				"phone":      utils.MaskPhone(session.Phone),
				"error":      err.Error(),
			}).Warn("Failed to record booking on customer profile")
		}
	}

	s.queueConfirmationMail(session, confirmation)

	s.metrics.BookingsCompleted.Inc()
	s.log.WithFields(logrus.Fields{
		"request_id":        requestID,
		"session_id":        session.SessionID,
		"booking_ref":       session.BookingRef,
		"confirmation_code": confirmation,
	}).Info("Booking completed")
}

func (s *bookingService) queueConfirmationMail(session *entity.BookingSession, confirmation string) {
	if s.mailer == nil || session.CustomerEmail == "" {
		return
	}

	mail := smtp.BookingConfirmation{
		To:               session.CustomerEmail,
		FullName:         orNA(session.CustomerName),
		ConfirmationCode: confirmation,
		BookingRef:       session.BookingRef,
		FlightID:         session.FlightInfo.FlightID,
		Route:            session.FlightInfo.FromCity + " → " + session.FlightInfo.ToCity,
		Date:             session.FlightInfo.Date,
		Time:             session.FlightInfo.Time,
	}
	s.dispatcher.Submit("booking_confirmation", func(context.Context) error {
		return s.mailer.SendBookingConfirmation(mail)
	})
}

func (s *bookingService) outstandingCode(sent *verification.SendResult) *entity.OutstandingCode {
	code := &entity.OutstandingCode{
		ExpiresAt: s.now().Add(time.Duration(sent.ExpiresIn) * time.Second),
	}
	if s.echoCode {
		code.Code = sent.Code
	}
	return code
}

func (s *bookingService) withCodeEcho(message string, sent *verification.SendResult) string {
	if !s.echoCode {
		return message
	}
	return message + "\n\n📝 **Mã test:** " + sent.Code
}

// ConfirmationCode is CONF followed by the last 8 characters of the session id, upper-cased.
func ConfirmationCode(sessionID string) string {
	tail := sessionID
	if len(tail) > 8 {
		tail = tail[len(tail)-8:]
	}
	return "CONF" + strings.ToUpper(tail)
}

func (s *bookingService) GetCustomer(ctx context.Context, phone string) (*booking.CustomerResponse, error) {
	phone = NormalizePhone(phone)
	if !ValidPhone(phone) {
		return nil, verification.ErrInvalidPhone
	}

	customer, err := s.customers.FindByPhone(ctx, phone)
	if err != nil {
		s.log.WithFields(logrus.Fields{
			"request_id": contextPkg.GetRequestID(ctx),
			"error":      err.Error(),
		}).Error("Failed to look up customer")
		return nil, err
	}

	c, ok := customer.Get()
	if !ok {
		return nil, booking.ErrCustomerNotFound
	}

	return &booking.CustomerResponse{Customer: c}, nil
}
