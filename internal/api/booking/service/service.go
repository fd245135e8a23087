package bookingService

import (
	"SovicoAssistant/internal/api/booking"
	bookingRepository "SovicoAssistant/internal/api/booking/repository"
	upsellService "SovicoAssistant/internal/api/upsell/service"
	verificationService "SovicoAssistant/internal/api/verification/service"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/notify"
	"SovicoAssistant/pkg/smtp"
	"SovicoAssistant/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type IBookingService interface {
	Start(ctx context.Context, flight entity.Flight) (*entity.BookingSession, string, error)
	Advance(ctx context.Context, session *entity.BookingSession, input string) (*booking.StepResult, error)
	GetCustomer(ctx context.Context, phone string) (*booking.CustomerResponse, error)
}

type bookingService struct {
	log          *logrus.Logger
	customers    bookingRepository.CustomerStore
	verification verificationService.IVerificationService
	upsell       upsellService.IUpsellService
	utils        utils.IUtils
	dispatcher   notify.IDispatcher
	mailer       smtp.ItfSmtp
	metrics      *metrics.Metrics
	now          func() time.Time
	echoCode     bool
}

type Option func(*bookingService)

func WithClock(now func() time.Time) Option {
	return func(s *bookingService) {
		s.now = now
	}
}

// WithCodeEcho controls whether the issued code is appended to the payment prompt.
func WithCodeEcho(echo bool) Option {
	return func(s *bookingService) {
		s.echoCode = echo
	}
}

// WithMailer enables booking confirmation mails for customers with an email.
func WithMailer(mailer smtp.ItfSmtp) Option {
	return func(s *bookingService) {
		s.mailer = mailer
	}
}

func NewBookingService(
	log *logrus.Logger,
	customers bookingRepository.CustomerStore,
	verification verificationService.IVerificationService,
	upsell upsellService.IUpsellService,
	utils utils.IUtils,
	dispatcher notify.IDispatcher,
	metrics *metrics.Metrics,
	opts ...Option,
) IBookingService {
	s := &bookingService{
		log:          log,
		customers:    customers,
		verification: verification,
		upsell:       upsell,
		utils:        utils,
		dispatcher:   dispatcher,
		metrics:      metrics,
		now:          time.Now,
		echoCode:     true,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
