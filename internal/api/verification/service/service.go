package verificationService

import (
	"SovicoAssistant/internal/api/verification"
	verificationRepository "SovicoAssistant/internal/api/verification/repository"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/bcrypt"
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/notify"
	"SovicoAssistant/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type IVerificationService interface {
	SendCode(ctx context.Context, phone string, purpose entity.VerificationPurpose) (*verification.SendResult, error)
	VerifyCode(ctx context.Context, phone string, input string) (*verification.VerifyResult, error)
	CheckCode(ctx context.Context, phone string, input string) (*verification.VerifyResult, error)
	ConsumeCode(ctx context.Context, phone string) error
}

type verificationService struct {
	log        *logrus.Logger
	store      verificationRepository.Store
	bcrypt     bcrypt.IBcrypt
	utils      utils.IUtils
	dispatcher notify.IDispatcher
	sender     notify.MessageSender
	metrics    *metrics.Metrics
	now        func() time.Time
	ttl        time.Duration
}

type Option func(*verificationService)

func WithClock(now func() time.Time) Option {
	return func(s *verificationService) {
		s.now = now
	}
}

func NewVerificationService(
	log *logrus.Logger,
	store verificationRepository.Store,
	bcrypt bcrypt.IBcrypt,
	utils utils.IUtils,
	dispatcher notify.IDispatcher,
	sender notify.MessageSender,
	metrics *metrics.Metrics,
	opts ...Option,
) IVerificationService {
	s := &verificationService{
		log:        log,
		store:      store,
		bcrypt:     bcrypt,
		utils:      utils,
		dispatcher: dispatcher,
		sender:     sender,
		metrics:    metrics,
		now:        time.Now,
		ttl:        verification.CodeTTLSeconds * time.Second,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}
