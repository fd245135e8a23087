package chatService

import (
	bookingService "SovicoAssistant/internal/api/booking/service"
	catalogService "SovicoAssistant/internal/api/catalog/service"
	"SovicoAssistant/internal/api/chat"
	chatRepository "SovicoAssistant/internal/api/chat/repository"
	intentService "SovicoAssistant/internal/api/intent/service"
	upsellService "SovicoAssistant/internal/api/upsell/service"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/nlp"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
	"time"
)

type IChatService interface {
	ProcessMessage(ctx context.Context, userID string, message string) (*chat.ChatResponse, error)
	GetContext(ctx context.Context, userID string) (*entity.ConversationContext, error)
	ResetContext(ctx context.Context, userID string) error
}

type chatService struct {
	log         *logrus.Logger
	store       chatRepository.ContextStore
	classifier  intentService.IClassifierService
	booking     bookingService.IBookingService
	catalog     catalogService.ICatalogService
	upsell      upsellService.IUpsellService
	extractor   nlp.IntentExtractor
	synthesizer nlp.ResponseSynthesizer
	rules       nlp.IntentExtractor
	metrics     *metrics.Metrics
	now         func() time.Time
}

type Option func(*chatService)

func WithClock(now func() time.Time) Option {
	return func(s *chatService) {
		s.now = now
	}
}

// WithExtractor replaces the deterministic extractor, e.g. with an
// nlp.FallbackExtractor around a model-backed one.
func WithExtractor(extractor nlp.IntentExtractor) Option {
	return func(s *chatService) {
		s.extractor = extractor
	}
}

func WithSynthesizer(synthesizer nlp.ResponseSynthesizer) Option {
	return func(s *chatService) {
		s.synthesizer = synthesizer
	}
}

func NewChatService(
	log *logrus.Logger,
	store chatRepository.ContextStore,
	classifier intentService.IClassifierService,
	booking bookingService.IBookingService,
	catalog catalogService.ICatalogService,
	upsell upsellService.IUpsellService,
	metrics *metrics.Metrics,
	opts ...Option,
) IChatService {
	rules := nlp.NewRuleExtractor()

	s := &chatService{
		log:         log,
		store:       store,
		classifier:  classifier,
		booking:     booking,
		catalog:     catalog,
		upsell:      upsell,
		extractor:   rules,
		synthesizer: nlp.TemplateSynthesizer{},
		rules:       rules,
		metrics:     metrics,
		now:         time.Now,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// failure marks an error raised by a downstream capability during a turn.
type failure struct {
	capability string
	err        error
}

func (f *failure) Error() string {
	return f.capability + ": " + f.err.Error()
}

func (f *failure) Unwrap() []error {
	return []error{chat.ErrCapability, f.err}
}

func fail(capability string, err error) error {
	return &failure{capability: capability, err: err}
}

// persistence says how a turn's working copy is written back.
type persistence int

const (
	// saveContext writes the whole context.
	saveContext persistence = iota
	// saveSession writes only booking_session; removed when it is nil.
	saveSession
)

// turn is the outcome of routing one message.
type turn struct {
	agent       chat.AgentType
	intent      string
	confidence  float64
	reply       string
	suggestions []string
	persist     persistence
	// afterSave runs only once the working copy is stored.
	afterSave func(ctx context.Context)
}
