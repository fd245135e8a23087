package chatService

import (
	bookingRepository "SovicoAssistant/internal/api/booking/repository"
	bookingService "SovicoAssistant/internal/api/booking/service"
	catalogService "SovicoAssistant/internal/api/catalog/service"
	"SovicoAssistant/internal/api/chat"
	chatRepository "SovicoAssistant/internal/api/chat/repository"
	intentService "SovicoAssistant/internal/api/intent/service"
	upsellService "SovicoAssistant/internal/api/upsell/service"
	verificationRepository "SovicoAssistant/internal/api/verification/repository"
	verificationService "SovicoAssistant/internal/api/verification/service"
	"SovicoAssistant/internal/entity"
	"SovicoAssistant/pkg/bcrypt"
	"SovicoAssistant/pkg/log"
	"SovicoAssistant/pkg/metrics"
	"SovicoAssistant/pkg/nlp"
	"SovicoAssistant/pkg/notify"
	"SovicoAssistant/pkg/utils"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	cryptoBcrypt "golang.org/x/crypto/bcrypt"
)

const searchMessage = "Tìm chuyến bay từ TP.HCM đến Hà Nội ngày mai"

var errCatalogDown = errors.New("catalog unavailable")

type failingCatalog struct {
	catalogService.ICatalogService
}

func (failingCatalog) SearchFlights(context.Context, string, string, string) ([]entity.Flight, error) {
	return nil, errCatalogDown
}

// flakyStore fails Save while failSave is set.
type flakyStore struct {
	chatRepository.ContextStore
	failSave bool
}

var errDiskFull = errors.New("disk full")

func (s *flakyStore) Save(ctx context.Context, userID string, c *entity.ConversationContext) error {
	if s.failSave {
		return errDiskFull
	}
	return s.ContextStore.Save(ctx, userID, c)
}

type fixture struct {
	svc       IChatService
	store     chatRepository.ContextStore
	customers bookingRepository.CustomerStore
}

func fixedNow() time.Time {
	return time.Date(2025, 3, 15, 9, 0, 0, 0, time.Local)
}

func newFixture(t *testing.T, catalog catalogService.ICatalogService) fixture {
	t.Helper()
	return buildFixture(t, catalog, nil)
}

func buildFixture(t *testing.T, catalog catalogService.ICatalogService, wrap func(chatRepository.ContextStore) chatRepository.ContextStore) fixture {
	t.Helper()

	logger := log.Discard()
	m := metrics.NewNoop()
	u := utils.New()
	upsell := upsellService.NewUpsellService(logger)

	if catalog == nil {
		catalog = catalogService.NewCatalogService(logger, catalogService.WithClock(fixedNow))
	}

	store, err := chatRepository.NewFileStore(t.TempDir(), chatRepository.WithClock(fixedNow))
	require.NoError(t, err)
	if wrap != nil {
		store = wrap(store)
	}
	customers := bookingRepository.NewMemoryStore(bookingRepository.SeedCustomers()...)

	verifier := verificationService.NewVerificationService(
		logger,
		verificationRepository.NewMemoryStore(),
		bcrypt.NewWithCost(cryptoBcrypt.MinCost),
		u,
		notify.Inline{},
		notify.LogSender{Log: logger},
		m,
	)
	booking := bookingService.NewBookingService(
		logger,
		customers,
		verifier,
		upsell,
		u,
		notify.Inline{},
		m,
	)

	svc := NewChatService(
		logger,
		store,
		intentService.NewClassifierService(logger, intentService.NewMemoryHistory(10)),
		booking,
		catalog,
		upsell,
		m,
		WithClock(fixedNow),
	)

	return fixture{svc: svc, store: store, customers: customers}
}

func (f fixture) send(t *testing.T, userID string, messages ...string) *chat.ChatResponse {
	t.Helper()

	var res *chat.ChatResponse
	for _, msg := range messages {
		var err error
		res, err = f.svc.ProcessMessage(context.Background(), userID, msg)
		require.NoError(t, err, msg)
	}
	return res
}

func TestProcessMessageRejectsBadInput(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.ProcessMessage(ctx, "u1", "   ")
	assert.ErrorIs(t, err, chat.ErrEmptyMessage)

	_, err = f.svc.ProcessMessage(ctx, "u1", strings.Repeat("á", chat.MaxMessageRunes+1))
	assert.ErrorIs(t, err, chat.ErrMessageTooLong)

	_, err = f.svc.GetContext(ctx, "u1")
	assert.ErrorIs(t, err, chat.ErrContextNotFound)
}

func TestSearchTurn(t *testing.T) {
	f := newFixture(t, nil)

	res := f.send(t, "u1", searchMessage)
	assert.Equal(t, chat.AgentSearch, res.Context.AgentType)
	assert.Contains(t, res.Response, "✈️ Tìm thấy")
	assert.LessOrEqual(t, len(res.Suggestions), maxSuggestions)

	c, err := f.svc.GetContext(context.Background(), "u1")
	require.NoError(t, err)
	require.True(t, c.LastSearchResult.HasFlights())
	assert.Equal(t, nlp.CityHoChiMinh, c.LastSearchResult.From)
	assert.Equal(t, nlp.CityHanoi, c.LastSearchResult.To)
	assert.Equal(t, "2025-03-16", c.LastSearchResult.Date)
	assert.Equal(t, nlp.CityHanoi, c.CurrentDestination)
	assert.Nil(t, c.BookingSession)
}

func TestBookThisStartsSession(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, "u1", searchMessage)

	c, err := f.svc.GetContext(context.Background(), "u1")
	require.NoError(t, err)
	first := c.LastSearchResult.Flights[0]

	res := f.send(t, "u1", "Đặt vé này")
	assert.Equal(t, chat.AgentBooking, res.Context.AgentType)
	assert.Equal(t, entity.StepCollectPhone, res.Context.Step)
	assert.NotEmpty(t, res.Context.SessionID)
	assert.GreaterOrEqual(t, res.Context.Confidence, 0.9)

	c, err = f.svc.GetContext(context.Background(), "u1")
	require.NoError(t, err)
	require.NotNil(t, c.BookingSession)
	assert.Equal(t, first.FlightID, c.BookingSession.FlightInfo.FlightID)
	assert.Equal(t, first.Time, c.BookingSession.FlightInfo.Time)
}

func TestAmbiguousBookingAsksForConfirmation(t *testing.T) {
	f := newFixture(t, nil)

	res := f.send(t, "u1", "tôi muốn đặt")
	assert.Equal(t, chat.AgentConfirm, res.Context.AgentType)
	assert.Empty(t, res.Context.SessionID)

	c, err := f.svc.GetContext(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, c.BookingSession)
}

func TestCancelKeepsSearch(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, "u1", searchMessage, "Đặt vé này")

	res := f.send(t, "u1", "❌ Hủy đặt vé")
	assert.Equal(t, chat.AgentCancel, res.Context.AgentType)
	assert.Empty(t, res.Context.SessionID)

	c, err := f.svc.GetContext(context.Background(), "u1")
	require.NoError(t, err)
	assert.Nil(t, c.BookingSession)
	assert.True(t, c.LastSearchResult.HasFlights())
	assert.Equal(t, nlp.CityHoChiMinh, c.Slots.Locations.From)
	assert.Equal(t, nlp.CityHanoi, c.Slots.Locations.To)
}

func TestBookingFlowCompletes(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.send(t, "u1", searchMessage, "Đặt vé này")

	res := f.send(t, "u1", "0911222333")
	assert.Equal(t, entity.StepConfirmUserInfo, res.Context.Step)
	assert.Equal(t, []string{"Đúng", "Sửa", cancelSuggestion}, res.Suggestions)

	res = f.send(t, "u1", "Đúng")
	assert.Equal(t, entity.StepCollectAdditionalInfo, res.Context.Step)

	res = f.send(t, "u1", "CCCD: 001234567890, SMS: 0911222333")
	assert.Equal(t, entity.StepVerifySMS, res.Context.Step)

	c, err := f.svc.GetContext(ctx, "u1")
	require.NoError(t, err)
	require.NotNil(t, c.BookingSession.SMSCode)
	sessionID := c.BookingSession.SessionID

	res = f.send(t, "u1", c.BookingSession.SMSCode.Code)
	assert.Equal(t, chat.AgentBooking, res.Context.AgentType)
	assert.Empty(t, res.Context.SessionID)
	assert.Contains(t, res.Response, bookingService.ConfirmationCode(sessionID))

	c, err = f.svc.GetContext(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, c.BookingSession)
	require.NotNil(t, c.CompletedBooking)
	assert.Equal(t, sessionID, c.CompletedBooking.SessionID)
	assert.Equal(t, c.CompletedBooking.TravelInfo.Origin, c.CurrentOrigin)
	assert.Equal(t, c.CompletedBooking.TravelInfo.Destination, c.CurrentDestination)
	assert.Equal(t, "001234567890", c.CompletedBooking.CCCD)
}

func TestFailedSaveDefersBookingEffects(t *testing.T) {
	flaky := &flakyStore{}
	f := buildFixture(t, nil, func(store chatRepository.ContextStore) chatRepository.ContextStore {
		flaky.ContextStore = store
		return flaky
	})
	ctx := context.Background()

	f.send(t, "u1", searchMessage, "Đặt vé này", "0901234567", "Đúng", "CCCD: 001234567890")

	c, err := f.svc.GetContext(ctx, "u1")
	require.NoError(t, err)
	require.Equal(t, entity.StepVerifySMS, c.BookingSession.Step)
	code := c.BookingSession.SMSCode.Code

	flaky.failSave = true
	_, err = f.svc.ProcessMessage(ctx, "u1", code)
	require.ErrorIs(t, err, chat.ErrTurnAborted)

	customer, err := f.customers.FindByPhone(ctx, "0901234567")
	require.NoError(t, err)
	assert.Equal(t, 3, customer.MustGet().TotalBookings)

	c, err = f.svc.GetContext(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.StepVerifySMS, c.BookingSession.Step)
	assert.Nil(t, c.CompletedBooking)

	flaky.failSave = false
	res := f.send(t, "u1", code)
	assert.Contains(t, res.Response, bookingService.ConfirmationCode(c.BookingSession.SessionID))

	customer, err = f.customers.FindByPhone(ctx, "0901234567")
	require.NoError(t, err)
	assert.Equal(t, 4, customer.MustGet().TotalBookings)

	c, err = f.svc.GetContext(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, c.BookingSession)
	require.NotNil(t, c.CompletedBooking)
}

func TestCapabilityFailureLeavesContextUntouched(t *testing.T) {
	logger := log.Discard()
	f := newFixture(t, failingCatalog{catalogService.NewCatalogService(logger, catalogService.WithClock(fixedNow))})
	ctx := context.Background()

	seed := entity.NewConversationContext("u1")
	seed.Slots.Date = "ngày mai"
	seed.CurrentOrigin = nlp.CityDaNang
	require.NoError(t, f.store.Save(ctx, "u1", seed))

	before, err := f.store.Load(ctx, "u1")
	require.NoError(t, err)

	res := f.send(t, "u1", searchMessage)
	assert.Equal(t, chat.AgentError, res.Context.AgentType)
	assert.Equal(t, msgApology, res.Response)
	assert.Equal(t, errorSuggestions(), res.Suggestions)

	after, err := f.store.Load(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestServiceInfoUsesCurrentTrip(t *testing.T) {
	f := newFixture(t, nil)
	f.send(t, "u1", searchMessage)

	res := f.send(t, "u1", "cho tôi xem khách sạn")
	assert.Equal(t, chat.AgentServiceInfo, res.Context.AgentType)
	assert.Contains(t, res.Response, nlp.CityHanoi)

	c, err := f.svc.GetContext(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, entity.SearchKindFlights, c.LastSearchResult.Kind, "hotel lookups keep the flight search")
}

func TestResetContext(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.send(t, "u1", searchMessage)
	require.NoError(t, f.svc.ResetContext(ctx, "u1"))

	_, err := f.svc.GetContext(ctx, "u1")
	assert.ErrorIs(t, err, chat.ErrContextNotFound)
}

func TestUsersAreIsolated(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	f.send(t, "u1", searchMessage, "Đặt vé này")
	f.send(t, "u2", "xin chào")

	c, err := f.svc.GetContext(ctx, "u2")
	require.NoError(t, err)
	assert.Nil(t, c.BookingSession)
	assert.Nil(t, c.LastSearchResult)
}
