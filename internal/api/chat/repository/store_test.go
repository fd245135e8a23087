package chatRepository

import (
	"SovicoAssistant/internal/entity"
	redisPkg "SovicoAssistant/pkg/redis"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type clock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type storeFactory func(t *testing.T, clk *clock) ContextStore

func stores() map[string]storeFactory {
	return map[string]storeFactory{
		"file": func(t *testing.T, clk *clock) ContextStore {
			s, err := NewFileStore(t.TempDir(), WithClock(clk.Now))
			require.NoError(t, err)
			return s
		},
		"redis": func(t *testing.T, clk *clock) ContextStore {
			mr := miniredis.RunT(t)
			client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
			t.Cleanup(func() { _ = client.Close() })
			return NewRedisStore(redisPkg.NewWithClient(client), WithClock(clk.Now))
		},
	}
}

func seededContext() *entity.ConversationContext {
	c := entity.NewConversationContext("user-1")
	c.Slots.Locations = entity.Locations{From: "Hà Nội"}
	c.Slots.Date = "ngày mai"
	c.LastSearchResult = &entity.SearchResult{
		Kind: entity.SearchKindFlights,
		From: "Hồ Chí Minh",
		To:   "Hà Nội",
		Flights: []entity.Flight{{
			FlightID: "VJ112",
			FromCity: "Hồ Chí Minh",
			ToCity:   "Hà Nội",
			Price:    decimal.NewFromInt(1665000),
		}},
		SearchedAt: time.Date(2025, 3, 15, 8, 0, 0, 0, time.UTC),
	}
	c.CompletedBooking = &entity.CompletedBooking{BookingID: "b-1", ConfirmationCode: "CONFAAAA1111"}
	return c
}

func TestStoreRoundTrip(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			clk := &clock{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
			s := factory(t, clk)
			ctx := context.Background()

			empty, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			assert.Equal(t, "user-1", empty.UserID)
			assert.Nil(t, empty.BookingSession)

			require.NoError(t, s.Save(ctx, "user-1", seededContext()))

			got, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			assert.Equal(t, "Hà Nội", got.Slots.Locations.From)
			assert.True(t, clk.Now().Equal(got.LastUpdated))
			require.True(t, got.LastSearchResult.HasFlights())
			assert.Equal(t, "VJ112", got.LastSearchResult.Flights[0].FlightID)

			require.NoError(t, s.Clear(ctx, "user-1"))
			cleared, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			assert.Nil(t, cleared.LastSearchResult)
		})
	}
}

func TestStoreExpiry(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			clk := &clock{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
			s := factory(t, clk)
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, "user-1", seededContext()))

			clk.Advance(entity.ContextTTL)
			stillFresh, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			assert.NotNil(t, stillFresh.LastSearchResult)

			clk.Advance(time.Second)
			expired, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			assert.Equal(t, "user-1", expired.UserID)
			assert.Nil(t, expired.LastSearchResult)
			assert.Nil(t, expired.CompletedBooking)
		})
	}
}

func TestUpdateBookingSessionKeepsOtherFields(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			clk := &clock{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
			s := factory(t, clk)
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, "user-1", seededContext()))
			before, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			locationsBefore, err := json.Marshal(before.Slots.Locations)
			require.NoError(t, err)
			searchBefore, err := json.Marshal(before.LastSearchResult)
			require.NoError(t, err)

			err = s.UpdateBookingSession(ctx, "user-1", func(b *entity.BookingSession) error {
				b.SessionID = "booking_01HVQ8ZK3M1A"
				b.Step = entity.StepCollectPhone
				return nil
			})
			require.NoError(t, err)

			after, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			require.NotNil(t, after.BookingSession)
			assert.Equal(t, entity.StepCollectPhone, after.BookingSession.Step)

			locationsAfter, err := json.Marshal(after.Slots.Locations)
			require.NoError(t, err)
			searchAfter, err := json.Marshal(after.LastSearchResult)
			require.NoError(t, err)
			assert.Equal(t, locationsBefore, locationsAfter)
			assert.Equal(t, searchBefore, searchAfter)
			assert.Equal(t, "CONFAAAA1111", after.CompletedBooking.ConfirmationCode)

			require.NoError(t, s.RemoveBookingSession(ctx, "user-1"))
			removed, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			assert.Nil(t, removed.BookingSession)
			assert.Equal(t, "Hà Nội", removed.Slots.Locations.From)
		})
	}
}

func TestUpdateBookingSessionErrorLeavesContext(t *testing.T) {
	for name, factory := range stores() {
		t.Run(name, func(t *testing.T) {
			clk := &clock{now: time.Date(2025, 3, 15, 10, 0, 0, 0, time.UTC)}
			s := factory(t, clk)
			ctx := context.Background()

			require.NoError(t, s.Save(ctx, "user-1", seededContext()))

			boom := errors.New("boom")
			err := s.UpdateBookingSession(ctx, "user-1", func(b *entity.BookingSession) error {
				b.Step = entity.StepVerifySMS
				return boom
			})
			assert.ErrorIs(t, err, boom)

			got, err := s.Load(ctx, "user-1")
			require.NoError(t, err)
			assert.Nil(t, got.BookingSession)
		})
	}
}

func TestKeyedLockSerializesPerKey(t *testing.T) {
	l := NewKeyedLock()

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		active  int
		maxSeen int
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := l.Lock("user-1")
			defer unlock()

			mu.Lock()
			active++
			if active > maxSeen {
				maxSeen = active
			}
			mu.Unlock()

			time.Sleep(time.Millisecond)

			mu.Lock()
			active--
			mu.Unlock()
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, maxSeen)
	assert.Equal(t, 0, l.size())
}

func TestKeyedLockIndependentKeys(t *testing.T) {
	l := NewKeyedLock()

	unlockA := l.Lock("a")
	done := make(chan struct{})
	go func() {
		unlock := l.Lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("lock on b blocked behind a")
	}

	unlockA()
	unlockA()
	assert.Equal(t, 0, l.size())
}
