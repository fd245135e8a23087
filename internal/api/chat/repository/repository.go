package chatRepository

import (
	"SovicoAssistant/internal/entity"
	"github.com/json-iterator/go"
	"golang.org/x/net/context"
	"time"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// ContextStore persists one ConversationContext per user. Load never returns
// a context older than entity.ContextTTL; such contexts read as empty.
type ContextStore interface {
	Load(ctx context.Context, userID string) (*entity.ConversationContext, error)
	Save(ctx context.Context, userID string, c *entity.ConversationContext) error
	Clear(ctx context.Context, userID string) error
	// UpdateBookingSession rewrites only the booking session; every other
	// field is written back as loaded.
	UpdateBookingSession(ctx context.Context, userID string, fn func(*entity.BookingSession) error) error
	RemoveBookingSession(ctx context.Context, userID string) error
	// Lock serializes turns of one user. Callers must call the returned func.
	Lock(userID string) func()
}

type Option func(*options)

type options struct {
	now func() time.Time
}

func WithClock(now func() time.Time) Option {
	return func(o *options) {
		o.now = now
	}
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// fresh applies the read-side expiry check to a decoded context.
func fresh(userID string, c *entity.ConversationContext, now time.Time) *entity.ConversationContext {
	if c == nil || c.Expired(now) {
		return entity.NewConversationContext(userID)
	}
	if c.UserID == "" {
		c.UserID = userID
	}
	return c
}

func decode(userID string, raw []byte, now time.Time) (*entity.ConversationContext, error) {
	var c entity.ConversationContext
	if err := json.Unmarshal(raw, &c); err != nil {
		return nil, err
	}
	return fresh(userID, &c, now), nil
}

func encode(userID string, c *entity.ConversationContext, now time.Time) ([]byte, error) {
	cp := *c
	cp.UserID = userID
	cp.LastUpdated = now
	return json.Marshal(&cp)
}

func applySession(c *entity.ConversationContext, fn func(*entity.BookingSession) error) error {
	session := c.BookingSession.Clone()
	if session == nil {
		session = &entity.BookingSession{}
	}
	if err := fn(session); err != nil {
		return err
	}
	c.BookingSession = session
	return nil
}
