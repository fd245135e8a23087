package chatRepository

import (
	"SovicoAssistant/internal/entity"
	redisPkg "SovicoAssistant/pkg/redis"
	"errors"
	"fmt"
	"golang.org/x/net/context"
)

const keyPrefix = "chat:context:"

type redisStore struct {
	*KeyedLock
	redis redisPkg.IRedis
	opts  options
}

// NewRedisStore keeps contexts as JSON under chat:context:<user_id>. The key TTL
// only reclaims space; staleness is still decided on read.
func NewRedisStore(r redisPkg.IRedis, opts ...Option) ContextStore {
	return &redisStore{
		KeyedLock: NewKeyedLock(),
		redis:     r,
		opts:      buildOptions(opts),
	}
}

func contextKey(userID string) string {
	return keyPrefix + userID
}

func (s *redisStore) Load(ctx context.Context, userID string) (*entity.ConversationContext, error) {
	raw, err := s.redis.Get(ctx, contextKey(userID))
	if errors.Is(err, redisPkg.ErrKeyNotFound) {
		return entity.NewConversationContext(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("load context: %w", err)
	}

	c, err := decode(userID, []byte(raw), s.opts.now())
	if err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}
	return c, nil
}

func (s *redisStore) Save(ctx context.Context, userID string, c *entity.ConversationContext) error {
	raw, err := encode(userID, c, s.opts.now())
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}

	if err := s.redis.Set(ctx, contextKey(userID), string(raw), entity.ContextTTL); err != nil {
		return fmt.Errorf("save context: %w", err)
	}
	return nil
}

func (s *redisStore) Clear(ctx context.Context, userID string) error {
	_, err := s.redis.Delete(ctx, contextKey(userID))
	return err
}

func (s *redisStore) UpdateBookingSession(ctx context.Context, userID string, fn func(*entity.BookingSession) error) error {
	c, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	if err := applySession(c, fn); err != nil {
		return err
	}
	return s.Save(ctx, userID, c)
}

func (s *redisStore) RemoveBookingSession(ctx context.Context, userID string) error {
	c, err := s.Load(ctx, userID)
	if err != nil {
		return err
	}
	if c.BookingSession == nil {
		return nil
	}
	c.BookingSession = nil
	return s.Save(ctx, userID, c)
}
