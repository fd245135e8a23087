package verificationRepository

import (
	"SovicoAssistant/internal/entity"
	redisPkg "SovicoAssistant/pkg/redis"
	"fmt"
	"github.com/redis/go-redis/v9"
	"golang.org/x/net/context"
	"time"
)

const keyPrefix = "verification:code:"

// records linger past expiry so a late verify reports "expired", not "missing"
const retention = 10 * time.Minute

var saveScript = redis.NewScript(`
redis.call("DEL", KEYS[1])
redis.call("HSET", KEYS[1],
	"code_hash", ARGV[1],
	"purpose", ARGV[2],
	"created_at", ARGV[3],
	"expires_at", ARGV[4],
	"attempts", 0)
redis.call("PEXPIREAT", KEYS[1], tonumber(ARGV[4]) + tonumber(ARGV[5]))
return 1
`)

const (
	attemptNotFound = 0
	attemptExpired  = 1
	attemptLocked   = 2
	attemptCounted  = 3
)

var attemptScript = redis.NewScript(`
if redis.call("EXISTS", KEYS[1]) == 0 then
	return {0}
end
local expires = tonumber(redis.call("HGET", KEYS[1], "expires_at"))
if tonumber(ARGV[1]) > expires then
	redis.call("DEL", KEYS[1])
	return {1}
end
local attempts = redis.call("HINCRBY", KEYS[1], "attempts", 1)
if attempts > tonumber(ARGV[2]) then
	redis.call("DEL", KEYS[1])
	return {2}
end
local f = redis.call("HMGET", KEYS[1], "code_hash", "purpose", "created_at", "expires_at")
return {3, attempts, f[1], f[2], f[3], f[4]}
`)

type redisStore struct {
	redis redisPkg.IRedis
}

func NewRedisStore(r redisPkg.IRedis) Store {
	return &redisStore{redis: r}
}

func key(phone string) string {
	return keyPrefix + phone
}

func (s *redisStore) Save(ctx context.Context, record entity.VerificationRecord) error {
	_, err := s.redis.RunScript(ctx, saveScript, []string{key(record.Phone)},
		record.CodeHash,
		string(record.Purpose),
		record.CreatedAt.UnixMilli(),
		record.ExpiresAt.UnixMilli(),
		retention.Milliseconds(),
	)
	return err
}

func (s *redisStore) Attempt(ctx context.Context, phone string, now time.Time, maxAttempts int) (entity.VerificationRecord, error) {
	res, err := s.redis.RunScript(ctx, attemptScript, []string{key(phone)}, now.UnixMilli(), maxAttempts)
	if err != nil {
		return entity.VerificationRecord{}, err
	}

	values, ok := res.([]interface{})
	if !ok || len(values) == 0 {
		return entity.VerificationRecord{}, fmt.Errorf("unexpected attempt script reply %T", res)
	}

	switch toInt64(values[0]) {
	case attemptNotFound:
		return entity.VerificationRecord{}, ErrRecordNotFound
	case attemptExpired:
		return entity.VerificationRecord{}, ErrRecordExpired
	case attemptLocked:
		return entity.VerificationRecord{}, ErrAttemptsExhausted
	case attemptCounted:
	default:
		return entity.VerificationRecord{}, fmt.Errorf("unexpected attempt status %v", values[0])
	}

	if len(values) < 6 {
		return entity.VerificationRecord{}, fmt.Errorf("short attempt script reply: %d values", len(values))
	}

	return entity.VerificationRecord{
		Phone:     phone,
		Attempts:  int(toInt64(values[1])),
		CodeHash:  toString(values[2]),
		Purpose:   entity.VerificationPurpose(toString(values[3])),
		CreatedAt: time.UnixMilli(parseInt64(toString(values[4]))),
		ExpiresAt: time.UnixMilli(parseInt64(toString(values[5]))),
	}, nil
}

func (s *redisStore) Delete(ctx context.Context, phone string) error {
	_, err := s.redis.Delete(ctx, key(phone))
	return err
}
