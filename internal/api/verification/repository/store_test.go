package verificationRepository

import (
	"SovicoAssistant/internal/entity"
	redisPkg "SovicoAssistant/pkg/redis"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stores(t *testing.T) map[string]Store {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]Store{
		"memory": NewMemoryStore(),
		"redis":  NewRedisStore(redisPkg.NewWithClient(client)),
	}
}

func newRecord(phone string, now time.Time) entity.VerificationRecord {
	return entity.VerificationRecord{
		Phone:     phone,
		CodeHash:  "hash-" + phone,
		Purpose:   entity.PurposePayment,
		CreatedAt: now,
		ExpiresAt: now.Add(5 * time.Minute),
	}
}

func TestAttemptCountsAndLocks(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().Truncate(time.Millisecond)
			require.NoError(t, store.Save(ctx, newRecord("0912345678", now)))

			for i := 1; i <= 3; i++ {
				rec, err := store.Attempt(ctx, "0912345678", now, 3)
				require.NoError(t, err)
				assert.Equal(t, i, rec.Attempts)
				assert.Equal(t, "hash-0912345678", rec.CodeHash)
				assert.Equal(t, entity.PurposePayment, rec.Purpose)
				assert.True(t, rec.ExpiresAt.Equal(now.Add(5*time.Minute)))
			}

			_, err := store.Attempt(ctx, "0912345678", now, 3)
			assert.ErrorIs(t, err, ErrAttemptsExhausted)

			_, err = store.Attempt(ctx, "0912345678", now, 3)
			assert.ErrorIs(t, err, ErrRecordNotFound)
		})
	}
}

func TestAttemptExpiry(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().Truncate(time.Millisecond)
			require.NoError(t, store.Save(ctx, newRecord("0901234567", now)))

			_, err := store.Attempt(ctx, "0901234567", now.Add(5*time.Minute), 3)
			require.NoError(t, err, "the expiry instant itself is still valid")

			_, err = store.Attempt(ctx, "0901234567", now.Add(5*time.Minute+time.Millisecond), 3)
			assert.ErrorIs(t, err, ErrRecordExpired)

			_, err = store.Attempt(ctx, "0901234567", now, 3)
			assert.ErrorIs(t, err, ErrRecordNotFound)
		})
	}
}

func TestSaveOverwritesAndResetsAttempts(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().Truncate(time.Millisecond)
			require.NoError(t, store.Save(ctx, newRecord("0907654321", now)))

			_, err := store.Attempt(ctx, "0907654321", now, 3)
			require.NoError(t, err)

			replacement := newRecord("0907654321", now)
			replacement.CodeHash = "fresh"
			require.NoError(t, store.Save(ctx, replacement))

			rec, err := store.Attempt(ctx, "0907654321", now, 3)
			require.NoError(t, err)
			assert.Equal(t, 1, rec.Attempts)
			assert.Equal(t, "fresh", rec.CodeHash)

			require.NoError(t, store.Delete(ctx, "0907654321"))
			_, err = store.Attempt(ctx, "0907654321", now, 3)
			assert.ErrorIs(t, err, ErrRecordNotFound)
		})
	}
}

func TestAttemptIsAtomicUnderConcurrency(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			now := time.Now().Truncate(time.Millisecond)
			require.NoError(t, store.Save(ctx, newRecord("0888888888", now)))

			var (
				wg      sync.WaitGroup
				mu      sync.Mutex
				counted int
			)
			for i := 0; i < 20; i++ {
				wg.Add(1)
				go func() {
					defer wg.Done()
					if _, err := store.Attempt(ctx, "0888888888", now, 3); err == nil {
						mu.Lock()
						counted++
						mu.Unlock()
					}
				}()
			}
			wg.Wait()

			assert.Equal(t, 3, counted)
		})
	}
}
