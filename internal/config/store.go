package config

import (
	chatRepository "SovicoAssistant/internal/api/chat/repository"
	verificationRepository "SovicoAssistant/internal/api/verification/repository"
	"SovicoAssistant/pkg/redis"
	"fmt"
	"os"
)

const defaultContextDir = "./storage/contexts"

// NewContextStore picks the conversation store from CONTEXT_STORE.
// Redis needs a client; the file store is the default.
func NewContextStore(kind string, redisServer redis.IRedis, dir string) (chatRepository.ContextStore, error) {
	switch kind {
	case "redis":
		if redisServer == nil {
			return nil, fmt.Errorf("CONTEXT_STORE=redis requires a redis connection")
		}
		return chatRepository.NewRedisStore(redisServer), nil
	case "", "file":
		if dir == "" {
			dir = os.Getenv("CONTEXT_DIR")
		}
		if dir == "" {
			dir = defaultContextDir
		}
		return chatRepository.NewFileStore(dir)
	}
	return nil, fmt.Errorf("unknown CONTEXT_STORE %q", kind)
}

func NewVerificationStore(redisServer redis.IRedis) verificationRepository.Store {
	if redisServer == nil {
		return verificationRepository.NewMemoryStore()
	}
	return verificationRepository.NewRedisStore(redisServer)
}
