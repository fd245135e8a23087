package chatRepository

import (
	"SovicoAssistant/internal/entity"
	"errors"
	"fmt"
	"github.com/gofrs/flock"
	"golang.org/x/net/context"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"
)

const lockRetryDelay = 20 * time.Millisecond

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9_.\-]`)

type fileStore struct {
	*KeyedLock
	dir  string
	opts options
}

// NewFileStore writes one JSON file per user under dir. Writes go through a
// temp file and rename; a sidecar flock guards read-modify-write across processes.
func NewFileStore(dir string, opts ...Option) (ContextStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create context dir: %w", err)
	}

	return &fileStore{
		KeyedLock: NewKeyedLock(),
		dir:       dir,
		opts:      buildOptions(opts),
	}, nil
}

func (s *fileStore) path(userID string) string {
	return filepath.Join(s.dir, unsafeFileChars.ReplaceAllString(userID, "_")+".json")
}

func (s *fileStore) withFileLock(ctx context.Context, userID string, fn func() error) error {
	fl := flock.New(s.path(userID) + ".lock")

	locked, err := fl.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return fmt.Errorf("lock context file: %w", err)
	}
	if !locked {
		return errors.New("lock context file: not acquired")
	}
	defer fl.Unlock()

	return fn()
}

func (s *fileStore) read(userID string) (*entity.ConversationContext, error) {
	raw, err := os.ReadFile(s.path(userID))
	if errors.Is(err, fs.ErrNotExist) {
		return entity.NewConversationContext(userID), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read context file: %w", err)
	}

	c, err := decode(userID, raw, s.opts.now())
	if err != nil {
		return nil, fmt.Errorf("decode context file: %w", err)
	}
	return c, nil
}

func (s *fileStore) write(userID string, c *entity.ConversationContext) error {
	raw, err := encode(userID, c, s.opts.now())
	if err != nil {
		return fmt.Errorf("encode context: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".ctx-*")
	if err != nil {
		return fmt.Errorf("create temp context file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write temp context file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp context file: %w", err)
	}

	return os.Rename(tmp.Name(), s.path(userID))
}

func (s *fileStore) Load(ctx context.Context, userID string) (*entity.ConversationContext, error) {
	var c *entity.ConversationContext
	err := s.withFileLock(ctx, userID, func() error {
		var err error
		c, err = s.read(userID)
		return err
	})
	return c, err
}

func (s *fileStore) Save(ctx context.Context, userID string, c *entity.ConversationContext) error {
	return s.withFileLock(ctx, userID, func() error {
		return s.write(userID, c)
	})
}

func (s *fileStore) Clear(ctx context.Context, userID string) error {
	return s.withFileLock(ctx, userID, func() error {
		err := os.Remove(s.path(userID))
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	})
}

func (s *fileStore) UpdateBookingSession(ctx context.Context, userID string, fn func(*entity.BookingSession) error) error {
	return s.withFileLock(ctx, userID, func() error {
		c, err := s.read(userID)
		if err != nil {
			return err
		}
		if err := applySession(c, fn); err != nil {
			return err
		}
		return s.write(userID, c)
	})
}

func (s *fileStore) RemoveBookingSession(ctx context.Context, userID string) error {
	return s.withFileLock(ctx, userID, func() error {
		c, err := s.read(userID)
		if err != nil {
			return err
		}
		if c.BookingSession == nil {
			return nil
		}
		c.BookingSession = nil
		return s.write(userID, c)
	})
}
