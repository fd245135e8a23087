package intentService

import "sync"

const historySize = 3

// HistoryStore keeps the last few messages per user. It is diagnostic only;
// no scorer reads it.
type HistoryStore interface {
	Append(userID string, message string)
	Recent(userID string) []string
}

type memoryHistory struct {
	mu    sync.Mutex
	size  int
	items map[string][]string
}

func NewMemoryHistory(size int) HistoryStore {
	return &memoryHistory{
		size:  size,
		items: make(map[string][]string),
	}
}

func (h *memoryHistory) Append(userID string, message string) {
	if userID == "" {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	msgs := append(h.items[userID], message)
	if len(msgs) > h.size {
		msgs = msgs[len(msgs)-h.size:]
	}
	h.items[userID] = msgs
}

func (h *memoryHistory) Recent(userID string) []string {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]string, len(h.items[userID]))
	copy(out, h.items[userID])
	return out
}
