package shell

import "sync"

// DefaultHistorySize bounds the in-memory command history.
const DefaultHistorySize = 500

// History keeps the most recent command lines.
type History struct {
	mu      sync.Mutex
	entries []string
	maxSize int
}

// NewHistory returns a history that keeps at most size entries.
func NewHistory(size int) *History {
	if size <= 0 {
		size = DefaultHistorySize
	}
	return &History{maxSize: size}
}

// Add records a line, dropping the oldest once full. A line equal to the
// previous one is not recorded twice.
func (h *History) Add(line string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if n := len(h.entries); n > 0 && h.entries[n-1] == line {
		return
	}
	h.entries = append(h.entries, line)
	if len(h.entries) > h.maxSize {
		h.entries = h.entries[1:]
	}
}

// Get returns the entry at index, 0 being the most recent.
func (h *History) Get(index int) string {
	h.mu.Lock()
	defer h.mu.Unlock()
	if index < 0 || index >= len(h.entries) {
		return ""
	}
	return h.entries[len(h.entries)-1-index]
}

// Entries returns a copy of the history, oldest first.
func (h *History) Entries() []string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]string(nil), h.entries...)
}
