// Package memory keeps the short-term conversation history the generator is
// conditioned on: the most recent turns per conversation, oldest evicted
// first, with no cross-conversation visibility.
package memory

import (
	"context"
	"strings"
	"sync"
)

// MaxTurns bounds how many (user, assistant) pairs are retained per
// conversation. Older turns are dropped silently and never surfaced again.
const MaxTurns = 6

// Turn is one exchange, immutable once recorded.
type Turn struct {
	User      string `json:"user"`
	Assistant string `json:"assistant"`
}

// Store records and replays per-conversation history. Implementations must be
// safe for concurrent use.
type Store interface {
	// Record appends one turn, evicting the oldest once MaxTurns is reached.
	Record(ctx context.Context, conversationID, userText, assistantText string) error
	// Recent returns the retained turns in insertion order.
	Recent(ctx context.Context, conversationID string) ([]Turn, error)
}

// Render produces the deterministic transcript embedded verbatim in the
// generation prompt.
func Render(turns []Turn) string {
	if len(turns) == 0 {
		return ""
	}
	var b strings.Builder
	for _, turn := range turns {
		b.WriteString("User: ")
		b.WriteString(turn.User)
		b.WriteString("\nAssistant: ")
		b.WriteString(turn.Assistant)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

// MemoryStore is the in-process implementation. Conversations are created
// lazily on first record and live for the process lifetime.
type MemoryStore struct {
	mu    sync.RWMutex
	turns map[string][]Turn
}

// NewMemoryStore creates an empty in-memory history store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{turns: make(map[string][]Turn)}
}

// Record appends a turn, keeping only the most recent MaxTurns.
func (s *MemoryStore) Record(_ context.Context, conversationID, userText, assistantText string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	turns := append(s.turns[conversationID], Turn{User: userText, Assistant: assistantText})
	if len(turns) > MaxTurns {
		turns = turns[len(turns)-MaxTurns:]
	}
	s.turns[conversationID] = turns
	return nil
}

// Recent returns a copy of the retained turns.
func (s *MemoryStore) Recent(_ context.Context, conversationID string) ([]Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	turns := s.turns[conversationID]
	out := make([]Turn, len(turns))
	copy(out, turns)
	return out, nil
}
