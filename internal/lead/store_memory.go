package lead

import (
	"context"
	"sync"
)

// MemoryDraftStore keeps drafts in process memory. This is the reference
// store: no durability across restarts.
type MemoryDraftStore struct {
	mu     sync.RWMutex
	drafts map[string]Draft
}

// NewMemoryDraftStore creates an empty in-memory draft store.
func NewMemoryDraftStore() *MemoryDraftStore {
	return &MemoryDraftStore{drafts: make(map[string]Draft)}
}

// Get returns a copy of the stored draft, or (nil, nil) when absent.
func (s *MemoryDraftStore) Get(_ context.Context, conversationID string) (*Draft, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	draft, ok := s.drafts[conversationID]
	if !ok {
		return nil, nil
	}
	return &draft, nil
}

// Put stores a copy of the draft.
func (s *MemoryDraftStore) Put(_ context.Context, conversationID string, draft *Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.drafts[conversationID] = *draft
	return nil
}

// Delete removes the draft; deleting a missing draft is a no-op.
func (s *MemoryDraftStore) Delete(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, conversationID)
	return nil
}
