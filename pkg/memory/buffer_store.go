package memory

import (
	"context"
	"sync"

	"github.com/8bitsats/Agentic-DNA/pkg/interfaces"
)

// BufferStore implements an in-memory outcome store, useful for tests
// and single-process deployments
type BufferStore struct {
	mu       sync.RWMutex
	outcomes map[string][]interfaces.Outcome
}

// NewBufferStore creates a new in-memory outcome store
func NewBufferStore() *BufferStore {
	return &BufferStore{
		outcomes: make(map[string][]interfaces.Outcome),
	}
}

// WriteOutcome appends an outcome to the conversation's buffer
func (b *BufferStore) WriteOutcome(ctx context.Context, outcome interfaces.Outcome) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outcomes[outcome.ConversationID] = append(b.outcomes[outcome.ConversationID], outcome)
	return nil
}

// Outcomes retrieves up to limit recent outcomes for a conversation,
// oldest first
func (b *BufferStore) Outcomes(ctx context.Context, conversationID string, limit int) ([]interfaces.Outcome, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	stored := b.outcomes[conversationID]
	if limit > 0 && len(stored) > limit {
		stored = stored[len(stored)-limit:]
	}

	out := make([]interfaces.Outcome, len(stored))
	copy(out, stored)
	return out, nil
}

// Clear removes all outcomes for a conversation
func (b *BufferStore) Clear(ctx context.Context, conversationID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.outcomes, conversationID)
	return nil
}
