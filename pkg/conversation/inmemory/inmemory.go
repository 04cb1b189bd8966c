// Package inmemory provides a map-and-slice backed conversation store.
// Used for tests and credential-free dev runs.
package inmemory

import (
	"context"
	"sync"

	"github.com/rostrumlabs/rostrum/pkg/conversation"
)

// Store implements conversation.Store in process memory.
type Store struct {
	// mu guards turns and debates; appends happen on the request path
	// while reads come from history fetches and the API.
	mu      sync.RWMutex
	turns   []conversation.Turn
	debates []conversation.DebateRecord
}

// NewStore creates an empty in-memory store.
func NewStore() *Store {
	return &Store{}
}

// AppendTurn persists one turn in arrival order.
func (s *Store) AppendTurn(_ context.Context, turn conversation.Turn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.turns = append(s.turns, turn)
	return nil
}

// RecentTurns returns up to n of the most recent turns, oldest first.
func (s *Store) RecentTurns(_ context.Context, n int) ([]conversation.Turn, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if n <= 0 || len(s.turns) == 0 {
		return nil, nil
	}

	start := len(s.turns) - n
	if start < 0 {
		start = 0
	}

	out := make([]conversation.Turn, len(s.turns)-start)
	copy(out, s.turns[start:])
	return out, nil
}

// AppendDebate persists one completed debate record.
func (s *Store) AppendDebate(_ context.Context, record conversation.DebateRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.debates = append(s.debates, record)
	return nil
}

// Debates returns all stored debate records in arrival order.
func (s *Store) Debates() []conversation.DebateRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]conversation.DebateRecord, len(s.debates))
	copy(out, s.debates)
	return out
}

// Close is a no-op for the in-memory store.
func (s *Store) Close() error {
	return nil
}
