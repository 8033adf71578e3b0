// Package memory keeps conversations in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"docpilot/internal/domain"
)

type entry struct {
	conv    *domain.Conversation
	busy    bool
	touched time.Time
}

// Store is an in-memory port.ConversationStore. Conversations idle for
// longer than the TTL are dropped on the next write.
type Store struct {
	mu    sync.Mutex
	ttl   time.Duration
	convs map[uuid.UUID]*entry
	now   func() time.Time
}

// NewStore creates a Store. A zero ttl keeps conversations forever.
func NewStore(ttl time.Duration) *Store {
	return &Store{ttl: ttl, convs: make(map[uuid.UUID]*entry), now: time.Now}
}

func (s *Store) Create(_ context.Context, conv *domain.Conversation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.pruneLocked()
	s.convs[conv.ID] = &entry{conv: clone(conv), touched: s.now()}
	return nil
}

func (s *Store) Get(_ context.Context, id uuid.UUID) (*domain.Conversation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookupLocked(id)
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	return clone(e.conv), nil
}

func (s *Store) Append(_ context.Context, id uuid.UUID, turn domain.ChatTurn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookupLocked(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	e.conv.Turns = append(e.conv.Turns, turn)
	e.touched = s.now()
	return nil
}

func (s *Store) Acquire(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookupLocked(id)
	if !ok {
		return domain.ErrSessionNotFound
	}
	if e.busy {
		return domain.ErrBusy
	}
	e.busy = true
	e.touched = s.now()
	return nil
}

func (s *Store) Release(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.convs[id]; ok {
		e.busy = false
	}
	return nil
}

func (s *Store) lookupLocked(id uuid.UUID) (*entry, bool) {
	e, ok := s.convs[id]
	if !ok {
		return nil, false
	}
	if s.expired(e) {
		delete(s.convs, id)
		return nil, false
	}
	return e, true
}

func (s *Store) pruneLocked() {
	for id, e := range s.convs {
		if s.expired(e) {
			delete(s.convs, id)
		}
	}
}

func (s *Store) expired(e *entry) bool {
	return s.ttl > 0 && !e.busy && s.now().Sub(e.touched) > s.ttl
}

func clone(c *domain.Conversation) *domain.Conversation {
	out := *c
	out.Turns = append([]domain.ChatTurn{}, c.Turns...)
	return &out
}
