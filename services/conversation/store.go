package conversation

import (
	"context"
	"sync"

	"appointly/models"
)

// SessionStore keeps conversation sessions keyed by conversation id, with
// create-on-first-use semantics.
type SessionStore interface {
	GetOrCreate(ctx context.Context, conversationID string) (*models.ConversationSession, error)
	Put(ctx context.Context, conversationID string, session *models.ConversationSession) error
	Reset(ctx context.Context, conversationID string) error
}

// Snapshotter is implemented by stores that can enumerate live
// conversations for the debug endpoint.
type Snapshotter interface {
	Snapshot(ctx context.Context) (map[string]models.ConversationDebug, error)
}

// InMemorySessionStore holds sessions in a process-wide map for the
// lifetime of the service. Sessions are cloned on the way in and out so
// callers never share mutable state with the store.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.ConversationSession
}

func NewInMemorySessionStore() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[string]*models.ConversationSession)}
}

func (s *InMemorySessionStore) GetOrCreate(_ context.Context, conversationID string) (*models.ConversationSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[conversationID]
	if !ok {
		sess = models.NewConversationSession(conversationID)
		s.sessions[conversationID] = sess
	}
	return sess.Clone(), nil
}

func (s *InMemorySessionStore) Put(_ context.Context, conversationID string, session *models.ConversationSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[conversationID] = session.Clone()
	return nil
}

func (s *InMemorySessionStore) Reset(_ context.Context, conversationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, conversationID)
	return nil
}

func (s *InMemorySessionStore) Snapshot(_ context.Context) (map[string]models.ConversationDebug, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(map[string]models.ConversationDebug, len(s.sessions))
	for id, sess := range s.sessions {
		out[id] = models.ConversationDebug{
			Phase:              sess.Phase,
			LastIntent:         sess.LastIntent,
			AvailableSlotCount: len(sess.AvailableSlots),
			HasSelectedSlot:    sess.SelectedSlot != nil,
			BookingConfirmed:   sess.BookingConfirmed,
			MessageCount:       len(sess.History),
		}
	}
	return out, nil
}
