package session

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"
	"github.com/w-h-a/premind/internal/service/conversation"
)

var ErrNotFound = errors.New("session not found")

// Service is the registry of live conversations. Each session owns its own
// record, mapping, and history; the registry only guards the id map.
type Service struct {
	conversations *conversation.Service
	sessions      map[string]*conversation.Session
	mtx           sync.RWMutex
}

func (s *Service) CreateSession(ctx context.Context, policyID string) (string, *conversation.Session, error) {
	session, err := s.conversations.StartSession(ctx, policyID)
	if err != nil {
		return "", nil, err
	}

	id := uuid.NewString()

	s.mtx.Lock()
	defer s.mtx.Unlock()

	s.sessions[id] = session

	return id, session, nil
}

func (s *Service) ListSessionIds(ctx context.Context) []string {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	ids := make([]string, 0, len(s.sessions))
	for id := range s.sessions {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	return ids
}

func (s *Service) GetSession(ctx context.Context, id string) (*conversation.Session, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	session, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, ErrNotFound)
	}

	return session, nil
}

func (s *Service) DeleteSession(ctx context.Context, id string) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.sessions, id)
}

func New(conversations *conversation.Service) *Service {
	return &Service{
		conversations: conversations,
		sessions:      map[string]*conversation.Session{},
		mtx:           sync.RWMutex{},
	}
}
