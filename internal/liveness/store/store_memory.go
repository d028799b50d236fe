package store

import (
	"context"
	"fmt"
	"sync"
	"time"

	"kycscan/internal/liveness/models"
)

// InMemoryStore keeps sessions in process memory. Sessions are copied on the
// way in and out so callers never share a frame slice with the store.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*models.Session
}

// NewInMemory constructs an empty in-memory store.
func NewInMemory() *InMemoryStore {
	return &InMemoryStore{sessions: make(map[string]*models.Session)}
}

func (s *InMemoryStore) Load(_ context.Context, subjectID string) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[subjectID]
	if !ok {
		return nil, fmt.Errorf("subject %q: %w", subjectID, ErrNotFound)
	}
	return clone(session), nil
}

func (s *InMemoryStore) Save(_ context.Context, session *models.Session) error {
	if session == nil {
		return fmt.Errorf("session is required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.SubjectID] = clone(session)
	return nil
}

func (s *InMemoryStore) Update(_ context.Context, subjectID string, fn UpdateFunc) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current *models.Session
	if stored, ok := s.sessions[subjectID]; ok {
		current = clone(stored)
	}
	next, err := fn(current)
	if err != nil {
		return err
	}
	if next == nil {
		delete(s.sessions, subjectID)
		return nil
	}
	s.sessions[subjectID] = clone(next)
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, subjectID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, subjectID)
	return nil
}

func (s *InMemoryStore) DeleteIdle(_ context.Context, cutoff time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	deleted := 0
	for key, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, key)
			deleted++
		}
	}
	return deleted, nil
}

// Len reports the number of live sessions.
func (s *InMemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

func clone(s *models.Session) *models.Session {
	out := *s
	out.Frames = make([]models.Frame, len(s.Frames))
	for i, f := range s.Frames {
		out.Frames[i] = append(models.Frame(nil), f...)
	}
	return &out
}
