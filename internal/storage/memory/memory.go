// Package memory provides a map-backed implementation of storage.Store.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/storage"
)

// Ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

// Store keeps sessions in a map. States are copied on the way in and out so
// callers never share memory with the store.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*models.SessionState
}

// New creates an empty Store.
func New() *Store {
	return &Store{sessions: make(map[string]*models.SessionState)}
}

// CreateSession stores a new session.
func (s *Store) CreateSession(_ context.Context, state *models.SessionState) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.sessions[state.ID]; exists {
		return fmt.Errorf("session already exists: %s", state.ID)
	}
	s.sessions[state.ID] = state.Clone()
	return nil
}

// GetSession returns a copy of the session.
func (s *Store) GetSession(_ context.Context, id string) (*models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	return state.Clone(), nil
}

// UpdateSession applies fn to a copy of the session under the store lock.
func (s *Store) UpdateSession(_ context.Context, id string, fn func(*models.SessionState) error) (*models.SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	state, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}

	next := state.Clone()
	if err := fn(next); err != nil {
		return nil, err
	}
	next.ID = id
	s.sessions[id] = next.Clone()
	return next, nil
}

// DeleteSession removes a session.
func (s *Store) DeleteSession(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[id]; !ok {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, id)
	}
	delete(s.sessions, id)
	return nil
}

// DeleteExpired removes sessions last updated before the cutoff.
func (s *Store) DeleteExpired(_ context.Context, before int64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var n int
	for id, state := range s.sessions {
		if state.UpdatedAt < before {
			delete(s.sessions, id)
			n++
		}
	}
	return n, nil
}

// Close drops every session.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = make(map[string]*models.SessionState)
	return nil
}
