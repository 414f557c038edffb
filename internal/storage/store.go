// Package storage provides abstractions for transient session storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/dinesplit/internal/models"
)

// ErrNotFound is returned when a session does not exist or has expired.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for session storage operations.
// This abstraction allows swapping storage backends (in-memory map, SQLite)
// without changing the service layer. No backend is expected to keep
// sessions across a restart.
type Store interface {
	// CreateSession persists a new session.
	// Returns an error if a session with the same ID already exists.
	CreateSession(ctx context.Context, state *models.SessionState) error

	// GetSession retrieves a session by its ID.
	// Returns ErrNotFound if the session does not exist.
	GetSession(ctx context.Context, id string) (*models.SessionState, error)

	// UpdateSession loads the session, passes it to fn and saves the result.
	// Updates of the same session are serialized. If fn returns an error
	// nothing is saved and the error is returned.
	UpdateSession(ctx context.Context, id string, fn func(*models.SessionState) error) (*models.SessionState, error)

	// DeleteSession removes a session. Deleting a missing session returns ErrNotFound.
	DeleteSession(ctx context.Context, id string) error

	// DeleteExpired removes every session last updated before the given
	// Unix timestamp and returns how many were removed.
	DeleteExpired(ctx context.Context, before int64) (int, error)

	// Close releases any resources held by the store.
	Close() error
}
