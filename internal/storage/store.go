// Package storage provides abstractions for persistent session storage.
package storage

import (
	"context"
	"errors"

	"github.com/mmynk/settleup/internal/models"
)

// ErrNotFound is returned (wrapped) when a session does not exist.
var ErrNotFound = errors.New("session not found")

// Store defines the interface for session storage operations.
// This abstraction allows swapping storage backends (SQLite, files, replicas)
// without changing the service layer.
type Store interface {
	// CreateSession persists a new session.
	// session.ID and timestamps are populated by the store when unset.
	CreateSession(ctx context.Context, session *models.Session) error

	// GetSession retrieves a session by its ID, including all expenses.
	// Returns an error wrapping ErrNotFound if the session does not exist.
	GetSession(ctx context.Context, sessionID string) (*models.Session, error)

	// UpdateSession replaces the stored state of an existing session.
	// Returns an error wrapping ErrNotFound if the session does not exist.
	UpdateSession(ctx context.Context, session *models.Session) error

	// ListSessions returns all sessions, most recently updated first.
	// Expenses are not loaded.
	ListSessions(ctx context.Context) ([]*models.Session, error)

	// Close releases any resources held by the store.
	Close() error
}
