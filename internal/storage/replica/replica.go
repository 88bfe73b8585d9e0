// Package replica fans session writes out to several stores and reads from
// the first store that has the session.
//
// Writes are last-write-wins across backends: the primary must succeed,
// secondary failures are logged and ignored. A session found only on a
// secondary is copied back to the primary on read.
package replica

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store replicates sessions across a primary and any number of secondaries.
type Store struct {
	primary     storage.Store
	secondaries []storage.Store
}

// New returns a replicated store. Reads try primary first, then secondaries
// in the given order.
func New(primary storage.Store, secondaries ...storage.Store) *Store {
	return &Store{primary: primary, secondaries: secondaries}
}

// CreateSession creates the session on the primary, then copies it to every secondary.
func (s *Store) CreateSession(ctx context.Context, session *models.Session) error {
	if err := s.primary.CreateSession(ctx, session); err != nil {
		return err
	}
	for i, backend := range s.secondaries {
		cp := clone(session)
		if err := backend.CreateSession(ctx, cp); err != nil {
			slog.Warn("Replica create failed", "replica", i, "session_id", session.ID, "error", err)
		}
	}
	return nil
}

// UpdateSession updates the primary, then upserts every secondary.
func (s *Store) UpdateSession(ctx context.Context, session *models.Session) error {
	if err := s.primary.UpdateSession(ctx, session); err != nil {
		return err
	}
	for i, backend := range s.secondaries {
		if err := upsert(ctx, backend, clone(session)); err != nil {
			slog.Warn("Replica update failed", "replica", i, "session_id", session.ID, "error", err)
		}
	}
	return nil
}

// GetSession returns the session from the first backend that has it.
func (s *Store) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session, err := s.primary.GetSession(ctx, sessionID)
	if err == nil {
		return session, nil
	}
	if !errors.Is(err, storage.ErrNotFound) {
		slog.Warn("Primary read failed, trying replicas", "session_id", sessionID, "error", err)
	}

	for i, backend := range s.secondaries {
		session, rerr := backend.GetSession(ctx, sessionID)
		if rerr != nil {
			if !errors.Is(rerr, storage.ErrNotFound) {
				slog.Warn("Replica read failed", "replica", i, "session_id", sessionID, "error", rerr)
			}
			continue
		}
		if serr := s.primary.CreateSession(ctx, clone(session)); serr != nil {
			slog.Warn("Failed to sync session to primary", "session_id", sessionID, "error", serr)
		} else {
			slog.Info("Synced session from replica", "replica", i, "session_id", sessionID)
		}
		return session, nil
	}

	if errors.Is(err, storage.ErrNotFound) {
		return nil, err
	}
	return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, sessionID)
}

// ListSessions lists the primary only.
func (s *Store) ListSessions(ctx context.Context) ([]*models.Session, error) {
	return s.primary.ListSessions(ctx)
}

// Close closes every backend.
func (s *Store) Close() error {
	errs := []error{s.primary.Close()}
	for _, backend := range s.secondaries {
		errs = append(errs, backend.Close())
	}
	return errors.Join(errs...)
}

func upsert(ctx context.Context, backend storage.Store, session *models.Session) error {
	err := backend.UpdateSession(ctx, session)
	if errors.Is(err, storage.ErrNotFound) {
		return backend.CreateSession(ctx, session)
	}
	return err
}

// clone copies a session so backends that stamp fields do not race the caller.
func clone(session *models.Session) *models.Session {
	cp := *session
	cp.Expenses = make([]models.Expense, len(session.Expenses))
	for i, e := range session.Expenses {
		e.Participants = append([]string(nil), e.Participants...)
		e.Slots = append([]models.Slot(nil), e.Slots...)
		cp.Expenses[i] = e
	}
	return &cp
}
