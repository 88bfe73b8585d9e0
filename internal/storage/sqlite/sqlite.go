// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/settleup/internal/models"
	"github.com/mmynk/settleup/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// The _pragma parameter is applied by the driver to every pooled connection.
	db, err := sql.Open("sqlite", "file:"+dbPath+"?_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session and its ledger.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	now := time.Now().Unix()
	if session.CreatedAt == 0 {
		session.CreatedAt = now
	}
	if session.UpdatedAt == 0 {
		session.UpdatedAt = session.CreatedAt
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, payer_names, participant_names, num_slots, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		session.ID, session.PayerNames, session.ParticipantNames, session.NumSlots,
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := insertExpenses(ctx, tx, session.ID, session.Expenses); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// UpdateSession replaces the roster and ledger of an existing session.
func (s *SQLiteStore) UpdateSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE sessions SET payer_names = ?, participant_names = ?, num_slots = ?, updated_at = ?
		 WHERE id = ?`,
		session.PayerNames, session.ParticipantNames, session.NumSlots, session.UpdatedAt, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, session.ID)
	}

	if err := tx.QueryRowContext(ctx,
		"SELECT created_at FROM sessions WHERE id = ?", session.ID,
	).Scan(&session.CreatedAt); err != nil {
		return fmt.Errorf("failed to read session: %w", err)
	}

	for _, table := range []string{"expense_slots", "expense_participants", "expenses"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table+" WHERE session_id = ?", session.ID); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}
	if err := insertExpenses(ctx, tx, session.ID, session.Expenses); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func insertExpenses(ctx context.Context, tx *sql.Tx, sessionID string, expenses []models.Expense) error {
	for i, e := range expenses {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO expenses (session_id, pos, kind, payer, amount) VALUES (?, ?, ?, ?, ?)",
			sessionID, i, e.Kind, e.Payer, e.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense: %w", err)
		}

		for j, name := range e.Participants {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_participants (session_id, expense_pos, pos, name) VALUES (?, ?, ?, ?)",
				sessionID, i, j, name,
			)
			if err != nil {
				return fmt.Errorf("failed to insert participant: %w", err)
			}
		}

		for j, slot := range e.Slots {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO expense_slots (session_id, expense_pos, pos, name, members) VALUES (?, ?, ?, ?, ?)",
				sessionID, i, j, slot.Name, slot.Members,
			)
			if err != nil {
				return fmt.Errorf("failed to insert slot: %w", err)
			}
		}
	}
	return nil
}

// GetSession retrieves a session by ID, including its full ledger in entry order.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	err := s.db.QueryRowContext(ctx,
		`SELECT id, payer_names, participant_names, num_slots, created_at, updated_at
		 FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&session.ID, &session.PayerNames, &session.ParticipantNames, &session.NumSlots,
		&session.CreatedAt, &session.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT kind, payer, amount FROM expenses WHERE session_id = ? ORDER BY pos",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %w", err)
	}
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.Kind, &e.Payer, &e.Amount); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		session.Expenses = append(session.Expenses, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate expenses: %w", err)
	}

	if err := s.loadParticipants(ctx, session); err != nil {
		return nil, err
	}
	if err := s.loadSlots(ctx, session); err != nil {
		return nil, err
	}

	return session, nil
}

func (s *SQLiteStore) loadParticipants(ctx context.Context, session *models.Session) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_pos, name FROM expense_participants WHERE session_id = ? ORDER BY expense_pos, pos",
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var name string
		if err := rows.Scan(&pos, &name); err != nil {
			return fmt.Errorf("failed to scan participant: %w", err)
		}
		if pos < 0 || pos >= len(session.Expenses) {
			continue
		}
		session.Expenses[pos].Participants = append(session.Expenses[pos].Participants, name)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate participants: %w", err)
	}
	return nil
}

func (s *SQLiteStore) loadSlots(ctx context.Context, session *models.Session) error {
	rows, err := s.db.QueryContext(ctx,
		"SELECT expense_pos, name, members FROM expense_slots WHERE session_id = ? ORDER BY expense_pos, pos",
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to get slots: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var pos int
		var slot models.Slot
		if err := rows.Scan(&pos, &slot.Name, &slot.Members); err != nil {
			return fmt.Errorf("failed to scan slot: %w", err)
		}
		if pos < 0 || pos >= len(session.Expenses) {
			continue
		}
		session.Expenses[pos].Slots = append(session.Expenses[pos].Slots, slot)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to iterate slots: %w", err)
	}
	return nil
}

// ListSessions returns session headers, most recently updated first.
func (s *SQLiteStore) ListSessions(ctx context.Context) ([]*models.Session, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, payer_names, participant_names, num_slots, created_at, updated_at
		 FROM sessions ORDER BY updated_at DESC, id`,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []*models.Session
	for rows.Next() {
		session := &models.Session{}
		if err := rows.Scan(&session.ID, &session.PayerNames, &session.ParticipantNames,
			&session.NumSlots, &session.CreatedAt, &session.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		sessions = append(sessions, session)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate sessions: %w", err)
	}
	return sessions, nil
}
