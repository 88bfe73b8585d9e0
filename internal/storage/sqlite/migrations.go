package sqlite

import "database/sql"

// schema sets up the database tables. It runs on startup to ensure tables exist.
// Expense child rows are keyed by (session_id, expense_pos) so a session
// update can replace its ledger wholesale.
const schema = `
CREATE TABLE IF NOT EXISTS sessions (
    id TEXT PRIMARY KEY,
    payer_names TEXT NOT NULL DEFAULT '',
    participant_names TEXT NOT NULL DEFAULT '',
    num_slots INTEGER NOT NULL DEFAULT 0,
    created_at INTEGER NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS expenses (
    session_id TEXT NOT NULL,
    pos INTEGER NOT NULL,
    kind TEXT NOT NULL DEFAULT '',
    payer TEXT NOT NULL DEFAULT '',
    amount TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (session_id, pos),
    FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_participants (
    session_id TEXT NOT NULL,
    expense_pos INTEGER NOT NULL,
    pos INTEGER NOT NULL,
    name TEXT NOT NULL,
    PRIMARY KEY (session_id, expense_pos, pos),
    FOREIGN KEY (session_id, expense_pos) REFERENCES expenses(session_id, pos) ON DELETE CASCADE
);

CREATE TABLE IF NOT EXISTS expense_slots (
    session_id TEXT NOT NULL,
    expense_pos INTEGER NOT NULL,
    pos INTEGER NOT NULL,
    name TEXT NOT NULL,
    members TEXT NOT NULL DEFAULT '',
    PRIMARY KEY (session_id, expense_pos, pos),
    FOREIGN KEY (session_id, expense_pos) REFERENCES expenses(session_id, pos) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_sessions_updated_at ON sessions(updated_at);
`

// runMigrations executes the schema setup.
func runMigrations(db *sql.DB) error {
	_, err := db.Exec(schema)
	return err
}
