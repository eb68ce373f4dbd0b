package store

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schemaSQL = `
CREATE TABLE IF NOT EXISTS answers (
	set_id      TEXT NOT NULL,
	question_id TEXT NOT NULL,
	state       TEXT NOT NULL DEFAULT '{}',
	updated_at  DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	PRIMARY KEY (set_id, question_id)
);
`

// DB is the SQLite-backed answer store.
type DB struct {
	conn *sql.DB
}

// Verify *DB satisfies Store at compile time.
var _ Store = (*DB)(nil)

// Open opens (or creates) the SQLite database and applies the schema.
func Open(dsn string) (*DB, error) {
	conn, err := sql.Open("sqlite3", dsn+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("store: open db: %w", err)
	}
	if err := conn.Ping(); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}
	if _, err := conn.Exec(schemaSQL); err != nil {
		conn.Close()
		return nil, fmt.Errorf("store: apply schema: %w", err)
	}
	return &DB{conn: conn}, nil
}

// Get returns the stored state for one question, or the default state when
// no entry exists or the stored value is unreadable.
func (db *DB) Get(setID, questionID string) (AnswerState, error) {
	var raw []byte
	err := db.conn.QueryRow(
		`SELECT state FROM answers WHERE set_id = ? AND question_id = ?`,
		setID, questionID,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return DefaultState(), nil
	}
	if err != nil {
		return DefaultState(), fmt.Errorf("store: get %s/%s: %w", setID, questionID, err)
	}
	return decodeState(raw), nil
}

// Put inserts or replaces one question's state.
func (db *DB) Put(setID, questionID string, state AnswerState) error {
	_, err := db.conn.Exec(`
		INSERT INTO answers (set_id, question_id, state, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(set_id, question_id) DO UPDATE SET
			state      = excluded.state,
			updated_at = excluded.updated_at
	`, setID, questionID, encodeState(state))
	if err != nil {
		return fmt.Errorf("store: put %s/%s: %w", setID, questionID, err)
	}
	return nil
}

// All returns every stored state for one set, keyed by question id.
// Questions without an entry are simply absent.
func (db *DB) All(setID string) (map[string]AnswerState, error) {
	rows, err := db.conn.Query(`SELECT question_id, state FROM answers WHERE set_id = ?`, setID)
	if err != nil {
		return nil, fmt.Errorf("store: all %s: %w", setID, err)
	}
	defer rows.Close()

	out := make(map[string]AnswerState)
	for rows.Next() {
		var id string
		var raw []byte
		if err := rows.Scan(&id, &raw); err != nil {
			return nil, err
		}
		out[id] = decodeState(raw)
	}
	return out, rows.Err()
}

// Close closes the underlying database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}
