// Package sqlite provides a SQLite-backed conversation store.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"github.com/rostrumlabs/rostrum/pkg/conversation"
)

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	seq INTEGER PRIMARY KEY AUTOINCREMENT,
	id TEXT NOT NULL UNIQUE,
	text TEXT NOT NULL,
	sender TEXT NOT NULL,
	model TEXT NOT NULL DEFAULT '',
	ts TIMESTAMP NOT NULL
);
CREATE TABLE IF NOT EXISTS debates (
	id TEXT PRIMARY KEY,
	ts TIMESTAMP NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	side_a TEXT NOT NULL DEFAULT '',
	side_b TEXT NOT NULL DEFAULT '',
	question TEXT NOT NULL DEFAULT '',
	responses TEXT NOT NULL
);
`

// Store implements conversation.Store on a SQLite database.
type Store struct {
	db *sql.DB
}

// NewStore opens (or creates) the database at dbPath and ensures the schema
// exists. dbPath may be ":memory:" for an in-memory database.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// AppendTurn persists one turn.
func (s *Store) AppendTurn(ctx context.Context, turn conversation.Turn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (id, text, sender, model, ts) VALUES (?, ?, ?, ?, ?)`,
		turn.ID, turn.Text, string(turn.Sender), turn.Model, turn.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to n of the most recent turns, oldest first.
// Ordering uses the insertion sequence, not the timestamp, so turns written
// within the same instant keep their append order.
func (s *Store) RecentTurns(ctx context.Context, n int) ([]conversation.Turn, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, sender, model, ts FROM turns ORDER BY seq DESC LIMIT ?`, n)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	var turns []conversation.Turn
	for rows.Next() {
		var t conversation.Turn
		var sender string
		if err := rows.Scan(&t.ID, &t.Text, &sender, &t.Model, &t.Timestamp); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		t.Sender = conversation.Sender(sender)
		turns = append(turns, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating turns: %w", err)
	}

	// Rows arrive newest first; flip to oldest first.
	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// AppendDebate persists one completed debate record. Responses are stored as
// a JSON document, matching the row shape the original service wrote.
func (s *Store) AppendDebate(ctx context.Context, record conversation.DebateRecord) error {
	responses, err := json.Marshal(record.Responses)
	if err != nil {
		return fmt.Errorf("encoding responses: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO debates (id, ts, topic, side_a, side_b, question, responses)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		record.ID, record.Timestamp, record.Topic, record.SideA, record.SideB,
		record.Question, string(responses),
	)
	if err != nil {
		return fmt.Errorf("inserting debate: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
