// Package postgres provides a PostgreSQL-backed conversation store using the
// pgx driver through database/sql.
package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // register the pgx PostgreSQL driver as "pgx"

	"github.com/rostrumlabs/rostrum/pkg/conversation"
)

const schema = `
CREATE TABLE IF NOT EXISTS turns (
	seq BIGSERIAL PRIMARY KEY,
	id TEXT NOT NULL UNIQUE,
	text TEXT NOT NULL,
	sender TEXT NOT NULL,
	model TEXT NOT NULL DEFAULT '',
	ts TIMESTAMPTZ NOT NULL
);
CREATE TABLE IF NOT EXISTS debates (
	id TEXT PRIMARY KEY,
	ts TIMESTAMPTZ NOT NULL,
	topic TEXT NOT NULL DEFAULT '',
	side_a TEXT NOT NULL DEFAULT '',
	side_b TEXT NOT NULL DEFAULT '',
	question TEXT NOT NULL DEFAULT '',
	responses JSONB NOT NULL
);
`

// Store implements conversation.Store on PostgreSQL.
type Store struct {
	db *sql.DB
}

// NewStore connects to the database named by connStr (a PostgreSQL URI or
// keyword/value string), verifies the connection, and ensures the schema.
func NewStore(ctx context.Context, connStr string) (*Store, error) {
	db, err := sql.Open("pgx", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// AppendTurn persists one turn.
func (s *Store) AppendTurn(ctx context.Context, turn conversation.Turn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (id, text, sender, model, ts) VALUES ($1, $2, $3, $4, $5)`,
		turn.ID, turn.Text, string(turn.Sender), turn.Model, turn.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("inserting turn: %w", err)
	}
	return nil
}

// RecentTurns returns up to n of the most recent turns, oldest first.
func (s *Store) RecentTurns(ctx context.Context, n int) ([]conversation.Turn, error) {
	if n <= 0 {
		return nil, nil
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, text, sender, model, ts FROM turns ORDER BY seq DESC LIMIT $1`, n)
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

	for i, j := 0, len(turns)-1; i < j; i, j = i+1, j-1 {
		turns[i], turns[j] = turns[j], turns[i]
	}
	return turns, nil
}

// AppendDebate persists one completed debate record.
func (s *Store) AppendDebate(ctx context.Context, record conversation.DebateRecord) error {
	responses, err := json.Marshal(record.Responses)
	if err != nil {
		return fmt.Errorf("encoding responses: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO debates (id, ts, topic, side_a, side_b, question, responses)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
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
