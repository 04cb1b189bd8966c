// Package conversation defines the persisted chat history model and the
// narrow store contract the debate core uses: append turns, fetch the last N,
// and record completed debates. Drivers live in subpackages.
package conversation

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Sender identifies who produced a turn.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Turn is one message in the persisted conversation history. Turns are
// created by the core and never mutated after creation.
type Turn struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`

	// Model names the bot that produced the turn; empty for user turns.
	Model string `json:"model,omitempty"`
}

// NewTurn creates a turn with a fresh id and the current UTC time.
func NewTurn(sender Sender, text, model string) Turn {
	return Turn{
		ID:        uuid.NewString(),
		Text:      text,
		Sender:    sender,
		Timestamp: time.Now().UTC(),
		Model:     model,
	}
}

// ResponseEntry is one model's contribution to a debate record.
type ResponseEntry struct {
	Model    string `json:"model"`
	Response string `json:"response"`
}

// DebateRecord is the summary row written once per completed debate request,
// mirroring what the request handler returns to the client.
type DebateRecord struct {
	ID        string          `json:"id"`
	Timestamp time.Time       `json:"timestamp"`
	Topic     string          `json:"topic,omitempty"`
	SideA     string          `json:"side_a,omitempty"`
	SideB     string          `json:"side_b,omitempty"`
	Question  string          `json:"question,omitempty"`
	Responses []ResponseEntry `json:"responses"`
}

// NewDebateRecord creates a record with a fresh id and the current UTC time.
func NewDebateRecord(topic, sideA, sideB, question string, responses []ResponseEntry) DebateRecord {
	return DebateRecord{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Topic:     topic,
		SideA:     sideA,
		SideB:     sideB,
		Question:  question,
		Responses: responses,
	}
}

// Store is the persistence contract for conversation history. From the
// core's perspective it is best-effort: a failed append is logged by the
// caller and never aborts an in-progress debate.
type Store interface {
	// AppendTurn persists one turn.
	AppendTurn(ctx context.Context, turn Turn) error

	// RecentTurns returns up to n of the most recent turns, oldest first.
	RecentTurns(ctx context.Context, n int) ([]Turn, error)

	// AppendDebate persists one completed debate record.
	AppendDebate(ctx context.Context, record DebateRecord) error

	// Close releases the store's resources.
	Close() error
}
