// Package prompt builds the natural-language prompt sent to a provider from
// a debate subject, an optional rolling context window, and an optional
// persona. Pure string composition: same inputs, same output.
package prompt

import (
	"strings"

	"github.com/rostrumlabs/rostrum/pkg/conversation"
)

// Fallback is emitted when a request carries neither a full debate subject
// nor a question.
const Fallback = "Please provide a topic and sides for debate or a question."

// Subject is the debatable content of one request.
type Subject struct {
	Topic    string
	SideA    string
	SideB    string
	Question string
}

// Build composes the prompt. Layout, top to bottom: persona preamble (when a
// persona is supplied), "Recent Debate" transcript (when turns are supplied,
// oldest first), then the topic or question block.
func Build(subject Subject, turns []conversation.Turn, persona *Persona) string {
	var b strings.Builder

	if persona != nil {
		b.WriteString("You are ")
		b.WriteString(persona.DisplayName)
		b.WriteString(", in a debate. Style: ")
		b.WriteString(persona.Style)
		b.WriteString(", Tone: ")
		b.WriteString(persona.Tone)
		b.WriteString(".\n\n")
	}

	if len(turns) > 0 {
		b.WriteString("Recent Debate:\n")
		for _, turn := range turns {
			b.WriteString(speaker(turn))
			b.WriteString(": ")
			b.WriteString(turn.Text)
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString(body(subject))
	return b.String()
}

// speaker renders the transcript label for one turn: "User" for user turns,
// the model name for bot turns.
func speaker(turn conversation.Turn) string {
	if turn.Sender == conversation.SenderBot && turn.Model != "" {
		return turn.Model
	}
	if turn.Sender == conversation.SenderBot {
		return "Bot"
	}
	return "User"
}

func body(subject Subject) string {
	if subject.Topic != "" && subject.SideA != "" && subject.SideB != "" {
		return "Debate Topic: " + subject.Topic +
			"\nSide A: " + subject.SideA +
			"\nSide B: " + subject.SideB +
			"\nProvide an insightful debate."
	}
	if subject.Question != "" {
		return "Question: " + subject.Question +
			"\nProvide a detailed, balanced answer."
	}
	return Fallback
}
