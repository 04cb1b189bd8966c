// Package debate orchestrates one debate request: persist the user's turn,
// fetch the rolling context, call each requested model in order, and persist
// the bot turns. Provider failures become ordinary response entries; only
// misconfiguration (no provider at all) propagates to the request layer.
package debate

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rostrumlabs/rostrum/pkg/conversation"
	"github.com/rostrumlabs/rostrum/pkg/llm/provider"
	"github.com/rostrumlabs/rostrum/pkg/prompt"
)

// errResponseText is the user-visible stand-in for a failed provider call.
// The underlying error goes to the log, not to the client.
const errResponseText = "Error: Could not generate response"

const (
	defaultContextWindow = 6
	defaultCallTimeout   = 60 * time.Second
)

// Request is one parsed debate or question request.
type Request struct {
	Topic    string   `json:"topic,omitempty"`
	SideA    string   `json:"side_a,omitempty"`
	SideB    string   `json:"side_b,omitempty"`
	Question string   `json:"question,omitempty"`
	Models   []string `json:"models,omitempty"`

	// Provider optionally overrides the configured provider for this
	// request only.
	Provider string `json:"provider,omitempty"`
}

// Config tunes the service.
type Config struct {
	// ContextWindow is how many recent turns feed the prompt. Defaults to 6.
	ContextWindow int

	// CallTimeout bounds each provider call. Defaults to 60s.
	CallTimeout time.Duration
}

// Service runs debates.
type Service struct {
	config   Config
	selector *provider.Selector
	client   *provider.Client
	store    conversation.Store
	logger   *zap.Logger
}

// NewService creates a debate service. Zero config fields get defaults.
func NewService(config Config, selector *provider.Selector, client *provider.Client, store conversation.Store, logger *zap.Logger) *Service {
	if config.ContextWindow == 0 {
		config.ContextWindow = defaultContextWindow
	}
	if config.CallTimeout == 0 {
		config.CallTimeout = defaultCallTimeout
	}

	return &Service{
		config:   config,
		selector: selector,
		client:   client,
		store:    store,
		logger:   logger,
	}
}

// Run executes one debate request and returns one response entry per
// requested model, in request order.
//
// Sequencing is strict: the user turn is persisted first, then the context
// is fetched, then models are called one at a time with their bot turns
// persisted in call order. Persistence failures are logged and swallowed;
// the debate still completes.
func (s *Service) Run(ctx context.Context, req Request) ([]conversation.ResponseEntry, error) {
	providerName, defaultModel, err := s.selector.Resolve(req.Provider, "")
	if err != nil {
		return nil, err
	}

	models := req.Models
	if len(models) == 0 {
		models = []string{defaultModel}
	}

	userTurn := conversation.NewTurn(conversation.SenderUser, subjectText(req), "")
	if err := s.store.AppendTurn(ctx, userTurn); err != nil {
		s.logger.Warn("failed to persist user turn",
			zap.String("turn_id", userTurn.ID),
			zap.Error(err),
		)
	}

	turns, err := s.store.RecentTurns(ctx, s.config.ContextWindow)
	if err != nil {
		s.logger.Warn("failed to fetch conversation context", zap.Error(err))
		turns = nil
	}

	subject := prompt.Subject{
		Topic:    req.Topic,
		SideA:    req.SideA,
		SideB:    req.SideB,
		Question: req.Question,
	}

	entries := make([]conversation.ResponseEntry, 0, len(models))
	for _, name := range models {
		text := s.callModel(ctx, providerName, name, subject, turns)
		entries = append(entries, conversation.ResponseEntry{Model: name, Response: text})

		botTurn := conversation.NewTurn(conversation.SenderBot, text, name)
		if err := s.store.AppendTurn(ctx, botTurn); err != nil {
			s.logger.Warn("failed to persist bot turn",
				zap.String("model", name),
				zap.Error(err),
			)
		}
	}

	record := conversation.NewDebateRecord(req.Topic, req.SideA, req.SideB, req.Question, entries)
	if err := s.store.AppendDebate(ctx, record); err != nil {
		s.logger.Warn("failed to persist debate record",
			zap.String("debate_id", record.ID),
			zap.Error(err),
		)
	}

	return entries, nil
}

// callModel performs one provider call, resolving persona display names to
// their underlying model and flavoring the prompt accordingly. A failed call
// yields the error stand-in text, never an error: the per-model failure is
// part of the debate, not an exceptional path.
func (s *Service) callModel(ctx context.Context, providerName, name string, subject prompt.Subject, turns []conversation.Turn) string {
	model := name
	var persona *prompt.Persona
	if p, ok := prompt.LookupPersona(name); ok {
		persona = &p
		model = p.Model
	}

	promptText := prompt.Build(subject, turns, persona)

	callCtx, cancel := context.WithTimeout(ctx, s.config.CallTimeout)
	defer cancel()

	text, err := s.client.Call(callCtx, providerName, model, promptText)
	if err != nil {
		s.logger.Warn("provider call failed",
			zap.String("provider", providerName),
			zap.String("model", model),
			zap.Error(err),
		)
		return errResponseText
	}
	return text
}

// subjectText renders the user's turn for persistence: the question when one
// was asked, the debate framing otherwise.
func subjectText(req Request) string {
	if req.Question != "" {
		return req.Question
	}
	if req.Topic != "" {
		return "Debate: " + req.Topic + " (" + req.SideA + " vs " + req.SideB + ")"
	}
	return prompt.Fallback
}
