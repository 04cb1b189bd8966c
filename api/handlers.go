package api

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/rostrumlabs/rostrum/pkg/conversation"
	"github.com/rostrumlabs/rostrum/pkg/debate"
	"github.com/rostrumlabs/rostrum/pkg/llm/provider"
)

const defaultTurnsLimit = 50

// ErrorResponse is the JSON body returned on request failures.
type ErrorResponse struct {
	Error string `json:"error"`
}

// HealthResponse reports server liveness and the resolved default target.
type HealthResponse struct {
	Status   string    `json:"status"`
	Time     time.Time `json:"time"`
	Provider string    `json:"provider,omitempty"`
	Model    string    `json:"model,omitempty"`
}

// DebateResponse wraps the generated responses, one entry per requested model.
type DebateResponse struct {
	Responses []conversation.ResponseEntry `json:"responses"`
}

// TurnsResponse contains recent conversation turns, oldest first.
type TurnsResponse struct {
	Turns []conversation.Turn `json:"turns"`
	Count int                 `json:"count"`
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:   "ok",
		Time:     time.Now().UTC(),
		Provider: s.config.Provider,
		Model:    s.config.Model,
	})
}

func (s *Server) handleDebate(c *fiber.Ctx) error {
	var req debate.Request
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	entries, err := s.debates.Run(c.Context(), req)
	if err != nil {
		if errors.Is(err, provider.ErrNoProviderConfigured) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: err.Error()})
		}
		s.logger.Error("debate failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to run debate"})
	}

	return c.JSON(DebateResponse{Responses: entries})
}

func (s *Server) handleTurns(c *fiber.Ctx) error {
	limit := defaultTurnsLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "limit must be a positive integer"})
		}
		limit = n
	}

	turns, err := s.store.RecentTurns(c.Context(), limit)
	if err != nil {
		s.logger.Error("failed to load turns", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to load turns"})
	}

	if turns == nil {
		turns = []conversation.Turn{}
	}

	return c.JSON(TurnsResponse{Turns: turns, Count: len(turns)})
}
