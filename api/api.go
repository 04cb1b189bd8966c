package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"go.uber.org/zap"

	"github.com/rostrumlabs/rostrum/pkg/conversation"
	"github.com/rostrumlabs/rostrum/pkg/debate"
)

// Server is the HTTP front of the debate service.
type Server struct {
	config  Config
	store   conversation.Store
	debates *debate.Service
	logger  *zap.Logger
	app     *fiber.App
}

// NewServer creates a new API server. The store is injected so it can be
// shared with the debate service and closed once at shutdown.
func NewServer(config Config, debates *debate.Service, store conversation.Store, logger *zap.Logger) *Server {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	app.Use(cors.New())

	s := &Server{
		config:  config,
		store:   store,
		debates: debates,
		logger:  logger,
		app:     app,
	}

	app.Get("/health", s.handleHealth)
	app.Post("/debate", s.handleDebate)
	app.Get("/turns", s.handleTurns)

	return s
}

// Run starts the API server on the configured address.
func (s *Server) Run() error {
	s.logger.Info("starting API server",
		zap.String("listen", s.config.ListenAddr),
	)
	return s.app.Listen(s.config.ListenAddr)
}

// Shutdown gracefully shuts down the API server.
func (s *Server) Shutdown() error {
	return s.app.Shutdown()
}
