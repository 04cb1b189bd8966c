// Package servecmder provides the serve command for running the debate API.
package servecmder

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rostrumlabs/rostrum/api"
	"github.com/rostrumlabs/rostrum/pkg/config"
	"github.com/rostrumlabs/rostrum/pkg/conversation"
	"github.com/rostrumlabs/rostrum/pkg/conversation/inmemory"
	"github.com/rostrumlabs/rostrum/pkg/conversation/postgres"
	"github.com/rostrumlabs/rostrum/pkg/conversation/sqlite"
	"github.com/rostrumlabs/rostrum/pkg/debate"
	"github.com/rostrumlabs/rostrum/pkg/llm/provider"
	"github.com/rostrumlabs/rostrum/pkg/logger"
	"github.com/rostrumlabs/rostrum/pkg/warmup"
)

type ServeCommander struct {
	listen     string
	sqlitePath string
	envFile    string
	debug      bool
	logger     *zap.Logger
}

const serveLongDesc string = `Run the debate API server.

Configuration comes from the environment (optionally via a .env file):
  MODEL_PROVIDER / MODEL_NAME   Pin the provider and model
  OPENAI_API_KEY etc.           Provider credentials
  DATABASE_URL / SQLITE_PATH    Conversation persistence`

const serveShortDesc string = "Run the debate API server"

func NewServeCmd() *cobra.Command {
	cmder := &ServeCommander{}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: serveShortDesc,
		Long:  serveLongDesc,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var err error
			cmder.debug, err = cmd.Flags().GetBool("debug")
			if err != nil {
				return fmt.Errorf("could not get debug flag: %v", err)
			}
			return cmder.run()
		},
	}

	cmd.Flags().StringVarP(&cmder.listen, "listen", "l", "", "Address to listen on (default from LISTEN_ADDR, else :8000)")
	cmd.Flags().StringVarP(&cmder.sqlitePath, "sqlite", "s", "", "Path to SQLite database (overrides SQLITE_PATH)")
	cmd.Flags().StringVarP(&cmder.envFile, "env-file", "e", ".env", "Path to .env file (missing file is ignored)")

	return cmd
}

func (c *ServeCommander) run() error {
	c.logger = logger.NewLogger(c.debug)
	defer c.logger.Sync()

	if err := godotenv.Load(c.envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading env file %s: %w", c.envFile, err)
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading configuration: %w", err)
	}
	if c.listen != "" {
		cfg.ListenAddr = c.listen
	}
	if c.sqlitePath != "" {
		cfg.SQLitePath = c.sqlitePath
	}

	store, err := c.createStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	registry := provider.NewBuiltinRegistry(cfg.OllamaURL)
	selector := provider.NewSelector(registry, cfg, cfg.Provider, cfg.Model)
	client := provider.NewClient(registry, cfg, c.logger,
		provider.WithTimeout(cfg.RequestTimeout),
	)

	debates := debate.NewService(debate.Config{
		ContextWindow: cfg.ContextWindow,
		CallTimeout:   cfg.RequestTimeout,
	}, selector, client, store, c.logger)

	// Resolve the default target once for the health endpoint and warm-up.
	// No configured provider is not fatal here; debate requests report it.
	providerName, model, err := selector.Resolve("", "")
	if err != nil {
		if !errors.Is(err, provider.ErrNoProviderConfigured) {
			return fmt.Errorf("resolving provider: %w", err)
		}
		c.logger.Warn("no provider configured, debate requests will fail until credentials are set")
	} else {
		probe := warmup.NewProbe(client, providerName, model, cfg.WarmupTimeout, c.logger)
		probe.Start(context.Background())
	}

	apiServer := api.NewServer(api.Config{
		ListenAddr: cfg.ListenAddr,
		Provider:   providerName,
		Model:      model,
	}, debates, store, c.logger)

	errChan := make(chan error, 1)
	go func() {
		if err := apiServer.Run(); err != nil {
			errChan <- fmt.Errorf("API server error: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case sig := <-sigChan:
		c.logger.Info("received signal, shutting down", zap.String("signal", sig.String()))
		return apiServer.Shutdown()
	}
}

func (c *ServeCommander) createStore(cfg *config.Config) (conversation.Store, error) {
	if cfg.DatabaseURL != "" {
		store, err := postgres.NewStore(context.Background(), cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open Postgres store: %w", err)
		}
		c.logger.Info("using Postgres storage")
		return store, nil
	}

	if cfg.SQLitePath != "" {
		store, err := sqlite.NewStore(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite store: %w", err)
		}
		c.logger.Info("using SQLite storage", zap.String("path", cfg.SQLitePath))
		return store, nil
	}

	c.logger.Info("using in-memory storage")
	return inmemory.NewStore(), nil
}
