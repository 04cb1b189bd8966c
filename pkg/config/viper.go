// Package config loads the process configuration into an immutable snapshot.
package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// Load builds the configuration snapshot from the environment (and an
// optional .env file loaded by the caller beforehand).
//
// Config precedence (highest to lowest):
//  1. Environment variables (MODEL_PROVIDER, OPENAI_API_KEY, ...)
//  2. Defaults from NewDefaultConfig()
//
// Recognized keys use the exact env names the original deployment used, so
// there is no prefix or key replacement.
func Load() (*Config, error) {
	v := viper.New()

	setViperDefaults(v)

	for _, key := range append([]string{
		"MODEL_PROVIDER",
		"MODEL_NAME",
		"OLLAMA_URL",
		"DATABASE_URL",
		"SQLITE_PATH",
		"LISTEN_ADDR",
		"CONTEXT_WINDOW",
		"REQUEST_TIMEOUT",
		"WARMUP_TIMEOUT",
	}, CredentialKeys...) {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("binding %s: %w", key, err)
		}
	}

	cfg := NewDefaultConfig()
	cfg.Provider = v.GetString("MODEL_PROVIDER")
	cfg.Model = v.GetString("MODEL_NAME")
	cfg.OllamaURL = v.GetString("OLLAMA_URL")
	cfg.DatabaseURL = v.GetString("DATABASE_URL")
	cfg.SQLitePath = v.GetString("SQLITE_PATH")
	cfg.ListenAddr = v.GetString("LISTEN_ADDR")
	cfg.ContextWindow = v.GetInt("CONTEXT_WINDOW")
	cfg.RequestTimeout = v.GetDuration("REQUEST_TIMEOUT")
	cfg.WarmupTimeout = v.GetDuration("WARMUP_TIMEOUT")

	for _, key := range CredentialKeys {
		if val := v.GetString(key); val != "" {
			cfg.Credentials[key] = val
		}
	}

	if cfg.ContextWindow < 0 {
		return nil, fmt.Errorf("CONTEXT_WINDOW must not be negative, got %d", cfg.ContextWindow)
	}
	if cfg.RequestTimeout <= 0 {
		return nil, fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	if cfg.WarmupTimeout <= 0 {
		return nil, fmt.Errorf("WARMUP_TIMEOUT must be positive, got %s", cfg.WarmupTimeout)
	}

	return cfg, nil
}

// setViperDefaults registers defaults from NewDefaultConfig() into viper.
// This keeps defaults.go as the single source of truth.
func setViperDefaults(v *viper.Viper) {
	d := NewDefaultConfig()

	v.SetDefault("OLLAMA_URL", d.OllamaURL)
	v.SetDefault("LISTEN_ADDR", d.ListenAddr)
	v.SetDefault("CONTEXT_WINDOW", d.ContextWindow)
	v.SetDefault("REQUEST_TIMEOUT", d.RequestTimeout.String())
	v.SetDefault("WARMUP_TIMEOUT", d.WarmupTimeout.String())
}
