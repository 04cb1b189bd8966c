package config

import "time"

// Config is the immutable process configuration, built once at startup and
// threaded explicitly into every component that needs it. Nothing reads the
// environment after Load returns.
type Config struct {
	// Provider is the explicitly configured provider name (MODEL_PROVIDER).
	// Empty means "pick the first provider with a credential".
	Provider string

	// Model is the explicitly configured model identifier (MODEL_NAME).
	Model string

	// Credentials maps credential env key names (e.g. "OPENAI_API_KEY") to
	// their values. Keys with empty values are absent.
	Credentials map[string]string

	// OllamaURL is the base URL of the local inference daemon.
	OllamaURL string

	// DatabaseURL is a PostgreSQL connection string. When set, conversation
	// turns are persisted to Postgres.
	DatabaseURL string

	// SQLitePath is the path to a SQLite database file. Used when
	// DatabaseURL is unset. When both are empty the in-memory store is used.
	SQLitePath string

	// ListenAddr is the HTTP listen address for the API server.
	ListenAddr string

	// ContextWindow is the number of recent turns included in prompts.
	ContextWindow int

	// RequestTimeout bounds a single provider call during a debate.
	RequestTimeout time.Duration

	// WarmupTimeout bounds a single warm-up probe call.
	WarmupTimeout time.Duration
}

// Credential returns the credential stored under the given env key, and
// whether it is present and non-empty.
func (c *Config) Credential(key string) (string, bool) {
	v, ok := c.Credentials[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}
