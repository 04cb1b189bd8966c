package config

import "time"

const (
	defaultOllamaURL      = "http://localhost:11434"
	defaultListenAddr     = ":8000"
	defaultContextWindow  = 6
	defaultRequestTimeout = 60 * time.Second
	defaultWarmupTimeout  = 15 * time.Second
)

// CredentialKeys lists every credential env key the loader captures. One
// entry per provider that requires a key; the local daemon needs none.
var CredentialKeys = []string{
	"OPENAI_API_KEY",
	"TOGETHER_API_KEY",
	"DEEPINFRA_API_KEY",
}

// NewDefaultConfig returns a Config populated with defaults only. Used by
// Load as the base before environment values are merged in, and by tests
// that need a well-formed snapshot.
func NewDefaultConfig() *Config {
	return &Config{
		Credentials:    make(map[string]string),
		OllamaURL:      defaultOllamaURL,
		ListenAddr:     defaultListenAddr,
		ContextWindow:  defaultContextWindow,
		RequestTimeout: defaultRequestTimeout,
		WarmupTimeout:  defaultWarmupTimeout,
	}
}
