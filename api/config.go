// Package api provides the HTTP server for running debates and inspecting
// the conversation history.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8000")
	ListenAddr string

	// Provider and Model are the resolved defaults, reported by the health
	// endpoint so operators can see what a bare request would hit.
	Provider string
	Model    string
}
