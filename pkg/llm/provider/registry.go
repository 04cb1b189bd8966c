package provider

import "strings"

// Supported provider name constants
const (
	OpenAI    = "openai"
	Together  = "together"
	DeepInfra = "deepinfra"
	Ollama    = "ollama"
)

// NewBuiltinRegistry returns the registry of providers this backend knows
// how to talk to. The scan order below is the credential fallback order the
// Selector uses. Ollama carries no credential key, so it is only selected
// explicitly, never by credential scan.
func NewBuiltinRegistry(ollamaURL string) *Registry {
	return NewRegistry(
		Descriptor{
			Name:             OpenAI,
			CredentialEnvKey: "OPENAI_API_KEY",
			Endpoint:         "https://api.openai.com/v1/chat/completions",
			DefaultModel:     "gpt-4o-mini",
			Shape:            ShapeChat,
		},
		Descriptor{
			Name:             Together,
			CredentialEnvKey: "TOGETHER_API_KEY",
			Endpoint:         "https://api.together.xyz/v1/chat/completions",
			DefaultModel:     "meta-llama/Llama-3-8b-chat-hf",
			Shape:            ShapeChat,
		},
		Descriptor{
			Name:             DeepInfra,
			CredentialEnvKey: "DEEPINFRA_API_KEY",
			Endpoint:         "https://api.deepinfra.com/v1/openai/chat/completions",
			DefaultModel:     "meta-llama/Meta-Llama-3-8B-Instruct",
			Shape:            ShapeChat,
		},
		Descriptor{
			Name:         Ollama,
			Endpoint:     strings.TrimRight(ollamaURL, "/") + "/api/generate",
			DefaultModel: "llama3",
			Shape:        ShapeGenerate,
		},
	)
}
