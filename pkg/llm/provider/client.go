package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// maxGeneratedTokens caps generation on chat-style providers.
	maxGeneratedTokens = 500

	// samplingTemperature is applied where the body shape supports it.
	samplingTemperature = 0.7

	defaultCallTimeout = 60 * time.Second

	// maxErrorBodyBytes bounds how much of an upstream error body is
	// carried in an HTTPError.
	maxErrorBodyBytes = 2048
)

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(p *Client) { p.httpClient = c }
}

// WithTimeout sets the per-call timeout on the underlying HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(p *Client) { p.httpClient.Timeout = d }
}

// Client performs outbound provider calls. One generic dispatch routine is
// parameterized by the provider's Descriptor; no per-provider call sites.
//
// Call never panics and never lets a raw transport fault escape: every
// outcome is either the generated text or a typed error the caller can treat
// as ordinary data.
type Client struct {
	registry   *Registry
	creds      CredentialSource
	httpClient *http.Client
	logger     *zap.Logger
}

// NewClient creates a provider client over the given registry and
// configuration snapshot.
func NewClient(registry *Registry, creds CredentialSource, logger *zap.Logger, opts ...Option) *Client {
	c := &Client{
		registry:   registry,
		creds:      creds,
		httpClient: &http.Client{Timeout: defaultCallTimeout},
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Call sends prompt to the named provider's model and returns the generated
// text with surrounding whitespace trimmed.
func (c *Client) Call(ctx context.Context, providerName, model, prompt string) (string, error) {
	desc, ok := c.registry.Lookup(providerName)
	if !ok {
		return "", UnknownProviderError{Name: providerName}
	}

	credential := ""
	if desc.CredentialEnvKey != "" {
		var found bool
		credential, found = c.creds.Credential(desc.CredentialEnvKey)
		if !found {
			return "", MissingCredentialError{Provider: desc.Name, EnvKey: desc.CredentialEnvKey}
		}
	}

	body, err := buildBody(desc.Shape, model, prompt)
	if err != nil {
		return "", fmt.Errorf("provider %s: building request body: %w", desc.Name, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, desc.Endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("provider %s: creating request: %w", desc.Name, err)
	}
	req.Header.Set("Content-Type", "application/json")
	if credential != "" {
		req.Header.Set("Authorization", "Bearer "+credential)
	}

	c.logger.Debug("calling provider",
		zap.String("provider", desc.Name),
		zap.String("model", model),
	)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Transport faults (refused connection, timeout, DNS) are
		// normalized here, never re-raised past this component.
		return "", fmt.Errorf("provider %s: request failed: %w", desc.Name, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("provider %s: reading response: %w", desc.Name, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", HTTPError{
			Provider: desc.Name,
			Status:   resp.StatusCode,
			Body:     truncate(string(raw), maxErrorBodyBytes),
		}
	}

	text, ok := extractText(desc.Shape, raw)
	if !ok {
		return "", ShapeError{Provider: desc.Name, Raw: raw}
	}

	return strings.TrimSpace(text), nil
}

// chat-style request/response wire types (OpenAI-compatible)

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// generation-style wire types (local daemon and text-generation hosts)

type generateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
}

type generateResponse struct {
	Response *string `json:"response"`
	Results  []struct {
		GeneratedText *string `json:"generated_text"`
	} `json:"results"`
}

func buildBody(shape Shape, model, prompt string) ([]byte, error) {
	switch shape {
	case ShapeGenerate:
		return json.Marshal(generateRequest{
			Model:  model,
			Prompt: prompt,
			Stream: false,
		})
	default:
		return json.Marshal(chatRequest{
			Model:       model,
			Messages:    []chatMessage{{Role: "user", Content: prompt}},
			MaxTokens:   maxGeneratedTokens,
			Temperature: samplingTemperature,
		})
	}
}

// extractText pulls the generated text out of a 2xx body using the shape's
// known extraction path. Returns false when the expected field is absent.
func extractText(shape Shape, raw []byte) (string, bool) {
	switch shape {
	case ShapeGenerate:
		var parsed generateResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return "", false
		}
		if parsed.Response != nil {
			return *parsed.Response, true
		}
		if len(parsed.Results) > 0 && parsed.Results[0].GeneratedText != nil {
			return *parsed.Results[0].GeneratedText, true
		}
		return "", false
	default:
		var parsed chatResponse
		if err := json.Unmarshal(raw, &parsed); err != nil {
			return "", false
		}
		if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == nil {
			return "", false
		}
		return *parsed.Choices[0].Message.Content, true
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
