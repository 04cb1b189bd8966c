package provider

import (
	"errors"
	"fmt"
)

// ErrNoProviderConfigured is returned by the Selector when no provider was
// requested explicitly, none is configured, and no credential is present for
// any registered provider.
var ErrNoProviderConfigured = errors.New("no provider configured: set MODEL_PROVIDER or a provider API key")

// UnknownProviderError indicates the requested provider is not in the registry.
type UnknownProviderError struct {
	Name string
}

func (e UnknownProviderError) Error() string {
	return fmt.Sprintf("unknown provider %q", e.Name)
}

// MissingCredentialError indicates the provider requires a credential that is
// absent from the configuration. No network call is attempted.
type MissingCredentialError struct {
	Provider string
	EnvKey   string
}

func (e MissingCredentialError) Error() string {
	return fmt.Sprintf("provider %s: missing credential %s", e.Provider, e.EnvKey)
}

// HTTPError indicates the provider answered with a non-2xx status.
type HTTPError struct {
	Provider string
	Status   int
	Body     string
}

func (e HTTPError) Error() string {
	return fmt.Sprintf("provider %s: HTTP %d: %s", e.Provider, e.Status, e.Body)
}

// ShapeError indicates a 2xx response whose body did not contain the
// generated text where the provider's response shape says it should be.
type ShapeError struct {
	Provider string
	Raw      []byte
}

func (e ShapeError) Error() string {
	return fmt.Sprintf("provider %s: unexpected response shape: %s", e.Provider, string(e.Raw))
}
