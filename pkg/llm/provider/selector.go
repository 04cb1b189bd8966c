package provider

// CredentialSource supplies provider credentials from the configuration
// snapshot. *config.Config implements it; tests use a plain map.
type CredentialSource interface {
	// Credential returns the value stored under the given env key and
	// whether it is present and non-empty.
	Credential(key string) (string, bool)
}

// Credentials is a map-backed CredentialSource for tests and tooling.
type Credentials map[string]string

func (c Credentials) Credential(key string) (string, bool) {
	v, ok := c[key]
	if !ok || v == "" {
		return "", false
	}
	return v, true
}

// Selector resolves which provider and model a call should use. It is a pure
// function over the configuration snapshot captured at construction: same
// inputs, same answer, no side effects.
type Selector struct {
	registry *Registry
	creds    CredentialSource

	// configured values from MODEL_PROVIDER / MODEL_NAME, may be empty
	provider string
	model    string
}

// NewSelector builds a Selector over the given registry and configuration
// snapshot. provider and model are the configured defaults and may be empty.
func NewSelector(registry *Registry, creds CredentialSource, provider, model string) *Selector {
	return &Selector{
		registry: registry,
		creds:    creds,
		provider: Normalize(provider),
		model:    model,
	}
}

// Resolve picks the provider and model for one call.
//
// Precedence:
//  1. Explicit per-request values, used as-is. A missing explicit model
//     falls back to the configured model, then the provider's default.
//  2. The configured MODEL_PROVIDER / MODEL_NAME pair, when both are set.
//  3. The first registered provider whose credential is present, paired
//     with that provider's default model.
//
// Existence of an explicitly named provider is not validated here; the
// client reports UnknownProviderError at call time.
func (s *Selector) Resolve(explicitProvider, explicitModel string) (string, string, error) {
	if explicitProvider != "" {
		return Normalize(explicitProvider), s.modelFor(Normalize(explicitProvider), explicitModel), nil
	}

	if s.provider != "" && s.model != "" {
		return s.provider, s.model, nil
	}

	if s.provider != "" {
		return s.provider, s.modelFor(s.provider, explicitModel), nil
	}

	for _, d := range s.registry.Descriptors() {
		if d.CredentialEnvKey == "" {
			// Credential-free providers (local daemons) are only used
			// when named explicitly.
			continue
		}
		if _, ok := s.creds.Credential(d.CredentialEnvKey); ok {
			return d.Name, d.DefaultModel, nil
		}
	}

	return "", "", ErrNoProviderConfigured
}

// modelFor picks the model for a resolved provider: explicit request value,
// then the configured model, then the provider's registry default.
func (s *Selector) modelFor(providerName, explicitModel string) string {
	if explicitModel != "" {
		return explicitModel
	}
	if s.model != "" {
		return s.model
	}
	if d, ok := s.registry.Lookup(providerName); ok {
		return d.DefaultModel
	}
	return ""
}
