// Package provider implements the LLM provider abstraction: a static registry
// of provider descriptors, a selector that resolves which provider and model
// to use, and a single data-driven client that performs the outbound call and
// normalizes heterogeneous response shapes.
//
// Each provider differs only in endpoint, auth header, request body shape,
// and response extraction path. All of that lives in the Descriptor, so
// adding a provider is a pure data change.
package provider

import "strings"

// Shape selects the request body layout and the matching response
// extraction path for a provider.
type Shape string

const (
	// ShapeChat is the OpenAI-style chat completion format: a messages
	// array in, choices[0].message.content out.
	ShapeChat Shape = "chat"

	// ShapeGenerate is the bare generation format used by local daemons:
	// a single prompt field in, a response (or results[0].generated_text)
	// field out.
	ShapeGenerate Shape = "generate"
)

// Descriptor is the static description of one provider. Immutable after
// registry construction.
type Descriptor struct {
	// Name is the unique provider key (lowercase).
	Name string

	// CredentialEnvKey names the configuration key holding the API key.
	// Empty means the provider requires no credential (local daemon).
	CredentialEnvKey string

	// Endpoint is the full URL the client POSTs to.
	Endpoint string

	// DefaultModel is used when neither the request nor the configuration
	// names a model.
	DefaultModel string

	// Shape picks the request body layout and response extraction path.
	Shape Shape
}

// Normalize canonicalizes a provider name for registry lookups.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Registry is an ordered, immutable table of provider descriptors. Order
// matters: the Selector scans it front to back when picking a provider by
// available credential.
type Registry struct {
	order  []string
	byName map[string]Descriptor
}

// NewRegistry builds a registry from descriptors, preserving their order.
// Later duplicates of a name overwrite earlier ones.
func NewRegistry(descriptors ...Descriptor) *Registry {
	r := &Registry{
		byName: make(map[string]Descriptor, len(descriptors)),
	}
	for _, d := range descriptors {
		name := Normalize(d.Name)
		d.Name = name
		if _, exists := r.byName[name]; !exists {
			r.order = append(r.order, name)
		}
		r.byName[name] = d
	}
	return r
}

// Lookup returns the descriptor registered under name, if any.
func (r *Registry) Lookup(name string) (Descriptor, bool) {
	d, ok := r.byName[Normalize(name)]
	return d, ok
}

// Names returns the provider names in registration order.
func (r *Registry) Names() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Descriptors returns all descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.byName[name])
	}
	return out
}
