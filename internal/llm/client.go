// Package llm is the boundary to generative model providers. Callers depend
// on LLMClient only; provider clients translate a prompt and an optional
// output schema into one request to their API and return the raw text.
package llm

import (
	"context"
	"errors"
)

// LLMClient defines the interface for model providers.
type LLMClient interface {
	Complete(ctx context.Context, prompt string) (string, error)

	// CompleteWithSchema asks the provider to answer with a JSON object
	// matching schema and returns the raw JSON text unparsed.
	CompleteWithSchema(ctx context.Context, prompt string, schema *Schema) (string, error)
}

// Provider names a model provider.
type Provider string

const (
	ProviderGemini Provider = "gemini"
	ProviderOpenAI Provider = "openai"
)

var (
	// ErrNoAPIKey is returned when a provider client is built without credentials.
	ErrNoAPIKey = errors.New("API key not configured")

	// ErrEmptyCompletion is returned when the provider answered with no text.
	ErrEmptyCompletion = errors.New("no completion returned")
)

// Schema describes a flat JSON object whose properties are all strings.
// It is the only output shape studyplanner asks providers for.
type Schema struct {
	Name        string
	Description string
	Properties  []Property
}

// Property is one string-valued field of a Schema.
type Property struct {
	Name        string
	Description string
	Required    bool
}

// RequiredNames returns the names of required properties in declaration order.
func (s *Schema) RequiredNames() []string {
	var names []string
	for _, p := range s.Properties {
		if p.Required {
			names = append(names, p.Name)
		}
	}
	return names
}

// JSONSchema renders the schema as a JSON Schema object.
func (s *Schema) JSONSchema() map[string]interface{} {
	props := make(map[string]interface{}, len(s.Properties))
	for _, p := range s.Properties {
		prop := map[string]interface{}{"type": "string"}
		if p.Description != "" {
			prop["description"] = p.Description
		}
		props[p.Name] = prop
	}

	out := map[string]interface{}{
		"type":                 "object",
		"properties":           props,
		"additionalProperties": false,
	}
	if s.Description != "" {
		out["description"] = s.Description
	}
	if required := s.RequiredNames(); len(required) > 0 {
		out["required"] = required
	}
	return out
}

type requestIDKey struct{}

// WithRequestID attaches a correlation ID that TracingClient logs with each call.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the correlation ID, or "" if none was set.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}
