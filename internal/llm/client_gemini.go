package llm

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// =============================================================================
// GOOGLE GEMINI CLIENT
// =============================================================================

// GeminiConfig holds configuration for the Gemini client.
type GeminiConfig struct {
	APIKey      string
	BaseURL     string // empty = SDK default endpoint
	Model       string
	Timeout     time.Duration
	Temperature float32
}

// DefaultGeminiConfig returns sensible defaults.
func DefaultGeminiConfig(apiKey string) GeminiConfig {
	return GeminiConfig{
		APIKey:  apiKey,
		Model:   "gemini-2.5-flash",
		Timeout: 120 * time.Second,
	}
}

// GeminiClient implements LLMClient on top of the google.golang.org/genai SDK.
// Structured calls use responseSchema so the model itself enforces the shape.
type GeminiClient struct {
	client      *genai.Client
	model       string
	temperature float32
}

// NewGeminiClient creates a Gemini client with default config.
func NewGeminiClient(ctx context.Context, apiKey string) (*GeminiClient, error) {
	return NewGeminiClientWithConfig(ctx, DefaultGeminiConfig(apiKey))
}

// NewGeminiClientWithConfig creates a Gemini client with custom config.
func NewGeminiClientWithConfig(ctx context.Context, cfg GeminiConfig) (*GeminiClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini: %w", ErrNoAPIKey)
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = DefaultGeminiConfig("").Model
	}

	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.BaseURL != "" {
		cc.HTTPOptions.BaseURL = cfg.BaseURL
	}
	if cfg.Timeout > 0 {
		cc.HTTPClient = &http.Client{Timeout: cfg.Timeout}
	}

	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiClient{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
	}, nil
}

// Complete sends a plain-text prompt.
func (c *GeminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	return c.generate(ctx, prompt, c.baseConfig())
}

// CompleteWithSchema sends a prompt with application/json output constrained to schema.
func (c *GeminiClient) CompleteWithSchema(ctx context.Context, prompt string, schema *Schema) (string, error) {
	gc := c.baseConfig()
	if schema != nil {
		gc.ResponseMIMEType = "application/json"
		gc.ResponseSchema = toGenAISchema(schema)
	}
	return c.generate(ctx, prompt, gc)
}

func (c *GeminiClient) baseConfig() *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{}
	if c.temperature > 0 {
		gc.Temperature = genai.Ptr(c.temperature)
	}
	return gc
}

func (c *GeminiClient) generate(ctx context.Context, prompt string, gc *genai.GenerateContentConfig) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), gc)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
			return "", fmt.Errorf("gemini blocked prompt (%s): %w", resp.PromptFeedback.BlockReason, ErrEmptyCompletion)
		}
		return "", fmt.Errorf("gemini: %w", ErrEmptyCompletion)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini (finish=%s): %w", resp.Candidates[0].FinishReason, ErrEmptyCompletion)
	}
	return text, nil
}

// toGenAISchema converts a flat string-property Schema to the SDK type.
func toGenAISchema(s *Schema) *genai.Schema {
	props := make(map[string]*genai.Schema, len(s.Properties))
	for _, p := range s.Properties {
		props[p.Name] = &genai.Schema{
			Type:        genai.TypeString,
			Description: p.Description,
		}
	}
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: s.Description,
		Properties:  props,
		Required:    s.RequiredNames(),
	}
}

// SetModel changes the model used for completions.
func (c *GeminiClient) SetModel(model string) {
	c.model = model
}

// GetModel returns the current model.
func (c *GeminiClient) GetModel() string {
	return c.model
}

// Name returns the client name.
func (c *GeminiClient) Name() string {
	return fmt.Sprintf("genai:%s", c.model)
}
