package llm

import (
	"context"
	"time"

	"go.uber.org/zap"

	"studyplanner/internal/logging"
)

// TracingClient wraps any LLMClient and logs every call with its duration
// and payload sizes. Prompts and responses are only logged at debug level.
type TracingClient struct {
	underlying LLMClient
	provider   string
	logger     *zap.SugaredLogger
}

// NewTracingClient creates a tracing wrapper around an existing client.
// A nil logger uses the api category logger.
func NewTracingClient(underlying LLMClient, provider string, logger *zap.SugaredLogger) *TracingClient {
	if logger == nil {
		logger = logging.Get(logging.CategoryAPI)
	}
	return &TracingClient{
		underlying: underlying,
		provider:   provider,
		logger:     logger,
	}
}

// Complete implements LLMClient.Complete with tracing.
func (tc *TracingClient) Complete(ctx context.Context, prompt string) (string, error) {
	return tc.trace(ctx, "complete", prompt, func() (string, error) {
		return tc.underlying.Complete(ctx, prompt)
	})
}

// CompleteWithSchema implements LLMClient.CompleteWithSchema with tracing.
func (tc *TracingClient) CompleteWithSchema(ctx context.Context, prompt string, schema *Schema) (string, error) {
	return tc.trace(ctx, "complete_with_schema", prompt, func() (string, error) {
		return tc.underlying.CompleteWithSchema(ctx, prompt, schema)
	})
}

func (tc *TracingClient) trace(ctx context.Context, op, prompt string, call func() (string, error)) (string, error) {
	log := tc.logger.With("provider", tc.provider, "op", op)
	if id := RequestIDFromContext(ctx); id != "" {
		log = log.With("request_id", id)
	}

	start := time.Now()
	log.Infow("LLM call started", "prompt_len", len(prompt))
	log.Debugw("LLM prompt", "prompt", prompt)

	response, err := call()

	duration := time.Since(start)
	if err != nil {
		log.Warnw("LLM call failed", "duration", duration, "error", err)
		return "", err
	}

	log.Infow("LLM call completed", "duration", duration, "response_len", len(response))
	log.Debugw("LLM response", "response", response)
	return response, nil
}
