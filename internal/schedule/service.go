package schedule

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"studyplanner/internal/llm"
	"studyplanner/internal/logging"
)

// Service generates study schedules through an LLMClient.
// It holds no per-request state and is safe for concurrent use.
type Service struct {
	client llm.LLMClient
	logger *zap.SugaredLogger
}

// Option configures a Service.
type Option func(*Service)

// WithLogger overrides the schedule category logger.
func WithLogger(logger *zap.SugaredLogger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService creates a Service backed by client.
func NewService(client llm.LLMClient, opts ...Option) *Service {
	s := &Service{
		client: client,
		logger: logging.Get(logging.CategorySchedule),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate makes one model call for req and returns the parsed schedule.
// It does not retry and imposes no timeout of its own; bound ctx to limit
// how long the caller waits.
func (s *Service) Generate(ctx context.Context, req ScheduleRequest) (ScheduleResponse, error) {
	if !req.valid {
		return ScheduleResponse{}, &ValidationError{Field: FieldCourses, Err: ErrNoCourses}
	}

	log := s.logger.With("courses", len(req.courses), "hours", req.availableHours)
	if id := llm.RequestIDFromContext(ctx); id != "" {
		log = log.With("request_id", id)
	}

	prompt := RenderPrompt(req)
	start := time.Now()

	raw, err := s.client.CompleteWithSchema(ctx, prompt, OutputSchema)
	if err != nil {
		log.Warnw("schedule generation failed", "stage", "invoke", "duration", time.Since(start), "error", err)
		return ScheduleResponse{}, &GenerationError{Cause: err}
	}

	text, err := parseOutput(raw)
	if err != nil {
		log.Warnw("schedule generation failed", "stage", "parse", "raw_len", len(raw), "error", err)
		return ScheduleResponse{}, &GenerationError{Cause: err}
	}

	log.Infow("schedule generated", "duration", time.Since(start), "schedule_len", len(text))
	return ScheduleResponse{ScheduleText: text}, nil
}

// parseOutput extracts the schedule field from the model's JSON answer.
// Whitespace-only text counts as missing.
func parseOutput(raw string) (string, error) {
	var out struct {
		Schedule *string `json:"schedule"`
	}
	if err := json.Unmarshal([]byte(stripMarkdownCodeFences(raw)), &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedOutput, err)
	}
	if out.Schedule == nil {
		return "", fmt.Errorf("%w: schedule field missing", ErrMalformedOutput)
	}
	text := strings.TrimSpace(*out.Schedule)
	if text == "" {
		return "", fmt.Errorf("%w: schedule field empty", ErrMalformedOutput)
	}
	return text, nil
}

// stripMarkdownCodeFences removes a ```json ... ``` wrapper some models add
// even in JSON mode.
func stripMarkdownCodeFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	firstNewline := strings.Index(trimmed, "\n")
	lastFence := strings.LastIndex(trimmed, "```")
	if firstNewline == -1 || lastFence <= firstNewline {
		return trimmed
	}
	return strings.TrimSpace(trimmed[firstNewline+1 : lastFence])
}
