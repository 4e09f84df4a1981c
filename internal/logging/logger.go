// Package logging provides config-driven categorized logging for studyplanner.
// Every category is a named child of one zap logger; categories can be
// switched off individually through the logging section of the config.
// Until Initialize runs, all loggers are no-ops.
package logging

import (
	"fmt"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"studyplanner/internal/config"
)

// Category represents a log category/system
type Category string

const (
	CategoryBoot     Category = "boot"     // Boot/initialization
	CategoryAPI      Category = "api"      // Model provider calls
	CategorySchedule Category = "schedule" // Validation and generation flow
	CategoryHTTP     Category = "http"     // HTTP API requests
	CategoryCatalog  Category = "catalog"  // Course catalog lookups
)

var (
	mu      sync.RWMutex
	base    = zap.NewNop()
	cfg     config.LoggingConfig
	loggers = make(map[Category]*zap.SugaredLogger)
)

// Build constructs a zap logger from the logging config. Output goes to
// stderr so stdout stays free for command output.
func Build(c config.LoggingConfig) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if c.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalLevelEncoder
	}

	level := zapcore.InfoLevel
	if c.Level != "" {
		parsed, err := zapcore.ParseLevel(c.Level)
		if err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", c.Level, err)
		}
		level = parsed
	}
	if c.DebugMode {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("failed to build logger: %w", err)
	}
	return logger, nil
}

// Initialize builds the process logger from config and installs it.
func Initialize(c config.LoggingConfig) (*zap.Logger, error) {
	logger, err := Build(c)
	if err != nil {
		return nil, err
	}
	Install(logger, c)
	Get(CategoryBoot).Debugw("logging initialized", "level", c.Level, "format", c.Format, "debug_mode", c.DebugMode)
	return logger, nil
}

// Install replaces the base logger and category filter. Category loggers
// handed out earlier keep their old core.
func Install(logger *zap.Logger, c config.LoggingConfig) {
	if logger == nil {
		logger = zap.NewNop()
	}
	mu.Lock()
	defer mu.Unlock()
	base = logger
	cfg = c
	loggers = make(map[Category]*zap.SugaredLogger)
}

// Reset restores the no-op logger.
func Reset() {
	Install(nil, config.LoggingConfig{})
}

// IsCategoryEnabled reports whether a category writes anywhere.
func IsCategoryEnabled(category Category) bool {
	mu.RLock()
	defer mu.RUnlock()
	return cfg.IsCategoryEnabled(string(category))
}

// Get returns the logger for a category, creating it on first use.
func Get(category Category) *zap.SugaredLogger {
	mu.RLock()
	l, ok := loggers[category]
	mu.RUnlock()
	if ok {
		return l
	}

	mu.Lock()
	defer mu.Unlock()
	if l, ok := loggers[category]; ok {
		return l
	}

	if cfg.IsCategoryEnabled(string(category)) {
		l = base.Named(string(category)).Sugar()
	} else {
		l = zap.NewNop().Sugar()
	}
	loggers[category] = l
	return l
}

// Sync flushes the base logger.
func Sync() {
	mu.RLock()
	l := base
	mu.RUnlock()
	_ = l.Sync()
}

// =============================================================================
// CONVENIENCE FUNCTIONS
// =============================================================================

// API logs an info line for model provider calls.
func API(format string, args ...interface{}) {
	Get(CategoryAPI).Infof(format, args...)
}

// APIDebug logs a debug line for model provider calls.
func APIDebug(format string, args ...interface{}) {
	Get(CategoryAPI).Debugf(format, args...)
}
