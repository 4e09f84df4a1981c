package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all studyplanner configuration.
type Config struct {
	// Core settings
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	// Model provider used for schedule generation
	LLM LLMConfig `yaml:"llm"`

	// HTTP API
	Server ServerConfig `yaml:"server"`

	// Logging
	Logging LoggingConfig `yaml:"logging"`
}

// DefaultConfigPath is where the CLI looks for a config file when --config is not given.
const DefaultConfigPath = "planner.yaml"

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Name:    "studyplanner",
		Version: "0.3.0",

		LLM: LLMConfig{
			Provider:    ProviderGemini,
			Model:       DefaultGeminiModel,
			Timeout:     "120s",
			Temperature: 0.7,
		},

		Server: ServerConfig{
			Addr:          ":8080",
			ReadTimeout:   "15s",
			WriteTimeout:  "180s",
			ShutdownGrace: "10s",
		},

		Logging: LoggingConfig{
			Level:     "info",
			Format:    "console",
			DebugMode: false,
		},
	}
}

// Load loads configuration from a YAML file.
// A missing file is not an error; defaults plus environment overrides are returned.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	} else if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// Validate checks provider names and duration strings.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case ProviderGemini, ProviderOpenAI:
	default:
		return fmt.Errorf("unknown llm provider %q (valid: %s, %s)", c.LLM.Provider, ProviderGemini, ProviderOpenAI)
	}

	durations := map[string]string{
		"llm.timeout":           c.LLM.Timeout,
		"server.read_timeout":   c.Server.ReadTimeout,
		"server.write_timeout":  c.Server.WriteTimeout,
		"server.shutdown_grace": c.Server.ShutdownGrace,
	}
	for key, value := range durations {
		if value == "" {
			continue
		}
		d, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", key, value, err)
		}
		if d <= 0 {
			return fmt.Errorf("invalid %s %q: must be positive", key, value)
		}
	}

	switch c.Logging.Format {
	case "", "json", "console":
	default:
		return fmt.Errorf("invalid logging.format %q (valid: json, console)", c.Logging.Format)
	}

	return nil
}

// applyEnvOverrides applies environment variable overrides.
func (c *Config) applyEnvOverrides() {
	// API keys, checked in priority order; the last one set wins.
	if key := os.Getenv("GOOGLE_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = ProviderGemini
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		c.LLM.APIKey = key
		c.LLM.Provider = ProviderGemini
	}
	if key := os.Getenv("OPENAI_API_KEY"); key != "" && c.LLM.APIKey == "" {
		c.LLM.APIKey = key
		c.LLM.Provider = ProviderOpenAI
		if c.LLM.Model == DefaultGeminiModel {
			c.LLM.Model = DefaultOpenAIModel
		}
	}

	if model := os.Getenv("PLANNER_MODEL"); model != "" {
		c.LLM.Model = model
	}
	if timeout := os.Getenv("PLANNER_LLM_TIMEOUT"); timeout != "" {
		c.LLM.Timeout = timeout
	}
	if addr := os.Getenv("PLANNER_ADDR"); addr != "" {
		c.Server.Addr = addr
	}
}

// GetLLMTimeout returns the LLM timeout as a duration.
func (c *Config) GetLLMTimeout() time.Duration {
	return parseDurationOr(c.LLM.Timeout, 120*time.Second)
}

func parseDurationOr(value string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(value)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
