package config

import "time"

// ServerConfig configures the HTTP API started by `planner serve`.
type ServerConfig struct {
	Addr          string `yaml:"addr"`
	ReadTimeout   string `yaml:"read_timeout"`
	WriteTimeout  string `yaml:"write_timeout"`
	ShutdownGrace string `yaml:"shutdown_grace"`
}

// GetReadTimeout returns the server read timeout.
func (s ServerConfig) GetReadTimeout() time.Duration {
	return parseDurationOr(s.ReadTimeout, 15*time.Second)
}

// GetWriteTimeout returns the server write timeout. It must outlast the LLM timeout.
func (s ServerConfig) GetWriteTimeout() time.Duration {
	return parseDurationOr(s.WriteTimeout, 180*time.Second)
}

// GetShutdownGrace returns how long in-flight requests get on shutdown.
func (s ServerConfig) GetShutdownGrace() time.Duration {
	return parseDurationOr(s.ShutdownGrace, 10*time.Second)
}
