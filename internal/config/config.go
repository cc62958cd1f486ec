// Package config loads process settings from the environment.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds settings shared by the CLI and the HTTP server. LLM
// provider settings live in llm.Config.
type Config struct {
	LogLevel string `env:"KOUSUAN_LOG_LEVEL" envDefault:"info"`

	// Addr is the listen address for `kousuan serve`.
	Addr string `env:"KOUSUAN_ADDR" envDefault:":8080"`

	// DBPath overrides the LLM event log location. Empty means
	// store.DefaultDBPath().
	DBPath string `env:"KOUSUAN_DB"`

	// RequestTimeout bounds each HTTP request, including the remote
	// problem call.
	RequestTimeout time.Duration `env:"KOUSUAN_REQUEST_TIMEOUT" envDefault:"30s"`

	// Strict turns on answer-format and math checks for remote problems.
	Strict bool `env:"KOUSUAN_STRICT" envDefault:"false"`
}

// Load parses Config from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	if cfg.RequestTimeout <= 0 {
		return Config{}, fmt.Errorf("KOUSUAN_REQUEST_TIMEOUT must be positive, got %s", cfg.RequestTimeout)
	}
	return cfg, nil
}

// ParseLevel maps debug, info, warn or error to a slog level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("invalid log level %q: must be debug, info, warn or error", s)
}

// NewLogger returns a text logger writing to w at the configured level.
// An unparseable level falls back to info.
func (c Config) NewLogger(w io.Writer) *slog.Logger {
	level, err := ParseLevel(c.LogLevel)
	if err != nil {
		level = slog.LevelInfo
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
