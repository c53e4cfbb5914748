// Package config loads server and client settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"sulphur/internal/graph"
)

const envFile = ".env"

// ErrInvalidConfig is wrapped by every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

type ServerConfig struct {
	// Address the HTTP exporter binds to.
	Address string `env:"SULPHUR_ADDRESS" envDefault:"127.0.0.1:8899"`
	// GraphLength is the sparkline length in glyphs. Each glyph holds two
	// samples, so the history keeps twice as many.
	GraphLength int `env:"SULPHUR_GRAPH_LENGTH" envDefault:"5"`
	// SpanSeconds is the lookback period one full sparkline represents.
	SpanSeconds     float64       `env:"SULPHUR_SPAN_SECONDS"     envDefault:"5"`
	LogLevel        string        `env:"SULPHUR_LOG_LEVEL"        envDefault:"info"`
	LogFormat       string        `env:"SULPHUR_LOG_FORMAT"       envDefault:"text"`
	RateLimit       float64       `env:"SULPHUR_RATE_LIMIT"       envDefault:"100"`
	RateBurst       int           `env:"SULPHUR_RATE_BURST"       envDefault:"200"`
	ShutdownTimeout time.Duration `env:"SULPHUR_SHUTDOWN_TIMEOUT" envDefault:"5s"`
}

type ClientConfig struct {
	APIAddress string        `env:"SULPHUR_API_ADDRESS"    envDefault:"127.0.0.1:8899"`
	Timeout    time.Duration `env:"SULPHUR_CLIENT_TIMEOUT" envDefault:"5s"`
	LogLevel   string        `env:"SULPHUR_LOG_LEVEL"      envDefault:"warn"`
	LogFormat  string        `env:"SULPHUR_LOG_FORMAT"     envDefault:"text"`
}

// loadDotEnv reads .env from the working directory when one exists.
func loadDotEnv() {
	if _, err := os.Stat(envFile); err == nil {
		_ = godotenv.Load(envFile)
	}
}

// LoadServer returns the server settings. Values from the process
// environment win over .env.
func LoadServer() (ServerConfig, error) {
	loadDotEnv()

	var cfg ServerConfig
	if err := env.Parse(&cfg); err != nil {
		return ServerConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

func LoadClient() (ClientConfig, error) {
	loadDotEnv()

	var cfg ClientConfig
	if err := env.Parse(&cfg); err != nil {
		return ClientConfig{}, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// Capacity is the number of samples retained per metric.
func (c ServerConfig) Capacity() int {
	return graph.Capacity(c.GraphLength)
}

// Interval is the sampling period: the lookback span spread evenly over the
// history capacity.
func (c ServerConfig) Interval() time.Duration {
	return time.Duration(c.SpanSeconds * float64(time.Second) / float64(c.Capacity()))
}

func (c ServerConfig) Validate() error {
	switch {
	case c.Address == "":
		return fmt.Errorf("%w: address is empty", ErrInvalidConfig)
	case c.GraphLength <= 0:
		return fmt.Errorf("%w: graph length must be positive, got %d", ErrInvalidConfig, c.GraphLength)
	case c.SpanSeconds <= 0:
		return fmt.Errorf("%w: span must be positive, got %v", ErrInvalidConfig, c.SpanSeconds)
	case c.Interval() <= 0:
		return fmt.Errorf("%w: span %vs is too short for %d samples", ErrInvalidConfig, c.SpanSeconds, c.Capacity())
	case c.RateLimit <= 0 || c.RateBurst <= 0:
		return fmt.Errorf("%w: rate limit and burst must be positive", ErrInvalidConfig)
	}
	return nil
}

func (c ClientConfig) Validate() error {
	if c.APIAddress == "" {
		return fmt.Errorf("%w: api address is empty", ErrInvalidConfig)
	}
	return nil
}
