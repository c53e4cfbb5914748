package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerDefaults(t *testing.T) {
	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8899", cfg.Address)
	assert.Equal(t, 5, cfg.GraphLength)
	assert.Equal(t, 10, cfg.Capacity())
	assert.Equal(t, 500*time.Millisecond, cfg.Interval())
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerFromEnvironment(t *testing.T) {
	t.Setenv("SULPHUR_ADDRESS", "0.0.0.0:9000")
	t.Setenv("SULPHUR_GRAPH_LENGTH", "8")
	t.Setenv("SULPHUR_SPAN_SECONDS", "32")
	t.Setenv("SULPHUR_SHUTDOWN_TIMEOUT", "2s")

	cfg, err := LoadServer()
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:9000", cfg.Address)
	assert.Equal(t, 16, cfg.Capacity())
	assert.Equal(t, 2*time.Second, cfg.Interval())
	assert.Equal(t, 2*time.Second, cfg.ShutdownTimeout)
}

func TestLoadServerRejectsMalformedValues(t *testing.T) {
	t.Setenv("SULPHUR_GRAPH_LENGTH", "lots")

	_, err := LoadServer()
	assert.Error(t, err)
}

func TestServerConfigValidate(t *testing.T) {
	valid := ServerConfig{
		Address:     "127.0.0.1:0",
		GraphLength: 5,
		SpanSeconds: 5,
		RateLimit:   100,
		RateBurst:   200,
	}

	tests := []struct {
		name   string
		mutate func(*ServerConfig)
	}{
		{name: "empty address", mutate: func(c *ServerConfig) { c.Address = "" }},
		{name: "zero graph length", mutate: func(c *ServerConfig) { c.GraphLength = 0 }},
		{name: "negative span", mutate: func(c *ServerConfig) { c.SpanSeconds = -1 }},
		{name: "span too short", mutate: func(c *ServerConfig) { c.SpanSeconds = 1e-12 }},
		{name: "zero burst", mutate: func(c *ServerConfig) { c.RateBurst = 0 }},
	}

	require.NoError(t, valid.Validate())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoadClient(t *testing.T) {
	t.Setenv("SULPHUR_API_ADDRESS", "10.0.0.2:8899")

	cfg, err := LoadClient()
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.2:8899", cfg.APIAddress)
	assert.Equal(t, 5*time.Second, cfg.Timeout)
	assert.NoError(t, cfg.Validate())

	assert.ErrorIs(t, ClientConfig{}.Validate(), ErrInvalidConfig)
}
