package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	apperrors "movie-graph/backend/pkg/errors"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("NEO4J_URI", "")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "bolt://localhost:7687", cfg.Neo4jURI)
	assert.Equal(t, 5*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ENV", "production")
	t.Setenv("NEO4J_URI", "neo4j://graph:7687")
	t.Setenv("NEO4J_DATABASE", "movies")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "12")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "neo4j://graph:7687", cfg.Neo4jURI)
	assert.Equal(t, "movies", cfg.Neo4jDatabase)
	assert.Equal(t, 12*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Port:            "8080",
			Neo4jURI:        "bolt://localhost:7687",
			Neo4jUser:       "neo4j",
			Neo4jPassword:   "secret",
			ShutdownTimeout: time.Second,
		}
	}

	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"missing uri", func(c *Config) { c.Neo4jURI = "" }, "NEO4J_URI"},
		{"missing user", func(c *Config) { c.Neo4jUser = "" }, "NEO4J_USER"},
		{"missing password", func(c *Config) { c.Neo4jPassword = "" }, "NEO4J_PASSWORD"},
		{"bad port", func(c *Config) { c.Port = "http" }, "PORT"},
		{"zero timeout", func(c *Config) { c.ShutdownTimeout = 0 }, "SHUTDOWN_TIMEOUT_SECONDS"},
	}

	require.NoError(t, valid().Validate())

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeConfig))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}
