package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rvrjc/campusbot/internal/engine"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT", "INTENTS_PATH",
		"MATCH_STRATEGY", "KEYWORD_THRESHOLD", "TFIDF_THRESHOLD", "SPELL_CORRECTION",
		"MAX_MESSAGE_LENGTH", "CORS_ALLOWED_ORIGINS", "NATS_URL", "NATS_SUBJECT_PREFIX",
		"NATS_TOKEN", "LOG_LEVEL", "TRACING_ENABLED", "TRACING_ENDPOINT",
	} {
		t.Setenv(key, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, 15*time.Second, cfg.ServerReadTimeout)
	assert.Equal(t, 30*time.Second, cfg.ServerWriteTimeout)
	assert.Equal(t, "data/intents.json", cfg.IntentsPath)
	assert.Equal(t, "hybrid", cfg.MatchStrategy)
	assert.Equal(t, 0.4, cfg.KeywordThreshold)
	assert.Equal(t, 0.3, cfg.TFIDFThreshold)
	assert.True(t, cfg.SpellCorrection)
	assert.Equal(t, 2000, cfg.MaxMessageLength)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
	assert.Empty(t, cfg.NATSURL)
	assert.Equal(t, "campusbot", cfg.NATSSubjectPrefix)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.TracingEnabled)

	require.NoError(t, cfg.Validate())
}

func TestLoad_Overrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_READ_TIMEOUT", "5s")
	t.Setenv("MATCH_STRATEGY", "tfidf")
	t.Setenv("KEYWORD_THRESHOLD", "0.55")
	t.Setenv("SPELL_CORRECTION", "false")
	t.Setenv("MAX_MESSAGE_LENGTH", "500")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg := Load()
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, 5*time.Second, cfg.ServerReadTimeout)
	assert.Equal(t, "tfidf", cfg.MatchStrategy)
	assert.Equal(t, 0.55, cfg.KeywordThreshold)
	assert.False(t, cfg.SpellCorrection)
	assert.Equal(t, 500, cfg.MaxMessageLength)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, "nats://localhost:4222", cfg.NATSURL)
	require.NoError(t, cfg.Validate())
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVER_WRITE_TIMEOUT", "soon")
	t.Setenv("TFIDF_THRESHOLD", "high")
	t.Setenv("MAX_MESSAGE_LENGTH", "lots")

	cfg := Load()
	assert.Equal(t, 30*time.Second, cfg.ServerWriteTimeout)
	assert.Equal(t, 0.3, cfg.TFIDFThreshold)
	assert.Equal(t, 2000, cfg.MaxMessageLength)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty port", func(c *Config) { c.ServerPort = "" }},
		{"empty intents path", func(c *Config) { c.IntentsPath = "" }},
		{"unknown strategy", func(c *Config) { c.MatchStrategy = "bayes" }},
		{"keyword threshold too high", func(c *Config) { c.KeywordThreshold = 1 }},
		{"negative tfidf threshold", func(c *Config) { c.TFIDFThreshold = -0.2 }},
		{"zero max length", func(c *Config) { c.MaxMessageLength = 0 }},
		{"nats without prefix", func(c *Config) {
			c.NATSURL = "nats://localhost:4222"
			c.NATSSubjectPrefix = ""
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg := Load()
			tt.mutate(cfg)
			require.Error(t, cfg.Validate())
		})
	}
}

func TestEngineOptions(t *testing.T) {
	clearEnv(t)
	t.Setenv("MATCH_STRATEGY", "keyword")
	t.Setenv("KEYWORD_THRESHOLD", "0.6")
	t.Setenv("SPELL_CORRECTION", "false")

	opts, err := Load().EngineOptions()
	require.NoError(t, err)
	assert.Equal(t, engine.StrategyKeyword, opts.Strategy)
	assert.Equal(t, 0.6, opts.KeywordThreshold)
	assert.False(t, opts.SpellCorrection)
	assert.NotEmpty(t, opts.FollowUpRules)
}
