// Package config provides environment configuration for the chat server.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rvrjc/campusbot/internal/engine"
)

// Config holds all configuration for the application.
type Config struct {
	// Server settings
	ServerPort         string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration

	// Matching
	IntentsPath      string
	MatchStrategy    string
	KeywordThreshold float64
	TFIDFThreshold   float64
	SpellCorrection  bool

	// Request validation
	MaxMessageLength   int
	CORSAllowedOrigins []string

	// NATS settings; an empty URL disables event publishing.
	NATSURL           string
	NATSSubjectPrefix string
	NATSCAFile        string
	NATSCertFile      string
	NATSKeyFile       string
	NATSToken         string

	// Logging
	LogLevel string

	// Tracing
	TracingEndpoint string
	TracingEnabled  bool
}

// Load reads configuration from environment variables.
func Load() *Config {
	return &Config{
		// Server
		ServerPort:         getEnv("PORT", "8080"),
		ServerReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 15*time.Second),
		ServerWriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 30*time.Second),

		// Matching
		IntentsPath:      getEnv("INTENTS_PATH", "data/intents.json"),
		MatchStrategy:    getEnv("MATCH_STRATEGY", string(engine.StrategyHybrid)),
		KeywordThreshold: getFloatEnv("KEYWORD_THRESHOLD", 0.4),
		TFIDFThreshold:   getFloatEnv("TFIDF_THRESHOLD", 0.3),
		SpellCorrection:  getBoolEnv("SPELL_CORRECTION", true),

		// Validation
		MaxMessageLength:   getIntEnv("MAX_MESSAGE_LENGTH", 2000),
		CORSAllowedOrigins: getListEnv("CORS_ALLOWED_ORIGINS", []string{"*"}),

		// NATS
		NATSURL:           getEnv("NATS_URL", ""),
		NATSSubjectPrefix: getEnv("NATS_SUBJECT_PREFIX", "campusbot"),
		NATSCAFile:        getEnv("NATS_CA_FILE", ""),
		NATSCertFile:      getEnv("NATS_CERT_FILE", ""),
		NATSKeyFile:       getEnv("NATS_KEY_FILE", ""),
		NATSToken:         getEnv("NATS_TOKEN", ""),

		// Logging
		LogLevel: getEnv("LOG_LEVEL", "info"),

		// Tracing
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4318"),
		TracingEnabled:  getBoolEnv("TRACING_ENABLED", false),
	}
}

// Validate rejects settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.ServerPort == "" {
		errs = append(errs, errors.New("PORT must not be empty"))
	}
	if c.IntentsPath == "" {
		errs = append(errs, errors.New("INTENTS_PATH must not be empty"))
	}
	if _, err := engine.ParseStrategy(c.MatchStrategy); err != nil {
		errs = append(errs, fmt.Errorf("MATCH_STRATEGY: %w", err))
	}
	if c.KeywordThreshold < 0 || c.KeywordThreshold >= 1 {
		errs = append(errs, fmt.Errorf("KEYWORD_THRESHOLD must be in [0,1), got %v", c.KeywordThreshold))
	}
	if c.TFIDFThreshold < 0 || c.TFIDFThreshold >= 1 {
		errs = append(errs, fmt.Errorf("TFIDF_THRESHOLD must be in [0,1), got %v", c.TFIDFThreshold))
	}
	if c.MaxMessageLength <= 0 {
		errs = append(errs, fmt.Errorf("MAX_MESSAGE_LENGTH must be positive, got %d", c.MaxMessageLength))
	}
	if c.NATSURL != "" && c.NATSSubjectPrefix == "" {
		errs = append(errs, errors.New("NATS_SUBJECT_PREFIX must not be empty when NATS_URL is set"))
	}
	return errors.Join(errs...)
}

// EngineOptions maps the matching settings onto engine options.
func (c *Config) EngineOptions() (engine.Options, error) {
	strategy, err := engine.ParseStrategy(c.MatchStrategy)
	if err != nil {
		return engine.Options{}, err
	}
	opts := engine.DefaultOptions()
	opts.Strategy = strategy
	opts.KeywordThreshold = c.KeywordThreshold
	opts.TFIDFThreshold = c.TFIDFThreshold
	opts.SpellCorrection = c.SpellCorrection
	return opts, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getFloatEnv(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getListEnv(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
