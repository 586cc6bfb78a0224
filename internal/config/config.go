package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values
type Config struct {
	// Server configuration
	Port            int           `json:"port"`
	Environment     string        `json:"environment"`
	MaxBodyBytes    int64         `json:"max_body_bytes"`
	ShutdownTimeout time.Duration `json:"shutdown_timeout"`

	// CORS configuration, empty allows every origin
	CORSAllowedOrigins []string `json:"cors_allowed_origins"`

	// Proxies whose X-Forwarded-For is believed, empty trusts none
	TrustedProxies []string `json:"trusted_proxies"`

	// Redis configuration, an empty URI keeps rate limiting in memory
	RedisURI      string `json:"redis_uri"`
	RedisPassword string `json:"redis_password"`
	RedisDB       int    `json:"redis_db"`

	// Submission rate limiting, 0 (the default) disables it
	SubmissionRateLimit  int           `json:"submission_rate_limit"`
	SubmissionRateWindow time.Duration `json:"submission_rate_window"`

	// Tracing configuration
	TracingEnabled     bool    `json:"tracing_enabled"`
	TracingEndpoint    string  `json:"tracing_endpoint"`
	TracingSampleRatio float64 `json:"tracing_sample_ratio"`
}

var (
	AppConfig *Config

	// env resolves settings from the process environment at lookup time.
	env = newEnv()
)

func newEnv() *viper.Viper {
	v := viper.New()
	v.AllowEmptyEnv(true)
	v.AutomaticEnv()
	return v
}

// LoadConfig loads configuration from environment variables
func LoadConfig() error {
	if err := loadDotEnv(getEnvOrDefault("ENV_FILE", ".env")); err != nil {
		return err
	}

	port, err := strconv.Atoi(getEnvOrDefault("PORT", "8080"))
	if err != nil {
		return fmt.Errorf("invalid PORT: %w", err)
	}

	redisDB, err := strconv.Atoi(getEnvOrDefault("REDIS_DB", "0"))
	if err != nil {
		return fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	rateWindow, err := time.ParseDuration(getEnvOrDefault("SUBMISSION_RATE_WINDOW", "1m"))
	if err != nil {
		return fmt.Errorf("invalid SUBMISSION_RATE_WINDOW: %w", err)
	}
	if rateWindow <= 0 {
		return fmt.Errorf("invalid SUBMISSION_RATE_WINDOW: must be positive")
	}

	sampleRatio, err := strconv.ParseFloat(getEnvOrDefault("TRACING_SAMPLE_RATIO", "1"), 64)
	if err != nil || sampleRatio < 0 || sampleRatio > 1 {
		return fmt.Errorf("invalid TRACING_SAMPLE_RATIO: must be between 0 and 1")
	}

	rateLimit := getEnvAsIntOrDefault("SUBMISSION_RATE_LIMIT", 0)
	if rateLimit < 0 {
		return fmt.Errorf("invalid SUBMISSION_RATE_LIMIT: must not be negative")
	}

	AppConfig = &Config{
		// Server configuration
		Port:            port,
		Environment:     getEnvOrDefault("ENVIRONMENT", "development"),
		MaxBodyBytes:    int64(getEnvAsIntOrDefault("MAX_BODY_BYTES", 64<<10)),
		ShutdownTimeout: getEnvAsDurationOrDefault("SHUTDOWN_TIMEOUT", 30*time.Second),

		CORSAllowedOrigins: parseCommaSeparatedList(getEnvOrDefault("CORS_ALLOWED_ORIGINS", "")),
		TrustedProxies:     parseCommaSeparatedList(getEnvOrDefault("TRUSTED_PROXIES", "")),

		// Redis configuration
		RedisURI:      getEnvOrDefault("REDIS_URI", ""),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),
		RedisDB:       redisDB,

		SubmissionRateLimit:  rateLimit,
		SubmissionRateWindow: rateWindow,

		// Tracing configuration
		TracingEnabled:     getEnvOrDefault("TRACING_ENABLED", "false") == "true",
		TracingEndpoint:    getEnvOrDefault("TRACING_ENDPOINT", "localhost:4317"),
		TracingSampleRatio: sampleRatio,
	}

	return nil
}

// loadDotEnv loads a .env file when present. Variables already set win.
func loadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// getEnvOrDefault returns environment variable value or default if not set
func getEnvOrDefault(key, defaultValue string) string {
	if env.IsSet(key) {
		return env.GetString(key)
	}
	return defaultValue
}

// getEnvAsIntOrDefault returns the variable as an int, or the default when unset or malformed
func getEnvAsIntOrDefault(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnvOrDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// getEnvAsDurationOrDefault returns the variable as a duration, or the default when unset or malformed
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(getEnvOrDefault(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

// parseCommaSeparatedList splits a comma separated value, dropping empty items
func parseCommaSeparatedList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}

// lookup returns the first non-empty value among keys.
func lookup(keys ...string) string {
	for _, key := range keys {
		if value := strings.TrimSpace(env.GetString(key)); value != "" {
			return value
		}
	}
	return ""
}
