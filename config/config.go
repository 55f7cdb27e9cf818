package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

type Config struct {
	// Backend configuration
	BackendURL  string
	Environment string

	// Logging
	LogLevel  string
	LogFormat string

	// Durable state configuration
	StateBackend   string // file, redis, memory
	StateFile      string
	StateKeyPrefix string

	// Redis configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// PubNub configuration
	PubNubPublishKey   string
	PubNubSubscribeKey string
	PubNubSecretKey    string
	PubNubUserID       string

	// Local API
	ListenAddr       string
	SubmitRatePerSec float64
	SubmitBurst      int
	ShutdownTimeout  time.Duration

	// Tickets
	TicketDir string

	// Monitoring
	EnableMetrics bool
	MetricsPort   string
}

func LoadConfig() *Config {
	return &Config{
		// Backend
		BackendURL:  getEnv("BACKEND_URL", "https://moviebackend-ude7.onrender.com"),
		Environment: getEnv("ENVIRONMENT", "development"),

		// Logging
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		// State
		StateBackend:   getEnv("STATE_BACKEND", "file"),
		StateFile:      getEnv("STATE_FILE", defaultStateFile()),
		StateKeyPrefix: getEnv("STATE_KEY_PREFIX", "findyourseat:"),

		// Redis
		RedisURL:      getEnv("REDIS_URL", "localhost:6379"),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvAsInt("REDIS_DB", 0),

		// PubNub
		PubNubPublishKey:   getEnv("PUBNUB_PUBLISH_KEY", ""),
		PubNubSubscribeKey: getEnv("PUBNUB_SUBSCRIBE_KEY", ""),
		PubNubSecretKey:    getEnv("PUBNUB_SECRET_KEY", ""),
		PubNubUserID:       getEnv("PUBNUB_USER_ID", "findyourseat-client"),

		// Local API
		ListenAddr:       getEnv("LISTEN_ADDR", ":8090"),
		SubmitRatePerSec: getEnvAsFloat("SUBMIT_RATE_PER_SEC", 1),
		SubmitBurst:      getEnvAsInt("SUBMIT_BURST", 2),
		ShutdownTimeout:  getEnvAsDuration("SHUTDOWN_TIMEOUT", "10s"),

		// Tickets
		TicketDir: getEnv("TICKET_DIR", "."),

		// Monitoring
		EnableMetrics: getEnvAsBool("ENABLE_METRICS", true),
		MetricsPort:   getEnv("METRICS_PORT", "9090"),
	}
}

// defaultStateFile keeps state next to other per-user config; falls back to
// the working directory when no config dir can be resolved.
func defaultStateFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "findyourseat-state.json"
	}
	return filepath.Join(dir, "findyourseat", "state.json")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseFloat(valueStr, 64); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue string) time.Duration {
	valueStr := getEnv(key, defaultValue)
	if duration, err := time.ParseDuration(valueStr); err == nil {
		return duration
	}

	// If parsing fails, try to parse default value
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
