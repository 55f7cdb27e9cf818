package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	t.Setenv("STATE_BACKEND", "")
	t.Setenv("SUBMIT_RATE_PER_SEC", "")

	cfg := LoadConfig()

	assert.Equal(t, "https://moviebackend-ude7.onrender.com", cfg.BackendURL)
	assert.Equal(t, "file", cfg.StateBackend)
	assert.Equal(t, "findyourseat:", cfg.StateKeyPrefix)
	assert.Equal(t, 1.0, cfg.SubmitRatePerSec)
	assert.Equal(t, 2, cfg.SubmitBurst)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.EnableMetrics)
	assert.NotEmpty(t, cfg.StateFile)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://localhost:5000")
	t.Setenv("STATE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("ENABLE_METRICS", "false")
	t.Setenv("SUBMIT_RATE_PER_SEC", "0.5")
	t.Setenv("SHUTDOWN_TIMEOUT", "3s")

	cfg := LoadConfig()

	assert.Equal(t, "http://localhost:5000", cfg.BackendURL)
	assert.Equal(t, "redis", cfg.StateBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.False(t, cfg.EnableMetrics)
	assert.Equal(t, 0.5, cfg.SubmitRatePerSec)
	assert.Equal(t, 3*time.Second, cfg.ShutdownTimeout)
}

func TestGetEnvHelpers_InvalidValuesFallBack(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
		run  func() any
		want any
	}{
		{"int", "TEST_INT", "abc", func() any { return getEnvAsInt("TEST_INT", 7) }, 7},
		{"bool", "TEST_BOOL", "maybe", func() any { return getEnvAsBool("TEST_BOOL", true) }, true},
		{"float", "TEST_FLOAT", "x", func() any { return getEnvAsFloat("TEST_FLOAT", 1.5) }, 1.5},
		{"duration", "TEST_DUR", "soon", func() any { return getEnvAsDuration("TEST_DUR", "2s") }, 2 * time.Second},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			assert.Equal(t, tt.want, tt.run())
		})
	}
}
