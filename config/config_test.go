package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadEnvDefaults(t *testing.T) {
	cfg := LoadEnv()

	assert.Equal(t, ":8080", cfg.Server.HTTPPort)
	assert.Equal(t, time.Hour, cfg.JWT.TTL)
	assert.True(t, cfg.Pricing.FailOpen)
	assert.False(t, cfg.Kafka.Enabled)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", ":9090")
	t.Setenv("PRICING_FAIL_OPEN", "false")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,")
	t.Setenv("POSTGRES_MAX_OPEN_CONNS", "not-a-number")

	cfg := LoadEnv()

	assert.Equal(t, ":9090", cfg.Server.HTTPPort)
	assert.False(t, cfg.Pricing.FailOpen)
	assert.Equal(t, []string{"a:9092", "b:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, 10, cfg.Postgres.MaxOpenConns)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     string
		secret  string
		wantErr error
	}{
		{"dev keeps default", "dev", DefaultJWTSecret, nil},
		{"test keeps default", "test", DefaultJWTSecret, nil},
		{"production default", "production", DefaultJWTSecret, ErrDefaultJWTSecret},
		{"staging default", "staging", DefaultJWTSecret, ErrDefaultJWTSecret},
		{"production empty", "production", "", ErrDefaultJWTSecret},
		{"production real secret", "production", "f3a9c1d2e4b5", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("APP_ENV", tt.env)
			t.Setenv("JWT_SECRET_KEY", tt.secret)

			assert.ErrorIs(t, LoadEnv().Validate(), tt.wantErr)
		})
	}
}
