package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads the yaml file", func(t *testing.T) {
		// Given: a config file with every section
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
log-level: debug
http-port: "8081"
session:
  driver: redis
  ttl: 5m
redis:
  host: cache
  port: "6380"
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: the values are taken from the file
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8081", conf.HTTPPort)
		assert.Equal(t, SessionDriverRedis, conf.Session.Driver)
		assert.Equal(t, 5*time.Minute, conf.Session.TTL)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
	})

	t.Run("Falls back to defaults and env without a file", func(t *testing.T) {
		// Given: no config file and one env override
		t.Setenv("HTTP_PORT", "7070")

		// When: loading a missing path
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults fill the rest
		require.NoError(t, err)
		assert.Equal(t, "7070", conf.HTTPPort)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, SessionDriverMemory, conf.Session.Driver)
		assert.Equal(t, 30*time.Minute, conf.Session.TTL)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
	})

	t.Run("Rejects an unknown session driver", func(t *testing.T) {
		t.Setenv("SESSION_DRIVER", "postgres")

		_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		require.ErrorIs(t, err, ErrUnknownSessionDriver)
	})

	t.Run("MustLoad panics on a broken file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("session: [unterminated"), 0o600))

		assert.Panics(t, func() { MustLoad(path) })
	})
}

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"info", slog.LevelInfo},
		{"warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLogLevel(tt.in))
		})
	}
}
