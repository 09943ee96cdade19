package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Reads yaml file", func(t *testing.T) {
		// Given: a config file
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
log-level: debug
http-port: "8080"
storage: redis
redis:
  host: cache
  port: "6380"
game:
  computer-delay: 250ms
  session-ttl: 10m
  disable-pruning: true
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: file values win over defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "9091", conf.SocketPort)
		assert.Equal(t, StorageRedis, conf.Storage)
		assert.Equal(t, "cache:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 250*time.Millisecond, conf.Game.Delay())
		assert.Equal(t, 10*time.Minute, conf.Game.SessionTTL)
		assert.True(t, conf.Game.DisablePruning)
	})

	t.Run("Missing file falls back to env and defaults", func(t *testing.T) {
		// Given: no file and an env override
		t.Setenv("GAME_COMPUTER_DELAY", "1s")

		// When: loading
		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		// Then: defaults apply with the env override
		require.NoError(t, err)
		assert.Equal(t, "info", conf.LogLevel)
		assert.Equal(t, StorageMemory, conf.Storage)
		assert.Equal(t, time.Second, conf.Game.Delay())
		assert.Equal(t, time.Hour, conf.Game.SessionTTL)
		assert.False(t, conf.Game.DisablePruning)
		assert.Empty(t, conf.Telemetry.Endpoint)
	})

	t.Run("Unknown storage is rejected", func(t *testing.T) {
		t.Setenv("STORAGE", "sqlite")

		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})

	t.Run("Explicit zero delay and default pruning survive defaults", func(t *testing.T) {
		// Given: a file asking for an instant computer reply and leaving pruning alone
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
game:
  computer-delay: 0s
  disable-pruning: false
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: loading it
		conf, err := Load(path)

		// Then: the zero delay is kept and pruning stays on
		require.NoError(t, err)
		assert.Equal(t, "0s", conf.Game.ComputerDelay)
		assert.Equal(t, time.Duration(0), conf.Game.Delay())
		assert.False(t, conf.Game.DisablePruning)
	})

	t.Run("Default delay without a file", func(t *testing.T) {
		conf, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.NoError(t, err)
		assert.Equal(t, 500*time.Millisecond, conf.Game.Delay())
	})

	t.Run("Malformed delay is rejected", func(t *testing.T) {
		t.Setenv("GAME_COMPUTER_DELAY", "soon")

		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})
}
