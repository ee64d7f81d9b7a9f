package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, ":9001", cfg.Server.WebSocketAddress)
	assert.Equal(t, 256, cfg.Server.MaxSessions)
	assert.Equal(t, 30*time.Second, cfg.Server.PollTimeout)
	assert.Equal(t, 25, cfg.Battle.VictoryPointThreshold)
	assert.False(t, cfg.Battle.DeterministicSeed)
	assert.Equal(t, "./data/saves", cfg.Persist.Directory)
}

func TestLoad_ValuesFromFileOverrideDefaults(t *testing.T) {
	path := writeConfig(t, `
logging:
  level: debug
  format: json
server:
  websocket_address: ":7000"
  max_sessions: 4
battle:
  victory_point_threshold: 40
  deterministic_seed: true
persist:
  directory: /tmp/saves
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, ":7000", cfg.Server.WebSocketAddress)
	assert.Equal(t, 4, cfg.Server.MaxSessions)
	assert.Equal(t, 40, cfg.Battle.VictoryPointThreshold)
	assert.True(t, cfg.Battle.DeterministicSeed)
	assert.Equal(t, "/tmp/saves", cfg.Persist.Directory)
	// poll_timeout wasn't overridden; the default survives partial files.
	assert.Equal(t, 30*time.Second, cfg.Server.PollTimeout)
}

func TestLoad_MalformedYamlErrors(t *testing.T) {
	path := writeConfig(t, "logging: [this is not a map")
	_, err := Load(path)
	assert.Error(t, err)
}
