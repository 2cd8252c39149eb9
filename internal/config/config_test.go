package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	t.Setenv("TOURPAL_CONFIG", writeConfig(t, ""))

	c, err := New()
	require.NoError(err)
	assert.Equal(8123, c.Server.Port)
	assert.Equal(defaultBaseURL, c.API.BaseURL)
	assert.Equal(time.Second*30, c.API.Timeout)
	assert.Equal(StorageJSON, c.Storage.Backend)
}

func TestNew_FileThenEnv(t *testing.T) {
	require := require.New(t)
	assert := assert.New(t)

	t.Setenv("TOURPAL_CONFIG", writeConfig(t, `
server:
  port: 9000
api:
  baseURL: https://api.example.com
  timeout: 5s
storage:
  backend: memory
`))
	t.Setenv("TOURPAL_PORT", "9100")

	c, err := New()
	require.NoError(err)
	assert.Equal(9100, c.Server.Port)
	assert.Equal("https://api.example.com", c.API.BaseURL)
	assert.Equal(time.Second*5, c.API.Timeout)
	assert.Equal(StorageMemory, c.Storage.Backend)
}

func TestNew_Invalid(t *testing.T) {
	t.Run("missing explicit file", func(t *testing.T) {
		t.Setenv("TOURPAL_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("bad port", func(t *testing.T) {
		t.Setenv("TOURPAL_CONFIG", writeConfig(t, ""))
		t.Setenv("TOURPAL_PORT", "http")
		_, err := New()
		assert.Error(t, err)
	})

	t.Run("redis without url", func(t *testing.T) {
		t.Setenv("TOURPAL_CONFIG", writeConfig(t, ""))
		t.Setenv("TOURPAL_STORAGE", "redis")
		_, err := New()
		assert.ErrorIs(t, err, errMissingRedisURL)
	})

	t.Run("unknown backend", func(t *testing.T) {
		t.Setenv("TOURPAL_CONFIG", writeConfig(t, ""))
		t.Setenv("TOURPAL_STORAGE", "sqlite")
		_, err := New()
		assert.ErrorIs(t, err, errUnknownBackend)
	})
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
