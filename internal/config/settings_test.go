package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	s, err := Load(New("1.2.3"), "", "")
	require.NoError(t, err)

	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, 30*time.Second, s.Timeout)
	assert.Equal(t, "simplenet/1.2.3", s.UserAgent)
	assert.False(t, s.NoColor)
	assert.Equal(t, "text", s.Output)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := writeFile(t, "simplenet.yaml", "log_level: debug\ntimeout: 5s\noutput: json\n")

	s, err := Load(New("dev"), path, "")
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, 5*time.Second, s.Timeout)
	assert.Equal(t, "json", s.Output)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	path := writeFile(t, "simplenet.yaml", "timeout: 5s\n")
	t.Setenv("SIMPLENET_TIMEOUT", "7s")
	t.Setenv("SIMPLENET_NO_COLOR", "true")

	s, err := Load(New("dev"), path, "")
	require.NoError(t, err)
	assert.Equal(t, 7*time.Second, s.Timeout)
	assert.True(t, s.NoColor)
}

func TestLoad_EnvFile(t *testing.T) {
	path := writeFile(t, "test.env", "SIMPLENET_USER_AGENT=from-env-file\n")
	t.Cleanup(func() { os.Unsetenv("SIMPLENET_USER_AGENT") })

	s, err := Load(New("dev"), "", path)
	require.NoError(t, err)
	assert.Equal(t, "from-env-file", s.UserAgent)
}

func TestLoad_Errors(t *testing.T) {
	t.Run("missing env file", func(t *testing.T) {
		_, err := Load(New("dev"), "", filepath.Join(t.TempDir(), "nope.env"))
		assert.ErrorContains(t, err, "load env file")
	})

	t.Run("missing config file", func(t *testing.T) {
		_, err := Load(New("dev"), filepath.Join(t.TempDir(), "nope.yaml"), "")
		assert.ErrorContains(t, err, "read config file")
	})

	t.Run("bad timeout", func(t *testing.T) {
		path := writeFile(t, "simplenet.yaml", "timeout: -1s\n")
		_, err := Load(New("dev"), path, "")
		assert.ErrorContains(t, err, "invalid timeout")
	})

	t.Run("bad output", func(t *testing.T) {
		t.Setenv("SIMPLENET_OUTPUT", "xml")
		_, err := Load(New("dev"), "", "")
		assert.ErrorContains(t, err, "invalid output")
	})
}
