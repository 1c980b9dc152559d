package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ESTRATEGIA_JWT_SECRET", "env-secret")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "estrategia.db", cfg.DBPath)
	assert.Equal(t, "env-secret", cfg.JWTSecret)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.True(t, cfg.Digest.Enabled)
	assert.Equal(t, "0 8 * * 1-5", cfg.Digest.Cron)
	assert.Empty(t, cfg.SMTP.Host)
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estrategia.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 9090
db_path: /tmp/dash.db
jwt_secret: file-secret
log_level: debug
digest:
  enabled: false
smtp:
  host: smtp.example.com
  from: digest@example.com
`), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "/tmp/dash.db", cfg.DBPath)
	assert.Equal(t, "file-secret", cfg.JWTSecret)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.Digest.Enabled)
	assert.Equal(t, "smtp.example.com", cfg.SMTP.Host)
	// Defaults still fill the gaps
	assert.Equal(t, 587, cfg.SMTP.Port)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estrategia.yaml")
	require.NoError(t, os.WriteFile(path, []byte("jwt_secret: file-secret\nport: 9090\n"), 0o600))
	t.Setenv("ESTRATEGIA_PORT", "7070")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7070, cfg.Port)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	path := filepath.Join(t.TempDir(), "estrategia.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 9090\n"), 0o600))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")
}

func TestLoadExplicitMissingPathFails(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
