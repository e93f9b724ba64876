package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))
	return path
}

const minimalConfig = `
server:
  host: 127.0.0.1
  port: 10000
database:
  host: localhost
  user: catalog
  dbname: catalog
`

func TestLoad_AppliesDefaults(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 30*time.Minute, cfg.Redis.GuardTTL)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, "assets", cfg.Assets.Dir)
	assert.Equal(t, []string{"*"}, cfg.Server.CORSOrigins)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, minimalConfig)

	t.Setenv("DB_PASSWORD", "sekrit")
	t.Setenv("SERVER_PORT", "8123")
	t.Setenv("CORS_ORIGINS", "https://yeai.tech, https://www.yeai.tech")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "sekrit", cfg.Database.Password)
	assert.Equal(t, 8123, cfg.Server.Port)
	assert.Equal(t, []string{"https://yeai.tech", "https://www.yeai.tech"}, cfg.Server.CORSOrigins)
}

func TestLoad_MissingRequiredFields(t *testing.T) {
	path := writeConfig(t, `
server:
  host: 127.0.0.1
  port: 10000
database:
  host: localhost
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "database.user")
}

func TestLoad_SMTPRequiresAdminEmail(t *testing.T) {
	path := writeConfig(t, minimalConfig+`
smtp:
  host: smtp.example.com
`)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "admin.email")
}

func TestLoad_FileNotFound(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "config.yml", GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/catalog/config.yml")
	assert.Equal(t, "/etc/catalog/config.yml", GetConfigPath("config.yml"))
}
