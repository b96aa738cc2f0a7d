package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	path := writeConfigFile(t, "service:\n  name: grievance\n")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "grievance", cfg.Service.Name)
	assert.Equal(t, defaultServicePort, cfg.Service.Port)
	assert.Equal(t, defaultMaxTextRunes, cfg.Service.MaxTextRunes)
	assert.Equal(t, defaultMongoURI, cfg.Mongo.URI)
	assert.Equal(t, defaultMongoDatabase, cfg.Mongo.Database)
	assert.Equal(t, 10*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, 24*time.Hour, cfg.Auth.TokenTTL)
	assert.Equal(t, defaultSMTPPort, cfg.SMTP.Port)
	assert.Equal(t, defaultImageDir, cfg.Images.Dir)
	assert.EqualValues(t, defaultImageMaxBytes, cfg.Images.MaxBytes)
	assert.Equal(t, defaultWindowDays, cfg.Detection.WindowDays)
	assert.Equal(t, defaultWindowLimit, cfg.Detection.WindowLimit)
}

func TestLoad_FileValues(t *testing.T) {
	path := writeConfigFile(t, `
service:
  name: grievance-staging
  port: 9000
  max_text_runes: 500
mongo:
  uri: mongodb://db.internal:27017
  database: grievances_staging
  timeout: 3s
detection:
  window_days: 14
  window_limit: 25
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "grievance-staging", cfg.Service.Name)
	assert.Equal(t, 9000, cfg.Service.Port)
	assert.Equal(t, 500, cfg.Service.MaxTextRunes)
	assert.Equal(t, "mongodb://db.internal:27017", cfg.Mongo.URI)
	assert.Equal(t, "grievances_staging", cfg.Mongo.Database)
	assert.Equal(t, 3*time.Second, cfg.Mongo.Timeout)
	assert.Equal(t, 14, cfg.Detection.WindowDays)
	assert.Equal(t, 25, cfg.Detection.WindowLimit)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("GRIEVANCE_PORT", "8099")
	t.Setenv("MONGO_URI", "mongodb://override:27017")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("APP_DEBUG", "true")
	t.Setenv("AUTH_JWT_SECRET", "env-secret")

	path := writeConfigFile(t, `
service:
  port: 9000
mongo:
  uri: mongodb://file:27017
auth:
  jwt_secret: file-secret
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	// Environment always wins over file values.
	assert.Equal(t, 8099, cfg.Service.Port)
	assert.Equal(t, "mongodb://override:27017", cfg.Mongo.URI)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.True(t, cfg.Service.Debug)
	assert.Equal(t, "env-secret", cfg.Auth.JWTSecret)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))
	require.Error(t, err)
}

func TestGetConfigPath(t *testing.T) {
	assert.Equal(t, "config.yml", GetConfigPath("config.yml"))

	t.Setenv("CONFIG_PATH", "/etc/grievance/config.yml")
	assert.Equal(t, "/etc/grievance/config.yml", GetConfigPath("config.yml"))
}
