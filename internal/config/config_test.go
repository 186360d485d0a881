package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolateEnv(t *testing.T, configDir string) {
	t.Helper()
	t.Setenv("ENV", "")
	t.Setenv("CONFIG_PATH", configDir)
	for _, key := range []string{"ADMIN_TOKEN", "ASSET_DIR", "SERVER_PORT", "REDIS_ADDRESS", "REDIS_PASSWORD", "SESSION_BACKEND"} {
		t.Setenv(key, "")
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateEnv(t, t.TempDir())

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8090, cfg.Server.Port)
	assert.Equal(t, 20*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, "assets_index.json", cfg.Storage.CatalogFile)
	assert.Equal(t, 5*time.Minute, cfg.Quiz.SessionTTL)
	assert.Equal(t, 60*time.Second, cfg.Quiz.SweepInterval)
	assert.Equal(t, SessionBackendMemory, cfg.Quiz.SessionBackend)
	assert.Equal(t, 4, cfg.Ingest.BulkConcurrency)
	assert.Empty(t, cfg.Auth.AdminToken)
	assert.Equal(t, filepath.Join("./data/assets", "assets_index.json"), cfg.CatalogPath())
}

func TestLoadConfig_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	isolateEnv(t, dir)
	yaml := `
server:
  port: 9000
storage:
  asset_dir: /srv/assets
quiz:
  session_ttl: 2m
  sweep_interval: 10s
auth:
  admin_token: from-file
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o644))
	t.Setenv("ADMIN_TOKEN", "from-env")
	t.Setenv("SERVER_PORT", "9100")
	t.Setenv("ASSET_DIR", "/data/tanuki")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "from-env", cfg.Auth.AdminToken)
	assert.Equal(t, "/data/tanuki", cfg.Storage.AssetDir)
	assert.Equal(t, 2*time.Minute, cfg.Quiz.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.Quiz.SweepInterval)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	isolateEnv(t, t.TempDir())
	t.Setenv("SERVER_PORT", "eighty")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_UnknownBackend(t *testing.T) {
	isolateEnv(t, t.TempDir())
	t.Setenv("SESSION_BACKEND", "memcached")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Storage: StorageConfig{AssetDir: "assets", CatalogFile: "assets_index.json"},
			Quiz:    QuizConfig{SessionTTL: time.Minute, SweepInterval: time.Second, SessionBackend: SessionBackendRedis},
		}
	}

	cfg := valid()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 1, cfg.Ingest.BulkConcurrency)

	cfg = valid()
	cfg.Storage.CatalogFile = "../assets_index.json"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Storage.AssetDir = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Quiz.SessionTTL = 0
	assert.Error(t, cfg.Validate())
}
