package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testYAML = `
env:
  env: test
  serviceName: parlaseramik
  log:
    level: debug
http:
  port: 8080
secretKey:
  access: access-secret
  refresh: refresh-secret
auth:
  accessTokenTTL: 30m
  registrationEnabled: false
pagination:
  defaultSize: 10
  maxSize: 50
`

func TestLoadWithEnv_FileAndEnvOverrides(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(testYAML), 0o600))
	t.Chdir(dir)

	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("AUTH_REGISTRATIONENABLED", "true")

	cfg, err := LoadWithEnv[Config]("config")
	require.NoError(t, err)

	assert.Equal(t, "parlaseramik", cfg.Env.ServiceName)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "access-secret", cfg.SecretKey.Access)
	assert.Equal(t, 30*time.Minute, cfg.Auth.AccessTokenTTL)
	assert.True(t, cfg.Auth.RegistrationEnabled)
	assert.Equal(t, 10, cfg.Pagination.DefaultSize)
}

func TestLoadWithEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := LoadWithEnv[Config]("config")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config file config.yaml not found")
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, defaultMaxRequestBodySize, cfg.HTTP.MaxRequestBodySize)
	assert.Equal(t, bcrypt.DefaultCost, cfg.Auth.BcryptCost)
	assert.Equal(t, defaultAccessTokenTTL, cfg.Auth.AccessTokenTTL)
	assert.Equal(t, defaultRefreshTokenTTL, cfg.Auth.RefreshTokenTTL)
	assert.Equal(t, defaultCacheSize, cfg.Cache.Size)
	assert.Equal(t, defaultSlowQuery, cfg.Database.SlowQueryThreshold)
	assert.Equal(t, defaultPoolMonitor, cfg.Database.PoolMonitorInterval)
	assert.Equal(t, defaultPoolWaitWarn, cfg.Database.PoolWaitWarn)
	assert.Equal(t, defaultPageSize, cfg.Pagination.DefaultSize)
	assert.Equal(t, defaultMaxPageSize, cfg.Pagination.MaxSize)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.BcryptCost = 12
	cfg.Pagination.DefaultSize = 30
	cfg.Pagination.MaxSize = 60
	applyDefaults(cfg)

	assert.Equal(t, 12, cfg.Auth.BcryptCost)
	assert.Equal(t, 30, cfg.Pagination.DefaultSize)
	assert.Equal(t, 60, cfg.Pagination.MaxSize)
}
