package api

import (
	"testing"

	"parlaseramik/config"

	"github.com/stretchr/testify/assert"
)

func TestCORSConfig(t *testing.T) {
	cfg := &config.Config{}

	open := corsConfig(cfg)
	assert.Equal(t, []string{"*"}, open.AllowOrigins)
	assert.Contains(t, open.AllowHeaders, "Authorization")
	assert.Equal(t, []string{"X-Request-Id"}, open.ExposeHeaders)

	cfg.HTTP.AllowedOrigins = []string{"https://parlaseramik.com"}
	assert.Equal(t, []string{"https://parlaseramik.com"}, corsConfig(cfg).AllowOrigins)
}
