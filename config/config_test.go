package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RequiresDBName(t *testing.T) {
	t.Setenv("DB_NAME", "")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("DB_NAME", "docscript")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "4001", cfg.App.Port)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiry)
	assert.True(t, cfg.UsesDefaultSecret())
	assert.False(t, cfg.Redis.Enabled())
	assert.Empty(t, cfg.Clinic.ID)
}

func TestLoadConfig_FromEnvironment(t *testing.T) {
	t.Setenv("DB_NAME", "docscript")
	t.Setenv("APP_PORT", "9000")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "1h")
	t.Setenv("REDIS_HOST", "cache")
	t.Setenv("INIT_ADMIN_EMAIL", "admin@clinic.test")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.App.Port)
	assert.Equal(t, time.Hour, cfg.JWT.Expiry)
	assert.False(t, cfg.UsesDefaultSecret())
	assert.True(t, cfg.Redis.Enabled())
	assert.Equal(t, "admin@clinic.test", cfg.Clinic.InitAdminEmail)
}

func TestLoadConfig_InvalidExpiryFallsBack(t *testing.T) {
	t.Setenv("DB_NAME", "docscript")
	t.Setenv("JWT_EXPIRY", "soon")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 7*24*time.Hour, cfg.JWT.Expiry)
}

func TestDBConfig_DSN(t *testing.T) {
	c := DBConfig{Host: "db", Port: "5432", User: "u", Password: "p", Name: "n", SSLMode: "disable", TimeZone: "UTC"}
	assert.Equal(t, "host=db user=u password=p dbname=n port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
