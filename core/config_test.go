package core

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	for _, env := range envKeys {
		t.Setenv(env, "")
		os.Unsetenv(env)
	}
}

func TestNewConfig_defaults(t *testing.T) {
	clearEnv(t)
	conf := NewConfig()

	assert.Equal(t, "DEV", conf.Env)
	assert.False(t, conf.TestMode)
	assert.Equal(t, "postgres", conf.Database.Engine)
	assert.Equal(t, "127.0.0.1", conf.Database.Host)
	assert.Equal(t, 5432, conf.Database.Port)
	assert.Equal(t, "postgres", conf.Database.User)
	assert.Equal(t, "student_mgmt", conf.Database.Name)
	assert.True(t, conf.Database.DisableTLS)
	assert.Equal(t, 10*time.Second, conf.Database.ConnectTimeout)
	assert.Equal(t, 3000, conf.Server.Port)
	assert.Equal(t, ":3000", conf.Server.Address())
	assert.Equal(t, []string{"*"}, conf.Server.CORSOrigins)
	assert.Zero(t, conf.Server.RateLimit)
}

func TestNewConfig_env(t *testing.T) {
	clearEnv(t)
	t.Setenv("ENV", "test")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_PORT", "6543")
	t.Setenv("DB_CONNECT_TIMEOUT", "3s")
	t.Setenv("DB_AUTO_MIGRATE", "true")
	t.Setenv("PORT", "8080")
	t.Setenv("BASE_PATH", " /api/ ")
	t.Setenv("RATE_LIMIT", "2.5")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.cd, https://b.cd,")

	conf := NewConfig()
	assert.Equal(t, "TEST", conf.Env)
	assert.True(t, conf.TestMode)
	assert.Equal(t, "db.internal:6543", conf.Database.Address())
	assert.Equal(t, 3*time.Second, conf.Database.ConnectTimeout)
	assert.True(t, conf.Database.AutoMigrate)
	assert.Equal(t, 8080, conf.Server.Port)
	assert.Equal(t, "/api", conf.Server.BasePath)
	assert.Equal(t, 2.5, conf.Server.RateLimit)
	assert.Equal(t, []string{"https://a.cd", "https://b.cd"}, conf.Server.CORSOrigins)
}

func TestNewConfig_dotEnv(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("DB_NAME=from_file\nDB_USER=file_user\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Setenv("DB_USER", "env_user")

	conf := NewConfig()
	assert.Equal(t, "from_file", conf.Database.Name)
	assert.Equal(t, "env_user", conf.Database.User, "real env vars win over the dotenv file")
}
