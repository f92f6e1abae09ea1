package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"
	"todoApp/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir переключает рабочую директорию на пустую временную, чтобы не подхватить config.yml и .env проекта
func chdir(t *testing.T) string {
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t)

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.GetServerAddr())
	assert.Equal(t, config.RepositorySQLite, cfg.Repository.Type)
	assert.Equal(t, "todoApplication.db", cfg.Database.Path)
	assert.True(t, cfg.Validation.Strict)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, 100, cfg.HTTP.RateLimit)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := chdir(t)

	yml := `
server:
  port: "8081"
  request_timeout: 5s
repository:
  type: inmemory
validation:
  strict: false
http:
  rate_limit: 0
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte(yml), 0o600))
	t.Setenv("TODO_SERVER_HOST", "127.0.0.1")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8081", cfg.GetServerAddr())
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, config.RepositoryInMemory, cfg.Repository.Type)
	assert.False(t, cfg.Validation.Strict)
	assert.Equal(t, 0, cfg.HTTP.RateLimit)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := chdir(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("TODO_DATABASE_PATH=from-dotenv.db\n"), 0o600))
	t.Cleanup(func() { os.Unsetenv("TODO_DATABASE_PATH") })

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv.db", cfg.Database.Path)
}

func TestLoad_ExplicitFile(t *testing.T) {
	dir := chdir(t)
	path := filepath.Join(dir, "custom.yml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0o600))
	t.Setenv("TODO_CONFIG", path)

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "unknown repository", env: map[string]string{"TODO_REPOSITORY_TYPE": "mongo"}},
		{name: "postgres without url", env: map[string]string{"TODO_REPOSITORY_TYPE": "postgres"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdir(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
