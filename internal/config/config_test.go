package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfig_ReadYAMLWithDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "local.yaml")

	yaml := `env: local
db_user: estructuras
db_name: seguimiento
http_server:
  address: 0.0.0.0:8080
upload:
  max_mb: 5
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	var cfg Config
	require.NoError(t, cleanenv.ReadConfig(path, &cfg))

	assert.Equal(t, "local", cfg.Env)
	assert.Equal(t, "0.0.0.0:8080", cfg.Address)
	assert.Equal(t, int64(5), cfg.Upload.MaxMB)
	assert.Equal(t, 25, cfg.PageSize)
	assert.Equal(t, 3306, cfg.DBPort)
	assert.False(t, cfg.RestoreOnStart)
	assert.Equal(t, "estructuras:@tcp(localhost:3306)/seguimiento?parseTime=true", cfg.DSN())
}

func TestMustConfig_FromEnvPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "cfg.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_user: u\ndb_name: d\n"), 0o644))

	t.Setenv("CONFIG_PATH", path)
	t.Setenv("DB_HOST", "mysql-8.0")

	cfg := MustConfig()
	assert.Equal(t, "mysql-8.0", cfg.DBHost)
	assert.Equal(t, "prod", cfg.Env)
}
