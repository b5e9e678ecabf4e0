package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/gestion-inventario/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"APP_ENV", "STORAGE", "HTTP_PORT", "DEFAULT_PHONE_REGION", "DATABASE_URL", "LOG_LEVEL"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, config.StoragePostgres, cfg.Storage)
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
	assert.Equal(t, "CO", cfg.Phone.DefaultRegion)
	assert.Equal(t, "info", cfg.App.LogLevel)
	assert.Equal(t, "postgres://postgres:@localhost:5432/gestion_inventario?sslmode=disable", cfg.DB.ConnectionString())
}

func TestLoad_VariablesDeEntorno(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE", "MEMORY")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DEFAULT_PHONE_REGION", "br")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/x")

	cfg, err := config.Load()
	require.NoError(t, err)
	assert.Equal(t, config.StorageMemory, cfg.Storage)
	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "BR", cfg.Phone.DefaultRegion)
	assert.Equal(t, "postgres://u:p@db:5432/x", cfg.DB.ConnectionString())
}

func TestLoad_StorageInvalido(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("STORAGE", "mongo")

	_, err := config.Load()
	assert.Error(t, err)
}
