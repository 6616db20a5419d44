package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/simplefw/pkg/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "appconf.json")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)

	assert.Equal(t, config.ModeProduction, cfg.Runtime.Mode)
	assert.Equal(t, ":8080", cfg.Runtime.Address)
	assert.Equal(t, "mysql", cfg.Database.Type)
	assert.Equal(t, "localhost", cfg.Database.Server)
	assert.Equal(t, "simple-fw", cfg.Database.Name)
	assert.Equal(t, "root", cfg.Database.User)
	assert.Empty(t, cfg.Database.Password)
	assert.Equal(t, "My Application Name", cfg.Global.AppName)
	assert.Equal(t, "migrations", cfg.System.MigrationsTable)
	assert.Equal(t, config.CacheNone, cfg.Cache.Driver)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `{
		"Runtime": {"Mode": "development", "Address": ":9000", "ShutdownTimeout": "3s"},
		"Database": {"Type": "sqlite", "Name": "app", "DataPath": "/tmp"},
		"Global": {"AppName": "Contacts"},
		"System": {"MigrationsTable": "schema_migrations"},
		"Menu": [
			{"Label": "Accueil", "Route": "/"},
			{"Label": "Données", "Items": [
				{"Label": "Catégories", "Route": "/category"},
				{"Label": "Contacts", "Route": "/contact"}
			]}
		],
		"Cache": {"Driver": "memory", "TTL": "1m"}
	}`)

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, ":9000", cfg.Runtime.Address)
	assert.Equal(t, 3*time.Second, cfg.Runtime.ShutdownTimeout)
	assert.Equal(t, "sqlite", cfg.Database.Type)
	assert.Equal(t, "app", cfg.Database.Name)
	assert.Equal(t, "root", cfg.Database.User, "unset keys keep defaults")
	assert.Equal(t, "Contacts", cfg.Global.AppName)
	assert.Equal(t, "schema_migrations", cfg.System.MigrationsTable)
	assert.Equal(t, config.CacheMemory, cfg.Cache.Driver)
	assert.Equal(t, time.Minute, cfg.Cache.TTL)

	require.Len(t, cfg.Menu, 2)
	assert.Equal(t, "Accueil", cfg.Menu[0].Label)
	assert.Equal(t, "/", cfg.Menu[0].Route)
	require.Len(t, cfg.Menu[1].Items, 2)
	assert.Equal(t, "/contact", cfg.Menu[1].Items[1].Route)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `{"Database": {"Password": "from-file"}}`)
	t.Setenv("APP_DATABASE_PASSWORD", "from-env")
	t.Setenv("APP_RUNTIME_ADDRESS", ":7000")

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, ":7000", cfg.Runtime.Address)
}

func TestLoad_InvalidJSON(t *testing.T) {
	t.Parallel()

	path := writeConfig(t, `{"Runtime": `)
	_, err := config.Load(path)
	require.ErrorIs(t, err, config.ErrFailedToReadConfig)
}
