package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	svc := &service{filePath: path}

	cfg := Default()
	cfg.DataDir = "/tmp/carbontrack"
	cfg.DatasetsDir = "/tmp/datasets"
	cfg.LogLevel = "debug"
	cfg.Analytics.DefaultCountry = "Norway"
	require.NoError(t, svc.Save(cfg))

	loaded, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "version = 1")
	assert.Contains(t, string(data), "log_level = 'debug'")
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	svc := &service{filePath: filepath.Join(t.TempDir(), "config.toml")}

	cfg, err := svc.Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadFromPathRejectsBadToml(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("version = = 1"), 0644))

	svc := &service{filePath: path}
	_, err := svc.LoadFromPath(path)
	assert.Error(t, err)
}

func TestPartialFileKeepsDefaultsForMissingFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("log_level = \"warn\"\n"), 0644))

	svc := &service{filePath: path}
	cfg, err := svc.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "United_States", cfg.Analytics.DefaultCountry)
}
