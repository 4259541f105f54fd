package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultAPIURL, cfg.APIURL)
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")
	cfg := Config{APIURL: "http://tracker.internal:9000", DBPath: "/tmp/x.db", LogLevel: "debug"}
	require.NoError(t, Save(path, cfg))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestLoadRejectsInvalidJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestApplyEnvOverridesAPIURL(t *testing.T) {
	t.Setenv(APIURLEnv, "https://tasks.example.com")
	cfg := ApplyEnv(Default())
	assert.Equal(t, "https://tasks.example.com", cfg.APIURL)
}

func TestApplyEnvKeepsFileValueWhenUnset(t *testing.T) {
	t.Setenv(APIURLEnv, "")
	cfg := ApplyEnv(Config{APIURL: "http://from-file"})
	assert.Equal(t, "http://from-file", cfg.APIURL)
}

func TestFillDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg := FillDefaults(Config{APIURL: "http://localhost:8000/"}, filepath.Join(dir, "config.json"))

	assert.Equal(t, "http://localhost:8000", cfg.APIURL)
	assert.Equal(t, filepath.Join(dir, "lazytracker.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join(dir, "lazytracker.log"), cfg.LogPath)
	assert.NotEmpty(t, cfg.DownloadDir)
	assert.Equal(t, "info", cfg.LogLevel)
}
