package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ironsheep/display-image-tools/internal/imaging"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "chromium-headless-shell", cfg.Screenshot.Browser)
	assert.Zero(t, cfg.Screenshot.KillAfter)
	assert.Equal(t, imaging.DefaultProtectedColors, cfg.Enhance.ProtectedColors)

	palette, err := cfg.Palette()
	require.NoError(t, err)
	assert.Equal(t, 6, palette.Len())
}

func TestLoadFile(t *testing.T) {
	path := writeConfig(t, `
[log]
level = "DEBUG"

[fetch]
timeout = "5s"
user_agent = "panel/2.0"

[screenshot]
browser = "/usr/bin/chromium"
kill_after = "1m30s"
timeout_ms = 4000

[enhance]
protected_colors = ["#000000", "#FFFFFF"]
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 5*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "panel/2.0", cfg.Fetch.UserAgent)
	assert.Equal(t, "/usr/bin/chromium", cfg.Screenshot.Browser)
	assert.Equal(t, 90*time.Second, cfg.Screenshot.KillAfter)
	assert.Equal(t, 4*time.Second, cfg.ScreenshotTimeout())
	assert.Equal(t, []string{"#000000", "#FFFFFF"}, cfg.Enhance.ProtectedColors)

	palette, err := cfg.Palette()
	require.NoError(t, err)
	assert.Equal(t, 2, palette.Len())
}

func TestLoadFile_PartialKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
[fetch]
user_agent = "panel/2.0"
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 30*time.Second, cfg.Fetch.Timeout)
	assert.Equal(t, "chromium-headless-shell", cfg.Screenshot.Browser)
	assert.Equal(t, imaging.DefaultProtectedColors, cfg.Enhance.ProtectedColors)
	assert.Zero(t, cfg.ScreenshotTimeout())
}

func TestLoadFile_NegativeValuesClamped(t *testing.T) {
	path := writeConfig(t, `
[screenshot]
kill_after = "-5s"
timeout_ms = -1
`)

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Zero(t, cfg.Screenshot.KillAfter)
	assert.Zero(t, cfg.Screenshot.TimeoutMs)
}

func TestLoadFile_InvalidPalette(t *testing.T) {
	path := writeConfig(t, `
[enhance]
protected_colors = ["#000000", "blue"]
`)

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_InvalidTOML(t *testing.T) {
	path := writeConfig(t, "[log\nlevel = ")

	_, err := LoadFile(path)
	assert.Error(t, err)
}

func TestLoadFile_Missing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverride(t *testing.T) {
	path := writeConfig(t, `
[screenshot]
browser = "/env/browser"
`)
	t.Setenv(EnvConfigPath, path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/env/browser", cfg.Screenshot.Browser)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, "bin/chrome"), expandPath("~/bin/chrome"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
	assert.Equal(t, "", expandPath(""))
}
