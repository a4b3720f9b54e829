// Package config loads the tool server configuration from TOML files.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"emperror.dev/errors"
	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ironsheep/display-image-tools/internal/imaging"
	"github.com/ironsheep/display-image-tools/internal/screenshot"
)

// EnvConfigPath names an extra config file loaded after the default locations.
const EnvConfigPath = "IMAGE_MCP_CONFIG"

// appName is the directory under the XDG config home.
const appName = "display-image-tools"

type Config struct {
	Log        LogConfig        `koanf:"log"`
	Fetch      FetchConfig      `koanf:"fetch"`
	Screenshot ScreenshotConfig `koanf:"screenshot"`
	Enhance    EnhanceConfig    `koanf:"enhance"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level string `koanf:"level"` // zerolog level name (default: "info")
}

// FetchConfig holds HTTP fetch settings.
type FetchConfig struct {
	Timeout   time.Duration `koanf:"timeout"`    // per-request timeout (default: 30s)
	UserAgent string        `koanf:"user_agent"` // empty keeps Go's default
}

// ScreenshotConfig holds headless browser settings.
type ScreenshotConfig struct {
	Browser   string        `koanf:"browser"`    // executable name or path
	KillAfter time.Duration `koanf:"kill_after"` // hard process limit, 0 disables
	TimeoutMs int           `koanf:"timeout_ms"` // default --timeout when a call gives none
}

// EnhanceConfig holds enhancement settings.
type EnhanceConfig struct {
	ProtectedColors []string `koanf:"protected_colors"` // "#RRGGBB" values restored after enhancement
}

// Default returns the configuration used when no file sets a value.
func Default() *Config {
	return &Config{
		Log: LogConfig{Level: "info"},
		Fetch: FetchConfig{
			Timeout: imaging.DefaultFetchTimeout,
		},
		Screenshot: ScreenshotConfig{
			Browser: screenshot.DefaultBrowser,
		},
		Enhance: EnhanceConfig{
			ProtectedColors: append([]string(nil), imaging.DefaultProtectedColors...),
		},
	}
}

// Load reads every existing config file from getConfigPaths, later files
// overriding earlier ones. Unset values take their Default.
func Load() (*Config, error) {
	return load(getConfigPaths()...)
}

// LoadFile reads a single config file. The file must exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, errors.Wrapf(err, "cannot stat config file %s", path)
	}
	return load(path)
}

func load(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, errors.Wrapf(err, "cannot load config file %s", path)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, errors.Wrap(err, "cannot unmarshal config")
	}
	cfg.applyDefaults()

	if _, err := cfg.Palette(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyDefaults() {
	def := Default()
	c.Log.Level = strings.ToLower(strings.TrimSpace(c.Log.Level))
	if c.Log.Level == "" {
		c.Log.Level = def.Log.Level
	}
	if c.Fetch.Timeout <= 0 {
		c.Fetch.Timeout = def.Fetch.Timeout
	}
	if c.Screenshot.Browser == "" {
		c.Screenshot.Browser = def.Screenshot.Browser
	}
	if c.Screenshot.KillAfter < 0 {
		c.Screenshot.KillAfter = 0
	}
	if c.Screenshot.TimeoutMs < 0 {
		c.Screenshot.TimeoutMs = 0
	}
	if len(c.Enhance.ProtectedColors) == 0 {
		c.Enhance.ProtectedColors = def.Enhance.ProtectedColors
	}
	c.Screenshot.Browser = expandPath(c.Screenshot.Browser)
}

// Palette builds the protected palette from Enhance.ProtectedColors.
func (c *Config) Palette() (imaging.Palette, error) {
	return imaging.NewPalette(c.Enhance.ProtectedColors...)
}

// ScreenshotTimeout returns the default --timeout as a duration.
func (c *Config) ScreenshotTimeout() time.Duration {
	return time.Duration(c.Screenshot.TimeoutMs) * time.Millisecond
}

func getConfigPaths() []string {
	paths := []string{}

	// 1. $XDG_CONFIG_HOME/display-image-tools/config.toml
	paths = append(paths, filepath.Join(xdg.ConfigHome, appName, "config.toml"))

	// 2. ./config.toml
	paths = append(paths, "config.toml")

	// 3. explicit override
	if p := os.Getenv(EnvConfigPath); p != "" {
		paths = append(paths, expandPath(p))
	}

	return paths
}

func expandPath(path string) string {
	if path != "" && path[0] == '~' {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[1:])
		}
	}
	return path
}
