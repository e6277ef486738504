// Package config resolves chatmd settings from the config directory,
// the environment, and built-in defaults.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/gorewood/chatmd/internal/output"
)

// FileName is the name of the config file inside Dir.
const FileName = "config.yaml"

// Config holds user settings. Command-line flags override these values.
type Config struct {
	// Color is the --color default: auto, always, or never.
	Color string `yaml:"color"`
	// Quiet suppresses diagnostics about recovered problems in an export.
	Quiet   bool    `yaml:"quiet"`
	Preview Preview `yaml:"preview"`
}

// Preview configures terminal rendering for the preview command.
type Preview struct {
	// Style is a glamour standard style name ("auto", "dark", "light", "dracula", ...).
	Style string `yaml:"style"`
	// Width is the word-wrap column; 0 disables wrapping.
	Width int `yaml:"width"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Color: "auto",
		Preview: Preview{
			Style: "auto",
			Width: 80,
		},
	}
}

// Dir returns the chatmd configuration directory.
//
// Resolution:
//   - $CHATMD_CONFIG_HOME if set (explicit override)
//   - $XDG_CONFIG_HOME/chatmd if set (respects XDG on any platform)
//   - %AppData%/chatmd on Windows
//   - ~/.config/chatmd on macOS and Linux
func Dir() string {
	if dir := os.Getenv("CHATMD_CONFIG_HOME"); dir != "" {
		return dir
	}
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "chatmd")
	}
	if runtime.GOOS == "windows" {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "chatmd")
		}
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "chatmd")
}

// Load reads the config file in Dir, if any, then applies CHATMD_*
// environment overrides. Precedence: defaults < file < env.
func Load() (Config, error) {
	path := ""
	if dir := Dir(); dir != "" {
		path = filepath.Join(dir, FileName)
	}
	return LoadFile(path)
}

// LoadFile is Load with an explicit config file path. A missing file
// (or an empty path) yields defaults plus environment overrides.
func LoadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// no file; keep defaults
		case err != nil:
			return Config{}, output.NewSystemErrorWithCause(fmt.Sprintf("failed to read config %s: %v", path, err), err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, output.NewUserErrorWithCause(fmt.Sprintf("invalid config %s: %v", path, err), err)
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks that settings hold accepted values.
func (c Config) Validate() error {
	if !output.ValidColorMode(c.Color) {
		return output.NewUserError(fmt.Sprintf("invalid color %q: expected auto, always, or never", c.Color))
	}
	if c.Preview.Width < 0 {
		return output.NewUserError(fmt.Sprintf("invalid preview width %d: expected 0 or more", c.Preview.Width))
	}
	return nil
}

// applyEnv overlays CHATMD_* environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("CHATMD_COLOR"); v != "" {
		cfg.Color = v
	}
	if v := os.Getenv("CHATMD_QUIET"); v != "" {
		quiet, err := strconv.ParseBool(v)
		if err != nil {
			return output.NewUserError(fmt.Sprintf("invalid CHATMD_QUIET %q: expected true or false", v))
		}
		cfg.Quiet = quiet
	}
	if v := os.Getenv("CHATMD_PREVIEW_STYLE"); v != "" {
		cfg.Preview.Style = v
	}
	if v := os.Getenv("CHATMD_PREVIEW_WIDTH"); v != "" {
		width, err := strconv.Atoi(v)
		if err != nil {
			return output.NewUserError(fmt.Sprintf("invalid CHATMD_PREVIEW_WIDTH %q: expected a number", v))
		}
		cfg.Preview.Width = width
	}
	return nil
}
