// Package config loads rcomic settings from a TOML file, the environment and
// command line overrides, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kk-code-lab/rcomic/internal/graphics"
)

// Config is the full set of user settings. It is immutable once the viewing
// session starts.
type Config struct {
	Render     RenderConfig     `toml:"render"`
	Navigation NavigationConfig `toml:"navigation"`
	Keys       KeysConfig       `toml:"keys"`
	Log        LogConfig        `toml:"log"`
}

// RenderConfig controls how pages are fitted and drawn.
type RenderConfig struct {
	// Mode is auto, none, sixel, kitty or iterm.
	Mode    string  `toml:"mode"`
	Scale   float64 `toml:"scale"`
	Zoom    bool    `toml:"zoom"`
	Stretch bool    `toml:"stretch"`
	// FontRatio is cell width over cell height. Zero derives it from the
	// terminal's reported pixel size.
	FontRatio      float64 `toml:"font_ratio"`
	Channels       int     `toml:"channels"`
	MaxBufferBytes int64   `toml:"max_buffer_bytes"`
}

// NavigationConfig controls what happens at either end of a comic.
type NavigationConfig struct {
	WrapForward  bool `toml:"wrap_forward"`
	WrapBackward bool `toml:"wrap_backward"`
}

// KeysConfig lists key names per action, e.g. ["q", "Esc", "Ctrl-C"].
type KeysConfig struct {
	Quit     []string `toml:"quit"`
	Next     []string `toml:"next"`
	Previous []string `toml:"previous"`
	First    []string `toml:"first"`
	Last     []string `toml:"last"`
	Redraw   []string `toml:"redraw"`
}

// LogConfig selects the diagnostic log file. Empty discards logs.
type LogConfig struct {
	File string `toml:"file"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		Render: RenderConfig{
			Mode:           graphics.ModeAuto.String(),
			Scale:          graphics.DefaultScale,
			Channels:       graphics.ChannelsRGBA,
			MaxBufferBytes: graphics.DefaultMaxBufferBytes,
		},
		Navigation: NavigationConfig{
			WrapForward: true,
		},
		Keys: DefaultKeys(),
	}
}

// DefaultKeys returns the built-in key bindings.
func DefaultKeys() KeysConfig {
	return KeysConfig{
		Quit:     []string{"q", "Q", "Esc"},
		Next:     []string{"l", "Right", "Down", "Space", "PgDn", "Enter"},
		Previous: []string{"h", "j", "Left", "Up", "PgUp", "Backspace"},
		First:    []string{"g", "Home"},
		Last:     []string{"G", "End"},
		Redraw:   []string{"r", "Ctrl-L"},
	}
}

// =============================================================================
// PATHS
// =============================================================================

// ConfigDir returns $XDG_CONFIG_HOME/rcomic, or ~/.config/rcomic.
func ConfigDir() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "rcomic"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine home directory: %w", err)
	}
	return filepath.Join(home, ".config", "rcomic"), nil
}

// ConfigPath returns the default config file location.
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// =============================================================================
// LOAD
// =============================================================================

// Load reads the default config file when it exists, then applies
// environment overrides and validates the result.
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return finish(Default())
	}
	if _, statErr := os.Stat(path); errors.Is(statErr, os.ErrNotExist) {
		return finish(Default())
	}
	return LoadFromPath(path)
}

// LoadFromPath reads the given TOML file over the defaults. Unknown keys are
// rejected so typos do not silently fall back to defaults.
func LoadFromPath(path string) (*Config, error) {
	cfg := Default()
	if err := LoadTOML(cfg, path); err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", path, err)
	}
	return finish(cfg)
}

// LoadTOML decodes path into cfg, keeping the values of absent keys.
func LoadTOML(cfg *Config, path string) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode TOML file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown keys: %s", strings.Join(keys, ", "))
	}
	return nil
}

func finish(cfg *Config) (*Config, error) {
	if err := cfg.ApplyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// ApplyEnvOverrides applies RCOMIC_MODE, RCOMIC_SCALE and RCOMIC_LOG_FILE.
func (c *Config) ApplyEnvOverrides() error {
	if mode := os.Getenv("RCOMIC_MODE"); mode != "" {
		c.Render.Mode = mode
	}
	if scale := os.Getenv("RCOMIC_SCALE"); scale != "" {
		v, err := strconv.ParseFloat(scale, 64)
		if err != nil {
			return fmt.Errorf("RCOMIC_SCALE: %w", err)
		}
		c.Render.Scale = v
	}
	if file := os.Getenv("RCOMIC_LOG_FILE"); file != "" {
		c.Log.File = file
	}
	return nil
}

// =============================================================================
// VALIDATION
// =============================================================================

// ValidationError represents a configuration validation error.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}
	msgs := make([]string, 0, len(e))
	for _, err := range e {
		msgs = append(msgs, err.Error())
	}
	return strings.Join(msgs, "; ")
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs ValidationErrors

	if _, err := graphics.ParseMode(c.Render.Mode); err != nil {
		errs = append(errs, ValidationError{Field: "render.mode", Message: err.Error()})
	}
	if c.Render.Scale <= 0 || c.Render.Scale > 1 {
		errs = append(errs, ValidationError{
			Field:   "render.scale",
			Message: fmt.Sprintf("must be in (0, 1], got %g", c.Render.Scale),
		})
	}
	if c.Render.FontRatio < 0 || c.Render.FontRatio > 4 {
		errs = append(errs, ValidationError{
			Field:   "render.font_ratio",
			Message: fmt.Sprintf("must be 0 (detect) or in (0, 4], got %g", c.Render.FontRatio),
		})
	}
	if c.Render.Channels != graphics.ChannelsRGB && c.Render.Channels != graphics.ChannelsRGBA {
		errs = append(errs, ValidationError{
			Field:   "render.channels",
			Message: fmt.Sprintf("must be 3 or 4, got %d", c.Render.Channels),
		})
	}
	if c.Render.MaxBufferBytes < 0 {
		errs = append(errs, ValidationError{
			Field:   "render.max_buffer_bytes",
			Message: "must not be negative",
		})
	}

	bindings := map[string][]string{
		"keys.quit":     c.Keys.Quit,
		"keys.next":     c.Keys.Next,
		"keys.previous": c.Keys.Previous,
		"keys.first":    c.Keys.First,
		"keys.last":     c.Keys.Last,
		"keys.redraw":   c.Keys.Redraw,
	}
	fields := make([]string, 0, len(bindings))
	for field := range bindings {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	for _, field := range fields {
		for _, name := range bindings[field] {
			if strings.TrimSpace(name) == "" {
				errs = append(errs, ValidationError{Field: field, Message: "empty key name"})
			}
		}
	}
	if len(c.Keys.Quit) == 0 {
		errs = append(errs, ValidationError{Field: "keys.quit", Message: "at least one quit key is required"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// PixelMode parses Render.Mode. Call after Validate.
func (c *Config) PixelMode() graphics.Mode {
	m, _ := graphics.ParseMode(c.Render.Mode)
	return m
}
