package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/fullframe/internal/window"
)

// Backend names the window system used to realize descriptors.
type Backend string

const (
	BackendX11    Backend = "x11"
	BackendEbiten Backend = "ebiten"
)

const (
	maxSamples = 32

	// X11 window geometry is 16 bits wide.
	maxDimension = 0xFFFF
)

// WindowConfig mirrors window.Settings in the config file.
type WindowConfig struct {
	Title      string `yaml:"title"`
	Width      uint32 `yaml:"width"`
	Height     uint32 `yaml:"height"`
	Fullscreen bool   `yaml:"fullscreen"`
	VSync      bool   `yaml:"vsync"`
	Samples    uint16 `yaml:"samples"`
	ExitOnEsc  bool   `yaml:"exit_on_esc"`
	SRGB       bool   `yaml:"srgb"`
	Resizable  bool   `yaml:"resizable"`
	Decorated  bool   `yaml:"decorated"`
}

// Config is the effective fullframe configuration.
type Config struct {
	// Display is the X11 display to connect to; empty uses $DISPLAY.
	Display string `yaml:"display,omitempty"`
	// XAuthority is exported as XAUTHORITY before connecting when set.
	XAuthority string       `yaml:"xauthority,omitempty"`
	Backend    Backend      `yaml:"backend"`
	Window     WindowConfig `yaml:"window"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendX11,
		Window: WindowConfig{
			Title:     "fullframe",
			Width:     640,
			Height:    480,
			ExitOnEsc: true,
			SRGB:      true,
			Resizable: true,
			Decorated: true,
		},
	}
}

// WindowSettings converts the window section to builder settings.
func (c *Config) WindowSettings() window.Settings {
	w := c.Window
	return window.Settings{
		Title:         w.Title,
		Size:          window.Size{Width: w.Width, Height: w.Height},
		Fullscreen:    w.Fullscreen,
		VSync:         w.VSync,
		Multisampling: w.Samples,
		ExitOnEsc:     w.ExitOnEsc,
		SRGB:          w.SRGB,
		Resizable:     w.Resizable,
		Decorated:     w.Decorated,
	}
}

// ApplyDisplayEnv exports XAUTHORITY for the X11 client library. DISPLAY is
// passed to the connection directly.
func (c *Config) ApplyDisplayEnv() error {
	xauth := strings.TrimSpace(c.XAuthority)
	if xauth == "" || os.Getenv("XAUTHORITY") != "" {
		return nil
	}
	return os.Setenv("XAUTHORITY", xauth)
}

// Save writes the config to the default path.
func (c *Config) Save() error {
	path, err := DefaultConfigPath()
	if err != nil {
		return err
	}
	return c.SaveTo(path)
}

// SaveTo writes the config as YAML to path, creating parent directories.
func (c *Config) SaveTo(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendX11, BackendEbiten:
	default:
		return &ValidationError{Path: "backend", Err: fmt.Errorf("backend must be one of: x11, ebiten")}
	}
	if c.Window.Width == 0 {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be > 0")}
	}
	if c.Window.Height == 0 {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be > 0")}
	}
	if c.Window.Width > maxDimension {
		return &ValidationError{Path: "window.width", Err: fmt.Errorf("width must be <= %d", maxDimension)}
	}
	if c.Window.Height > maxDimension {
		return &ValidationError{Path: "window.height", Err: fmt.Errorf("height must be <= %d", maxDimension)}
	}
	if s := c.Window.Samples; s != 0 && (s > maxSamples || s&(s-1) != 0) {
		return &ValidationError{Path: "window.samples", Err: fmt.Errorf("samples must be 0 or a power of two up to %d", maxSamples)}
	}
	return nil
}
