package config

import "fmt"

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// FromRaw applies raw over DefaultConfig. The result is not validated.
func FromRaw(raw RawConfig) *Config {
	cfg := DefaultConfig()
	cfg.apply(raw)
	return cfg
}

// ApplyOverrides layers raw (typically command-line flags) on top of an
// already effective config and revalidates it.
func (c *Config) ApplyOverrides(raw RawConfig) error {
	c.apply(raw)
	return c.Validate()
}

func (c *Config) apply(raw RawConfig) {
	if raw.Display != nil {
		c.Display = *raw.Display
	}
	if raw.XAuthority != nil {
		c.XAuthority = *raw.XAuthority
	}
	if raw.Backend != nil {
		c.Backend = *raw.Backend
	}
	if raw.Window != nil {
		applyRawWindow(&c.Window, *raw.Window)
	}
}

func applyRawWindow(w *WindowConfig, raw RawWindowConfig) {
	if raw.Title != nil {
		w.Title = *raw.Title
	}
	if raw.Width != nil {
		w.Width = *raw.Width
	}
	if raw.Height != nil {
		w.Height = *raw.Height
	}
	if raw.Fullscreen != nil {
		w.Fullscreen = *raw.Fullscreen
	}
	if raw.VSync != nil {
		w.VSync = *raw.VSync
	}
	if raw.Samples != nil {
		w.Samples = *raw.Samples
	}
	if raw.ExitOnEsc != nil {
		w.ExitOnEsc = *raw.ExitOnEsc
	}
	if raw.SRGB != nil {
		w.SRGB = *raw.SRGB
	}
	if raw.Resizable != nil {
		w.Resizable = *raw.Resizable
	}
	if raw.Decorated != nil {
		w.Decorated = *raw.Decorated
	}
}
