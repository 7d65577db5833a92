package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList accepts a single file or a list of files. Relative paths
// resolve against the including file.
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

type RawWindowConfig struct {
	Title      *string `yaml:"title"`
	Width      *uint32 `yaml:"width"`
	Height     *uint32 `yaml:"height"`
	Fullscreen *bool   `yaml:"fullscreen"`
	VSync      *bool   `yaml:"vsync"`
	Samples    *uint16 `yaml:"samples"`
	ExitOnEsc  *bool   `yaml:"exit_on_esc"`
	SRGB       *bool   `yaml:"srgb"`
	Resizable  *bool   `yaml:"resizable"`
	Decorated  *bool   `yaml:"decorated"`
}

// RawConfig is the on-disk shape: every field optional so files and
// command-line overrides can be layered.
type RawConfig struct {
	Include    IncludeList      `yaml:"include"`
	Display    *string          `yaml:"display"`
	XAuthority *string          `yaml:"xauthority"`
	Backend    *Backend         `yaml:"backend"`
	Window     *RawWindowConfig `yaml:"window"`
}

// merge returns a with every field set in b overriding it.
func (a RawConfig) merge(b RawConfig) RawConfig {
	out := a
	out.Include = nil
	if b.Display != nil {
		out.Display = b.Display
	}
	if b.XAuthority != nil {
		out.XAuthority = b.XAuthority
	}
	if b.Backend != nil {
		out.Backend = b.Backend
	}
	if b.Window != nil {
		var w RawWindowConfig
		if a.Window != nil {
			w = *a.Window
		}
		w = w.merge(*b.Window)
		out.Window = &w
	}
	return out
}

func (a RawWindowConfig) merge(b RawWindowConfig) RawWindowConfig {
	out := a
	if b.Title != nil {
		out.Title = b.Title
	}
	if b.Width != nil {
		out.Width = b.Width
	}
	if b.Height != nil {
		out.Height = b.Height
	}
	if b.Fullscreen != nil {
		out.Fullscreen = b.Fullscreen
	}
	if b.VSync != nil {
		out.VSync = b.VSync
	}
	if b.Samples != nil {
		out.Samples = b.Samples
	}
	if b.ExitOnEsc != nil {
		out.ExitOnEsc = b.ExitOnEsc
	}
	if b.SRGB != nil {
		out.SRGB = b.SRGB
	}
	if b.Resizable != nil {
		out.Resizable = b.Resizable
	}
	if b.Decorated != nil {
		out.Decorated = b.Decorated
	}
	return out
}
