package window

import "fmt"

// Size is a window or monitor size in physical pixels.
type Size struct {
	Width  uint32 `yaml:"width" json:"width"`
	Height uint32 `yaml:"height" json:"height"`
}

func (s Size) String() string {
	return fmt.Sprintf("%dx%d", s.Width, s.Height)
}

// IsZero reports whether either dimension is zero.
func (s Size) IsZero() bool {
	return s.Width == 0 || s.Height == 0
}

// Settings describes the desired presentation of a window.
type Settings struct {
	Title         string `yaml:"title" json:"title"`
	Size          Size   `yaml:"size" json:"size"`
	Fullscreen    bool   `yaml:"fullscreen" json:"fullscreen"`
	VSync         bool   `yaml:"vsync" json:"vsync"`
	Multisampling uint16 `yaml:"samples" json:"samples"`
	ExitOnEsc     bool   `yaml:"exit_on_esc" json:"exit_on_esc"`
	SRGB          bool   `yaml:"srgb" json:"srgb"`
	Resizable     bool   `yaml:"resizable" json:"resizable"`
	Decorated     bool   `yaml:"decorated" json:"decorated"`
}

// MonitorInfo describes the primary display as reported by a window system.
// X and Y are the monitor origin in root coordinates; they are zero when
// the window system does not report placement.
type MonitorInfo struct {
	Name string `yaml:"name,omitempty" json:"name,omitempty"`
	X    int    `yaml:"x" json:"x"`
	Y    int    `yaml:"y" json:"y"`
	Size Size   `yaml:"size" json:"size"`
}

// MonitorQuery looks up the primary display. A nil result means no monitor
// could be enumerated, either because there is no display or because the
// query failed.
type MonitorQuery interface {
	QueryPrimary() *MonitorInfo
}

// MonitorQueryFunc adapts a plain function to MonitorQuery.
type MonitorQueryFunc func() *MonitorInfo

func (f MonitorQueryFunc) QueryPrimary() *MonitorInfo {
	return f()
}
