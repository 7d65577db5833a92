package window

// FullscreenMode selects how a window occupies the display.
type FullscreenMode string

const (
	FullscreenNone FullscreenMode = "none"
	// FullscreenBorderless covers the display without a video mode switch.
	FullscreenBorderless FullscreenMode = "borderless"
)

// Fullscreen is the fullscreen selection of a descriptor. Monitor is nil when
// the window is not bound to a specific display.
type Fullscreen struct {
	Mode    FullscreenMode `yaml:"mode" json:"mode"`
	Monitor *MonitorInfo   `yaml:"monitor,omitempty" json:"monitor,omitempty"`
}

// Descriptor is the platform window configuration handed to a window system.
// It owns no resources.
type Descriptor struct {
	Title string `yaml:"title" json:"title"`
	Size  Size   `yaml:"size" json:"size"`
	// MinSize is nil when no minimum was requested.
	MinSize          *Size      `yaml:"min_size,omitempty" json:"min_size,omitempty"`
	Resizable        bool       `yaml:"resizable" json:"resizable"`
	Decorated        bool       `yaml:"decorated" json:"decorated"`
	AlwaysOnTop      bool       `yaml:"always_on_top" json:"always_on_top"`
	OverrideRedirect bool       `yaml:"override_redirect" json:"override_redirect"`
	Fullscreen       Fullscreen `yaml:"fullscreen" json:"fullscreen"`

	VSync         bool   `yaml:"vsync" json:"vsync"`
	Multisampling uint16 `yaml:"samples" json:"samples"`
	SRGB          bool   `yaml:"srgb" json:"srgb"`
	ExitOnEsc     bool   `yaml:"exit_on_esc" json:"exit_on_esc"`
}

// IsFullscreen reports whether a fullscreen mode was selected.
func (d Descriptor) IsFullscreen() bool {
	return d.Fullscreen.Mode == FullscreenBorderless
}

// Origin returns where the window should be placed: the bound monitor's
// origin, or (0, 0) when unbound.
func (d Descriptor) Origin() (x, y int) {
	if d.Fullscreen.Monitor == nil {
		return 0, 0
	}
	return d.Fullscreen.Monitor.X, d.Fullscreen.Monitor.Y
}
