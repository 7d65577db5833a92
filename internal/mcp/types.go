package mcp

import "github.com/1broseidon/fullframe/internal/window"

// DescribeWindowInput is the input for the describe_window tool. Unset
// fields fall back to the loaded configuration.
type DescribeWindowInput struct {
	Title      *string `json:"title,omitempty" jsonschema:"Window title"`
	Width      *uint32 `json:"width,omitempty" jsonschema:"Requested width in pixels"`
	Height     *uint32 `json:"height,omitempty" jsonschema:"Requested height in pixels"`
	Fullscreen *bool   `json:"fullscreen,omitempty" jsonschema:"Request borderless fullscreen on the primary monitor"`
	VSync      *bool   `json:"vsync,omitempty" jsonschema:"Enable vertical sync"`
	Samples    *uint16 `json:"samples,omitempty" jsonschema:"Multisampling sample count (0 or a power of two up to 32)"`
	ExitOnEsc  *bool   `json:"exit_on_esc,omitempty" jsonschema:"Close the window when Escape is pressed"`
	SRGB       *bool   `json:"srgb,omitempty" jsonschema:"Request an sRGB framebuffer"`
	Resizable  *bool   `json:"resizable,omitempty" jsonschema:"Allow the user to resize the window"`
	Decorated  *bool   `json:"decorated,omitempty" jsonschema:"Show window manager decorations"`
	Headless   bool    `json:"headless,omitempty" jsonschema:"Skip the monitor query and describe as if no display were available"`
}

// DescribeWindowOutput is the output for the describe_window tool.
type DescribeWindowOutput struct {
	Descriptor window.Descriptor `json:"descriptor"`
	// MonitorError explains why a fullscreen descriptor is unbound.
	MonitorError string `json:"monitor_error,omitempty"`
}

// ListMonitorsInput is the input for the list_monitors tool.
type ListMonitorsInput struct{}

// MonitorEntry describes a single display.
type MonitorEntry struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Primary bool   `json:"primary"`
}

// ListMonitorsOutput is the output for the list_monitors tool.
type ListMonitorsOutput struct {
	Monitors []MonitorEntry `json:"monitors"`
}
