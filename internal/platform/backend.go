package platform

import (
	"context"
	"errors"

	"github.com/1broseidon/fullframe/internal/window"
)

var (
	// ErrNoDisplay means no window system connection could be made.
	ErrNoDisplay = errors.New("no display available")
	// ErrNoMonitor means the window system reported no usable monitor.
	ErrNoMonitor = errors.New("no monitor available")
)

// WindowID is a platform-neutral window identifier.
type WindowID uint32

// Rect describes a rectangular region in screen coordinates.
type Rect struct {
	X      int
	Y      int
	Width  int
	Height int
}

// Display describes a physical display.
type Display struct {
	ID      int
	Name    string
	Bounds  Rect
	Primary bool
}

// MonitorInfo converts the display to the descriptor builder's view of it.
func (d Display) MonitorInfo() *window.MonitorInfo {
	if d.Bounds.Width <= 0 || d.Bounds.Height <= 0 {
		return nil
	}
	return &window.MonitorInfo{
		Name: d.Name,
		X:    d.Bounds.X,
		Y:    d.Bounds.Y,
		Size: window.Size{Width: uint32(d.Bounds.Width), Height: uint32(d.Bounds.Height)},
	}
}

// Backend abstracts window-system operations across platforms.
type Backend interface {
	Displays() ([]Display, error)
	PrimaryDisplay() (Display, error)
	// Open realizes a descriptor and runs it until it is closed or ctx is done.
	Open(ctx context.Context, d window.Descriptor) error
	Close()
}
