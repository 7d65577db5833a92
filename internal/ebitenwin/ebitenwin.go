// Package ebitenwin realizes window descriptors through ebiten.
package ebitenwin

import (
	"context"
	"errors"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/1broseidon/fullframe/internal/platform"
	"github.com/1broseidon/fullframe/internal/window"
)

// Backend realizes descriptors through ebiten. Monitor placement is not
// exposed by ebiten, so display bounds always start at the origin.
type Backend struct{}

var _ platform.Backend = Backend{}

// monitor is the part of *ebiten.MonitorType the backend reads.
type monitor interface {
	Name() string
	Size() (int, int)
}

func (Backend) Displays() ([]platform.Display, error) {
	all := ebiten.AppendMonitors(nil)
	monitors := make([]monitor, len(all))
	current := -1
	for i, m := range all {
		monitors[i] = m
		if m == ebiten.Monitor() {
			current = i
		}
	}
	displays := displaysFrom(monitors, current)
	if len(displays) == 0 {
		return nil, platform.ErrNoMonitor
	}
	return displays, nil
}

// PrimaryDisplay reports ebiten's current monitor, which is the primary
// monitor until a window has been moved.
func (b Backend) PrimaryDisplay() (platform.Display, error) {
	displays, err := b.Displays()
	if err != nil {
		return platform.Display{}, err
	}
	for _, d := range displays {
		if d.Primary {
			return d, nil
		}
	}
	return displays[0], nil
}

func (Backend) Open(ctx context.Context, d window.Descriptor) error {
	return Run(ctx, d)
}

func (Backend) Close() {}

func displaysFrom(monitors []monitor, current int) []platform.Display {
	var out []platform.Display
	for i, m := range monitors {
		w, h := m.Size()
		if w <= 0 || h <= 0 {
			continue
		}
		out = append(out, platform.Display{
			ID:      i,
			Name:    m.Name(),
			Bounds:  platform.Rect{Width: w, Height: h},
			Primary: i == current,
		})
	}
	return out
}

// options is the subset of ebiten's window state a descriptor controls.
type options struct {
	title        string
	width        int
	height       int
	minWidth     int
	minHeight    int
	maxWidth     int
	maxHeight    int
	decorated    bool
	floating     bool
	resizing     ebiten.WindowResizingModeType
	vsync        bool
	fullscreen   bool
	monitorName  string
	unsupported  []string
	exitOnEscape bool
}

func optionsFor(d window.Descriptor) options {
	o := options{
		title:        d.Title,
		width:        int(d.Size.Width),
		height:       int(d.Size.Height),
		minWidth:     -1,
		minHeight:    -1,
		maxWidth:     -1,
		maxHeight:    -1,
		decorated:    d.Decorated,
		floating:     d.AlwaysOnTop,
		resizing:     ebiten.WindowResizingModeDisabled,
		vsync:        d.VSync,
		fullscreen:   d.IsFullscreen(),
		exitOnEscape: d.ExitOnEsc,
	}
	if d.Resizable {
		o.resizing = ebiten.WindowResizingModeEnabled
	} else {
		o.maxWidth, o.maxHeight = o.width, o.height
	}
	if d.MinSize != nil {
		o.minWidth = int(d.MinSize.Width)
		o.minHeight = int(d.MinSize.Height)
	}
	if d.Fullscreen.Monitor != nil {
		o.monitorName = d.Fullscreen.Monitor.Name
	}
	if d.OverrideRedirect {
		o.unsupported = append(o.unsupported, "override_redirect")
	}
	if d.Multisampling > 0 {
		o.unsupported = append(o.unsupported, "samples")
	}
	return o
}

func (o options) apply() {
	ebiten.SetWindowTitle(o.title)
	ebiten.SetWindowSize(o.width, o.height)
	ebiten.SetWindowSizeLimits(o.minWidth, o.minHeight, o.maxWidth, o.maxHeight)
	ebiten.SetWindowDecorated(o.decorated)
	ebiten.SetWindowFloating(o.floating)
	ebiten.SetWindowResizingMode(o.resizing)
	ebiten.SetVsyncEnabled(o.vsync)

	if o.monitorName != "" {
		if m := findMonitor(o.monitorName); m != nil {
			ebiten.SetMonitor(m)
		}
	}
	ebiten.SetFullscreen(o.fullscreen)

	for _, name := range o.unsupported {
		log.Printf("ebiten: %s is not supported and was ignored", name)
	}
}

func findMonitor(name string) *ebiten.MonitorType {
	for _, m := range ebiten.AppendMonitors(nil) {
		if m.Name() == name {
			return m
		}
	}
	return nil
}

// game clears the screen and stops on Escape or cancellation.
type game struct {
	ctx          context.Context
	exitOnEscape bool
}

func (g *game) Update() error {
	if g.ctx.Err() != nil {
		return ebiten.Termination
	}
	if g.exitOnEscape && inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// Run realizes d and blocks until the window closes or ctx is done. ebiten
// must be driven from the main goroutine.
func Run(ctx context.Context, d window.Descriptor) error {
	if d.Size.IsZero() {
		return errors.New("ebiten: window size must be non-zero")
	}
	o := optionsFor(d)
	o.apply()

	err := ebiten.RunGameWithOptions(&game{ctx: ctx, exitOnEscape: o.exitOnEscape}, &ebiten.RunGameOptions{
		X11ClassName:    "Fullframe",
		X11InstanceName: "fullframe",
	})
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}
