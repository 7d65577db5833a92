package x11

import (
	"context"
	"fmt"
	"log"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/icccm"
	"github.com/BurntSushi/xgbutil/keybind"
	"github.com/BurntSushi/xgbutil/motif"
	"github.com/BurntSushi/xgbutil/xevent"
	"github.com/BurntSushi/xgbutil/xprop"

	"github.com/1broseidon/fullframe/internal/window"
)

const (
	wmClassInstance = "fullframe"
	wmClassName     = "Fullframe"

	// X11 sizes are CARD16 and positions INT16.
	maxDimension = 0xFFFF
	minCoord     = -0x8000
	maxCoord     = 0x7FFF
)

// Window is an X11 window realized from a descriptor.
type Window struct {
	conn       *Connection
	ID         xproto.Window
	descriptor window.Descriptor
	deleteAtom xproto.Atom
}

// CreateWindow realizes d as an unmapped top-level window. Attributes the
// window manager honors (title, size hints, decorations, stacking) are set
// as properties; override-redirect is set at creation since it cannot be
// changed on a mapped window.
func (c *Connection) CreateWindow(d window.Descriptor) (*Window, error) {
	width, height, err := geometry(d.Size)
	if err != nil {
		return nil, err
	}

	conn := c.XUtil.Conn()
	screen := c.XUtil.Screen()

	wid, err := xproto.NewWindowId(conn)
	if err != nil {
		return nil, fmt.Errorf("failed to allocate window id: %w", err)
	}

	overrideRedirect := uint32(0)
	if d.OverrideRedirect {
		overrideRedirect = 1
	}

	x, y, err := origin(d)
	if err != nil {
		return nil, err
	}
	err = xproto.CreateWindowChecked(
		conn,
		screen.RootDepth,
		wid,
		c.Root,
		x, y,
		width, height,
		0, // border_width
		xproto.WindowClassInputOutput,
		screen.RootVisual,
		xproto.CwBackPixel|xproto.CwOverrideRedirect|xproto.CwEventMask,
		// Value list order follows the bit positions of the mask (low → high).
		[]uint32{
			screen.BlackPixel,
			overrideRedirect,
			uint32(xproto.EventMaskKeyPress | xproto.EventMaskStructureNotify | xproto.EventMaskExposure),
		},
	).Check()
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	w := &Window{conn: c, ID: wid, descriptor: d}
	if err := w.setProperties(); err != nil {
		xproto.DestroyWindow(conn, wid)
		return nil, err
	}
	return w, nil
}

func geometry(size window.Size) (uint16, uint16, error) {
	if size.IsZero() {
		return 0, 0, fmt.Errorf("window size %s is not realizable", size)
	}
	width, height := size.Width, size.Height
	if width > maxDimension {
		width = maxDimension
	}
	if height > maxDimension {
		height = maxDimension
	}
	return uint16(width), uint16(height), nil
}

// origin returns the window position, rejecting monitor origins an X11
// request cannot carry.
func origin(d window.Descriptor) (int16, int16, error) {
	x, y := d.Origin()
	if x < minCoord || x > maxCoord || y < minCoord || y > maxCoord {
		return 0, 0, fmt.Errorf("window origin %d,%d is outside the X11 coordinate range", x, y)
	}
	return int16(x), int16(y), nil
}

func (w *Window) setProperties() error {
	xu := w.conn.XUtil
	d := w.descriptor

	if err := ewmh.WmNameSet(xu, w.ID, d.Title); err != nil {
		return fmt.Errorf("failed to set _NET_WM_NAME: %w", err)
	}
	if err := icccm.WmNameSet(xu, w.ID, d.Title); err != nil {
		return fmt.Errorf("failed to set WM_NAME: %w", err)
	}
	if err := icccm.WmClassSet(xu, w.ID, &icccm.WmClass{Instance: wmClassInstance, Class: wmClassName}); err != nil {
		return fmt.Errorf("failed to set WM_CLASS: %w", err)
	}
	if err := icccm.WmNormalHintsSet(xu, w.ID, normalHints(d)); err != nil {
		return fmt.Errorf("failed to set WM_NORMAL_HINTS: %w", err)
	}
	if err := icccm.WmProtocolsSet(xu, w.ID, []string{"WM_DELETE_WINDOW"}); err != nil {
		return fmt.Errorf("failed to set WM_PROTOCOLS: %w", err)
	}

	if !d.Decorated {
		hints := &motif.Hints{
			Flags:      motif.HintDecorations,
			Decoration: motif.DecorationNone,
		}
		if err := motif.WmHintsSet(xu, w.ID, hints); err != nil {
			return fmt.Errorf("failed to set _MOTIF_WM_HINTS: %w", err)
		}
	}

	if states := wmStates(d); len(states) > 0 {
		if err := ewmh.WmStateSet(xu, w.ID, states); err != nil {
			return fmt.Errorf("failed to set _NET_WM_STATE: %w", err)
		}
	}
	return nil
}

func normalHints(d window.Descriptor) *icccm.NormalHints {
	x, y := d.Origin()
	nh := &icccm.NormalHints{
		Flags:  icccm.SizeHintPPosition | icccm.SizeHintPSize,
		X:      x,
		Y:      y,
		Width:  uint(d.Size.Width),
		Height: uint(d.Size.Height),
	}
	if d.MinSize != nil {
		nh.Flags |= icccm.SizeHintPMinSize
		nh.MinWidth = uint(d.MinSize.Width)
		nh.MinHeight = uint(d.MinSize.Height)
	}
	if !d.Resizable {
		nh.Flags |= icccm.SizeHintPMinSize | icccm.SizeHintPMaxSize
		if d.MinSize == nil {
			nh.MinWidth = uint(d.Size.Width)
			nh.MinHeight = uint(d.Size.Height)
		}
		nh.MaxWidth = uint(d.Size.Width)
		nh.MaxHeight = uint(d.Size.Height)
	}
	return nh
}

func wmStates(d window.Descriptor) []string {
	var states []string
	if d.AlwaysOnTop {
		states = append(states, "_NET_WM_STATE_ABOVE")
	}
	if d.IsFullscreen() {
		states = append(states, "_NET_WM_STATE_FULLSCREEN")
	}
	return states
}

// Map shows the window. Always-on-top override-redirect windows bypass the
// window manager, so they are raised explicitly.
func (w *Window) Map() error {
	conn := w.conn.XUtil.Conn()
	if err := xproto.MapWindowChecked(conn, w.ID).Check(); err != nil {
		return fmt.Errorf("failed to map window: %w", err)
	}
	if w.descriptor.OverrideRedirect && w.descriptor.AlwaysOnTop {
		xproto.ConfigureWindow(conn, w.ID, xproto.ConfigWindowStackMode, []uint32{xproto.StackModeAbove})
	}
	return nil
}

// Run maps the window and processes events until the window is closed,
// Escape is pressed (when the descriptor asks for it), or ctx is done.
func (w *Window) Run(ctx context.Context) error {
	xu := w.conn.XUtil

	if err := w.connectHandlers(); err != nil {
		return err
	}
	defer xevent.Detach(xu, w.ID)

	if err := w.Map(); err != nil {
		return err
	}

	// Override-redirect windows never receive focus from the window
	// manager; keyboard input only arrives through a grab.
	if w.descriptor.OverrideRedirect && w.descriptor.ExitOnEsc {
		if err := keybind.GrabKeyboard(xu, w.ID); err != nil {
			log.Printf("Warning: keyboard grab failed, Escape will not close the window: %v", err)
		} else {
			defer keybind.UngrabKeyboard(xu)
		}
	}

	stop := context.AfterFunc(ctx, w.requestClose)
	defer stop()

	w.conn.EventLoop()
	return ctx.Err()
}

func (w *Window) connectHandlers() error {
	xu := w.conn.XUtil

	deleteAtom, err := xprop.Atm(xu, "WM_DELETE_WINDOW")
	if err != nil {
		return fmt.Errorf("failed to intern WM_DELETE_WINDOW: %w", err)
	}
	w.deleteAtom = deleteAtom
	xevent.ClientMessageFun(func(xu *xgbutil.XUtil, ev xevent.ClientMessageEvent) {
		if ev.Format == 32 && xproto.Atom(ev.Data.Data32[0]) == deleteAtom {
			xevent.Quit(xu)
		}
	}).Connect(xu, w.ID)

	if w.descriptor.ExitOnEsc {
		err := keybind.KeyPressFun(func(xu *xgbutil.XUtil, ev xevent.KeyPressEvent) {
			xevent.Quit(xu)
		}).Connect(xu, w.ID, "Escape", false)
		if err != nil {
			return fmt.Errorf("failed to bind Escape: %w", err)
		}
	}
	return nil
}

// requestClose delivers WM_DELETE_WINDOW to the window itself. The event
// loop blocks waiting for events, so quitting needs one to arrive.
func (w *Window) requestClose() {
	protocols, err := xprop.Atm(w.conn.XUtil, "WM_PROTOCOLS")
	if err != nil {
		w.conn.Quit()
		return
	}
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: w.ID,
		Type:   protocols,
		Data:   xproto.ClientMessageDataUnionData32New([]uint32{uint32(w.deleteAtom), 0, 0, 0, 0}),
	}
	xproto.SendEvent(w.conn.XUtil.Conn(), false, w.ID, xproto.EventMaskNoEvent, string(ev.Bytes()))
	w.conn.XUtil.Sync()
}

// Destroy releases the server-side window.
func (w *Window) Destroy() {
	xproto.DestroyWindow(w.conn.XUtil.Conn(), w.ID)
}
