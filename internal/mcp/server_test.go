package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/1broseidon/fullframe/internal/config"
	"github.com/1broseidon/fullframe/internal/platform"
	"github.com/1broseidon/fullframe/internal/window"
)

type fakeBackend struct {
	displays []platform.Display
	err      error
	closed   bool
}

func (f *fakeBackend) Displays() ([]platform.Display, error) { return f.displays, f.err }

func (f *fakeBackend) PrimaryDisplay() (platform.Display, error) {
	if f.err != nil {
		return platform.Display{}, f.err
	}
	for _, d := range f.displays {
		if d.Primary {
			return d, nil
		}
	}
	return platform.Display{}, platform.ErrNoMonitor
}

func (f *fakeBackend) Open(context.Context, window.Descriptor) error { return nil }

func (f *fakeBackend) Close() { f.closed = true }

func newTestServer(backend *fakeBackend, openErr error) (*Server, *int) {
	opens := 0
	s := NewServer(config.DefaultConfig(), func(*config.Config) (platform.Backend, error) {
		opens++
		if openErr != nil {
			return nil, openErr
		}
		return backend, nil
	})
	return s, &opens
}

func boolPtr(b bool) *bool { return &b }

func TestDescribeWindow_WindowedUsesConfigDefaults(t *testing.T) {
	s, opens := newTestServer(&fakeBackend{}, nil)

	_, out, err := s.handleDescribeWindow(context.Background(), nil, DescribeWindowInput{})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if *opens != 0 {
		t.Fatalf("expected no display access for windowed describe, got %d opens", *opens)
	}
	d := out.Descriptor
	if d.Title != "fullframe" || d.Size != (window.Size{Width: 640, Height: 480}) {
		t.Fatalf("unexpected descriptor %+v", d)
	}
	if d.IsFullscreen() || d.AlwaysOnTop || d.OverrideRedirect {
		t.Fatalf("expected windowed descriptor, got %+v", d)
	}
}

func TestDescribeWindow_FullscreenBindsPrimary(t *testing.T) {
	backend := &fakeBackend{displays: []platform.Display{
		{ID: 0, Name: "eDP-1", Bounds: platform.Rect{Width: 1366, Height: 768}},
		{ID: 1, Name: "DP-1", Bounds: platform.Rect{X: 1366, Width: 1920, Height: 1080}, Primary: true},
	}}
	s, opens := newTestServer(backend, nil)

	_, out, err := s.handleDescribeWindow(context.Background(), nil, DescribeWindowInput{Fullscreen: boolPtr(true)})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if *opens != 1 || !backend.closed {
		t.Fatalf("expected one opened and closed backend, opens=%d closed=%v", *opens, backend.closed)
	}
	d := out.Descriptor
	if d.Size != (window.Size{Width: 1920, Height: 1080}) || d.MinSize == nil || *d.MinSize != d.Size {
		t.Fatalf("expected size pinned to primary monitor, got %+v", d)
	}
	if d.Fullscreen.Monitor == nil || d.Fullscreen.Monitor.Name != "DP-1" {
		t.Fatalf("expected DP-1 bound, got %+v", d.Fullscreen.Monitor)
	}
	if out.MonitorError != "" {
		t.Fatalf("expected no monitor error, got %q", out.MonitorError)
	}
}

func TestDescribeWindow_FullscreenWithoutDisplayDegrades(t *testing.T) {
	s, _ := newTestServer(nil, fmt.Errorf("%w: DISPLAY unset", platform.ErrNoDisplay))

	_, out, err := s.handleDescribeWindow(context.Background(), nil, DescribeWindowInput{Fullscreen: boolPtr(true)})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	d := out.Descriptor
	if d.Fullscreen.Mode != window.FullscreenBorderless || d.Fullscreen.Monitor != nil {
		t.Fatalf("expected unbound borderless fullscreen, got %+v", d.Fullscreen)
	}
	if d.Decorated || !d.AlwaysOnTop || !d.OverrideRedirect {
		t.Fatalf("expected fullscreen flags, got %+v", d)
	}
	if d.Size != (window.Size{Width: 640, Height: 480}) {
		t.Fatalf("expected default size kept, got %v", d.Size)
	}
	if !strings.Contains(out.MonitorError, "DISPLAY unset") {
		t.Fatalf("expected the open error as monitor error, got %q", out.MonitorError)
	}
}

func TestDescribeWindow_HeadlessSkipsDisplay(t *testing.T) {
	s, opens := newTestServer(&fakeBackend{}, nil)

	_, out, err := s.handleDescribeWindow(context.Background(), nil, DescribeWindowInput{Fullscreen: boolPtr(true), Headless: true})
	if err != nil {
		t.Fatalf("describe: %v", err)
	}
	if *opens != 0 {
		t.Fatalf("expected headless describe not to open a display, got %d", *opens)
	}
	if out.Descriptor.Fullscreen.Monitor != nil {
		t.Fatalf("expected unbound fullscreen")
	}
}

func TestDescribeWindow_InvalidOverride(t *testing.T) {
	s, _ := newTestServer(&fakeBackend{}, nil)
	zero := uint32(0)

	_, _, err := s.handleDescribeWindow(context.Background(), nil, DescribeWindowInput{Width: &zero})
	var verr *config.ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
}

func TestDescribeWindow_DoesNotMutateServerConfig(t *testing.T) {
	s, _ := newTestServer(&fakeBackend{}, nil)
	title := "changed"

	if _, _, err := s.handleDescribeWindow(context.Background(), nil, DescribeWindowInput{Title: &title}); err != nil {
		t.Fatalf("describe: %v", err)
	}
	if s.config.Window.Title != "fullframe" {
		t.Fatalf("expected server config untouched, got title %q", s.config.Window.Title)
	}
}

func TestListMonitors(t *testing.T) {
	backend := &fakeBackend{displays: []platform.Display{
		{ID: 0, Name: "eDP-1", Bounds: platform.Rect{Width: 1366, Height: 768}, Primary: true},
	}}
	s, _ := newTestServer(backend, nil)

	_, out, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(out.Monitors) != 1 || out.Monitors[0].Name != "eDP-1" || !out.Monitors[0].Primary {
		t.Fatalf("unexpected monitors %+v", out.Monitors)
	}
}

func TestListMonitors_OpenFailure(t *testing.T) {
	s, _ := newTestServer(nil, platform.ErrNoDisplay)

	_, _, err := s.handleListMonitors(context.Background(), nil, ListMonitorsInput{})
	if !errors.Is(err, platform.ErrNoDisplay) {
		t.Fatalf("expected ErrNoDisplay, got %v", err)
	}
}
