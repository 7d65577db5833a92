package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/1broseidon/fullframe/internal/config"
	"github.com/1broseidon/fullframe/internal/ebitenwin"
	"github.com/1broseidon/fullframe/internal/platform"
	"github.com/1broseidon/fullframe/internal/window"
)

func TestParseSize(t *testing.T) {
	tests := []struct {
		in      string
		w, h    uint32
		wantErr bool
	}{
		{"1920x1080", 1920, 1080, false},
		{" 800X600 ", 800, 600, false},
		{"800", 0, 0, true},
		{"0x600", 0, 0, true},
		{"axb", 0, 0, true},
		{"-1x5", 0, 0, true},
		{"1x2x3", 0, 0, true},
	}
	for _, tt := range tests {
		w, h, err := parseSize(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseSize(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if w != tt.w || h != tt.h {
			t.Errorf("parseSize(%q) = %dx%d, want %dx%d", tt.in, w, h, tt.w, tt.h)
		}
	}
}

func parseWindowFlags(t *testing.T, args ...string) (*windowFlags, *flag.FlagSet) {
	t.Helper()
	fs := flag.NewFlagSet("test", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	var wf windowFlags
	wf.register(fs)
	if err := fs.Parse(args); err != nil {
		t.Fatalf("parse %v: %v", args, err)
	}
	return &wf, fs
}

func TestWindowFlags_OnlySetFlagsOverride(t *testing.T) {
	wf, fs := parseWindowFlags(t)
	raw, err := wf.overrides(fs)
	if err != nil {
		t.Fatalf("overrides: %v", err)
	}
	if raw.Window != nil || raw.Display != nil || raw.Backend != nil {
		t.Fatalf("expected empty overrides, got %+v", raw)
	}
}

func TestWindowFlags_Overrides(t *testing.T) {
	wf, fs := parseWindowFlags(t, "--fullscreen", "--decorated=false", "--size", "1280x720", "--samples", "8", "--backend", "EBITEN")
	raw, err := wf.overrides(fs)
	if err != nil {
		t.Fatalf("overrides: %v", err)
	}
	w := raw.Window
	if w == nil || w.Fullscreen == nil || !*w.Fullscreen {
		t.Fatalf("expected fullscreen override, got %+v", w)
	}
	if w.Decorated == nil || *w.Decorated {
		t.Fatalf("expected decorated=false override")
	}
	if *w.Width != 1280 || *w.Height != 720 || *w.Samples != 8 {
		t.Fatalf("unexpected size/samples overrides %d %d %d", *w.Width, *w.Height, *w.Samples)
	}
	if w.Title != nil || w.VSync != nil {
		t.Fatalf("expected unset flags to stay nil")
	}
	if raw.Backend == nil || *raw.Backend != "ebiten" {
		t.Fatalf("expected backend ebiten, got %v", raw.Backend)
	}
}

func TestWindowFlags_BadSize(t *testing.T) {
	wf, fs := parseWindowFlags(t, "--size", "big")
	if _, err := wf.overrides(fs); err == nil {
		t.Fatalf("expected size error")
	}
}

func TestWriteYAML_Descriptor(t *testing.T) {
	d := window.Build(window.Settings{Fullscreen: true, Size: window.Size{Width: 800, Height: 600}}, window.MonitorQueryFunc(func() *window.MonitorInfo {
		return &window.MonitorInfo{Name: "DP-1", Size: window.Size{Width: 1920, Height: 1080}}
	}))

	var buf bytes.Buffer
	if err := writeYAML(&buf, d); err != nil {
		t.Fatalf("writeYAML: %v", err)
	}
	var back window.Descriptor
	if err := yaml.Unmarshal(buf.Bytes(), &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back.Fullscreen.Mode != window.FullscreenBorderless || back.MinSize == nil || *back.MinSize != d.Size {
		t.Fatalf("unexpected descriptor after yaml: %+v", back)
	}
	if !strings.Contains(buf.String(), "override_redirect: true") {
		t.Fatalf("expected override_redirect in output:\n%s", buf.String())
	}
}

func TestRenderDescriptor(t *testing.T) {
	d := window.Build(window.Settings{Title: "kiosk", Fullscreen: true, Size: window.Size{Width: 800, Height: 600}}, nil)
	out := renderDescriptor(d)
	for _, want := range []string{"kiosk", "800x600", "borderless", "unbound"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in rendered descriptor:\n%s", want, out)
		}
	}
}

type stubBackend struct {
	platform.Backend
	primary platform.Display
	closed  bool
}

func (b *stubBackend) PrimaryDisplay() (platform.Display, error) { return b.primary, nil }

func (b *stubBackend) Close() { b.closed = true }

func TestMonitorQuery_SkipsDisplayUnlessFullscreen(t *testing.T) {
	opens := 0
	open := func(*config.Config) (platform.Backend, error) {
		opens++
		return nil, platform.ErrNoDisplay
	}

	cfg := config.DefaultConfig()
	query, closeQuery := monitorQuery(cfg, false, open)
	defer closeQuery()
	if query.QueryPrimary() != nil || opens != 0 {
		t.Fatalf("expected windowed describe not to open a display, opens=%d", opens)
	}

	cfg.Window.Fullscreen = true
	_, closeHeadless := monitorQuery(cfg, true, open)
	defer closeHeadless()
	if opens != 0 {
		t.Fatalf("expected headless describe not to open a display, opens=%d", opens)
	}
}

func TestMonitorQuery_FullscreenReportsOpenError(t *testing.T) {
	openErr := fmt.Errorf("%w: DISPLAY unset", platform.ErrNoDisplay)
	cfg := config.DefaultConfig()
	cfg.Window.Fullscreen = true

	query, closeQuery := monitorQuery(cfg, false, func(*config.Config) (platform.Backend, error) { return nil, openErr })
	defer closeQuery()

	d := window.Build(cfg.WindowSettings(), query)
	if d.Fullscreen.Monitor != nil {
		t.Fatalf("expected unbound fullscreen")
	}
	pq, ok := query.(*platform.PrimaryMonitorQuery)
	if !ok {
		t.Fatalf("expected a PrimaryMonitorQuery, got %T", query)
	}
	if pq.LastErr() != openErr {
		t.Fatalf("expected the open error to be kept, got %v", pq.LastErr())
	}
}

func TestMonitorQuery_FullscreenUsesBackend(t *testing.T) {
	backend := &stubBackend{primary: platform.Display{Name: "DP-2", Bounds: platform.Rect{Width: 2560, Height: 1440}}}
	cfg := config.DefaultConfig()
	cfg.Window.Fullscreen = true

	query, closeQuery := monitorQuery(cfg, false, func(*config.Config) (platform.Backend, error) { return backend, nil })
	d := window.Build(cfg.WindowSettings(), query)
	closeQuery()

	if d.Size != (window.Size{Width: 2560, Height: 1440}) || !backend.closed {
		t.Fatalf("expected monitor-sized descriptor and closed backend, got %v closed=%v", d.Size, backend.closed)
	}
}

func TestOpenBackend_Ebiten(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Backend = config.BackendEbiten

	b, err := openBackend(cfg)
	if err != nil {
		t.Fatalf("openBackend: %v", err)
	}
	if _, ok := b.(ebitenwin.Backend); !ok {
		t.Fatalf("expected ebiten backend, got %T", b)
	}
}

var testMonitorRows = []monitorRow{
	{ID: 0, Name: "eDP-1", Width: 1366, Height: 768},
	{ID: 1, Name: "HDMI-1", X: 1366, Width: 1920, Height: 1080, Primary: true},
}

func TestWriteMonitorLines(t *testing.T) {
	var buf bytes.Buffer
	if err := writeMonitorLines(&buf, testMonitorRows); err != nil {
		t.Fatalf("writeMonitorLines: %v", err)
	}
	want := "0\teDP-1\t1366x768+0+0\t\n1\tHDMI-1\t1920x1080+1366+0\t*\n"
	if buf.String() != want {
		t.Fatalf("got %q, want %q", buf.String(), want)
	}
}

func TestRenderMonitorTable(t *testing.T) {
	out := renderMonitorTable(testMonitorRows)
	for _, want := range []string{"GEOMETRY", "eDP-1", "1920x1080+1366+0", "yes"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in table:\n%s", want, out)
		}
	}
}

func TestRunConfigPrint_Flags(t *testing.T) {
	newFlags := func() (*flag.FlagSet, *string) {
		fs := flag.NewFlagSet("print", flag.ContinueOnError)
		fs.SetOutput(io.Discard)
		return fs, fs.String("path", "", "")
	}

	fs, path := newFlags()
	if code := runConfigPrint(fs, path, []string{"--effective"}); code != 2 {
		t.Fatalf("expected --effective to be rejected with exit 2, got %d", code)
	}

	fs, path = newFlags()
	if code := runConfigPrint(fs, path, []string{"--defaults"}); code != 0 {
		t.Fatalf("expected --defaults to print, got exit %d", code)
	}
}
