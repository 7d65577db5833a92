package x11

import (
	"reflect"
	"testing"

	"github.com/BurntSushi/xgbutil/icccm"

	"github.com/1broseidon/fullframe/internal/window"
)

func TestGeometry(t *testing.T) {
	tests := []struct {
		name    string
		size    window.Size
		wantW   uint16
		wantH   uint16
		wantErr bool
	}{
		{"regular", window.Size{Width: 800, Height: 600}, 800, 600, false},
		{"clamped", window.Size{Width: 70000, Height: 100}, 0xFFFF, 100, false},
		{"zero width", window.Size{Height: 600}, 0, 0, true},
		{"zero height", window.Size{Width: 800}, 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h, err := geometry(tt.size)
			if (err != nil) != tt.wantErr {
				t.Fatalf("geometry(%v) err = %v, wantErr %v", tt.size, err, tt.wantErr)
			}
			if w != tt.wantW || h != tt.wantH {
				t.Fatalf("geometry(%v) = %dx%d, want %dx%d", tt.size, w, h, tt.wantW, tt.wantH)
			}
		})
	}
}

func TestNormalHints_FullscreenPinsMinimum(t *testing.T) {
	d := window.Build(window.Settings{
		Size:       window.Size{Width: 800, Height: 600},
		Fullscreen: true,
		Resizable:  true,
	}, window.MonitorQueryFunc(func() *window.MonitorInfo {
		return &window.MonitorInfo{X: 1920, Size: window.Size{Width: 2560, Height: 1440}}
	}))

	nh := normalHints(d)
	if nh.Flags&icccm.SizeHintPMinSize == 0 {
		t.Fatalf("expected PMinSize flag, got %#x", nh.Flags)
	}
	if nh.MinWidth != 2560 || nh.MinHeight != 1440 {
		t.Fatalf("expected min 2560x1440, got %dx%d", nh.MinWidth, nh.MinHeight)
	}
	if nh.Width != 2560 || nh.Height != 1440 {
		t.Fatalf("expected size 2560x1440, got %dx%d", nh.Width, nh.Height)
	}
	if nh.X != 1920 || nh.Y != 0 {
		t.Fatalf("expected position (1920,0), got (%d,%d)", nh.X, nh.Y)
	}
	if nh.Flags&icccm.SizeHintPMaxSize != 0 {
		t.Fatalf("expected no PMaxSize for resizable window")
	}
}

func TestNormalHints_FixedSizeWindow(t *testing.T) {
	d := window.Build(window.Settings{Size: window.Size{Width: 640, Height: 480}}, nil)

	nh := normalHints(d)
	if nh.Flags&icccm.SizeHintPMaxSize == 0 || nh.Flags&icccm.SizeHintPMinSize == 0 {
		t.Fatalf("expected min and max hints, got %#x", nh.Flags)
	}
	if nh.MinWidth != 640 || nh.MaxWidth != 640 || nh.MinHeight != 480 || nh.MaxHeight != 480 {
		t.Fatalf("expected 640x480 pinned, got min %dx%d max %dx%d", nh.MinWidth, nh.MinHeight, nh.MaxWidth, nh.MaxHeight)
	}
}

func TestWmStates(t *testing.T) {
	windowed := window.Build(window.Settings{Size: window.Size{Width: 1, Height: 1}, Decorated: true}, nil)
	if got := wmStates(windowed); len(got) != 0 {
		t.Fatalf("expected no states for windowed descriptor, got %v", got)
	}

	fullscreen := window.Build(window.Settings{Size: window.Size{Width: 1, Height: 1}, Fullscreen: true}, nil)
	want := []string{"_NET_WM_STATE_ABOVE", "_NET_WM_STATE_FULLSCREEN"}
	if got := wmStates(fullscreen); !reflect.DeepEqual(got, want) {
		t.Fatalf("wmStates = %v, want %v", got, want)
	}
}

func TestOrigin(t *testing.T) {
	fullscreenAt := func(x, y int) window.Descriptor {
		return window.Build(window.Settings{
			Size:       window.Size{Width: 800, Height: 600},
			Fullscreen: true,
		}, window.MonitorQueryFunc(func() *window.MonitorInfo {
			return &window.MonitorInfo{X: x, Y: y, Size: window.Size{Width: 1920, Height: 1080}}
		}))
	}

	tests := []struct {
		name    string
		d       window.Descriptor
		wantX   int16
		wantY   int16
		wantErr bool
	}{
		{"windowed", window.Build(window.Settings{Size: window.Size{Width: 800, Height: 600}}, nil), 0, 0, false},
		{"second monitor", fullscreenAt(1920, 0), 1920, 0, false},
		{"negative origin", fullscreenAt(-1080, -200), -1080, -200, false},
		{"edge of range", fullscreenAt(32767, -32768), 32767, -32768, false},
		{"x beyond range", fullscreenAt(40000, 0), 0, 0, true},
		{"y below range", fullscreenAt(0, -40000), 0, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y, err := origin(tt.d)
			if (err != nil) != tt.wantErr {
				t.Fatalf("origin err = %v, wantErr %v", err, tt.wantErr)
			}
			if x != tt.wantX || y != tt.wantY {
				t.Fatalf("origin = %d,%d, want %d,%d", x, y, tt.wantX, tt.wantY)
			}
		})
	}
}
