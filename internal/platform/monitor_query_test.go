package platform

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/1broseidon/fullframe/internal/window"
)

type fakeBackend struct {
	primary      Display
	primaryErr   error
	primaryCalls int
}

func (f *fakeBackend) Displays() ([]Display, error) { return []Display{f.primary}, f.primaryErr }

func (f *fakeBackend) PrimaryDisplay() (Display, error) {
	f.primaryCalls++
	return f.primary, f.primaryErr
}

func (f *fakeBackend) Open(context.Context, window.Descriptor) error { return nil }

func (f *fakeBackend) Close() {}

func TestPrimaryMonitorQuery_ReportsDisplay(t *testing.T) {
	backend := &fakeBackend{primary: Display{
		Name:    "DP-1",
		Bounds:  Rect{X: 1920, Y: 0, Width: 2560, Height: 1440},
		Primary: true,
	}}
	q := NewPrimaryMonitorQuery(backend)

	got := q.QueryPrimary()
	want := &window.MonitorInfo{Name: "DP-1", X: 1920, Size: window.Size{Width: 2560, Height: 1440}}
	if got == nil || *got != *want {
		t.Fatalf("QueryPrimary = %+v, want %+v", got, want)
	}
	if q.LastErr() != nil {
		t.Fatalf("expected no error, got %v", q.LastErr())
	}
}

func TestPrimaryMonitorQuery_FailuresCollapseToAbsence(t *testing.T) {
	randrErr := errors.New("randr init failed")
	tests := []struct {
		name    string
		backend Backend
		wantErr error
		wantLog string
	}{
		{"nil backend", nil, ErrNoDisplay, "no display"},
		{"no monitor", &fakeBackend{primaryErr: fmt.Errorf("%w: none", ErrNoMonitor)}, ErrNoMonitor, "no active monitor"},
		{"query error", &fakeBackend{primaryErr: randrErr}, randrErr, "query failed"},
		{"zero-size display", &fakeBackend{primary: Display{Name: "ghost"}}, ErrNoMonitor, "no active monitor"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var logged []string
			q := NewPrimaryMonitorQuery(tt.backend)
			q.Logf = func(format string, args ...any) {
				logged = append(logged, fmt.Sprintf(format, args...))
			}

			if got := q.QueryPrimary(); got != nil {
				t.Fatalf("expected no monitor, got %+v", got)
			}
			if !errors.Is(q.LastErr(), tt.wantErr) {
				t.Fatalf("LastErr = %v, want %v", q.LastErr(), tt.wantErr)
			}
			if len(logged) != 1 || !strings.Contains(logged[0], tt.wantLog) {
				t.Fatalf("expected one log line containing %q, got %v", tt.wantLog, logged)
			}
		})
	}
}

func TestPrimaryMonitorQuery_BuildQueriesOnce(t *testing.T) {
	backend := &fakeBackend{primary: Display{Bounds: Rect{Width: 1920, Height: 1080}}}
	q := NewPrimaryMonitorQuery(backend)

	d := window.Build(window.Settings{Fullscreen: true, Size: window.Size{Width: 800, Height: 600}}, q)
	if backend.primaryCalls != 1 {
		t.Fatalf("expected one PrimaryDisplay call, got %d", backend.primaryCalls)
	}
	if d.Size != (window.Size{Width: 1920, Height: 1080}) {
		t.Fatalf("expected monitor size, got %v", d.Size)
	}

	window.Build(window.Settings{Size: window.Size{Width: 800, Height: 600}}, q)
	if backend.primaryCalls != 1 {
		t.Fatalf("expected windowed build not to query, got %d calls", backend.primaryCalls)
	}
}

func TestUnavailable(t *testing.T) {
	d := window.Build(window.Settings{Fullscreen: true, Size: window.Size{Width: 800, Height: 600}}, Unavailable())
	if d.Fullscreen.Monitor != nil || d.MinSize != nil {
		t.Fatalf("expected unbound, unsized fullscreen, got %+v", d)
	}
}

func TestDisconnectedMonitorQuery_ReportsOpenError(t *testing.T) {
	openErr := fmt.Errorf("%w: can't open display :9", ErrNoDisplay)
	var logged []string
	q := DisconnectedMonitorQuery(openErr)
	q.Logf = func(format string, args ...any) {
		logged = append(logged, fmt.Sprintf(format, args...))
	}

	if got := q.QueryPrimary(); got != nil {
		t.Fatalf("expected no monitor, got %+v", got)
	}
	if q.LastErr() != openErr {
		t.Fatalf("LastErr = %v, want %v", q.LastErr(), openErr)
	}
	if len(logged) != 1 || !strings.Contains(logged[0], ":9") {
		t.Fatalf("expected one log line naming the display, got %v", logged)
	}
}
