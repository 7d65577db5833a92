package x11

import (
	"errors"
	"testing"
)

func TestPickPrimary(t *testing.T) {
	tests := []struct {
		name     string
		monitors []Monitor
		want     string
		wantErr  error
	}{
		{"none", nil, "", ErrNoMonitors},
		{"single", []Monitor{{Name: "eDP-1"}}, "eDP-1", nil},
		{"marked primary", []Monitor{{Name: "eDP-1"}, {Name: "DP-2", Primary: true}}, "DP-2", nil},
		{"no primary falls back to first", []Monitor{{Name: "HDMI-1"}, {Name: "DP-2"}}, "HDMI-1", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pickPrimary(tt.monitors)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("pickPrimary err = %v, want %v", err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Name != tt.want {
				t.Fatalf("pickPrimary = %q, want %q", got.Name, tt.want)
			}
		})
	}
}

func TestPickPrimary_ReturnsCopy(t *testing.T) {
	monitors := []Monitor{{Name: "eDP-1", Width: 1920}}
	got, err := pickPrimary(monitors)
	if err != nil {
		t.Fatalf("pickPrimary: %v", err)
	}
	got.Width = 1
	if monitors[0].Width != 1920 {
		t.Fatalf("expected input slice untouched, got width %d", monitors[0].Width)
	}
}
