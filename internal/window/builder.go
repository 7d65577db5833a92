// Package window turns window settings into a descriptor a window system can
// realize. Fullscreen requests are resolved against the primary monitor as a
// borderless window that covers it exactly.
package window

// Build produces the descriptor for settings. The query is consulted once when
// fullscreen is requested and never otherwise. A nil query, or one that
// reports no monitor, still yields a borderless fullscreen descriptor; only
// the forced sizing is skipped.
func Build(settings Settings, query MonitorQuery) Descriptor {
	d := baseline(settings)
	if !settings.Fullscreen {
		return d
	}

	var monitor *MonitorInfo
	if query != nil {
		monitor = query.QueryPrimary()
	}

	d.Fullscreen = Fullscreen{Mode: FullscreenBorderless}
	d.Decorated = false
	d.AlwaysOnTop = true
	d.OverrideRedirect = true

	if monitor != nil {
		bound := *monitor
		d.Fullscreen.Monitor = &bound

		// Both are set: toolkits clamp the current size to their own minimum
		// floor otherwise, leaving a visible border on large displays.
		size := bound.Size
		d.Size = size
		d.MinSize = &size
	}
	return d
}

func baseline(settings Settings) Descriptor {
	return Descriptor{
		Title:         settings.Title,
		Size:          settings.Size,
		Resizable:     settings.Resizable,
		Decorated:     settings.Decorated,
		VSync:         settings.VSync,
		Multisampling: settings.Multisampling,
		SRGB:          settings.SRGB,
		ExitOnEsc:     settings.ExitOnEsc,
		Fullscreen:    Fullscreen{Mode: FullscreenNone},
	}
}
