package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/1broseidon/fullframe/internal/platform"
	"github.com/1broseidon/fullframe/internal/tui"
	"github.com/1broseidon/fullframe/internal/window"
)

func runTUI(args []string) int {
	fs := flag.NewFlagSet("tui", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	path := fs.String("config", "", "Config file path (default: ~/.config/fullframe/config.yaml)")
	headless := fs.Bool("headless", false, "Preview fullscreen without querying the display")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: fullframe tui [--config PATH] [--headless]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Edit the window settings with a live preview of the resulting window.")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Keybindings:")
		fmt.Fprintln(os.Stderr, "  e         Edit window settings")
		fmt.Fprintln(os.Stderr, "  f         Toggle borderless fullscreen")
		fmt.Fprintln(os.Stderr, "  Ctrl+S    Review changes and save")
		fmt.Fprintln(os.Stderr, "  q         Quit")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	res, err := loadConfigResult(*path)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := res.Config.ApplyDisplayEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	var monitor *window.MonitorInfo
	if !*headless {
		if backend, err := openBackend(res.Config); err != nil {
			platform.DisconnectedMonitorQuery(err).QueryPrimary()
		} else {
			monitor = platform.NewPrimaryMonitorQuery(backend).QueryPrimary()
			backend.Close()
		}
	}

	if err := tui.Run(tui.Options{Path: *path, Result: res, Monitor: monitor}); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}
