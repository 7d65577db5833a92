package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/1broseidon/fullframe/internal/platform"
	"github.com/1broseidon/fullframe/internal/window"
)

func runOpen(args []string) int {
	fs := flag.NewFlagSet("open", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var wf windowFlags
	wf.register(fs)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: fullframe open [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Build the window descriptor and open it. Runs until the window is")
		fmt.Fprintln(os.Stderr, "closed, Escape is pressed (with exit_on_esc), or the process is interrupted.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "open takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := wf.load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	ctx, stop := signalContext()
	defer stop()

	backend, err := openBackend(cfg)
	if err == nil {
		defer backend.Close()
		d := window.Build(cfg.WindowSettings(), platform.NewPrimaryMonitorQuery(backend))
		logDescriptor(d)
		err = backend.Open(ctx, d)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to open window: %v\n", err)
		return 1
	}
	return 0
}

func logDescriptor(d window.Descriptor) {
	if !d.IsFullscreen() {
		log.Printf("Opening %q at %s", d.Title, d.Size)
		return
	}
	if d.Fullscreen.Monitor == nil {
		log.Printf("Opening %q borderless fullscreen (no monitor, size %s)", d.Title, d.Size)
		return
	}
	log.Printf("Opening %q borderless fullscreen on %s (%s)", d.Title, d.Fullscreen.Monitor.Name, d.Size)
}
