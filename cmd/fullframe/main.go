package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/1broseidon/fullframe/internal/config"
	"github.com/1broseidon/fullframe/internal/ebitenwin"
	"github.com/1broseidon/fullframe/internal/platform"
)

func main() {
	if len(os.Args) < 2 {
		printMainUsage(os.Stdout)
		os.Exit(0)
	}

	switch os.Args[1] {
	case "describe":
		os.Exit(runDescribe(os.Args[2:]))
	case "open":
		os.Exit(runOpen(os.Args[2:]))
	case "monitors":
		os.Exit(runMonitors(os.Args[2:]))
	case "config":
		os.Exit(runConfig(os.Args[2:]))
	case "tui":
		os.Exit(runTUI(os.Args[2:]))
	case "mcp":
		os.Exit(runMCP(os.Args[2:]))
	case "help", "-h", "--help":
		printMainUsage(os.Stdout)
		os.Exit(0)
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", os.Args[1])
		printMainUsage(os.Stderr)
		os.Exit(2)
	}
}

func printMainUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: fullframe <command> [options]")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  describe            Print the window descriptor for the configured settings")
	fmt.Fprintln(w, "  open                Build the descriptor and open the window")
	fmt.Fprintln(w, "  monitors            List monitors and the primary monitor")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  config validate     Validate configuration")
	fmt.Fprintln(w, "  config print        Print configuration")
	fmt.Fprintln(w, "  config explain      Explain a config value")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "  tui                 Edit window settings interactively")
	fmt.Fprintln(w, "  mcp serve           Start MCP server (stdio transport)")
	fmt.Fprintln(w, "")
	fmt.Fprintln(w, "Run 'fullframe <command> --help' for command-specific options.")
}

// windowFlags registers the settings overrides shared by describe and open.
// Only flags given on the command line override the config file.
type windowFlags struct {
	configPath string
	display    string
	backend    string
	title      string
	size       string
	fullscreen bool
	vsync      bool
	samples    uint
	exitOnEsc  bool
	srgb       bool
	resizable  bool
	decorated  bool
}

func (f *windowFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&f.configPath, "config", "", "Config file path (default: ~/.config/fullframe/config.yaml)")
	fs.StringVar(&f.display, "display", "", "X11 display (default: config, then $DISPLAY)")
	fs.StringVar(&f.backend, "backend", "", "Window system: x11 or ebiten")
	fs.StringVar(&f.title, "title", "", "Window title")
	fs.StringVar(&f.size, "size", "", "Window size as WIDTHxHEIGHT")
	fs.BoolVar(&f.fullscreen, "fullscreen", false, "Borderless fullscreen on the primary monitor")
	fs.BoolVar(&f.vsync, "vsync", false, "Enable vertical sync")
	fs.UintVar(&f.samples, "samples", 0, "Multisampling sample count")
	fs.BoolVar(&f.exitOnEsc, "exit-on-esc", false, "Close the window on Escape")
	fs.BoolVar(&f.srgb, "srgb", false, "Request an sRGB framebuffer")
	fs.BoolVar(&f.resizable, "resizable", false, "Allow resizing")
	fs.BoolVar(&f.decorated, "decorated", false, "Show window decorations")
}

// overrides converts the flags that were explicitly set into a raw config layer.
func (f *windowFlags) overrides(fs *flag.FlagSet) (config.RawConfig, error) {
	raw := config.RawConfig{}
	win := &config.RawWindowConfig{}
	var err error

	fs.Visit(func(fl *flag.Flag) {
		if err != nil {
			return
		}
		switch fl.Name {
		case "display":
			raw.Display = &f.display
		case "backend":
			b := config.Backend(strings.ToLower(strings.TrimSpace(f.backend)))
			raw.Backend = &b
		case "title":
			win.Title = &f.title
		case "size":
			var w, h uint32
			w, h, err = parseSize(f.size)
			if err == nil {
				win.Width, win.Height = &w, &h
			}
		case "fullscreen":
			win.Fullscreen = &f.fullscreen
		case "vsync":
			win.VSync = &f.vsync
		case "samples":
			if f.samples > 0xFFFF {
				err = fmt.Errorf("samples %d out of range", f.samples)
				return
			}
			s := uint16(f.samples)
			win.Samples = &s
		case "exit-on-esc":
			win.ExitOnEsc = &f.exitOnEsc
		case "srgb":
			win.SRGB = &f.srgb
		case "resizable":
			win.Resizable = &f.resizable
		case "decorated":
			win.Decorated = &f.decorated
		}
	})
	if err != nil {
		return config.RawConfig{}, err
	}
	if *win != (config.RawWindowConfig{}) {
		raw.Window = win
	}
	return raw, nil
}

// load reads the config file and applies flag overrides.
func (f *windowFlags) load(fs *flag.FlagSet) (*config.Config, error) {
	raw, err := f.overrides(fs)
	if err != nil {
		return nil, err
	}

	res, err := loadConfigResult(f.configPath)
	if err != nil {
		return nil, err
	}

	cfg := res.Config
	if err := cfg.ApplyOverrides(raw); err != nil {
		return nil, err
	}
	if err := cfg.ApplyDisplayEnv(); err != nil {
		return nil, fmt.Errorf("failed to set XAUTHORITY: %w", err)
	}
	return cfg, nil
}

func parseSize(s string) (uint32, uint32, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "x")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("invalid size %q: expected WIDTHxHEIGHT", s)
	}
	w, err := strconv.ParseUint(parts[0], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid width in %q: %w", s, err)
	}
	h, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid height in %q: %w", s, err)
	}
	if w == 0 || h == 0 {
		return 0, 0, fmt.Errorf("invalid size %q: width and height must be > 0", s)
	}
	return uint32(w), uint32(h), nil
}

// openBackend connects to the window system named by cfg.Backend.
func openBackend(cfg *config.Config) (platform.Backend, error) {
	if cfg.Backend == config.BackendEbiten {
		return ebitenwin.Backend{}, nil
	}
	b, err := platform.NewLinuxBackendFromDisplay(cfg.Display)
	if err != nil {
		return nil, err
	}
	return b, nil
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

func isHelpArg(args []string) bool {
	return len(args) > 0 && (args[0] == "help" || args[0] == "-h" || args[0] == "--help")
}
