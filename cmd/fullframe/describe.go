package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/fullframe/internal/config"
	"github.com/1broseidon/fullframe/internal/platform"
	"github.com/1broseidon/fullframe/internal/window"
)

func runDescribe(args []string) int {
	fs := flag.NewFlagSet("describe", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	var wf windowFlags
	wf.register(fs)
	jsonOut := fs.Bool("json", false, "Output JSON")
	yamlOut := fs.Bool("yaml", false, "Output YAML")
	headless := fs.Bool("headless", false, "Do not query the display; describe as if no monitor were available")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: fullframe describe [options]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the window descriptor built from config and flags.")
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
		fmt.Fprintln(os.Stderr, "describe takes no arguments")
		fs.Usage()
		return 2
	}

	cfg, err := wf.load(fs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	query, closeQuery := monitorQuery(cfg, *headless, openBackend)
	defer closeQuery()
	d := window.Build(cfg.WindowSettings(), query)

	switch {
	case *jsonOut:
		err = writeJSON(os.Stdout, d)
	case *yamlOut || !term.IsTerminal(int(os.Stdout.Fd())):
		err = writeYAML(os.Stdout, d)
	default:
		fmt.Fprint(os.Stdout, renderDescriptor(d))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// monitorQuery returns the query used to size a fullscreen descriptor.
// Windowed and headless descriptions never touch the display.
func monitorQuery(cfg *config.Config, headless bool, open func(*config.Config) (platform.Backend, error)) (window.MonitorQuery, func()) {
	if headless || !cfg.Window.Fullscreen {
		return platform.Unavailable(), func() {}
	}
	backend, err := open(cfg)
	if err != nil {
		return platform.DisconnectedMonitorQuery(err), func() {}
	}
	return platform.NewPrimaryMonitorQuery(backend), backend.Close
}

func writeJSON(w io.Writer, d window.Descriptor) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func writeYAML(w io.Writer, d window.Descriptor) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}

var (
	headingStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15"))
	keyStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Width(18)
	onStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	offStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	boxStyle     = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 1)
)

func renderDescriptor(d window.Descriptor) string {
	yesNo := func(v bool) string {
		if v {
			return onStyle.Render("yes")
		}
		return offStyle.Render("no")
	}

	minSize := offStyle.Render("unset")
	if d.MinSize != nil {
		minSize = d.MinSize.String()
	}
	monitor := offStyle.Render("unbound")
	if m := d.Fullscreen.Monitor; m != nil {
		name := m.Name
		if name == "" {
			name = "primary"
		}
		monitor = fmt.Sprintf("%s %s+%d+%d", name, m.Size, m.X, m.Y)
	}

	rows := [][2]string{
		{"title", d.Title},
		{"size", d.Size.String()},
		{"min size", minSize},
		{"resizable", yesNo(d.Resizable)},
		{"decorated", yesNo(d.Decorated)},
		{"always on top", yesNo(d.AlwaysOnTop)},
		{"override redirect", yesNo(d.OverrideRedirect)},
		{"fullscreen", string(d.Fullscreen.Mode)},
		{"monitor", monitor},
		{"vsync", yesNo(d.VSync)},
		{"samples", fmt.Sprintf("%d", d.Multisampling)},
		{"srgb", yesNo(d.SRGB)},
		{"exit on esc", yesNo(d.ExitOnEsc)},
	}

	var b strings.Builder
	b.WriteString(headingStyle.Render("window descriptor"))
	for _, row := range rows {
		b.WriteString("\n")
		b.WriteString(keyStyle.Render(row[0]))
		b.WriteString(row[1])
	}
	return boxStyle.Render(b.String()) + "\n"
}
