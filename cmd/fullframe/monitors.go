package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/term"

	"github.com/1broseidon/fullframe/internal/config"
	"github.com/1broseidon/fullframe/internal/platform"
)

type monitorRow struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
	Width   int    `json:"width"`
	Height  int    `json:"height"`
	Primary bool   `json:"primary"`
}

func (r monitorRow) geometry() string {
	return fmt.Sprintf("%dx%d+%d+%d", r.Width, r.Height, r.X, r.Y)
}

func runMonitors(args []string) int {
	fs := flag.NewFlagSet("monitors", flag.ContinueOnError)
	fs.SetOutput(os.Stderr)
	configPath := fs.String("config", "", "Config file path (default: ~/.config/fullframe/config.yaml)")
	display := fs.String("display", "", "X11 display (default: config, then $DISPLAY)")
	backendName := fs.String("backend", "", "Window system: x11 or ebiten (default: config)")
	jsonOut := fs.Bool("json", false, "Output JSON")
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: fullframe monitors [--json] [--backend x11|ebiten]")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "List active monitors and mark the primary one.")
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}
	if fs.NArg() != 0 {
		fmt.Fprintln(os.Stderr, "monitors takes no arguments")
		fs.Usage()
		return 2
	}

	res, err := loadConfigResult(*configPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	cfg := res.Config
	var raw config.RawConfig
	if *display != "" {
		raw.Display = display
	}
	if *backendName != "" {
		b := config.Backend(*backendName)
		raw.Backend = &b
	}
	if err := cfg.ApplyOverrides(raw); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	if err := cfg.ApplyDisplayEnv(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	backend, err := openBackend(cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer backend.Close()

	displays, err := backend.Displays()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	rows := monitorRows(displays)

	switch {
	case *jsonOut:
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		err = enc.Encode(rows)
	case term.IsTerminal(int(os.Stdout.Fd())):
		fmt.Fprintln(os.Stdout, renderMonitorTable(rows))
	default:
		err = writeMonitorLines(os.Stdout, rows)
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

func monitorRows(displays []platform.Display) []monitorRow {
	rows := make([]monitorRow, 0, len(displays))
	for _, d := range displays {
		rows = append(rows, monitorRow{
			ID:      d.ID,
			Name:    d.Name,
			X:       d.Bounds.X,
			Y:       d.Bounds.Y,
			Width:   d.Bounds.Width,
			Height:  d.Bounds.Height,
			Primary: d.Primary,
		})
	}
	return rows
}

// renderMonitorTable draws the monitors for a terminal, highlighting the
// primary row.
func renderMonitorTable(rows []monitorRow) string {
	headerStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("62")).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Padding(0, 1)
	primaryStyle := cellStyle.Foreground(lipgloss.Color("42")).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(lipgloss.Color("241"))).
		Headers("ID", "NAME", "GEOMETRY", "PRIMARY").
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return headerStyle
			case row >= 0 && row < len(rows) && rows[row].Primary:
				return primaryStyle
			default:
				return cellStyle
			}
		})
	for _, r := range rows {
		primary := ""
		if r.Primary {
			primary = "yes"
		}
		t.Row(strconv.Itoa(r.ID), r.Name, r.geometry(), primary)
	}
	return t.String()
}

// writeMonitorLines prints one tab-separated line per monitor for scripts.
// The primary monitor is marked with a trailing "*".
func writeMonitorLines(w io.Writer, rows []monitorRow) error {
	for _, r := range rows {
		primary := ""
		if r.Primary {
			primary = "*"
		}
		if _, err := fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", r.ID, r.Name, r.geometry(), primary); err != nil {
			return err
		}
	}
	return nil
}
