// Package tui is an interactive editor for the window section of the
// fullframe config with a live descriptor preview.
package tui

import (
	"errors"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/1broseidon/fullframe/internal/config"
	"github.com/1broseidon/fullframe/internal/window"
)

// Options configures the editor.
type Options struct {
	// Path is the file edits are saved to. Empty saves to the default location.
	Path   string
	Result *config.LoadResult
	// Monitor is the primary monitor fullscreen previews are sized against.
	// Nil previews fullscreen as if no monitor were available.
	Monitor *window.MonitorInfo
}

// Run opens the editor and blocks until the user quits.
func Run(opts Options) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return fmt.Errorf("tui requires an interactive terminal (stdin/stdout must be TTYs)")
	}
	if opts.Result == nil || opts.Result.Config == nil {
		return errors.New("tui: no config loaded")
	}
	_, err := tea.NewProgram(newModel(opts), tea.WithAltScreen()).Run()
	return err
}
