package tui

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/fullframe/internal/config"
)

// windowEditor is the huh form for the window section. Numeric fields are
// bound as strings and parsed on apply.
type windowEditor struct {
	form *huh.Form

	title      string
	width      string
	height     string
	samples    string
	backend    config.Backend
	fullscreen bool
	vsync      bool
	exitOnEsc  bool
	srgb       bool
	resizable  bool
	decorated  bool
}

func newWindowEditor(cfg config.Config, width int) *windowEditor {
	w := cfg.Window
	e := &windowEditor{
		title:      w.Title,
		width:      strconv.FormatUint(uint64(w.Width), 10),
		height:     strconv.FormatUint(uint64(w.Height), 10),
		samples:    strconv.Itoa(int(w.Samples)),
		backend:    cfg.Backend,
		fullscreen: w.Fullscreen,
		vsync:      w.VSync,
		exitOnEsc:  w.ExitOnEsc,
		srgb:       w.SRGB,
		resizable:  w.Resizable,
		decorated:  w.Decorated,
	}

	formW := width - 4
	if formW < 40 {
		formW = 40
	}

	e.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("title").
				Title("Title").
				Value(&e.title),
			huh.NewInput().
				Key("width").
				Title("Width").
				Description("Windowed width in pixels").
				Validate(validDimension).
				Value(&e.width),
			huh.NewInput().
				Key("height").
				Title("Height").
				Description("Windowed height in pixels").
				Validate(validDimension).
				Value(&e.height),
			huh.NewConfirm().
				Key("fullscreen").
				Title("Borderless fullscreen").
				Description("Cover the primary monitor, undecorated and on top").
				Value(&e.fullscreen),
			huh.NewSelect[config.Backend]().
				Key("backend").
				Title("Backend").
				Options(huh.NewOptions(config.BackendX11, config.BackendEbiten)...).
				Value(&e.backend),
		),
		huh.NewGroup(
			huh.NewSelect[string]().
				Key("samples").
				Title("Multisampling").
				Options(huh.NewOptions("0", "1", "2", "4", "8", "16", "32")...).
				Value(&e.samples),
			huh.NewConfirm().Key("vsync").Title("VSync").Value(&e.vsync),
			huh.NewConfirm().Key("exit_on_esc").Title("Exit on Escape").Value(&e.exitOnEsc),
			huh.NewConfirm().Key("srgb").Title("sRGB framebuffer").Value(&e.srgb),
			huh.NewConfirm().Key("resizable").Title("Resizable").Value(&e.resizable),
			huh.NewConfirm().Key("decorated").Title("Decorated").Value(&e.decorated),
		),
	).WithWidth(formW).WithShowHelp(true).WithShowErrors(true)

	return e
}

func validDimension(s string) error {
	v, err := strconv.ParseUint(strings.TrimSpace(s), 10, 32)
	if err != nil || v == 0 || v > 0xFFFF {
		return fmt.Errorf("enter a number between 1 and 65535")
	}
	return nil
}

func (e *windowEditor) update(msg tea.Msg) tea.Cmd {
	form, cmd := e.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		e.form = f
	}
	return cmd
}

// apply writes the form values into cfg. cfg is left unchanged when any
// value is rejected.
func (e *windowEditor) apply(cfg *config.Config) error {
	width, err := strconv.ParseUint(strings.TrimSpace(e.width), 10, 32)
	if err != nil {
		return fmt.Errorf("width: %w", err)
	}
	height, err := strconv.ParseUint(strings.TrimSpace(e.height), 10, 32)
	if err != nil {
		return fmt.Errorf("height: %w", err)
	}
	samples, err := strconv.ParseUint(e.samples, 10, 16)
	if err != nil {
		return fmt.Errorf("samples: %w", err)
	}

	w := uint32(width)
	h := uint32(height)
	s := uint16(samples)
	raw := config.RawConfig{
		Backend: &e.backend,
		Window: &config.RawWindowConfig{
			Title:      &e.title,
			Width:      &w,
			Height:     &h,
			Fullscreen: &e.fullscreen,
			VSync:      &e.vsync,
			Samples:    &s,
			ExitOnEsc:  &e.exitOnEsc,
			SRGB:       &e.srgb,
			Resizable:  &e.resizable,
			Decorated:  &e.decorated,
		},
	}

	next := *cfg
	if err := next.ApplyOverrides(raw); err != nil {
		return err
	}
	*cfg = next
	return nil
}

func (e *windowEditor) view(width, height int) string {
	header := lipgloss.NewStyle().
		Foreground(lipgloss.Color("62")).
		Bold(true).
		Render("Editing window settings") +
		dimStyle.Render("  (esc to cancel)")

	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(0, 2).
		Render(header + "\n\n" + e.form.View())
}
