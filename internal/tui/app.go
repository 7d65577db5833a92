package tui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/1broseidon/fullframe/internal/config"
	"github.com/1broseidon/fullframe/internal/window"
)

type keyMap struct {
	Edit       key.Binding
	Fullscreen key.Binding
	Save       key.Binding
	Quit       key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Edit:       key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Fullscreen: key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "toggle fullscreen")),
		Save:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Edit, k.Fullscreen, k.Save, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// model is the root bubbletea model. cfg is the working copy; saved is
// what the file on disk currently holds.
type model struct {
	path    string
	files   []string
	cfg     config.Config
	saved   config.Config
	monitor *window.MonitorInfo

	editor *windowEditor
	save   saveOverlay
	status string

	keys keyMap
	help help.Model

	width  int
	height int
}

func newModel(opts Options) model {
	cfg := *opts.Result.Config
	return model{
		path:    opts.Path,
		files:   opts.Result.Files,
		cfg:     cfg,
		saved:   cfg,
		monitor: opts.Monitor,
		keys:    newKeyMap(),
		help:    help.New(),
	}
}

// descriptor builds the working config the same way open would, against
// the monitor captured at startup.
func (m model) descriptor() window.Descriptor {
	monitor := m.monitor
	return window.Build(m.cfg.WindowSettings(), window.MonitorQueryFunc(func() *window.MonitorInfo {
		if monitor == nil {
			return nil
		}
		info := *monitor
		return &info
	}))
}

func (m model) dirty() bool {
	return m.cfg != m.saved
}

// Init implements tea.Model.
func (m model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = ws.Width
		m.height = ws.Height
		m.help.Width = ws.Width
	}
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch {
	case m.save.active():
		if km, ok := msg.(tea.KeyMsg); ok {
			m.save = m.save.update(km, &m.cfg, m.path)
			if m.save.succeeded() {
				m.saved = m.cfg
			}
		}
		return m, nil
	case m.editor != nil:
		return m.updateEditor(msg)
	}

	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(km, m.keys.Edit):
		m.status = ""
		m.editor = newWindowEditor(m.cfg, m.width)
		return m, m.editor.form.Init()
	case key.Matches(km, m.keys.Fullscreen):
		m.cfg.Window.Fullscreen = !m.cfg.Window.Fullscreen
	case key.Matches(km, m.keys.Save):
		m.status = ""
		m.save.show(configChanges(&m.saved, &m.cfg), len(m.files) > 1)
	}
	return m, nil
}

func (m model) updateEditor(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok && km.String() == "esc" {
		m.editor = nil
		return m, nil
	}

	cmd := m.editor.update(msg)
	switch m.editor.form.State {
	case huh.StateCompleted:
		if err := m.editor.apply(&m.cfg); err != nil {
			m.status = err.Error()
		}
		m.editor = nil
	case huh.StateAborted:
		m.editor = nil
	}
	return m, cmd
}

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("15")).Background(lipgloss.Color("62")).Padding(0, 1)
	dimStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(16).Align(lipgloss.Right).PaddingRight(2)
	valueStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true)
)

// View implements tea.Model.
func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := m.viewHeader()
	footer := m.help.View(m.keys)
	if m.status != "" {
		footer = errorStyle.Render(m.status) + "\n" + footer
	}

	bodyH := m.height - lipgloss.Height(header) - lipgloss.Height(footer)
	if bodyH < 3 {
		bodyH = 3
	}

	var body string
	switch {
	case m.save.active():
		body = m.save.view(m.width, bodyH)
	case m.editor != nil:
		body = m.editor.view(m.width, bodyH)
	default:
		body = m.viewSettings(m.width, bodyH)
	}

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m model) viewHeader() string {
	path := m.path
	if path == "" {
		path = "default config"
	}
	line := titleStyle.Render("fullframe") + " " + dimStyle.Render(path)
	if m.dirty() {
		line += " " + errorStyle.Render("(modified)")
	}
	return lipgloss.NewStyle().Width(m.width).MarginBottom(1).Render(line)
}

func (m model) viewSettings(width, height int) string {
	w := m.cfg.Window
	row := func(label, value string) string {
		return labelStyle.Render(label) + valueStyle.Render(value)
	}
	samples := "off"
	if w.Samples > 0 {
		samples = strconv.Itoa(int(w.Samples)) + "x"
	}

	settings := strings.Join([]string{
		row("Title", w.Title),
		row("Size", window.Size{Width: w.Width, Height: w.Height}.String()),
		row("Fullscreen", yesNo(w.Fullscreen)),
		row("Backend", string(m.cfg.Backend)),
		"",
		row("VSync", yesNo(w.VSync)),
		row("Multisampling", samples),
		row("Exit on Esc", yesNo(w.ExitOnEsc)),
		row("sRGB", yesNo(w.SRGB)),
		row("Resizable", yesNo(w.Resizable)),
		row("Decorated", yesNo(w.Decorated)),
	}, "\n")

	leftW := lipgloss.Width(settings) + 4
	previewW := width - leftW
	if previewW > 48 {
		previewW = 48
	}
	d := m.descriptor()
	summary := describeLines(d)
	previewH := height - len(summary) - 1
	if previewH > 14 {
		previewH = 14
	}

	preview := strings.Join(renderPreview(d, m.monitor, previewW, previewH), "\n")
	right := preview + "\n" + dimStyle.Render(strings.Join(summary, "\n"))

	left := lipgloss.NewStyle().Width(leftW).Render(settings)
	return lipgloss.NewStyle().Height(height).Render(lipgloss.JoinHorizontal(lipgloss.Top, left, right))
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}
