package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/1broseidon/fullframe/internal/config"
)

var errNoChanges = errors.New("no changes to save")

type savePhase int

const (
	saveHidden  savePhase = iota
	saveConfirm           // listing changes, awaiting enter
	saveDone              // showing the outcome
)

// change is one config key whose value differs from the saved file.
type change struct {
	Key  string
	From string
	To   string
}

type saveOverlay struct {
	phase   savePhase
	changes []change
	// flattens is set when the loaded config came from more than one
	// file; saving writes the merged result to a single file.
	flattens bool
	err      error
}

func (s saveOverlay) active() bool {
	return s.phase != saveHidden
}

func (s saveOverlay) succeeded() bool {
	return s.phase == saveDone && s.err == nil
}

func (s *saveOverlay) show(changes []change, flattens bool) {
	s.err = nil
	s.flattens = flattens
	s.changes = changes
	if len(changes) == 0 {
		s.phase = saveDone
		s.err = errNoChanges
		return
	}
	s.phase = saveConfirm
}

func (s saveOverlay) update(km tea.KeyMsg, cfg *config.Config, path string) saveOverlay {
	switch s.phase {
	case saveConfirm:
		switch km.String() {
		case "enter", "y":
			s.err = writeConfig(cfg, path)
			s.phase = saveDone
		case "esc", "n":
			s.phase = saveHidden
		}
	case saveDone:
		s.phase = saveHidden
	}
	return s
}

func writeConfig(cfg *config.Config, path string) error {
	if err := cfg.Validate(); err != nil {
		return err
	}
	if path == "" {
		return cfg.Save()
	}
	return cfg.SaveTo(path)
}

func (s saveOverlay) view(width, height int) string {
	boxW := width - 8
	if boxW > 72 {
		boxW = 72
	}
	if boxW < 30 {
		boxW = 30
	}

	var content string
	switch s.phase {
	case saveConfirm:
		keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("250")).Width(22)
		fromStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
		toStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)

		lines := []string{lipgloss.NewStyle().Bold(true).Render("Save changes?"), ""}
		for _, c := range s.changes {
			lines = append(lines, keyStyle.Render(c.Key)+fromStyle.Render(c.From)+" → "+toStyle.Render(c.To))
		}
		if s.flattens {
			lines = append(lines, "", errorStyle.Render("Included files will be merged into the saved file."))
		}
		lines = append(lines, "", dimStyle.Render("enter: save  esc: cancel"))
		content = strings.Join(lines, "\n")
	case saveDone:
		if s.err != nil {
			content = errorStyle.Render("Error: " + s.err.Error())
		} else {
			content = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true).Render("Config saved")
		}
		content += "\n\n" + dimStyle.Render("press any key to dismiss")
	}

	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("62")).
		Padding(1, 2).
		Width(boxW).
		Render(content)

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box)
}

// configChanges lists the keys whose YAML value differs between before and
// after, in file order.
func configChanges(before, after *config.Config) []change {
	beforeKeys, beforeVals := flatten(before)
	afterKeys, afterVals := flatten(after)

	var out []change
	seen := map[string]bool{}
	for _, k := range append(beforeKeys, afterKeys...) {
		if seen[k] {
			continue
		}
		seen[k] = true
		from, ok := beforeVals[k]
		if !ok {
			from = "(unset)"
		}
		to, ok := afterVals[k]
		if !ok {
			to = "(unset)"
		}
		if from != to {
			out = append(out, change{Key: k, From: from, To: to})
		}
	}
	return out
}

func flatten(cfg *config.Config) ([]string, map[string]string) {
	var root yaml.Node
	if err := root.Encode(cfg); err != nil {
		return nil, nil
	}

	var keys []string
	vals := map[string]string{}
	var walk func(n *yaml.Node, prefix string)
	walk = func(n *yaml.Node, prefix string) {
		for i := 0; i+1 < len(n.Content); i += 2 {
			k, v := n.Content[i].Value, n.Content[i+1]
			if prefix != "" {
				k = prefix + "." + k
			}
			if v.Kind == yaml.MappingNode {
				walk(v, k)
				continue
			}
			keys = append(keys, k)
			vals[k] = v.Value
		}
	}
	walk(&root, "")
	return keys, vals
}
