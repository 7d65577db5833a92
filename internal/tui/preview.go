package tui

import (
	"fmt"
	"strings"

	"github.com/1broseidon/fullframe/internal/window"
)

type boxRunes struct {
	h, v, tl, tr, bl, br rune
}

var (
	monitorBox = boxRunes{'═', '║', '╔', '╗', '╚', '╝'}
	windowBox  = boxRunes{'─', '│', '┌', '┐', '└', '┘'}
)

const windowFill = '▒'

// renderPreview draws d to scale inside the monitor frame. Without a
// monitor the frame stands for the window's own size.
func renderPreview(d window.Descriptor, monitor *window.MonitorInfo, width, height int) []string {
	if width < 6 || height < 4 {
		return blankLines(width, height)
	}
	frame := d.Size
	if monitor != nil && !monitor.Size.IsZero() {
		frame = monitor.Size
	}
	if frame.IsZero() || d.Size.IsZero() {
		return blankLines(width, height)
	}

	canvas := make([][]rune, height)
	for y := range canvas {
		canvas[y] = []rune(strings.Repeat(" ", width))
	}
	drawBox(canvas, 0, 0, width-1, height-1, monitorBox)

	innerW, innerH := width-2, height-2
	ww := scaleCells(d.Size.Width, frame.Width, innerW)
	wh := scaleCells(d.Size.Height, frame.Height, innerH)
	for y := 1; y <= wh; y++ {
		for x := 1; x <= ww; x++ {
			canvas[y][x] = windowFill
		}
	}
	if ww >= 2 && wh >= 2 {
		drawBox(canvas, 1, 1, ww, wh, windowBox)
	}

	label := []rune(d.Size.String())
	if len(label) <= ww-2 && wh >= 3 {
		y := 1 + wh/2
		x := 1 + (ww-len(label))/2
		copy(canvas[y][x:], label)
	}

	lines := make([]string, height)
	for y, row := range canvas {
		lines[y] = string(row)
	}
	return lines
}

// scaleCells maps v out of total onto cells, keeping at least one cell.
func scaleCells(v, total uint32, cells int) int {
	n := int(uint64(v) * uint64(cells) / uint64(total))
	if n < 1 {
		n = 1
	}
	if n > cells {
		n = cells
	}
	return n
}

func drawBox(canvas [][]rune, x1, y1, x2, y2 int, b boxRunes) {
	for x := x1; x <= x2; x++ {
		canvas[y1][x] = b.h
		canvas[y2][x] = b.h
	}
	for y := y1; y <= y2; y++ {
		canvas[y][x1] = b.v
		canvas[y][x2] = b.v
	}
	canvas[y1][x1] = b.tl
	canvas[y1][x2] = b.tr
	canvas[y2][x1] = b.bl
	canvas[y2][x2] = b.br
}

func blankLines(width, height int) []string {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	lines := make([]string, height)
	for i := range lines {
		lines[i] = strings.Repeat(" ", width)
	}
	return lines
}

// describeLines summarizes what open would create.
func describeLines(d window.Descriptor) []string {
	mode := "windowed"
	if d.IsFullscreen() {
		switch m := d.Fullscreen.Monitor; {
		case m == nil:
			mode = "borderless fullscreen (no monitor)"
		case m.Name != "":
			mode = "borderless fullscreen on " + m.Name
		default:
			mode = "borderless fullscreen on primary"
		}
	}

	lines := []string{
		"mode  " + mode,
		"size  " + d.Size.String(),
	}
	if d.MinSize != nil {
		lines = append(lines, "min   "+d.MinSize.String())
	}
	lines = append(lines, fmt.Sprintf("decorated %s  on top %s  override-redirect %s",
		yesNo(d.Decorated), yesNo(d.AlwaysOnTop), yesNo(d.OverrideRedirect)))
	return lines
}
