package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
)

const (
	overlayMinWidth = 24
	overlayPadX     = 2
	overlayPadY     = 1
)

// OverlayModel draws an opaque box centered over the chart.
type OverlayModel struct {
	active  bool
	bgColor lipgloss.Color
}

// NewOverlayModel initializes an overlay model.
func NewOverlayModel() OverlayModel {
	return OverlayModel{}
}

// Open shows the overlay.
func (o *OverlayModel) Open() { o.active = true }

// Close hides the overlay.
func (o *OverlayModel) Close() { o.active = false }

// Active reports whether the overlay is visible.
func (o OverlayModel) Active() bool {
	return o.active
}

// SetBackground updates the overlay background color.
func (o *OverlayModel) SetBackground(color lipgloss.Color) {
	o.bgColor = color
}

// Render draws content in a box over base, which is width x height cells.
// The box grows to fit the content and is clipped to the screen.
func (o OverlayModel) Render(base string, width, height int, content string) string {
	if !o.active || width <= 0 || height <= 0 {
		return base
	}

	body := contentLines(content)
	contentW := 0
	for _, line := range body {
		contentW = max(contentW, lipgloss.Width(line))
	}

	boxW := min(max(contentW+2*overlayPadX, overlayMinWidth), width)
	boxH := min(len(body)+2*overlayPadY, height)
	top := (height - boxH) / 2
	left := (width - boxW) / 2

	box := o.boxLines(body, boxW, boxH)
	lines := fitLines(base, width, height)
	for i, line := range box {
		row := top + i
		lines[row] = ansi.Cut(lines[row], 0, left) + line + ansi.Cut(lines[row], left+boxW, width)
	}
	return strings.Join(lines, "\n")
}

// boxLines renders body on the overlay background, padded to w x h.
func (o OverlayModel) boxLines(body []string, w, h int) []string {
	bg := o.bgSeq()
	innerW := max(w-2*overlayPadX, 0)

	lines := make([]string, h)
	for i := range lines {
		idx := i - overlayPadY
		if idx < 0 || idx >= len(body) {
			lines[i] = bg + strings.Repeat(" ", w) + ansi.ResetStyle
			continue
		}

		line := ansi.Truncate(body[idx], innerW, "")
		if lw := lipgloss.Width(line); lw < innerW {
			line += strings.Repeat(" ", innerW-lw)
		}
		// Styled content resets the background; restore it after each reset.
		if bg != "" {
			line = strings.ReplaceAll(line, ansi.ResetStyle, ansi.ResetStyle+bg)
			line = strings.ReplaceAll(line, "\x1b[0m", "\x1b[0m"+bg)
		}
		pad := strings.Repeat(" ", overlayPadX)
		lines[i] = bg + pad + line + bg + strings.Repeat(" ", max(w-overlayPadX-innerW, 0)) + ansi.ResetStyle
	}
	return lines
}

func (o OverlayModel) bgSeq() string {
	if o.bgColor == "" {
		return ""
	}
	c := lipgloss.ColorProfile().Color(string(o.bgColor))
	if c == nil || c.Sequence(true) == "" {
		return ""
	}
	return termenv.CSI + c.Sequence(true) + "m"
}

func contentLines(content string) []string {
	if content == "" {
		return nil
	}
	return strings.Split(strings.TrimRight(content, "\n"), "\n")
}

// fitLines splits base into exactly height lines of exactly width cells.
func fitLines(base string, width, height int) []string {
	lines := strings.Split(base, "\n")
	for len(lines) < height {
		lines = append(lines, "")
	}
	lines = lines[:height]

	for i, line := range lines {
		w := lipgloss.Width(line)
		switch {
		case w > width:
			lines[i] = ansi.Cut(line, 0, width)
		case w < width:
			lines[i] = line + strings.Repeat(" ", width-w)
		}
	}
	return lines
}
