// Package tui provides the terminal Gantt editor.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/javiermolinar/gantt/internal/tui/theme"
)

// Styles holds all lipgloss styles for the TUI, derived from a theme.
type Styles struct {
	palette *theme.Palette

	// Title and header
	TitleStyle        lipgloss.Style
	HeaderStyle       lipgloss.Style
	RulerStyle        lipgloss.Style
	RulerTodayStyle   lipgloss.Style
	RulerWeekendStyle lipgloss.Style

	// Label column
	LabelStyle        lipgloss.Style
	LabelCursorStyle  lipgloss.Style
	LabelSummaryStyle lipgloss.Style
	LabelSelectedMark lipgloss.Style
	SeparatorStyle    lipgloss.Style

	// Timeline cells
	GridStyle        lipgloss.Style
	GridWeekendStyle lipgloss.Style
	GridCursorStyle  lipgloss.Style
	TodayStyle       lipgloss.Style

	// Bars
	TaskBarStyle         lipgloss.Style
	TaskBarSelectedStyle lipgloss.Style
	SummaryBarStyle      lipgloss.Style
	MilestoneStyle       lipgloss.Style
	PreviewBarStyle      lipgloss.Style
	GhostBarStyle        lipgloss.Style

	// Footer
	StatusStyle      lipgloss.Style
	StatusErrorStyle lipgloss.Style
	FooterStyle      lipgloss.Style
	ModeBadgeStyle   lipgloss.Style

	// Overlay
	OverlayTitleStyle lipgloss.Style
	OverlayTextStyle  lipgloss.Style
	OverlayMutedStyle lipgloss.Style
}

// NewStyles creates a Styles instance from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)
	s := &Styles{palette: p}

	s.TitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnAccent).
		Background(p.Accent).
		Padding(0, 1)
	s.HeaderStyle = lipgloss.NewStyle().
		Foreground(p.Fg).
		Background(p.BgHighlight)
	s.RulerStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)
	s.RulerTodayStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Accent)
	s.RulerWeekendStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted).
		Background(p.Weekend)

	s.LabelStyle = lipgloss.NewStyle().
		Foreground(p.Fg)
	s.LabelCursorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Fg).
		Background(p.BgSelection)
	s.LabelSummaryStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Summary)
	s.LabelSelectedMark = lipgloss.NewStyle().
		Foreground(p.Accent)
	s.SeparatorStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)

	s.GridStyle = lipgloss.NewStyle()
	s.GridWeekendStyle = lipgloss.NewStyle().
		Background(p.Weekend)
	s.GridCursorStyle = lipgloss.NewStyle().
		Background(p.BgHighlight)
	s.TodayStyle = lipgloss.NewStyle().
		Foreground(p.Accent)

	s.TaskBarStyle = lipgloss.NewStyle().
		Foreground(p.Task)
	s.TaskBarSelectedStyle = lipgloss.NewStyle().
		Foreground(p.TaskBgSelected).
		Background(p.TaskBg)
	s.SummaryBarStyle = lipgloss.NewStyle().
		Foreground(p.Summary)
	s.MilestoneStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Milestone)
	s.PreviewBarStyle = lipgloss.NewStyle().
		Foreground(p.Preview).
		Background(p.PreviewBg)
	s.GhostBarStyle = lipgloss.NewStyle().
		Foreground(p.TaskBgGhost)

	s.StatusStyle = lipgloss.NewStyle().
		Foreground(p.Fg)
	s.StatusErrorStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Warning)
	s.FooterStyle = lipgloss.NewStyle().
		Foreground(p.FgMuted)
	s.ModeBadgeStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.TextOnWarning).
		Background(p.Warning).
		Padding(0, 1)

	s.OverlayTitleStyle = lipgloss.NewStyle().
		Bold(true).
		Foreground(p.Modal.Border)
	s.OverlayTextStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Text)
	s.OverlayMutedStyle = lipgloss.NewStyle().
		Foreground(p.Modal.Muted)

	return s
}

// OverlayBackground returns the overlay fill color.
func (s *Styles) OverlayBackground() lipgloss.Color {
	return s.palette.Modal.Bg
}
