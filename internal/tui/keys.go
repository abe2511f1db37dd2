package tui

import (
	"fmt"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/summary"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/tui/commands"
)

// keyMap holds every key binding of the chart.
type keyMap struct {
	Up          key.Binding
	Down        key.Binding
	Earlier     key.Binding
	Later       key.Binding
	Grow        key.Binding
	Shrink      key.Binding
	PanLeft     key.Binding
	PanRight    key.Binding
	Today       key.Binding
	Select      key.Binding
	WorkingDays key.Binding
	Summary     key.Binding
	Copy        key.Binding
	Reload      key.Binding
	Cancel      key.Binding
	Help        key.Binding
	Quit        key.Binding
}

func defaultKeyMap() keyMap {
	return keyMap{
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("↓/j", "down"),
		),
		Earlier: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("←/h", "move -1d"),
		),
		Later: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("→/l", "move +1d"),
		),
		Grow: key.NewBinding(
			key.WithKeys(">", "."),
			key.WithHelp(">", "end +1d"),
		),
		Shrink: key.NewBinding(
			key.WithKeys("<", ","),
			key.WithHelp("<", "end -1d"),
		),
		PanLeft: key.NewBinding(
			key.WithKeys("H", "shift+left"),
			key.WithHelp("H", "scroll back"),
		),
		PanRight: key.NewBinding(
			key.WithKeys("L", "shift+right"),
			key.WithHelp("L", "scroll ahead"),
		),
		Today: key.NewBinding(
			key.WithKeys("t"),
			key.WithHelp("t", "today"),
		),
		Select: key.NewBinding(
			key.WithKeys(" "),
			key.WithHelp("space", "select"),
		),
		WorkingDays: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "working days"),
		),
		Summary: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "summary"),
		),
		Copy: key.NewBinding(
			key.WithKeys("y"),
			key.WithHelp("y", "copy summary"),
		),
		Reload: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "reload"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "cancel"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Earlier, k.Later, k.Grow, k.Select, k.Summary, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.PanLeft, k.PanRight, k.Today},
		{k.Earlier, k.Later, k.Grow, k.Shrink, k.Select},
		{k.WorkingDays, k.Summary, k.Copy, k.Reload, k.Cancel, k.Quit},
	}
}

// handleKeyMsg handles keyboard input.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg)

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.overlayKind != overlayNone {
		return m.handleOverlayKeys(msg)
	}

	// Keys are ignored mid-gesture, except to abort it.
	if m.drag.Active() {
		if key.Matches(msg, m.keys.Cancel) {
			m.cancelGesture("esc")
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)

	case key.Matches(msg, m.keys.PanLeft):
		m.pan(-panDays)
	case key.Matches(msg, m.keys.PanRight):
		m.pan(panDays)
	case key.Matches(msg, m.keys.Today):
		m.scrollToDate(m.now())

	case key.Matches(msg, m.keys.Select):
		m.toggleSelection()

	case key.Matches(msg, m.keys.Earlier):
		return m.nudge(-1)
	case key.Matches(msg, m.keys.Later):
		return m.nudge(1)
	case key.Matches(msg, m.keys.Grow):
		return m.stretch(1)
	case key.Matches(msg, m.keys.Shrink):
		return m.stretch(-1)

	case key.Matches(msg, m.keys.WorkingDays):
		m.wd.Enabled = !m.wd.Enabled
		m.ctrl.WorkingDays = m.wd
		m.summary = summary.Summarize(m.tasks, m.wd)
		if m.wd.Enabled {
			return m, m.setStatus("Working-day spans preserved on move")
		}
		return m, m.setStatus("Calendar-day moves")

	case key.Matches(msg, m.keys.Summary):
		m.openOverlay(overlaySummary)
	case key.Matches(msg, m.keys.Help):
		m.openOverlay(overlayHelp)

	case key.Matches(msg, m.keys.Copy):
		return m.copySummary()

	case key.Matches(msg, m.keys.Reload):
		m.loading = true
		return m, commands.LoadTasks(m.repo)

	case key.Matches(msg, m.keys.Cancel):
		if len(m.selected) > 0 {
			m.selected = map[string]bool{}
			return m, m.setStatus("Selection cleared")
		}
	}

	return m, nil
}

// handleOverlayKeys handles keys while the summary or help overlay is open.
func (m Model) handleOverlayKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Copy):
		return m.copySummary()
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Quit),
		key.Matches(msg, m.keys.Summary), key.Matches(msg, m.keys.Help):
		m.closeOverlay()
	}
	return m, nil
}

// nudge moves the selection, or the task under the cursor, by delta days.
func (m Model) nudge(delta int) (tea.Model, tea.Cmd) {
	roots := m.selectedIDs()
	if len(roots) == 0 {
		t := m.cursorTask()
		if t == nil {
			return m, nil
		}
		roots = []string{t.ID}
	}
	ids := m.expandMoveSet(roots)

	updates := m.ctrl.Nudge(ids, m.byID, delta)
	LogCommit("nudge", updates)
	if len(updates) == 0 {
		return m, m.setError("Move rejected")
	}
	return m, commands.ApplyUpdates(m.repo, updates)
}

// stretch resizes the end of the task under the cursor by delta days.
func (m Model) stretch(delta int) (tea.Model, tea.Cmd) {
	t := m.cursorTask()
	if t == nil {
		return m, nil
	}
	if t.IsSummary() || t.IsMilestone() {
		return m, m.setError(fmt.Sprintf("Cannot resize a %s", t.Type))
	}

	u, ok := m.ctrl.Stretch(t, delta, false)
	if !ok {
		return m, m.setError("Resize rejected")
	}
	LogCommit("stretch", []task.Update{u})
	return m, commands.ApplyUpdates(m.repo, []task.Update{u})
}

// copySummary copies the summary of the selection, or of the whole chart.
func (m Model) copySummary() (tea.Model, tea.Cmd) {
	s := m.summary
	if ids := m.selectedIDs(); len(ids) > 0 {
		picked := make([]*task.Task, 0, len(ids))
		for _, id := range ids {
			if t, ok := m.byID.Get(id); ok {
				picked = append(picked, t)
			}
		}
		s = summary.Summarize(picked, m.wd)
	}
	if s == nil || s.Empty() {
		return m, m.setError("No tasks to copy")
	}
	if err := clipboard.WriteAll(s.Text()); err != nil {
		LogError("clipboard", err)
		return m, m.setError(fmt.Sprintf("Copy failed: %v", err))
	}
	return m, m.setStatus(fmt.Sprintf("Copied %d tasks", len(s.Rows)))
}
