package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/interaction"
	"github.com/javiermolinar/gantt/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.BlurMsg:
		m.cancelGesture("focus lost")
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.ensureCursorVisible()
		return m, nil

	case commands.TasksLoadedMsg:
		m.loading = false
		m.setTasks(msg.Tasks)
		return m, nil

	case commands.UpdatesAppliedMsg:
		noun := "changes"
		if msg.Count == 1 {
			noun = "change"
		}
		status := m.setStatus(fmt.Sprintf("Saved %d %s", msg.Count, noun))
		return m, tea.Batch(commands.LoadTasks(m.repo), status)

	case commands.ErrMsg:
		m.loading = false
		LogError("command", msg.Err)
		return m, m.setError(fmt.Sprintf("Error: %v", msg.Err))

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg)

	case commands.ClearStatusMsg:
		if !m.now().Before(m.statusTime) {
			m.statusMsg = ""
			m.statusError = false
		}
		return m, nil
	}

	return m, nil
}

// handleMouseMsg turns terminal mouse events into pointer events.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	px := m.pointerX(msg.X)
	row, _ := m.rowAt(msg.Y)
	LogMouse(msg, px, row)

	if m.overlayKind != overlayNone {
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			m.scrollWheel(msg, -1)
		case tea.MouseButtonWheelDown:
			m.scrollWheel(msg, 1)
		case tea.MouseButtonLeft:
			return m.pointerDown(msg)
		}

	case tea.MouseActionMotion:
		if m.drag.Active() {
			m.drag = m.ctrl.PointerMove(m.drag, px)
		}

	case tea.MouseActionRelease:
		if m.drag.Active() {
			return m.pointerUp()
		}
	}

	return m, nil
}

func (m *Model) scrollWheel(msg tea.MouseMsg, dir int) {
	if m.drag.Active() {
		return
	}
	if msg.Shift {
		m.pan(dir)
		return
	}
	m.moveCursor(dir)
}

// pointerDown moves the cursor to the clicked row and starts a gesture
// when the click lands on the row's bar. Ctrl or shift toggle selection.
func (m Model) pointerDown(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.drag.Active() {
		return m, nil
	}
	idx, ok := m.rowAt(msg.Y)
	if !ok {
		return m, nil
	}
	m.cursor = idx

	if msg.Ctrl || msg.Shift {
		m.toggleSelection()
		return m, nil
	}
	if !m.inChart(msg.X) {
		return m, nil
	}

	t := m.tasks[idx]
	px := m.pointerX(msg.X)
	bar := m.hitGeometry(t)
	if !bar.Contains(px) {
		return m, nil
	}

	m.drag = m.ctrl.PointerDown(t, px, bar)
	LogGesture("pointer down", m.drag)
	return m, nil
}

// pointerUp ends the gesture and sends its updates to the store.
func (m Model) pointerUp() (tea.Model, tea.Cmd) {
	s := m.drag
	m.drag = interaction.DragState{}
	LogGesture("pointer up", s)

	if !s.HasPreview() {
		return m, nil
	}

	var selection []string
	if s.Mode == interaction.ModeDragging {
		selection = m.dragSelection(s.TaskID)
	}

	updates := m.ctrl.PointerUp(s, m.byID, selection)
	LogCommit("pointer", updates)
	if len(updates) == 0 {
		if s.Mode.IsResize() {
			return m, m.setError("Resize rejected")
		}
		return m, m.setError("Move rejected")
	}
	return m, commands.ApplyUpdates(m.repo, updates)
}

// dragSelection returns the ids that move with the grabbed task.
// A grabbed task outside the selection moves alone. Summaries bring
// their descendants along.
func (m Model) dragSelection(grabbedID string) []string {
	roots := []string{grabbedID}
	if m.selected[grabbedID] {
		roots = m.selectedIDs()
	}
	return m.expandMoveSet(roots)
}

// expandMoveSet adds the descendants of every summary in roots.
func (m Model) expandMoveSet(roots []string) []string {
	return m.byID.WithDescendants(roots)
}

// cancelGesture drops the gesture in progress without committing.
func (m *Model) cancelGesture(reason string) {
	if !m.drag.Active() {
		return
	}
	debugLog.WithField("reason", reason).Debug("gesture cancelled")
	m.drag = m.ctrl.Cancel(m.drag)
}
