package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/interaction"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/tui/commands"
)

// With the default chart (16px per day, 8px cells) and 100 columns, the
// timeline starts at column 26 and every day is two cells wide. The sample
// chart starts on 2025-01-04, so:
//
//	Design (row 2): columns 30-37
//	Build  (row 3): columns 44-51
//	Launch (row 4): columns 58-59

func mouse(action tea.MouseAction, x, y int) tea.MouseMsg {
	return tea.MouseMsg{X: x, Y: y, Action: action, Button: tea.MouseButtonLeft}
}

func send(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", updated)
	}
	return model, cmd
}

// gesture sends a press at fromX, a motion to each x in moves, and returns
// the model before the release.
func gesture(t *testing.T, m Model, y, fromX int, moves ...int) Model {
	t.Helper()
	m, _ = send(t, m, mouse(tea.MouseActionPress, fromX, y))
	for _, x := range moves {
		m, _ = send(t, m, mouse(tea.MouseActionMotion, x, y))
	}
	return m
}

// release ends the gesture and runs the store command it produces.
func release(t *testing.T, m Model, y, x int) (Model, tea.Msg) {
	t.Helper()
	m, cmd := send(t, m, mouse(tea.MouseActionRelease, x, y))
	if cmd == nil {
		return m, nil
	}
	if m.statusError {
		// Rejections return a status timer; do not wait on it.
		return m, nil
	}
	return m, cmd()
}

func singleUpdate(t *testing.T, repo *fakeRepo) task.Update {
	t.Helper()
	if len(repo.applied) != 1 || len(repo.applied[0]) != 1 {
		t.Fatalf("applied = %+v, want one batch with one update", repo.applied)
	}
	return repo.applied[0][0]
}

func assertSchedule(t *testing.T, u task.Update, id string, start, end time.Time, duration int) {
	t.Helper()
	if u.ID != id {
		t.Errorf("update id = %s, want %s", u.ID, id)
	}
	if u.Updates.StartDate == nil || !u.Updates.StartDate.Equal(start) {
		t.Errorf("start = %v, want %v", u.Updates.StartDate, start)
	}
	if u.Updates.EndDate == nil || !u.Updates.EndDate.Equal(end) {
		t.Errorf("end = %v, want %v", u.Updates.EndDate, end)
	}
	if u.Updates.Duration == nil || *u.Updates.Duration != duration {
		t.Errorf("duration = %v, want %d", u.Updates.Duration, duration)
	}
}

func TestPointerGestures(t *testing.T) {
	tests := []struct {
		name     string
		y, fromX int
		moves    []int
		mode     interaction.Mode
		id       string
		start    time.Time
		end      time.Time
		duration int
	}{
		{
			name: "drag center moves both dates", y: 2, fromX: 33, moves: []int{35, 37},
			mode: interaction.ModeDragging, id: "a",
			start: date(2025, 1, 8), end: date(2025, 1, 12), duration: 4,
		},
		{
			name: "left edge resizes start", y: 2, fromX: 30, moves: []int{32},
			mode: interaction.ModeResizingLeft, id: "a",
			start: date(2025, 1, 7), end: date(2025, 1, 10), duration: 3,
		},
		{
			name: "right edge resizes end", y: 2, fromX: 37, moves: []int{39},
			mode: interaction.ModeResizingRight, id: "a",
			start: date(2025, 1, 6), end: date(2025, 1, 11), duration: 5,
		},
		{
			name: "milestone edge still drags", y: 4, fromX: 58, moves: []int{60},
			mode: interaction.ModeDragging, id: "c",
			start: date(2025, 1, 21), end: date(2025, 1, 21), duration: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			m := newTestModel(t, repo, sampleTasks()...)

			m, _ = send(t, m, mouse(tea.MouseActionPress, tc.fromX, tc.y))
			if m.drag.Mode != tc.mode {
				t.Fatalf("mode = %s, want %s", m.drag.Mode, tc.mode)
			}
			for _, x := range tc.moves {
				m, _ = send(t, m, mouse(tea.MouseActionMotion, x, tc.y))
			}

			m, msg := release(t, m, tc.y, tc.moves[len(tc.moves)-1])
			if m.drag.Active() {
				t.Error("gesture should end on release")
			}
			if applied, ok := msg.(commands.UpdatesAppliedMsg); !ok || applied.Count != 1 {
				t.Fatalf("release produced %#v, want UpdatesAppliedMsg{Count: 1}", msg)
			}
			assertSchedule(t, singleUpdate(t, repo), tc.id, tc.start, tc.end, tc.duration)
		})
	}
}

func TestPointerMove_InvalidResizeKeepsPreview(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	m = gesture(t, m, 2, 37, 33)
	_, end := m.drag.Dates()
	if !end.Equal(date(2025, 1, 8)) {
		t.Fatalf("preview end = %v, want 2025-01-08", end)
	}

	// Past the start: ignored.
	m, _ = send(t, m, mouse(tea.MouseActionMotion, 27, 2))
	_, end = m.drag.Dates()
	if !end.Equal(date(2025, 1, 8)) {
		t.Errorf("preview end = %v, want last valid 2025-01-08", end)
	}
}

func TestPointerUp_DependencyRejected(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo, sampleTasks()...)

	// Build five days earlier would start before Design ends.
	m = gesture(t, m, 3, 47, 37)
	m, _ = release(t, m, 3, 37)

	if len(repo.applied) != 0 {
		t.Errorf("applied = %+v, want nothing", repo.applied)
	}
	if !m.statusError || m.statusMsg != "Move rejected" {
		t.Errorf("status = %q (error %v), want Move rejected", m.statusMsg, m.statusError)
	}
}

func TestPointerUp_SelectionMovesTogether(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo, sampleTasks()...)

	space := tea.KeyMsg{Type: tea.KeySpace}
	down := tea.KeyMsg{Type: tea.KeyDown}
	m, _ = send(t, m, space)
	m, _ = send(t, m, down)
	m, _ = send(t, m, space)

	m = gesture(t, m, 2, 33, 37)
	_, msg := release(t, m, 2, 37)

	if applied, ok := msg.(commands.UpdatesAppliedMsg); !ok || applied.Count != 2 {
		t.Fatalf("release produced %#v, want two updates", msg)
	}
	batch := repo.applied[0]
	assertSchedule(t, batch[0], "a", date(2025, 1, 8), date(2025, 1, 12), 4)
	assertSchedule(t, batch[1], "b", date(2025, 1, 15), date(2025, 1, 19), 4)
}

func TestPointerUp_SummaryMovesChildren(t *testing.T) {
	phase := newTask("p", "Phase", task.TypeSummary, date(2025, 1, 6), date(2025, 1, 17))
	leaf := newTask("r", "Leaf", task.TypeTask, date(2025, 1, 6), date(2025, 1, 10))
	leaf.ParentID = "p"
	other := newTask("s", "Other", task.TypeTask, date(2025, 1, 13), date(2025, 1, 17))
	other.ParentID = "p"

	repo := &fakeRepo{}
	m := newTestModel(t, repo, phase, leaf, other)

	// Phase spans columns 30-51; its edges still drag.
	m = gesture(t, m, 2, 30, 32)
	if m.drag.Mode != interaction.ModeDragging {
		t.Fatalf("mode = %s, want dragging", m.drag.Mode)
	}
	_, msg := release(t, m, 2, 32)

	if applied, ok := msg.(commands.UpdatesAppliedMsg); !ok || applied.Count != 2 {
		t.Fatalf("release produced %#v, want the two children", msg)
	}
	batch := repo.applied[0]
	assertSchedule(t, batch[0], "r", date(2025, 1, 7), date(2025, 1, 11), 4)
	assertSchedule(t, batch[1], "s", date(2025, 1, 14), date(2025, 1, 18), 4)
}

func TestPointerUp_WorkingDays(t *testing.T) {
	cfg := config.Default()
	cfg.Schedule.WorkingDays = true

	repo := &fakeRepo{}
	sprint := newTask("x", "Sprint", task.TypeTask, date(2025, 1, 6), date(2025, 1, 13))
	m := newTestModelWithConfig(t, cfg, repo, sprint)

	// Columns 30-43. Three days later is a Thursday; five working days on
	// lands on the next Thursday.
	m = gesture(t, m, 2, 36, 42)
	_, msg := release(t, m, 2, 42)

	if _, ok := msg.(commands.UpdatesAppliedMsg); !ok {
		t.Fatalf("release produced %#v", msg)
	}
	assertSchedule(t, singleUpdate(t, repo), "x", date(2025, 1, 9), date(2025, 1, 16), 7)
}

func TestPointerUp_ClickCommitsNothing(t *testing.T) {
	repo := &fakeRepo{}
	m := newTestModel(t, repo, sampleTasks()...)

	m = gesture(t, m, 3, 47)
	m, cmd := send(t, m, mouse(tea.MouseActionRelease, 47, 3))

	if cmd != nil {
		t.Error("a click without movement should not produce a command")
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want clicked row 1", m.cursor)
	}
	if len(repo.applied) != 0 {
		t.Errorf("applied = %+v, want nothing", repo.applied)
	}
}

func TestPointerDown_Misses(t *testing.T) {
	tests := []struct {
		name       string
		x, y       int
		wantCursor int
	}{
		{"empty timeline", 70, 2, 0},
		{"label column", 5, 4, 2},
		{"header", 33, 0, 0},
		{"past last row", 33, 10, 0},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := newTestModel(t, nil, sampleTasks()...)
			m, _ = send(t, m, mouse(tea.MouseActionPress, tc.x, tc.y))
			if m.drag.Active() {
				t.Error("press should not start a gesture")
			}
			if m.cursor != tc.wantCursor {
				t.Errorf("cursor = %d, want %d", m.cursor, tc.wantCursor)
			}
		})
	}
}

func TestPointerDown_ModifierTogglesSelection(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	msg := mouse(tea.MouseActionPress, 47, 3)
	msg.Ctrl = true
	m, _ = send(t, m, msg)
	if !m.selected["b"] || m.drag.Active() {
		t.Fatalf("selected = %v, drag = %v", m.selected, m.drag.Mode)
	}

	m, _ = send(t, m, msg)
	if m.selected["b"] {
		t.Error("second ctrl-click should deselect")
	}
}

func TestCancelGesture(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"escape", tea.KeyMsg{Type: tea.KeyEsc}},
		{"focus lost", tea.BlurMsg{}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := &fakeRepo{}
			m := newTestModel(t, repo, sampleTasks()...)

			m = gesture(t, m, 2, 33, 37)
			m, _ = send(t, m, tc.msg)
			if m.drag.Active() {
				t.Fatal("gesture should be cancelled")
			}

			_, cmd := send(t, m, mouse(tea.MouseActionRelease, 37, 2))
			if cmd != nil || len(repo.applied) != 0 {
				t.Error("release after cancel should commit nothing")
			}
		})
	}
}

func TestMouseWheel(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	wheel := tea.MouseMsg{X: 40, Y: 3, Action: tea.MouseActionPress, Button: tea.MouseButtonWheelDown}
	m, _ = send(t, m, wheel)
	if m.cursor != 1 {
		t.Errorf("cursor = %d, want 1", m.cursor)
	}

	start := m.viewStart
	wheel.Shift = true
	m, _ = send(t, m, wheel)
	if !m.viewStart.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("viewStart = %v, want one day later", m.viewStart)
	}
}

func TestMouseIgnoredUnderOverlay(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)
	m.openOverlay(overlaySummary)

	m, _ = send(t, m, mouse(tea.MouseActionPress, 33, 2))
	if m.drag.Active() {
		t.Error("overlay should swallow mouse input")
	}
}

func TestUpdate_Messages(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	m, cmd := send(t, m, commands.UpdatesAppliedMsg{Count: 2})
	if m.statusMsg != "Saved 2 changes" || cmd == nil {
		t.Errorf("status = %q, cmd nil = %v", m.statusMsg, cmd == nil)
	}

	m, _ = send(t, m, commands.UpdatesAppliedMsg{Count: 1})
	if m.statusMsg != "Saved 1 change" {
		t.Errorf("status = %q, want singular", m.statusMsg)
	}

	m, _ = send(t, m, commands.ErrMsg{Err: errors.New("boom")})
	if !m.statusError || !strings.Contains(m.statusMsg, "boom") {
		t.Errorf("status = %q (error %v)", m.statusMsg, m.statusError)
	}

	m, _ = send(t, m, tea.WindowSizeMsg{Width: 60, Height: 8})
	if m.width != 60 || m.height != 8 || m.help.Width != 60 {
		t.Errorf("size = %dx%d help %d", m.width, m.height, m.help.Width)
	}
}
