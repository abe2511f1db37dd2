package tui

import (
	"context"
	"slices"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/tui/commands"
)

// fakeRepo records applied updates and serves a fixed task list.
type fakeRepo struct {
	tasks   []*task.Task
	applied [][]task.Update
	err     error
}

func (r *fakeRepo) CreateTask(_ context.Context, t *task.Task) error {
	r.tasks = append(r.tasks, t)
	return nil
}

func (r *fakeRepo) GetTask(_ context.Context, id string) (*task.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, task.ErrTaskNotFound
}

func (r *fakeRepo) ListTasks(context.Context) ([]*task.Task, error) {
	return r.tasks, r.err
}

func (r *fakeRepo) DeleteTask(context.Context, string) error { return nil }

func (r *fakeRepo) ApplyUpdates(_ context.Context, updates []task.Update) error {
	if r.err != nil {
		return r.err
	}
	r.applied = append(r.applied, updates)
	return nil
}

func (r *fakeRepo) Close() error { return nil }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTask(id, name string, typ task.Type, start, end time.Time) *task.Task {
	return &task.Task{
		ID:        id,
		Name:      name,
		Type:      typ,
		StartDate: start,
		EndDate:   end,
		Duration:  int(end.Sub(start).Hours() / 24),
	}
}

// newTestModel returns a 100x20 model with tasks loaded and "today" on
// Wednesday 2025-01-08.
func newTestModel(t *testing.T, repo *fakeRepo, tasks ...*task.Task) Model {
	t.Helper()
	return newTestModelWithConfig(t, config.Default(), repo, tasks...)
}

func newTestModelWithConfig(t *testing.T, cfg *config.Config, repo *fakeRepo, tasks ...*task.Task) Model {
	t.Helper()
	if repo == nil {
		repo = &fakeRepo{}
	}
	repo.tasks = tasks

	mp, err := New(repo, cfg, WithClock(func() time.Time { return date(2025, 1, 8) }))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	var m tea.Model = *mp
	m, _ = m.Update(tea.WindowSizeMsg{Width: 100, Height: 20})
	m, _ = m.Update(commands.TasksLoadedMsg{Tasks: tasks})
	return m.(Model)
}

func sampleTasks() []*task.Task {
	design := newTask("a", "Design", task.TypeTask, date(2025, 1, 6), date(2025, 1, 10))
	build := newTask("b", "Build", task.TypeTask, date(2025, 1, 13), date(2025, 1, 17))
	build.Dependencies = []string{"a"}
	launch := newTask("c", "Launch", task.TypeMilestone, date(2025, 1, 20), date(2025, 1, 20))
	return []*task.Task{build, launch, design}
}

func TestNew(t *testing.T) {
	mp, err := New(&fakeRepo{}, config.Default(), WithClock(func() time.Time { return date(2025, 1, 8) }))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if !mp.loading {
		t.Error("expected loading until tasks arrive")
	}
	if !mp.viewStart.Equal(date(2025, 1, 6)) {
		t.Errorf("viewStart = %v, want two days before today", mp.viewStart)
	}
	if mp.Init() == nil {
		t.Error("Init should load tasks")
	}
}

func TestNew_InvalidHolidays(t *testing.T) {
	cfg := config.Default()
	cfg.Holidays = map[string][]string{"es": {"not-a-date"}}
	if _, err := New(&fakeRepo{}, cfg); err == nil {
		t.Error("expected error for bad holiday dates")
	}
}

func TestSetTasks_OutlineOrder(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	var names []string
	for _, tk := range m.tasks {
		names = append(names, tk.Name)
	}
	want := []string{"Design", "Build", "Launch"}
	if !slices.Equal(names, want) {
		t.Errorf("rows = %v, want %v", names, want)
	}
	if m.loading {
		t.Error("loading should be cleared")
	}
	if !m.viewStart.Equal(date(2025, 1, 4)) {
		t.Errorf("viewStart = %v, want two days before first task", m.viewStart)
	}
	if m.summary.Empty() {
		t.Error("summary should cover loaded tasks")
	}
}

func TestSetTasks_DropsStaleSelection(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)
	m.selected["a"] = true
	m.selected["gone"] = true

	m.setTasks(sampleTasks())

	if !m.selected["a"] || m.selected["gone"] {
		t.Errorf("selection = %v, want only a", m.selected)
	}
}

func TestMoveCursor(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	tests := []struct {
		delta int
		want  int
	}{
		{-1, 0},
		{1, 1},
		{1, 2},
		{1, 2},
		{-2, 0},
	}
	for _, tc := range tests {
		m.moveCursor(tc.delta)
		if m.cursor != tc.want {
			t.Fatalf("after moveCursor(%d) cursor = %d, want %d", tc.delta, m.cursor, tc.want)
		}
	}
}

func TestEnsureCursorVisible(t *testing.T) {
	var tasks []*task.Task
	for i := 0; i < 30; i++ {
		start := date(2025, 1, 1).AddDate(0, 0, i)
		tasks = append(tasks, newTask(string(rune('a'+i)), "T", task.TypeTask, start, start.AddDate(0, 0, 1)))
	}
	m := newTestModel(t, nil, tasks...)

	visible := m.layout().rowsVisible
	for i := 0; i < visible+3; i++ {
		m.moveCursor(1)
	}
	if m.cursor < m.scrollOffset || m.cursor >= m.scrollOffset+visible {
		t.Errorf("cursor %d outside rows [%d, %d)", m.cursor, m.scrollOffset, m.scrollOffset+visible)
	}
	if m.scrollOffset != 4 {
		t.Errorf("scrollOffset = %d, want 4", m.scrollOffset)
	}
}

func TestMoveSet_Summary(t *testing.T) {
	phase := newTask("p", "Phase", task.TypeSummary, date(2025, 1, 6), date(2025, 1, 17))
	sub := newTask("q", "Sub", task.TypeSummary, date(2025, 1, 6), date(2025, 1, 10))
	sub.ParentID = "p"
	leaf := newTask("r", "Leaf", task.TypeTask, date(2025, 1, 6), date(2025, 1, 10))
	leaf.ParentID = "q"
	other := newTask("s", "Other", task.TypeTask, date(2025, 1, 13), date(2025, 1, 17))
	other.ParentID = "p"

	m := newTestModel(t, nil, phase, sub, leaf, other)

	got := m.moveSet(phase)
	slices.Sort(got)
	want := []string{"p", "q", "r", "s"}
	if !slices.Equal(got, want) {
		t.Errorf("moveSet(phase) = %v, want %v", got, want)
	}

	if got := m.moveSet(leaf); !slices.Equal(got, []string{"r"}) {
		t.Errorf("moveSet(leaf) = %v, want [r]", got)
	}
}

func TestDragSelection(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)

	if got := m.dragSelection("a"); !slices.Equal(got, []string{"a"}) {
		t.Errorf("unselected grab = %v, want [a]", got)
	}

	m.selected["a"] = true
	m.selected["c"] = true
	if got := m.dragSelection("b"); !slices.Equal(got, []string{"b"}) {
		t.Errorf("grab outside selection = %v, want [b]", got)
	}
	if got := m.dragSelection("a"); !slices.Equal(got, []string{"a", "c"}) {
		t.Errorf("grab inside selection = %v, want [a c]", got)
	}
}

func TestStatusExpiry(t *testing.T) {
	m := newTestModel(t, nil, sampleTasks()...)
	now := date(2025, 1, 8)
	m.now = func() time.Time { return now }

	m.setStatus("hello")

	updated, _ := m.Update(commands.ClearStatusMsg{})
	if updated.(Model).statusMsg != "hello" {
		t.Error("status cleared before it expired")
	}

	now = now.Add(statusTTL)
	updated, _ = m.Update(commands.ClearStatusMsg{})
	if updated.(Model).statusMsg != "" {
		t.Error("status should be cleared after it expired")
	}
}
