package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/javiermolinar/gantt/internal/config"
	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/interaction"
	"github.com/javiermolinar/gantt/internal/scheduler"
	"github.com/javiermolinar/gantt/internal/summary"
	"github.com/javiermolinar/gantt/internal/task"
	"github.com/javiermolinar/gantt/internal/tui/commands"
	"github.com/javiermolinar/gantt/internal/tui/theme"
	"github.com/javiermolinar/gantt/internal/validation"
)

// overlayKind identifies what the overlay shows.
type overlayKind int

const (
	overlayNone overlayKind = iota
	overlaySummary
	overlayHelp
)

const (
	statusTTL      = 3 * time.Second
	errorStatusTTL = 5 * time.Second

	// panDays is how far H/L scroll the timeline.
	panDays = 7
	// leadDays is how many days are shown before the first task on load.
	leadDays = 2
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   task.Repository
	config *config.Config
	ctrl   *interaction.Controller
	wd     scheduler.Context
	bounds validation.Bounds

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Chart data, in outline order
	tasks   []*task.Task
	depth   map[string]int
	byID    task.Map
	summary *summary.ProjectSummary

	// State
	cursor       int
	scrollOffset int
	viewStart    time.Time // first day of the timeline
	selected     map[string]bool
	drag         interaction.DragState
	loading      bool

	// Overlay state
	overlay     OverlayModel
	overlayKind overlayKind

	// Components
	keys keyMap
	help help.Model

	// Terminal dimensions
	width  int
	height int

	// Messages
	statusMsg   string
	statusError bool
	statusTime  time.Time

	now func() time.Time
}

// ModelOption configures optional model behavior.
type ModelOption func(*Model)

// WithClock overrides the clock used for "today".
func WithClock(now func() time.Time) ModelOption {
	return func(m *Model) {
		m.now = now
	}
}

// New creates a new TUI model.
func New(repo task.Repository, cfg *config.Config, opts ...ModelOption) (*Model, error) {
	wd, err := cfg.WorkingDays()
	if err != nil {
		return nil, fmt.Errorf("building calendar: %w", err)
	}

	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("mocha")
	}
	styles := NewStyles(t)

	overlay := NewOverlayModel()
	overlay.SetBackground(styles.OverlayBackground())

	m := &Model{
		repo:     repo,
		config:   cfg,
		wd:       wd,
		bounds:   cfg.Bounds(),
		theme:    t,
		styles:   styles,
		depth:    map[string]int{},
		byID:     task.Map{},
		summary:  summary.Summarize(nil, wd),
		selected: map[string]bool{},
		overlay:  overlay,
		keys:     defaultKeyMap(),
		help:     help.New(),
		loading:  true,
		now:      time.Now,
	}
	m.ctrl = interaction.NewController(cfg.Chart.PixelsPerDay, wd, validation.New(m.byID, m.bounds), debugLog)

	for _, opt := range opts {
		opt(m)
	}
	m.viewStart = dateutil.AddDays(dateutil.TruncateToDay(m.now()), -leadDays)

	return m, nil
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return commands.LoadTasks(m.repo)
}

// Run starts the TUI.
func Run(repo task.Repository, cfg *config.Config) error {
	return RunWithDebug(repo, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging to cfg.Log.File.
func RunWithDebug(repo task.Repository, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug, cfg.Log.File); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model, err := New(repo, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion(), tea.WithReportFocus())
	_, err = p.Run()
	return err
}

// setTasks replaces the chart data and rebuilds everything derived from it.
func (m *Model) setTasks(tasks []*task.Task) {
	first := len(m.tasks) == 0

	m.tasks, m.depth = task.Outline(tasks)
	m.byID = task.NewMap(m.tasks)
	m.summary = summary.Summarize(m.tasks, m.wd)
	m.ctrl.Validator = validation.New(m.byID, m.bounds)

	for id := range m.selected {
		if _, ok := m.byID[id]; !ok {
			delete(m.selected, id)
		}
	}
	m.cursor = clamp(m.cursor, 0, max(len(m.tasks)-1, 0))
	m.ensureCursorVisible()

	if first && !m.summary.Empty() {
		m.viewStart = dateutil.AddDays(m.summary.Start, -leadDays)
	}
}

// cursorTask returns the task on the cursor row, or nil.
func (m Model) cursorTask() *task.Task {
	if m.cursor < 0 || m.cursor >= len(m.tasks) {
		return nil
	}
	return m.tasks[m.cursor]
}

func (m *Model) moveCursor(delta int) {
	if len(m.tasks) == 0 {
		return
	}
	m.cursor = clamp(m.cursor+delta, 0, len(m.tasks)-1)
	m.ensureCursorVisible()
}

// ensureCursorVisible scrolls rows so the cursor is on screen.
func (m *Model) ensureCursorVisible() {
	visible := m.layout().rowsVisible
	if visible <= 0 {
		return
	}
	if m.cursor < m.scrollOffset {
		m.scrollOffset = m.cursor
	}
	if m.cursor >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor - visible + 1
	}
	m.scrollOffset = clamp(m.scrollOffset, 0, max(len(m.tasks)-visible, 0))
}

func (m *Model) pan(days int) {
	m.viewStart = dateutil.AddDays(m.viewStart, days)
}

// scrollToDate puts d near the left of the timeline.
func (m *Model) scrollToDate(d time.Time) {
	m.viewStart = dateutil.AddDays(dateutil.TruncateToDay(d), -leadDays)
}

func (m *Model) toggleSelection() {
	t := m.cursorTask()
	if t == nil {
		return
	}
	if m.selected[t.ID] {
		delete(m.selected, t.ID)
		return
	}
	m.selected[t.ID] = true
}

// selectedIDs returns the selection in chart order.
func (m Model) selectedIDs() []string {
	ids := make([]string, 0, len(m.selected))
	for _, t := range m.tasks {
		if m.selected[t.ID] {
			ids = append(ids, t.ID)
		}
	}
	return ids
}

// moveSet returns the ids that move when t is dragged: t itself, plus
// every descendant when t is a summary.
func (m Model) moveSet(t *task.Task) []string {
	return m.byID.WithDescendants([]string{t.ID})
}

func (m *Model) openOverlay(kind overlayKind) {
	m.overlayKind = kind
	m.overlay.Open()
}

func (m *Model) closeOverlay() {
	m.overlayKind = overlayNone
	m.overlay.Close()
}

// setStatus shows msg in the footer until it expires.
func (m *Model) setStatus(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusError = false
	m.statusTime = m.now().Add(statusTTL)
	return commands.ClearStatusAfter(statusTTL)
}

// setError shows msg in the footer as an error.
func (m *Model) setError(msg string) tea.Cmd {
	m.statusMsg = msg
	m.statusError = true
	m.statusTime = m.now().Add(errorStatusTTL)
	return commands.ClearStatusAfter(errorStatusTTL)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
