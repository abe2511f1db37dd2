package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/interaction"
	"github.com/javiermolinar/gantt/internal/task"
)

// cellKind selects the style and glyph of one timeline cell.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellOffDay
	cellToday
	cellBar
	cellBarSelected
	cellSummary
	cellMilestone
	cellPreview
	cellGhost
)

type cell struct {
	ch   rune
	kind cellKind
}

const (
	glyphBar       = '█'
	glyphSummary   = '▀'
	glyphMilestone = '◆'
	glyphPreview   = '▓'
	glyphGhost     = '░'
	glyphToday     = '┊'
)

// View renders the model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	l := m.layout()
	moving := m.previewDates()

	lines := make([]string, 0, m.height)
	lines = append(lines, m.renderTitle(l), m.renderRuler(l))
	for i := 0; i < l.rowsVisible; i++ {
		idx := m.scrollOffset + i
		switch {
		case idx < len(m.tasks):
			lines = append(lines, m.renderRow(l, idx, moving))
		case idx == 0 && !m.loading:
			lines = append(lines, m.renderEmptyChart(l))
		default:
			lines = append(lines, m.renderBlankRow(l))
		}
	}
	lines = append(lines, m.renderStatus(l), m.renderHelp(l))

	base := strings.Join(lines, "\n")
	if m.overlayKind != overlayNone {
		return m.overlay.Render(base, m.width, m.height, m.overlayContent())
	}
	return base
}

// previewDates returns the dates every task moved by the gesture in
// progress should be drawn with. Empty when nothing is being previewed.
func (m Model) previewDates() map[string]interaction.Preview {
	if !m.drag.Active() || !m.drag.HasPreview() {
		return nil
	}

	start, end := m.drag.Dates()
	out := map[string]interaction.Preview{
		m.drag.TaskID: {Start: start, End: end},
	}
	if m.drag.Mode != interaction.ModeDragging {
		return out
	}

	delta := interaction.DeltaDaysFromDates(m.drag.OriginalStart, start)
	for _, id := range m.dragSelection(m.drag.TaskID) {
		t, ok := m.byID.Get(id)
		if !ok || id == m.drag.TaskID || t.IsSummary() {
			continue
		}
		s := interaction.DragState{
			Mode:          interaction.ModeDragging,
			TaskID:        t.ID,
			TaskType:      t.Type,
			OriginalStart: t.StartDate,
			OriginalEnd:   t.EndDate,
		}
		out[id] = interaction.ComputeDragPreview(s, delta, m.wd)
	}
	return out
}

func (m Model) renderTitle(l layout) string {
	var b strings.Builder
	b.WriteString(m.styles.TitleStyle.Render("gantt"))
	b.WriteString(" ")

	last := dateutil.AddDays(m.viewStart, max(m.visibleDays()-1, 0))
	b.WriteString(m.styles.HeaderStyle.Render(
		fmt.Sprintf(" %s → %s ", dateutil.Format(m.viewStart), dateutil.Format(last))))

	if m.wd.Active() {
		b.WriteString(" ")
		b.WriteString(m.styles.ModeBadgeStyle.Render("WORKING DAYS"))
	}
	if m.drag.Active() {
		b.WriteString(" ")
		b.WriteString(m.styles.ModeBadgeStyle.Render(strings.ToUpper(m.drag.Mode.String())))
	}
	if len(m.selected) > 0 {
		b.WriteString(m.styles.FooterStyle.Render(fmt.Sprintf(" %d selected", len(m.selected))))
	}
	if m.loading {
		b.WriteString(m.styles.FooterStyle.Render(" loading…"))
	}

	return ansi.Truncate(b.String(), l.width, "")
}

// renderRuler draws day labels above the timeline. Mondays and the first
// of each month get a label.
func (m Model) renderRuler(l layout) string {
	cells := m.baseCells(l.chartWidth)
	for i := range cells {
		if cells[i].kind == cellToday {
			cells[i].kind = cellEmpty
			cells[i].ch = ' '
		}
	}

	today := dateutil.TruncateToDay(m.now())
	free := 0
	for c := 0; c < l.chartWidth; c++ {
		d := m.cellDate(c)
		if c > 0 && m.cellDate(c-1).Equal(d) {
			continue
		}
		if c < free {
			continue
		}
		var label string
		switch {
		case d.Day() == 1, c == 0:
			label = d.Format("Jan 2")
		case d.Weekday() == time.Monday, d.Equal(today):
			label = d.Format("2")
		default:
			continue
		}
		for i, r := range []rune(label) {
			if c+i >= l.chartWidth {
				break
			}
			cells[c+i].ch = r
			if d.Equal(today) {
				cells[c+i].kind = cellToday
			}
		}
		free = c + len(label) + 1
	}

	return strings.Repeat(" ", l.labelWidth) +
		m.styles.SeparatorStyle.Render("│") +
		m.renderCells(cells, true)
}

func (m Model) renderRow(l layout, idx int, moving map[string]interaction.Preview) string {
	t := m.tasks[idx]
	label := m.renderLabel(l, t, m.depth[t.ID], idx == m.cursor)

	cells := m.baseCells(l.chartWidth)
	kind := m.barKind(t)
	start, end := t.StartDate, t.EndDate
	if p, ok := moving[t.ID]; ok {
		m.paintBar(cells, t, start, end, cellGhost)
		start, end, kind = p.Start, p.End, cellPreview
	}
	m.paintBar(cells, t, start, end, kind)

	return label + m.styles.SeparatorStyle.Render("│") + m.renderCells(cells, false)
}

func (m Model) renderLabel(l layout, t *task.Task, depth int, isCursor bool) string {
	mark := "  "
	if m.selected[t.ID] {
		mark = "● "
	}
	text := mark + strings.Repeat("  ", depth) + t.Name
	text = ansi.Truncate(text, l.labelWidth, "…")
	if w := lipgloss.Width(text); w < l.labelWidth {
		text += strings.Repeat(" ", l.labelWidth-w)
	}

	switch {
	case isCursor:
		return m.styles.LabelCursorStyle.Render(text)
	case t.IsSummary():
		return m.styles.LabelSummaryStyle.Render(text)
	default:
		return m.styles.LabelStyle.Render(text)
	}
}

func (m Model) renderEmptyChart(l layout) string {
	msg := "No tasks yet. Add one with: gantt add \"Design\" --start 2025-01-06 --end 2025-01-10"
	return ansi.Truncate(m.styles.FooterStyle.Render(msg), l.width, "…")
}

func (m Model) renderBlankRow(l layout) string {
	return strings.Repeat(" ", l.labelWidth) +
		m.styles.SeparatorStyle.Render("│") +
		m.renderCells(m.baseCells(l.chartWidth), false)
}

// baseCells returns an empty timeline with off days shaded and today marked.
func (m Model) baseCells(width int) []cell {
	today := dateutil.TruncateToDay(m.now())
	cells := make([]cell, width)
	for c := range cells {
		d := m.cellDate(c)
		cells[c] = cell{ch: ' ', kind: cellEmpty}
		if !m.isWorkingDay(d) {
			cells[c].kind = cellOffDay
		}
		if d.Equal(today) && (c == 0 || !m.cellDate(c-1).Equal(d)) {
			cells[c] = cell{ch: glyphToday, kind: cellToday}
		}
	}
	return cells
}

func (m Model) isWorkingDay(d time.Time) bool {
	if m.wd.Calendar == nil {
		return d.Weekday() != time.Saturday && d.Weekday() != time.Sunday
	}
	return m.wd.Calendar.IsWorkingDay(d, m.wd.Region)
}

func (m Model) barKind(t *task.Task) cellKind {
	switch {
	case t.IsMilestone():
		return cellMilestone
	case t.IsSummary():
		return cellSummary
	case m.selected[t.ID]:
		return cellBarSelected
	default:
		return cellBar
	}
}

// paintBar fills the cells covered by a bar from start to end.
// Milestones are drawn as one glyph in the first cell of their day.
func (m Model) paintBar(cells []cell, t *task.Task, start, end time.Time, kind cellKind) {
	bar := m.barGeometry(start, end)

	if t.IsMilestone() {
		ch := glyphMilestone
		if kind == cellGhost {
			ch = '◇'
		}
		for c := range cells {
			if m.cellCovers(c, bar.X, m.config.Chart.PixelsPerDay) {
				cells[c] = cell{ch: ch, kind: kind}
				return
			}
		}
		return
	}

	for c := range cells {
		if m.cellCovers(c, bar.X, bar.Width) {
			cells[c] = cell{ch: glyphFor(kind), kind: kind}
		}
	}
}

func glyphFor(kind cellKind) rune {
	switch kind {
	case cellSummary:
		return glyphSummary
	case cellPreview:
		return glyphPreview
	case cellGhost:
		return glyphGhost
	case cellMilestone:
		return glyphMilestone
	default:
		return glyphBar
	}
}

// renderCells renders runs of equally styled cells with one style call each.
func (m Model) renderCells(cells []cell, ruler bool) string {
	var b strings.Builder
	var run []rune
	kind := cellEmpty

	flush := func() {
		if len(run) == 0 {
			return
		}
		b.WriteString(m.cellStyle(kind, ruler).Render(string(run)))
		run = run[:0]
	}

	for i, c := range cells {
		if i > 0 && c.kind != kind {
			flush()
		}
		kind = c.kind
		run = append(run, c.ch)
	}
	flush()

	return b.String()
}

func (m Model) cellStyle(kind cellKind, ruler bool) lipgloss.Style {
	switch kind {
	case cellOffDay:
		if ruler {
			return m.styles.RulerWeekendStyle
		}
		return m.styles.GridWeekendStyle
	case cellToday:
		if ruler {
			return m.styles.RulerTodayStyle
		}
		return m.styles.TodayStyle
	case cellBar:
		return m.styles.TaskBarStyle
	case cellBarSelected:
		return m.styles.TaskBarSelectedStyle
	case cellSummary:
		return m.styles.SummaryBarStyle
	case cellMilestone:
		return m.styles.MilestoneStyle
	case cellPreview:
		return m.styles.PreviewBarStyle
	case cellGhost:
		return m.styles.GhostBarStyle
	default:
		if ruler {
			return m.styles.RulerStyle
		}
		return m.styles.GridStyle
	}
}

// renderStatus shows, in order of precedence, the gesture in progress, a
// status message, the task under the cursor, or the project headline.
func (m Model) renderStatus(l layout) string {
	var line string
	switch {
	case m.drag.Active():
		line = m.styles.StatusStyle.Render(m.gestureStatus())
	case m.statusMsg != "" && m.statusError:
		line = m.styles.StatusErrorStyle.Render(m.statusMsg)
	case m.statusMsg != "":
		line = m.styles.StatusStyle.Render(m.statusMsg)
	case m.cursorTask() != nil:
		line = m.styles.StatusStyle.Render(m.taskStatus(m.cursorTask()))
	default:
		line = m.styles.FooterStyle.Render(m.summary.Headline())
	}
	return ansi.Truncate(line, l.width, "…")
}

func (m Model) gestureStatus() string {
	t, ok := m.byID.Get(m.drag.TaskID)
	if !ok {
		return m.drag.Mode.String()
	}
	start, end := m.drag.Dates()
	delta := interaction.DeltaDaysFromDates(m.drag.OriginalStart, start)
	if m.drag.Mode == interaction.ModeResizingRight {
		delta = interaction.DeltaDaysFromDates(m.drag.OriginalEnd, end)
	}
	return fmt.Sprintf("%s %s  %s → %s  (%+dd)",
		m.drag.Mode.String(), t.Name, dateutil.Format(start), dateutil.Format(end), delta)
}

func (m Model) taskStatus(t *task.Task) string {
	s := fmt.Sprintf("%s  %s → %s  %dd", t.Name, dateutil.Format(t.StartDate), dateutil.Format(t.EndDate), t.CalendarDays())
	if m.wd.Active() {
		s += fmt.Sprintf(" (%d working)", m.wd.Calendar.CalculateWorkingDays(t.StartDate, t.EndDate, m.wd.Region))
	}
	if len(t.Dependencies) > 0 {
		names := make([]string, 0, len(t.Dependencies))
		for _, id := range t.Dependencies {
			if dep, ok := m.byID.Get(id); ok {
				names = append(names, dep.Name)
			}
		}
		if len(names) > 0 {
			s += "  after " + strings.Join(names, ", ")
		}
	}
	return s
}

func (m Model) renderHelp(l layout) string {
	return ansi.Truncate(m.help.View(m.keys), l.width, "")
}

// overlayContent returns the text shown in the overlay.
func (m Model) overlayContent() string {
	switch m.overlayKind {
	case overlayHelp:
		return m.styles.OverlayTitleStyle.Render("Keys") + "\n\n" +
			m.help.FullHelpView(m.keys.FullHelp()) + "\n\n" +
			m.styles.OverlayMutedStyle.Render("drag a bar to move it, drag its edges to resize")
	case overlaySummary:
		var b strings.Builder
		b.WriteString(m.styles.OverlayTitleStyle.Render("Summary"))
		b.WriteString("\n\n")
		for _, line := range strings.Split(strings.TrimRight(m.summary.Text(), "\n"), "\n") {
			b.WriteString(m.styles.OverlayTextStyle.Render(ansi.Truncate(line, max(m.width-4, 1), "…")))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(m.styles.OverlayMutedStyle.Render("y copy · esc close"))
		return b.String()
	default:
		return ""
	}
}
