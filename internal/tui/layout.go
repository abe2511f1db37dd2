package tui

import (
	"math"
	"time"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/interaction"
	"github.com/javiermolinar/gantt/internal/task"
)

const (
	headerLines   = 2 // title, day ruler
	footerLines   = 2 // status, help
	minLabelWidth = 16
	maxLabelWidth = 32
)

// layout is the screen geometry for one frame.
type layout struct {
	width       int
	height      int
	labelWidth  int // task names, excluding the separator
	chartLeft   int // first timeline column
	chartWidth  int
	rowsTop     int
	rowsVisible int
}

func computeLayout(width, height int) layout {
	l := layout{width: width, height: height}
	l.labelWidth = clamp(width/4, minLabelWidth, maxLabelWidth)
	if l.labelWidth > width {
		l.labelWidth = width
	}
	l.chartLeft = l.labelWidth + 1
	l.chartWidth = max(width-l.chartLeft, 0)
	l.rowsTop = headerLines
	l.rowsVisible = max(height-headerLines-footerLines, 0)
	return l
}

func (m Model) layout() layout {
	return computeLayout(m.width, m.height)
}

// cellWidth is the virtual pixel width of one terminal cell.
func (m Model) cellWidth() float64 {
	if w := m.config.Chart.CellWidthPx; w > 0 {
		return w
	}
	return 1
}

// pointerX maps a terminal column to a timeline pixel at the cell center.
// Pixel 0 is the start of viewStart.
func (m Model) pointerX(col int) float64 {
	return (float64(col-m.layout().chartLeft) + 0.5) * m.cellWidth()
}

// dateX returns the pixel where day d starts.
func (m Model) dateX(d time.Time) float64 {
	return float64(dateutil.CalculateDuration(m.viewStart, d)) * m.config.Chart.PixelsPerDay
}

// barGeometry returns the pixel extent of a bar drawn from start to end.
func (m Model) barGeometry(start, end time.Time) interaction.BarGeometry {
	x := m.dateX(start)
	return interaction.BarGeometry{
		X:     x,
		Width: m.dateX(end) - x,
	}
}

// hitGeometry widens zero-length bars to one day so milestones can be grabbed.
func (m Model) hitGeometry(t *task.Task) interaction.BarGeometry {
	bar := m.barGeometry(t.StartDate, t.EndDate)
	if ppd := m.config.Chart.PixelsPerDay; bar.Width < ppd {
		bar.Width = ppd
	}
	return bar
}

// cellDate returns the day under timeline cell c.
func (m Model) cellDate(c int) time.Time {
	px := (float64(c) + 0.5) * m.cellWidth()
	return dateutil.AddDays(m.viewStart, int(math.Floor(px/m.config.Chart.PixelsPerDay)))
}

// cellCovers reports whether the center of cell c falls in [x, x+w).
func (m Model) cellCovers(c int, x, w float64) bool {
	px := (float64(c) + 0.5) * m.cellWidth()
	return px >= x && px < x+w
}

// visibleDays is how many whole or partial days fit on the timeline.
func (m Model) visibleDays() int {
	ppd := m.config.Chart.PixelsPerDay
	if ppd <= 0 {
		return 0
	}
	return int(math.Ceil(float64(m.layout().chartWidth) * m.cellWidth() / ppd))
}

// rowAt returns the task index under terminal row y.
func (m Model) rowAt(y int) (int, bool) {
	l := m.layout()
	if y < l.rowsTop || y >= l.rowsTop+l.rowsVisible {
		return 0, false
	}
	idx := y - l.rowsTop + m.scrollOffset
	if idx < 0 || idx >= len(m.tasks) {
		return 0, false
	}
	return idx, true
}

// inChart reports whether column x is on the timeline.
func (m Model) inChart(x int) bool {
	l := m.layout()
	return x >= l.chartLeft && x < l.chartLeft+l.chartWidth
}
