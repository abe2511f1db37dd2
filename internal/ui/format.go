package ui

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/scheduler"
	"github.com/javiermolinar/gantt/internal/summary"
	"github.com/javiermolinar/gantt/internal/task"
)

// ErrAmbiguousID is returned when an ID prefix matches more than one task.
var ErrAmbiguousID = errors.New("ambiguous task ID")

const idWidth = 8

// PrintOpts configures task printing behavior.
type PrintOpts struct {
	Verbose      bool              // Show full names
	WorkingDays  scheduler.Context // Adds a working-day column when active
	MaxNameWidth int               // Maximum name width (0 = auto)
}

// CalcMaxNameWidth calculates the name column width based on options.
func (o PrintOpts) CalcMaxNameWidth(defaultWidth int) int {
	if o.MaxNameWidth > 0 {
		return o.MaxNameWidth
	}
	if !o.Verbose {
		return defaultWidth
	}
	// "  12345678  <name>  2025-01-06 → 2025-01-10  99d  99wd  after ..."
	available := termWidth() - 56
	if available > defaultWidth {
		return available
	}
	return defaultWidth
}

// PrintTaskRow prints a single chart row with consistent formatting.
func PrintTaskRow(w io.Writer, row summary.Row, tasks task.Map, opts PrintOpts, nameWidth int) {
	t := row.Task
	name := strings.Repeat("  ", row.Depth) + typeMarker(t) + t.Name
	name = fitWidth(name, nameWidth)

	fmt.Fprintf(w, "  %s  %s  %s → %s  %s",
		formatMuted(shortID(t.ID)),
		colorFor(t).Sprint(name),
		dateutil.Format(t.StartDate),
		dateutil.Format(t.EndDate),
		runewidth.FillLeft(fmt.Sprintf("%dd", row.CalendarDays), 4),
	)
	if opts.WorkingDays.Active() {
		fmt.Fprintf(w, "  %s", runewidth.FillLeft(fmt.Sprintf("%dwd", row.WorkingDays), 5))
	}
	if deps := dependencyNames(t, tasks); deps != "" {
		fmt.Fprintf(w, "  %s", formatMuted("after "+deps))
	}
	fmt.Fprintln(w)
}

// PrintSummary prints the project headline and totals.
func PrintSummary(w io.Writer, s *summary.ProjectSummary) {
	fmt.Fprintf(w, "%s\n", formatHeader(s.Headline()))
	if !s.Empty() {
		fmt.Fprintf(w, "Effort: %s\n", formatStats(FormatDays(s.Effort)))
	}
}

// FormatDays formats a day count as "1 day" or "N days".
func FormatDays(n int) string {
	if n == 1 || n == -1 {
		return fmt.Sprintf("%d day", n)
	}
	return fmt.Sprintf("%d days", n)
}

// fitWidth truncates or pads s to exactly width terminal cells.
func fitWidth(s string, width int) string {
	if runewidth.StringWidth(s) > width {
		s = runewidth.Truncate(s, width, "…")
	}
	return runewidth.FillRight(s, width)
}

func typeMarker(t *task.Task) string {
	switch t.Type {
	case task.TypeMilestone:
		return "◆ "
	case task.TypeSummary:
		return "▀ "
	default:
		return ""
	}
}

func colorFor(t *task.Task) *color.Color {
	switch t.Type {
	case task.TypeMilestone:
		return colorMilestone
	case task.TypeSummary:
		return colorSummary
	default:
		return colorTask
	}
}

func dependencyNames(t *task.Task, tasks task.Map) string {
	names := make([]string, 0, len(t.Dependencies))
	for _, id := range t.Dependencies {
		if dep, ok := tasks.Get(id); ok {
			names = append(names, dep.Name)
		} else {
			names = append(names, shortID(id))
		}
	}
	return strings.Join(names, ", ")
}

func shortID(id string) string {
	if len(id) <= idWidth {
		return id
	}
	return id[:idWidth]
}

// findTask resolves a full ID or a unique ID prefix.
func findTask(tasks []*task.Task, ref string) (*task.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, task.ErrTaskNotFound
	}

	for _, t := range tasks {
		if t.ID == ref {
			return t, nil
		}
	}

	var match *task.Task
	for _, t := range tasks {
		if !strings.HasPrefix(t.ID, ref) {
			continue
		}
		if match != nil {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, ref)
		}
		match = t
	}
	if match == nil {
		return nil, fmt.Errorf("%w: %s", task.ErrTaskNotFound, ref)
	}
	return match, nil
}

// findTasks resolves every reference, failing on the first miss.
func findTasks(tasks []*task.Task, refs []string) ([]string, error) {
	ids := make([]string, 0, len(refs))
	for _, ref := range refs {
		t, err := findTask(tasks, ref)
		if err != nil {
			return nil, err
		}
		ids = append(ids, t.ID)
	}
	return ids, nil
}
