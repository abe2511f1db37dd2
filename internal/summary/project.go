// Package summary provides shared project summary utilities.
package summary

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/scheduler"
	"github.com/javiermolinar/gantt/internal/task"
)

// Row is the per-task line of a summary.
type Row struct {
	Task         *task.Task
	Depth        int
	CalendarDays int
	WorkingDays  int
}

// ProjectSummary holds aggregated chart data.
type ProjectSummary struct {
	Start        time.Time
	End          time.Time
	Rows         []Row
	Counts       map[task.Type]int
	CalendarDays int // project span
	WorkingDays  int // project span, equal to CalendarDays in calendar mode
	Effort       int // working days summed over non-summary tasks
}

// Summarize builds summary data from tasks. Rows follow chart outline order.
func Summarize(tasks []*task.Task, wd scheduler.Context) *ProjectSummary {
	s := &ProjectSummary{
		Counts: make(map[task.Type]int),
	}

	ordered, depth := task.Outline(tasks)
	for _, t := range ordered {
		row := Row{
			Task:         t,
			Depth:        depth[t.ID],
			CalendarDays: t.CalendarDays(),
			WorkingDays:  workingDays(t.StartDate, t.EndDate, wd),
		}
		s.Rows = append(s.Rows, row)
		s.Counts[t.Type]++
		if !t.IsSummary() {
			s.Effort += row.WorkingDays
		}
	}

	if start, end, ok := task.Span(tasks); ok {
		s.Start, s.End = start, end
		s.CalendarDays = dateutil.CalculateDuration(start, end)
		s.WorkingDays = workingDays(start, end, wd)
	}

	return s
}

// Build loads every task from the repository and summarizes it.
func Build(ctx context.Context, repo task.Repository, wd scheduler.Context) (*ProjectSummary, error) {
	tasks, err := repo.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching tasks: %w", err)
	}
	return Summarize(tasks, wd), nil
}

// Empty returns true when the summary has no tasks.
func (s *ProjectSummary) Empty() bool {
	return len(s.Rows) == 0
}

// Headline returns a one-line description of the project span.
func (s *ProjectSummary) Headline() string {
	if s.Empty() {
		return "no tasks"
	}
	return fmt.Sprintf("%s → %s · %d days (%d working) · %d tasks, %d milestones, %d summaries",
		dateutil.Format(s.Start), dateutil.Format(s.End),
		s.CalendarDays, s.WorkingDays,
		s.Counts[task.TypeTask], s.Counts[task.TypeMilestone], s.Counts[task.TypeSummary])
}

// Text renders the summary as plain text, one task per line.
func (s *ProjectSummary) Text() string {
	var b strings.Builder
	b.WriteString(s.Headline())
	b.WriteString("\n")
	for _, r := range s.Rows {
		fmt.Fprintf(&b, "%s%s  %s..%s  %dd/%dwd\n",
			strings.Repeat("  ", r.Depth),
			r.Task.Name,
			dateutil.Format(r.Task.StartDate),
			dateutil.Format(r.Task.EndDate),
			r.CalendarDays,
			r.WorkingDays,
		)
	}
	return b.String()
}

func workingDays(start, end time.Time, wd scheduler.Context) int {
	if !wd.Active() {
		return dateutil.CalculateDuration(start, end)
	}
	return wd.Calendar.CalculateWorkingDays(start, end, wd.Region)
}
