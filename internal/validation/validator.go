// Package validation checks proposed task dates against chart constraints.
package validation

import (
	"fmt"
	"strings"
	"time"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/interaction"
	"github.com/javiermolinar/gantt/internal/task"
)

// ValidationError represents a single constraint violation of a task.
type ValidationError struct {
	TaskID  string
	Name    string
	Field   string // "end_date", "bounds" or "dependency"
	Message string
}

// String returns a formatted error message.
func (e ValidationError) String() string {
	return fmt.Sprintf("%s (%s): %s - %s", e.Name, shortID(e.TaskID), e.Field, e.Message)
}

// ValidationResult contains the result of validating a task list.
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

// FormatErrors returns every error on its own line.
func (r ValidationResult) FormatErrors() string {
	if len(r.Errors) == 0 {
		return ""
	}

	var b strings.Builder
	for _, e := range r.Errors {
		fmt.Fprintf(&b, "- %s\n", e.String())
	}
	return b.String()
}

// Bounds limits where tasks may be scheduled. Zero dates are open ends.
type Bounds struct {
	Start time.Time
	End   time.Time
}

// Validator checks drags against date order, milestone shape, project
// bounds and finish-to-start dependencies.
type Validator struct {
	tasks    task.Map
	bounds   Bounds
	proposed map[string]task.Updates // dates of the other members of a batch
}

// New creates a Validator over the given tasks.
func New(tasks task.Map, bounds Bounds) *Validator {
	return &Validator{
		tasks:  tasks,
		bounds: bounds,
	}
}

// Moving returns a copy of v that checks dependencies against the proposed
// dates of predecessors moving in the same batch. Predecessors absent from
// proposed are checked at their current dates.
func (v *Validator) Moving(proposed map[string]task.Updates) interaction.Validator {
	c := *v
	c.proposed = proposed
	return &c
}

// ValidateDrag implements interaction.Validator.
func (v *Validator) ValidateDrag(t *task.Task, newStart, newEnd time.Time) interaction.Verdict {
	if errs := v.check(t, newStart, newEnd); len(errs) > 0 {
		return interaction.Reject(errs[0].Message)
	}
	return interaction.Accept
}

// ValidateAll reports every violation in the current schedule.
// Tasks are checked in schedule order.
func (v *Validator) ValidateAll() ValidationResult {
	result := ValidationResult{Valid: true}

	tasks := make([]*task.Task, 0, len(v.tasks))
	for _, t := range v.tasks {
		tasks = append(tasks, t)
	}
	task.SortBySchedule(tasks)

	for _, t := range tasks {
		result.Errors = append(result.Errors, v.check(t, t.StartDate, t.EndDate)...)
	}
	result.Valid = len(result.Errors) == 0
	return result
}

func (v *Validator) check(t *task.Task, start, end time.Time) []ValidationError {
	var errs []ValidationError
	fail := func(field, format string, args ...any) {
		errs = append(errs, ValidationError{
			TaskID:  t.ID,
			Name:    t.Name,
			Field:   field,
			Message: fmt.Sprintf(format, args...),
		})
	}

	if end.Before(start) {
		fail("end_date", "end %s is before start %s", dateutil.Format(end), dateutil.Format(start))
	}
	if t.IsMilestone() && !start.Equal(end) {
		fail("end_date", "milestone must start and end on the same day")
	}

	if !v.bounds.Start.IsZero() && start.Before(v.bounds.Start) {
		fail("bounds", "start %s is before project start %s", dateutil.Format(start), dateutil.Format(v.bounds.Start))
	}
	if !v.bounds.End.IsZero() && end.After(v.bounds.End) {
		fail("bounds", "end %s is after project end %s", dateutil.Format(end), dateutil.Format(v.bounds.End))
	}

	for _, id := range t.Dependencies {
		pred, ok := v.tasks.Get(id)
		if !ok {
			continue
		}
		predEnd := v.endOf(pred)
		if start.Before(predEnd) {
			fail("dependency", "start %s is before %q ends on %s",
				dateutil.Format(start), pred.Name, dateutil.Format(predEnd))
		}
	}

	return errs
}

// endOf returns the end date t is going to have in the current batch.
func (v *Validator) endOf(t *task.Task) time.Time {
	if u, ok := v.proposed[t.ID]; ok && u.EndDate != nil {
		return *u.EndDate
	}
	return t.EndDate
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

// Compile-time interface check.
var _ interaction.BatchValidator = (*Validator)(nil)

