// Package task defines the core domain types for gantt.
package task

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/javiermolinar/gantt/internal/dateutil"
)

// Validation errors.
var (
	ErrEmptyName      = errors.New("name cannot be empty")
	ErrInvalidType    = errors.New("type must be 'task', 'milestone' or 'summary'")
	ErrEndBeforeStart = errors.New("end date must not be before start date")
	ErrMilestoneSpan  = errors.New("milestone must start and end on the same day")
)

// Domain errors.
var (
	ErrTaskNotFound     = errors.New("task not found")
	ErrParentNotFound   = errors.New("parent task not found")
	ErrParentNotSummary = errors.New("parent must be a summary task")
)

// Type is the kind of bar a task renders as.
type Type string

const (
	TypeTask      Type = "task"
	TypeMilestone Type = "milestone"
	TypeSummary   Type = "summary"
)

// Valid returns true if the type is a known value.
func (t Type) Valid() bool {
	switch t {
	case TypeTask, TypeMilestone, TypeSummary:
		return true
	default:
		return false
	}
}

// ParseType parses a case-insensitive type name.
func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", ErrInvalidType
	}
	return t, nil
}

// Task is a bar on the chart.
type Task struct {
	ID           string
	Name         string
	Type         Type
	StartDate    time.Time // civil date, midnight UTC
	EndDate      time.Time // civil date, midnight UTC
	Duration     int       // days, cached from StartDate/EndDate
	ParentID     string    // summary this task rolls up into, empty for top level
	Dependencies []string  // predecessor IDs (finish-to-start)
	CreatedAt    time.Time
}

// New creates a new Task with validation.
// start can be empty (defaults to today) or in YYYY-MM-DD format.
// end can be empty (defaults to start) or in YYYY-MM-DD format.
// Milestones always end on their start date.
func New(name, typ, start, end string) (*Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	tt, err := ParseType(typ)
	if err != nil {
		return nil, err
	}

	startDate, err := dateutil.ParseDate(start)
	if err != nil {
		return nil, fmt.Errorf("start date: %w", err)
	}

	endDate := startDate
	if end != "" {
		endDate, err = dateutil.ParseDate(end)
		if err != nil {
			return nil, fmt.Errorf("end date: %w", err)
		}
	}

	t := &Task{
		ID:        uuid.NewString(),
		Name:      name,
		Type:      tt,
		StartDate: startDate,
		EndDate:   endDate,
		CreatedAt: time.Now(),
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	t.Duration = t.CalendarDays()

	return t, nil
}

// Validate checks the shape invariants of a task.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	if t.EndDate.Before(t.StartDate) {
		return ErrEndBeforeStart
	}
	if t.IsMilestone() && !t.EndDate.Equal(t.StartDate) {
		return ErrMilestoneSpan
	}
	return nil
}

// IsMilestone returns true for zero-length marker tasks.
func (t *Task) IsMilestone() bool {
	return t.Type == TypeMilestone
}

// IsSummary returns true for tasks whose span is derived from children.
func (t *Task) IsSummary() bool {
	return t.Type == TypeSummary
}

// CalendarDays returns the number of calendar days between start and end.
func (t *Task) CalendarDays() int {
	return dateutil.CalculateDuration(t.StartDate, t.EndDate)
}

// DependsOn returns true if id is one of the task's predecessors.
func (t *Task) DependsOn(id string) bool {
	return slices.Contains(t.Dependencies, id)
}

// Clone returns a deep copy of the task.
func (t *Task) Clone() *Task {
	c := *t
	c.Dependencies = slices.Clone(t.Dependencies)
	return &c
}

// Apply returns a copy of the task with the updates applied.
// The receiver is never modified.
func (t *Task) Apply(u Updates) *Task {
	c := t.Clone()
	if u.StartDate != nil {
		c.StartDate = *u.StartDate
	}
	if u.EndDate != nil {
		c.EndDate = *u.EndDate
	}
	if u.Duration != nil {
		c.Duration = *u.Duration
	}
	return c
}

// String returns a short single-line description.
func (t *Task) String() string {
	return fmt.Sprintf("%s [%s] %s..%s",
		t.Name, t.Type, dateutil.Format(t.StartDate), dateutil.Format(t.EndDate))
}

// Span returns the earliest start and latest end over tasks.
// ok is false when tasks is empty.
func Span(tasks []*Task) (start, end time.Time, ok bool) {
	for _, t := range tasks {
		if t == nil {
			continue
		}
		if !ok || t.StartDate.Before(start) {
			start = t.StartDate
		}
		if !ok || t.EndDate.After(end) {
			end = t.EndDate
		}
		ok = true
	}
	return start, end, ok
}
