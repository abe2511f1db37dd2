package scheduler

import (
	"time"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/task"
)

// Context selects the scheduling regime for a gesture.
// The zero value schedules in plain calendar days.
type Context struct {
	Enabled  bool
	Calendar *Calendar
	Region   string // holiday region, empty for none
}

// Active returns true when working-day scheduling applies.
func (c Context) Active() bool {
	return c.Enabled && c.Calendar != nil
}

// ComputeEndDateForDrag returns the end date of a task whose start moved to
// newStart by deltaDays calendar days.
//
// In calendar mode, and always for milestones, the original end is shifted
// by the same delta. In working-day mode the working-day span of the
// original dates is preserved from the new start, so the calendar length
// changes when the window crosses weekends or holidays.
func ComputeEndDateForDrag(newStart, originalStart, originalEnd time.Time, deltaDays int, taskType task.Type, ctx Context) time.Time {
	if !ctx.Active() || taskType == task.TypeMilestone {
		return dateutil.AddDays(originalEnd, deltaDays)
	}

	span := ctx.Calendar.CalculateWorkingDays(originalStart, originalEnd, ctx.Region)
	return ctx.Calendar.AddWorkingDays(newStart, span, ctx.Region)
}
