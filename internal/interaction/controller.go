package interaction

import (
	"io"
	"slices"

	"github.com/sirupsen/logrus"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/scheduler"
	"github.com/javiermolinar/gantt/internal/task"
)

// Controller drives gestures from pointer events.
// It holds configuration only; gesture state lives in the DragState values
// it returns, and tasks are passed in on commit.
type Controller struct {
	PixelsPerDay float64
	WorkingDays  scheduler.Context
	Validator    Validator

	log logrus.FieldLogger
}

// NewController creates a Controller. A nil logger discards logs.
func NewController(pixelsPerDay float64, wd scheduler.Context, v Validator, log logrus.FieldLogger) *Controller {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = l
	}
	return &Controller{
		PixelsPerDay: pixelsPerDay,
		WorkingDays:  wd,
		Validator:    v,
		log:          log,
	}
}

// PointerDown starts a gesture on t.
func (c *Controller) PointerDown(t *task.Task, pointerX float64, bar BarGeometry) DragState {
	s := Begin(t, pointerX, bar)
	c.log.WithFields(logrus.Fields{
		"task":    t.ID,
		"type":    t.Type,
		"zone":    DetectZone(pointerX, bar).String(),
		"mode":    s.Mode.String(),
		"pointer": pointerX,
	}).Debug("gesture started")
	return s
}

// PointerMove updates the preview for the pointer at pointerX.
// An invalid resize keeps the previous preview.
func (c *Controller) PointerMove(s DragState, pointerX float64) DragState {
	delta := PixelsToDeltaDays(pointerX-s.StartMouseX, c.PixelsPerDay)

	switch s.Mode {
	case ModeDragging:
		if delta == 0 {
			return s.ClearPreview()
		}
		return s.WithPreview(ComputeDragPreview(s, delta, c.WorkingDays))
	case ModeResizingLeft, ModeResizingRight:
		if delta == 0 {
			return s.ClearPreview()
		}
		p, ok := ComputeResizePreview(s, delta)
		if !ok {
			c.log.WithFields(logrus.Fields{
				"task":  s.TaskID,
				"delta": delta,
			}).Debug("resize below minimum duration ignored")
			return s
		}
		return s.WithPreview(p)
	case ModeIdle:
		return s
	}
	return s
}

// PointerUp ends the gesture and returns the updates to commit.
//
// A drag moves every selected task when the grabbed task is part of the
// selection, otherwise only the grabbed task. The calendar delta is taken
// from the preview start, so the commit matches what was drawn.
func (c *Controller) PointerUp(s DragState, tasks task.Map, selection []string) []task.Update {
	if !s.Active() || !s.HasPreview() {
		return nil
	}

	var updates []task.Update
	switch s.Mode {
	case ModeDragging:
		start, _ := s.Dates()
		delta := DeltaDaysFromDates(s.OriginalStart, start)
		ids := []string{s.TaskID}
		if slices.Contains(selection, s.TaskID) {
			ids = selection
		}
		updates = BuildMoveUpdates(ids, tasks, delta, c.WorkingDays, c.Validator)
	case ModeResizingLeft, ModeResizingRight:
		if u, ok := BuildResizeUpdate(tasks[s.TaskID], s.PreviewStart, s.PreviewEnd, c.Validator); ok {
			updates = []task.Update{{ID: s.TaskID, Updates: u}}
		}
	case ModeIdle:
	}

	start, end := s.Dates()
	c.log.WithFields(logrus.Fields{
		"task":    s.TaskID,
		"mode":    s.Mode.String(),
		"start":   dateutil.Format(start),
		"end":     dateutil.Format(end),
		"updates": len(updates),
	}).Debug("gesture committed")

	return updates
}

// Cancel abandons a gesture. Nothing needs to be released.
func (c *Controller) Cancel(s DragState) DragState {
	if s.Active() {
		c.log.WithField("task", s.TaskID).Debug("gesture cancelled")
	}
	return DragState{}
}

// Nudge moves the given tasks by deltaDays without a pointer, for keyboard
// editing. It follows the same rules as a drag commit.
func (c *Controller) Nudge(ids []string, tasks task.Map, deltaDays int) []task.Update {
	if deltaDays == 0 {
		return nil
	}
	return BuildMoveUpdates(ids, tasks, deltaDays, c.WorkingDays, c.Validator)
}

// Stretch resizes one task's end (or start, when fromStart is set) by
// deltaDays without a pointer. ok is false when the resize is invalid.
func (c *Controller) Stretch(t *task.Task, deltaDays int, fromStart bool) (task.Update, bool) {
	if t == nil || t.IsSummary() || t.IsMilestone() {
		return task.Update{}, false
	}
	mode := ModeResizingRight
	if fromStart {
		mode = ModeResizingLeft
	}
	s := DragState{
		Mode:          mode,
		TaskID:        t.ID,
		TaskType:      t.Type,
		OriginalStart: t.StartDate,
		OriginalEnd:   t.EndDate,
	}
	p, ok := ComputeResizePreview(s, deltaDays)
	if !ok {
		return task.Update{}, false
	}
	u, ok := BuildResizeUpdate(t, &p.Start, &p.End, c.Validator)
	if !ok {
		return task.Update{}, false
	}
	return task.Update{ID: t.ID, Updates: u}, true
}
