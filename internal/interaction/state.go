package interaction

import (
	"time"

	"github.com/javiermolinar/gantt/internal/task"
)

// DragState is the snapshot of one gesture, from pointer-down to pointer-up.
// It is a value: every step returns a new state.
type DragState struct {
	Mode     Mode
	TaskID   string
	TaskType task.Type

	StartX      float64 // bar X at pointer-down
	StartMouseX float64 // pointer X at pointer-down

	// Dates before the gesture. All deltas are computed from these.
	OriginalStart time.Time
	OriginalEnd   time.Time

	// Nil until the gesture produces a visible change.
	PreviewStart *time.Time
	PreviewEnd   *time.Time
}

// Begin captures the state for a gesture starting on t.
func Begin(t *task.Task, pointerX float64, bar BarGeometry) DragState {
	zone := DetectZone(pointerX, bar)
	return DragState{
		Mode:          ResolveMode(t.Type, zone),
		TaskID:        t.ID,
		TaskType:      t.Type,
		StartX:        bar.X,
		StartMouseX:   pointerX,
		OriginalStart: t.StartDate,
		OriginalEnd:   t.EndDate,
	}
}

// Active returns true while a gesture is in progress.
func (s DragState) Active() bool {
	return s.Mode != ModeIdle
}

// HasPreview returns true once the gesture moved the bar.
func (s DragState) HasPreview() bool {
	return s.PreviewStart != nil || s.PreviewEnd != nil
}

// WithPreview returns a copy of the state showing p.
func (s DragState) WithPreview(p Preview) DragState {
	start, end := p.Start, p.End
	s.PreviewStart = &start
	s.PreviewEnd = &end
	return s
}

// ClearPreview returns a copy of the state without a preview.
func (s DragState) ClearPreview() DragState {
	s.PreviewStart = nil
	s.PreviewEnd = nil
	return s
}

// Dates returns the dates the bar should currently be drawn with.
func (s DragState) Dates() (start, end time.Time) {
	start, end = s.OriginalStart, s.OriginalEnd
	if s.PreviewStart != nil {
		start = *s.PreviewStart
	}
	if s.PreviewEnd != nil {
		end = *s.PreviewEnd
	}
	return start, end
}
