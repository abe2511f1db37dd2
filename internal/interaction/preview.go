package interaction

import (
	"math"
	"time"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/scheduler"
)

// MinDurationDays is the shortest span a resize can leave a task with.
const MinDurationDays = 1

// Preview holds the transient dates shown while a gesture is in progress.
type Preview struct {
	Start time.Time
	End   time.Time
}

// ComputeResizePreview returns the dates for a resize by deltaDays.
// ok is false when the result would be shorter than MinDurationDays, or
// when the state is not resizing; callers keep their last valid preview.
func ComputeResizePreview(s DragState, deltaDays int) (Preview, bool) {
	switch s.Mode {
	case ModeResizingLeft:
		start := dateutil.AddDays(s.OriginalStart, deltaDays)
		if dateutil.CalculateDuration(start, s.OriginalEnd) < MinDurationDays {
			return Preview{}, false
		}
		return Preview{Start: start, End: s.OriginalEnd}, true
	case ModeResizingRight:
		end := dateutil.AddDays(s.OriginalEnd, deltaDays)
		if dateutil.CalculateDuration(s.OriginalStart, end) < MinDurationDays {
			return Preview{}, false
		}
		return Preview{Start: s.OriginalStart, End: end}, true
	case ModeIdle, ModeDragging:
		return Preview{}, false
	}
	return Preview{}, false
}

// ComputeDragPreview returns the dates for moving the whole bar by deltaDays.
func ComputeDragPreview(s DragState, deltaDays int, wd scheduler.Context) Preview {
	start := dateutil.AddDays(s.OriginalStart, deltaDays)
	end := scheduler.ComputeEndDateForDrag(start, s.OriginalStart, s.OriginalEnd, deltaDays, s.TaskType, wd)
	return Preview{Start: start, End: end}
}

// DeltaDaysFromDates converts a preview start back into a whole-day delta.
func DeltaDaysFromDates(originalStart, previewStart time.Time) int {
	return dateutil.CalculateDuration(originalStart, previewStart)
}

// PixelsToDeltaDays converts horizontal pointer travel into whole days,
// rounding to the nearest day so the bar and the committed date never
// disagree by more than half a day. A non-positive scale yields 0.
func PixelsToDeltaDays(pixelDelta, pixelsPerDay float64) int {
	if pixelsPerDay <= 0 {
		return 0
	}
	return int(math.Round(pixelDelta / pixelsPerDay))
}
