// Package interaction turns pointer gestures on task bars into date changes.
//
// A gesture runs in three steps. On pointer-down the pointer position is
// classified into a Zone and resolved into a Mode, and the task's dates are
// captured in a DragState. Every pointer-move computes a preview from that
// snapshot, never from the previous preview, so rounding never accumulates.
// On pointer-up the preview is turned into task.Update records for the store.
//
// Nothing in this package owns or caches tasks: task maps are passed into
// each call and updates are returned, never applied.
package interaction

// EdgeThreshold is the width in pixels of the resize handles at each end of a bar.
const EdgeThreshold = 8.0

// Zone is the part of a bar under the pointer.
type Zone int

const (
	ZoneCenter Zone = iota
	ZoneLeftEdge
	ZoneRightEdge
)

// String returns the zone name.
func (z Zone) String() string {
	switch z {
	case ZoneLeftEdge:
		return "left-edge"
	case ZoneRightEdge:
		return "right-edge"
	default:
		return "center"
	}
}

// BarGeometry is the horizontal extent of a rendered bar in pixels.
type BarGeometry struct {
	X     float64
	Width float64
}

// Contains returns true if pointerX lies within the bar.
func (b BarGeometry) Contains(pointerX float64) bool {
	return pointerX >= b.X && pointerX <= b.X+b.Width
}

// DetectZone classifies pointerX relative to a bar.
// The left edge wins on bars narrower than two thresholds.
func DetectZone(pointerX float64, bar BarGeometry) Zone {
	rel := pointerX - bar.X
	if rel <= EdgeThreshold {
		return ZoneLeftEdge
	}
	if rel >= bar.Width-EdgeThreshold {
		return ZoneRightEdge
	}
	return ZoneCenter
}
