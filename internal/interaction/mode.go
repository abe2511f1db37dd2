package interaction

import "github.com/javiermolinar/gantt/internal/task"

// Mode is the kind of gesture in progress.
type Mode int

const (
	ModeIdle Mode = iota
	ModeDragging
	ModeResizingLeft
	ModeResizingRight
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeDragging:
		return "dragging"
	case ModeResizingLeft:
		return "resizing-left"
	case ModeResizingRight:
		return "resizing-right"
	default:
		return "idle"
	}
}

// IsResize returns true for either resize mode.
func (m Mode) IsResize() bool {
	return m == ModeResizingLeft || m == ModeResizingRight
}

// ResolveMode maps a task type and grabbed zone to a gesture.
// Summaries and milestones can only be dragged: a summary's span comes
// from its children and a milestone has no length.
func ResolveMode(t task.Type, z Zone) Mode {
	switch t {
	case task.TypeSummary, task.TypeMilestone:
		return ModeDragging
	}

	switch z {
	case ZoneLeftEdge:
		return ModeResizingLeft
	case ZoneRightEdge:
		return ModeResizingRight
	default:
		return ModeDragging
	}
}
