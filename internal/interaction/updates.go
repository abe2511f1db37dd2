package interaction

import (
	"time"

	"github.com/javiermolinar/gantt/internal/dateutil"
	"github.com/javiermolinar/gantt/internal/scheduler"
	"github.com/javiermolinar/gantt/internal/task"
)

// BuildMoveUpdates returns the updates that move every task in ids by
// deltaDays.
//
// Summaries are skipped: the store re-spans them from their children.
// Milestones shift both dates and keep a zero duration. Other tasks shift
// their start and take their end from scheduler.ComputeEndDateForDrag.
//
// A task the validator rejects is left out and the rest of the batch is
// still returned, so one bad task never blocks a multi-selection move.
// A BatchValidator sees the proposed dates of the other members. When a
// member is dropped the remaining ones are checked again against its
// current dates, until no further member is rejected.
// Unknown and repeated ids are ignored.
func BuildMoveUpdates(ids []string, tasks task.Map, deltaDays int, wd scheduler.Context, v Validator) []task.Update {
	v = validatorOrDefault(v)
	batch, isBatch := v.(BatchValidator)

	seen := make(map[string]bool, len(ids))
	candidates := make([]task.Update, 0, len(ids))

	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true

		t, ok := tasks.Get(id)
		if !ok || t.IsSummary() {
			continue
		}

		newStart := dateutil.AddDays(t.StartDate, deltaDays)

		var (
			newEnd   time.Time
			duration int
		)
		if t.IsMilestone() {
			newEnd = dateutil.AddDays(t.EndDate, deltaDays)
			duration = 0
		} else {
			newEnd = scheduler.ComputeEndDateForDrag(newStart, t.StartDate, t.EndDate, deltaDays, t.Type, wd)
			duration = dateutil.CalculateDuration(newStart, newEnd)
		}

		candidates = append(candidates, task.Update{
			ID:      t.ID,
			Updates: task.Schedule(newStart, newEnd, duration),
		})
	}

	for {
		check := v
		if isBatch {
			check = batch.Moving(Proposed(candidates))
		}

		kept := make([]task.Update, 0, len(candidates))
		for _, u := range candidates {
			t := tasks[u.ID]
			if check.ValidateDrag(t, *u.Updates.StartDate, *u.Updates.EndDate).Valid {
				kept = append(kept, u)
			}
		}

		if len(kept) == len(candidates) {
			return kept
		}
		candidates = kept
	}
}

// Proposed indexes updates by task ID.
func Proposed(updates []task.Update) map[string]task.Updates {
	m := make(map[string]task.Updates, len(updates))
	for _, u := range updates {
		m[u.ID] = u.Updates
	}
	return m
}

// BuildResizeUpdate returns the updates committing a resize of t.
// A nil preview date falls back to the task's current value. ok is false
// when neither date changed or the validator rejects the pair.
func BuildResizeUpdate(t *task.Task, previewStart, previewEnd *time.Time, v Validator) (task.Updates, bool) {
	if t == nil {
		return task.Updates{}, false
	}

	newStart, newEnd := t.StartDate, t.EndDate
	if previewStart != nil {
		newStart = *previewStart
	}
	if previewEnd != nil {
		newEnd = *previewEnd
	}

	if newStart.Equal(t.StartDate) && newEnd.Equal(t.EndDate) {
		return task.Updates{}, false
	}

	if !validatorOrDefault(v).ValidateDrag(t, newStart, newEnd).Valid {
		return task.Updates{}, false
	}

	return task.Schedule(newStart, newEnd, dateutil.CalculateDuration(newStart, newEnd)), true
}
