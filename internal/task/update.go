package task

import "time"

// Updates is a partial mutation of a task's schedule fields.
// Nil fields are left unchanged.
type Updates struct {
	StartDate *time.Time
	EndDate   *time.Time
	Duration  *int
}

// IsEmpty returns true if no field is set.
func (u Updates) IsEmpty() bool {
	return u.StartDate == nil && u.EndDate == nil && u.Duration == nil
}

// Update pairs a task ID with the fields to change.
type Update struct {
	ID      string
	Updates Updates
}

// Schedule builds Updates that set all three schedule fields.
func Schedule(start, end time.Time, duration int) Updates {
	return Updates{
		StartDate: &start,
		EndDate:   &end,
		Duration:  &duration,
	}
}
