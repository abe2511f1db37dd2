package interaction

import (
	"time"

	"github.com/javiermolinar/gantt/internal/task"
)

// Verdict is the answer of a Validator for one proposed date pair.
type Verdict struct {
	Valid  bool
	Reason string // set when Valid is false
}

// Accept is the verdict for a valid proposal.
var Accept = Verdict{Valid: true}

// Reject returns a failing verdict with a reason.
func Reject(reason string) Verdict {
	return Verdict{Reason: reason}
}

// Validator decides whether a task may take the proposed dates.
type Validator interface {
	ValidateDrag(t *task.Task, newStart, newEnd time.Time) Verdict
}

// BatchValidator is a Validator that can be told the dates proposed for the
// other members of a batch, so relations between members are checked
// against where they are going rather than where they are.
type BatchValidator interface {
	Validator
	Moving(proposed map[string]task.Updates) Validator
}

// ValidatorFunc adapts a function to the Validator interface.
type ValidatorFunc func(t *task.Task, newStart, newEnd time.Time) Verdict

// ValidateDrag calls f.
func (f ValidatorFunc) ValidateDrag(t *task.Task, newStart, newEnd time.Time) Verdict {
	return f(t, newStart, newEnd)
}

// AllowAll accepts every proposal.
var AllowAll Validator = ValidatorFunc(func(*task.Task, time.Time, time.Time) Verdict {
	return Accept
})

func validatorOrDefault(v Validator) Validator {
	if v == nil {
		return AllowAll
	}
	return v
}
