package journey

import (
	"errors"
	"fmt"

	"github.com/ShayCichocki/jrny/pkg/models"
)

// ErrStepOutOfRange is returned when a toggle targets an index outside the plan.
var ErrStepOutOfRange = errors.New("step index out of range")

// BlockedStep identifies the first incomplete prerequisite that prevented a
// step from being completed.
type BlockedStep struct {
	Index int
	Text  string
}

// Message returns the user-facing guidance for the block.
func (b BlockedStep) Message() string {
	return fmt.Sprintf("Please complete %q first.", b.Text)
}

// Outcome is the result of applying the toggle rule to a plan.
type Outcome struct {
	// Plan is the resulting plan. When Blocked is set it is the input plan.
	Plan models.Plan
	// Completed reports the direction of the toggle: true when the step was
	// being checked off, false when it was being unchecked.
	Completed bool
	// Blocked is non-nil when completion was refused.
	Blocked *BlockedStep
}

// Toggle flips the step at index, honoring prerequisite order.
//
// Completing step i requires steps 0..i-1 to be complete; otherwise the
// outcome carries the lowest incomplete step and the plan is left as is.
// Uncompleting step i also uncompletes every later step. The input plan is
// never modified.
func Toggle(plan models.Plan, index int) (Outcome, error) {
	if index < 0 || index >= len(plan) {
		return Outcome{}, fmt.Errorf("toggle step %d of %d: %w", index, len(plan), ErrStepOutOfRange)
	}

	if plan[index].Completed {
		next := plan.Clone()
		for i := index; i < len(next); i++ {
			next[i].Completed = false
		}
		return Outcome{Plan: next, Completed: false}, nil
	}

	for i := 0; i < index; i++ {
		if !plan[i].Completed {
			return Outcome{
				Plan:      plan,
				Completed: true,
				Blocked:   &BlockedStep{Index: i, Text: plan[i].Text},
			}, nil
		}
	}

	next := plan.Clone()
	next[index].Completed = true
	return Outcome{Plan: next, Completed: true}, nil
}
