package journey

import (
	"errors"
	"fmt"

	"github.com/ShayCichocki/jrny/pkg/models"
)

// ErrInvalidPlan is returned when a plan has a completed step after an
// incomplete one.
var ErrInvalidPlan = errors.New("completed step follows an incomplete step")

// NextUncompletedStep returns the index of the first incomplete step, or -1
// when every step is done or the plan is empty.
func NextUncompletedStep(plan models.Plan) int {
	for i := range plan {
		if !plan[i].Completed {
			return i
		}
	}
	return -1
}

// FirstStep returns the first step of the plan.
func FirstStep(plan models.Plan) (models.PlanStep, bool) {
	if len(plan) == 0 {
		return models.PlanStep{}, false
	}
	return plan[0], true
}

// ValidPlan reports whether the plan satisfies the prerequisite invariant:
// no completed step follows an incomplete one.
func ValidPlan(plan models.Plan) bool {
	seenIncomplete := false
	for _, s := range plan {
		if !s.Completed {
			seenIncomplete = true
			continue
		}
		if seenIncomplete {
			return false
		}
	}
	return true
}

// CheckPlan returns ErrInvalidPlan, naming the first offending step, when
// the plan breaks the prerequisite invariant.
func CheckPlan(plan models.Plan) error {
	if ValidPlan(plan) {
		return nil
	}
	next := NextUncompletedStep(plan)
	for i := next + 1; i < len(plan); i++ {
		if plan[i].Completed {
			return fmt.Errorf("step %d is completed but step %d is not: %w", i+1, next+1, ErrInvalidPlan)
		}
	}
	return ErrInvalidPlan
}
