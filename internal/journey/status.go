package journey

import "github.com/ShayCichocki/jrny/pkg/models"

// statusRule is one row of the status transition table.
type statusRule struct {
	from models.JourneyStatus
	to   models.JourneyStatus
	when func(completed, total int) bool
}

// statusRules is evaluated in order; the first matching row wins.
//
// No row targets Completed. A journey at 100% keeps its status until the
// user marks it done explicitly.
var statusRules = []statusRule{
	{
		from: models.JourneyPlanned,
		to:   models.JourneyActive,
		when: func(completed, _ int) bool { return completed > 0 },
	},
	{
		from: models.JourneyActive,
		to:   models.JourneyPlanned,
		when: func(completed, total int) bool { return completed == 0 && total > 0 },
	},
}

// NextStatus returns the status that should accompany a plan with the given
// completed and total step counts.
func NextStatus(current models.JourneyStatus, completed, total int) models.JourneyStatus {
	for _, rule := range statusRules {
		if rule.from == current && rule.when(completed, total) {
			return rule.to
		}
	}
	return current
}

// StatusForPlan is NextStatus applied to a plan's counts.
func StatusForPlan(current models.JourneyStatus, plan models.Plan) models.JourneyStatus {
	completed, total := Counts(plan)
	return NextStatus(current, completed, total)
}
