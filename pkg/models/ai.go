package models

// PlanRequest is the input handed to an AI plan generator.
type PlanRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Priority    Priority `json:"priority,omitempty"`
	Duration    string   `json:"lengthOfTime,omitempty"`
}

// PlanBreakdown is what a generator returns: ordered step texts and
// recurring daily tasks. Either list may be empty.
type PlanBreakdown struct {
	Plan       []string `json:"plan"`
	DailyTasks []string `json:"dailyTasks"`
}

// Empty reports whether the breakdown carries nothing worth storing.
func (b *PlanBreakdown) Empty() bool {
	return b == nil || (len(b.Plan) == 0 && len(b.DailyTasks) == 0)
}

// RequestFromJourney builds the generator input for a journey.
func RequestFromJourney(j *Journey) PlanRequest {
	return PlanRequest{
		Title:       j.Title,
		Description: j.Description,
		Priority:    j.Priority,
		Duration:    j.Duration,
	}
}
