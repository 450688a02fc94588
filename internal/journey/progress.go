package journey

import "github.com/ShayCichocki/jrny/pkg/models"

// Counts returns the number of completed steps and the total number of steps.
func Counts(plan models.Plan) (completed, total int) {
	return plan.CompletedCount(), len(plan)
}

// Progress returns the percentage of completed steps rounded to the nearest
// integer, or 0 for an empty plan.
func Progress(plan models.Plan) int {
	completed, total := Counts(plan)
	return percent(completed, total)
}

// percent rounds half up using integer arithmetic.
func percent(completed, total int) int {
	if total <= 0 {
		return 0
	}
	return (200*completed + total) / (2 * total)
}
