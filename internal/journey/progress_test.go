package journey

import (
	"testing"

	"github.com/ShayCichocki/jrny/pkg/models"
)

func planWith(completed, total int) models.Plan {
	plan := make(models.Plan, total)
	for i := range plan {
		plan[i] = models.PlanStep{Text: "step", Completed: i < completed}
	}
	return plan
}

func TestProgress(t *testing.T) {
	tests := []struct {
		name      string
		completed int
		total     int
		want      int
	}{
		{"empty plan", 0, 0, 0},
		{"none done", 0, 4, 0},
		{"all done", 4, 4, 100},
		{"one of three rounds down", 1, 3, 33},
		{"two of three rounds up", 2, 3, 67},
		{"one of two", 1, 2, 50},
		{"one of eight rounds half up", 1, 8, 13},
		{"three of eight rounds half up", 3, 8, 38},
		{"one of two hundred rounds half up", 1, 200, 1},
		{"single step", 1, 1, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Progress(planWith(tt.completed, tt.total))
			if got != tt.want {
				t.Errorf("Progress(%d/%d) = %d, want %d", tt.completed, tt.total, got, tt.want)
			}
		})
	}
}

func TestProgress_Bounds(t *testing.T) {
	for total := 0; total <= 50; total++ {
		for completed := 0; completed <= total; completed++ {
			got := Progress(planWith(completed, total))
			if got < 0 || got > 100 {
				t.Fatalf("Progress(%d/%d) = %d, out of bounds", completed, total, got)
			}
			if completed == total && total > 0 && got != 100 {
				t.Fatalf("Progress(%d/%d) = %d, want 100", completed, total, got)
			}
			if completed == 0 && got != 0 {
				t.Fatalf("Progress(0/%d) = %d, want 0", total, got)
			}
		}
	}
}

func TestProgress_NilPlan(t *testing.T) {
	if got := Progress(nil); got != 0 {
		t.Errorf("Progress(nil) = %d, want 0", got)
	}
	c, n := Counts(nil)
	if c != 0 || n != 0 {
		t.Errorf("Counts(nil) = %d, %d; want 0, 0", c, n)
	}
}
