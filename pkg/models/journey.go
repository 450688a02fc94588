package models

import "time"

// JourneyStatus represents the lifecycle state of a journey.
type JourneyStatus string

const (
	// JourneyPlanned is a journey with no completed steps.
	JourneyPlanned JourneyStatus = "Planned"
	// JourneyActive is a journey with at least one completed step.
	JourneyActive JourneyStatus = "Active"
	// JourneyCompleted is a journey the user has finished.
	JourneyCompleted JourneyStatus = "Completed"
)

// Valid returns true if the status is a known value.
func (s JourneyStatus) Valid() bool {
	switch s {
	case JourneyPlanned, JourneyActive, JourneyCompleted:
		return true
	default:
		return false
	}
}

// Priority is the optional user-assigned importance of a journey.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid returns true if the priority is empty or a known value.
func (p Priority) Valid() bool {
	switch p {
	case "", PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Journey is a user-defined goal with a step plan and derived progress.
type Journey struct {
	// ID is the opaque identifier assigned by the store.
	ID string `json:"id" yaml:"id"`
	// UserID identifies the owner. The core never checks it.
	UserID string `json:"user_id" yaml:"user_id"`
	// Title is the short name of the goal.
	Title string `json:"title" yaml:"title"`
	// Description is an optional longer explanation.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	// Status is the derived lifecycle state.
	Status JourneyStatus `json:"status" yaml:"status"`
	// Progress is the rounded percentage of completed plan steps.
	Progress int `json:"progress" yaml:"progress"`
	// Priority is optional.
	Priority Priority `json:"priority,omitempty" yaml:"priority,omitempty"`
	// Duration is a free-form length label such as "3 months".
	Duration string `json:"length_of_time,omitempty" yaml:"length_of_time,omitempty"`
	// EndDate is the optional target date.
	EndDate *time.Time `json:"end_date,omitempty" yaml:"end_date,omitempty"`
	// Plan is the ordered checklist.
	Plan Plan `json:"ai_generated_plan" yaml:"ai_generated_plan"`
	// DailyTasks are short recurring suggestions, not part of progress.
	DailyTasks []string `json:"daily_tasks,omitempty" yaml:"daily_tasks,omitempty"`
	// CreatedAt is when the journey was created.
	CreatedAt time.Time `json:"created_at" yaml:"created_at"`
	// UpdatedAt is when the journey was last written.
	UpdatedAt time.Time `json:"updated_at" yaml:"updated_at"`
}

// Clone returns a deep copy of the journey.
func (j *Journey) Clone() *Journey {
	if j == nil {
		return nil
	}
	out := *j
	out.Plan = j.Plan.Clone()
	if j.DailyTasks != nil {
		out.DailyTasks = append([]string(nil), j.DailyTasks...)
	}
	if j.EndDate != nil {
		end := *j.EndDate
		out.EndDate = &end
	}
	return &out
}

// JourneyForm holds the user input for creating a journey.
type JourneyForm struct {
	Title       string
	Description string
	Duration    string
	Priority    Priority
	EndDate     *time.Time
}
