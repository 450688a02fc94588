package journey

// Notifier receives the user-facing facts produced by journey operations.
// Hosts format them as toasts, alerts or terminal lines.
type Notifier interface {
	// PrerequisiteBlocked reports that a step cannot be completed until the
	// step at stepIndex is done.
	PrerequisiteBlocked(journeyID string, stepIndex int, stepText string)
	// SaveFailed reports that a plan change was rolled back.
	SaveFailed(journeyID string, err error)
	// PlanSaved reports that a plan change was persisted.
	PlanSaved(journeyID string)
	// JourneyDeleted reports that a journey was removed.
	JourneyDeleted(journeyID string)
}

// NopNotifier discards every notification.
type NopNotifier struct{}

func (NopNotifier) PrerequisiteBlocked(string, int, string) {}
func (NopNotifier) SaveFailed(string, error)                {}
func (NopNotifier) PlanSaved(string)                        {}
func (NopNotifier) JourneyDeleted(string)                   {}

var _ Notifier = NopNotifier{}
