package download

import "github.com/ytget/quickpapers/internal/model"

// Event is a progress update or terminal result of a download attempt.
//
// Every attempt emits zero or more EventProgress events followed by exactly
// one EventComplete or EventFailed. Err is set only on EventFailed.
type Event struct {
	AttemptID string
	Type      EventType
	Target    model.Target
	Progress  model.Progress
	Err       error
}

// EventType defines the set of events the worker emits.
type EventType string

const (
	EventProgress EventType = "Progress"
	EventComplete EventType = "Complete"
	EventFailed   EventType = "Failed"
)

// IsTerminal returns true for the last event of an attempt
func (t EventType) IsTerminal() bool {
	return t == EventComplete || t == EventFailed
}
