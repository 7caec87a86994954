package model

// Phase represents where the form is in its download lifecycle
type Phase string

const (
	// PhaseIdle means nothing has been submitted yet
	PhaseIdle Phase = "Idle"

	// PhaseDownloading means the worker is transferring a file
	PhaseDownloading Phase = "Downloading"

	// PhaseCompleted means the last attempt finished successfully
	PhaseCompleted Phase = "Completed"

	// PhaseError means the last attempt failed
	PhaseError Phase = "Error"
)

// String returns the string representation of Phase
func (p Phase) String() string {
	return string(p)
}

// IsActive returns true while a transfer is running
func (p Phase) IsActive() bool {
	return p == PhaseDownloading
}

// IsFinished returns true if the last attempt reached a terminal phase
func (p Phase) IsFinished() bool {
	return p == PhaseCompleted || p == PhaseError
}
