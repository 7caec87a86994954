package app

import "github.com/ytget/quickpapers/internal/model"

// Notice is the status message category shown under the form
type Notice string

const (
	NoticeReady             Notice = "ready"
	NoticeMissingFields     Notice = "missing_fields"
	NoticeInvalidInput      Notice = "invalid_input"
	NoticeAlreadyDownloaded Notice = "already_downloaded"
	NoticeDownloading       Notice = "downloading"
	NoticeComplete          Notice = "complete"
	NoticeBusy              Notice = "busy"
	NoticeError             Notice = "error"
)

// State is everything the form displays. Detail carries the error text for
// NoticeError and NoticeInvalidInput.
type State struct {
	Phase     model.Phase
	Progress  model.Progress
	Notice    Notice
	Detail    string
	Target    model.Target
	AttemptID string
}

// CanSubmit reports whether the Download action should be enabled
func (s State) CanSubmit() bool {
	return !s.Phase.IsActive()
}
