package app

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ytget/quickpapers/internal/download"
	"github.com/ytget/quickpapers/internal/history"
	"github.com/ytget/quickpapers/internal/model"
	"github.com/ytget/quickpapers/internal/paper"
	"github.com/ytget/quickpapers/internal/platform"
)

// Recorder stores completed downloads
type Recorder interface {
	Add(history.Entry) (history.Entry, error)
}

// Controller owns the form state
type Controller struct {
	template   paper.Template
	downloader download.Downloader
	outputDir  func() string
	recorder   Recorder
	ctx        context.Context

	mu       sync.Mutex
	state    State
	onChange func(State)
}

// NewController creates a controller. outputDir is read on every submission
// so settings changes apply to the next download.
func NewController(template paper.Template, downloader download.Downloader, outputDir func() string) *Controller {
	return &Controller{
		template:   template,
		downloader: downloader,
		outputDir:  outputDir,
		ctx:        context.Background(),
		state:      State{Phase: model.PhaseIdle, Notice: NoticeReady},
	}
}

// SetRecorder sets where completed downloads are recorded
func (c *Controller) SetRecorder(r Recorder) {
	c.recorder = r
}

// SetChangeCallback sets the callback invoked with the state after every
// applied worker event. Submit returns its state directly instead.
func (c *Controller) SetChangeCallback(fn func(State)) {
	c.mu.Lock()
	c.onChange = fn
	c.mu.Unlock()
}

// State returns a snapshot of the current state
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Submit handles the Download action
func (c *Controller) Submit(req model.DownloadRequest) State {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitLocked(req)
	return c.state
}

// submitLocked runs with c.mu held. The lock is kept across Start so no
// worker event can be applied before the attempt ID is stored. Validation and
// the existing file check come before the busy check.
func (c *Controller) submitLocked(req model.DownloadRequest) {
	target, err := c.template.Resolve(req, c.outputDir())
	if err != nil {
		if errors.Is(err, model.ErrMissingFields) {
			c.reject(NoticeMissingFields, "")
		} else {
			c.reject(NoticeInvalidInput, err.Error())
		}
		return
	}

	exists, err := platform.FileExists(target.LocalPath)
	if err != nil {
		c.fail(target, err)
		return
	}
	if exists {
		log.Info().Str("path", target.LocalPath).Msg("paper already downloaded")
		c.reject(NoticeAlreadyDownloaded, "")
		c.state.Target = target
		return
	}

	if c.state.Phase.IsActive() || c.downloader.Busy() {
		c.reject(NoticeBusy, "")
		return
	}

	if err := platform.CreateDirectoryIfNotExists(filepath.Dir(target.LocalPath)); err != nil {
		c.fail(target, err)
		return
	}

	id, err := c.downloader.Start(c.ctx, target)
	if err != nil {
		if errors.Is(err, download.ErrBusy) {
			c.reject(NoticeBusy, "")
			return
		}
		c.fail(target, err)
		return
	}

	c.state = State{
		Phase:     model.PhaseDownloading,
		Notice:    NoticeDownloading,
		Target:    target,
		AttemptID: id,
	}
}

// reject sets a notice for a submission that did not start a download. A
// finished attempt is cleared back to idle; a running one is left alone.
func (c *Controller) reject(notice Notice, detail string) {
	c.state.Notice, c.state.Detail = notice, detail
	if !c.state.Phase.IsFinished() {
		return
	}
	c.state.Phase = model.PhaseIdle
	c.state.Progress = model.Progress{}
}

func (c *Controller) fail(target model.Target, err error) {
	log.Error().Err(err).Str("path", target.LocalPath).Msg("submission failed")
	c.state = State{
		Phase:  model.PhaseError,
		Notice: NoticeError,
		Detail: err.Error(),
		Target: target,
	}
}

// Apply folds a worker event into the state. Events from attempts other
// than the current one are ignored.
func (c *Controller) Apply(e download.Event) State {
	c.mu.Lock()
	if e.AttemptID != c.state.AttemptID {
		state := c.state
		c.mu.Unlock()
		return state
	}

	// A rejected submission may have replaced the target shown in the notice
	c.state.Target = e.Target
	switch e.Type {
	case download.EventProgress:
		c.state.Progress = e.Progress
	case download.EventComplete:
		c.state.Phase = model.PhaseCompleted
		c.state.Progress = e.Progress
		c.state.Notice, c.state.Detail = NoticeComplete, ""
	case download.EventFailed:
		c.state.Phase = model.PhaseError
		c.state.Progress = model.Progress{}
		c.state.Notice = NoticeError
		if e.Err != nil {
			c.state.Detail = e.Err.Error()
		}
	}
	state, notify := c.state, c.onChange
	c.mu.Unlock()

	if e.Type == download.EventComplete {
		c.record(e)
	}
	if notify != nil {
		notify(state)
	}
	return state
}

func (c *Controller) record(e download.Event) {
	if c.recorder == nil {
		return
	}
	_, err := c.recorder.Add(history.Entry{
		FileName:  e.Target.FileName,
		LocalPath: e.Target.LocalPath,
		RemoteURL: e.Target.RemoteURL,
		Size:      e.Progress.Received,
	})
	if err != nil {
		log.Warn().Err(err).Str("path", e.Target.LocalPath).Msg("failed to record download")
	}
}

// Run drains events until the channel is closed or ctx is done
func (c *Controller) Run(ctx context.Context, events <-chan download.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case e, ok := <-events:
			if !ok {
				return
			}
			c.Apply(e)
		}
	}
}
