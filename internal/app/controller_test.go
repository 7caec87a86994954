package app

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/quickpapers/internal/download"
	"github.com/ytget/quickpapers/internal/history"
	"github.com/ytget/quickpapers/internal/model"
	"github.com/ytget/quickpapers/internal/paper"
)

type fakeDownloader struct {
	starts []model.Target
	busy   bool
	err    error
}

func (f *fakeDownloader) Start(_ context.Context, target model.Target) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.starts = append(f.starts, target)
	return "attempt-1", nil
}

func (f *fakeDownloader) Busy() bool { return f.busy }

type memoryRecorder struct {
	entries []history.Entry
}

func (m *memoryRecorder) Add(e history.Entry) (history.Entry, error) {
	m.entries = append(m.entries, e)
	return e, nil
}

func validRequest() model.DownloadRequest {
	return model.DownloadRequest{
		SubjectCode: "9709",
		Year:        "19",
		Session:     model.SessionSummer,
		PaperType:   model.PaperQuestion,
		Component:   "11",
	}
}

func newTestController(t *testing.T, baseURL string, d download.Downloader) (*Controller, string) {
	t.Helper()
	tmpl, err := paper.NewTemplate(baseURL)
	require.NoError(t, err)
	dir := filepath.Join(t.TempDir(), "Past Papers")
	return NewController(tmpl, d, func() string { return dir }), dir
}

func TestInitialState(t *testing.T) {
	c, _ := newTestController(t, "", &fakeDownloader{})
	state := c.State()
	assert.Equal(t, model.PhaseIdle, state.Phase)
	assert.Equal(t, NoticeReady, state.Notice)
	assert.True(t, state.CanSubmit())
}

func TestSubmit_MissingFieldsNeverStarts(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.DownloadRequest)
	}{
		{"empty subject", func(r *model.DownloadRequest) { r.SubjectCode = "" }},
		{"no year", func(r *model.DownloadRequest) { r.Year = "" }},
		{"no component", func(r *model.DownloadRequest) { r.Component = "" }},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			d := &fakeDownloader{}
			c, _ := newTestController(t, "", d)
			req := validRequest()
			test.mutate(&req)

			state := c.Submit(req)
			assert.Equal(t, NoticeMissingFields, state.Notice)
			assert.Equal(t, model.PhaseIdle, state.Phase)
			assert.Empty(t, d.starts, "no network call may be issued")
		})
	}
}

func TestSubmit_InvalidSubject(t *testing.T) {
	d := &fakeDownloader{}
	c, _ := newTestController(t, "", d)
	req := validRequest()
	req.SubjectCode = "../../x"

	state := c.Submit(req)
	assert.Equal(t, NoticeInvalidInput, state.Notice)
	assert.NotEmpty(t, state.Detail)
	assert.Empty(t, d.starts)
}

func TestSubmit_AlreadyDownloaded(t *testing.T) {
	d := &fakeDownloader{}
	c, dir := newTestController(t, "", d)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "9709_s19_qp_11.pdf"), []byte("%PDF"), 0o644))

	state := c.Submit(validRequest())
	assert.Equal(t, NoticeAlreadyDownloaded, state.Notice)
	assert.Equal(t, "9709_s19_qp_11.pdf", state.Target.FileName)
	assert.Empty(t, d.starts, "no network call may be issued")
}

func TestSubmit_StartsDownload(t *testing.T) {
	d := &fakeDownloader{}
	c, dir := newTestController(t, "", d)

	var notified []State
	c.SetChangeCallback(func(s State) { notified = append(notified, s) })

	state := c.Submit(validRequest())
	require.Len(t, d.starts, 1)
	assert.Equal(t, paper.DefaultBaseURL+"9709_s19_qp_11.pdf", d.starts[0].RemoteURL)
	assert.Equal(t, filepath.Join(dir, "9709_s19_qp_11.pdf"), d.starts[0].LocalPath)
	assert.Equal(t, model.PhaseDownloading, state.Phase)
	assert.Equal(t, NoticeDownloading, state.Notice)
	assert.Equal(t, "attempt-1", state.AttemptID)
	assert.False(t, state.CanSubmit())
	assert.Empty(t, notified, "submissions are returned, not broadcast")

	info, err := os.Stat(dir)
	require.NoError(t, err, "output directory is created before the download")
	assert.True(t, info.IsDir())
}

func TestSubmit_RejectsWhileDownloading(t *testing.T) {
	d := &fakeDownloader{}
	c, _ := newTestController(t, "", d)

	c.Submit(validRequest())
	req := validRequest()
	req.Component = "12"
	state := c.Submit(req)

	assert.Equal(t, NoticeBusy, state.Notice)
	assert.Equal(t, model.PhaseDownloading, state.Phase)
	assert.Len(t, d.starts, 1)
}

func TestSubmit_ValidatesBeforeBusyCheck(t *testing.T) {
	d := &fakeDownloader{}
	c, dir := newTestController(t, "", d)
	require.Equal(t, NoticeDownloading, c.Submit(validRequest()).Notice)
	d.busy = true

	req := validRequest()
	req.SubjectCode = ""
	state := c.Submit(req)
	assert.Equal(t, NoticeMissingFields, state.Notice)
	assert.Equal(t, model.PhaseDownloading, state.Phase)
	assert.Equal(t, "attempt-1", state.AttemptID)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "9709_s19_qp_12.pdf"), []byte("%PDF"), 0o644))
	req = validRequest()
	req.Component = "12"
	state = c.Submit(req)
	assert.Equal(t, NoticeAlreadyDownloaded, state.Notice)
	assert.Equal(t, "9709_s19_qp_12.pdf", state.Target.FileName)
	assert.Equal(t, model.PhaseDownloading, state.Phase)
	assert.Len(t, d.starts, 1)

	running := d.starts[0]
	state = c.Apply(download.Event{AttemptID: "attempt-1", Type: download.EventComplete, Target: running})
	assert.Equal(t, "9709_s19_qp_11.pdf", state.Target.FileName, "completion reports the downloaded paper")
}

func TestSubmit_RejectionAfterCompletionResetsProgress(t *testing.T) {
	d := &fakeDownloader{}
	c, _ := newTestController(t, "", d)
	c.Submit(validRequest())
	c.Apply(download.Event{
		AttemptID: "attempt-1",
		Type:      download.EventComplete,
		Progress:  model.Progress{Percent: 100, Received: 10, Total: 10},
	})

	req := validRequest()
	req.Year = ""
	state := c.Submit(req)

	assert.Equal(t, NoticeMissingFields, state.Notice)
	assert.Equal(t, model.PhaseIdle, state.Phase)
	assert.Equal(t, model.Progress{}, state.Progress)
	assert.True(t, state.CanSubmit())
}

func TestSubmit_StartError(t *testing.T) {
	d := &fakeDownloader{err: errors.New("boom")}
	c, _ := newTestController(t, "", d)

	state := c.Submit(validRequest())
	assert.Equal(t, NoticeError, state.Notice)
	assert.Equal(t, model.PhaseError, state.Phase)
	assert.Equal(t, "boom", state.Detail)

	d.err = download.ErrBusy
	state = c.Submit(validRequest())
	assert.Equal(t, NoticeBusy, state.Notice)
}

func TestApply_Events(t *testing.T) {
	d := &fakeDownloader{}
	c, _ := newTestController(t, "", d)
	rec := &memoryRecorder{}
	c.SetRecorder(rec)
	c.Submit(validRequest())
	target := c.State().Target

	state := c.Apply(download.Event{AttemptID: "stale", Type: download.EventFailed, Err: errors.New("old")})
	assert.Equal(t, model.PhaseDownloading, state.Phase, "events from other attempts are ignored")

	state = c.Apply(download.Event{AttemptID: "attempt-1", Type: download.EventProgress, Progress: model.Progress{Percent: 40}})
	assert.Equal(t, 40, state.Progress.Percent)

	state = c.Apply(download.Event{
		AttemptID: "attempt-1",
		Type:      download.EventComplete,
		Target:    target,
		Progress:  model.Progress{Percent: 100, Received: 10, Total: 10},
	})
	assert.Equal(t, model.PhaseCompleted, state.Phase)
	assert.Equal(t, NoticeComplete, state.Notice)
	assert.Equal(t, 100, state.Progress.Percent)
	require.Len(t, rec.entries, 1)
	assert.Equal(t, "9709_s19_qp_11.pdf", rec.entries[0].FileName)
	assert.Equal(t, int64(10), rec.entries[0].Size)
}

func TestApply_FailureResetsProgress(t *testing.T) {
	d := &fakeDownloader{}
	c, _ := newTestController(t, "", d)
	c.Submit(validRequest())

	c.Apply(download.Event{AttemptID: "attempt-1", Type: download.EventProgress, Progress: model.Progress{Percent: 70}})
	state := c.Apply(download.Event{AttemptID: "attempt-1", Type: download.EventFailed, Err: errors.New("connection reset")})

	assert.Equal(t, model.PhaseError, state.Phase)
	assert.Equal(t, NoticeError, state.Notice)
	assert.Equal(t, "connection reset", state.Detail)
	assert.Equal(t, 0, state.Progress.Percent)
	assert.True(t, state.CanSubmit())
}

func TestEndToEnd_WithArchiveServer(t *testing.T) {
	body := []byte("%PDF-1.4 question paper %%EOF")
	var hits atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.URL.Path != "/upload/9709_w21_ms_32.pdf" {
			http.NotFound(w, r)
			return
		}
		_, _ = w.Write(body)
	}))
	defer server.Close()

	events := make(chan download.Event, 64)
	svc := download.NewService(server.Client(), download.NewChanReporter(events))
	c, dir := newTestController(t, server.URL+"/upload", svc)

	terminal := make(chan State, 4)
	c.SetChangeCallback(func(s State) {
		if s.Notice == NoticeComplete || s.Notice == NoticeError {
			terminal <- s
		}
	})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go c.Run(ctx, events)

	req := model.DownloadRequest{
		SubjectCode: "9709",
		Year:        "21",
		Session:     model.SessionWinter,
		PaperType:   model.PaperMarkScheme,
		Component:   "32",
	}
	require.Equal(t, NoticeDownloading, c.Submit(req).Notice)

	select {
	case s := <-terminal:
		assert.Equal(t, NoticeComplete, s.Notice)
		assert.Equal(t, 100, s.Progress.Percent)
	case <-time.After(5 * time.Second):
		t.Fatal("download did not finish")
	}

	data, err := os.ReadFile(filepath.Join(dir, "9709_w21_ms_32.pdf"))
	require.NoError(t, err)
	assert.Equal(t, body, data)

	// A second submission is gated by the file on disk
	assert.Equal(t, NoticeAlreadyDownloaded, c.Submit(req).Notice)
	assert.Equal(t, int32(1), hits.Load())

	// A missing paper surfaces the status code
	req.Component = "33"
	require.Equal(t, NoticeDownloading, c.Submit(req).Notice)
	select {
	case s := <-terminal:
		assert.Equal(t, NoticeError, s.Notice)
		assert.Contains(t, s.Detail, "404")
		assert.Equal(t, 0, s.Progress.Percent)
	case <-time.After(5 * time.Second):
		t.Fatal("download did not fail")
	}
	_, err = os.Stat(filepath.Join(dir, "9709_w21_ms_33.pdf"))
	assert.True(t, os.IsNotExist(err))
}
