package download

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/quickpapers/internal/metrics"
	"github.com/ytget/quickpapers/internal/model"
)

// Transfer constants
const (
	DefaultChunkSize       = 32 * 1024
	TempFilePattern        = ".quickpapers-*.part"
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
	AttemptIDPrefix        = "attempt-"
	MaxPercent             = 100
)

// Service runs one download attempt at a time
type Service struct {
	client    *http.Client
	reporter  Reporter
	chunkSize int

	mu     sync.Mutex
	active string // attempt ID in flight, "" when idle
}

// NewService creates a new download service. A nil client means
// http.DefaultClient.
func NewService(client *http.Client, reporter Reporter) *Service {
	if client == nil {
		client = http.DefaultClient
	}
	return &Service{
		client:    client,
		reporter:  reporter,
		chunkSize: DefaultChunkSize,
	}
}

// SetChunkSize sets the read buffer size; values below 1 restore the default
func (s *Service) SetChunkSize(size int) {
	if size < 1 {
		size = DefaultChunkSize
	}
	s.chunkSize = size
}

// Busy reports whether an attempt is in flight
func (s *Service) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active != ""
}

// Start launches a download attempt for target on its own goroutine
func (s *Service) Start(ctx context.Context, target model.Target) (string, error) {
	s.mu.Lock()
	if s.active != "" {
		s.mu.Unlock()
		metrics.DownloadAttempts.WithLabelValues(metrics.ResultRejected).Inc()
		return "", ErrBusy
	}
	id := generateAttemptID()
	s.active = id
	s.mu.Unlock()

	metrics.ActiveDownloads.Inc()
	log.Info().Str("attempt", id).Str("url", target.RemoteURL).Str("path", target.LocalPath).Msg("download started")

	go s.run(ctx, id, target)
	return id, nil
}

// run performs the attempt and reports its terminal event. The service is
// marked idle before the terminal event is reported so a listener may start
// the next attempt straight away.
func (s *Service) run(ctx context.Context, id string, target model.Target) {
	started := time.Now()

	size, err := s.Fetch(ctx, target, func(p model.Progress) {
		s.report(Event{AttemptID: id, Type: EventProgress, Target: target, Progress: p})
	})

	metrics.DownloadDuration.Observe(time.Since(started).Seconds())
	metrics.ActiveDownloads.Dec()

	s.mu.Lock()
	s.active = ""
	s.mu.Unlock()

	if err != nil {
		metrics.DownloadAttempts.WithLabelValues(resultLabel(err)).Inc()
		log.Error().Err(err).Str("attempt", id).Str("url", target.RemoteURL).Msg("download failed")
		s.report(Event{AttemptID: id, Type: EventFailed, Target: target, Err: err})
		return
	}

	metrics.DownloadAttempts.WithLabelValues(metrics.ResultComplete).Inc()
	log.Info().Str("attempt", id).Int64("bytes", size).Dur("took", time.Since(started)).Msg("download complete")
	s.report(Event{
		AttemptID: id,
		Type:      EventComplete,
		Target:    target,
		Progress:  model.Progress{Percent: MaxPercent, Received: size, Total: size},
	})
}

// Fetch streams target.RemoteURL into target.LocalPath, calling onProgress
// after every chunk. Bytes go to a temporary file next to the destination that
// is renamed into place only after a full read, so a failed attempt never
// leaves a file at LocalPath. It returns the number of bytes written.
func (s *Service) Fetch(ctx context.Context, target model.Target, onProgress func(model.Progress)) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.RemoteURL, nil)
	if err != nil {
		return 0, &NetworkError{Op: "build request", Err: err}
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return 0, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &HTTPStatusError{StatusCode: resp.StatusCode, URL: target.RemoteURL}
	}

	dir := filepath.Dir(target.LocalPath)
	if err := os.MkdirAll(dir, DefaultDirPermissions); err != nil {
		return 0, &NetworkError{Op: "create output directory", Err: err}
	}

	tmp, err := os.CreateTemp(dir, TempFilePattern)
	if err != nil {
		return 0, &NetworkError{Op: "create temp file", Err: err}
	}
	tmpName := tmp.Name()
	closed, committed := false, false
	defer func() {
		if !closed {
			_ = tmp.Close()
		}
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	total := resp.ContentLength
	buf := make([]byte, s.chunkSize)
	var received int64
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, err := tmp.Write(buf[:n]); err != nil {
				return received, &NetworkError{Op: "write file", Err: err}
			}
			received += int64(n)
			metrics.BytesReceived.Add(float64(n))
			if onProgress != nil {
				onProgress(progressFor(received, total))
			}
		}
		if errors.Is(readErr, io.EOF) {
			break
		}
		if readErr != nil {
			return received, &NetworkError{Err: readErr}
		}
	}

	if total >= 0 && received != total {
		return received, &NetworkError{Err: fmt.Errorf("received %d of %d bytes: %w", received, total, io.ErrUnexpectedEOF)}
	}

	if err := tmp.Chmod(DefaultFilePermissions); err != nil {
		return received, &NetworkError{Op: "chmod file", Err: err}
	}
	if err := tmp.Sync(); err != nil {
		return received, &NetworkError{Op: "sync file", Err: err}
	}
	closed = true
	if err := tmp.Close(); err != nil {
		return received, &NetworkError{Op: "close file", Err: err}
	}
	if err := os.Rename(tmpName, target.LocalPath); err != nil {
		return received, &NetworkError{Op: "rename file", Err: err}
	}
	committed = true
	return received, nil
}

// progressFor computes the percentage for received bytes. An unknown or zero
// total yields indeterminate progress instead of dividing by it.
func progressFor(received, total int64) model.Progress {
	if total <= 0 {
		return model.Progress{Received: received, Total: total, Indeterminate: true}
	}
	percent := int(received * MaxPercent / total)
	if percent > MaxPercent {
		percent = MaxPercent
	}
	return model.Progress{Percent: percent, Received: received, Total: total}
}

func resultLabel(err error) string {
	var statusErr *HTTPStatusError
	if errors.As(err, &statusErr) {
		return metrics.ResultHTTPStatus
	}
	return metrics.ResultNetwork
}

// report calls the reporter if set
func (s *Service) report(e Event) {
	if s.reporter != nil {
		s.reporter.Report(e)
	}
}

// generateAttemptID generates a unique attempt ID
func generateAttemptID() string {
	return AttemptIDPrefix + uuid.New().String()
}
