package metrics

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels for DownloadAttempts
const (
	ResultComplete   = "complete"
	ResultHTTPStatus = "http_status"
	ResultNetwork    = "network"
	ResultRejected   = "rejected"
)

var (
	DownloadAttempts = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "quickpapers",
			Name:      "download_attempts_total",
			Help:      "Paper download attempts by result.",
		},
		[]string{"result"},
	)

	BytesReceived = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "quickpapers",
			Name:      "bytes_received_total",
			Help:      "Bytes streamed from the archive.",
		},
	)

	DownloadDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Namespace: "quickpapers",
			Name:      "download_duration_seconds",
			Help:      "Wall time of finished download attempts.",
			Buckets:   prometheus.ExponentialBuckets(0.05, 2, 10),
		},
	)

	ActiveDownloads = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: "quickpapers",
			Name:      "active_downloads",
			Help:      "Number of downloads in flight.",
		},
	)
)

// Register registers the QuickPapers metrics into reg. Registering twice is
// not an error.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{DownloadAttempts, BytesReceived, DownloadDuration, ActiveDownloads} {
		if err := reg.Register(c); err != nil {
			var already prometheus.AlreadyRegisteredError
			if errors.As(err, &already) {
				continue
			}
			return fmt.Errorf("register metrics: %w", err)
		}
	}
	return nil
}

// NewServer returns an HTTP server exposing the default registry on /metrics
func NewServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
