package download

import (
	"context"

	"github.com/ytget/quickpapers/internal/model"
)

// Downloader defines the interface for the download service.
type Downloader interface {
	// Start launches a background attempt for target and returns its ID.
	// It fails with ErrBusy while another attempt is in flight.
	Start(ctx context.Context, target model.Target) (string, error)

	// Busy reports whether an attempt is in flight
	Busy() bool
}
