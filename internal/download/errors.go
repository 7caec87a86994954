package download

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBusy is returned by Start while another attempt is in flight
var ErrBusy = errors.New("a download is already in progress")

// HTTPStatusError reports a non-200 response from the archive
type HTTPStatusError struct {
	StatusCode int
	URL        string
}

func (e *HTTPStatusError) Error() string {
	text := http.StatusText(e.StatusCode)
	if text == "" {
		text = "Unexpected status"
	}
	return fmt.Sprintf("Error %d - %s", e.StatusCode, text)
}

// NetworkError reports a transport or file IO failure during a transfer
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	if e.Op == "" {
		return e.Err.Error()
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }
