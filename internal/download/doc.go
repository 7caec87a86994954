package download

// Package download implements the paper download worker: a single streamed
// HTTP GET per attempt, written through a temporary file, with progress and
// terminal events delivered to a Reporter.
