package paper

// Package paper maps a download request onto the remote archive: it owns the
// URL template, the local file layout, and the embedded subject catalog.
