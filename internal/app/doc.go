package app

// Package app holds the form controller: it validates submissions, resolves
// the download target, gates re-downloads on the local file, starts the
// worker, and folds worker events into a single State the UI renders.
