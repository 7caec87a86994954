package model

// Package model defines the domain data used across the app: the paper
// download request, the target it resolves to, download progress, and the
// phase enum. Structures are plain values so the UI can snapshot them.
