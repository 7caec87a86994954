package platform

// Package platform contains OS integration: filesystem checks for the
// output directory and open/reveal of downloaded papers.
