// Package ui contains the Fyne-based desktop user interface for QuickPapers.
// It renders the paper selection form, the progress bar and status line, and
// the list of recent downloads, and forwards user actions to the app
// controller. All UI strings are localized via Localization.
package ui
