package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Text fragments
const (
	MiddleDotSeparator = " · "
	DashPlaceholder    = "—"
	DetailSeparator    = ": "
)

// Layout sizing
const (
	RowMinWidth     float32 = 360
	RowDefaultH     float32 = 40
	SettingsDialogW float32 = 480
	SettingsDialogH float32 = 280
)

// File size formatting
const (
	FileSizeUnit  = 1024
	FileSizeUnits = "KMGTPE"
)

// DefaultRecentLimit is the number of history entries listed when the
// environment does not say otherwise
const DefaultRecentLimit = 10
