package constants

// Application constants
const (
	ApplicationName  = "keycap"
	ApplicationTitle = "Shortcut Editor"
)

// UI constants
const (
	// Window dimensions
	DefaultWindowWidth  = 480
	DefaultWindowHeight = 360

	// Capture button dimensions
	CaptureButtonWidth  = 72
	CaptureButtonHeight = 32

	// Capture button styling
	DefaultBorderThickness = 2
	MinBorderThickness     = 1

	// Placeholder shown on an unassigned capture button
	DefaultPlaceholder = "none"
)
