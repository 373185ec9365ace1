package ui

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconFolder   = "📁"
)

// Text fragments
const (
	ProgressLabelFormat = "%.1f%%"
	MiddleDotSeparator  = " · "
	EllipsisSuffix      = "…"
)

// Window and layout sizing
const (
	WindowWidth          float32 = 720
	WindowHeight         float32 = 560
	SettingsDialogWidth  float32 = 480
	SettingsDialogHeight float32 = 360
)

// Widget limits
const (
	URLBoxMinRows     = 8
	StatusURLMaxRunes = 60
	ProgressMax       = 100.0
)
