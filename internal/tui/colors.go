package tui

// Color constants for wrkt TUI theme
const (
	// Base Colors
	ColorAppBackground  = ""        // Use terminal default background
	ColorCardBackground = "#0E1B19" // Dark teal
	ColorBorder         = "#2E4742" // Grey-green

	// Text Colors
	ColorPrimaryText   = "#E8F2EF" // Primary text (labels, values, titles)
	ColorSecondaryText = "#A9C3BC" // Secondary text - subtle sea-grey
	ColorDisabledText  = "#5F7A73" // Disabled/muted text
	ColorPlaceholder   = "#A9C3BC" // Same as secondary
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Teal theme)
	ColorAccentMain   = "#0D9488" // Logo, accent elements, active borders
	ColorAccentBright = "#2DD4BF" // Hover, highlights, live readings

	// State Colors
	ColorError   = "#EF4444" // Validation errors, failed saves
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Warnings, paused state
)
