package ui

import "github.com/gdamore/tcell/v2"

// Colors - dark slate with sky accents
var (
	ColorBg        = tcell.NewRGBColor(16, 24, 40)    // Dark slate background
	ColorField     = tcell.NewRGBColor(30, 41, 59)    // Input field background
	ColorFg        = tcell.NewRGBColor(203, 213, 225) // Light gray text
	ColorBorder    = tcell.NewRGBColor(56, 189, 248)  // Sky borders
	ColorTitle     = tcell.NewRGBColor(255, 255, 255) // White titles
	ColorHighlight = tcell.NewRGBColor(56, 189, 248)  // Sky highlight
	ColorAccent    = tcell.NewRGBColor(2, 132, 199)   // Buttons, selection
	ColorOnline    = tcell.NewRGBColor(74, 222, 128)  // Green for online
	ColorOffline   = tcell.NewRGBColor(148, 163, 184) // Gray for offline
	ColorOutgoing  = tcell.NewRGBColor(224, 242, 254) // Own messages
	ColorIncoming  = tcell.NewRGBColor(226, 232, 240) // Counterpart messages
	ColorMuted     = tcell.NewRGBColor(100, 116, 139) // Timestamps, hints
)
