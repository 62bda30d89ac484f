package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette: woodland greens with warm highlights.
var (
	Primary   = lipgloss.Color("#22C55E") // Leaf green
	Secondary = lipgloss.Color("#38BDF8") // Sky
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Gold      = lipgloss.Color("#FACC15") // Star gold
	Magic     = lipgloss.Color("#C084FC") // Potion violet
	Success   = lipgloss.Color("#4ADE80") // Bright green
	Error     = lipgloss.Color("#FB7185") // Berry
	Text      = lipgloss.Color("#F0FDF4") // Mint white
	TextDim   = lipgloss.Color("#86A394") // Moss
	BgDark    = lipgloss.Color("#052E16") // Deep forest
	BgCard    = lipgloss.Color("#14532D") // Canopy
	Border    = lipgloss.Color("#3F6212") // Bark
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Locked = lipgloss.NewStyle().
		Foreground(TextDim).
		Faint(true)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)
