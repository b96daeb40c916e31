package theme

import (
	"charm.land/lipgloss/v2"
)

// Palette: ivory and ebony keys on a dark stage, with a warm accent for the
// key being played.
var (
	Primary   = lipgloss.Color("#E0A458") // Brass
	Secondary = lipgloss.Color("#5FA8D3") // Steel blue
	Accent    = lipgloss.Color("#F26430") // Hammer red
	Success   = lipgloss.Color("#3BB273") // Green
	Error     = lipgloss.Color("#E15554") // Red
	Text      = lipgloss.Color("#F4F1DE") // Ivory
	TextDim   = lipgloss.Color("#8D99AE") // Slate
	BgDark    = lipgloss.Color("#14141F") // Stage
	BgCard    = lipgloss.Color("#22223B") // Panel
	Border    = lipgloss.Color("#4A4E69") // Felt

	Ivory = lipgloss.Color("#FBF8EF")
	Ebony = lipgloss.Color("#1B1B1E")
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

// Layout
var (
	Card = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(0, 2)
)

// Keyboard
var (
	WhiteKey = lipgloss.NewStyle().
			Background(Ivory).
			Foreground(Ebony)

	BlackKey = lipgloss.NewStyle().
			Background(Ebony).
			Foreground(Text)

	PressedKey = lipgloss.NewStyle().
			Background(Accent).
			Foreground(Text).
			Bold(true)
)

// Exercise item states
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Pending = lipgloss.NewStyle().
		Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
