package theme

import (
	"charm.land/lipgloss/v2"

	"github.com/abhisek/brickmath/internal/bricks"
)

// Palette: dark background, toy-box accents.
var (
	Primary   = lipgloss.Color("#8B5CF6") // Purple
	Secondary = lipgloss.Color("#14B8A6") // Teal
	Accent    = lipgloss.Color("#F97316") // Orange
	Gold      = lipgloss.Color("#FACC15")
	Success   = lipgloss.Color("#22C55E")
	Error     = lipgloss.Color("#F43F5E")
	Text      = lipgloss.Color("#F8FAFC")
	TextDim   = lipgloss.Color("#94A3B8")
	BgDark    = lipgloss.Color("#0F172A")
	BgCard    = lipgloss.Color("#1E293B")
	Border    = lipgloss.Color("#334155")
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

	// Question is the large "7 × 8 = ?" line.
	Question = lipgloss.NewStyle().
			Bold(true).
			Foreground(Text).
			Padding(0, 2)
)

// Layout
var (
	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)

	// Toast frames an achievement unlock notification.
	Toast = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Gold).
		Foreground(Gold).
		Bold(true).
		Padding(0, 2)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Disabled = lipgloss.NewStyle().
			Foreground(TextDim)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Unlocked = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)
)

// Components
var (
	ProgressFilled = lipgloss.NewStyle().
			Background(Secondary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)

// BrickStyle returns the style for a single brick of color c.
func BrickStyle(c bricks.Color) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c.Hex()))
}

// CellStyle returns the style for a model pattern cell given as a hex color.
func CellStyle(hex string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}
