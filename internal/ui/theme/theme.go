package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwheel/internal/wheel"
)

// Color palette, taken from the wheel's gradient backdrop.
var (
	Primary   = lipgloss.Color("#667EEA") // Periwinkle
	Secondary = lipgloss.Color("#764BA2") // Plum
	Accent    = lipgloss.Color("#F093FB") // Pink
	Gold      = lipgloss.Color("#FFD166") // Sunflower
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#FF6B6B") // Coral
	Text      = lipgloss.Color("#F8FAFC") // White
	TextDim   = lipgloss.Color("#94A3B8") // Slate
	BgDark    = lipgloss.Color("#0F172A") // Deep Navy
	BgCard    = lipgloss.Color("#1E293B") // Dark Slate
	Border    = lipgloss.Color("#334155") // Slate
)

// Operation returns the segment color for op.
func Operation(op wheel.Operation) color.Color {
	if !op.Valid() {
		return Text
	}
	return lipgloss.Color(op.Color())
}

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
		Padding(1, 2)

	Cabinet = lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(Primary)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Gold).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

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
			Background(Primary)

	ProgressEmpty = lipgloss.NewStyle().
			Background(Border)
)
