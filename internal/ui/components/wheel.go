package components

import (
	"math"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwheel/internal/ui/theme"
	"github.com/abhisek/mathwheel/internal/wheel"
)

var hubFrames = []string{"◐", "◓", "◑", "◒"}

// WheelFaces returns the operations showing at the top, right, bottom and
// left of the wheel after it has turned angle degrees clockwise. Top is
// always the operation under the pointer.
func WheelFaces(angle float64) (top, right, bottom, left wheel.Operation) {
	at := func(screen float64) wheel.Operation {
		// Screen angle s shows the wheel at s-angle.
		return wheel.SelectSegment(angle - screen)
	}
	return at(0), at(90), at(180), at(270)
}

// Wheel renders the wheel turned angle degrees, with a pointer on top.
// When landed is true the top face is outlined.
func Wheel(angle float64, landed bool) string {
	top, right, bottom, left := WheelFaces(angle)

	face := func(op wheel.Operation, highlight bool) string {
		style := lipgloss.NewStyle().
			Width(9).
			Height(3).
			Align(lipgloss.Center, lipgloss.Center).
			Bold(true).
			Foreground(theme.BgDark).
			Background(theme.Operation(op))
		if highlight {
			style = style.Border(lipgloss.ThickBorder()).BorderForeground(theme.Gold)
		} else {
			style = style.Border(lipgloss.HiddenBorder())
		}
		return style.Render(op.Symbol())
	}

	frame := int(math.Floor(wheel.Normalize(angle)/45)) % len(hubFrames)
	hub := lipgloss.NewStyle().
		Width(5).
		Height(5).
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Render(hubFrames[frame])

	pointer := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true).Render("▼")

	middle := lipgloss.JoinHorizontal(lipgloss.Center, face(left, false), hub, face(right, false))
	return lipgloss.JoinVertical(lipgloss.Center,
		pointer,
		face(top, landed),
		middle,
		face(bottom, false),
	)
}
