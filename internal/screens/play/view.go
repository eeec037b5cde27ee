package play

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwheel/internal/game"
	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/ui/components"
	"github.com/abhisek/mathwheel/internal/ui/layout"
	"github.com/abhisek/mathwheel/internal/ui/theme"
)

func (s *PlayScreen) View(width, height int) string {
	phase := s.game.Phase()
	wheelArt := components.Wheel(s.angle, phase >= game.PhaseAnswering)

	panelWidth := layout.ContentWidth(width / 2)
	if layout.IsCompact(width, height) {
		panelWidth = layout.ContentWidth(width)
	}
	panel := s.renderPanel(panelWidth)

	var body string
	if layout.IsCompact(width, height) {
		if phase == game.PhaseAnswering || phase == game.PhaseFeedback {
			body = panel
		} else {
			body = lipgloss.JoinVertical(lipgloss.Center, wheelArt, "", panel)
		}
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Center, wheelArt, "    ", panel)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, body)
}

func (s *PlayScreen) renderPanel(width int) string {
	var sections []string

	switch s.game.Phase() {
	case game.PhaseReady:
		sections = append(sections,
			theme.Title.Width(width).Render("Ready?"),
			"",
			theme.Subtitle.Width(width).Render("Press SPACE to spin the wheel!"),
		)

	case game.PhaseSpinning:
		sections = append(sections,
			theme.Title.Width(width).Render("Spinning..."),
		)

	case game.PhaseAnswering:
		sections = append(sections, s.renderQuestion(width), "", s.picker.View(width/2-2))

	case game.PhaseFeedback:
		sections = append(sections,
			s.renderQuestion(width),
			"",
			s.picker.View(width/2-2),
			"",
			s.renderFeedback(width),
		)
	}

	if s.errMsg != "" {
		sections = append(sections, "", theme.Incorrect.Render(s.errMsg))
	}
	return lipgloss.NewStyle().Width(width).Render(strings.Join(sections, "\n"))
}

func (s *PlayScreen) renderQuestion(width int) string {
	q := s.game.Round().Question
	l := lessons.For(q.Operation)

	label := lipgloss.NewStyle().
		Foreground(theme.Operation(q.Operation)).
		Bold(true).
		Render(fmt.Sprintf("%s %s", l.Character, l.Title))

	text := lipgloss.NewStyle().
		Foreground(theme.Text).
		Bold(true).
		Render(q.Text())

	return theme.Card.
		Width(width).
		Align(lipgloss.Center).
		BorderForeground(theme.Operation(q.Operation)).
		Render(label + "\n\n" + text)
}

func (s *PlayScreen) renderFeedback(width int) string {
	out := s.game.Outcome()
	q := s.game.Round().Question

	if out.Correct {
		return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(
			theme.Correct.Render("🎉 "+lessons.PraiseTitle) + "\n" +
				theme.Body.Render(lessons.PraiseMessage) + "\n\n" +
				theme.Hint.Render("SPACE to spin again"))
	}

	lines := []string{
		theme.Incorrect.Render("💪 " + lessons.EncouragementTitle),
		theme.Body.Render(fmt.Sprintf("The answer is %d:  %s", q.Answer, q.Equation())),
		"",
	}
	switch {
	case s.story != nil:
		lines = append(lines, theme.Body.Render(s.story.Text()))
	case s.storyWaiting:
		l := lessons.For(q.Operation)
		lines = append(lines, theme.Hint.Render(fmt.Sprintf("%s %s is thinking of a story...", l.Character, l.Buddy)))
	default:
		l := lessons.For(q.Operation)
		lines = append(lines, theme.Body.Render(fmt.Sprintf("%s %s says: %s", l.Character, l.Buddy, l.Tip)))
	}
	lines = append(lines, "", theme.Hint.Render("SPACE to spin again"))

	return lipgloss.NewStyle().Width(width).Render(strings.Join(lines, "\n"))
}
