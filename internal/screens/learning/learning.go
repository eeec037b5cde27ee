// Package learning flips through the how-to-play guide and the lesson
// card for each operation.
package learning

import (
	"fmt"
	"strings"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/screen"
	"github.com/abhisek/mathwheel/internal/ui/layout"
	"github.com/abhisek/mathwheel/internal/ui/theme"
	"github.com/abhisek/mathwheel/internal/wheel"
)

type keyMap struct {
	Prev key.Binding
	Next key.Binding
}

// LearningScreen shows one card at a time. Page 0 is the guide.
type LearningScreen struct {
	cards []lessons.Lesson
	page  int
	keys  keyMap
}

var _ screen.Screen = (*LearningScreen)(nil)
var _ screen.KeyHintProvider = (*LearningScreen)(nil)

// New opens on the guide.
func New() *LearningScreen {
	return &LearningScreen{
		cards: lessons.All(),
		keys: keyMap{
			Prev: key.NewBinding(key.WithKeys("left", "h", "up", "k"), key.WithHelp("←", "Prev")),
			Next: key.NewBinding(key.WithKeys("right", "l", "down", "j", "space", "enter"), key.WithHelp("→", "Next")),
		},
	}
}

// NewAt opens on the card for op.
func NewAt(op wheel.Operation) *LearningScreen {
	s := New()
	for i, c := range s.cards {
		if c.Operation == op {
			s.page = i + 1
		}
	}
	return s
}

func (s *LearningScreen) pages() int {
	return len(s.cards) + 1
}

func (s *LearningScreen) Init() tea.Cmd {
	return nil
}

func (s *LearningScreen) Title() string {
	if s.page == 0 {
		return "How to Play"
	}
	return "Learn: " + s.cards[s.page-1].Title
}

func (s *LearningScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "←→", Description: "Flip"},
		{Key: "0-4", Description: "Jump"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LearningScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return s, nil
	}

	switch {
	case key.Matches(kmsg, s.keys.Prev):
		s.page = (s.page - 1 + s.pages()) % s.pages()
	case key.Matches(kmsg, s.keys.Next):
		s.page = (s.page + 1) % s.pages()
	default:
		k := kmsg.String()
		if len(k) == 1 && k[0] >= '0' && int(k[0]-'0') < s.pages() {
			s.page = int(k[0] - '0')
		}
	}
	return s, nil
}

func (s *LearningScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	var card string
	if s.page == 0 {
		card = renderGuide(cw)
	} else {
		card = renderLesson(s.cards[s.page-1], cw)
	}

	dots := make([]string, s.pages())
	for i := range dots {
		if i == s.page {
			dots[i] = lipgloss.NewStyle().Foreground(theme.Gold).Render("●")
		} else {
			dots[i] = lipgloss.NewStyle().Foreground(theme.TextDim).Render("○")
		}
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		card+"\n\n"+lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(dots, " ")))
}

func renderGuide(cw int) string {
	g := lessons.Guide
	lines := []string{
		theme.Title.Render("🎡 How to Play"),
		"",
		theme.Body.Render(g.Intro),
		"",
	}
	for i, step := range g.Steps {
		lines = append(lines, theme.Body.Render(fmt.Sprintf("%d. %s", i+1, step)))
	}
	lines = append(lines, "")
	for _, sc := range g.Scoring {
		lines = append(lines, theme.Body.Render(sc))
	}
	lines = append(lines, "", theme.Hint.Render("💡 "+g.Tip))

	return theme.Card.
		Width(cw).
		BorderForeground(theme.Primary).
		Render(strings.Join(lines, "\n"))
}

func renderLesson(l lessons.Lesson, cw int) string {
	accent := theme.Operation(l.Operation)
	heading := lipgloss.NewStyle().Foreground(accent).Bold(true)

	lines := []string{
		heading.Render(fmt.Sprintf("%s %s %s", l.Emoji, l.Title, l.Operation.Symbol())),
		theme.Body.Render(l.Description),
		"",
		heading.Render("Example"),
		theme.Body.Bold(true).Render(l.Example),
		"",
		heading.Render(fmt.Sprintf("%s %s's story", l.Character, l.Buddy)),
		theme.Body.Render(l.Story),
		"",
		heading.Render("💡 Tip"),
		theme.Body.Render(l.Tip),
	}
	return theme.Card.
		Width(cw).
		BorderForeground(accent).
		Render(strings.Join(lines, "\n"))
}
