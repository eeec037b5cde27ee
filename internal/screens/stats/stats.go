// Package stats shows accuracy per operation and recent rounds.
package stats

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwheel/internal/screen"
	"github.com/abhisek/mathwheel/internal/store"
	"github.com/abhisek/mathwheel/internal/ui/components"
	"github.com/abhisek/mathwheel/internal/ui/layout"
	"github.com/abhisek/mathwheel/internal/ui/theme"
)

const recentLimit = 20

type statsLoadedMsg struct {
	Stats  *store.Stats
	Rounds []store.Round
	Err    error
}

// StatsScreen displays aggregate play statistics.
type StatsScreen struct {
	rounds   store.RoundRepo
	stats    *store.Stats
	recent   []store.Round
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

// New creates a StatsScreen reading from rounds. A nil repo shows a notice.
func New(rounds store.RoundRepo) *StatsScreen {
	return &StatsScreen{rounds: rounds}
}

func (s *StatsScreen) Init() tea.Cmd {
	if s.rounds == nil {
		return func() tea.Msg { return statsLoadedMsg{Err: fmt.Errorf("no database configured")} }
	}
	return func() tea.Msg {
		ctx := context.Background()
		st, err := s.rounds.Stats(ctx)
		if err != nil {
			return statsLoadedMsg{Err: err}
		}
		recent, err := s.rounds.RecentRounds(ctx, recentLimit)
		if err != nil {
			return statsLoadedMsg{Stats: st, Err: err}
		}
		return statsLoadedMsg{Stats: st, Rounds: recent}
	}
}

func (s *StatsScreen) Title() string {
	return "My Stats"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Scroll"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		}
		s.stats = msg.Stats
		s.recent = msg.Rounds
		s.loaded = true
		return s, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.recent)-1 {
				s.selected++
			}
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	if !s.loaded {
		return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
			theme.Hint.Render("Loading..."))
	}

	cw := layout.ContentWidth(width)
	var sections []string

	if s.errMsg != "" {
		sections = append(sections, theme.Incorrect.Render(s.errMsg))
	}
	if s.stats != nil {
		sections = append(sections, renderTotals(s.stats, cw), "", renderOperations(s.stats, cw))
	}
	if len(s.recent) > 0 {
		sections = append(sections, "", renderRecent(s.recent, s.selected, cw, height-18))
	} else if s.errMsg == "" {
		sections = append(sections, "", theme.Hint.Render("No rounds yet. Spin the wheel to get started!"))
	}

	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		strings.Join(sections, "\n"))
}

func renderTotals(st *store.Stats, cw int) string {
	gold := lipgloss.NewStyle().Foreground(theme.Gold).Bold(true)
	pink := lipgloss.NewStyle().Foreground(theme.Accent).Bold(true)
	line := fmt.Sprintf("%s   %s   %s",
		gold.Render(fmt.Sprintf("⭐ %d/%d correct", st.Correct, st.Attempts)),
		pink.Render(fmt.Sprintf("🔥 best %d", st.BestStreak)),
		theme.Body.Render(fmt.Sprintf("🎮 %d games", st.Sessions)),
	)
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Primary).
		Render(line)
}

func renderOperations(st *store.Stats, cw int) string {
	rows := make([]string, 0, len(st.ByOperation))
	for _, os := range st.ByOperation {
		label := fmt.Sprintf("%s %-14s %3d/%-3d", os.Operation.Symbol(), os.Operation.Name(), os.Correct, os.Attempts)
		bar := components.NewProgressBar(label, os.Accuracy(), true, cw)
		bar.Fill = theme.Operation(os.Operation)
		rows = append(rows, bar.View())
	}
	return strings.Join(rows, "\n")
}

func renderRecent(rounds []store.Round, selected, cw, maxRows int) string {
	maxRows = max(maxRows, 3)
	start := 0
	if selected >= maxRows {
		start = selected - maxRows + 1
	}
	end := min(start+maxRows, len(rounds))

	rows := []string{theme.Subtitle.Render("Recent rounds")}
	for i := start; i < end; i++ {
		r := rounds[i]
		mark := theme.Correct.Render("✔")
		if !r.Correct {
			mark = theme.Incorrect.Render("✘")
		}
		line := fmt.Sprintf("%s  %d %s %d = %d   you said %d   %s",
			mark, r.OperandA, r.Operation.Symbol(), r.OperandB, r.Answer, r.Chosen,
			r.CreatedAt.Local().Format("Jan 2 15:04"))
		style := theme.Unselected
		if i == selected {
			style = theme.Selected
			line = "▸ " + line
		} else {
			line = "  " + line
		}
		rows = append(rows, style.Width(cw).Render(line))
	}
	return strings.Join(rows, "\n")
}
