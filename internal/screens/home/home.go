package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/router"
	"github.com/abhisek/mathwheel/internal/screen"
	"github.com/abhisek/mathwheel/internal/screens/learning"
	"github.com/abhisek/mathwheel/internal/screens/stats"
	"github.com/abhisek/mathwheel/internal/store"
	"github.com/abhisek/mathwheel/internal/ui/components"
	"github.com/abhisek/mathwheel/internal/ui/layout"
	"github.com/abhisek/mathwheel/internal/ui/theme"
)

const homeTitle = "🎡  M A T H W H E E L  🎡"

type summaryLoadedMsg struct {
	Stats *store.Stats
}

// Deps are the collaborators the home menu opens.
type Deps struct {
	// NewPlay builds a fresh game screen.
	NewPlay func() screen.Screen
	Rounds  store.RoundRepo
}

// HomeScreen is the main menu.
type HomeScreen struct {
	deps    Deps
	menu    components.Menu
	summary *store.Stats
}

var (
	_ screen.Screen  = (*HomeScreen)(nil)
	_ screen.Resumer = (*HomeScreen)(nil)
)

func push(s func() screen.Screen) func() tea.Cmd {
	return func() tea.Cmd {
		return func() tea.Msg { return router.PushScreenMsg{Screen: s()} }
	}
}

// New creates a HomeScreen.
func New(deps Deps) *HomeScreen {
	items := []components.MenuItem{
		{Label: "SPIN THE WHEEL", Action: push(deps.NewPlay), Disabled: deps.NewPlay == nil},
		{Label: "LEARN", Action: push(func() screen.Screen { return learning.New() })},
		{Label: "MY STATS", Action: push(func() screen.Screen { return stats.New(deps.Rounds) })},
		{Label: "EXIT", Action: func() tea.Cmd { return tea.Quit }},
	}
	return &HomeScreen{
		deps: deps,
		menu: components.NewMenu(items),
	}
}

func (h *HomeScreen) Init() tea.Cmd {
	if h.deps.Rounds == nil {
		return nil
	}
	rounds := h.deps.Rounds
	return func() tea.Msg {
		st, err := rounds.Stats(context.Background())
		if err != nil {
			return summaryLoadedMsg{}
		}
		return summaryLoadedMsg{Stats: st}
	}
}

// Resume reloads the summary after a game or the stats screen closes.
func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case summaryLoadedMsg:
		h.summary = msg.Stats
		return h, nil
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := layout.ContentWidth(width)

	title := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.Gold).
		Bold(true).
		Render(homeTitle)

	sections := []string{title, renderBuddies(cw)}
	if h.summary != nil && h.summary.Attempts > 0 {
		sections = append(sections, renderSummary(h.summary, cw))
	}
	sections = append(sections, h.menu.View(cw))

	return layout.Cabinet(strings.Join(sections, "\n\n"), width, height)
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func renderBuddies(cw int) string {
	parts := make([]string, 0, 4)
	for _, l := range lessons.All() {
		parts = append(parts, lipgloss.NewStyle().
			Foreground(theme.Operation(l.Operation)).
			Render(l.Character+" "+l.Operation.Symbol()))
	}
	return lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(strings.Join(parts, "   "))
}

func renderSummary(st *store.Stats, cw int) string {
	line := fmt.Sprintf("⭐ %d correct   🔥 best streak %d   🎯 %d%%",
		st.Correct, st.BestStreak, int(st.Accuracy()*100))
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Accent).
		Foreground(theme.Text).
		Render(line)
}
