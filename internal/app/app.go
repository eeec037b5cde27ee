// Package app hosts the Bubble Tea program and its screen stack.
package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathwheel/internal/game"
	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/quiz"
	"github.com/abhisek/mathwheel/internal/router"
	"github.com/abhisek/mathwheel/internal/screen"
	"github.com/abhisek/mathwheel/internal/screens/home"
	"github.com/abhisek/mathwheel/internal/screens/play"
	"github.com/abhisek/mathwheel/internal/screens/welcome"
	"github.com/abhisek/mathwheel/internal/store"
	"github.com/abhisek/mathwheel/internal/ui/layout"
)

// Options wires the TUI to storage, stories and game tuning.
type Options struct {
	Rounds       store.RoundRepo
	Stories      *lessons.Service
	Questions    *quiz.Generator
	OptionCount  int
	SpinDuration time.Duration
	Log          zerolog.Logger

	// StartPlaying skips the welcome and home screens.
	StartPlaying bool
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	width  int
	height int
}

func newAppModel(ctx context.Context, opts Options) AppModel {
	newPlay := func() screen.Screen {
		g := game.New(game.Options{
			Questions:   opts.Questions,
			OptionCount: opts.OptionCount,
			Recorder:    recorder(opts.Rounds),
			Log:         opts.Log,
		})
		opts.Log.Info().Str("session", g.SessionID()).Msg("game started")
		return play.New(ctx, play.Deps{
			Game:         g,
			Stories:      opts.Stories,
			SpinDuration: opts.SpinDuration,
			Log:          opts.Log,
		})
	}
	newHome := func() screen.Screen {
		return home.New(home.Deps{NewPlay: newPlay, Rounds: opts.Rounds})
	}

	if opts.StartPlaying {
		r := router.New(newHome())
		r.Push(newPlay())
		return AppModel{router: r}
	}
	return AppModel{router: router.New(welcome.New(newHome))}
}

// recorder avoids handing a typed nil to the game.
func recorder(rounds store.RoundRepo) game.Recorder {
	if rounds == nil {
		return nil
	}
	return rounds
}

func (m AppModel) Init() tea.Cmd {
	if active := m.router.Active(); active != nil {
		return active.Init()
	}
	return nil
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyPressMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			if m.router.Depth() > 1 {
				return m, func() tea.Msg { return router.PopScreenMsg{} }
			}
			return m, nil
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	if m.width == 0 || m.height == 0 {
		return v
	}
	v.SetContent(m.render())
	return v
}

// render draws the full frame for the current size.
func (m AppModel) render() string {
	if layout.IsTooSmall(m.width, m.height) {
		return layout.RenderMinSizeMessage(m.width, m.height)
	}

	active := m.router.Active()
	title := ""
	var scores *layout.Scores
	if active != nil {
		title = active.Title()
		if sp, ok := active.(screen.ScoreProvider); ok {
			s := sp.Scores()
			scores = &s
		}
	}

	header := layout.RenderHeader(title, scores, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	contentHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	content := m.router.View(m.width, contentHeight)

	return layout.RenderFrame(header, content, footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), layout.KeyHint{Key: "Ctrl+C", Description: "Quit"})
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(ctx context.Context, opts Options) error {
	p := tea.NewProgram(newAppModel(ctx, opts), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
