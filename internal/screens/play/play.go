// Package play is the spin-and-solve screen.
package play

import (
	"context"
	"fmt"
	"time"

	"charm.land/bubbles/v2/key"
	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathwheel/internal/game"
	"github.com/abhisek/mathwheel/internal/lessons"
	"github.com/abhisek/mathwheel/internal/screen"
	"github.com/abhisek/mathwheel/internal/ui/components"
	"github.com/abhisek/mathwheel/internal/ui/layout"
	"github.com/abhisek/mathwheel/internal/wheel"
)

const (
	frameInterval = 33 * time.Millisecond
	storyInterval = 250 * time.Millisecond
)

type keyMap struct {
	Spin    key.Binding
	NewGame key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Spin:    key.NewBinding(key.WithKeys("space", "enter", "s"), key.WithHelp("Space", "Spin")),
		NewGame: key.NewBinding(key.WithKeys("n"), key.WithHelp("N", "New game")),
	}
}

// Deps wires the screen to the game and optional story service.
type Deps struct {
	Game         *game.Game
	Stories      *lessons.Service
	SpinDuration time.Duration
	Log          zerolog.Logger
}

// PlayScreen drives one game: spin animation, question, feedback.
type PlayScreen struct {
	ctx     context.Context
	game    *game.Game
	stories *lessons.Service
	log     zerolog.Logger
	keys    keyMap

	spinDuration time.Duration
	spin         wheel.SpinResult
	elapsed      time.Duration
	angle        float64

	picker       components.OptionPicker
	story        *lessons.Story
	storyWaiting bool
	errMsg       string
}

var (
	_ screen.Screen          = (*PlayScreen)(nil)
	_ screen.KeyHintProvider = (*PlayScreen)(nil)
	_ screen.ScoreProvider   = (*PlayScreen)(nil)
)

// New creates a PlayScreen. A nil Game starts a fresh one.
func New(ctx context.Context, deps Deps) *PlayScreen {
	g := deps.Game
	if g == nil {
		g = game.New(game.Options{Log: deps.Log})
	}
	return &PlayScreen{
		ctx:          ctx,
		game:         g,
		stories:      deps.Stories,
		log:          deps.Log,
		keys:         defaultKeys(),
		spinDuration: deps.SpinDuration,
	}
}

func (s *PlayScreen) Init() tea.Cmd {
	return nil
}

func (s *PlayScreen) Title() string {
	return "Spin & Solve"
}

func (s *PlayScreen) Scores() layout.Scores {
	return layout.Scores{Score: s.game.Score(), Streak: s.game.Streak()}
}

func (s *PlayScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case spinTickMsg:
		return s, s.advanceSpin()

	case storyTickMsg:
		return s, s.pollStory()

	case components.OptionChosenMsg:
		return s, s.answer(msg)

	case tea.KeyPressMsg:
		return s, s.handleKey(msg)
	}
	return s, nil
}

func (s *PlayScreen) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch s.game.Phase() {
	case game.PhaseReady, game.PhaseFeedback:
		switch {
		case key.Matches(msg, s.keys.Spin):
			return s.startSpin()
		case key.Matches(msg, s.keys.NewGame):
			s.game.Reset()
			s.resetRound()
			s.angle = 0
		}

	case game.PhaseSpinning:
		// Any key skips the rest of the animation.
		s.elapsed = s.spinDuration
		return s.advanceSpin()

	case game.PhaseAnswering:
		var cmd tea.Cmd
		s.picker, cmd = s.picker.Update(msg)
		return cmd
	}
	return nil
}

func (s *PlayScreen) resetRound() {
	s.picker = components.OptionPicker{}
	s.story = nil
	s.storyWaiting = false
	s.errMsg = ""
}

func (s *PlayScreen) startSpin() tea.Cmd {
	res, err := s.game.Spin()
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	s.resetRound()
	s.spin = res
	s.elapsed = 0
	s.angle = 0
	s.log.Debug().
		Float64("degrees", res.Degrees).
		Str("operation", res.Operation.Name()).
		Msg("spin")
	return s.advanceSpin()
}

func (s *PlayScreen) advanceSpin() tea.Cmd {
	if s.game.Phase() != game.PhaseSpinning {
		return nil
	}
	if s.spinDuration <= 0 || s.elapsed >= s.spinDuration {
		s.angle = s.spin.Degrees
		s.land()
		return nil
	}

	progress := float64(s.elapsed) / float64(s.spinDuration)
	s.angle = s.spin.Degrees * wheel.EaseOutCubic(progress)
	s.elapsed += frameInterval
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return spinTickMsg(t)
	})
}

func (s *PlayScreen) land() {
	round, err := s.game.Land()
	if err != nil {
		s.errMsg = err.Error()
		return
	}
	s.picker = components.NewOptionPicker(round.Options)
}

func (s *PlayScreen) answer(msg components.OptionChosenMsg) tea.Cmd {
	out, err := s.game.AnswerIndex(s.ctx, msg.Index)
	if err != nil {
		s.errMsg = err.Error()
		return nil
	}
	round := s.game.Round()
	s.picker = s.picker.Reveal(round.CorrectIndex())

	if out.Correct || !s.stories.Enabled() {
		return nil
	}
	s.stories.RequestStory(s.ctx, lessons.StoryInput{Question: round.Question, Chosen: out.Chosen})
	s.storyWaiting = true
	return s.storyTick()
}

func (s *PlayScreen) storyTick() tea.Cmd {
	return tea.Tick(storyInterval, func(t time.Time) tea.Msg {
		return storyTickMsg(t)
	})
}

func (s *PlayScreen) pollStory() tea.Cmd {
	if !s.storyWaiting {
		return nil
	}
	story, ok := s.stories.ConsumeStory()
	if !ok {
		return s.storyTick()
	}
	s.story = story
	s.storyWaiting = false
	return nil
}

func (s *PlayScreen) KeyHints() []layout.KeyHint {
	switch s.game.Phase() {
	case game.PhaseSpinning:
		return []layout.KeyHint{{Key: "Any key", Description: "Skip"}}
	case game.PhaseAnswering:
		return []layout.KeyHint{
			{Key: fmt.Sprintf("1-%d", len(s.game.Round().Options)), Description: "Answer"},
			{Key: "←↑↓→", Description: "Move"},
			{Key: "Enter", Description: "Choose"},
			{Key: "Esc", Description: "Back"},
		}
	}
	return []layout.KeyHint{
		{Key: s.keys.Spin.Help().Key, Description: s.keys.Spin.Help().Desc},
		{Key: s.keys.NewGame.Help().Key, Description: s.keys.NewGame.Help().Desc},
		{Key: "Esc", Description: "Back"},
	}
}
