package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathwheel/internal/router"
	"github.com/abhisek/mathwheel/internal/screen"
	"github.com/abhisek/mathwheel/internal/screens/learning"
	"github.com/abhisek/mathwheel/internal/store"
)

type stubScreen struct{}

func (s *stubScreen) Init() tea.Cmd                          { return nil }
func (s *stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s *stubScreen) View(int, int) string                   { return "play" }
func (s *stubScreen) Title() string                          { return "Play" }

type statsRepo struct{ st *store.Stats }

func (r statsRepo) AppendRound(context.Context, *store.Round) error { return nil }
func (r statsRepo) Reset(context.Context) error                     { return nil }
func (r statsRepo) Stats(context.Context) (*store.Stats, error)     { return r.st, nil }
func (r statsRepo) RecentRounds(context.Context, int) ([]store.Round, error) {
	return nil, nil
}

var enter = tea.KeyPressMsg{Code: tea.KeyEnter}

func TestSpinOpensPlay(t *testing.T) {
	h := New(Deps{NewPlay: func() screen.Screen { return &stubScreen{} }})

	_, cmd := h.Update(enter)
	if cmd == nil {
		t.Fatal("enter on first item should push a screen")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatalf("got %T, want PushScreenMsg", cmd())
	}
	if msg.Screen.Title() != "Play" {
		t.Errorf("pushed %q", msg.Screen.Title())
	}
}

func TestLearnOpensGuide(t *testing.T) {
	h := New(Deps{NewPlay: func() screen.Screen { return &stubScreen{} }})
	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})

	_, cmd := h.Update(enter)
	msg := cmd().(router.PushScreenMsg)
	if _, ok := msg.Screen.(*learning.LearningScreen); !ok {
		t.Errorf("pushed %T, want *learning.LearningScreen", msg.Screen)
	}
}

func TestSpinDisabledWithoutGame(t *testing.T) {
	h := New(Deps{})
	if h.menu.Selected != 1 {
		t.Errorf("selected = %d, want first enabled item", h.menu.Selected)
	}
}

func TestSummaryShown(t *testing.T) {
	h := New(Deps{
		NewPlay: func() screen.Screen { return &stubScreen{} },
		Rounds:  statsRepo{st: &store.Stats{Attempts: 4, Correct: 3, BestStreak: 2}},
	})
	if strings.Contains(h.View(100, 40), "best streak") {
		t.Error("summary shown before load")
	}

	cmd := h.Init()
	if cmd == nil {
		t.Fatal("expected summary load")
	}
	h.Update(cmd())
	view := h.View(100, 40)
	if !strings.Contains(view, "best streak 2") || !strings.Contains(view, "75%") {
		t.Errorf("summary missing from view:\n%s", view)
	}
}

func TestResumeReloadsSummary(t *testing.T) {
	h := New(Deps{Rounds: statsRepo{st: &store.Stats{Attempts: 3, Correct: 2}}})

	cmd := h.Resume()
	if cmd == nil {
		t.Fatal("resume with a store should reload the summary")
	}
	loaded, ok := cmd().(summaryLoadedMsg)
	if !ok || loaded.Stats == nil || loaded.Stats.Attempts != 3 {
		t.Fatalf("got %#v", cmd())
	}

	if New(Deps{}).Resume() != nil {
		t.Error("resume without a store should be a no-op")
	}
}
