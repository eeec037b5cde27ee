package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathwheel/internal/router"
	"github.com/abhisek/mathwheel/internal/screens/play"
	"github.com/abhisek/mathwheel/internal/screens/welcome"
)

func newTestModel(startPlaying bool) AppModel {
	return newAppModel(context.Background(), Options{
		Log:          zerolog.Nop(),
		StartPlaying: startPlaying,
	})
}

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestStartsOnWelcome(t *testing.T) {
	m := newTestModel(false)
	if _, ok := m.router.Active().(*welcome.WelcomeScreen); !ok {
		t.Fatalf("active = %T, want welcome", m.router.Active())
	}
	if m.Init() == nil {
		t.Error("welcome should start its animation")
	}
}

func TestStartPlaying(t *testing.T) {
	m := sized(newTestModel(true))
	if _, ok := m.router.Active().(*play.PlayScreen); !ok {
		t.Fatalf("active = %T, want play", m.router.Active())
	}
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want home under play", m.router.Depth())
	}

	view := m.render()
	if !strings.Contains(view, "Spin & Solve") {
		t.Error("header should show the play title")
	}
	if !strings.Contains(view, "⭐ 0") {
		t.Error("header should show the score")
	}
}

func TestEscPops(t *testing.T) {
	m := newTestModel(true)
	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Fatal("esc should pop")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Errorf("got %T, want PopScreenMsg", cmd())
	}
}

func TestCtrlCQuits(t *testing.T) {
	m := newTestModel(false)
	_, cmd := m.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Errorf("got %T, want QuitMsg", cmd())
	}
}

func TestTooSmall(t *testing.T) {
	m := newTestModel(false)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 30, Height: 10})
	if !strings.Contains(updated.(AppModel).render(), "Terminal too small") {
		t.Error("expected the min size message")
	}
}
