// Package game runs one player's session: spin the wheel, answer the
// question it lands on, see feedback, spin again.
package game

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/abhisek/mathwheel/internal/quiz"
	"github.com/abhisek/mathwheel/internal/store"
	"github.com/abhisek/mathwheel/internal/wheel"
)

// Phase is where the game is in its loop.
type Phase int

const (
	PhaseReady Phase = iota
	PhaseSpinning
	PhaseAnswering
	PhaseFeedback
)

func (p Phase) String() string {
	switch p {
	case PhaseReady:
		return "ready"
	case PhaseSpinning:
		return "spinning"
	case PhaseAnswering:
		return "answering"
	case PhaseFeedback:
		return "feedback"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

var (
	// ErrWrongPhase is returned when an action does not fit the current phase.
	ErrWrongPhase = errors.New("action not allowed in this phase")
	// ErrNotAnOption is returned when an answer is not one of the options.
	ErrNotAnOption = errors.New("answer is not one of the options")
)

// Recorder receives every answered round.
type Recorder interface {
	AppendRound(ctx context.Context, r *store.Round) error
}

// Outcome is the result of one answer.
type Outcome struct {
	Correct bool `json:"correct"`
	Chosen  int  `json:"chosen"`
	Answer  int  `json:"answer"`
}

// Options configures a Game. Zero values pick defaults.
type Options struct {
	Questions   *quiz.Generator
	Wheel       wheel.Source
	OptionCount int
	Recorder    Recorder
	SessionID   string
	Log         zerolog.Logger

	// Only makes every spin land on one operation when valid.
	Only wheel.Operation
}

// Game holds session state. It is not safe for concurrent use.
type Game struct {
	questions   *quiz.Generator
	wheel       wheel.Source
	optionCount int
	recorder    Recorder
	sessionID   string
	log         zerolog.Logger
	only        wheel.Operation

	phase      Phase
	score      int
	streak     int
	bestStreak int
	answered   int
	spin       wheel.SpinResult
	round      quiz.Round
	outcome    Outcome
}

// New creates a Game in PhaseReady.
func New(opts Options) *Game {
	g := &Game{
		questions:   opts.Questions,
		wheel:       opts.Wheel,
		optionCount: opts.OptionCount,
		recorder:    opts.Recorder,
		sessionID:   opts.SessionID,
		log:         opts.Log,
		only:        opts.Only,
	}
	if g.questions == nil {
		g.questions = quiz.New(nil)
	}
	if g.wheel == nil {
		g.wheel = wheel.DefaultSource
	}
	if g.optionCount < 2 {
		g.optionCount = quiz.OptionCount
	}
	g.optionCount = min(g.optionCount, quiz.MaxOptionCount)
	if g.sessionID == "" {
		g.sessionID = uuid.NewString()
	}
	return g
}

// Spin starts a spin. Allowed from Ready and Feedback.
func (g *Game) Spin() (wheel.SpinResult, error) {
	if g.phase != PhaseReady && g.phase != PhaseFeedback {
		return wheel.SpinResult{}, fmt.Errorf("spin while %s: %w", g.phase, ErrWrongPhase)
	}
	if g.only.Valid() {
		g.spin = wheel.SpinTo(g.wheel, g.only)
	} else {
		g.spin = wheel.Spin(g.wheel)
	}
	g.round = quiz.Round{}
	g.outcome = Outcome{}
	g.phase = PhaseSpinning
	return g.spin, nil
}

// Land ends the spin and deals the question for the landed operation.
func (g *Game) Land() (quiz.Round, error) {
	if g.phase != PhaseSpinning {
		return quiz.Round{}, fmt.Errorf("land while %s: %w", g.phase, ErrWrongPhase)
	}
	q := g.questions.Question(g.spin.Operation)
	g.round = quiz.Round{Question: q, Options: g.questions.OptionSet(q.Answer, g.optionCount)}
	g.phase = PhaseAnswering
	return g.round, nil
}

// Answer scores value against the current question.
func (g *Game) Answer(ctx context.Context, value int) (Outcome, error) {
	if g.phase != PhaseAnswering {
		return Outcome{}, fmt.Errorf("answer while %s: %w", g.phase, ErrWrongPhase)
	}
	if !slices.Contains(g.round.Options, value) {
		return Outcome{}, fmt.Errorf("%d: %w", value, ErrNotAnOption)
	}

	q := g.round.Question
	g.outcome = Outcome{Correct: q.Check(value), Chosen: value, Answer: q.Answer}
	g.answered++
	if g.outcome.Correct {
		g.score++
		g.streak++
		g.bestStreak = max(g.bestStreak, g.streak)
	} else {
		g.streak = 0
	}
	g.phase = PhaseFeedback

	g.record(ctx)
	return g.outcome, nil
}

// AnswerIndex answers with the option at index i.
func (g *Game) AnswerIndex(ctx context.Context, i int) (Outcome, error) {
	if g.phase == PhaseAnswering && (i < 0 || i >= len(g.round.Options)) {
		return Outcome{}, fmt.Errorf("option %d: %w", i, ErrNotAnOption)
	}
	if g.phase != PhaseAnswering {
		return Outcome{}, fmt.Errorf("answer while %s: %w", g.phase, ErrWrongPhase)
	}
	return g.Answer(ctx, g.round.Options[i])
}

func (g *Game) record(ctx context.Context) {
	if g.recorder == nil {
		return
	}
	q := g.round.Question
	r := &store.Round{
		SessionID: g.sessionID,
		Operation: q.Operation,
		OperandA:  q.OperandA,
		OperandB:  q.OperandB,
		Answer:    q.Answer,
		Options:   slices.Clone(g.round.Options),
		Chosen:    g.outcome.Chosen,
		Correct:   g.outcome.Correct,
	}
	if err := g.recorder.AppendRound(ctx, r); err != nil {
		g.log.Warn().Err(err).Str("session", g.sessionID).Msg("record round")
	}
}

// Reset clears score and streak and returns to Ready. The session ID is kept.
func (g *Game) Reset() {
	g.phase = PhaseReady
	g.score = 0
	g.streak = 0
	g.bestStreak = 0
	g.answered = 0
	g.spin = wheel.SpinResult{}
	g.round = quiz.Round{}
	g.outcome = Outcome{}
}

func (g *Game) Phase() Phase               { return g.phase }
func (g *Game) Score() int                 { return g.score }
func (g *Game) Streak() int                { return g.streak }
func (g *Game) BestStreak() int            { return g.bestStreak }
func (g *Game) Answered() int              { return g.answered }
func (g *Game) SessionID() string          { return g.sessionID }
func (g *Game) LastSpin() wheel.SpinResult { return g.spin }
func (g *Game) Round() quiz.Round          { return g.round }
func (g *Game) Outcome() Outcome           { return g.outcome }
