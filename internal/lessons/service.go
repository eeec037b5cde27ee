package lessons

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/abhisek/mathwheel/internal/llm"
	"github.com/abhisek/mathwheel/internal/quiz"
)

// StoryInput describes a missed question.
type StoryInput struct {
	Question quiz.Question
	Chosen   int
}

// Story is a buddy explanation for a missed question.
type Story struct {
	Title string   `json:"title"`
	Body  string   `json:"story"`
	Steps []string `json:"steps"`

	// Fallback is set when the story came from the static card.
	Fallback bool `json:"-"`
}

// Text renders the story for plain-text output.
func (s Story) Text() string {
	var b strings.Builder
	b.WriteString(s.Title)
	b.WriteString("\n\n")
	b.WriteString(s.Body)
	for i, step := range s.Steps {
		fmt.Fprintf(&b, "\n%d. %s", i+1, step)
	}
	return b.String()
}

// FallbackStory builds a story from the static card for in.
func FallbackStory(in StoryInput) Story {
	l := For(in.Question.Operation)
	return Story{
		Title:    fmt.Sprintf("%s %s's tip", l.Character, l.Buddy),
		Body:     l.Tip,
		Steps:    []string{in.Question.Equation()},
		Fallback: true,
	}
}

// Service generates buddy stories in the background. Only the most recent
// request is kept; results of older requests are dropped.
type Service struct {
	provider llm.Provider
	cfg      Config
	log      zerolog.Logger

	mu      sync.Mutex
	gen     int
	pending *Story
	ready   bool
}

// NewService creates a story service. A nil provider makes every story a
// fallback.
func NewService(provider llm.Provider, cfg Config, log zerolog.Logger) *Service {
	return &Service{provider: provider, cfg: cfg, log: log}
}

// Enabled reports whether an LLM provider is configured.
func (s *Service) Enabled() bool {
	return s != nil && s.provider != nil
}

// RequestStory starts generating a story for in.
func (s *Service) RequestStory(ctx context.Context, in StoryInput) {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.pending = nil
	s.ready = false
	s.mu.Unlock()

	go func() {
		story := s.Story(ctx, in)

		s.mu.Lock()
		defer s.mu.Unlock()
		if gen != s.gen {
			return
		}
		s.pending = &story
		s.ready = true
	}()
}

// ConsumeStory returns the finished story, clearing it. It returns
// (nil, false) while generation is still running.
func (s *Service) ConsumeStory() (*Story, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.ready {
		return nil, false
	}
	story := s.pending
	s.pending = nil
	s.ready = false
	return story, true
}

// Story generates a story synchronously, falling back to the static card
// when the provider is missing or fails.
func (s *Service) Story(ctx context.Context, in StoryInput) Story {
	if !s.Enabled() {
		return FallbackStory(in)
	}
	story, err := s.generate(ctx, in)
	if err != nil {
		s.log.Warn().Err(err).
			Str("operation", in.Question.Operation.Name()).
			Msg("buddy story unavailable, using lesson tip")
		return FallbackStory(in)
	}
	return *story
}

func (s *Service) generate(ctx context.Context, in StoryInput) (*Story, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeBuddyStory)

	req := llm.Prompt(storySystemPrompt, buildStoryUserMessage(in), StorySchema, s.cfg.MaxTokens)
	req.Temperature = s.cfg.Temperature

	resp, err := s.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("buddy story generation: %w", err)
	}

	var out Story
	if err := resp.Decode(&out); err != nil {
		return nil, fmt.Errorf("parse buddy story: %w", err)
	}
	if strings.TrimSpace(out.Title) == "" || strings.TrimSpace(out.Body) == "" {
		return nil, fmt.Errorf("buddy story is empty")
	}
	return &out, nil
}
