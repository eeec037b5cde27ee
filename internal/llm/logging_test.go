package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/abhisek/mathwheel/internal/store"
)

type recordingRepo struct {
	store.EventRepo
	mu     sync.Mutex
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, data)
	return r.err
}

func TestLoggingProvider_RecordsSuccess(t *testing.T) {
	repo := &recordingRepo{}
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{"title":"t"}`), Usage: Usage{InputTokens: 3, OutputTokens: 4}})
	var buf bytes.Buffer
	p := WithLogging(mock, ProviderMock, repo, zerolog.New(&buf).Level(zerolog.DebugLevel))

	ctx := WithPurpose(context.Background(), PurposeBuddyStory)
	if _, err := p.Generate(ctx, Prompt("be kind", "story", storySchema(), 100)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("events = %d", len(repo.events))
	}
	e := repo.events[0]
	if e.Provider != "mock" || e.Model != "mock" || e.Purpose != PurposeBuddyStory || !e.Success {
		t.Errorf("event = %+v", e)
	}
	if e.InputTokens != 3 || e.OutputTokens != 4 || e.ResponseBody != `{"title":"t"}` {
		t.Errorf("event usage/body = %+v", e)
	}
	for _, part := range []string{"[system]\nbe kind", "[user]\nstory", "[schema: adapter-story]"} {
		if !strings.Contains(e.RequestBody, part) {
			t.Errorf("request body missing %q:\n%s", part, e.RequestBody)
		}
	}
	if !strings.Contains(buf.String(), `"purpose":"buddy-story"`) {
		t.Errorf("log = %s", buf.String())
	}
	if p.ModelID() != "mock" {
		t.Errorf("model = %q", p.ModelID())
	}
}

func TestLoggingProvider_RecordsFailure(t *testing.T) {
	repo := &recordingRepo{err: errors.New("disk full")}
	mock := NewMockProvider(MockResponse{Err: &ErrRateLimit{Err: errors.New("429")}})
	var buf bytes.Buffer
	p := WithLogging(mock, ProviderMock, repo, zerolog.New(&buf))

	_, err := p.Generate(context.Background(), Request{})
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit to pass through, got %v", err)
	}
	if len(repo.events) != 1 || repo.events[0].Success || repo.events[0].ErrorMessage == "" {
		t.Fatalf("events = %+v", repo.events)
	}
	if repo.events[0].Purpose != PurposeUnknown {
		t.Errorf("purpose = %q", repo.events[0].Purpose)
	}
	if !strings.Contains(buf.String(), "disk full") {
		t.Errorf("repo failure not logged: %s", buf.String())
	}
}

func TestLoggingProvider_NilRepo(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`{}`)})
	p := WithLogging(mock, ProviderMock, nil, zerolog.Nop())
	if _, err := p.Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, zerolog.Nop())
	if err != nil || p.ModelID() != "mock" {
		t.Fatalf("mock provider = %v, %v", p, err)
	}

	if _, err := NewProvider(context.Background(), Config{Provider: "nope"}, nil, zerolog.Nop()); err == nil {
		t.Fatal("expected unknown provider error")
	}
	if _, err := NewProvider(context.Background(), Config{Provider: ProviderAnthropic}, nil, zerolog.Nop()); err == nil {
		t.Fatal("expected missing key error")
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "sk-test"
	p, err = NewProvider(context.Background(), cfg, nil, zerolog.Nop())
	if err != nil {
		t.Fatalf("openai provider: %v", err)
	}
	if _, ok := p.(*TimeoutProvider); !ok {
		t.Fatalf("expected timeout wrapper outermost, got %T", p)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
