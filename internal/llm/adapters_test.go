package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/anthropics/anthropic-sdk-go/option"
	"google.golang.org/genai"
)

func storySchema() *Schema {
	return &Schema{
		Name: "adapter-story",
		Definition: map[string]any{
			"type":     "object",
			"required": []string{"title"},
			"properties": map[string]any{
				"title": map[string]any{"type": "string"},
			},
		},
	}
}

func jsonHandler(status int, body any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_ = json.NewEncoder(w).Encode(body)
	}
}

func newTestAnthropic(t *testing.T, h http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewAnthropicProvider(AnthropicConfig{APIKey: "test-key", Model: "claude-haiku"}, option.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func anthropicMessage(text, stop string) map[string]any {
	return map[string]any{
		"id":          "msg_test",
		"type":        "message",
		"role":        "assistant",
		"content":     []map[string]any{{"type": "text", "text": text}},
		"model":       "claude-haiku-4-5",
		"stop_reason": stop,
		"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"title":"Max's Mix"}`, "end_turn")))
	if p.ModelID() != "claude-haiku-4-5" {
		t.Fatalf("model alias not resolved: %q", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a friendly math buddy.",
		Messages:  []Message{{Role: RoleUser, Content: "Tell a story."}},
		Schema:    storySchema(),
		MaxTokens: 256,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.InputTokens != 50 || resp.Usage.TotalTokens != 80 {
		t.Fatalf("usage = %+v", resp.Usage)
	}
	if resp.StopReason != StopEnd || resp.Model != "claude-haiku-4-5" {
		t.Fatalf("stop=%q model=%q", resp.StopReason, resp.Model)
	}
}

func TestAnthropicProvider_Truncated(t *testing.T) {
	p := newTestAnthropic(t, jsonHandler(http.StatusOK, anthropicMessage(`{"title":"Max`, "max_tokens")))
	_, err := p.Generate(context.Background(), Prompt("", "x", storySchema(), 10))
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %v", err)
	}
}

func TestAnthropicProvider_Errors(t *testing.T) {
	errBody := func(typ string) map[string]any {
		return map[string]any{"type": "error", "error": map[string]any{"type": typ, "message": typ}}
	}

	p := newTestAnthropic(t, jsonHandler(http.StatusTooManyRequests, errBody("rate_limit_error")))
	_, err := p.Generate(context.Background(), Prompt("", "x", nil, 10))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}

	p = newTestAnthropic(t, jsonHandler(http.StatusInternalServerError, errBody("api_error")))
	_, err = p.Generate(context.Background(), Prompt("", "x", nil, 10))
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
	}
}

func newTestOpenAI(t *testing.T, h http.HandlerFunc) *OpenAIProvider {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: srv.URL + "/v1"})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	return p
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var gotFormat map[string]any
	h := func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		_ = json.NewDecoder(r.Body).Decode(&body)
		gotFormat, _ = body["response_format"].(map[string]any)

		jsonHandler(http.StatusOK, map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1700000000,
			"model":   "gpt-4o-mini",
			"choices": []map[string]any{{
				"index":         0,
				"message":       map[string]any{"role": "assistant", "content": `{"title":"Minnie's Minus"}`},
				"finish_reason": "stop",
			}},
			"usage": map[string]any{"prompt_tokens": 40, "completion_tokens": 20, "total_tokens": 60},
		})(w, r)
	}

	p := newTestOpenAI(t, h)
	resp, err := p.Generate(context.Background(), Prompt("sys", "story please", storySchema(), 200))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Usage.TotalTokens != 60 || resp.Model != "gpt-4o-mini" {
		t.Fatalf("resp = %+v", resp)
	}
	if gotFormat["type"] != "json_schema" {
		t.Fatalf("response_format = %v", gotFormat)
	}
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusOK, map[string]any{
		"model": "gpt-4o-mini",
		"choices": []map[string]any{{
			"message":       map[string]any{"role": "assistant", "content": `{"heading":"nope"}`},
			"finish_reason": "stop",
		}},
	}))
	_, err := p.Generate(context.Background(), Prompt("", "x", storySchema(), 50))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestOpenAIProvider_RateLimit(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusTooManyRequests, map[string]any{
		"error": map[string]any{"message": "slow down", "type": "rate_limit", "code": "rate_limit_exceeded"},
	}))
	_, err := p.Generate(context.Background(), Prompt("", "x", nil, 50))
	var rl *ErrRateLimit
	if !errors.As(err, &rl) {
		t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_NoChoices(t *testing.T) {
	p := newTestOpenAI(t, jsonHandler(http.StatusOK, map[string]any{"model": "gpt-4o-mini", "choices": []any{}}))
	_, err := p.Generate(context.Background(), Prompt("", "x", nil, 50))
	var invalid *ErrInvalidResponse
	if !errors.As(err, &invalid) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
}

func TestNewOpenRouterProvider(t *testing.T) {
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x"}); err == nil {
		t.Fatal("expected error without API key")
	}
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "meta-llama/llama-3-8b"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "meta-llama/llama-3-8b" {
		t.Fatalf("model = %q, want pass-through", p.ModelID())
	}
}

func TestModelAliases(t *testing.T) {
	tests := []struct {
		in, want string
		aliases  map[string]string
	}{
		{"claude-haiku", "claude-haiku-4-5", anthropicModels},
		{"claude-opus-4-1", "claude-opus-4-1", anthropicModels},
		{"gemini-flash", "gemini-2.5-flash", geminiModels},
		{"gemini-2.0-flash", "gemini-2.0-flash", geminiModels},
	}
	for _, tt := range tests {
		if got := resolveModel(tt.in, tt.aliases); got != tt.want {
			t.Errorf("resolveModel(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGeminiSchema(t *testing.T) {
	s := geminiSchema(map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{"type": "string", "description": "story title"},
			"mood":  map[string]any{"type": "string", "enum": []string{"happy", "proud"}},
			"steps": map[string]any{
				"type":     "array",
				"items":    map[string]any{"type": "string"},
				"minItems": 2,
				"maxItems": 4,
			},
			"odd": map[string]any{"type": "null"},
		},
		"required": []any{"title", "steps"},
	})

	if s.Type != genai.TypeObject || len(s.Properties) != 4 {
		t.Fatalf("schema = %+v", s)
	}
	if s.Properties["title"].Description != "story title" {
		t.Errorf("description lost")
	}
	if len(s.Properties["mood"].Enum) != 2 {
		t.Errorf("enum = %v", s.Properties["mood"].Enum)
	}
	steps := s.Properties["steps"]
	if steps.Type != genai.TypeArray || steps.Items.Type != genai.TypeString {
		t.Errorf("steps = %+v", steps)
	}
	if steps.MinItems == nil || *steps.MinItems != 2 || steps.MaxItems == nil || *steps.MaxItems != 4 {
		t.Errorf("item bounds = %v/%v", steps.MinItems, steps.MaxItems)
	}
	if s.Properties["odd"].Type != genai.TypeString {
		t.Errorf("unknown types fall back to string")
	}
	if len(s.Required) != 2 {
		t.Errorf("required = %v", s.Required)
	}
}
