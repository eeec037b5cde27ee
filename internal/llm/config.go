package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v10"
)

// EnvPrefix is prepended to every LLM environment key.
const EnvPrefix = "MATHWHEEL_"

// Provider names accepted in Config.Provider.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Config selects and configures an LLM vendor.
type Config struct {
	Provider string `env:"LLM_PROVIDER" envDefault:"anthropic"`

	Anthropic  AnthropicConfig
	OpenAI     OpenAIConfig
	Gemini     GeminiConfig
	OpenRouter OpenRouterConfig
	Retry      RetryConfig

	// Timeout bounds one Generate call including retries.
	Timeout time.Duration `env:"LLM_TIMEOUT" envDefault:"30s"`
}

type AnthropicConfig struct {
	APIKey string `env:"ANTHROPIC_API_KEY"`
	Model  string `env:"ANTHROPIC_MODEL" envDefault:"claude-haiku"`
}

type OpenAIConfig struct {
	APIKey  string `env:"OPENAI_API_KEY"`
	Model   string `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	BaseURL string `env:"OPENAI_BASE_URL"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL" envDefault:"gemini-flash"`
}

type OpenRouterConfig struct {
	APIKey  string `env:"OPENROUTER_API_KEY"`
	Model   string `env:"OPENROUTER_MODEL" envDefault:"google/gemini-2.0-flash-001"`
	BaseURL string `env:"OPENROUTER_BASE_URL"`
}

// RetryConfig configures backoff for transient failures.
type RetryConfig struct {
	MaxAttempts int           `env:"LLM_RETRY_ATTEMPTS" envDefault:"3"`
	InitialWait time.Duration `env:"LLM_RETRY_WAIT" envDefault:"1s"`
	MaxWait     time.Duration `env:"LLM_RETRY_MAX_WAIT" envDefault:"10s"`
	Multiplier  float64       `env:"LLM_RETRY_MULTIPLIER" envDefault:"2"`
}

// DefaultConfig returns the envDefault values without reading MATHWHEEL_*
// variables.
func DefaultConfig() Config {
	var cfg Config
	// Parsing an empty environment only applies defaults and cannot fail.
	_ = env.ParseWithOptions(&cfg, env.Options{Environment: map[string]string{}})
	return cfg
}

// ConfigFromEnv reads MATHWHEEL_* variables on top of the defaults.
func ConfigFromEnv() (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse LLM config: %w", err)
	}
	return cfg, nil
}

// Explicit reports whether MATHWHEEL_LLM_PROVIDER is set.
func Explicit() bool {
	return os.Getenv(EnvPrefix+"LLM_PROVIDER") != ""
}

// DiscoverConfig probes the vendors' standard key variables in the order
// Gemini, OpenAI, Anthropic, OpenRouter and configures the first one found.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()
	probes := []struct {
		env      string
		provider string
		key      *string
	}{
		{"GEMINI_API_KEY", ProviderGemini, &cfg.Gemini.APIKey},
		{"OPENAI_API_KEY", ProviderOpenAI, &cfg.OpenAI.APIKey},
		{"ANTHROPIC_API_KEY", ProviderAnthropic, &cfg.Anthropic.APIKey},
		{"OPENROUTER_API_KEY", ProviderOpenRouter, &cfg.OpenRouter.APIKey},
	}
	for _, p := range probes {
		if k := os.Getenv(p.env); k != "" {
			cfg.Provider = p.provider
			*p.key = k
			return cfg, true
		}
	}
	return Config{}, false
}

// Resolve picks the configuration used at startup: explicit MATHWHEEL_*
// settings first, then discovery. ok is false when no provider is usable.
func Resolve() (cfg Config, ok bool, err error) {
	if Explicit() {
		cfg, err = ConfigFromEnv()
		if err != nil {
			return Config{}, false, err
		}
		if err := cfg.Validate(); err != nil {
			return Config{}, false, err
		}
		return cfg, true, nil
	}
	cfg, ok = DiscoverConfig()
	return cfg, ok, nil
}

// Validate checks that the selected provider has its API key.
func (c Config) Validate() error {
	missing := func(key string) error {
		return fmt.Errorf("%s%s is required for the %s provider", EnvPrefix, key, c.Provider)
	}
	switch c.Provider {
	case ProviderAnthropic:
		if c.Anthropic.APIKey == "" {
			return missing("ANTHROPIC_API_KEY")
		}
	case ProviderOpenAI:
		if c.OpenAI.APIKey == "" {
			return missing("OPENAI_API_KEY")
		}
	case ProviderGemini:
		if c.Gemini.APIKey == "" {
			return missing("GEMINI_API_KEY")
		}
	case ProviderOpenRouter:
		if c.OpenRouter.APIKey == "" {
			return missing("OPENROUTER_API_KEY")
		}
	case ProviderMock:
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
