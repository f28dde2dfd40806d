package llm

import (
	"context"
	"fmt"
	"log/slog"
	"time"
)

// Client is the interface every provider satisfies.
type Client interface {
	Generate(ctx context.Context, req Request) (*Response, error)
	ModelID() string
}

// Request is a single-turn prompt. When Schema is set the provider asks for
// JSON output and the response is validated against it.
type Request struct {
	System      string
	Prompt      string
	Schema      *Schema
	MaxTokens   int
	Temperature float64
}

// Schema names a JSON Schema definition. Name doubles as the compile cache key.
type Schema struct {
	Name       string
	Definition map[string]any
}

// Response holds the raw response content and token usage.
type Response struct {
	Content      string
	Model        string
	PromptTokens int
	OutputTokens int
}

// Config selects and configures a provider.
type Config struct {
	Provider        string
	Model           string
	GeminiAPIKey    string
	AnthropicAPIKey string
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	MaxAttempts     int
	InitialWait     time.Duration
}

const (
	ProviderGemini    = "gemini"
	ProviderAnthropic = "anthropic"
	ProviderOpenAI    = "openai"
	ProviderMock      = "mock"
)

// New builds the configured provider wrapped with retries. A provider without
// an API key yields ErrNotConfigured; callers install Unavailable in its place
// so the service still starts and speech evaluation degrades.
func New(ctx context.Context, cfg Config) (Client, error) {
	var base Client
	var err error

	switch cfg.Provider {
	case ProviderGemini, "":
		base, err = NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.Model)
	case ProviderAnthropic:
		base, err = NewAnthropicClient(cfg.AnthropicAPIKey, cfg.Model)
	case ProviderOpenAI:
		base, err = NewOpenAIClient(cfg.OpenAIAPIKey, cfg.Model, cfg.OpenAIBaseURL)
	case ProviderMock:
		return NewMockClient(), nil
	default:
		return nil, fmt.Errorf("%w: unknown provider %q", ErrNotConfigured, cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	slog.Info("llm provider ready", "provider", cfg.Provider, "model", base.ModelID())
	return WithRetry(base, RetryConfig{
		MaxAttempts: cfg.MaxAttempts,
		InitialWait: cfg.InitialWait,
		MaxWait:     10 * time.Second,
		Multiplier:  2.0,
	}), nil
}

// Unavailable answers every request with ErrNotConfigured.
type Unavailable struct {
	Reason error
}

func (u Unavailable) Generate(ctx context.Context, req Request) (*Response, error) {
	if u.Reason != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotConfigured, u.Reason)
	}
	return nil, ErrNotConfigured
}

func (u Unavailable) ModelID() string {
	return "unavailable"
}

func resolveModel(name string, models map[string]string, fallback string) string {
	if name == "" {
		return fallback
	}
	if id, ok := models[name]; ok {
		return id
	}
	return name
}
