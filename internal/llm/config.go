package llm

import (
	"fmt"
	"os"
	"time"
)

// Config selects and configures the problem-generation backend.
type Config struct {
	// Provider is one of "openai", "deepseek", "openrouter", "anthropic",
	// "gemini" or "mock".
	Provider string

	OpenAI     OpenAIConfig
	DeepSeek   DeepSeekConfig
	OpenRouter OpenRouterConfig
	Anthropic  AnthropicConfig
	Gemini     GeminiConfig
	Retry      RetryConfig

	// Timeout bounds one request including retries.
	Timeout time.Duration
}

type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // optional, for OpenAI-compatible gateways
}

type DeepSeekConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

type AnthropicConfig struct {
	APIKey string
	Model  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

// RetryConfig configures retries for transient failures. MaxAttempts of 1
// sends exactly one request.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

const (
	defaultDeepSeekBaseURL   = "https://api.deepseek.com/v1"
	defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"
)

// DefaultConfig returns the defaults: DeepSeek, one attempt, 15s timeout.
func DefaultConfig() Config {
	return Config{
		Provider: "deepseek",
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		DeepSeek: DeepSeekConfig{
			Model:   "deepseek-chat",
			BaseURL: defaultDeepSeekBaseURL,
		},
		OpenRouter: OpenRouterConfig{
			Model:   "deepseek/deepseek-chat",
			BaseURL: defaultOpenRouterBaseURL,
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		Retry: RetryConfig{
			MaxAttempts: 1,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     5 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 15 * time.Second,
	}
}

// ConfigFromEnv overlays KOUSUAN_* environment variables on the defaults.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	setString(&cfg.Provider, "KOUSUAN_LLM_PROVIDER")

	setString(&cfg.OpenAI.APIKey, "KOUSUAN_OPENAI_API_KEY")
	setString(&cfg.OpenAI.Model, "KOUSUAN_OPENAI_MODEL")
	setString(&cfg.OpenAI.BaseURL, "KOUSUAN_OPENAI_BASE_URL")

	setString(&cfg.DeepSeek.APIKey, "KOUSUAN_DEEPSEEK_API_KEY")
	setString(&cfg.DeepSeek.Model, "KOUSUAN_DEEPSEEK_MODEL")
	setString(&cfg.DeepSeek.BaseURL, "KOUSUAN_DEEPSEEK_BASE_URL")

	setString(&cfg.OpenRouter.APIKey, "KOUSUAN_OPENROUTER_API_KEY")
	setString(&cfg.OpenRouter.Model, "KOUSUAN_OPENROUTER_MODEL")

	setString(&cfg.Anthropic.APIKey, "KOUSUAN_ANTHROPIC_API_KEY")
	setString(&cfg.Anthropic.Model, "KOUSUAN_ANTHROPIC_MODEL")

	setString(&cfg.Gemini.APIKey, "KOUSUAN_GEMINI_API_KEY")
	setString(&cfg.Gemini.Model, "KOUSUAN_GEMINI_MODEL")

	if v := os.Getenv("KOUSUAN_LLM_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.Timeout = d
		}
	}

	return cfg
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

// DiscoverConfig looks for the vendors' standard API key variables in the
// order DeepSeek, OpenAI, Gemini, Anthropic, OpenRouter and configures the
// first one found. The second result is false when none is set.
func DiscoverConfig() (Config, bool) {
	cfg := DefaultConfig()

	if k := os.Getenv("DEEPSEEK_API_KEY"); k != "" {
		cfg.Provider = "deepseek"
		cfg.DeepSeek.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
		return cfg, true
	}
	if k := os.Getenv("OPENROUTER_API_KEY"); k != "" {
		cfg.Provider = "openrouter"
		cfg.OpenRouter.APIKey = k
		return cfg, true
	}

	return Config{}, false
}

// Validate reports a missing API key for the selected provider.
func (c Config) Validate() error {
	switch c.Provider {
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("KOUSUAN_OPENAI_API_KEY is required for the openai provider")
		}
	case "deepseek":
		if c.DeepSeek.APIKey == "" {
			return fmt.Errorf("KOUSUAN_DEEPSEEK_API_KEY is required for the deepseek provider")
		}
	case "openrouter":
		if c.OpenRouter.APIKey == "" {
			return fmt.Errorf("KOUSUAN_OPENROUTER_API_KEY is required for the openrouter provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("KOUSUAN_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("KOUSUAN_GEMINI_API_KEY is required for the gemini provider")
		}
	case "mock":
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func providerSelected() bool {
	return os.Getenv("KOUSUAN_LLM_PROVIDER") != ""
}
