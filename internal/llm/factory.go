package llm

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/abhisek/kousuan/internal/store"
)

// NewProvider builds the provider named by cfg.Provider and wraps it as
// caller → timeout → retry → logging → provider. eventRepo may be nil.
func NewProvider(ctx context.Context, cfg Config, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var (
		base Provider
		err  error
	)
	switch cfg.Provider {
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "deepseek":
		base, err = NewDeepSeekProvider(cfg.DeepSeek)
	case "openrouter":
		base, err = NewOpenRouterProvider(cfg.OpenRouter)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "mock":
		base = NewMockProvider()
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	p := WithLogging(base, eventRepo, logger)
	p = WithRetry(p, cfg.Retry)
	return WithTimeout(p, cfg.Timeout), nil
}

// NewProviderFromEnv configures a provider from KOUSUAN_* variables when
// KOUSUAN_LLM_PROVIDER is set, and otherwise from whichever vendor API key
// is present. It returns (nil, nil) when nothing is configured, which
// callers treat as "local generation only".
func NewProviderFromEnv(ctx context.Context, eventRepo store.EventRepo, logger *slog.Logger) (Provider, error) {
	cfg := ConfigFromEnv()
	if !providerSelected() {
		discovered, ok := DiscoverConfig()
		if !ok {
			return nil, nil
		}
		discovered.Timeout = cfg.Timeout
		cfg = discovered
	}
	return NewProvider(ctx, cfg, eventRepo, logger)
}
