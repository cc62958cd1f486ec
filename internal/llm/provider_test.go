package llm

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/kousuan/internal/store"
)

func TestMockProvider_ReplaysInOrder(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"question":"1 + 1 = ?","answer":"2"}`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		MockResponse{Content: json.RawMessage("```json\n{}\n```")},
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Usage.InputTokens != 10 || resp1.StopReason != "end" || resp1.Model != "mock" {
		t.Fatalf("unexpected response: %+v", resp1)
	}

	resp2, err := mock.Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp2.Content) != "```json\n{}\n```" {
		t.Fatalf("mock must not rewrite content, got %q", resp2.Content)
	}

	_, err = mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable on empty queue, got %T", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
	if mock.Calls[0].Messages[0].Content != "first" {
		t.Fatalf("first call not recorded")
	}
}

func TestPurposeContext(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	ctx = WithPurpose(ctx, "problem-gen")
	if p := PurposeFrom(ctx); p != "problem-gen" {
		t.Fatalf("expected 'problem-gen', got %q", p)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"deepseek without key", Config{Provider: "deepseek"}, true},
		{"deepseek with key", Config{Provider: "deepseek", DeepSeek: DeepSeekConfig{APIKey: "sk"}}, false},
		{"openai without key", Config{Provider: "openai"}, true},
		{"openai with key", Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk"}}, false},
		{"openrouter without key", Config{Provider: "openrouter"}, true},
		{"anthropic with key", Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk"}}, false},
		{"gemini without key", Config{Provider: "gemini"}, true},
		{"mock needs no key", Config{Provider: "mock"}, false},
		{"unknown provider", Config{Provider: "llama"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func clearProviderEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"KOUSUAN_LLM_PROVIDER", "KOUSUAN_LLM_TIMEOUT",
		"KOUSUAN_DEEPSEEK_API_KEY", "KOUSUAN_DEEPSEEK_MODEL", "KOUSUAN_DEEPSEEK_BASE_URL",
		"KOUSUAN_OPENAI_API_KEY", "KOUSUAN_OPENAI_MODEL",
		"DEEPSEEK_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("KOUSUAN_LLM_PROVIDER", "openai")
	t.Setenv("KOUSUAN_OPENAI_API_KEY", "sk-test")
	t.Setenv("KOUSUAN_OPENAI_MODEL", "gpt-4o")
	t.Setenv("KOUSUAN_LLM_TIMEOUT", "3s")

	cfg := ConfigFromEnv()
	if cfg.Provider != "openai" || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("unexpected config: %+v", cfg)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("timeout = %s, want 3s", cfg.Timeout)
	}
	if cfg.DeepSeek.BaseURL != "https://api.deepseek.com/v1" {
		t.Errorf("deepseek base URL default lost: %q", cfg.DeepSeek.BaseURL)
	}
}

func TestDiscoverConfig(t *testing.T) {
	t.Run("none", func(t *testing.T) {
		clearProviderEnv(t)
		if _, ok := DiscoverConfig(); ok {
			t.Fatal("expected no provider")
		}
	})

	t.Run("deepseek wins over openai", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		t.Setenv("DEEPSEEK_API_KEY", "sk-deepseek")
		cfg, ok := DiscoverConfig()
		if !ok || cfg.Provider != "deepseek" || cfg.DeepSeek.APIKey != "sk-deepseek" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})

	t.Run("openai", func(t *testing.T) {
		clearProviderEnv(t)
		t.Setenv("OPENAI_API_KEY", "sk-openai")
		cfg, ok := DiscoverConfig()
		if !ok || cfg.Provider != "openai" || cfg.OpenAI.Model != "gpt-4o-mini" {
			t.Fatalf("unexpected config: %+v", cfg)
		}
	})
}

func TestNewProviderFromEnv_NothingConfigured(t *testing.T) {
	clearProviderEnv(t)
	p, err := NewProviderFromEnv(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p != nil {
		t.Fatalf("expected nil provider, got %T", p)
	}
}

func TestNewProviderFromEnv_ExplicitMissingKey(t *testing.T) {
	clearProviderEnv(t)
	t.Setenv("KOUSUAN_LLM_PROVIDER", "deepseek")
	if _, err := NewProviderFromEnv(context.Background(), nil, nil); err == nil {
		t.Fatal("expected error for deepseek without key")
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: "mock", Retry: RetryConfig{MaxAttempts: 1}}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock model, got %q", p.ModelID())
	}
}

func TestLoggingProvider_RecordsEvents(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "events.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	repo := s.EventRepo()

	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`{"question":"3 × 4 = ?","answer":"12"}`), Usage: Usage{InputTokens: 60, OutputTokens: 15}},
		MockResponse{Err: &ErrRateLimit{Err: errors.New("slow down")}},
	)
	p := WithLogging(mock, repo, nil)
	ctx := WithPurpose(context.Background(), "problem-gen")

	req := problemRequest()
	if _, err := p.Generate(ctx, req); err != nil {
		t.Fatalf("first call: %v", err)
	}
	if _, err := p.Generate(ctx, req); err == nil {
		t.Fatal("expected second call to fail")
	}

	events, err := repo.QueryLLMEvents(context.Background(), store.QueryOpts{})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}

	failed, ok := events[0], events[1]
	if failed.Success || !strings.Contains(failed.ErrorMessage, "slow down") {
		t.Errorf("unexpected failed event: %+v", failed)
	}
	if !ok.Success || ok.Purpose != "problem-gen" || ok.InputTokens != 60 || ok.Model != "mock" {
		t.Errorf("unexpected success event: %+v", ok)
	}
	if !strings.Contains(ok.RequestBody, "[user]") || !strings.Contains(ok.RequestBody, "[schema: test-problem]") {
		t.Errorf("request body not serialized: %q", ok.RequestBody)
	}
	if ok.ResponseBody != `{"question":"3 × 4 = ?","answer":"12"}` {
		t.Errorf("response body = %q", ok.ResponseBody)
	}
}

func TestWithLogging_NilRepo(t *testing.T) {
	mock := NewMockProvider()
	if p := WithLogging(mock, nil, nil); p != Provider(mock) {
		t.Fatalf("expected provider to be returned unchanged")
	}
}

type slowProvider struct{}

func (slowProvider) Generate(ctx context.Context, _ Request) (*Response, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowProvider) ModelID() string { return "slow" }

func TestWithTimeout(t *testing.T) {
	p := WithTimeout(slowProvider{}, 10*time.Millisecond)
	_, err := p.Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
	if WithTimeout(slowProvider{}, 0).ModelID() != "slow" {
		t.Fatal("zero timeout should pass through")
	}
}
