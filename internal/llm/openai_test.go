package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

// chatServer answers every chat-completions call with content and records
// the decoded request body.
func chatServer(t *testing.T, status int, content, finish string, got *map[string]any) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got != nil {
			if err := json.NewDecoder(r.Body).Decode(got); err != nil {
				t.Errorf("decode request: %v", err)
			}
		}
		w.Header().Set("Content-Type", "application/json")
		if status != http.StatusOK {
			w.WriteHeader(status)
			json.NewEncoder(w).Encode(map[string]any{
				"error": map[string]any{"message": "nope", "type": "server_error"},
			})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1234567890,
			"model":   "deepseek-chat",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": finish,
				},
			},
			"usage": map[string]any{
				"prompt_tokens":     40,
				"completion_tokens": 25,
				"total_tokens":      65,
			},
		})
	}))
	t.Cleanup(server.Close)
	return server.URL + "/v1"
}

func problemRequest() Request {
	return Request{
		System:      "你是一个小学数学老师。",
		Messages:    []Message{{Role: RoleUser, Content: "生成一道中等难度的题目"}},
		Schema:      problemSchema(),
		MaxTokens:   200,
		Temperature: 0.3,
	}
}

func TestOpenAIProvider_HappyPath(t *testing.T) {
	var body map[string]any
	url := chatServer(t, http.StatusOK, `{"question":"3 + 4 = ?","answer":"7"}`, "stop", &body)

	p, err := NewOpenAIProvider(OpenAIConfig{APIKey: "test-key", Model: "gpt-4o-mini", BaseURL: url})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}

	resp, err := p.Generate(context.Background(), problemRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"question":"3 + 4 = ?","answer":"7"}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if resp.Usage.TotalTokens != 65 {
		t.Fatalf("expected 65 total tokens, got %d", resp.Usage.TotalTokens)
	}
	if resp.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp.StopReason)
	}

	format, _ := body["response_format"].(map[string]any)
	if format["type"] != "json_schema" {
		t.Errorf("response_format.type = %v, want json_schema", format["type"])
	}
	msgs, _ := body["messages"].([]any)
	if len(msgs) != 2 {
		t.Fatalf("expected system and user messages, got %d", len(msgs))
	}
	if first, _ := msgs[0].(map[string]any); first["role"] != "system" {
		t.Errorf("first message role = %v, want system", first["role"])
	}
}

func TestDeepSeekProvider_JSONObjectMode(t *testing.T) {
	var body map[string]any
	url := chatServer(t, http.StatusOK, "```json\n{\"question\":\"12 ÷ 3 = ?\",\"answer\":\"4\"}\n```", "stop", &body)

	p, err := NewDeepSeekProvider(DeepSeekConfig{APIKey: "test-key", BaseURL: url})
	if err != nil {
		t.Fatalf("new provider: %v", err)
	}
	if p.ModelID() != "deepseek-chat" {
		t.Errorf("model = %q, want deepseek-chat", p.ModelID())
	}

	resp, err := p.Generate(context.Background(), problemRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"question":"12 ÷ 3 = ?","answer":"4"}` {
		t.Fatalf("fence not stripped: %s", resp.Content)
	}

	format, _ := body["response_format"].(map[string]any)
	if format["type"] != "json_object" {
		t.Errorf("response_format.type = %v, want json_object", format["type"])
	}
	if body["model"] != "deepseek-chat" {
		t.Errorf("model = %v", body["model"])
	}
}

func TestOpenAIProvider_SchemaMismatch(t *testing.T) {
	url := chatServer(t, http.StatusOK, `{"question":"3 + 4 = ?"}`, "stop", nil)
	p, _ := NewDeepSeekProvider(DeepSeekConfig{APIKey: "k", BaseURL: url})

	_, err := p.Generate(context.Background(), problemRequest())
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_Truncated(t *testing.T) {
	url := chatServer(t, http.StatusOK, `{"question":"3 + 4`, "length", nil)
	p, _ := NewDeepSeekProvider(DeepSeekConfig{APIKey: "k", BaseURL: url})

	_, err := p.Generate(context.Background(), problemRequest())
	var maxTok *ErrMaxTokensExceeded
	if !errors.As(err, &maxTok) {
		t.Fatalf("expected ErrMaxTokensExceeded, got %T (%v)", err, err)
	}
}

func TestOpenAIProvider_ErrorMapping(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		url := chatServer(t, http.StatusTooManyRequests, "", "", nil)
		p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url})
		_, err := p.Generate(context.Background(), problemRequest())
		var rl *ErrRateLimit
		if !errors.As(err, &rl) {
			t.Fatalf("expected ErrRateLimit, got %T (%v)", err, err)
		}
	})

	t.Run("server error", func(t *testing.T) {
		url := chatServer(t, http.StatusBadGateway, "", "", nil)
		p, _ := NewOpenAIProvider(OpenAIConfig{APIKey: "k", Model: "gpt-4o-mini", BaseURL: url})
		_, err := p.Generate(context.Background(), problemRequest())
		var unavail *ErrProviderUnavailable
		if !errors.As(err, &unavail) {
			t.Fatalf("expected ErrProviderUnavailable, got %T (%v)", err, err)
		}
	})
}

func TestNewChatProviders_RequireKey(t *testing.T) {
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Error("openai: expected error for empty API key")
	}
	if _, err := NewDeepSeekProvider(DeepSeekConfig{}); err == nil {
		t.Error("deepseek: expected error for empty API key")
	}
	if _, err := NewOpenRouterProvider(OpenRouterConfig{}); err == nil {
		t.Error("openrouter: expected error for empty API key")
	}
}

func TestOpenRouterProvider_ModelPassThrough(t *testing.T) {
	p, err := NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or-test", Model: "deepseek/deepseek-chat"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "deepseek/deepseek-chat" {
		t.Errorf("model = %q", p.ModelID())
	}
	if p.mode != jsonModeObject {
		t.Errorf("expected json_object mode for openrouter")
	}
}
