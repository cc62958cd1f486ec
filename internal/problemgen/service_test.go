package problemgen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"

	"github.com/abhisek/kousuan/internal/llm"
)

func newTestService(t *testing.T, cfg Config, responses ...llm.MockResponse) (*Service, *llm.MockProvider, *bytes.Buffer) {
	t.Helper()
	mock := llm.NewMockProvider(responses...)
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	svc := NewService(NewRemoteGenerator(mock, cfg), NewLocalGenerator(testRand()), logger)
	return svc, mock, &buf
}

func reply(s string) llm.MockResponse {
	return llm.MockResponse{Content: json.RawMessage(s)}
}

func TestService_RemoteSuccess(t *testing.T) {
	svc, mock, _ := newTestService(t, DefaultConfig(),
		reply(`{"question": " 12 ÷ 3 = ? ", "answer": "4"}`))

	p := svc.Generate(context.Background(), Medium)

	if p.Origin != OriginRemote {
		t.Fatalf("origin = %q, want remote", p.Origin)
	}
	if p.Question != "12 ÷ 3 = ?" || p.Answer != "4" || p.Level != Medium {
		t.Errorf("unexpected problem %+v", p)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}

	req := mock.Calls[0]
	if req.Schema == nil || req.Schema.Name != "arithmetic-problem" {
		t.Errorf("expected problem schema, got %+v", req.Schema)
	}
	if req.System == "" || len(req.Messages) != 1 || req.Messages[0].Role != llm.RoleUser {
		t.Errorf("unexpected request shape: %+v", req)
	}
	if req.MaxTokens != 200 || req.Temperature != 0.3 {
		t.Errorf("unexpected sampling params: max_tokens=%d temperature=%v", req.MaxTokens, req.Temperature)
	}
}

func TestService_FencedReply(t *testing.T) {
	svc, _, _ := newTestService(t, DefaultConfig(),
		reply("```json\n{\"question\":\"1/2 + 1/4 = ?\",\"answer\":\"3/4\"}\n```"))

	p := svc.Generate(context.Background(), Hard)
	if p.Origin != OriginRemote {
		t.Fatalf("origin = %q, want remote", p.Origin)
	}
	if p.Answer != "3/4" {
		t.Errorf("answer = %q, want 3/4", p.Answer)
	}
}

func TestService_Fallback(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		response llm.MockResponse
	}{
		{"provider error", DefaultConfig(), llm.MockResponse{Err: &llm.ErrRateLimit{}}},
		{"not json", DefaultConfig(), reply(`here is a problem: 3 + 4`)},
		{"missing answer", DefaultConfig(), reply(`{"question":"3 + 4 = ?"}`)},
		{"empty answer", DefaultConfig(), reply(`{"question":"3 + 4 = ?","answer":"  "}`)},
		{"long question", DefaultConfig(), reply(`{"question":"` + strings.Repeat("很", 201) + `","answer":"1"}`)},
		{"strict wrong math", Config{Validators: DefaultConfig().Validators, Strict: true}, reply(`{"question":"3 + 4 = ?","answer":"8"}`)},
		{"strict bad format", Config{Validators: DefaultConfig().Validators, Strict: true}, reply(`{"question":"2 × 3 = ?","answer":"6.0"}`)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, mock, logs := newTestService(t, tt.cfg, tt.response)

			p := svc.Generate(context.Background(), Medium)

			if p.Origin != OriginLocal {
				t.Fatalf("origin = %q, want local (problem %+v)", p.Origin, p)
			}
			if p.Level != Medium || p.Question == "" || p.Answer == "" {
				t.Errorf("unexpected fallback problem %+v", p)
			}
			if mock.CallCount() != 1 {
				t.Errorf("expected exactly one remote attempt, got %d", mock.CallCount())
			}
			if !strings.Contains(logs.String(), "remote problem generation failed") {
				t.Errorf("expected a warning in logs, got %q", logs.String())
			}
		})
	}
}

func TestService_NumericAnswer(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		level Level
		want  string
	}{
		{"integer", `{"question":"12 ÷ 3 = ?","answer":4}`, Medium, "4"},
		{"decimal", `{"question":"2.5 + 3.7 = ?","answer":6.2}`, Hard, "6.2"},
		{"string still works", `{"question":"12 ÷ 3 = ?","answer":"4"}`, Medium, "4"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, _, _ := newTestService(t, DefaultConfig(), reply(tt.reply))

			p := svc.Generate(context.Background(), tt.level)
			if p.Origin != OriginRemote {
				t.Fatalf("origin = %q, want remote", p.Origin)
			}
			if p.Answer != tt.want {
				t.Errorf("answer = %q, want %q", p.Answer, tt.want)
			}
		})
	}
}

func TestService_NonScalarAnswerFallsBack(t *testing.T) {
	for _, raw := range []string{
		`{"question":"3 + 4 = ?","answer":true}`,
		`{"question":"3 + 4 = ?","answer":null}`,
		`{"question":"3 + 4 = ?","answer":[7]}`,
	} {
		svc, _, _ := newTestService(t, DefaultConfig(), reply(raw))
		if p := svc.Generate(context.Background(), Medium); p.Origin != OriginLocal {
			t.Errorf("%s: origin = %q, want local", raw, p.Origin)
		}
	}
}

func TestService_StrictAcceptsCorrectMath(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Strict = true
	svc, _, _ := newTestService(t, cfg, reply(`{"question":"12.3 - 4.5 = ?","answer":"7.8"}`))

	p := svc.Generate(context.Background(), Hard)
	if p.Origin != OriginRemote {
		t.Fatalf("origin = %q, want remote", p.Origin)
	}
}

func TestService_EasyNeverCallsRemote(t *testing.T) {
	svc, mock, _ := newTestService(t, DefaultConfig(), reply(`{"question":"x","answer":"1"}`))

	for i := 0; i < 10; i++ {
		if p := svc.Generate(context.Background(), Easy); p.Origin != OriginLocal {
			t.Fatalf("origin = %q, want local", p.Origin)
		}
	}
	if mock.CallCount() != 0 {
		t.Errorf("expected no remote calls, got %d", mock.CallCount())
	}
}

func TestService_NilRemote(t *testing.T) {
	svc := NewService(nil, nil, nil)
	for _, level := range Levels {
		p := svc.Generate(context.Background(), level)
		if p.Origin != OriginLocal || p.Level != level {
			t.Errorf("level %s: unexpected problem %+v", level, p)
		}
	}
}

func TestService_CancelledContextFallsBack(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc, _, _ := newTestService(t, DefaultConfig(), llm.MockResponse{Err: ctx.Err()})
	p := svc.Generate(ctx, Hard)
	if p.Origin != OriginLocal {
		t.Errorf("origin = %q, want local", p.Origin)
	}
}

func TestService_Quiz(t *testing.T) {
	svc, _, _ := newTestService(t, DefaultConfig(), reply(`{"question":"1/2 + 1/4 = ?","answer":"3/4"}`))

	q := svc.Quiz(context.Background(), Hard)
	assertOptionSet(t, "3/4", q.Options)

	data, err := json.Marshal(q)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	for _, key := range []string{"question", "answer", "level", "options"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("quiz JSON missing %q: %s", key, data)
		}
	}
	if _, ok := decoded["Origin"]; ok {
		t.Errorf("origin must not be serialized: %s", data)
	}
}

func TestRemoteGenerator_ValidationErrorType(t *testing.T) {
	mock := llm.NewMockProvider(reply(`{"question":"3 + 4 = ?"}`))
	_, err := NewRemoteGenerator(mock, DefaultConfig()).Generate(context.Background(), Medium)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %v", err)
	}
	if verr.Validator != "structural" {
		t.Errorf("validator = %q, want structural", verr.Validator)
	}
}

func TestUserPrompt(t *testing.T) {
	seen := map[string]Level{}
	for _, level := range Levels {
		p := userPrompt(level)
		if p == "" {
			t.Fatalf("empty prompt for %s", level)
		}
		if other, dup := seen[p]; dup {
			t.Errorf("levels %s and %s share a prompt", level, other)
		}
		seen[p] = level
	}
}
