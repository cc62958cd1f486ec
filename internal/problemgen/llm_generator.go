package problemgen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/abhisek/kousuan/internal/llm"
)

// RemoteGenerator asks an LLM provider for a problem.
type RemoteGenerator struct {
	provider   llm.Provider
	validators []Validator
	config     Config
}

func NewRemoteGenerator(provider llm.Provider, cfg Config) *RemoteGenerator {
	return &RemoteGenerator{provider: provider, validators: cfg.chain(), config: cfg}
}

type problemOutput struct {
	Question *string        `json:"question"`
	Answer   *answerLiteral `json:"answer"`
}

// answerLiteral accepts the answer as a JSON string or a JSON number.
// Numbers keep their literal text, so 0.5 stays "0.5" and 4 stays "4".
type answerLiteral string

func (a *answerLiteral) UnmarshalJSON(data []byte) error {
	var v any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&v); err != nil {
		return err
	}
	switch x := v.(type) {
	case string:
		*a = answerLiteral(x)
	case json.Number:
		*a = answerLiteral(x.String())
	default:
		return fmt.Errorf("answer must be a string or a number, got %s", data)
	}
	return nil
}

// Generate sends one request. Any transport, decoding or validation
// failure is returned as an error.
func (g *RemoteGenerator) Generate(ctx context.Context, level Level) (*Problem, error) {
	ctx = llm.WithPurpose(ctx, "problem-gen")

	req := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userPrompt(level)},
		},
		Schema:      ProblemSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	}

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw problemOutput
	if err := json.Unmarshal([]byte(llm.StripCodeFence(string(resp.Content))), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if raw.Question == nil || raw.Answer == nil {
		return nil, &ValidationError{Validator: "structural", Message: "reply must contain question and answer", Retryable: true}
	}

	p := &Problem{
		Question: strings.TrimSpace(*raw.Question),
		Answer:   strings.TrimSpace(string(*raw.Answer)),
		Level:    level,
		Origin:   OriginRemote,
	}

	for _, v := range g.validators {
		if verr := v.Validate(p); verr != nil {
			return nil, verr
		}
	}
	return p, nil
}
