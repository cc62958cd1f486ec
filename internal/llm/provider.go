package llm

import (
	"context"
	"encoding/json"
)

// Provider sends a single prompt to a text-generation service and returns
// its reply.
type Provider interface {
	// Generate performs one request. When req.Schema is set the reply is
	// stripped of code fences and validated against the schema before it
	// is returned.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model the provider sends requests to.
	ModelID() string
}

// Request is a provider-neutral prompt.
type Request struct {
	// System sets the assistant's role, e.g. "you generate arithmetic
	// problems for children".
	System string

	// Messages holds the conversation. Problem generation always sends a
	// single user message.
	Messages []Message

	// Schema describes the JSON object the reply must decode into.
	// Nil means free text.
	Schema *Schema

	MaxTokens int

	// Temperature in [0, 1]. Zero leaves the provider default in place
	// for providers that distinguish "unset".
	Temperature float64
}

// Message is one turn of the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the sender of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema.
type Schema struct {
	// Name is a kebab-case identifier such as "arithmetic-problem". It is
	// also the cache key for the compiled schema.
	Name string

	Description string

	// Definition is the JSON Schema document.
	Definition map[string]any
}

// Response is a provider reply.
type Response struct {
	// Content is the reply body. With a Schema it is a validated JSON
	// object; otherwise it is the raw text.
	Content json.RawMessage

	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is "end" or "max_tokens".
	StopReason string
}

// Usage reports token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
