package llm

import "fmt"

// NewDeepSeekProvider creates a provider for DeepSeek's OpenAI-compatible
// endpoint. DeepSeek rejects json_schema, so replies are requested as a
// plain JSON object and checked against the schema afterwards.
func NewDeepSeekProvider(cfg DeepSeekConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("deepseek API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultDeepSeekBaseURL
	}
	model := cfg.Model
	if model == "" {
		model = "deepseek-chat"
	}
	return newChatCompletionsProvider(cfg.APIKey, baseURL, model, jsonModeObject), nil
}

// NewOpenRouterProvider creates a provider for the OpenRouter gateway.
// Model names pass through unchanged ("vendor/model").
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("openrouter API key is required")
	}
	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}
	return newChatCompletionsProvider(cfg.APIKey, baseURL, cfg.Model, jsonModeObject), nil
}
