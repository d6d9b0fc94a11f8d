package llm

import (
	"fmt"
	"strings"

	"github.com/ppiankov/wikichat/internal/model"
)

// NewProvider creates a new generation provider based on configuration
func NewProvider(config Config) (Provider, error) {
	switch strings.ToLower(config.Provider) {
	case "openai":
		return NewOpenAIProvider(config)

	case "anthropic", "claude":
		return NewAnthropicProvider(config)

	case "ollama":
		return NewOllamaProvider(config)

	default:
		return nil, fmt.Errorf("unknown LLM provider: %s (supported: openai, anthropic, ollama)", config.Provider)
	}
}

// ConfigFromModel converts model.LLMConfig to llm.Config
func ConfigFromModel(modelConfig model.LLMConfig) Config {
	return Config{
		Provider:  modelConfig.Provider,
		Model:     modelConfig.Model,
		APIKey:    modelConfig.APIKey,
		BaseURL:   modelConfig.BaseURL,
		Timeout:   modelConfig.Timeout,
		MaxTokens: modelConfig.MaxTokens,
		TopP:      modelConfig.TopP,
	}
}

// LargeModelFor returns the bigger model variant selected by --large
func LargeModelFor(provider string) string {
	switch strings.ToLower(provider) {
	case "openai":
		return "gpt-4o"
	case "anthropic", "claude":
		return "claude-3-5-sonnet-20241022"
	case "ollama":
		return "llama3.1:70b"
	default:
		return ""
	}
}
