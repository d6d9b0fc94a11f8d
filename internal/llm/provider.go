// Package llm generates chat replies through pluggable model providers.
package llm

import (
	"context"
	"strings"
)

// Provider defines the interface for generation model providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate decodes a reply for the given dialog and knowledge
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for reply generation
type GenerateRequest struct {
	// Prompt, when set, is sent verbatim and the dialog template below
	// is skipped. Used for auxiliary completions like entity extraction.
	Prompt string

	// Instruction is the task instruction prepended to every prompt
	Instruction string

	// Knowledge is retrieved factual context; empty means chitchat only
	Knowledge string

	// Dialog is the bounded history of user turns, oldest first
	Dialog []string

	// Model overrides the configured model (provider-specific)
	Model string

	// MaxTokens limits the reply length
	MaxTokens int

	// TopP is the nucleus sampling threshold
	TopP float32
}

// GenerateResponse contains the generated reply
type GenerateResponse struct {
	// Reply is the generated text
	Reply string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption, when the API reports it
	TokensUsed int
}

// Config holds generation provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama"
	Provider string

	// Model name (provider-specific; empty selects the provider default)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens bounds reply length
	MaxTokens int

	// TopP is the nucleus sampling threshold
	TopP float32

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
	NoProxy    string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "openai",
		Timeout:   60,
		MaxTokens: 128,
		TopP:      0.9,
	}
}

// BuildPrompt constructs a single grounded-dialog prompt: the instruction, a
// context marker, the dialog turns joined by the turn separator, and the
// knowledge marker only when knowledge is present.
func BuildPrompt(instruction, knowledge string, dialog []string) string {
	prompt := instruction + " [CONTEXT] " + strings.Join(dialog, " EOS ")
	if knowledge != "" {
		prompt += " [KNOWLEDGE] " + knowledge
	}
	return strings.TrimSpace(prompt)
}

// promptFor returns the prompt text for a request: the verbatim Prompt
// when set, otherwise the assembled dialog template.
func promptFor(req GenerateRequest) string {
	if req.Prompt != "" {
		return req.Prompt
	}
	return BuildPrompt(req.Instruction, req.Knowledge, req.Dialog)
}
