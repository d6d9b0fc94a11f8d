package llm

import (
	"strings"
	"testing"
)

func TestBuildPrompt_WithKnowledge(t *testing.T) {
	instruction := "Instruction: respond based on the knowledge."
	dialog := []string{"Hi there", "What is Saturn?"}
	knowledge := "Saturn is the sixth planet from the Sun."

	prompt := BuildPrompt(instruction, knowledge, dialog)

	want := "Instruction: respond based on the knowledge. [CONTEXT] Hi there EOS What is Saturn? [KNOWLEDGE] Saturn is the sixth planet from the Sun."
	if prompt != want {
		t.Errorf("BuildPrompt = %q, want %q", prompt, want)
	}
}

func TestBuildPrompt_WithoutKnowledge(t *testing.T) {
	prompt := BuildPrompt("Instruction: chat.", "", []string{"Hello"})

	if strings.Contains(prompt, "[KNOWLEDGE]") {
		t.Errorf("empty knowledge must not add a knowledge marker: %q", prompt)
	}
	if prompt != "Instruction: chat. [CONTEXT] Hello" {
		t.Errorf("unexpected prompt: %q", prompt)
	}
}

func TestBuildPrompt_JoinsTurnsWithSeparator(t *testing.T) {
	prompt := BuildPrompt("I.", "", []string{"a", "b", "c"})

	if !strings.Contains(prompt, "a EOS b EOS c") {
		t.Errorf("expected EOS-joined dialog, got %q", prompt)
	}
}

func TestPromptFor_VerbatimPrompt(t *testing.T) {
	raw := "List the named entities in the following message, one per line.\n\nMessage: Who is Joe Biden?"
	prompt := promptFor(GenerateRequest{Prompt: raw, Instruction: "ignored", Dialog: []string{"ignored"}})

	if prompt != raw {
		t.Errorf("verbatim prompt was altered: %q", prompt)
	}
	if strings.Contains(prompt, "[CONTEXT]") {
		t.Errorf("verbatim prompt must not carry dialog markers: %q", prompt)
	}
}

func TestPromptFor_DefaultsToTemplate(t *testing.T) {
	req := GenerateRequest{Instruction: "Instruction: chat.", Dialog: []string{"Hello"}}

	if got, want := promptFor(req), BuildPrompt(req.Instruction, req.Knowledge, req.Dialog); got != want {
		t.Errorf("promptFor = %q, want %q", got, want)
	}
}

func TestNewProvider(t *testing.T) {
	tests := []struct {
		provider string
		wantErr  bool
	}{
		{"openai", false},
		{"anthropic", false},
		{"claude", false},
		{"ollama", false},
		{"", true},
		{"huggingface", true},
	}

	for _, tt := range tests {
		config := DefaultConfig()
		config.Provider = tt.provider
		config.APIKey = "test-key"

		p, err := NewProvider(config)
		if tt.wantErr {
			if err == nil {
				t.Errorf("provider %q: expected error", tt.provider)
			}
			continue
		}
		if err != nil {
			t.Errorf("provider %q: unexpected error: %v", tt.provider, err)
			continue
		}
		if p == nil {
			t.Errorf("provider %q: got nil provider", tt.provider)
		}
	}
}

func TestLargeModelFor(t *testing.T) {
	if LargeModelFor("openai") == "" {
		t.Error("expected a large model for openai")
	}
	if LargeModelFor("anthropic") == "" {
		t.Error("expected a large model for anthropic")
	}
	if LargeModelFor("unknown") != "" {
		t.Error("expected empty large model for unknown provider")
	}
}
