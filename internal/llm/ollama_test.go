package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestOllamaProvider_Generate_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/generate" {
			t.Errorf("expected path /api/generate, got %s", r.URL.Path)
		}

		var req ollamaRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Stream {
			t.Error("expected non-streaming request")
		}
		if req.Options.NumPredict != 128 {
			t.Errorf("expected num_predict 128, got %d", req.Options.NumPredict)
		}

		resp := ollamaResponse{
			Model:     req.Model,
			Response:  "Hello! How can I help?",
			Done:      true,
			EvalCount: 8,
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
	defer server.Close()

	config := DefaultConfig()
	config.Provider = "ollama"
	config.BaseURL = server.URL
	config.Timeout = 5

	provider, err := NewOllamaProvider(config)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	resp, err := provider.Generate(context.Background(), GenerateRequest{
		Instruction: "Instruction: chat.",
		Dialog:      []string{"Hello"},
	})
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if resp.Reply != "Hello! How can I help?" {
		t.Errorf("unexpected reply: %q", resp.Reply)
	}
}

func TestOllamaProvider_Generate_APIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"model not found"}`))
	}))
	defer server.Close()

	config := DefaultConfig()
	config.Provider = "ollama"
	config.BaseURL = server.URL
	config.Timeout = 5

	provider, err := NewOllamaProvider(config)
	if err != nil {
		t.Fatalf("failed to create provider: %v", err)
	}

	_, err = provider.Generate(context.Background(), GenerateRequest{Dialog: []string{"hi"}})
	if err == nil {
		t.Fatal("expected error from API failure")
	}
}
