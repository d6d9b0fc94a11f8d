package rank

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/ppiankov/wikichat/internal/model"
)

func newTestEmbedder(t *testing.T, handler http.HandlerFunc) (*OpenAIEmbedder, *httptest.Server) {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	embedder, err := NewOpenAIEmbedder(model.EmbeddingConfig{
		APIKey:  "test-key",
		BaseURL: server.URL,
		Timeout: 5,
	})
	if err != nil {
		t.Fatalf("failed to create embedder: %v", err)
	}
	return embedder, server
}

func TestOpenAIEmbedder_BatchOrderedByIndex(t *testing.T) {
	embedder, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("expected path /embeddings, got %s", r.URL.Path)
		}
		// Second input's vector reported first
		_, _ = fmt.Fprint(w, `{"object":"list","data":[
			{"object":"embedding","embedding":[0.0,1.0],"index":1},
			{"object":"embedding","embedding":[1.0,0.0],"index":0}
		],"model":"text-embedding-3-small","usage":{"prompt_tokens":2,"total_tokens":2}}`)
	})

	vecs, err := embedder.EmbedBatch(context.Background(), []string{"first", "second"})
	if err != nil {
		t.Fatalf("EmbedBatch failed: %v", err)
	}

	if vecs[0][0] != 1.0 || vecs[1][1] != 1.0 {
		t.Errorf("vectors not reordered by index: %v", vecs)
	}
}

func TestOpenAIEmbedder_RejectsOutOfRangeIndex(t *testing.T) {
	embedder, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"object":"list","data":[
			{"object":"embedding","embedding":[1.0],"index":5}
		],"model":"text-embedding-3-small","usage":{"prompt_tokens":1,"total_tokens":1}}`)
	})

	_, err := embedder.EmbedBatch(context.Background(), []string{"only"})
	if err == nil {
		t.Fatal("expected error for out-of-range embedding index")
	}
	if !strings.Contains(err.Error(), "out of range") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestOpenAIEmbedder_RejectsDuplicatedIndex(t *testing.T) {
	embedder, _ := newTestEmbedder(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprint(w, `{"object":"list","data":[
			{"object":"embedding","embedding":[1.0],"index":0},
			{"object":"embedding","embedding":[2.0],"index":0}
		],"model":"text-embedding-3-small","usage":{"prompt_tokens":2,"total_tokens":2}}`)
	})

	_, err := embedder.EmbedBatch(context.Background(), []string{"first", "second"})
	if err == nil {
		t.Fatal("expected error for duplicated embedding index")
	}
	if !strings.Contains(err.Error(), "no embedding returned") {
		t.Errorf("unexpected error: %v", err)
	}
}
