// Package rank scores candidate sentences by semantic similarity to an
// anchor query using a sentence-embedding model.
package rank

import (
	"context"
	"fmt"
	"math"
	"sort"
)

// Embedder turns text into a fixed-length dense vector. Implementations
// are treated as black boxes.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// CosineSimilarity computes dot(a,b)/(|a||b|). It returns 0 when either
// vector is zero or the dimensions disagree, rather than dividing by zero.
func CosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}

	var dot, normA, normB float64
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}

// Ranker ranks candidates against an anchor by cosine similarity
type Ranker struct {
	embedder Embedder
}

// NewRanker creates a new ranker
func NewRanker(embedder Embedder) *Ranker {
	return &Ranker{embedder: embedder}
}

// TopN returns the n candidates most similar to anchor, ordered by
// descending similarity. Exact-score ties keep input order (the sort is
// stable). n larger than the candidate count returns all candidates;
// n <= 0 or an empty candidate list returns nil.
func (r *Ranker) TopN(ctx context.Context, anchor string, candidates []string, n int) ([]string, error) {
	if n <= 0 || len(candidates) == 0 {
		return nil, nil
	}

	anchorVec, err := r.embedder.Embed(ctx, anchor)
	if err != nil {
		return nil, fmt.Errorf("embed anchor: %w", err)
	}

	candidateVecs, err := r.embedder.EmbedBatch(ctx, candidates)
	if err != nil {
		return nil, fmt.Errorf("embed candidates: %w", err)
	}
	if len(candidateVecs) != len(candidates) {
		return nil, fmt.Errorf("embedder returned %d vectors for %d candidates", len(candidateVecs), len(candidates))
	}

	type scored struct {
		text  string
		score float64
	}
	ranked := make([]scored, len(candidates))
	for i, text := range candidates {
		ranked[i] = scored{text: text, score: CosineSimilarity(anchorVec, candidateVecs[i])}
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if n > len(ranked) {
		n = len(ranked)
	}

	top := make([]string, n)
	for i := 0; i < n; i++ {
		top[i] = ranked[i].text
	}
	return top, nil
}
