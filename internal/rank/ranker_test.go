package rank

import (
	"context"
	"errors"
	"math"
	"reflect"
	"sort"
	"testing"
)

// fakeEmbedder maps known texts to fixed vectors
type fakeEmbedder struct {
	vectors map[string][]float64
	err     error
}

func (f *fakeEmbedder) Embed(_ context.Context, text string) ([]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.vectors[text], nil
}

func (f *fakeEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	if f.err != nil {
		return nil, f.err
	}
	vecs := make([][]float64, len(texts))
	for i, t := range texts {
		vecs[i] = f.vectors[t]
	}
	return vecs, nil
}

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
		want float64
	}{
		{"identical", []float64{1, 2, 3}, []float64{1, 2, 3}, 1},
		{"opposite", []float64{1, 0}, []float64{-1, 0}, -1},
		{"orthogonal", []float64{1, 0}, []float64{0, 1}, 0},
		{"zero vector", []float64{0, 0}, []float64{1, 1}, 0},
		{"both zero", []float64{0, 0}, []float64{0, 0}, 0},
		{"dimension mismatch", []float64{1, 2}, []float64{1, 2, 3}, 0},
		{"empty", nil, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("CosineSimilarity = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTopN_Ordering(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"Where is Paris?":    {1, 0, 0},
		"Paris is rainy":     {0.2, 1, 0},
		"Paris is in France": {0.9, 0.1, 0},
	}}
	ranker := NewRanker(embedder)

	got, err := ranker.TopN(context.Background(), "Where is Paris?", []string{"Paris is rainy", "Paris is in France"}, 1)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"Paris is in France"}) {
		t.Errorf("TopN = %v, want [Paris is in France]", got)
	}
}

func TestTopN_PermutationWhenRequestingAll(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"anchor": {1, 0},
		"a":      {0.9, 0.1},
		"b":      {0.1, 0.9},
		"c":      {0.5, 0.5},
		"d":      {-1, 0},
	}}
	ranker := NewRanker(embedder)
	candidates := []string{"a", "b", "c", "d"}

	got, err := ranker.TopN(context.Background(), "anchor", candidates, len(candidates))
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}

	// Must be a permutation of the input: nothing dropped or duplicated
	if len(got) != len(candidates) {
		t.Fatalf("expected %d results, got %d", len(candidates), len(got))
	}
	sortedGot := append([]string(nil), got...)
	sortedWant := append([]string(nil), candidates...)
	sort.Strings(sortedGot)
	sort.Strings(sortedWant)
	if !reflect.DeepEqual(sortedGot, sortedWant) {
		t.Errorf("result %v is not a permutation of %v", got, candidates)
	}

	// And sorted by non-increasing similarity
	anchorVec := embedder.vectors["anchor"]
	for i := 1; i < len(got); i++ {
		prev := CosineSimilarity(anchorVec, embedder.vectors[got[i-1]])
		cur := CosineSimilarity(anchorVec, embedder.vectors[got[i]])
		if cur > prev {
			t.Errorf("results out of order at %d: %v", i, got)
		}
	}
}

func TestTopN_Bounds(t *testing.T) {
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"anchor": {1, 0},
		"a":      {1, 0},
		"b":      {0, 1},
	}}
	ranker := NewRanker(embedder)
	candidates := []string{"a", "b"}

	if got, err := ranker.TopN(context.Background(), "anchor", candidates, 0); err != nil || len(got) != 0 {
		t.Errorf("n=0: expected empty result, got %v (err %v)", got, err)
	}
	if got, err := ranker.TopN(context.Background(), "anchor", nil, 5); err != nil || len(got) != 0 {
		t.Errorf("no candidates: expected empty result, got %v (err %v)", got, err)
	}
	got, err := ranker.TopN(context.Background(), "anchor", candidates, 100)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if len(got) != len(candidates) {
		t.Errorf("n>len: expected %d results, got %d", len(candidates), len(got))
	}
}

func TestTopN_StableTies(t *testing.T) {
	// All candidates embed identically, so ranking must keep input order
	vec := []float64{1, 1}
	embedder := &fakeEmbedder{vectors: map[string][]float64{
		"anchor": {1, 0},
		"first":  vec,
		"second": vec,
		"third":  vec,
	}}
	ranker := NewRanker(embedder)

	got, err := ranker.TopN(context.Background(), "anchor", []string{"first", "second", "third"}, 3)
	if err != nil {
		t.Fatalf("TopN failed: %v", err)
	}
	if !reflect.DeepEqual(got, []string{"first", "second", "third"}) {
		t.Errorf("tied scores reordered: %v", got)
	}
}

func TestTopN_EmbedderError(t *testing.T) {
	wantErr := errors.New("embedding service down")
	ranker := NewRanker(&fakeEmbedder{err: wantErr})

	if _, err := ranker.TopN(context.Background(), "anchor", []string{"a"}, 1); !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped embedder error, got %v", err)
	}
}
