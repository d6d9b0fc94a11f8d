package nlp

import (
	"context"
	"errors"
	"reflect"
	"testing"
)

func mustStopwords(t *testing.T) *Stopwords {
	t.Helper()
	s, err := LoadStopwords("")
	if err != nil {
		t.Fatalf("load built-in stopwords: %v", err)
	}
	return s
}

func TestContentWords(t *testing.T) {
	stop := mustStopwords(t)

	words := stop.ContentWords("What is the mass of Saturn?")

	for _, want := range []string{"mass", "saturn"} {
		if _, ok := words[want]; !ok {
			t.Errorf("expected %q in content words, got %v", want, words)
		}
	}
	for _, excluded := range []string{"what", "is", "the", "of"} {
		if _, ok := words[excluded]; ok {
			t.Errorf("stopword %q should have been removed", excluded)
		}
	}
}

func TestContentWords_Empty(t *testing.T) {
	stop := mustStopwords(t)

	if words := stop.ContentWords(""); len(words) != 0 {
		t.Errorf("expected no content words for empty query, got %v", words)
	}
	if words := stop.ContentWords("the of and"); len(words) != 0 {
		t.Errorf("expected no content words for all-stopword query, got %v", words)
	}
}

func TestLoadStopwords_MissingFile(t *testing.T) {
	if _, err := LoadStopwords("/nonexistent/stopwords.txt"); err == nil {
		t.Error("expected error for missing stopwords file")
	}
}

func TestHeuristicExtractor(t *testing.T) {
	extractor := NewHeuristicExtractor(mustStopwords(t))

	tests := []struct {
		query string
		want  []string
	}{
		{"Who is Joe Biden?", []string{"Joe Biden"}},
		{"The", nil},
		{"How many moons does Saturn have?", []string{"Saturn"}},
		{"Did Marie Curie ever meet Albert Einstein?", []string{"Marie Curie", "Albert Einstein"}},
		{"hello there", nil},
		{"", nil},
	}

	for _, tt := range tests {
		got, err := extractor.Entities(context.Background(), tt.query)
		if err != nil {
			t.Fatalf("Entities(%q) failed: %v", tt.query, err)
		}
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Entities(%q) = %v, want %v", tt.query, got, tt.want)
		}
	}
}

func TestLLMExtractor(t *testing.T) {
	extractor := NewLLMExtractor(func(ctx context.Context, prompt string) (string, error) {
		return "- Joe Biden\n- Saturn\n", nil
	})

	got, err := extractor.Entities(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Entities failed: %v", err)
	}
	want := []string{"Joe Biden", "Saturn"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Entities = %v, want %v", got, want)
	}
}

func TestLLMExtractor_None(t *testing.T) {
	extractor := NewLLMExtractor(func(ctx context.Context, prompt string) (string, error) {
		return "NONE", nil
	})

	got, err := extractor.Entities(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Entities failed: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no entities, got %v", got)
	}
}

func TestLLMExtractor_GenerateError(t *testing.T) {
	wantErr := errors.New("model unavailable")
	extractor := NewLLMExtractor(func(ctx context.Context, prompt string) (string, error) {
		return "", wantErr
	})

	if _, err := extractor.Entities(context.Background(), "hello"); !errors.Is(err, wantErr) {
		t.Errorf("expected wrapped generate error, got %v", err)
	}
}

func TestSplitSentences(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{
			name: "basic",
			text: "Saturn is a planet. It has rings! Does it have moons?",
			want: []string{"Saturn is a planet.", "It has rings!", "Does it have moons?"},
		},
		{
			name: "decimal not split",
			text: "Pi is about 3.14 in short form. That is all.",
			want: []string{"Pi is about 3.14 in short form.", "That is all."},
		},
		{
			name: "trailing text without punctuation",
			text: "First sentence. trailing fragment",
			want: []string{"First sentence.", "trailing fragment"},
		},
		{
			name: "collapses whitespace",
			text: "One.\n\nTwo.",
			want: []string{"One.", "Two."},
		},
		{
			name: "empty",
			text: "",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SplitSentences(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitSentences(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}
