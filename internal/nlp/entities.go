package nlp

import (
	"context"
	"fmt"
	"strings"
	"unicode"
)

// Extractor returns the named-entity spans in a query.
// Implementations are treated as black boxes by the rest of the system.
type Extractor interface {
	Entities(ctx context.Context, query string) ([]string, error)
}

// HeuristicExtractor finds proper nouns by capitalization: a span is a
// maximal run of capitalized tokens whose lowercase forms are not
// stopwords. It needs no network and is the default extractor.
type HeuristicExtractor struct {
	stopwords *Stopwords
}

// NewHeuristicExtractor creates a new heuristic extractor
func NewHeuristicExtractor(stopwords *Stopwords) *HeuristicExtractor {
	return &HeuristicExtractor{stopwords: stopwords}
}

// Entities returns the proper-noun spans in query, in order of appearance
func (e *HeuristicExtractor) Entities(_ context.Context, query string) ([]string, error) {
	var spans []string
	var current []string

	flush := func() {
		if len(current) > 0 {
			spans = append(spans, strings.Join(current, " "))
			current = nil
		}
	}

	for _, token := range strings.Fields(query) {
		word := strings.Trim(token, ".,!?;:\"'()[]")
		if word == "" || !isCapitalized(word) || e.stopwords.Contains(word) {
			flush()
			continue
		}
		current = append(current, word)
	}
	flush()

	return spans, nil
}

func isCapitalized(word string) bool {
	for _, r := range word {
		return unicode.IsUpper(r)
	}
	return false
}

// GenerateFunc produces a model completion for a prompt. It decouples the
// LLM-backed extractor from any concrete provider.
type GenerateFunc func(ctx context.Context, prompt string) (string, error)

// LLMExtractor asks a generative model to list the named entities in a
// query. Used when the heuristic extractor is too coarse.
type LLMExtractor struct {
	generate GenerateFunc
}

// NewLLMExtractor creates a new model-backed extractor
func NewLLMExtractor(generate GenerateFunc) *LLMExtractor {
	return &LLMExtractor{generate: generate}
}

const entityPrompt = "List the named entities (people, places, organizations, things) mentioned in the following message, one per line, with no other text. If there are none, reply with NONE.\n\nMessage: %s"

// Entities returns the named entities the model found in query
func (e *LLMExtractor) Entities(ctx context.Context, query string) ([]string, error) {
	reply, err := e.generate(ctx, fmt.Sprintf(entityPrompt, query))
	if err != nil {
		return nil, fmt.Errorf("extract entities: %w", err)
	}

	var entities []string
	for _, line := range strings.Split(reply, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))
		if line == "" || strings.EqualFold(line, "none") {
			continue
		}
		entities = append(entities, line)
	}
	return entities, nil
}
