// Package nlp provides the light text processing wikichat does itself:
// stopword filtering, proper-noun extraction, and sentence splitting.
// Anything heavier is delegated to a model provider.
package nlp

import (
	_ "embed"
	"fmt"
	"os"
	"regexp"
	"strings"
)

//go:embed stopwords.txt
var defaultStopwords string

var wordSplitPattern = regexp.MustCompile(`[\s.?!]+`)

// Stopwords is a set of common words excluded from content-word extraction
type Stopwords struct {
	set map[string]struct{}
}

// LoadStopwords reads a newline-delimited stopword list from path.
// An empty path loads the built-in list.
func LoadStopwords(path string) (*Stopwords, error) {
	text := defaultStopwords
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read stopwords: %w", err)
		}
		text = string(data)
	}

	set := make(map[string]struct{})
	for _, line := range strings.Split(text, "\n") {
		word := strings.TrimSpace(line)
		if word != "" {
			set[word] = struct{}{}
		}
	}

	return &Stopwords{set: set}, nil
}

// Contains reports whether word is a stopword (case-insensitive)
func (s *Stopwords) Contains(word string) bool {
	_, ok := s.set[strings.ToLower(word)]
	return ok
}

// Len returns the number of stopwords in the set
func (s *Stopwords) Len() int {
	return len(s.set)
}

// ContentWords returns the set of lowercase words in query after
// stopword removal. Words are split on whitespace and sentence punctuation.
func (s *Stopwords) ContentWords(query string) map[string]struct{} {
	words := make(map[string]struct{})
	for _, w := range wordSplitPattern.Split(strings.ToLower(query), -1) {
		if w == "" {
			continue
		}
		if _, stop := s.set[w]; stop {
			continue
		}
		words[w] = struct{}{}
	}
	return words
}
