package nlp

import "strings"

// SplitSentences splits plain text into sentences on terminal punctuation.
// Whitespace runs are collapsed; empty sentences are dropped. The last
// sentence is kept even without trailing punctuation.
func SplitSentences(text string) []string {
	text = strings.Join(strings.Fields(text), " ")

	var sentences []string
	var current strings.Builder

	flush := func() {
		sentence := strings.TrimSpace(current.String())
		if sentence != "" {
			sentences = append(sentences, sentence)
		}
		current.Reset()
	}

	runes := []rune(text)
	for i, r := range runes {
		current.WriteRune(r)

		if r == '.' || r == '!' || r == '?' {
			// Terminal only when followed by a space or end of text,
			// so decimals like "3.14" stay intact.
			if i+1 >= len(runes) || runes[i+1] == ' ' {
				flush()
			}
		}
	}
	flush()

	return sentences
}
