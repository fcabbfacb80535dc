// Package tokenizer turns article bodies and query text into normalized
// terms. Normalization is lower-casing only: no stemming and no stop-word
// removal, so every surface word of the corpus stays searchable.
package tokenizer

import (
	"regexp"
	"strings"
)

// separators splits article bodies on sentence ends, blank lines, and
// punctuation that never belongs to a word.
var separators = regexp.MustCompile(`\. |\.\n|\n\n|; |[\[\]\{\}\\\n\(\) ",:/=?!*]`)

// Tokenize splits an article body into normalized terms, dropping empty
// pieces.
func Tokenize(body string) []string {
	parts := separators.Split(body, -1)
	tokens := make([]string, 0, len(parts))
	for _, part := range parts {
		if part == "" {
			continue
		}
		tokens = append(tokens, Normalize(part))
	}
	return tokens
}

// Fields splits query text on whitespace and normalizes each word.
func Fields(text string) []string {
	words := strings.Fields(text)
	for i, w := range words {
		words[i] = Normalize(w)
	}
	return words
}

func Normalize(term string) string {
	return strings.ToLower(term)
}
