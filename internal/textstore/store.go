// Package textstore keeps the cleaned token text of every article so that
// phrase queries can verify candidates. Text is stored as the article's
// normalized tokens joined by single spaces.
package textstore

import (
	"context"
	"strings"
)

// Store reads and writes article text by article id.
type Store interface {
	Put(ctx context.Context, id int, text string) error
	// Get returns ErrArticleTextMissing when id has no stored text.
	Get(ctx context.Context, id int) (string, error)
}

// Flusher is implemented by stores that buffer writes.
type Flusher interface {
	Flush(ctx context.Context) error
}

// Join renders tokens in the stored text format.
func Join(tokens []string) string {
	return strings.Join(tokens, " ")
}
