// Package indexer builds every search structure in one pass over the
// corpus: the list and bitset inverted indexes, the prefix trie, the triple
// index, and the per-article text used for phrase verification.
package indexer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/corpus"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/postings"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/trie"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/triple"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/textstore"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/logger"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/metrics"
)

// ScanFunc feeds articles to fn in corpus order.
type ScanFunc func(fn func(corpus.Article) error) error

// TextSink receives the cleaned text of every indexed article.
type TextSink interface {
	Put(ctx context.Context, id int, text string) error
}

type Stats struct {
	Articles   int
	Skipped    int
	Vocabulary int
	Triples    int
	Trie       trie.Stats
	Duration   time.Duration
}

// Engine is immutable once built and safe for concurrent readers.
type Engine struct {
	Lists   *index.Index[postings.List]
	Bits    *index.Index[postings.Bitset]
	Trie    *trie.Trie
	Triples *triple.Index
	stats   Stats
}

type options struct {
	sink    TextSink
	metrics *metrics.Metrics
	logger  *slog.Logger
}

type Option func(*options)

// WithTextSink stores each article's text while building.
func WithTextSink(s TextSink) Option {
	return func(o *options) { o.sink = s }
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(o *options) { o.metrics = m }
}

// Build consumes scan once and returns the finished engine. Untitled
// articles are skipped and consume no id.
func Build(ctx context.Context, scan ScanFunc, opts ...Option) (*Engine, error) {
	o := options{logger: logger.WithComponent("indexer")}
	for _, opt := range opts {
		opt(&o)
	}
	start := time.Now()

	lists := index.NewBuilder[postings.List](postings.ListEncoding{})
	bits := index.NewBuilder[postings.Bitset](postings.BitsetEncoding{})
	tr := trie.New()
	triples := triple.New()
	skipped := 0

	err := scan(func(a corpus.Article) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		tokens := tokenizer.Tokenize(a.Body)
		id, ok := lists.Add(a.Title, tokens)
		if !ok {
			skipped++
			return nil
		}
		bits.Add(a.Title, tokens)
		for _, tok := range tokens {
			tr.Insert(tok, id)
		}
		triples.Add(id, tokens)
		if o.sink != nil {
			if err := o.sink.Put(ctx, id, textstore.Join(tokens)); err != nil {
				return fmt.Errorf("storing text of article %d: %w", id, err)
			}
		}
		if (id+1)%10000 == 0 {
			o.logger.Debug("indexing progress", "articles", id+1)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("building index: %w", err)
	}
	if f, ok := o.sink.(textstore.Flusher); ok {
		if err := f.Flush(ctx); err != nil {
			return nil, fmt.Errorf("flushing article texts: %w", err)
		}
	}

	e := &Engine{
		Lists:   lists.Build(),
		Bits:    bits.Build(),
		Trie:    tr,
		Triples: triples,
	}
	e.stats = Stats{
		Articles:   e.Lists.ArticleCount(),
		Skipped:    skipped,
		Vocabulary: e.Lists.VocabularySize(),
		Triples:    triples.Len(),
		Trie:       tr.Stats(),
		Duration:   time.Since(start),
	}
	e.observe(o.metrics)
	o.logger.Info("index built",
		"articles", e.stats.Articles,
		"skipped", e.stats.Skipped,
		"vocabulary", e.stats.Vocabulary,
		"triples", e.stats.Triples,
		"trie_nodes", e.stats.Trie.Nodes,
		"duration", e.stats.Duration,
	)
	return e, nil
}

// BuildFile builds from the corpus file at path.
func BuildFile(ctx context.Context, path string, opts ...Option) (*Engine, error) {
	return Build(ctx, func(fn func(corpus.Article) error) error {
		return corpus.ScanFile(path, fn)
	}, opts...)
}

func (e *Engine) observe(m *metrics.Metrics) {
	if m == nil {
		return
	}
	m.ArticlesIndexed.Set(float64(e.stats.Articles))
	m.ArticlesSkipped.Add(float64(e.stats.Skipped))
	m.VocabularySize.Set(float64(e.stats.Vocabulary))
	m.TrieNodes.Set(float64(e.stats.Trie.Nodes))
	m.TriplesIndexed.Set(float64(e.stats.Triples))
	m.IndexBuildDuration.Observe(e.stats.Duration.Seconds())
}

func (e *Engine) Stats() Stats {
	return e.stats
}

// Lookup returns the titles of the articles containing word.
func (e *Engine) Lookup(word string) []string {
	return e.Lists.Titles(e.Lists.Lookup(word))
}
