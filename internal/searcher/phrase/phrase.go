// Package phrase answers exact phrase queries. Candidates are the articles
// containing every word of the phrase (or, for TripleBoyerMoore, every word
// triple); each candidate's stored text is then scanned word by word for the
// phrase itself.
package phrase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/postings"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/tokenizer"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/triple"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/match"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many candidate texts are verified at once.
const DefaultConcurrency = 8

// TextSource yields the stored text of an article.
type TextSource interface {
	Get(ctx context.Context, id int) (string, error)
}

type Matcher struct {
	lists       *index.Index[postings.List]
	triples     *triple.Index
	texts       TextSource
	concurrency int
	logger      *slog.Logger
}

func New(lists *index.Index[postings.List], triples *triple.Index, texts TextSource) *Matcher {
	return &Matcher{
		lists:       lists,
		triples:     triples,
		texts:       texts,
		concurrency: DefaultConcurrency,
		logger:      logger.WithComponent("phrase-matcher"),
	}
}

// WithConcurrency sets how many candidates are verified in parallel.
func (m *Matcher) WithConcurrency(n int) *Matcher {
	if n > 0 {
		m.concurrency = n
	}
	return m
}

// Search returns the ids, ascending, of the articles containing phrase as
// consecutive words. A missing article text fails the whole search with
// ErrArticleTextMissing.
func (m *Matcher) Search(ctx context.Context, phrase string, alg Algorithm) ([]int, error) {
	words := tokenizer.Fields(phrase)
	found, err := m.verify(ctx, phrase, words, alg, func(mt match.Matcher[string], text []string) []int {
		if mt.Contains(text) {
			return []int{}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(found))
	for _, c := range found {
		ids = append(ids, c.id)
	}
	return ids, nil
}

// Occurrences returns, per matching article, the word offsets at which the
// phrase starts.
func (m *Matcher) Occurrences(ctx context.Context, phrase string, alg Algorithm) (map[int][]int, error) {
	words := tokenizer.Fields(phrase)
	found, err := m.verify(ctx, phrase, words, alg, func(mt match.Matcher[string], text []string) []int {
		if starts := mt.FindAll(text); len(starts) > 0 {
			return starts
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := make(map[int][]int, len(found))
	for _, c := range found {
		out[c.id] = c.starts
	}
	return out, nil
}

// Titles maps ids to titles.
func (m *Matcher) Titles(ids []int) []string {
	return m.lists.Titles(postings.List(ids))
}

// Candidates returns the articles that may contain phrase under alg before
// any text is read.
func (m *Matcher) Candidates(phrase string, alg Algorithm) []int {
	return m.candidates(phrase, tokenizer.Fields(phrase), alg)
}

func (m *Matcher) candidates(phrase string, words []string, alg Algorithm) []int {
	if len(words) == 0 {
		return []int{}
	}
	if alg == TripleBoyerMoore {
		return m.triples.Fuzzy(phrase)
	}
	set := m.lists.Lookup(words[0])
	for _, w := range words[1:] {
		if set.Len() == 0 {
			break
		}
		set = set.IntersectAdaptive(m.lists.Lookup(w))
	}
	return set.IDs()
}

type hit struct {
	id     int
	starts []int
}

// verify scans the text of every candidate. check returns nil for a
// non-matching text.
func (m *Matcher) verify(
	ctx context.Context,
	phrase string,
	words []string,
	alg Algorithm,
	check func(match.Matcher[string], []string) []int,
) ([]hit, error) {
	cands := m.candidates(phrase, words, alg)
	if len(cands) == 0 {
		return nil, nil
	}
	mt := alg.matcher(words)
	results := make([][]int, len(cands))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.concurrency)
	for i, id := range cands {
		i, id := i, id
		g.Go(func() error {
			text, err := m.texts.Get(gctx, id)
			if err != nil {
				return fmt.Errorf("verifying article %d: %w", id, err)
			}
			results[i] = check(mt, storedWords(text))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	found := make([]hit, 0, len(cands))
	for i, starts := range results {
		if starts != nil {
			found = append(found, hit{id: cands[i], starts: starts})
		}
	}
	m.logger.Debug("phrase verified",
		"algorithm", alg.String(),
		"candidates", len(cands),
		"matches", len(found),
	)
	return found, nil
}

// storedWords splits text as written by textstore.Join: tokens separated by
// single spaces. Tokens may themselves contain other whitespace.
func storedWords(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, " ")
}
