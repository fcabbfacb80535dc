// Package index builds an inverted index from term to article set. The
// index is generic over the postings encoding so the same builder produces
// both the list and the bitset variants.
package index

import (
	"fmt"
	"slices"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/postings"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/tokenizer"
)

// Builder accumulates articles in corpus order. It is not safe for
// concurrent use; the Index it produces is immutable.
type Builder[S postings.Set[S]] struct {
	enc      postings.Encoding[S]
	terms    map[string]S
	titles   []string
	capacity int
}

func NewBuilder[S postings.Set[S]](enc postings.Encoding[S]) *Builder[S] {
	return &Builder[S]{
		enc:      enc,
		terms:    make(map[string]S),
		capacity: enc.Capacity(0),
	}
}

// Add assigns the next article id to title and records every token under
// it. An empty title is skipped without consuming an id; ok reports whether
// the article was indexed.
func (b *Builder[S]) Add(title string, tokens []string) (id int, ok bool) {
	if title == "" {
		return -1, false
	}
	id = len(b.titles)
	b.titles = append(b.titles, title)
	if count := len(b.titles); count > b.capacity {
		for term, set := range b.terms {
			b.terms[term] = b.enc.Grow(set, count)
		}
		b.capacity = b.enc.Capacity(count)
	}
	for _, tok := range tokens {
		term := tokenizer.Normalize(tok)
		set, exists := b.terms[term]
		if !exists {
			set = b.enc.New(len(b.titles))
		}
		b.terms[term] = set.Add(id)
	}
	return id, true
}

func (b *Builder[S]) ArticleCount() int {
	return len(b.titles)
}

// Build freezes the accumulated state. The builder must not be used
// afterwards.
func (b *Builder[S]) Build() *Index[S] {
	idx := &Index[S]{
		enc:    b.enc,
		terms:  b.terms,
		titles: b.titles,
	}
	b.terms = nil
	b.titles = nil
	return idx
}

// Index maps normalized terms to article sets.
type Index[S postings.Set[S]] struct {
	enc    postings.Encoding[S]
	terms  map[string]S
	titles []string
}

// Lookup returns the articles containing term. An absent term yields the
// empty set.
func (x *Index[S]) Lookup(term string) S {
	if set, ok := x.terms[tokenizer.Normalize(term)]; ok {
		return set
	}
	return x.enc.New(0)
}

func (x *Index[S]) Titles(set S) []string {
	return set.Titles(x.titles)
}

// Title returns the title of article id and panics when id was never
// assigned.
func (x *Index[S]) Title(id int) string {
	if id < 0 || id >= len(x.titles) {
		panic(fmt.Sprintf("index: article id %d out of range [0,%d)", id, len(x.titles)))
	}
	return x.titles[id]
}

func (x *Index[S]) ArticleCount() int {
	return len(x.titles)
}

func (x *Index[S]) VocabularySize() int {
	return len(x.terms)
}

// Terms returns the vocabulary in lexical order.
func (x *Index[S]) Terms() []string {
	terms := make([]string, 0, len(x.terms))
	for t := range x.terms {
		terms = append(terms, t)
	}
	slices.Sort(terms)
	return terms
}

// Universe returns the set of every article id.
func (x *Index[S]) Universe() S {
	return x.enc.New(0).Complement(len(x.titles))
}

func (x *Index[S]) Encoding() string {
	return x.enc.Name()
}
