// Package triple indexes every run of three consecutive words so that phrase
// queries can be answered approximately. An article matches a phrase when
// it contains every consecutive word triple of the phrase somewhere, not
// necessarily adjacent to each other, so phrases of four or more words may
// produce false positives.
package triple

import (
	"slices"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/tokenizer"
)

// Key is three consecutive normalized words.
type Key [3]string

// Index maps word triples to the ids of the articles containing them.
type Index struct {
	triples map[Key][]int
}

func New() *Index {
	return &Index{triples: make(map[Key][]int)}
}

// Add slides a window of width three over tokens and records id under each
// triple. Articles must be added in increasing id order.
func (x *Index) Add(id int, tokens []string) {
	for i := 0; i+2 < len(tokens); i++ {
		x.Insert(Key{
			tokenizer.Normalize(tokens[i]),
			tokenizer.Normalize(tokens[i+1]),
			tokenizer.Normalize(tokens[i+2]),
		}, id)
	}
}

// Insert records id under key, collapsing a repeat of the last id.
func (x *Index) Insert(key Key, id int) {
	ids := x.triples[key]
	if n := len(ids); n > 0 && ids[n-1] == id {
		return
	}
	x.triples[key] = append(ids, id)
}

// Fuzzy returns, in ascending order, the articles containing every
// consecutive triple of phrase. A phrase of fewer than three words, or one
// with a triple that occurs nowhere, matches nothing.
func (x *Index) Fuzzy(phrase string) []int {
	words := tokenizer.Fields(phrase)
	if len(words) < 3 {
		return []int{}
	}
	var candidates map[int]struct{}
	for i := 0; i+2 < len(words); i++ {
		ids, ok := x.triples[Key{words[i], words[i+1], words[i+2]}]
		if !ok {
			return []int{}
		}
		next := make(map[int]struct{}, len(ids))
		for _, id := range ids {
			if candidates == nil {
				next[id] = struct{}{}
			} else if _, keep := candidates[id]; keep {
				next[id] = struct{}{}
			}
		}
		candidates = next
		if len(candidates) == 0 {
			return []int{}
		}
	}
	out := make([]int, 0, len(candidates))
	for id := range candidates {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Len is the number of distinct triples.
func (x *Index) Len() int {
	return len(x.triples)
}
