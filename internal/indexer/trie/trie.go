// Package trie is a character trie over the vocabulary used for prefix
// ("wildcard") queries. Terminal nodes carry the postings of the word that
// ends there.
package trie

import (
	"slices"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/postings"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/tokenizer"
)

// Wildcard marks a prefix query when it is the last rune of a pattern.
const Wildcard = "*"

type node struct {
	children map[rune]*node
	terminal bool
	ids      postings.List
}

func newNode() *node {
	return &node{children: make(map[rune]*node)}
}

// Trie is built single-threaded and is safe for concurrent reads afterwards.
type Trie struct {
	root  *node
	nodes int
}

func New() *Trie {
	return &Trie{root: newNode(), nodes: 1}
}

// Insert records that article id contains word. Ids for one word must arrive
// in non-decreasing order; repeats are collapsed.
func (t *Trie) Insert(word string, id int) {
	cur := t.root
	for _, r := range tokenizer.Normalize(word) {
		next, ok := cur.children[r]
		if !ok {
			next = newNode()
			cur.children[r] = next
			t.nodes++
		}
		cur = next
	}
	cur.terminal = true
	cur.ids = cur.ids.Add(id)
}

// FindExact returns the postings of word, empty when word was never
// inserted.
func (t *Trie) FindExact(word string) postings.List {
	n := t.walk(word)
	if n == nil || !n.terminal {
		return postings.List{}
	}
	return slices.Clone(n.ids)
}

// FindPrefix returns every article containing a word that starts with
// prefix. The empty prefix matches the whole vocabulary.
func (t *Trie) FindPrefix(prefix string) postings.List {
	n := t.walk(prefix)
	if n == nil {
		return postings.List{}
	}
	var ids []int
	stack := []*node{n}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		ids = append(ids, cur.ids...)
		for _, child := range cur.children {
			stack = append(stack, child)
		}
	}
	if len(ids) == 0 {
		return postings.List{}
	}
	slices.Sort(ids)
	return postings.List(slices.Compact(ids))
}

// Find dispatches on a trailing wildcard: "wor*" is a prefix query, anything
// else an exact one.
func (t *Trie) Find(pattern string) postings.List {
	if prefix, ok := strings.CutSuffix(pattern, Wildcard); ok {
		return t.FindPrefix(prefix)
	}
	return t.FindExact(pattern)
}

func (t *Trie) walk(word string) *node {
	cur := t.root
	for _, r := range tokenizer.Normalize(word) {
		next, ok := cur.children[r]
		if !ok {
			return nil
		}
		cur = next
	}
	return cur
}

// Stats describes the shape of the trie.
type Stats struct {
	Nodes       int
	Terminals   int
	Leaves      int
	MaxChildren int
	MaxDepth    int
	// AvgChildren is the mean fan-out of inner nodes.
	AvgChildren float64
}

func (t *Trie) Stats() Stats {
	type frame struct {
		n     *node
		depth int
	}
	var s Stats
	stack := []frame{{t.root, 0}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		s.Nodes++
		if f.n.terminal {
			s.Terminals++
		}
		if len(f.n.children) == 0 {
			s.Leaves++
		}
		s.MaxChildren = max(s.MaxChildren, len(f.n.children))
		s.MaxDepth = max(s.MaxDepth, f.depth)
		for _, child := range f.n.children {
			stack = append(stack, frame{child, f.depth + 1})
		}
	}
	if inner := s.Nodes - s.Leaves; inner > 0 {
		s.AvgChildren = float64(s.Nodes-1) / float64(inner)
	}
	return s
}

// NodeCount is the number of nodes including the root.
func (t *Trie) NodeCount() int {
	return t.nodes
}
