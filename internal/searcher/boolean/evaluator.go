// Package boolean evaluates parsed boolean queries against the inverted
// indexes. Every strategy shares one iterative post-order walk so query
// trees of any depth evaluate without growing the goroutine stack.
package boolean

import (
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/postings"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/parser"
)

// Evaluator answers boolean queries. The list index serves every strategy
// except Bitvecs, which reads the bitset index.
type Evaluator struct {
	lists *index.Index[postings.List]
	bits  *index.Index[postings.Bitset]
}

func New(lists *index.Index[postings.List], bits *index.Index[postings.Bitset]) *Evaluator {
	return &Evaluator{lists: lists, bits: bits}
}

// Evaluate returns the titles of the articles satisfying root, in article
// id order. A nil tree yields no titles.
func (e *Evaluator) Evaluate(root parser.Node, s Strategy) []string {
	if root == nil {
		return []string{}
	}
	if s == Bitvecs {
		return e.bits.Titles(walk(root, e.bitsetOps()))
	}
	return e.lists.Titles(walk(root, e.listOps(s)))
}

// IDs is Evaluate without the title mapping.
func (e *Evaluator) IDs(root parser.Node, s Strategy) []int {
	if root == nil {
		return []int{}
	}
	if s == Bitvecs {
		ids := walk(root, e.bitsetOps()).IDs()
		n := e.bits.ArticleCount()
		for i, id := range ids {
			if id >= n {
				return ids[:i]
			}
		}
		return ids
	}
	return walk(root, e.listOps(s)).IDs()
}

type ops[S postings.Set[S]] struct {
	lookup   func(term string) S
	and      func(a, b S) S
	or       func(a, b S) S
	not      func(a S) S
	deMorgan bool
}

func (e *Evaluator) listOps(s Strategy) ops[postings.List] {
	n := e.lists.ArticleCount()
	o := ops[postings.List]{
		lookup: e.lists.Lookup,
		and:    postings.List.Intersect,
		or:     postings.List.Union,
		not:    func(a postings.List) postings.List { return a.Complement(n) },
	}
	if s == BinarySearch || s == Hybrid {
		o.and = postings.List.IntersectAdaptive
	}
	o.deMorgan = s == DeMorgan || s == Hybrid
	return o
}

func (e *Evaluator) bitsetOps() ops[postings.Bitset] {
	n := e.bits.ArticleCount()
	return ops[postings.Bitset]{
		lookup: e.bits.Lookup,
		and:    postings.Bitset.Intersect,
		or:     postings.Bitset.Union,
		not:    func(a postings.Bitset) postings.Bitset { return a.Complement(n) },
	}
}

type frame struct {
	node     parser.Node
	expanded bool
}

// walk evaluates root in post-order using explicit stacks for pending nodes
// and intermediate sets.
func walk[S postings.Set[S]](root parser.Node, o ops[S]) S {
	pending := []frame{{node: root}}
	var values []S
	pop := func() S {
		v := values[len(values)-1]
		values = values[:len(values)-1]
		return v
	}
	for len(pending) > 0 {
		f := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		if o.deMorgan && !f.expanded {
			f.node = rewrite(f.node)
		}
		switch n := f.node.(type) {
		case parser.Name:
			values = append(values, o.lookup(n.Term))
		case parser.Invert:
			if f.expanded {
				values = append(values, o.not(pop()))
				continue
			}
			pending = append(pending, frame{node: n, expanded: true}, frame{node: n.Child})
		case parser.Binary:
			if f.expanded {
				right := pop()
				left := pop()
				if n.Op == parser.And {
					values = append(values, o.and(left, right))
				} else {
					values = append(values, o.or(left, right))
				}
				continue
			}
			pending = append(pending, frame{node: n, expanded: true}, frame{node: n.Right}, frame{node: n.Left})
		}
	}
	return values[0]
}

// rewrite applies De Morgan's law to a binary node whose children are both
// negations: !a & !b becomes !(a | b) and !a | !b becomes !(a & b). Any
// other node is returned unchanged.
func rewrite(n parser.Node) parser.Node {
	b, ok := n.(parser.Binary)
	if !ok {
		return n
	}
	left, lok := b.Left.(parser.Invert)
	right, rok := b.Right.(parser.Invert)
	if !lok || !rok {
		return n
	}
	return parser.Invert{Child: parser.Binary{Op: b.Op.Flip(), Left: left.Child, Right: right.Child}}
}
