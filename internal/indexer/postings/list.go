package postings

import (
	"fmt"
	"math"
	"math/bits"
	"slices"
)

// List is a strictly increasing sequence of article ids.
type List []int

// Add appends id unless it equals the last element. Ids must arrive in
// non-decreasing order.
func (l List) Add(id int) List {
	if n := len(l); n > 0 && l[n-1] == id {
		return l
	}
	return append(l, id)
}

func (l List) Contains(id int) bool {
	_, found := slices.BinarySearch(l, id)
	return found
}

func (l List) Len() int { return len(l) }

// IDs returns a copy of the ids, never nil, so callers cannot reach into an
// index's postings.
func (l List) IDs() []int {
	out := make([]int, len(l))
	copy(out, l)
	return out
}

// Titles maps ids to titles. An id outside titles means the index was built
// inconsistently and panics.
func (l List) Titles(titles []string) []string {
	out := make([]string, len(l))
	for i, id := range l {
		if id < 0 || id >= len(titles) {
			panic(fmt.Sprintf("postings: article id %d out of range [0,%d)", id, len(titles)))
		}
		out[i] = titles[id]
	}
	return out
}

// Union merges both lists in one co-scan.
func (l List) Union(other List) List {
	out := make(List, 0, len(l)+len(other))
	i, j := 0, 0
	for i < len(l) && j < len(other) {
		switch {
		case l[i] < other[j]:
			out = append(out, l[i])
			i++
		case l[i] > other[j]:
			out = append(out, other[j])
			j++
		default:
			out = append(out, l[i])
			i++
			j++
		}
	}
	out = append(out, l[i:]...)
	return append(out, other[j:]...)
}

// Intersect keeps the ids present in both lists using a linear co-scan.
func (l List) Intersect(other List) List {
	out := make(List, 0, min(len(l), len(other)))
	i, j := 0, 0
	for i < len(l) && j < len(other) {
		switch {
		case l[i] < other[j]:
			i++
		case l[i] > other[j]:
			j++
		default:
			out = append(out, l[i])
			i++
			j++
		}
	}
	return out
}

// Complement scans [0, universe) and keeps every id not in l.
func (l List) Complement(universe int) List {
	out := make(List, 0, max(universe-len(l), 0))
	j := 0
	for id := 0; id < universe; id++ {
		if j < len(l) && l[j] == id {
			j++
			continue
		}
		out = append(out, id)
	}
	return out
}

// IntersectAdaptive picks between probing the shorter list into the longer
// one by binary search and a linear co-scan, based on which costs fewer
// comparisons for the two lengths.
func (l List) IntersectAdaptive(other List) List {
	a, b := len(l), len(other)
	switch {
	case a > 0 && a+b > ilog2(a)*b:
		return lookupEach(other, l)
	case b > 0 && a+b > ilog2(b)*a:
		return lookupEach(l, other)
	default:
		return l.Intersect(other)
	}
}

// lookupEach looks up every id of small in large. The result stays sorted because
// small is.
func lookupEach(small, large List) List {
	out := make(List, 0, len(small))
	for _, id := range small {
		if _, found := slices.BinarySearch(large, id); found {
			out = append(out, id)
		}
	}
	return out
}

func ilog2(n int) int {
	return bits.Len(uint(n)) - 1
}

// ListEncoding builds List postings.
type ListEncoding struct{}

func (ListEncoding) Name() string { return "list" }

func (ListEncoding) New(int) List { return nil }

func (ListEncoding) Grow(s List, _ int) List { return s }

func (ListEncoding) Capacity(int) int { return math.MaxInt }
