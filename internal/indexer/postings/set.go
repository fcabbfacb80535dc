// Package postings holds the two interchangeable encodings of an article
// set: a sorted id list and a word-packed bitset. Both satisfy Set and must
// denote the same abstract set for the same input.
package postings

// Set is the capability every postings encoding provides. Operations never
// mutate their receiver or argument except Add, which may reuse the
// receiver's storage and returns the updated set.
type Set[S any] interface {
	Add(id int) S
	Union(other S) S
	Intersect(other S) S
	Complement(universe int) S
	Contains(id int) bool
	Len() int
	IDs() []int
	Titles(titles []string) []string
}

// Encoding constructs and grows sets of one concrete representation. The
// index builder works only through Encoding and Set.
type Encoding[S Set[S]] interface {
	Name() string
	New(universe int) S
	// Grow extends s so it can address ids below universe.
	Grow(s S, universe int) S
	// Capacity reports how many ids a freshly created set can address
	// without growing when created for universe articles.
	Capacity(universe int) int
}
