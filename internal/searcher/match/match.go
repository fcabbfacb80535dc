// Package match implements exact pattern matching over sequences of any
// comparable symbol: Knuth-Morris-Pratt, Boyer-Moore with the strong good
// suffix rule, and Apostolico-Giancarlo. Every matcher reports the 0-based
// start offset of each occurrence, overlapping ones included, and all of
// them agree on every pattern and text. An empty pattern matches nothing.
package match

// Matcher finds a fixed pattern in texts.
type Matcher[T comparable] interface {
	FindAll(text []T) []int
	Contains(text []T) bool
}

// collect runs scan to completion and gathers every reported offset.
func collect(scan func(yield func(int) bool)) []int {
	out := []int{}
	scan(func(start int) bool {
		out = append(out, start)
		return true
	})
	return out
}

// found reports whether scan reports anything, stopping at the first hit.
func found(scan func(yield func(int) bool)) bool {
	hit := false
	scan(func(int) bool {
		hit = true
		return false
	})
	return hit
}
