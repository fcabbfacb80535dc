package match

// BoyerMoore scans right to left and shifts by the larger of the bad
// character and strong good suffix rules.
type BoyerMoore[T comparable] struct {
	pattern []T
	// occurrences maps each symbol to its positions in the pattern, highest
	// first.
	occurrences map[T][]int
	// borders[j] is the length of the longest suffix of pattern[:j+1] that
	// is also a suffix of the pattern.
	borders []int
	// bigL[i] is the largest end position j < n-1 of a copy of the suffix
	// pattern[i:] not preceded by pattern[i-1], or 0 when there is none.
	bigL []int
	// smallL[i] is the length of the longest suffix of pattern[i:] that is
	// also a prefix of the pattern.
	smallL []int
}

func NewBoyerMoore[T comparable](pattern []T) *BoyerMoore[T] {
	bm := &BoyerMoore[T]{
		pattern:     pattern,
		occurrences: make(map[T][]int),
		borders:     suffixBorders(pattern),
	}
	for i := len(pattern) - 1; i >= 0; i-- {
		bm.occurrences[pattern[i]] = append(bm.occurrences[pattern[i]], i)
	}
	bm.bigL, bm.smallL = goodSuffixTables(bm.borders)
	return bm
}

func (bm *BoyerMoore[T]) FindAll(text []T) []int {
	return collect(func(yield func(int) bool) { bm.scan(text, yield) })
}

func (bm *BoyerMoore[T]) Contains(text []T) bool {
	return found(func(yield func(int) bool) { bm.scan(text, yield) })
}

func (bm *BoyerMoore[T]) scan(text []T, yield func(int) bool) {
	n, m := len(bm.pattern), len(text)
	if n == 0 || n > m {
		return
	}
	for k := n - 1; k < m; {
		i, h := n-1, k
		for i > 0 && bm.pattern[i] == text[h] {
			i--
			h--
		}
		if i == 0 && bm.pattern[0] == text[h] {
			if !yield(k - n + 1) {
				return
			}
			k += bm.matchShift()
			continue
		}
		k += bm.shift(text[h], i)
	}
}

// shift is the distance to move the pattern after text symbol c mismatched
// pattern position i.
func (bm *BoyerMoore[T]) shift(c T, i int) int {
	n := len(bm.pattern)
	bad := i + 1
	for _, pos := range bm.occurrences[c] {
		if pos < i {
			bad = i - pos
			break
		}
	}
	var good int
	switch {
	case i >= n-1:
		good = 1
	case bm.bigL[i+1] != 0:
		good = n - bm.bigL[i+1]
	default:
		good = n - bm.smallL[i+1]
	}
	return max(bad, good)
}

// matchShift is the distance to move the pattern after a full match.
func (bm *BoyerMoore[T]) matchShift() int {
	n := len(bm.pattern)
	if n < 2 {
		return n
	}
	return n - bm.smallL[1]
}

// zArray returns z where z[i] is the length of the longest common prefix of
// s and s[i:]. z[0] is left at 0.
func zArray[T comparable](s []T) []int {
	n := len(s)
	z := make([]int, n)
	l, r := 0, 0
	for i := 1; i < n; i++ {
		if i < r {
			z[i] = min(r-i, z[i-l])
		}
		for i+z[i] < n && s[z[i]] == s[i+z[i]] {
			z[i]++
		}
		if i+z[i] > r {
			l, r = i, i+z[i]
		}
	}
	return z
}

func suffixBorders[T comparable](p []T) []int {
	n := len(p)
	rev := make([]T, n)
	for i, c := range p {
		rev[n-1-i] = c
	}
	z := zArray(rev)
	borders := make([]int, n)
	for i, v := range z {
		borders[n-1-i] = v
	}
	return borders
}

func goodSuffixTables(borders []int) (bigL, smallL []int) {
	n := len(borders)
	bigL = make([]int, n)
	smallL = make([]int, n)
	for j := 1; j < n; j++ {
		if i := n - borders[j-1]; i < n {
			bigL[i] = j
		}
		prefix := 0
		if borders[j-1] == j {
			prefix = j
		}
		if j > 1 {
			prefix = max(prefix, smallL[n-j+1])
		}
		smallL[n-j] = prefix
	}
	return bigL, smallL
}
