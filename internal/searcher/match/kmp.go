package match

// KMPTable returns the failure table of p: T[0] is -1 and T[k] is the
// position in p to resume comparing from after a mismatch at k. The table
// has len(p)+1 entries; the last one is used after a full match.
func KMPTable[T comparable](p []T) []int {
	n := len(p)
	t := make([]int, n+1)
	t[0] = -1
	if n == 0 {
		return t
	}
	pos, cnd := 1, 0
	for pos < n {
		if p[pos] == p[cnd] {
			t[pos] = t[cnd]
		} else {
			t[pos] = cnd
			for cnd >= 0 && p[pos] != p[cnd] {
				cnd = t[cnd]
			}
		}
		pos++
		cnd++
	}
	t[n] = cnd
	return t
}

type KMP[T comparable] struct {
	pattern []T
	table   []int
}

func NewKMP[T comparable](pattern []T) *KMP[T] {
	return &KMP[T]{pattern: pattern, table: KMPTable(pattern)}
}

func (m *KMP[T]) FindAll(text []T) []int {
	return collect(func(yield func(int) bool) { m.scan(text, yield) })
}

func (m *KMP[T]) Contains(text []T) bool {
	return found(func(yield func(int) bool) { m.scan(text, yield) })
}

func (m *KMP[T]) scan(text []T, yield func(int) bool) {
	n := len(m.pattern)
	if n == 0 {
		return
	}
	j, k := 0, 0
	for j < len(text) {
		if m.pattern[k] == text[j] {
			j++
			k++
			if k == n {
				if !yield(j - k) {
					return
				}
				k = m.table[k]
			}
			continue
		}
		k = m.table[k]
		if k < 0 {
			j++
			k++
		}
	}
}
