package match

import "fmt"

// ApostolicoGiancarlo is Boyer-Moore that remembers, for every text position
// it aligned the pattern's end with, how many symbols matched there. Later
// alignments skip over those stretches instead of comparing them again.
type ApostolicoGiancarlo[T comparable] struct {
	*BoyerMoore[T]
}

func NewApostolicoGiancarlo[T comparable](pattern []T) *ApostolicoGiancarlo[T] {
	return &ApostolicoGiancarlo[T]{BoyerMoore: NewBoyerMoore(pattern)}
}

func (ag *ApostolicoGiancarlo[T]) FindAll(text []T) []int {
	return collect(func(yield func(int) bool) { ag.scan(text, yield) })
}

func (ag *ApostolicoGiancarlo[T]) Contains(text []T) bool {
	return found(func(yield func(int) bool) { ag.scan(text, yield) })
}

func (ag *ApostolicoGiancarlo[T]) scan(text []T, yield func(int) bool) {
	p := ag.pattern
	n, m := len(p), len(text)
	if n == 0 || n > m {
		return
	}
	// matched[h] is the length of the suffix match found when the pattern
	// ended at h, or 0 when the pattern never ended there.
	matched := make([]int, m)
	for j := n - 1; j < m; {
		i, h := n-1, j
		for {
			if matched[h] == 0 {
				if p[i] == text[h] {
					if i == 0 {
						matched[j] = n
						if !yield(j - n + 1) {
							return
						}
						j += ag.matchShift()
						break
					}
					i--
					h--
					continue
				}
				matched[j] = j - h
				j += ag.shift(text[h], i)
				break
			}

			mh, ni := matched[h], ag.borders[i]
			switch {
			case mh < ni || (mh == ni && ni < i+1):
				i -= mh
				h -= mh
				continue
			case mh >= ni && ni == i+1:
				matched[j] = n
				if !yield(j - n + 1) {
					return
				}
				j += ag.matchShift()
			case mh > ni && ni < i+1:
				matched[j] = j - h
				j += ag.shift(text[h-ni], i-ni)
			default:
				panic(fmt.Sprintf("match: inconsistent skip state matched=%d border=%d at pattern %d", mh, ni, i))
			}
			break
		}
	}
}
