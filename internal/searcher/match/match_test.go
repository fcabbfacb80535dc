package match

import (
	"math/rand"
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const lyric = `When I find myself in times of trouble, Mother Mary comes to me Speaking words of wisdom,
let it be And in my hour of darkness she is standing right in front of me Speaking words of wisdom, let it be Let it be  let it be let it be let it be Whisper words of wisdom, let it be And when the broken hearted people living in the world agree There will be an answer, let it be For though they may be parted, there is still a chance that they will see There will be an answer, let it be Let it be let it be let it be let it be There will be an answer, let it be Let it be let it be let it be let it be Whisper words of wisdom, let it be Let it be let it be let it be let it be Whisper words of wisdom, let it be be And when the night is cloudy there is still a light that shines on me Shinin' until tomorrow, let it be I wake up to the sound of music, Mother Mary comes to me Speaking words of wisdom, let it be And let it be let it be let it be let it be Whisper words of wisdom, let it be And let it be let it be let it be let it be Whisper words of wisdom, let it be`

const verse = "wisdom, let it be And words of wisdom, let it be Let it be let it be let it be let it be Whisper words of wisdom, let it be And when the broken hearted people living in the world agree There will be an answer, let it be For though they may be parted, there is still a chance that they will see There will be an answer, let it be Let it be let it be let it be let it be There will be an answer, let it be Let it be let it be let it be let it be Whisper words of wisdom, let it be Let it be let it be let it be let it be Whisper words of wisdom, let it be be And when the night is cloudy there is still a light that shines on me Shinin' until tomorrow, let it be I wake up to the sound of music, Mother Mary comes to me Speaking words of wisdom, let it be And let it be let it be let it be let it be Whisper words of wisdom, let it be And let it be let it be let it be let it be Whisper words of wisdom, let it be"

func matchers[T comparable](p []T) map[string]Matcher[T] {
	return map[string]Matcher[T]{
		"KMP":                 NewKMP(p),
		"BoyerMoore":          NewBoyerMoore(p),
		"ApostolicoGiancarlo": NewApostolicoGiancarlo(p),
	}
}

func bruteForce[T comparable](p, t []T) []int {
	out := []int{}
	if len(p) == 0 {
		return out
	}
	for i := 0; i+len(p) <= len(t); i++ {
		if slices.Equal(t[i:i+len(p)], p) {
			out = append(out, i)
		}
	}
	return out
}

func TestKMPTable(t *testing.T) {
	tests := []struct {
		pattern string
		want    []int
	}{
		{"ABCDABD", []int{-1, 0, 0, 0, -1, 0, 2, 0}},
		{"ABACABABC", []int{-1, 0, -1, 1, -1, 0, -1, 3, 2, 0}},
		{"ABACABABA", []int{-1, 0, -1, 1, -1, 0, -1, 3, -1, 3}},
		{"", []int{-1}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			assert.Equal(t, tt.want, KMPTable([]byte(tt.pattern)))
		})
	}
}

func TestCharacterLevelLyric(t *testing.T) {
	want := []int{
		8, 39, 49, 59, 69, 79, 114, 210, 319, 329, 339, 349, 359, 394, 404, 414, 424, 434,
		469, 479, 489, 499, 509, 544, 651, 744, 758, 768, 778, 788, 823, 837, 847, 857, 867, 902,
	}
	text := []byte(strings.ToLower(verse))
	for name, m := range matchers([]byte("let it be")) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, m.FindAll(text))
			assert.True(t, m.Contains(text))
		})
	}
}

func TestWordLevelLyric(t *testing.T) {
	want := []int{
		17, 38, 41, 44, 47, 50, 57, 76, 99, 102, 105, 108, 111, 119, 122, 125, 128, 131,
		138, 141, 144, 147, 150, 157, 179, 199, 203, 206, 209, 212, 219, 223, 226, 229, 232, 239,
	}
	words := strings.Fields(strings.ToLower(lyric))
	for name, m := range matchers([]string{"let", "it", "be"}) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, want, m.FindAll(words))
		})
	}
}

func TestOverlappingAndSmallCases(t *testing.T) {
	text := []byte("cbacbacbcababababbcbcbcbcaaacbcbcbababcbcbacbabcabcab cba bc abc bacbabcabc bac babcabcbacbabcabcbacbababcabcbacbacbbac")
	tests := []struct {
		name    string
		pattern []byte
		text    []byte
		want    []int
	}{
		{"abcab", []byte("abcab"), text, []int{45, 48, 69, 81, 91, 103}},
		{"overlapping", []byte("aa"), []byte("aaaa"), []int{0, 1, 2}},
		{"single symbol", []byte("b"), []byte("abcb"), []int{1, 3}},
		{"pattern longer than text", []byte("abc"), []byte("ab"), []int{}},
		{"empty pattern", []byte(""), []byte("abc"), []int{}},
		{"empty text", []byte("a"), []byte(""), []int{}},
		{"whole text", []byte("abc"), []byte("abc"), []int{0}},
	}
	for _, tt := range tests {
		for name, m := range matchers(tt.pattern) {
			t.Run(tt.name+"/"+name, func(t *testing.T) {
				assert.Equal(t, tt.want, m.FindAll(tt.text))
				assert.Equal(t, len(tt.want) > 0, m.Contains(tt.text))
			})
		}
	}
}

func TestWordTokensDoNotMatchInsideWords(t *testing.T) {
	words := strings.Fields("A B AB A B C A B")
	for name, m := range matchers([]string{"A", "B"}) {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, []int{0, 3, 6}, m.FindAll(words))
		})
	}
}

func TestBorderTables(t *testing.T) {
	p := []byte("cabdabdab")
	borders := suffixBorders(p)
	assert.Equal(t, []int{0, 0, 2, 0, 0, 5, 0, 0, 0}, borders)
	bigL, smallL := goodSuffixTables(borders)
	assert.Equal(t, []int{0, 0, 0, 0, 6, 0, 0, 3, 0}, bigL)
	assert.Equal(t, make([]int, 9), smallL)

	bigL, smallL = goodSuffixTables(suffixBorders([]byte("tapFtapGtapFtap")))
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0, 0, 0, 7, 0, 0, 0, 11, 0, 0}, bigL)
	assert.Equal(t, []int{0, 7, 7, 7, 7, 7, 7, 7, 7, 3, 3, 3, 3, 0, 0}, smallL)
}

func TestZArray(t *testing.T) {
	assert.Equal(t, []int{0, 1, 0, 0, 3, 1, 0}, zArray([]byte("aabcaab")))
}

func TestMatchersAgreeWithBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	alphabets := []string{"ab", "abc", "a", "aab"}
	randomString := func(alphabet string, minLen, maxLen int) []byte {
		n := minLen + rng.Intn(maxLen-minLen+1)
		out := make([]byte, n)
		for i := range out {
			out[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return out
	}
	for round := 0; round < 5000; round++ {
		alphabet := alphabets[rng.Intn(len(alphabets))]
		p := randomString(alphabet, 1, 7)
		text := randomString(alphabet, 0, 40)
		want := bruteForce(p, text)
		for name, m := range matchers(p) {
			require.Equal(t, want, m.FindAll(text), "%s pattern=%q text=%q", name, p, text)
		}
	}
}

func BenchmarkMatchers(b *testing.B) {
	text := []byte(strings.Repeat(strings.ToLower(verse)+" ", 50))
	for name, m := range matchers([]byte("let it be")) {
		b.Run(name, func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				m.FindAll(text)
			}
		})
	}
}
