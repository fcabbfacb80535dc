package triple

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func setup() *Index {
	x := New()
	seed := map[Key][]int{
		{"word1", "word2", "word3"}: {0},
		{"word2", "word3", "word4"}: {0, 1, 2, 3, 4, 5, 6, 7},
		{"word3", "word4", "word5"}: {0, 2, 4, 6},
		{"word4", "word5", "word6"}: {1, 2, 3},
	}
	for key, ids := range seed {
		for _, id := range ids {
			x.Insert(key, id)
		}
	}
	return x
}

func TestFuzzy(t *testing.T) {
	x := setup()
	tests := []struct {
		name   string
		phrase string
		want   []int
	}{
		{"single triple", "word1 word2 word3", []int{0}},
		{"two triples", "word2 word3 word4 word5", []int{0, 2, 4, 6}},
		{"three triples", "word2 word3 word4 word5 word6", []int{2}},
		{"case insensitive", "WORD2 Word3 word4", []int{0, 1, 2, 3, 4, 5, 6, 7}},
		{"absent triple", "word4 word5 word3", []int{}},
		{"too short", "hej med", []int{}},
		{"empty", "", []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, x.Fuzzy(tt.phrase))
		})
	}
}

func TestAddSlidesWindow(t *testing.T) {
	x := New()
	x.Add(0, []string{"Let", "it", "be", "let", "it", "be"})
	x.Add(1, []string{"it", "be", "let"})
	x.Add(2, []string{"let", "it"})

	assert.Equal(t, 3, x.Len())
	assert.Equal(t, []int{0}, x.Fuzzy("let it be"))
	assert.Equal(t, []int{0, 1}, x.Fuzzy("it be let"))
	assert.Equal(t, []int{0}, x.Fuzzy("let it be let it"))
}

func TestFuzzyAdmitsNonAdjacentTriples(t *testing.T) {
	x := New()
	x.Add(0, []string{"a", "b", "c", "x", "b", "c", "d"})

	// "b c d" and "a b c" both occur but never as "a b c d".
	assert.Equal(t, []int{0}, x.Fuzzy("a b c d"))
}
