package boolean

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/index"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/indexer/postings"
	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/parser"
	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// build indexes articles "article 0" .. "article n-1" where article i
// contains every term whose id list includes i.
func build(n int, terms map[string][]int) *Evaluator {
	tokens := make([][]string, n)
	for term, ids := range terms {
		for _, id := range ids {
			tokens[id] = append(tokens[id], term)
		}
	}
	lb := index.NewBuilder[postings.List](postings.ListEncoding{})
	bb := index.NewBuilder[postings.Bitset](postings.BitsetEncoding{})
	for i := 0; i < n; i++ {
		title := fmt.Sprintf("article %d", i)
		lb.Add(title, tokens[i])
		bb.Add(title, tokens[i])
	}
	return New(lb.Build(), bb.Build())
}

func fixture() *Evaluator {
	return build(100, map[string][]int{
		"word1": {0},
		"word2": {0, 1, 2, 3, 4, 5, 6, 7},
		"word3": {0, 2, 4, 6},
		"word4": {1, 2, 3},
	})
}

func mustParse(t testing.TB, q string) parser.Node {
	t.Helper()
	n, err := parser.Parse(q)
	require.NoError(t, err)
	return n
}

func TestEvaluateScenarios(t *testing.T) {
	e := fixture()
	tests := []struct {
		query string
		want  []string
	}{
		{"word1 | (word3 & word4)", []string{"article 0", "article 2"}},
		{"word1 & word4", []string{}},
		{"word1 & word3", []string{"article 0"}},
		{"word1 | word4", []string{"article 0", "article 1", "article 2", "article 3"}},
		{"nowhere", []string{}},
		{"WORD1", []string{"article 0"}},
		{"word2 & !word3", []string{"article 1", "article 3", "article 5", "article 7"}},
		{"!word2 & !word4 & word3", []string{}},
		{"!(word2 | word1) & !nowhere & word2", []string{}},
	}
	for _, tt := range tests {
		for _, s := range Strategies() {
			t.Run(tt.query+"/"+s.String(), func(t *testing.T) {
				assert.Equal(t, tt.want, e.Evaluate(mustParse(t, tt.query), s))
			})
		}
	}
}

func TestEvaluateComplementCoversUniverse(t *testing.T) {
	e := fixture()
	for _, s := range Strategies() {
		got := e.Evaluate(mustParse(t, "!word2"), s)
		require.Len(t, got, 92, s.String())
		assert.Equal(t, "article 8", got[0])
		assert.Equal(t, "article 99", got[91])
	}
}

func TestEvaluateNilTree(t *testing.T) {
	e := fixture()
	for _, s := range Strategies() {
		assert.Equal(t, []string{}, e.Evaluate(nil, s))
		assert.Equal(t, []int{}, e.IDs(nil, s))
	}
}

func TestIDsBitvecsDropsTail(t *testing.T) {
	e := fixture()
	ids := e.IDs(mustParse(t, "!word2"), Bitvecs)
	require.Len(t, ids, 92)
	assert.Equal(t, 99, ids[len(ids)-1])
	assert.Equal(t, e.IDs(mustParse(t, "!word2"), Naive), ids)
}

func TestIDsAgreeOnAbsentTerm(t *testing.T) {
	e := fixture()
	q := mustParse(t, "zebra")
	for _, s := range Strategies() {
		assert.Equal(t, []int{}, e.IDs(q, s), s.String())
	}
}

func TestIDsDoNotAliasPostings(t *testing.T) {
	e := fixture()
	q := mustParse(t, "word4")
	for _, s := range Strategies() {
		ids := e.IDs(q, s)
		require.Equal(t, []int{1, 2, 3}, ids, s.String())
		ids[0] = 42
	}
	assert.Equal(t, []string{"article 1", "article 2", "article 3"}, e.Evaluate(q, Naive))
}

func TestDoubleNegation(t *testing.T) {
	e := fixture()
	for _, term := range []string{"word1", "word2", "word3", "word4", "nowhere"} {
		for _, s := range Strategies() {
			assert.Equal(t, e.Evaluate(mustParse(t, term), s), e.Evaluate(mustParse(t, "!!"+term), s), "%s/%s", term, s)
		}
	}
}

func TestDeMorganLaws(t *testing.T) {
	e := fixture()
	pairs := [][2]string{
		{"!(word2 & word3)", "!word2 | !word3"},
		{"!(word2 | word4)", "!word2 & !word4"},
		{"!(word1 | nowhere)", "!word1 & !nowhere"},
	}
	for _, p := range pairs {
		for _, s := range Strategies() {
			assert.Equal(t, e.Evaluate(mustParse(t, p[0]), s), e.Evaluate(mustParse(t, p[1]), s), "%s/%s", p[0], s)
		}
	}
}

func TestRewrite(t *testing.T) {
	a, b := parser.Name{Term: "a"}, parser.Name{Term: "b"}

	got := rewrite(parser.Binary{Op: parser.And, Left: parser.Invert{Child: a}, Right: parser.Invert{Child: b}})
	assert.Equal(t, parser.Invert{Child: parser.Binary{Op: parser.Or, Left: a, Right: b}}, got)

	mixed := parser.Binary{Op: parser.Or, Left: parser.Invert{Child: a}, Right: b}
	assert.Equal(t, mixed, rewrite(mixed))
	assert.Equal(t, a, rewrite(a))
}

func randomCorpus(rng *rand.Rand, articles, vocab int) (*Evaluator, []string) {
	terms := make(map[string][]int, vocab)
	words := make([]string, vocab)
	for w := 0; w < vocab; w++ {
		words[w] = fmt.Sprintf("w%d", w)
		density := 1 + rng.Intn(6)
		for id := 0; id < articles; id++ {
			if rng.Intn(density*3) == 0 {
				terms[words[w]] = append(terms[words[w]], id)
			}
		}
	}
	return build(articles, terms), words
}

func TestStrategiesAgreeOnRandomQueries(t *testing.T) {
	rng := rand.New(rand.NewSource(8008135))
	e, words := randomCorpus(rng, 150, 40)
	for depth := 0; depth <= 7; depth++ {
		for i := 0; i < 40; i++ {
			q := parser.Random(rng, words, depth)
			want := e.Evaluate(q, Naive)
			for _, s := range Strategies()[1:] {
				require.Equal(t, want, e.Evaluate(q, s), "%s with %s", q, s)
			}
		}
	}
}

func TestDeepTreeEvaluatesIteratively(t *testing.T) {
	e := fixture()
	var n parser.Node = parser.Name{Term: "word3"}
	for i := 0; i < 100_000; i++ {
		n = parser.Invert{Child: parser.Invert{Child: n}}
	}
	for _, s := range Strategies() {
		assert.Equal(t, []string{"article 0", "article 2", "article 4", "article 6"}, e.Evaluate(n, s), s.String())
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range Strategies() {
		got, err := ParseStrategy(s.String())
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}
	got, err := ParseStrategy("hybrid")
	require.NoError(t, err)
	assert.Equal(t, Hybrid, got)

	_, err = ParseStrategy("Quantum")
	assert.ErrorIs(t, err, apperrors.ErrUnknownVariant)
	assert.Equal(t, "Strategy(9)", Strategy(9).String())
}

func BenchmarkStrategies(b *testing.B) {
	rng := rand.New(rand.NewSource(1))
	e, words := randomCorpus(rng, 5000, 300)
	queries := make([]parser.Node, 64)
	for i := range queries {
		queries[i] = parser.Random(rng, words, 5)
	}
	for _, s := range Strategies() {
		b.Run(s.String(), func(b *testing.B) {
			b.ReportAllocs()
			for i := 0; i < b.N; i++ {
				e.Evaluate(queries[i%len(queries)], s)
			}
		})
	}
}
