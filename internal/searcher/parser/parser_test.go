package parser

import (
	"math/rand"
	"strings"
	"testing"

	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		query string
		want  Node
	}{
		{"word1", Name{"word1"}},
		{"word1 | (word3 & word4)", Binary{Or, Name{"word1"}, Binary{And, Name{"word3"}, Name{"word4"}}}},
		{"a & b | c", Binary{Or, Binary{And, Name{"a"}, Name{"b"}}, Name{"c"}}},
		{"a | b & c", Binary{Or, Name{"a"}, Binary{And, Name{"b"}, Name{"c"}}}},
		{"a & b & c", Binary{And, Binary{And, Name{"a"}, Name{"b"}}, Name{"c"}}},
		{"!a", Invert{Name{"a"}}},
		{"not not a", Invert{Invert{Name{"a"}}}},
		{"A AND b Or NOT c", Binary{Or, Binary{And, Name{"A"}, Name{"b"}}, Invert{Name{"c"}}}},
		{"!(a|b)", Invert{Binary{Or, Name{"a"}, Name{"b"}}}},
		{"((a))", Name{"a"}},
		{"don't&x-ray", Binary{And, Name{"don't"}, Name{"x-ray"}}},
		{"andrew | oracle", Binary{Or, Name{"andrew"}, Name{"oracle"}}},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseMalformed(t *testing.T) {
	for _, q := range []string{"", "   ", "word1((", "a b", "a &", "| a", "(a", "a)", "!", "()", "a & | b"} {
		t.Run(q, func(t *testing.T) {
			_, err := Parse(q)
			assert.ErrorIs(t, err, apperrors.ErrMalformedQuery)
		})
	}
}

func TestParseDepthLimit(t *testing.T) {
	p := New(8)

	_, err := p.Parse(strings.Repeat("!", 8) + "a")
	assert.NoError(t, err)

	_, err = p.Parse(strings.Repeat("!", 9) + "a")
	assert.ErrorIs(t, err, apperrors.ErrMalformedQuery)

	_, err = p.Parse(strings.Repeat("(", 9) + "a" + strings.Repeat(")", 9))
	assert.ErrorIs(t, err, apperrors.ErrMalformedQuery)

	_, err = Parse(strings.Repeat("(", 10_000) + "a" + strings.Repeat(")", 10_000))
	assert.ErrorIs(t, err, apperrors.ErrMalformedQuery)
}

func TestLongFlatChainsAreNotLimited(t *testing.T) {
	terms := make([]string, 5000)
	for i := range terms {
		terms[i] = "w"
	}
	_, err := New(4).Parse(strings.Join(terms, " & "))
	assert.NoError(t, err)
}

func TestStringRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(8008135))
	vocab := []string{"word1", "word2", "word3", "word4"}
	for depth := 0; depth <= 7; depth++ {
		for i := 0; i < 50; i++ {
			n := Random(rng, vocab, depth)
			got, err := Parse(n.String())
			require.NoError(t, err, n.String())
			assert.Equal(t, n, got)
		}
	}
}

func TestOpFlip(t *testing.T) {
	assert.Equal(t, Or, And.Flip())
	assert.Equal(t, And, Or.Flip())
}
