package phrase

import (
	"strconv"
	"strings"

	"github.com/Adithya-Monish-Kumar-K/wiki-retrieval/internal/searcher/match"
	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
)

// Algorithm selects how candidate articles are found and verified.
type Algorithm int

const (
	KMP Algorithm = iota
	BoyerMoore
	ApostolicoGiancarlo
	// TripleBoyerMoore takes candidates from the triple index instead of
	// the word postings and verifies them with Boyer-Moore.
	TripleBoyerMoore
)

var algorithmNames = [...]string{
	KMP:                 "KMP",
	BoyerMoore:          "BoyerMoore",
	ApostolicoGiancarlo: "ApostolicoGiancarlo",
	TripleBoyerMoore:    "TripleBoyerMoore",
}

func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algorithmNames) {
		return "Algorithm(" + strconv.Itoa(int(a)) + ")"
	}
	return algorithmNames[a]
}

func Algorithms() []Algorithm {
	return []Algorithm{KMP, BoyerMoore, ApostolicoGiancarlo, TripleBoyerMoore}
}

// ParseAlgorithm resolves an algorithm name case-insensitively.
func ParseAlgorithm(name string) (Algorithm, error) {
	for i, n := range algorithmNames {
		if strings.EqualFold(n, name) {
			return Algorithm(i), nil
		}
	}
	return 0, apperrors.Newf(apperrors.ErrUnknownVariant, "phrase algorithm %q", name)
}

func (a Algorithm) matcher(words []string) match.Matcher[string] {
	switch a {
	case KMP:
		return match.NewKMP(words)
	case ApostolicoGiancarlo:
		return match.NewApostolicoGiancarlo(words)
	default:
		return match.NewBoyerMoore(words)
	}
}
