package boolean

import (
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
)

// Strategy selects how a query tree is evaluated. All strategies return the
// same titles for the same tree; they differ only in cost.
type Strategy int

const (
	// Naive evaluates bottom-up with linear co-scans and complements by
	// scanning every article id.
	Naive Strategy = iota
	// DeMorgan rewrites a conjunction or disjunction of two negations into
	// one negation of the flipped operator, saving a complement.
	DeMorgan
	// BinarySearch intersects by probing the shorter list into the longer
	// one when that is cheaper than a co-scan.
	BinarySearch
	// Hybrid combines DeMorgan and BinarySearch.
	Hybrid
	// Bitvecs evaluates over the bitset index with word-wide operations.
	Bitvecs
)

var strategyNames = [...]string{
	Naive:        "Naive",
	DeMorgan:     "DeMorgan",
	BinarySearch: "BinarySearch",
	Hybrid:       "Hybrid",
	Bitvecs:      "Bitvecs",
}

func (s Strategy) String() string {
	if s < 0 || int(s) >= len(strategyNames) {
		return "Strategy(" + strconv.Itoa(int(s)) + ")"
	}
	return strategyNames[s]
}

// Strategies lists every strategy in declaration order.
func Strategies() []Strategy {
	return []Strategy{Naive, DeMorgan, BinarySearch, Hybrid, Bitvecs}
}

// ParseStrategy resolves a strategy name case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	for i, n := range strategyNames {
		if strings.EqualFold(n, name) {
			return Strategy(i), nil
		}
	}
	return 0, apperrors.Newf(apperrors.ErrUnknownVariant, "boolean strategy %q", name)
}
