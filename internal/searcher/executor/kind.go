package executor

import (
	"strconv"
	"strings"

	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
)

// Kind selects which index answers a query.
type Kind int

const (
	SingleWord Kind = iota
	Boolean
	Prefix
	Exact
	Fuzzy
)

var kindNames = [...]string{
	SingleWord: "SingleWord",
	Boolean:    "Boolean",
	Prefix:     "Prefix",
	Exact:      "Exact",
	Fuzzy:      "Fuzzy",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind resolves a kind name case-insensitively. "word" is accepted for
// SingleWord.
func ParseKind(name string) (Kind, error) {
	if strings.EqualFold(name, "word") {
		return SingleWord, nil
	}
	for i, n := range kindNames {
		if strings.EqualFold(n, name) {
			return Kind(i), nil
		}
	}
	return 0, apperrors.Newf(apperrors.ErrInvalidInput, "query kind %q", name)
}
