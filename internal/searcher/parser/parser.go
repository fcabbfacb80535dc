// Package parser turns boolean query text into an immutable syntax tree.
//
// Grammar, lowest precedence first:
//
//	or      := and (("|" | "or") and)*
//	and     := unary (("&" | "and") unary)*
//	unary   := ("!" | "not") unary | primary
//	primary := "(" or ")" | term
//
// Keywords match case-insensitively. A term is a maximal run of characters
// other than whitespace and ()!&|.
package parser

import (
	"strings"
	"unicode"

	apperrors "github.com/Adithya-Monish-Kumar-K/wiki-retrieval/pkg/errors"
)

// DefaultMaxDepth bounds how deeply negations and parentheses may nest.
const DefaultMaxDepth = 512

type Op int

const (
	And Op = iota
	Or
)

func (o Op) String() string {
	if o == And {
		return "&"
	}
	return "|"
}

// Flip swaps And and Or.
func (o Op) Flip() Op {
	if o == And {
		return Or
	}
	return And
}

// Node is one of Name, Invert, or Binary.
type Node interface {
	String() string
	node()
}

type Name struct {
	Term string
}

type Invert struct {
	Child Node
}

type Binary struct {
	Op          Op
	Left, Right Node
}

func (Name) node()   {}
func (Invert) node() {}
func (Binary) node() {}

func (n Name) String() string   { return n.Term }
func (n Invert) String() string { return "!" + n.Child.String() }
func (n Binary) String() string {
	return "(" + n.Left.String() + " " + n.Op.String() + " " + n.Right.String() + ")"
}

type Parser struct {
	MaxDepth int
}

func New(maxDepth int) *Parser {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}
	return &Parser{MaxDepth: maxDepth}
}

// Parse parses query with the default depth limit.
func Parse(query string) (Node, error) {
	return New(DefaultMaxDepth).Parse(query)
}

// Parse returns the syntax tree of query. Empty input, dangling operators,
// unbalanced parentheses, adjacent terms, and nesting beyond MaxDepth are
// reported as ErrMalformedQuery.
func (p *Parser) Parse(query string) (Node, error) {
	toks := lex(query)
	if len(toks) == 0 {
		return nil, apperrors.New(apperrors.ErrMalformedQuery, "empty query")
	}
	st := &state{toks: toks, maxDepth: p.MaxDepth}
	n, err := st.parseOr()
	if err != nil {
		return nil, err
	}
	if st.pos < len(st.toks) {
		return nil, apperrors.Newf(apperrors.ErrMalformedQuery, "unexpected %q at token %d", st.toks[st.pos].text, st.pos)
	}
	return n, nil
}

type kind int

const (
	kindTerm kind = iota
	kindAnd
	kindOr
	kindNot
	kindOpen
	kindClose
)

type token struct {
	kind kind
	text string
}

func isOperatorRune(r rune) bool {
	switch r {
	case '(', ')', '!', '&', '|':
		return true
	}
	return false
}

func lex(query string) []token {
	var toks []token
	runes := []rune(query)
	for i := 0; i < len(runes); {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case r == '(':
			toks = append(toks, token{kindOpen, "("})
			i++
		case r == ')':
			toks = append(toks, token{kindClose, ")"})
			i++
		case r == '!':
			toks = append(toks, token{kindNot, "!"})
			i++
		case r == '&':
			toks = append(toks, token{kindAnd, "&"})
			i++
		case r == '|':
			toks = append(toks, token{kindOr, "|"})
			i++
		default:
			start := i
			for i < len(runes) && !unicode.IsSpace(runes[i]) && !isOperatorRune(runes[i]) {
				i++
			}
			word := string(runes[start:i])
			switch strings.ToLower(word) {
			case "and":
				toks = append(toks, token{kindAnd, word})
			case "or":
				toks = append(toks, token{kindOr, word})
			case "not":
				toks = append(toks, token{kindNot, word})
			default:
				toks = append(toks, token{kindTerm, word})
			}
		}
	}
	return toks
}

type state struct {
	toks     []token
	pos      int
	depth    int
	maxDepth int
}

func (s *state) peek() (token, bool) {
	if s.pos >= len(s.toks) {
		return token{}, false
	}
	return s.toks[s.pos], true
}

func (s *state) parseOr() (Node, error) {
	left, err := s.parseAnd()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := s.peek()
		if !ok || tok.kind != kindOr {
			return left, nil
		}
		s.pos++
		right, err := s.parseAnd()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: Or, Left: left, Right: right}
	}
}

func (s *state) parseAnd() (Node, error) {
	left, err := s.parseUnary()
	if err != nil {
		return nil, err
	}
	for {
		tok, ok := s.peek()
		if !ok || tok.kind != kindAnd {
			return left, nil
		}
		s.pos++
		right, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		left = Binary{Op: And, Left: left, Right: right}
	}
}

func (s *state) enter() error {
	s.depth++
	if s.depth > s.maxDepth {
		return apperrors.Newf(apperrors.ErrMalformedQuery, "nesting deeper than %d", s.maxDepth)
	}
	return nil
}

func (s *state) parseUnary() (Node, error) {
	tok, ok := s.peek()
	if !ok {
		return nil, apperrors.New(apperrors.ErrMalformedQuery, "unexpected end of query")
	}
	switch tok.kind {
	case kindNot:
		if err := s.enter(); err != nil {
			return nil, err
		}
		s.pos++
		child, err := s.parseUnary()
		if err != nil {
			return nil, err
		}
		s.depth--
		return Invert{Child: child}, nil
	case kindOpen:
		if err := s.enter(); err != nil {
			return nil, err
		}
		s.pos++
		inner, err := s.parseOr()
		if err != nil {
			return nil, err
		}
		closing, ok := s.peek()
		if !ok || closing.kind != kindClose {
			return nil, apperrors.New(apperrors.ErrMalformedQuery, "missing closing parenthesis")
		}
		s.pos++
		s.depth--
		return inner, nil
	case kindTerm:
		s.pos++
		return Name{Term: tok.text}, nil
	default:
		return nil, apperrors.Newf(apperrors.ErrMalformedQuery, "unexpected %q at token %d", tok.text, s.pos)
	}
}
