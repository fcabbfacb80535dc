package parser

import "math/rand"

// Unfindable is a term that no tokenizer output can contain, used to
// exercise empty postings in generated queries.
const Unfindable = "icantbefound"

// Random builds a query tree of exactly the given depth over vocabulary.
// Leaves pick a vocabulary term, or Unfindable one time in ten; inner nodes
// are an even mix of negation, conjunction, and disjunction.
func Random(rng *rand.Rand, vocabulary []string, depth int) Node {
	if depth == 0 {
		if len(vocabulary) == 0 || rng.Intn(10) == 0 {
			return Name{Term: Unfindable}
		}
		return Name{Term: vocabulary[rng.Intn(len(vocabulary))]}
	}
	switch rng.Intn(3) {
	case 0:
		return Invert{Child: Random(rng, vocabulary, depth-1)}
	case 1:
		return Binary{Op: And, Left: Random(rng, vocabulary, depth-1), Right: Random(rng, vocabulary, depth-1)}
	default:
		return Binary{Op: Or, Left: Random(rng, vocabulary, depth-1), Right: Random(rng, vocabulary, depth-1)}
	}
}
