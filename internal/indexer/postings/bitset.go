package postings

import "math/bits"

// W is the number of article ids packed into one Bitset block.
const W = 64

// Bitset is a word-packed article set: bit b of block i is set when article
// i*W+b is a member. Blocks past the end are treated as zero.
type Bitset []uint64

// Blocks returns the number of blocks needed to address universe ids.
func Blocks(universe int) int {
	return (universe + W - 1) / W
}

// Add sets id's bit, growing the bitset when id lies past the last block.
func (s Bitset) Add(id int) Bitset {
	block := id / W
	if block >= len(s) {
		s = append(s, make(Bitset, block-len(s)+1)...)
	}
	s[block] |= 1 << uint(id%W)
	return s
}

func (s Bitset) Contains(id int) bool {
	block := id / W
	if id < 0 || block >= len(s) {
		return false
	}
	return s[block]&(1<<uint(id%W)) != 0
}

func (s Bitset) Len() int {
	n := 0
	for _, word := range s {
		n += bits.OnesCount64(word)
	}
	return n
}

// IDs decodes every set bit in increasing order.
func (s Bitset) IDs() []int {
	out := make([]int, 0, s.Len())
	for i, word := range s {
		for word != 0 {
			b := bits.TrailingZeros64(word)
			out = append(out, i*W+b)
			word &= word - 1
		}
	}
	return out
}

// Titles decodes the set into titles, skipping ids that have no title. Such
// ids are produced by Complement filling the tail of the last block.
func (s Bitset) Titles(titles []string) []string {
	out := make([]string, 0)
	for _, id := range s.IDs() {
		if id >= len(titles) {
			break
		}
		out = append(out, titles[id])
	}
	return out
}

func (s Bitset) Union(other Bitset) Bitset {
	long, short := s, other
	if len(short) > len(long) {
		long, short = short, long
	}
	out := make(Bitset, len(long))
	copy(out, long)
	for i, word := range short {
		out[i] |= word
	}
	return out
}

func (s Bitset) Intersect(other Bitset) Bitset {
	out := make(Bitset, min(len(s), len(other)))
	for i := range out {
		out[i] = s[i] & other[i]
	}
	return out
}

// Complement flips every bit of the blocks covering universe. Bits past
// universe in the last block come out set; decoding ignores them.
func (s Bitset) Complement(universe int) Bitset {
	out := make(Bitset, max(len(s), Blocks(universe)))
	for i := range out {
		if i < len(s) {
			out[i] = ^s[i]
		} else {
			out[i] = ^uint64(0)
		}
	}
	return out
}

// BitsetEncoding builds Bitset postings sized to the article count seen so
// far, one block at a time.
type BitsetEncoding struct{}

func (BitsetEncoding) Name() string { return "bitset" }

func (BitsetEncoding) New(universe int) Bitset {
	return make(Bitset, Blocks(universe))
}

func (BitsetEncoding) Grow(s Bitset, universe int) Bitset {
	if need := Blocks(universe); need > len(s) {
		s = append(s, make(Bitset, need-len(s))...)
	}
	return s
}

func (BitsetEncoding) Capacity(universe int) int {
	return Blocks(universe) * W
}
