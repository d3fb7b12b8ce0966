package dfa

import "sort"

// Alphabet partitions the Unicode code-point space into the equivalence
// classes induced by the union of every Range used across a rule set (spec
// §4.B). Every code point within one class is indistinguishable to every
// rule in the set, so the subset construction only ever needs to try one
// representative per class instead of one attempt per code point.
type Alphabet struct {
	bounds []rune // sorted; class i spans [bounds[i], bounds[i+1]-1], last class runs to MaxCodePoint
}

func newAlphabet(states []*nfaState) *Alphabet {
	set := map[rune]struct{}{0: {}, 1: {}}
	for _, s := range states {
		for _, e := range s.edges {
			if e.eps {
				continue
			}
			set[e.lo] = struct{}{}
			if e.hi < maxCodePoint {
				set[e.hi+1] = struct{}{}
			}
		}
	}
	bounds := make([]rune, 0, len(set))
	for r := range set {
		bounds = append(bounds, r)
	}
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	return &Alphabet{bounds: bounds}
}

// NumClasses reports how many equivalence classes the alphabet has.
func (a *Alphabet) NumClasses() int { return len(a.bounds) }

// ClassOf returns the class index containing r.
func (a *Alphabet) ClassOf(r rune) int {
	i := sort.Search(len(a.bounds), func(i int) bool { return a.bounds[i] > r }) - 1
	if i < 0 {
		return 0
	}
	return i
}

// Representative returns one code point belonging to class c; since every
// code point in a class behaves identically against every rule's ranges,
// any member will do.
func (a *Alphabet) Representative(c int) rune { return a.bounds[c] }
